package tessellation

import (
	"fmt"
	"strings"

	"globemesh/core"
)

// Kind names a tessellation strategy
type Kind int

const (
	QuadCube Kind = iota
	SubdivisionSphere
	SubdivisionEllipsoid
	GeographicGrid
)

var kindNames = [...]string{
	QuadCube:             "quadcube",
	SubdivisionSphere:    "subdivision-sphere",
	SubdivisionEllipsoid: "subdivision-ellipsoid",
	GeographicGrid:       "geographic-grid",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every strategy in declaration order
func Kinds() []Kind {
	return []Kind{QuadCube, SubdivisionSphere, SubdivisionEllipsoid, GeographicGrid}
}

// ParseKind accepts the names printed by Kind.String, case-insensitively
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tessellator %q", core.ErrInvalidArgument, s)
}

// Request describes one tessellation. Level is the partition count for
// QuadCube, the subdivision depth for the subdivision kinds and the number
// of slices for GeographicGrid. Stacks only applies to GeographicGrid; zero
// means half the slices, at least 2. SubdivisionSphere ignores Ellipsoid.
type Request struct {
	Kind       Kind
	Ellipsoid  core.Ellipsoid
	Level      int
	Stacks     int
	Attributes core.VertexAttributes
}

func (r Request) stacks() int {
	if r.Stacks > 0 {
		return r.Stacks
	}
	return max(2, r.Level/2)
}

// VertexCapacity is the number of vertices preallocated for r
func (r Request) VertexCapacity() int {
	switch r.Kind {
	case QuadCube:
		return QuadCubeVertexCount(r.Level)
	case GeographicGrid:
		return GeographicGridVertexCount(r.Level, r.stacks())
	}
	return SubdivisionVertexCount(r.Level)
}

// Key identifies requests that produce the same mesh
func (r Request) Key() string {
	radii := r.Ellipsoid.Radii()
	if r.Kind == SubdivisionSphere {
		radii = core.UnitSphere.Radii()
	}
	stacks := 0
	if r.Kind == GeographicGrid {
		stacks = r.stacks()
	}
	return fmt.Sprintf("%s/%d/%d/%g,%g,%g/%s", r.Kind, r.Level, stacks, radii[0], radii[1], radii[2], r.Attributes)
}

// Compute runs the tessellator selected by r.Kind
func Compute(r Request) (*core.Mesh, error) {
	switch r.Kind {
	case QuadCube:
		return QuadCubeEllipsoidTessellator(r.Ellipsoid, r.Level, r.Attributes)
	case SubdivisionSphere:
		return SubdivisionSphereTessellator(r.Level, r.Attributes)
	case SubdivisionEllipsoid:
		return SubdivisionEllipsoidTessellator(r.Ellipsoid, r.Level, r.Attributes)
	case GeographicGrid:
		return GeographicGridEllipsoidTessellator(r.Ellipsoid, r.Level, r.stacks(), r.Attributes)
	}
	return nil, fmt.Errorf("%w: unknown tessellator %s", core.ErrInvalidArgument, r.Kind)
}
