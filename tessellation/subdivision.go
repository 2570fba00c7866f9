package tessellation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"globemesh/core"
)

// MaxSubdivisionLevel keeps subdivision vertex indices within uint32
const MaxSubdivisionLevel = 15

// SubdivisionVertexCount is the exact number of distinct vertices after the
// given number of subdivisions. core.NumberOfVertices is a looser bound.
func SubdivisionVertexCount(numberOfSubdivisions int) int {
	return 2*(1<<(2*uint(numberOfSubdivisions))) + 2
}

// SubdivisionTriangleCount is the exact number of triangles, 4^(n+1)
func SubdivisionTriangleCount(numberOfSubdivisions int) int {
	return 1 << (2 * uint(numberOfSubdivisions+1))
}

// SubdivisionSphereTessellator approximates the unit sphere by splitting each
// face of a tetrahedron into four, numberOfSubdivisions times. Midpoints are
// shared between neighbouring triangles and pushed back onto the sphere.
func SubdivisionSphereTessellator(numberOfSubdivisions int, attributes core.VertexAttributes) (*core.Mesh, error) {
	if err := checkSubdivisionArgs(numberOfSubdivisions, attributes); err != nil {
		return nil, err
	}

	m := newSubdivisionMesh(numberOfSubdivisions)
	m.subdivideTetrahedron(numberOfSubdivisions)

	streams := newMeshStreams(attributes, len(m.positions), m.indices)
	for _, p := range m.positions {
		streams.add(core.UnitSphere, p)
	}
	return streams.mesh, nil
}

// SubdivisionEllipsoidTessellator scales the unit sphere tessellation onto e.
// On the unit sphere the output is identical to SubdivisionSphereTessellator.
func SubdivisionEllipsoidTessellator(e core.Ellipsoid, numberOfSubdivisions int, attributes core.VertexAttributes) (*core.Mesh, error) {
	if err := checkEllipsoid(e); err != nil {
		return nil, err
	}
	if err := checkSubdivisionArgs(numberOfSubdivisions, attributes); err != nil {
		return nil, err
	}

	sphere, err := SubdivisionSphereTessellator(numberOfSubdivisions, core.Position)
	if err != nil {
		return nil, err
	}

	unit := sphere.Positions()
	streams := newMeshStreams(attributes, len(unit), sphere.Indices)
	radii := e.Radii()
	for _, p := range unit {
		// Already unit length, so scaling alone lands on the surface.
		streams.add(e, core.MultiplyComponents(p, radii))
	}
	return streams.mesh, nil
}

func checkSubdivisionArgs(numberOfSubdivisions int, attributes core.VertexAttributes) error {
	if numberOfSubdivisions < 0 || numberOfSubdivisions > MaxSubdivisionLevel {
		return fmt.Errorf("%w: numberOfSubdivisions must be in [0, %d], got %d",
			core.ErrArgumentOutOfRange, MaxSubdivisionLevel, numberOfSubdivisions)
	}
	return attributes.RequirePosition()
}

type edgeKey [2]int

func newEdgeKey(i0, i1 int) edgeKey {
	if i0 > i1 {
		i0, i1 = i1, i0
	}
	return edgeKey{i0, i1}
}

// subdivisionMesh holds the unit-sphere positions, the midpoint cache and the
// triangles of one call
type subdivisionMesh struct {
	positions []mgl64.Vec3
	midpoints map[edgeKey]int
	indices   *core.IndicesUnsignedInt
}

// Every vertex past the four tetrahedron corners is an edge midpoint.
func newSubdivisionMesh(numberOfSubdivisions int) *subdivisionMesh {
	vertexCount := SubdivisionVertexCount(numberOfSubdivisions)
	return &subdivisionMesh{
		positions: make([]mgl64.Vec3, 0, vertexCount),
		midpoints: make(map[edgeKey]int, vertexCount-4),
		indices:   core.NewIndicesUnsignedInt(3 * SubdivisionTriangleCount(numberOfSubdivisions)),
	}
}

// subdivideTetrahedron seeds a regular tetrahedron inscribed in the unit
// sphere with one vertex at the north pole
func (m *subdivisionMesh) subdivideTetrahedron(level int) {
	negativeRootTwoOverThree := -math.Sqrt(2.0) / 3.0
	const negativeOneThird = -1.0 / 3.0
	rootSixOverThree := math.Sqrt(6.0) / 3.0

	m.positions = append(m.positions,
		mgl64.Vec3{0, 0, 1},
		mgl64.Vec3{0, (2.0 * math.Sqrt(2.0)) / 3.0, negativeOneThird},
		mgl64.Vec3{-rootSixOverThree, negativeRootTwoOverThree, negativeOneThird},
		mgl64.Vec3{rootSixOverThree, negativeRootTwoOverThree, negativeOneThird},
	)

	m.subdivide(0, 1, 2, level)
	m.subdivide(0, 2, 3, level)
	m.subdivide(0, 3, 1, level)
	m.subdivide(1, 3, 2, level)
}

func (m *subdivisionMesh) subdivide(i0, i1, i2, level int) {
	if level == 0 {
		m.indices.AddTriangle(i0, i1, i2)
		return
	}

	i01 := m.midpoint(i0, i1)
	i12 := m.midpoint(i1, i2)
	i20 := m.midpoint(i2, i0)

	level--
	m.subdivide(i0, i01, i20, level)
	m.subdivide(i01, i1, i12, level)
	m.subdivide(i01, i12, i20, level)
	m.subdivide(i20, i12, i2, level)
}

// midpoint returns the index of the normalized midpoint of an edge, adding it
// the first time the edge is split
func (m *subdivisionMesh) midpoint(i0, i1 int) int {
	key := newEdgeKey(i0, i1)
	if index, ok := m.midpoints[key]; ok {
		return index
	}

	p := m.positions[i0].Add(m.positions[i1]).Mul(0.5).Normalize()
	index := len(m.positions)
	m.positions = append(m.positions, p)
	m.midpoints[key] = index
	return index
}
