package tessellation

import (
	"fmt"
	"math/bits"

	"github.com/go-gl/mathgl/mgl64"

	"globemesh/core"
)

// meshStreams owns the output mesh of one tessellation call and the streams
// it fills. Normals and texture coordinates are derived from each final
// position as it is added, so they always line up with the positions.
type meshStreams struct {
	mesh      *core.Mesh
	positions *core.VertexAttributeDoubleVector3
	normals   *core.VertexAttributeDoubleVector3
	texCoords *core.VertexAttributeFloatVector2
}

func newMeshStreams(attributes core.VertexAttributes, vertexCapacity int, indices *core.IndicesUnsignedInt) *meshStreams {
	s := &meshStreams{mesh: core.NewMesh()}
	s.mesh.Indices = indices

	s.positions = core.NewVertexAttributeDoubleVector3(core.PositionAttributeName, vertexCapacity)
	s.mesh.AddAttribute(s.positions)

	if attributes.Has(core.Normal) {
		s.normals = core.NewVertexAttributeDoubleVector3(core.NormalAttributeName, vertexCapacity)
		s.mesh.AddAttribute(s.normals)
	}
	if attributes.Has(core.TextureCoordinate) {
		s.texCoords = core.NewVertexAttributeFloatVector2(core.TextureCoordinateAttributeName, vertexCapacity)
		s.mesh.AddAttribute(s.texCoords)
	}
	return s
}

// add appends a vertex that already lies on the surface of e
func (s *meshStreams) add(e core.Ellipsoid, p mgl64.Vec3) {
	s.positions.Values = append(s.positions.Values, p)
	if s.normals == nil && s.texCoords == nil {
		return
	}

	n := e.DeticSurfaceNormal(p)
	if s.normals != nil {
		s.normals.Values = append(s.normals.Values, n)
	}
	if s.texCoords != nil {
		s.texCoords.Values = append(s.texCoords.Values, core.ComputeTextureCoordinate(n))
	}
}

// projectOntoEllipsoid pushes p out along its own direction and scales by the
// radii. This is not the nearest surface point (see
// Ellipsoid.ScaleToGeodeticSurface); downstream shading expects exactly this
// mapping, so keep it.
func projectOntoEllipsoid(e core.Ellipsoid, p mgl64.Vec3) mgl64.Vec3 {
	return core.MultiplyComponents(p.Normalize(), e.Radii())
}

// maxIndexedVertices keeps every index representable as uint32
const maxIndexedVertices = 1 << 32

// productAtMost reports whether a*b <= limit without overflowing. a and b
// must not be negative.
func productAtMost(a, b int, limit uint64) bool {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return hi == 0 && lo <= limit
}

func checkEllipsoid(e core.Ellipsoid) error {
	if !e.Valid() {
		return fmt.Errorf("%w: ellipsoid is not initialised", core.ErrInvalidArgument)
	}
	return nil
}
