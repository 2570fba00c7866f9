package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type PrimitiveType int

const (
	Triangles PrimitiveType = iota
)

func (p PrimitiveType) String() string {
	if p == Triangles {
		return "triangles"
	}
	return fmt.Sprintf("PrimitiveType(%d)", int(p))
}

type WindingOrder int

const (
	Counterclockwise WindingOrder = iota
	Clockwise
)

func (w WindingOrder) String() string {
	switch w {
	case Counterclockwise:
		return "counterclockwise"
	case Clockwise:
		return "clockwise"
	}
	return fmt.Sprintf("WindingOrder(%d)", int(w))
}

// VertexAttribute is one named per-vertex stream
type VertexAttribute interface {
	Name() string
	Len() int
	// Components is the number of scalars per vertex
	Components() int
}

// VertexAttributeDoubleVector3 holds positions or normals
type VertexAttributeDoubleVector3 struct {
	name   string
	Values []mgl64.Vec3
}

func NewVertexAttributeDoubleVector3(name string, capacity int) *VertexAttributeDoubleVector3 {
	return &VertexAttributeDoubleVector3{name: name, Values: make([]mgl64.Vec3, 0, capacity)}
}

func (a *VertexAttributeDoubleVector3) Name() string    { return a.name }
func (a *VertexAttributeDoubleVector3) Len() int        { return len(a.Values) }
func (a *VertexAttributeDoubleVector3) Components() int { return 3 }

// VertexAttributeFloatVector2 holds texture coordinates
type VertexAttributeFloatVector2 struct {
	name   string
	Values []mgl32.Vec2
}

func NewVertexAttributeFloatVector2(name string, capacity int) *VertexAttributeFloatVector2 {
	return &VertexAttributeFloatVector2{name: name, Values: make([]mgl32.Vec2, 0, capacity)}
}

func (a *VertexAttributeFloatVector2) Name() string    { return a.name }
func (a *VertexAttributeFloatVector2) Len() int        { return len(a.Values) }
func (a *VertexAttributeFloatVector2) Components() int { return 2 }

// IndicesUnsignedInt is a triangle list; every three values form one triangle
type IndicesUnsignedInt struct {
	Values []uint32
}

func NewIndicesUnsignedInt(capacity int) *IndicesUnsignedInt {
	return &IndicesUnsignedInt{Values: make([]uint32, 0, capacity)}
}

func (ix *IndicesUnsignedInt) AddTriangle(i0, i1, i2 int) {
	ix.Values = append(ix.Values, uint32(i0), uint32(i1), uint32(i2))
}

// Mesh is the tessellator output: named attribute streams plus a triangle
// index list.
type Mesh struct {
	PrimitiveType         PrimitiveType
	FrontFaceWindingOrder WindingOrder
	Attributes            map[string]VertexAttribute
	Indices               *IndicesUnsignedInt
}

// NewMesh returns an empty counterclockwise triangle mesh
func NewMesh() *Mesh {
	return &Mesh{
		PrimitiveType:         Triangles,
		FrontFaceWindingOrder: Counterclockwise,
		Attributes:            make(map[string]VertexAttribute),
		Indices:               &IndicesUnsignedInt{},
	}
}

// AddAttribute registers a stream under its name, replacing any previous one
func (m *Mesh) AddAttribute(a VertexAttribute) {
	m.Attributes[a.Name()] = a
}

func (m *Mesh) vector3(name string) []mgl64.Vec3 {
	if a, ok := m.Attributes[name].(*VertexAttributeDoubleVector3); ok {
		return a.Values
	}
	return nil
}

// Positions returns the position stream, or nil
func (m *Mesh) Positions() []mgl64.Vec3 { return m.vector3(PositionAttributeName) }

// Normals returns the normal stream, or nil
func (m *Mesh) Normals() []mgl64.Vec3 { return m.vector3(NormalAttributeName) }

// TextureCoordinates returns the texture coordinate stream, or nil
func (m *Mesh) TextureCoordinates() []mgl32.Vec2 {
	if a, ok := m.Attributes[TextureCoordinateAttributeName].(*VertexAttributeFloatVector2); ok {
		return a.Values
	}
	return nil
}

func (m *Mesh) NumberOfVertices() int {
	return len(m.Positions())
}

func (m *Mesh) NumberOfTriangles() int {
	if m.Indices == nil {
		return 0
	}
	return len(m.Indices.Values) / 3
}

// Validate checks that all streams have one entry per vertex and that the
// index list is whole triangles referencing existing vertices.
func (m *Mesh) Validate() error {
	if m.PrimitiveType != Triangles {
		return fmt.Errorf("%w: unsupported primitive type %s", ErrInvalidArgument, m.PrimitiveType)
	}
	if _, ok := m.Attributes[PositionAttributeName]; !ok {
		return fmt.Errorf("%w: mesh has no %s attribute", ErrInvalidArgument, PositionAttributeName)
	}

	vertexCount := m.NumberOfVertices()
	for name, a := range m.Attributes {
		if a.Len() != vertexCount {
			return fmt.Errorf("%w: attribute %s has %d values, want %d", ErrInvalidArgument, name, a.Len(), vertexCount)
		}
	}

	if m.Indices == nil {
		return nil
	}
	if len(m.Indices.Values)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidArgument, len(m.Indices.Values))
	}
	for i, index := range m.Indices.Values {
		if int(index) >= vertexCount {
			return fmt.Errorf("%w: index %d at %d exceeds vertex count %d", ErrArgumentOutOfRange, index, i, vertexCount)
		}
	}
	return nil
}

// Interleave packs the streams into one float32 slice, in position, normal,
// texture coordinate order, skipping streams the mesh does not have. The
// stride is in floats.
func (m *Mesh) Interleave() (vertices []float32, indices []uint32, stride int) {
	positions := m.Positions()
	normals := m.Normals()
	texCoords := m.TextureCoordinates()

	stride = 3
	if normals != nil {
		stride += 3
	}
	if texCoords != nil {
		stride += 2
	}

	vertices = make([]float32, 0, len(positions)*stride)
	for i, p := range positions {
		vertices = append(vertices, float32(p[0]), float32(p[1]), float32(p[2]))
		if normals != nil {
			n := normals[i]
			vertices = append(vertices, float32(n[0]), float32(n[1]), float32(n[2]))
		}
		if texCoords != nil {
			vertices = append(vertices, texCoords[i][0], texCoords[i][1])
		}
	}

	if m.Indices != nil {
		indices = append([]uint32(nil), m.Indices.Values...)
	}
	return vertices, indices, stride
}
