package core

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func triangleMesh() *Mesh {
	m := NewMesh()
	positions := NewVertexAttributeDoubleVector3(PositionAttributeName, 3)
	positions.Values = append(positions.Values, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1})
	m.AddAttribute(positions)
	m.Indices.AddTriangle(0, 1, 2)
	return m
}

func TestMeshValidate(t *testing.T) {
	if err := triangleMesh().Validate(); err != nil {
		t.Fatalf("valid mesh: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(m *Mesh)
		want   error
	}{
		{"index out of range", func(m *Mesh) { m.Indices.Values[2] = 3 }, ErrArgumentOutOfRange},
		{"partial triangle", func(m *Mesh) { m.Indices.Values = append(m.Indices.Values, 0) }, ErrInvalidArgument},
		{"short normal stream", func(m *Mesh) {
			normals := NewVertexAttributeDoubleVector3(NormalAttributeName, 1)
			normals.Values = append(normals.Values, mgl64.Vec3{0, 0, 1})
			m.AddAttribute(normals)
		}, ErrInvalidArgument},
		{"no positions", func(m *Mesh) { delete(m.Attributes, PositionAttributeName) }, ErrInvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := triangleMesh()
			tc.mutate(m)
			if err := m.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMeshInterleave(t *testing.T) {
	m := triangleMesh()

	vertices, indices, stride := m.Interleave()
	if stride != 3 || len(vertices) != 9 {
		t.Fatalf("positions only: stride %d, %d floats", stride, len(vertices))
	}
	if len(indices) != 3 {
		t.Fatalf("got %d indices, want 3", len(indices))
	}

	normals := NewVertexAttributeDoubleVector3(NormalAttributeName, 3)
	texCoords := NewVertexAttributeFloatVector2(TextureCoordinateAttributeName, 3)
	for _, p := range m.Positions() {
		normals.Values = append(normals.Values, p)
		texCoords.Values = append(texCoords.Values, mgl32.Vec2{0.25, 0.75})
	}
	m.AddAttribute(normals)
	m.AddAttribute(texCoords)

	vertices, _, stride = m.Interleave()
	if stride != 8 || len(vertices) != 24 {
		t.Fatalf("all streams: stride %d, %d floats", stride, len(vertices))
	}
	// Second vertex: position, normal, texcoord
	want := []float32{0, 1, 0, 0, 1, 0, 0.25, 0.75}
	for i, v := range want {
		if vertices[stride+i] != v {
			t.Errorf("float %d: got %f, want %f", i, vertices[stride+i], v)
		}
	}

	// The returned indices are a copy
	indices[0] = 99
	if m.Indices.Values[0] == 99 {
		t.Error("Interleave shares the index slice")
	}
}

func TestMeshCounts(t *testing.T) {
	m := triangleMesh()
	if m.NumberOfVertices() != 3 || m.NumberOfTriangles() != 1 {
		t.Errorf("got %d vertices, %d triangles", m.NumberOfVertices(), m.NumberOfTriangles())
	}
	if m.Normals() != nil || m.TextureCoordinates() != nil {
		t.Error("absent streams should be nil")
	}
	if m.PrimitiveType != Triangles || m.FrontFaceWindingOrder != Counterclockwise {
		t.Errorf("got %s %s", m.PrimitiveType, m.FrontFaceWindingOrder)
	}
}

func TestVertexAttributes(t *testing.T) {
	a, err := ParseVertexAttributes([]string{"position", " Normal "})
	if err != nil {
		t.Fatal(err)
	}
	if a != Position|Normal {
		t.Errorf("got %s, want position|normal", a)
	}
	if a.Has(TextureCoordinate) || !a.Has(Position|Normal) {
		t.Errorf("Has is wrong for %s", a)
	}
	if a.String() != "position|normal" {
		t.Errorf("String: got %q", a.String())
	}

	all, err := ParseVertexAttributes([]string{"all"})
	if err != nil || all != All {
		t.Errorf("all: got %s, %v", all, err)
	}

	if _, err := ParseVertexAttributes([]string{"colour"}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown name: got %v", err)
	}

	if err := Normal.RequirePosition(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RequirePosition without position: got %v", err)
	}
	if err := All.RequirePosition(); err != nil {
		t.Errorf("RequirePosition with position: got %v", err)
	}
	if VertexAttributes(0).String() != "none" {
		t.Errorf("empty set: got %q", VertexAttributes(0).String())
	}
}
