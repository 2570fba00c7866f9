package tessellation

import (
	"errors"
	"math"
	"slices"
	"testing"

	"globemesh/core"
)

func TestQuadCubeCounts(t *testing.T) {
	for n := 1; n <= 12; n++ {
		m, err := QuadCubeEllipsoidTessellator(core.UnitSphere, n, core.Position)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		wantVertices := 8 + 12*(n-1) + 6*(n-1)*(n-1)
		if got := m.NumberOfVertices(); got != wantVertices {
			t.Errorf("n=%d: got %d vertices, want %d", n, got, wantVertices)
		}
		if got := m.NumberOfTriangles(); got != 6*2*n*n {
			t.Errorf("n=%d: got %d triangles, want %d", n, got, 6*2*n*n)
		}
		if QuadCubeVertexCount(n) != wantVertices || QuadCubeTriangleCount(n) != 6*2*n*n {
			t.Errorf("n=%d: closed forms disagree", n)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("n=%d: %v", n, err)
		}
	}
}

func TestQuadCubeZeroPartitions(t *testing.T) {
	m, err := QuadCubeEllipsoidTessellator(core.UnitSphere, 0, core.Position)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumberOfVertices() != 8 || m.NumberOfTriangles() != 0 {
		t.Errorf("got %d vertices, %d triangles, want 8 and 0", m.NumberOfVertices(), m.NumberOfTriangles())
	}
	checkSurface(t, core.UnitSphere, m, 1e-12)
}

func TestQuadCubeSurface(t *testing.T) {
	for _, tc := range testEllipsoids {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range []int{1, 2, 5, 8} {
				m, err := QuadCubeEllipsoidTessellator(tc.e, n, core.All)
				if err != nil {
					t.Fatalf("n=%d: %v", n, err)
				}
				checkSurface(t, tc.e, m, 1e-12)
				checkClosedManifold(t, m)
				checkOutward(t, m)
				checkDistinct(t, m)
				checkDerivedStreams(t, tc.e, m)
			}
		})
	}
}

// Faces that meet along a cube edge must walk the same vertex indices
func TestQuadCubeSharedEdges(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		m := newQuadCubeMesh(n, QuadCubeVertexCount(n))
		m.addCorners()
		edges := m.addEdges()
		faces := cubeFaces(edges)

		for k, edge := range edges {
			if len(edge) != n+1 {
				t.Fatalf("n=%d: edge %d has %d indices, want %d", n, k, len(edge), n+1)
			}

			users := 0
			for _, f := range faces {
				for _, side := range [][]int{f.left, f.bottom, f.right, f.top} {
					if slices.Equal(side, edge) || slices.Equal(side, reversed(edge)) {
						users++
					}
				}
			}
			if users != 2 {
				t.Errorf("n=%d: edge %d bounds %d faces, want 2", n, k, users)
			}
		}

		for i, f := range faces {
			if f.left[0] != f.bottom[0] || f.bottom[n] != f.right[0] ||
				f.left[n] != f.top[0] || f.right[n] != f.top[n] {
				t.Errorf("n=%d: face %d edges do not meet at its corners", n, i)
			}
		}

		// Filling the faces must not add edge vertices
		before := len(m.positions)
		for _, f := range faces {
			m.addFace(f)
		}
		if got, want := len(m.positions)-before, 6*(n-1)*(n-1); got != want {
			t.Errorf("n=%d: faces added %d vertices, want %d", n, got, want)
		}
	}
}

func TestQuadCubeGeodeticNormals(t *testing.T) {
	e := core.MustEllipsoid(1, 1, 0.8)
	m, err := QuadCubeEllipsoidTessellator(e, 6, core.Position|core.Normal)
	if err != nil {
		t.Fatal(err)
	}
	if m.TextureCoordinates() != nil {
		t.Error("texture coordinates were not requested")
	}

	differing := 0
	for i, p := range m.Positions() {
		n := m.Normals()[i]
		centric := p.Normalize()
		onEquator := p[2] > -1e-12 && p[2] < 1e-12
		if onEquator || isPole(p) {
			continue
		}
		if n.ApproxEqualThreshold(centric, 1e-6) {
			t.Errorf("vertex %d %v: geodetic normal equals geocentric", i, p)
		}
		differing++
	}
	if differing == 0 {
		t.Error("no off-equator vertices checked")
	}
}

func TestQuadCubePreconditions(t *testing.T) {
	tests := []struct {
		name       string
		e          core.Ellipsoid
		partitions int
		attributes core.VertexAttributes
		want       error
	}{
		{"negative partitions", core.UnitSphere, -1, core.Position, core.ErrArgumentOutOfRange},
		{"normals without positions", core.UnitSphere, 4, core.Normal, core.ErrInvalidArgument},
		{"no attributes", core.UnitSphere, 4, 0, core.ErrInvalidArgument},
		{"zero ellipsoid", core.Ellipsoid{}, 4, core.Position, core.ErrInvalidArgument},
		{"too many vertices for uint32", core.UnitSphere, 26755, core.Position, core.ErrArgumentOutOfRange},
		{"partition count overflows", core.UnitSphere, 1 << 31, core.Position, core.ErrArgumentOutOfRange},
		{"largest int", core.UnitSphere, math.MaxInt, core.Position, core.ErrArgumentOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := QuadCubeEllipsoidTessellator(tc.e, tc.partitions, tc.attributes)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
			if m != nil {
				t.Error("a mesh was returned with the error")
			}
		})
	}
}

func TestQuadCubeInterleave(t *testing.T) {
	m, err := QuadCubeEllipsoidTessellator(core.ScaledWgs84, 3, core.All)
	if err != nil {
		t.Fatal(err)
	}
	vertices, indices, stride := m.Interleave()
	if stride != 8 {
		t.Errorf("stride: got %d, want 8", stride)
	}
	if len(vertices) != stride*m.NumberOfVertices() || len(indices) != 3*m.NumberOfTriangles() {
		t.Errorf("got %d floats, %d indices", len(vertices), len(indices))
	}
}

func TestProductAtMost(t *testing.T) {
	tests := []struct {
		a, b  int
		limit uint64
		want  bool
	}{
		{0, math.MaxInt, 0, true},
		{1 << 32, 1, maxIndexedVertices, true},
		{1<<32 + 1, 1, maxIndexedVertices, false},
		{26754, 26754, (maxIndexedVertices - 2) / 6, true},
		{26755, 26755, (maxIndexedVertices - 2) / 6, false},
		{math.MaxInt, math.MaxInt, math.MaxUint64, false},
	}

	for _, tc := range tests {
		if got := productAtMost(tc.a, tc.b, tc.limit); got != tc.want {
			t.Errorf("productAtMost(%d, %d, %d): got %v, want %v", tc.a, tc.b, tc.limit, got, tc.want)
		}
	}
}
