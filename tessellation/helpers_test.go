package tessellation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"globemesh/core"
)

// checkSurface fails if any position is off the ellipsoid
func checkSurface(t *testing.T, e core.Ellipsoid, m *core.Mesh, eps float64) {
	t.Helper()
	oorr := e.OneOverRadiiSquared()
	for i, p := range m.Positions() {
		r := p[0]*p[0]*oorr[0] + p[1]*p[1]*oorr[1] + p[2]*p[2]*oorr[2]
		if math.Abs(r-1) > eps {
			t.Fatalf("vertex %d %v is off the surface: %.15f", i, p, r)
		}
	}
}

// checkClosedManifold fails unless every directed edge appears exactly once
// and its reverse also appears: a watertight, consistently wound surface
// with no T-junctions.
func checkClosedManifold(t *testing.T, m *core.Mesh) {
	t.Helper()
	directed := make(map[[2]uint32]int)
	ix := m.Indices.Values
	for i := 0; i < len(ix); i += 3 {
		for k := 0; k < 3; k++ {
			a, b := ix[i+k], ix[i+(k+1)%3]
			if a == b {
				t.Fatalf("triangle %d is degenerate: %v", i/3, ix[i:i+3])
			}
			directed[[2]uint32{a, b}]++
		}
	}
	for edge, count := range directed {
		if count != 1 {
			t.Fatalf("directed edge %v used %d times", edge, count)
		}
		if directed[[2]uint32{edge[1], edge[0]}] != 1 {
			t.Fatalf("edge %v has no opposite half-edge", edge)
		}
	}
}

// checkOutward fails if a triangle is not counterclockwise seen from outside
func checkOutward(t *testing.T, m *core.Mesh) {
	t.Helper()
	positions := m.Positions()
	ix := m.Indices.Values
	for i := 0; i < len(ix); i += 3 {
		p0, p1, p2 := positions[ix[i]], positions[ix[i+1]], positions[ix[i+2]]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3.0)
		if normal.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d %v faces inward", i/3, ix[i:i+3])
		}
	}
}

// checkDistinct fails if two vertices coincide
func checkDistinct(t *testing.T, m *core.Mesh) {
	t.Helper()
	seen := make(map[[3]int64]int)
	for i, p := range m.Positions() {
		key := [3]int64{
			int64(math.Round(p[0] * 1e9)),
			int64(math.Round(p[1] * 1e9)),
			int64(math.Round(p[2] * 1e9)),
		}
		if j, ok := seen[key]; ok {
			t.Fatalf("vertices %d and %d coincide at %v", j, i, p)
		}
		seen[key] = i
	}
}

// checkDerivedStreams fails unless normals and texture coordinates match
// what the shared helpers compute from each position
func checkDerivedStreams(t *testing.T, e core.Ellipsoid, m *core.Mesh) {
	t.Helper()
	positions := m.Positions()
	normals := m.Normals()
	texCoords := m.TextureCoordinates()
	if len(normals) != len(positions) || len(texCoords) != len(positions) {
		t.Fatalf("got %d normals, %d texcoords for %d positions", len(normals), len(texCoords), len(positions))
	}
	for i, p := range positions {
		want := e.DeticSurfaceNormal(p)
		if normals[i] != want {
			t.Fatalf("normal %d: got %v, want %v", i, normals[i], want)
		}
		if tc := core.ComputeTextureCoordinate(want); texCoords[i] != tc {
			t.Fatalf("texcoord %d: got %v, want %v", i, texCoords[i], tc)
		}
		if u, v := texCoords[i][0], texCoords[i][1]; u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("texcoord %d out of range: %v", i, texCoords[i])
		}
	}
}

var testEllipsoids = []struct {
	name string
	e    core.Ellipsoid
}{
	{"unit sphere", core.UnitSphere},
	{"scaled wgs84", core.ScaledWgs84},
	{"triaxial", core.MustEllipsoid(3, 2, 1)},
	{"wgs84", core.Wgs84},
}

func isPole(p mgl64.Vec3) bool {
	return math.Abs(p[0]) < 1e-12 && math.Abs(p[1]) < 1e-12
}
