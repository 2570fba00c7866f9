package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// NumberOfTriangles is the triangle capacity for a tetrahedron seed
// subdivided the given number of times: 4 * Σ_{i=0..n} 4^i. Every level is
// counted on top of the ones below it, so this is an upper bound.
func NumberOfTriangles(numberOfSubdivisions int) int {
	numberOfTriangles := 0
	for i := 0; i <= numberOfSubdivisions; i++ {
		numberOfTriangles += pow4(i)
	}
	return 4 * numberOfTriangles
}

// NumberOfVertices is the vertex capacity for the same layout:
// 4 + 12 * Σ_{i=0..n-1} 4^i, three fresh midpoints per split triangle.
func NumberOfVertices(numberOfSubdivisions int) int {
	numberOfVertices := 0
	for i := 0; i < numberOfSubdivisions; i++ {
		numberOfVertices += pow4(i)
	}
	return 4 + 12*numberOfVertices
}

func pow4(n int) int {
	return 1 << (2 * uint(n))
}

// ComputeTextureCoordinate maps a unit direction to longitude/latitude texture
// space, both in [0, 1]. At the poles u is whatever atan2 gives for (0, 0).
// z is clamped so rounding just past ±1 cannot produce NaN.
func ComputeTextureCoordinate(unitNormal mgl64.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(math.Atan2(unitNormal[1], unitNormal[0])/(2*math.Pi) + 0.5),
		float32(math.Asin(mgl64.Clamp(unitNormal[2], -1, 1))/math.Pi + 0.5),
	}
}
