package tessellation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"globemesh/core"
)

// GeographicGridVertexCount is one vertex per pole plus a ring of slices
// vertices for every interior stack boundary
func GeographicGridVertexCount(numberOfSlicePartitions, numberOfStackPartitions int) int {
	return 2 + (numberOfStackPartitions-1)*numberOfSlicePartitions
}

func GeographicGridTriangleCount(numberOfSlicePartitions, numberOfStackPartitions int) int {
	return 2 * numberOfSlicePartitions * (numberOfStackPartitions - 1)
}

// GeographicGridEllipsoidTessellator builds a latitude/longitude grid: slices
// meridians and stacks bands from pole to pole. The poles are single
// vertices joined to the nearest ring by triangle fans.
func GeographicGridEllipsoidTessellator(e core.Ellipsoid, numberOfSlicePartitions, numberOfStackPartitions int, attributes core.VertexAttributes) (*core.Mesh, error) {
	if err := checkEllipsoid(e); err != nil {
		return nil, err
	}
	if numberOfSlicePartitions < 3 {
		return nil, fmt.Errorf("%w: numberOfSlicePartitions must be at least 3, got %d",
			core.ErrArgumentOutOfRange, numberOfSlicePartitions)
	}
	if numberOfStackPartitions < 2 {
		return nil, fmt.Errorf("%w: numberOfStackPartitions must be at least 2, got %d",
			core.ErrArgumentOutOfRange, numberOfStackPartitions)
	}
	if err := attributes.RequirePosition(); err != nil {
		return nil, err
	}

	slices, stacks := numberOfSlicePartitions, numberOfStackPartitions
	if !productAtMost(stacks-1, slices, maxIndexedVertices-2) {
		return nil, fmt.Errorf("%w: %dx%d grid needs more than %d vertices",
			core.ErrArgumentOutOfRange, slices, stacks, uint64(maxIndexedVertices))
	}
	vertexCount := GeographicGridVertexCount(slices, stacks)

	indices := core.NewIndicesUnsignedInt(3 * GeographicGridTriangleCount(slices, stacks))
	streams := newMeshStreams(attributes, vertexCount, indices)
	radii := e.Radii()

	cosTheta := make([]float64, slices)
	sinTheta := make([]float64, slices)
	for j := 0; j < slices; j++ {
		theta := 2.0 * math.Pi * float64(j) / float64(slices)
		cosTheta[j] = math.Cos(theta)
		sinTheta[j] = math.Sin(theta)
	}

	streams.add(e, mgl64.Vec3{0, 0, radii[2]})
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		sinPhi := math.Sin(phi)
		cosPhi := math.Cos(phi)

		for j := 0; j < slices; j++ {
			direction := mgl64.Vec3{cosTheta[j] * sinPhi, sinTheta[j] * sinPhi, cosPhi}
			streams.add(e, core.MultiplyComponents(direction, radii))
		}
	}
	streams.add(e, mgl64.Vec3{0, 0, -radii[2]})

	// North cap
	for j := 0; j < slices; j++ {
		indices.AddTriangle(0, 1+j, 1+(j+1)%slices)
	}

	// Bands between rings; each quad is split (bl, br, tr), (bl, tr, tl)
	for i := 0; i < stacks-2; i++ {
		top := 1 + i*slices
		bottom := top + slices
		for j := 0; j < slices; j++ {
			next := (j + 1) % slices
			indices.AddTriangle(bottom+j, bottom+next, top+next)
			indices.AddTriangle(bottom+j, top+next, top+j)
		}
	}

	// South cap
	southPole := vertexCount - 1
	lastRing := 1 + (stacks-2)*slices
	for j := 0; j < slices; j++ {
		indices.AddTriangle(southPole, lastRing+(j+1)%slices, lastRing+j)
	}

	return streams.mesh, nil
}
