package tessellation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"globemesh/core"
)

// QuadCubeVertexCount is the number of vertices produced for n partitions:
// corners, edge interiors and face interiors.
func QuadCubeVertexCount(numberOfPartitions int) int {
	if numberOfPartitions <= 0 {
		return 8
	}
	n := numberOfPartitions - 1
	return 8 + 12*n + 6*n*n
}

// QuadCubeTriangleCount is 6 faces of n*n quads, two triangles each
func QuadCubeTriangleCount(numberOfPartitions int) int {
	return 6 * 2 * numberOfPartitions * numberOfPartitions
}

// QuadCubeEllipsoidTessellator splits each face of a cube into an n*n grid
// and projects every vertex onto the ellipsoid. Neighbouring faces share
// their edge vertices. Zero partitions yields the 8 corners and no
// triangles.
func QuadCubeEllipsoidTessellator(e core.Ellipsoid, numberOfPartitions int, attributes core.VertexAttributes) (*core.Mesh, error) {
	if err := checkEllipsoid(e); err != nil {
		return nil, err
	}
	if numberOfPartitions < 0 {
		return nil, fmt.Errorf("%w: numberOfPartitions must be greater than or equal to zero, got %d",
			core.ErrArgumentOutOfRange, numberOfPartitions)
	}
	if err := attributes.RequirePosition(); err != nil {
		return nil, err
	}
	// For n >= 1 the vertex count is 6n^2 + 2.
	if !productAtMost(numberOfPartitions, numberOfPartitions, (maxIndexedVertices-2)/6) {
		return nil, fmt.Errorf("%w: %d partitions need more than %d vertices",
			core.ErrArgumentOutOfRange, numberOfPartitions, uint64(maxIndexedVertices))
	}
	vertexCount := QuadCubeVertexCount(numberOfPartitions)

	m := newQuadCubeMesh(numberOfPartitions, vertexCount)
	m.addCorners()
	for _, f := range cubeFaces(m.addEdges()) {
		m.addFace(f)
	}

	streams := newMeshStreams(attributes, len(m.positions), m.indices)
	for _, p := range m.positions {
		streams.add(e, projectOntoEllipsoid(e, p))
	}
	return streams.mesh, nil
}

// quadCubeMesh accumulates cube-space positions and triangles for one call
type quadCubeMesh struct {
	partitions int
	positions  []mgl64.Vec3
	indices    *core.IndicesUnsignedInt
}

func newQuadCubeMesh(partitions, vertexCapacity int) *quadCubeMesh {
	return &quadCubeMesh{
		partitions: partitions,
		positions:  make([]mgl64.Vec3, 0, vertexCapacity),
		indices:    core.NewIndicesUnsignedInt(3 * QuadCubeTriangleCount(partitions)),
	}
}

// addCorners seeds the cube. Looking down -z at the plane z = -1:
//
//	              +y
//	               |
//	               * p3
//	             /   \
//	         p0 *     * p2  +x
//	             \   /
//	               * p1
//
// p4 to p7 repeat the ring in the plane z = 1.
func (m *quadCubeMesh) addCorners() {
	m.positions = append(m.positions,
		mgl64.Vec3{-1, 0, -1},
		mgl64.Vec3{0, -1, -1},
		mgl64.Vec3{1, 0, -1},
		mgl64.Vec3{0, 1, -1},
		mgl64.Vec3{-1, 0, 1},
		mgl64.Vec3{0, -1, 1},
		mgl64.Vec3{1, 0, 1},
		mgl64.Vec3{0, 1, 1},
	)
}

// cubeEdges holds index arrays for the twelve cube edges:
// 0-3 the z = -1 ring (p[i] to p[i+1]), 4-7 the z = 1 ring (p[i+4] to
// p[i+5]), 8-11 the verticals (p[i] to p[i+4]).
type cubeEdges [12][]int

func (m *quadCubeMesh) addEdges() cubeEdges {
	var edges cubeEdges
	for i := 0; i < 4; i++ {
		edges[i] = m.addEdge(i, (i+1)%4)
	}
	for i := 0; i < 4; i++ {
		edges[i+4] = m.addEdge(i+4, (i+1)%4+4)
	}
	for i := 0; i < 4; i++ {
		edges[i+8] = m.addEdge(i, i+4)
	}
	return edges
}

// addEdge interpolates the interior points between two corners and returns
// the full run of indices from start to end
func (m *quadCubeMesh) addEdge(start, end int) []int {
	edge := make([]int, 0, max(m.partitions+1, 2))
	edge = append(edge, start)

	origin := m.positions[start]
	length := m.positions[end].Sub(origin)
	for i := 1; i < m.partitions; i++ {
		delta := float64(i) / float64(m.partitions)
		edge = append(edge, len(m.positions))
		m.positions = append(m.positions, origin.Add(length.Mul(delta)))
	}

	return append(edge, end)
}

// cubeFace is a face described by its bounding edges. left and right run
// bottom to top, bottom and top run left to right, so that
// (bottom direction) x (left direction) points out of the cube.
type cubeFace struct {
	left, bottom, right, top []int
}

func cubeFaces(edges cubeEdges) [6]cubeFace {
	var faces [6]cubeFace
	for i := 0; i < 4; i++ {
		faces[i] = cubeFace{
			left:   edges[8+i],
			bottom: edges[i],
			right:  edges[8+(i+1)%4],
			top:    edges[4+i],
		}
	}

	// The caps see their rings from opposite sides, so each needs two of
	// its edges walked backwards.
	faces[4] = cubeFace{
		left:   edges[0],
		bottom: reversed(edges[3]),
		right:  reversed(edges[2]),
		top:    edges[1],
	}
	faces[5] = cubeFace{
		left:   reversed(edges[7]),
		bottom: edges[4],
		right:  edges[5],
		top:    reversed(edges[6]),
	}
	return faces
}

func reversed(edge []int) []int {
	r := make([]int, len(edge))
	for i, index := range edge {
		r[len(edge)-1-i] = index
	}
	return r
}

// addFace fills the face interior row by row. Two row buffers alternate as
// the row above; the row below starts as the face's bottom edge, which is
// never written to.
func (m *quadCubeMesh) addFace(f cubeFace) {
	n := m.partitions
	if n == 0 {
		return
	}

	origin := m.positions[f.bottom[0]]
	x := m.positions[f.bottom[n]].Sub(origin)
	y := m.positions[f.top[0]].Sub(origin)

	rows := [2][]int{make([]int, n+1), make([]int, n+1)}
	below := f.bottom
	for j := 1; j < n; j++ {
		above := rows[j%2]
		offsetY := y.Mul(float64(j) / float64(n))

		above[0] = f.left[j]
		above[n] = f.right[j]
		for i := 1; i < n; i++ {
			offsetX := x.Mul(float64(i) / float64(n))
			above[i] = len(m.positions)
			m.positions = append(m.positions, origin.Add(offsetX).Add(offsetY))
		}

		m.addStrip(below, above)
		below = above
	}

	m.addStrip(below, f.top)
}

// addStrip triangulates the quads between two rows of n+1 indices
func (m *quadCubeMesh) addStrip(below, above []int) {
	for i := 0; i < m.partitions; i++ {
		m.indices.AddTriangle(below[i], below[i+1], above[i+1])
		m.indices.AddTriangle(below[i], above[i+1], above[i])
	}
}
