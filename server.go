package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"globemesh/config"
	"globemesh/core"
	"globemesh/tessellation"
)

// MeshData is sent to the browser for rendering
type MeshData struct {
	Type          string       `json:"type"`
	Tessellator   string       `json:"tessellator"`
	Level         int          `json:"level"`
	Radii         [3]float64   `json:"radii"`
	Vertices      [][3]float64 `json:"vertices"`
	Normals       [][3]float64 `json:"normals,omitempty"`
	TexCoords     [][2]float32 `json:"texCoords,omitempty"`
	Indices       []uint32     `json:"indices"`
	VertexCount   int          `json:"vertexCount"`
	TriangleCount int          `json:"triangleCount"`
}

type ErrorData struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// MeshRequest is what a client sends to ask for a different mesh. Omitted
// fields fall back to the configured tessellation.
type MeshRequest struct {
	Tessellator string    `json:"tessellator"`
	Level       *int      `json:"level"`
	Stacks      int       `json:"stacks"`
	Radii       []float64 `json:"radii"`
	Attributes  []string  `json:"attributes"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// maxCachedMeshes bounds the mesh cache; it is emptied when full
const maxCachedMeshes = 32

type meshServer struct {
	settings config.Settings
	defaults tessellation.Request

	cacheMutex sync.Mutex
	cache      map[string]*MeshData
}

func newMeshServer(settings config.Settings) (*meshServer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	defaults, err := settings.Tessellation.Request()
	if err != nil {
		return nil, err
	}
	return &meshServer{
		settings: settings,
		defaults: defaults,
		cache:    make(map[string]*MeshData),
	}, nil
}

// warm computes the default and preloaded meshes in parallel and caches them
func (s *meshServer) warm(ctx context.Context) (int, error) {
	requests := []tessellation.Request{s.defaults}
	for _, p := range s.settings.Server.Preload {
		r, err := p.Request()
		if err != nil {
			return 0, err
		}
		requests = append(requests, r)
	}

	meshes, err := tessellation.ComputeAll(ctx, requests, s.settings.Workers)
	if err != nil {
		return 0, err
	}

	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	for i, m := range meshes {
		s.cache[requests[i].Key()] = newMeshData(requests[i], m)
	}
	return len(meshes), nil
}

func (s *meshServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	return mux
}

func (s *meshServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	// Send initial mesh data
	if err := s.reply(conn, s.defaults); err != nil {
		log.Println("WebSocket write error:", err)
		return
	}

	for {
		var msg MeshRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			return
		}

		req, err := s.resolve(msg)
		if err != nil {
			if err := conn.WriteJSON(ErrorData{Type: "error", Error: err.Error()}); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
			continue
		}
		if err := s.reply(conn, req); err != nil {
			log.Println("WebSocket write error:", err)
			return
		}
	}
}

// reply sends the mesh for req, or an error message if it cannot be built
func (s *meshServer) reply(conn *websocket.Conn, req tessellation.Request) error {
	data, err := s.mesh(req)
	if err != nil {
		return conn.WriteJSON(ErrorData{Type: "error", Error: err.Error()})
	}
	return conn.WriteJSON(data)
}

// resolve fills a client request from the defaults and checks the limits
func (s *meshServer) resolve(msg MeshRequest) (tessellation.Request, error) {
	req := s.defaults

	if msg.Tessellator != "" {
		kind, err := tessellation.ParseKind(msg.Tessellator)
		if err != nil {
			return req, err
		}
		req.Kind = kind
	}
	if msg.Level != nil {
		req.Level = *msg.Level
	}
	if msg.Stacks != 0 {
		req.Stacks = msg.Stacks
	}
	if len(msg.Radii) != 0 {
		if len(msg.Radii) != 3 {
			return req, fmt.Errorf("%w: radii needs 3 values, got %d", core.ErrInvalidArgument, len(msg.Radii))
		}
		e, err := core.NewEllipsoidFromRadii(mgl64.Vec3{msg.Radii[0], msg.Radii[1], msg.Radii[2]})
		if err != nil {
			return req, err
		}
		req.Ellipsoid = e
	}
	if len(msg.Attributes) != 0 {
		attributes, err := core.ParseVertexAttributes(msg.Attributes)
		if err != nil {
			return req, err
		}
		req.Attributes = attributes
	}

	if limit := s.settings.Server.LevelLimit(req.Kind); req.Level > limit {
		return req, fmt.Errorf("%w: level %d exceeds limit %d for %s", core.ErrArgumentOutOfRange, req.Level, limit, req.Kind)
	}
	if req.Stacks > s.settings.Server.MaxLevel {
		return req, fmt.Errorf("%w: stacks %d exceeds maxLevel %d", core.ErrArgumentOutOfRange, req.Stacks, s.settings.Server.MaxLevel)
	}
	return req, nil
}

// mesh returns the cached mesh for req, computing it on a miss. Concurrent
// misses for the same key may both compute; the results are identical.
func (s *meshServer) mesh(req tessellation.Request) (*MeshData, error) {
	key := req.Key()

	s.cacheMutex.Lock()
	data, ok := s.cache[key]
	s.cacheMutex.Unlock()
	if ok {
		return data, nil
	}

	m, err := tessellation.Compute(req)
	if err != nil {
		return nil, err
	}
	data = newMeshData(req, m)

	s.cacheMutex.Lock()
	if len(s.cache) >= maxCachedMeshes {
		clear(s.cache)
	}
	s.cache[key] = data
	s.cacheMutex.Unlock()

	log.Printf("Computed %s: %d vertices, %d triangles", key, data.VertexCount, data.TriangleCount)
	return data, nil
}

func newMeshData(req tessellation.Request, m *core.Mesh) *MeshData {
	radii := req.Ellipsoid.Radii()
	if req.Kind == tessellation.SubdivisionSphere {
		radii = core.UnitSphere.Radii()
	}

	data := &MeshData{
		Type:          "mesh",
		Tessellator:   req.Kind.String(),
		Level:         req.Level,
		Radii:         [3]float64(radii),
		VertexCount:   m.NumberOfVertices(),
		TriangleCount: m.NumberOfTriangles(),
		Indices:       m.Indices.Values,
	}

	positions := m.Positions()
	data.Vertices = make([][3]float64, len(positions))
	for i, p := range positions {
		data.Vertices[i] = [3]float64(p)
	}
	if normals := m.Normals(); normals != nil {
		data.Normals = make([][3]float64, len(normals))
		for i, n := range normals {
			data.Normals[i] = [3]float64(n)
		}
	}
	if texCoords := m.TextureCoordinates(); texCoords != nil {
		data.TexCoords = make([][2]float32, len(texCoords))
		for i, t := range texCoords {
			data.TexCoords[i] = [2]float32(t)
		}
	}
	return data
}
