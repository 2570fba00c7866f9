package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"globemesh/core"
	"globemesh/tessellation"
)

type Settings struct {
	Tessellation TessellationSettings `json:"tessellation"`
	Server       ServerSettings       `json:"server"`
	Workers      int                  `json:"workers"`
}

// TessellationSettings is the mesh served when a client does not ask for one
type TessellationSettings struct {
	Tessellator string     `json:"tessellator"`
	Level       int        `json:"level"`
	Stacks      int        `json:"stacks"`
	Radii       [3]float64 `json:"radii"`
	Attributes  []string   `json:"attributes"`
	Comment     string     `json:"comment"`
}

type ServerSettings struct {
	Port int `json:"port"`
	// MaxLevel caps the level a client may request
	MaxLevel int `json:"maxLevel"`
	// MaxSubdivisionLevel caps the subdivision kinds, whose size grows by 4x
	// per level
	MaxSubdivisionLevel int `json:"maxSubdivisionLevel"`
	// Preload lists extra meshes computed at startup
	Preload []TessellationSettings `json:"preload"`
}

// Default returns the settings used when no file is present
func Default() Settings {
	radii := core.ScaledWgs84.Radii()
	return Settings{
		Tessellation: TessellationSettings{
			Tessellator: tessellation.QuadCube.String(),
			Level:       16,
			Radii:       [3]float64{radii[0], radii[1], radii[2]},
			Attributes:  []string{"all"},
		},
		Server: ServerSettings{
			Port:                8080,
			MaxLevel:            256,
			MaxSubdivisionLevel: 8,
		},
		Workers: 4,
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	s := Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No %s found, using defaults", path)
			return s, nil
		}
		return s, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return s, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid %s: %w", path, err)
	}

	log.Printf("Loaded settings: %s level %d (~%d vertices)",
		s.Tessellation.Tessellator, s.Tessellation.Level, ApproximateVertexCount(s.Tessellation))
	return s, nil
}

// Validate checks the settings without tessellating anything
func (s Settings) Validate() error {
	r, err := s.Tessellation.Request()
	if err != nil {
		return err
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", core.ErrArgumentOutOfRange, s.Server.Port)
	}
	if s.Server.MaxLevel < 0 {
		return fmt.Errorf("%w: maxLevel %d", core.ErrArgumentOutOfRange, s.Server.MaxLevel)
	}
	if s.Server.MaxSubdivisionLevel < 0 || s.Server.MaxSubdivisionLevel > tessellation.MaxSubdivisionLevel {
		return fmt.Errorf("%w: maxSubdivisionLevel %d not in [0, %d]",
			core.ErrArgumentOutOfRange, s.Server.MaxSubdivisionLevel, tessellation.MaxSubdivisionLevel)
	}
	if limit := s.Server.LevelLimit(r.Kind); r.Level > limit {
		return fmt.Errorf("%w: level %d exceeds limit %d for %s", core.ErrArgumentOutOfRange, r.Level, limit, r.Kind)
	}
	for i, p := range s.Server.Preload {
		if _, err := p.Request(); err != nil {
			return fmt.Errorf("preload %d: %w", i, err)
		}
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers %d", core.ErrArgumentOutOfRange, s.Workers)
	}
	return nil
}

// LevelLimit is the deepest level a client may request for kind
func (s ServerSettings) LevelLimit(kind tessellation.Kind) int {
	if kind == tessellation.SubdivisionSphere || kind == tessellation.SubdivisionEllipsoid {
		return min(s.MaxLevel, s.MaxSubdivisionLevel)
	}
	return s.MaxLevel
}

// Request converts the settings into a tessellation request
func (t TessellationSettings) Request() (tessellation.Request, error) {
	kind, err := tessellation.ParseKind(t.Tessellator)
	if err != nil {
		return tessellation.Request{}, err
	}
	e, err := core.NewEllipsoidFromRadii(mgl64.Vec3(t.Radii))
	if err != nil {
		return tessellation.Request{}, err
	}
	attributes, err := core.ParseVertexAttributes(t.Attributes)
	if err != nil {
		return tessellation.Request{}, err
	}
	if err := attributes.RequirePosition(); err != nil {
		return tessellation.Request{}, err
	}
	if t.Level < 0 || t.Stacks < 0 {
		return tessellation.Request{}, fmt.Errorf("%w: level %d, stacks %d", core.ErrArgumentOutOfRange, t.Level, t.Stacks)
	}
	return tessellation.Request{
		Kind:       kind,
		Ellipsoid:  e,
		Level:      t.Level,
		Stacks:     t.Stacks,
		Attributes: attributes,
	}, nil
}

// ApproximateVertexCount estimates the mesh size for logging, or 0 when the
// settings do not describe a valid request
func ApproximateVertexCount(t TessellationSettings) int {
	r, err := t.Request()
	if err != nil {
		return 0
	}
	return r.VertexCapacity()
}
