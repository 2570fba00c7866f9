package core

import (
	"fmt"
	"strings"
)

// VertexAttributes selects which per-vertex streams a tessellator fills
type VertexAttributes uint8

const (
	Position VertexAttributes = 1 << iota
	Normal
	TextureCoordinate

	All = Position | Normal | TextureCoordinate
)

// Attribute stream names used in Mesh.Attributes
const (
	PositionAttributeName          = "position"
	NormalAttributeName            = "normal"
	TextureCoordinateAttributeName = "textureCoordinate"
)

var attributeNames = []struct {
	flag VertexAttributes
	name string
}{
	{Position, PositionAttributeName},
	{Normal, NormalAttributeName},
	{TextureCoordinate, TextureCoordinateAttributeName},
}

// Has reports whether every attribute in other is selected
func (a VertexAttributes) Has(other VertexAttributes) bool {
	return a&other == other
}

func (a VertexAttributes) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, n := range attributeNames {
		if a.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseVertexAttributes builds a set from stream names. "all" selects every
// stream.
func ParseVertexAttributes(names []string) (VertexAttributes, error) {
	var a VertexAttributes
	for _, name := range names {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, "all") {
			a |= All
			continue
		}
		found := false
		for _, n := range attributeNames {
			if strings.EqualFold(name, n.name) {
				a |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown vertex attribute %q", ErrInvalidArgument, name)
		}
	}
	return a, nil
}

// RequirePosition fails when the position stream is not selected
func (a VertexAttributes) RequirePosition() error {
	if !a.Has(Position) {
		return fmt.Errorf("%w: positions must be provided, got attributes %s", ErrInvalidArgument, a)
	}
	return nil
}
