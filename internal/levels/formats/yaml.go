// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-fog/internal/core"
	"gopkg.in/yaml.v3"
)

// Layout characters.
const (
	GlyphWall  = '#'
	GlyphFloor = '.'
	GlyphSpawn = '@'
	GlyphLight = '*'
	GlyphVoid  = ' ' // Outside the playable area, behaves as wall
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Layout      []string          `yaml:"layout"`
	Facing      float64           `yaml:"facing,omitempty"` // Degrees, 0 = east, clockwise
	Lights      []YAMLLight       `yaml:"lights,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLLight is an explicitly placed light in world units.
type YAMLLight struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius,omitempty"`
	Rays   int     `yaml:"rays,omitempty"`
}

// LightSpec is a light placement. Zero Radius or Rays mean "use the
// configured default".
type LightSpec struct {
	Position core.Vec2
	Radius   float64
	Rays     int
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Description string
	Width       int
	Height      int
	Walls       []bool // Row-major, true = wall
	Spawn       core.Vec2
	FacingDeg   float64
	Lights      []LightSpec
	Metadata    map[string]string
}

// IsWall reports whether cell (x, y) is a wall; everything off the layout is.
func (l *Level) IsWall(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return true
	}
	return l.Walls[y*l.Width+x]
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.toLevel()
}

func (yl YAMLLevel) toLevel() (Level, error) {
	if yl.ID == "" {
		return Level{}, errors.New("missing id")
	}
	if len(yl.Layout) == 0 {
		return Level{}, errors.New("empty layout")
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Width:       len(yl.Layout[0]),
		Height:      len(yl.Layout),
		FacingDeg:   yl.Facing,
		Metadata:    yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}
	level.Walls = make([]bool, level.Width*level.Height)

	spawnSet := false
	firstFloor := core.Vec2{}
	floorSeen := false
	for y, row := range yl.Layout {
		if len(row) != level.Width {
			return Level{}, fmt.Errorf("layout row %d has width %d, want %d", y, len(row), level.Width)
		}
		for x := 0; x < len(row); x++ {
			center := core.V(float64(x)+0.5, float64(y)+0.5)
			switch row[x] {
			case GlyphWall, GlyphVoid:
				level.Walls[y*level.Width+x] = true
				continue
			case GlyphFloor:
			case GlyphSpawn:
				if spawnSet {
					return Level{}, fmt.Errorf("second spawn at (%d,%d)", x, y)
				}
				level.Spawn = center
				spawnSet = true
			case GlyphLight:
				level.Lights = append(level.Lights, LightSpec{Position: center})
			default:
				return Level{}, fmt.Errorf("unknown glyph %q at (%d,%d)", row[x], x, y)
			}
			if !floorSeen {
				firstFloor = center
				floorSeen = true
			}
		}
	}

	if !floorSeen {
		return Level{}, errors.New("layout has no floor")
	}
	if !spawnSet {
		level.Spawn = firstFloor
	}

	for i, l := range yl.Lights {
		if l.X < 0 || l.Y < 0 || l.X >= float64(level.Width) || l.Y >= float64(level.Height) {
			return Level{}, fmt.Errorf("light %d at (%g,%g) is outside the layout", i, l.X, l.Y)
		}
		level.Lights = append(level.Lights, LightSpec{
			Position: core.V(l.X, l.Y),
			Radius:   l.Radius,
			Rays:     l.Rays,
		})
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
