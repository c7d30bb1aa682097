// Package levels provides level loading for the fog scenes.
// Level files are validated against an embedded JSON schema before they
// are parsed.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/fog"
	"github.com/vovakirdan/tui-fog/internal/levels/formats"
	"github.com/vovakirdan/tui-fog/internal/world"
)

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string
}

// ToTileMap builds the wall geometry of the level.
func (l *Level) ToTileMap() *world.TileMap {
	m := world.NewTileMap(l.Width, l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.IsWall(x, y) {
				m.Set(x, y, world.TileWall)
			}
		}
	}
	return m
}

// SpawnAngle returns the initial facing in radians.
func (l *Level) SpawnAngle() float64 {
	return core.Radians(l.FacingDeg)
}

// NewLights creates one engine light per placement, filling in
// configured defaults.
func (l *Level) NewLights(cfg config.LightsConfig) []*fog.Light {
	lights := make([]*fog.Light, 0, len(l.Lights))
	for _, spec := range l.Lights {
		light := fog.NewLight(spec.Position, cfg)
		if spec.Radius > 0 {
			light.Radius = spec.Radius
		}
		if spec.Rays > 0 {
			light.RayCount = spec.Rays
		}
		lights = append(lights, light)
	}
	return lights
}

// Loader handles loading levels from a file system.
type Loader struct {
	Root  string
	fsys  fs.FS
	label string
}

// NewLoader creates a new level loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root), label: root}
}

// NewFSLoader creates a loader over an fs.FS rooted at its top.
func NewFSLoader(fsys fs.FS, label string) *Loader {
	return &Loader{Root: ".", fsys: fsys, label: label}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for
// deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.label, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{Level: parsed, FilePath: path.Join(l.label, p)}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension validates and routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		if err := ValidateYAML(data); err != nil {
			return formats.Level{}, err
		}
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
