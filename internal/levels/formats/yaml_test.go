package formats

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-fog/internal/core"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: room
name: Room
facing: 90
layout:
  - "######"
  - "#..*.#"
  - "#.@..#"
  - "######"
lights:
  - x: 1.5
    y: 1.5
    radius: 3
metadata:
  author: test
`)
	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	if lvl.ID != "room" || lvl.Name != "Room" || lvl.FacingDeg != 90 {
		t.Errorf("header = %q/%q/%v", lvl.ID, lvl.Name, lvl.FacingDeg)
	}
	if lvl.Width != 6 || lvl.Height != 4 {
		t.Errorf("expected 6x4, got %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.Spawn != core.V(2.5, 2.5) {
		t.Errorf("Spawn = %v, want (2.5, 2.5)", lvl.Spawn)
	}
	if !lvl.IsWall(0, 0) || lvl.IsWall(1, 1) || !lvl.IsWall(-1, 1) || !lvl.IsWall(6, 1) {
		t.Error("wall lookup mismatch")
	}

	if len(lvl.Lights) != 2 {
		t.Fatalf("expected 2 lights, got %d", len(lvl.Lights))
	}
	if lvl.Lights[0].Position != core.V(3.5, 1.5) || lvl.Lights[0].Radius != 0 {
		t.Errorf("glyph light = %+v", lvl.Lights[0])
	}
	if lvl.Lights[1].Radius != 3 {
		t.Errorf("listed light = %+v", lvl.Lights[1])
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}
}

func TestParseYAMLDefaults(t *testing.T) {
	lvl, err := ParseYAML([]byte("id: tiny\nlayout:\n  - \"##.\"\n  - \"#..\"\n"))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.Name != "tiny" {
		t.Errorf("Name = %q, want the ID", lvl.Name)
	}
	if lvl.Spawn != core.V(2.5, 0.5) {
		t.Errorf("Spawn = %v, want first floor cell", lvl.Spawn)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "id: [", "yaml unmarshal"},
		{"missing id", "layout:\n  - \"..\"\n", "missing id"},
		{"empty layout", "id: x\n", "empty layout"},
		{"ragged", "id: x\nlayout:\n  - \"...\"\n  - \"..\"\n", "width"},
		{"unknown glyph", "id: x\nlayout:\n  - \".x.\"\n", "unknown glyph"},
		{"two spawns", "id: x\nlayout:\n  - \"@.@\"\n", "second spawn"},
		{"no floor", "id: x\nlayout:\n  - \"###\"\n", "no floor"},
		{"light outside", "id: x\nlayout:\n  - \"...\"\nlights:\n  - x: 5\n    y: 0\n", "outside"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
