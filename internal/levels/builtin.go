package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultLevelID is used when no level is requested.
const DefaultLevelID = "halls"

// Builtin returns the levels shipped with the binary, sorted by ID.
func Builtin() []Level {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: builtin fs: %v", err))
	}
	levels, err := NewFSLoader(sub, "builtin").LoadAll()
	if err != nil {
		panic(fmt.Sprintf("levels: builtin levels: %v", err))
	}
	return levels
}

// Catalog returns the built-in levels merged with those found under dir.
// Levels on disk replace built-ins with the same ID. An empty dir or a
// missing directory yields only the built-ins.
func Catalog(dir string) ([]Level, error) {
	byID := make(map[string]Level)
	var order []string
	add := func(l Level) {
		if _, ok := byID[l.ID]; !ok {
			order = append(order, l.ID)
		}
		byID[l.ID] = l
	}

	for _, l := range Builtin() {
		add(l)
	}

	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			disk, err := NewLoader(dir).LoadAll()
			if err != nil {
				return nil, err
			}
			for _, l := range disk {
				add(l)
			}
		}
	}

	levels := make([]Level, 0, len(order))
	for _, id := range order {
		levels = append(levels, byID[id])
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// Find returns the level with the given ID from the catalog.
func Find(dir, id string) (Level, error) {
	if id == "" {
		id = DefaultLevelID
	}
	all, err := Catalog(dir)
	if err != nil {
		return Level{}, err
	}
	for _, l := range all {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}
