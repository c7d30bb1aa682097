package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fog/internal/levels"
	"github.com/vovakirdan/tui-fog/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenes and levels",
	Long:  `Shows every registered scene and every level in the catalog (built-ins plus --levels).`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenes := registry.List()
	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Scenes:")
	fmt.Println()
	maxIDLen := 2
	for _, s := range scenes {
		maxIDLen = max(maxIDLen, len(s.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range scenes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	catalog, err := levels.Catalog(flagLevelsDir)
	if err != nil {
		fail("%v", err)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()
	maxIDLen = 2
	for _, l := range catalog {
		maxIDLen = max(maxIDLen, len(l.ID))
	}
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Lights", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")
	for _, l := range catalog {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-7s  %-6d  %s\n", maxIDLen, l.ID, size, len(l.Lights), l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'fog play <scene> --level <id>' to start.")
}
