package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-fog/internal/core"
)

// grayBase is the first grayscale entry of the 256-color palette.
const grayBase = 232

// styles holds a style for every named color and gray level.
var styles = func() map[core.Color]lipgloss.Style {
	m := make(map[core.Color]lipgloss.Style)
	add := func(c core.Color) {
		if code := ANSIColor(c); code != "" {
			m[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
			return
		}
		m[c] = lipgloss.NewStyle()
	}
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		add(c)
	}
	for level := 0; level < core.GraySteps; level++ {
		add(core.Gray(level))
	}
	return m
}()

// ANSIColor returns the 256-color palette index used for c.
func ANSIColor(c core.Color) string {
	if level, ok := c.GrayLevel(); ok {
		return strconv.Itoa(grayBase + level)
	}
	switch c {
	case core.ColorDefault:
		return ""
	case core.ColorOrange:
		return "208"
	case core.ColorGray:
		return "245"
	}
	if c >= core.ColorRed && c <= core.ColorWhite {
		return strconv.Itoa(int(c - core.ColorRed + 1))
	}
	if c >= core.ColorBrightRed && c <= core.ColorBrightWhite {
		return strconv.Itoa(int(c - core.ColorBrightRed + 9))
	}
	return ""
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := styles[c]; ok {
		return style
	}
	return styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
