package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-fog/internal/core"
)

// CellWidth is the number of screen columns per world unit. Terminal
// cells are about twice as tall as wide.
const CellWidth = 2

// Glyphs used by the renderer.
const (
	GlyphWall   = '#'
	GlyphFloor  = '·'
	GlyphLight  = '*'
	GlyphUnseen = ' '
)

var viewerArrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Camera returns the top-left world cell shown in a view of viewW x viewH
// screen cells, keeping the viewer centered where the map allows.
func (s *Session) Camera(viewW, viewH int) (camX, camY int) {
	cols := viewW / CellWidth
	p := s.walker.Position()
	camX = clampCam(int(p.X)-cols/2, s.tiles.Width()-cols)
	camY = clampCam(int(p.Y)-viewH/2, s.tiles.Height()-viewH)
	return camX, camY
}

func clampCam(v, hi int) int {
	return max(0, min(v, hi))
}

// Render draws the map shaded by the fog layer into the top of dst and
// the hud lines below it.
func (s *Session) Render(dst *core.Screen, hud []string) {
	viewH := dst.Height() - len(hud)
	viewW := dst.Width()
	if viewH <= 0 || viewW <= 0 {
		return
	}

	camX, camY := s.Camera(viewW, viewH)
	tpu := s.engine.Config().Grid.TexelsPerUnit

	for sy := 0; sy < viewH; sy++ {
		wy := camY + sy
		for sx := 0; sx < viewW; sx++ {
			wx := camX + sx/CellWidth
			if wx >= s.tiles.Width() || wy >= s.tiles.Height() {
				continue
			}
			p := core.V(float64(camX)+(float64(sx)+0.5)/CellWidth, float64(wy)+0.5)
			vis, exp := s.layer.At(int(p.X*tpu), int(p.Y*tpu))
			r, c := shade(s.tiles.IsWall(wx, wy), vis, exp)
			dst.SetCell(sx, sy, r, c)
		}
	}

	s.renderLights(dst, camX, camY, viewW, viewH)

	vp := s.walker.Position()
	vx := (int(vp.X)-camX)*CellWidth + int(math.Mod(vp.X, 1)*CellWidth)
	vy := int(vp.Y) - camY
	if vx >= 0 && vx < viewW && vy >= 0 && vy < viewH {
		dst.SetCell(vx, vy, viewerArrow(s.walker.Angle()), core.ColorBrightYellow)
	}

	for i, line := range hud {
		dst.DrawTextColor(0, viewH+i, line, core.ColorGray)
	}
}

func (s *Session) renderLights(dst *core.Screen, camX, camY, viewW, viewH int) {
	draw := func(p core.Vec2, c core.Color) {
		if s.engine.ExploredAt(p) == 0 {
			return
		}
		x := (int(p.X)-camX)*CellWidth + int(math.Mod(p.X, 1)*CellWidth)
		y := int(p.Y) - camY
		if x >= 0 && x < viewW && y >= 0 && y < viewH {
			dst.SetCell(x, y, GlyphLight, c)
		}
	}
	for _, l := range s.levelLights {
		draw(l.Position, core.ColorYellow)
	}
	for _, l := range s.placed {
		draw(l.Position, core.ColorOrange)
	}
}

// shade picks the glyph and gray level for one screen cell: lit cells
// scale with visibility, remembered cells are dim, unseen cells blank.
func shade(wall bool, vis, explored uint8) (rune, core.Color) {
	glyph := GlyphFloor
	base, span := 4, 12
	if wall {
		glyph = GlyphWall
		base, span = 9, 14
	}

	switch {
	case vis > 0:
		return glyph, core.Gray(base + int(vis)*span/255)
	case explored > 0:
		if wall {
			return glyph, core.Gray(5)
		}
		return glyph, core.Gray(2)
	default:
		return GlyphUnseen, core.ColorDefault
	}
}

func viewerArrow(angle float64) rune {
	i := int(math.Round(angle/(math.Pi/4))) % len(viewerArrows)
	if i < 0 {
		i += len(viewerArrows)
	}
	return viewerArrows[i]
}

// HUD returns the status lines shown under the map.
func (s *Session) HUD(title string, paused bool) []string {
	e := s.engine
	st := e.Stats()

	mode := ""
	if e.Revealed() {
		mode += " [reveal]"
	}
	if e.PassThrough() {
		mode += " [ghost]"
	}
	if paused {
		mode += " [paused]"
	}

	boost := fmt.Sprintf("boost x%d", s.boosts)
	if t := e.BoostTimeRemaining(); t > 0 {
		boost = fmt.Sprintf("boost %.1fs", t)
	}

	return []string{
		fmt.Sprintf("%s  %s  explored %5.1f%%  %s  lights %d%s",
			title, s.setup.Level.Name, e.ExploredFraction()*100, boost, len(e.Lights()), mode),
		fmt.Sprintf("tick %d  recomputes %d  last %s  span %d cells",
			s.ticks, st.Recomputes, st.LastReason, s.last.Span.Area()),
	}
}
