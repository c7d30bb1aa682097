package sim

import "github.com/vovakirdan/tui-fog/internal/fog"

// FogLayer is the terminal render target: it keeps its own copy of the
// encoded fog and patches it with every upload.
type FogLayer struct {
	cols, rows int
	vis        []uint8
	explored   []uint8

	uploads int
	cells   int64
}

// NewFogLayer creates an empty layer. It is sized by the first upload.
func NewFogLayer() *FogLayer {
	return &FogLayer{}
}

// Upload copies the span out of the engine mirror.
func (l *FogLayer) Upload(m *fog.Mirror, span fog.Region) {
	if m.Cols != l.cols || m.Rows != l.rows {
		l.cols, l.rows = m.Cols, m.Rows
		l.vis = make([]uint8, m.Cols*m.Rows)
		l.explored = make([]uint8, m.Cols*m.Rows)
		span = fog.FullRegion(m.Cols, m.Rows)
	}
	span = span.Clamp(l.cols, l.rows)
	if !span.Valid {
		return
	}

	for y := span.MinY; y <= span.MaxY; y++ {
		start := y*l.cols + span.MinX
		end := y*l.cols + span.MaxX + 1
		copy(l.vis[start:end], m.Visibility[start:end])
		if m.ExploredChanged {
			copy(l.explored[start:end], m.Explored[start:end])
		}
	}
	l.uploads++
	l.cells += int64(span.Area())
}

// At returns the encoded fog of texel (x, y); zero outside.
func (l *FogLayer) At(x, y int) (vis, explored uint8) {
	if x < 0 || y < 0 || x >= l.cols || y >= l.rows {
		return 0, 0
	}
	i := y*l.cols + x
	return l.vis[i], l.explored[i]
}

// Size returns the layer size in texels.
func (l *FogLayer) Size() (cols, rows int) {
	return l.cols, l.rows
}

// Uploads returns how many patches were applied.
func (l *FogLayer) Uploads() int { return l.uploads }

// CellsCopied returns the total texels copied by all patches.
func (l *FogLayer) CellsCopied() int64 { return l.cells }
