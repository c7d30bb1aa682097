package fog

import (
	"math"

	"github.com/vovakirdan/tui-fog/internal/core"
)

// Mirror holds the pixel-encoded copies of the two visibility fields that
// render targets consume. Each cell is one byte, 0 = dark, 255 = fully lit.
// Only the region reported alongside an upload is guaranteed fresh.
type Mirror struct {
	Cols, Rows int
	Visibility []uint8
	Explored   []uint8

	// ExploredChanged is true when the last commit re-encoded Explored.
	ExploredChanged bool
}

// At returns the encoded values of cell (x, y); zero outside the grid.
func (m *Mirror) At(x, y int) (vis, explored uint8) {
	if x < 0 || y < 0 || x >= m.Cols || y >= m.Rows {
		return 0, 0
	}
	i := y*m.Cols + x
	return m.Visibility[i], m.Explored[i]
}

// Buffer owns the current-visibility and exploration fields of the grid.
//
// Cells are laid out row-major. A world position p maps to cell
// (floor(p.X*tpu), floor(p.Y*tpu)). Writes only ever raise values (max
// merge); the only way down is BeginTick, which clears current visibility
// inside the previous tick's dirty bounds, and Reset for exploration.
type Buffer struct {
	width, height float64 // world units
	texelsPerUnit float64
	cols, rows    int
	footprint     int

	current  []float32
	explored []float32
	mirror   Mirror

	dirty         DirtyTracker
	exploredDirty bool // exploration changed since the last commit
	fullRefresh   bool // next commit re-encodes everything
	exploredCells int  // cells with explored > 0
	revealed      bool
}

// NewBuffer creates an uninitialised buffer that marks a
// (2*footprint+1)^2 neighborhood per sample.
func NewBuffer(footprint int) *Buffer {
	return &Buffer{footprint: max(footprint, 0)}
}

// Init sizes the buffer for a width x height world at texelsPerUnit
// oversampling. All previous contents and dirty state are discarded.
// Non-positive dimensions leave the buffer uninitialised.
func (b *Buffer) Init(width, height, texelsPerUnit float64) {
	revealed := b.revealed
	*b = Buffer{footprint: b.footprint}
	if !(width > 0) || !(height > 0) || !(texelsPerUnit > 0) {
		return
	}

	b.width = width
	b.height = height
	b.texelsPerUnit = texelsPerUnit
	b.cols = int(math.Ceil(width * texelsPerUnit))
	b.rows = int(math.Ceil(height * texelsPerUnit))

	n := b.cols * b.rows
	b.current = make([]float32, n)
	b.explored = make([]float32, n)
	b.mirror = Mirror{
		Cols:       b.cols,
		Rows:       b.rows,
		Visibility: make([]uint8, n),
		Explored:   make([]uint8, n),
	}
	b.fullRefresh = true

	if revealed {
		b.RevealAll()
	}
}

// Ready reports whether the buffer has been sized.
func (b *Buffer) Ready() bool {
	return b.cols > 0 && b.rows > 0
}

// Cols returns the grid width in cells.
func (b *Buffer) Cols() int { return b.cols }

// Rows returns the grid height in cells.
func (b *Buffer) Rows() int { return b.rows }

// TexelsPerUnit returns the oversampling factor.
func (b *Buffer) TexelsPerUnit() float64 { return b.texelsPerUnit }

// Footprint returns the half-size of the marked neighborhood.
func (b *Buffer) Footprint() int { return b.footprint }

// InBounds reports whether p lies inside the world rectangle.
func (b *Buffer) InBounds(p core.Vec2) bool {
	return b.Ready() && p.X >= 0 && p.Y >= 0 && p.X < b.width && p.Y < b.height
}

// CellOf returns the grid cell containing p and whether it is on the grid.
func (b *Buffer) CellOf(p core.Vec2) (x, y int, ok bool) {
	if !b.InBounds(p) {
		return 0, 0, false
	}
	x = int(p.X * b.texelsPerUnit)
	y = int(p.Y * b.texelsPerUnit)
	if x >= b.cols || y >= b.rows {
		return 0, 0, false
	}
	return x, y, true
}

// Sample returns the current visibility at p, or 0 off the grid.
func (b *Buffer) Sample(p core.Vec2) float64 {
	x, y, ok := b.CellOf(p)
	if !ok {
		return 0
	}
	return float64(b.current[y*b.cols+x])
}

// ExploredAt returns the exploration value at p, or 0 off the grid.
func (b *Buffer) ExploredAt(p core.Vec2) float64 {
	x, y, ok := b.CellOf(p)
	if !ok {
		return 0
	}
	return float64(b.explored[y*b.cols+x])
}

// Cell returns both field values of cell (x, y); zeros off the grid.
func (b *Buffer) Cell(x, y int) (current, explored float64) {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return 0, 0
	}
	i := y*b.cols + x
	return float64(b.current[i]), float64(b.explored[i])
}

// MarkVisible raises current visibility and exploration to at least value
// in the footprint around p and grows the dirty bounds to cover it.
func (b *Buffer) MarkVisible(p core.Vec2, value float64) {
	if !b.Ready() || !(value > 0) {
		return
	}
	if value > 1 {
		value = 1
	}

	fx := math.Floor(p.X * b.texelsPerUnit)
	fy := math.Floor(p.Y * b.texelsPerUnit)
	// Far-off samples would overflow the int conversion below
	if fx < -float64(b.footprint) || fy < -float64(b.footprint) ||
		fx > float64(b.cols+b.footprint) || fy > float64(b.rows+b.footprint) {
		return
	}
	cx, cy := int(fx), int(fy)

	x0 := max(cx-b.footprint, 0)
	y0 := max(cy-b.footprint, 0)
	x1 := min(cx+b.footprint, b.cols-1)
	y1 := min(cy+b.footprint, b.rows-1)
	if x0 > x1 || y0 > y1 {
		return
	}

	v := float32(value)
	for y := y0; y <= y1; y++ {
		row := y * b.cols
		for x := x0; x <= x1; x++ {
			i := row + x
			if b.current[i] < v {
				b.current[i] = v
			}
			if b.explored[i] < v {
				if b.explored[i] == 0 {
					b.exploredCells++
				}
				b.explored[i] = v
				b.exploredDirty = true
			}
		}
	}
	b.dirty.Current.ExtendRect(x0, y0, x1, y1)
}

// BeginTick starts a recompute: cells lit last tick go dark again, cells
// never touched stay untouched.
func (b *Buffer) BeginTick() {
	if !b.Ready() {
		return
	}
	b.dirty.Begin()

	prev := b.dirty.Previous.Clamp(b.cols, b.rows)
	if !prev.Valid {
		return
	}
	for y := prev.MinY; y <= prev.MaxY; y++ {
		row := b.current[y*b.cols+prev.MinX : y*b.cols+prev.MaxX+1]
		clear(row)
	}
}

// FillVisible lights the whole grid. Used instead of ray casting while the
// map is revealed.
func (b *Buffer) FillVisible() {
	if !b.Ready() {
		return
	}
	for i := range b.current {
		b.current[i] = 1
		if b.explored[i] < 1 {
			if b.explored[i] == 0 {
				b.exploredCells++
			}
			b.explored[i] = 1
			b.exploredDirty = true
		}
	}
	b.dirty.Current = FullRegion(b.cols, b.rows)
}

// CommitTick re-encodes the mirrors inside the union of the previous and
// current dirty bounds and returns that span. Exploration is only encoded
// when it changed.
func (b *Buffer) CommitTick() Region {
	if !b.Ready() {
		return Region{}
	}

	span := b.dirty.Span(b.cols, b.rows)
	encodeExplored := b.exploredDirty
	if b.fullRefresh {
		span = FullRegion(b.cols, b.rows)
		encodeExplored = true
	}

	b.mirror.ExploredChanged = encodeExplored && span.Valid
	if span.Valid {
		for y := span.MinY; y <= span.MaxY; y++ {
			start := y*b.cols + span.MinX
			end := y*b.cols + span.MaxX + 1
			encodeRow(b.mirror.Visibility[start:end], b.current[start:end])
			if encodeExplored {
				encodeRow(b.mirror.Explored[start:end], b.explored[start:end])
			}
		}
	}

	b.exploredDirty = false
	b.fullRefresh = false
	return span
}

func encodeRow(dst []uint8, src []float32) {
	for i, v := range src {
		dst[i] = uint8(float64(v)*255 + 0.5)
	}
}

// RevealAll marks every cell explored and switches to revealed mode.
func (b *Buffer) RevealAll() {
	b.revealed = true
	if !b.Ready() {
		return
	}
	for i := range b.explored {
		b.explored[i] = 1
	}
	b.exploredCells = len(b.explored)
	b.fullRefresh = true
}

// ClearReveal leaves revealed mode. Exploration is kept.
func (b *Buffer) ClearReveal() {
	b.revealed = false
}

// Revealed reports whether revealed mode is on.
func (b *Buffer) Revealed() bool {
	return b.revealed
}

// Reset forgets all exploration and leaves revealed mode.
func (b *Buffer) Reset() {
	b.revealed = false
	if !b.Ready() {
		return
	}
	clear(b.explored)
	b.exploredCells = 0
	b.fullRefresh = true
}

// ExploredFraction returns the share of cells ever seen.
func (b *Buffer) ExploredFraction() float64 {
	if !b.Ready() {
		return 0
	}
	return float64(b.exploredCells) / float64(len(b.explored))
}

// Dirty returns a copy of the dirty bounds.
func (b *Buffer) Dirty() DirtyTracker {
	return b.dirty
}

// Mirror returns the encoded fields. The pointer stays valid until the
// next Init.
func (b *Buffer) Mirror() *Mirror {
	return &b.mirror
}
