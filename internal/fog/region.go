package fog

import "fmt"

// Region is an inclusive axis-aligned rectangle of grid cells.
// A zero Region (Valid == false) covers nothing; its bounds are meaningless.
type Region struct {
	MinX, MinY int
	MaxX, MaxY int
	Valid      bool
}

// CellRegion returns the region covering the single cell (x, y).
func CellRegion(x, y int) Region {
	return Region{MinX: x, MinY: y, MaxX: x, MaxY: y, Valid: true}
}

// FullRegion returns the region covering a whole cols x rows grid.
func FullRegion(cols, rows int) Region {
	if cols <= 0 || rows <= 0 {
		return Region{}
	}
	return Region{MinX: 0, MinY: 0, MaxX: cols - 1, MaxY: rows - 1, Valid: true}
}

// Extend grows r to include the cell (x, y).
func (r *Region) Extend(x, y int) {
	r.ExtendRect(x, y, x, y)
}

// ExtendRect grows r to include the inclusive rectangle [minX,maxX]x[minY,maxY].
func (r *Region) ExtendRect(minX, minY, maxX, maxY int) {
	if !r.Valid {
		*r = Region{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, Valid: true}
		return
	}
	r.MinX = min(r.MinX, minX)
	r.MinY = min(r.MinY, minY)
	r.MaxX = max(r.MaxX, maxX)
	r.MaxY = max(r.MaxY, maxY)
}

// Union returns the smallest region covering both r and o.
func (r Region) Union(o Region) Region {
	switch {
	case r.Valid && o.Valid:
		r.ExtendRect(o.MinX, o.MinY, o.MaxX, o.MaxY)
		return r
	case r.Valid:
		return r
	case o.Valid:
		return o
	default:
		return Region{}
	}
}

// Clamp intersects r with a cols x rows grid.
// The result is invalid when nothing of r lies on the grid.
func (r Region) Clamp(cols, rows int) Region {
	if !r.Valid || cols <= 0 || rows <= 0 {
		return Region{}
	}
	r.MinX = max(r.MinX, 0)
	r.MinY = max(r.MinY, 0)
	r.MaxX = min(r.MaxX, cols-1)
	r.MaxY = min(r.MaxY, rows-1)
	if r.MinX > r.MaxX || r.MinY > r.MaxY {
		return Region{}
	}
	return r
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Region) Contains(x, y int) bool {
	return r.Valid && x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Width returns the number of columns covered.
func (r Region) Width() int {
	if !r.Valid {
		return 0
	}
	return r.MaxX - r.MinX + 1
}

// Height returns the number of rows covered.
func (r Region) Height() int {
	if !r.Valid {
		return 0
	}
	return r.MaxY - r.MinY + 1
}

// Area returns the number of cells covered.
func (r Region) Area() int {
	return r.Width() * r.Height()
}

func (r Region) String() string {
	if !r.Valid {
		return "[empty]"
	}
	return fmt.Sprintf("[%d,%d..%d,%d]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// DirtyTracker keeps the bounds of cells touched during the current tick
// and during the tick before it.
type DirtyTracker struct {
	Previous Region
	Current  Region
}

// Begin rolls the current bounds into Previous and starts an empty tick.
func (d *DirtyTracker) Begin() {
	d.Previous = d.Current
	d.Current = Region{}
}

// Span returns the cells that may have changed since the last commit:
// the union of both ticks, clamped to the grid.
func (d *DirtyTracker) Span(cols, rows int) Region {
	return d.Previous.Union(d.Current).Clamp(cols, rows)
}

// Reset forgets both ticks.
func (d *DirtyTracker) Reset() {
	*d = DirtyTracker{}
}
