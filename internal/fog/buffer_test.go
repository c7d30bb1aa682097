package fog

import (
	"testing"

	"github.com/vovakirdan/tui-fog/internal/core"
)

func newTestBuffer(w, h float64) *Buffer {
	b := NewBuffer(1)
	b.Init(w, h, 1)
	return b
}

func TestBufferUninitialised(t *testing.T) {
	b := NewBuffer(1)
	b.MarkVisible(core.V(1, 1), 1)
	b.BeginTick()

	if b.Ready() {
		t.Fatal("buffer should not be ready")
	}
	if v := b.Sample(core.V(1, 1)); v != 0 {
		t.Errorf("Sample = %v, want 0", v)
	}
	if span := b.CommitTick(); span.Valid {
		t.Errorf("CommitTick = %v, want empty", span)
	}
	if f := b.ExploredFraction(); f != 0 {
		t.Errorf("ExploredFraction = %v, want 0", f)
	}
}

func TestBufferInitSizes(t *testing.T) {
	b := NewBuffer(1)
	b.Init(10.5, 4, 2)
	if b.Cols() != 21 || b.Rows() != 8 {
		t.Errorf("grid = %dx%d, want 21x8", b.Cols(), b.Rows())
	}

	b.Init(0, 4, 2)
	if b.Ready() {
		t.Error("zero width should leave the buffer uninitialised")
	}
}

func TestBufferFootprint(t *testing.T) {
	b := newTestBuffer(10, 10)
	b.MarkVisible(core.V(5.5, 5.5), 0.5)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			cur, exp := b.Cell(x, y)
			want := 0.0
			if x >= 4 && x <= 6 && y >= 4 && y <= 6 {
				want = 0.5
			}
			if cur != want || exp != want {
				t.Errorf("cell (%d,%d) = %v/%v, want %v", x, y, cur, exp, want)
			}
		}
	}

	want := Region{MinX: 4, MinY: 4, MaxX: 6, MaxY: 6, Valid: true}
	if got := b.Dirty().Current; got != want {
		t.Errorf("dirty = %v, want %v", got, want)
	}
}

func TestBufferFootprintAtEdge(t *testing.T) {
	b := newTestBuffer(4, 4)
	b.MarkVisible(core.V(0.2, 0.2), 1)

	want := Region{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1, Valid: true}
	if got := b.Dirty().Current; got != want {
		t.Errorf("dirty = %v, want %v", got, want)
	}
}

func TestBufferMaxMerge(t *testing.T) {
	b := newTestBuffer(4, 4)
	p := core.V(2, 2)
	for _, v := range []float64{0.3, 0.7, 0.5, 0, -1} {
		b.MarkVisible(p, v)
	}
	if got := b.Sample(p); got < 0.69 || got > 0.71 {
		t.Errorf("Sample = %v, want 0.7", got)
	}

	b.MarkVisible(p, 3)
	if got := b.Sample(p); got != 1 {
		t.Errorf("Sample after overshoot = %v, want 1", got)
	}
}

func TestBufferBounds(t *testing.T) {
	b := newTestBuffer(10, 10)
	b.BeginTick()
	b.FillVisible()

	outside := []core.Vec2{
		core.V(-0.01, 5), core.V(5, -0.01), core.V(10, 5), core.V(5, 10), core.V(100, 100),
	}
	for _, p := range outside {
		if v := b.Sample(p); v != 0 {
			t.Errorf("Sample(%v) = %v, want 0", p, v)
		}
		if v := b.ExploredAt(p); v != 0 {
			t.Errorf("ExploredAt(%v) = %v, want 0", p, v)
		}
	}

	// Cells past a fractional world edge still map outside the world.
	b.Init(10.5, 4, 1)
	b.BeginTick()
	b.FillVisible()
	if v := b.Sample(core.V(10.7, 1)); v != 0 {
		t.Errorf("Sample past fractional edge = %v, want 0", v)
	}
	if v := b.Sample(core.V(10.2, 1)); v != 1 {
		t.Errorf("Sample inside fractional edge = %v, want 1", v)
	}
}

func TestBufferTickCycle(t *testing.T) {
	b := newTestBuffer(10, 10)

	b.BeginTick()
	b.MarkVisible(core.V(1.5, 1.5), 1)
	if span := b.CommitTick(); span != FullRegion(10, 10) {
		t.Fatalf("first commit span = %v, want full grid", span)
	}

	b.BeginTick()
	if cur, exp := b.Cell(1, 1); cur != 0 || exp != 1 {
		t.Fatalf("after BeginTick cell = %v/%v, want 0/1", cur, exp)
	}
	b.MarkVisible(core.V(7.5, 7.5), 1)
	span := b.CommitTick()
	want := Region{MinX: 0, MinY: 0, MaxX: 8, MaxY: 8, Valid: true}
	if span != want {
		t.Errorf("span = %v, want %v", span, want)
	}

	m := b.Mirror()
	if vis, exp := m.At(1, 1); vis != 0 || exp != 255 {
		t.Errorf("mirror (1,1) = %d/%d, want 0/255", vis, exp)
	}
	if vis, exp := m.At(7, 7); vis != 255 || exp != 255 {
		t.Errorf("mirror (7,7) = %d/%d, want 255/255", vis, exp)
	}
	if !m.ExploredChanged {
		t.Error("ExploredChanged should be set after new exploration")
	}

	// Same view again: nothing new explored.
	b.BeginTick()
	b.MarkVisible(core.V(7.5, 7.5), 1)
	span = b.CommitTick()
	if span != (Region{MinX: 6, MinY: 6, MaxX: 8, MaxY: 8, Valid: true}) {
		t.Errorf("span = %v, want [6,6..8,8]", span)
	}
	if m.ExploredChanged {
		t.Error("ExploredChanged should be clear when exploration is unchanged")
	}
}

func TestBufferEncoding(t *testing.T) {
	b := newTestBuffer(4, 4)
	b.BeginTick()
	b.MarkVisible(core.V(2, 2), 0.5)
	b.CommitTick()

	if vis, _ := b.Mirror().At(2, 2); vis != 128 {
		t.Errorf("encoded 0.5 = %d, want 128", vis)
	}
	if vis, exp := b.Mirror().At(-1, 0); vis != 0 || exp != 0 {
		t.Error("out of range mirror read should be zero")
	}
}

func TestBufferRevealAndReset(t *testing.T) {
	b := newTestBuffer(5, 5)
	b.RevealAll()
	if !b.Revealed() || b.ExploredFraction() != 1 {
		t.Fatalf("RevealAll: revealed=%v fraction=%v", b.Revealed(), b.ExploredFraction())
	}
	b.CommitTick()

	b.ClearReveal()
	if b.Revealed() || b.ExploredFraction() != 1 {
		t.Error("ClearReveal must keep exploration")
	}

	b.Reset()
	if b.Revealed() || b.ExploredFraction() != 0 {
		t.Errorf("Reset: revealed=%v fraction=%v", b.Revealed(), b.ExploredFraction())
	}
	span := b.CommitTick()
	if span != FullRegion(5, 5) {
		t.Errorf("commit after Reset = %v, want full grid", span)
	}
	for i, v := range b.Mirror().Explored {
		if v != 0 {
			t.Fatalf("explored mirror[%d] = %d after Reset", i, v)
		}
	}
}

func TestBufferRevealSurvivesInit(t *testing.T) {
	b := NewBuffer(1)
	b.RevealAll()
	b.Init(3, 3, 1)
	if !b.Revealed() || b.ExploredFraction() != 1 {
		t.Error("revealed mode should survive a resize")
	}
}
