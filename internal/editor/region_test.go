package editor

import (
	"testing"

	"github.com/example/markup/internal/markup"
)

func inside(r markup.Rect, parent markup.Size) bool {
	return r.Left >= 0 && r.Top >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.Right() <= parent.W && r.Bottom() <= parent.H
}

func TestResizeClampsEveryHandle(t *testing.T) {
	parent := markup.Size{W: 200, H: 100}
	start := markup.Rect{Left: 50, Top: 20, Width: 60, Height: 40}
	targets := []markup.Point{
		markup.Pt(-500, -500), markup.Pt(900, -500), markup.Pt(900, 900),
		markup.Pt(-500, 900), markup.Pt(100, -500), markup.Pt(100, 900),
		markup.Pt(-500, 50), markup.Pt(900, 50),
	}
	for h := HandleLeft; h <= HandleLeftBottom; h++ {
		for _, p := range targets {
			r, active := start, h
			// Keep dragging so flipped handles get exercised too.
			for i := 0; i < 3; i++ {
				r, active = Resize(r, active, p, parent, 3)
				if !inside(r, parent) {
					t.Fatalf("%v to %v: region %v escapes %v", h, p, r, parent)
				}
			}
		}
	}
}

func TestResizeRightBottomPastLeftTopFlips(t *testing.T) {
	parent := markup.Size{W: 100, H: 100}
	c := NewCropController(parent, 1)
	c.region = regionFromRect(markup.Rect{Left: 40, Top: 40, Width: 20, Height: 20})

	if h := c.Begin(markup.Pt(70, 70)); h != HandleRightBottom {
		t.Fatalf("grabbed %v, want right-bottom", h)
	}
	for _, p := range []markup.Point{markup.Pt(55, 55), markup.Pt(42, 42), markup.Pt(30, 30)} {
		c.Drag(p)
		r := c.Rect()
		if r.Width < 0 || r.Height < 0 {
			t.Fatalf("negative extent %v after drag to %v", r, p)
		}
	}
	// The collapse happens on the drag to (42,42) and the next drag moves
	// the left and top edges.
	if c.Active() != HandleLeftTop {
		t.Fatalf("active handle = %v, want left-top", c.Active())
	}
	want := markup.Rect{Left: 30, Top: 30, Width: 13, Height: 13}
	if got := c.Rect(); got != want {
		t.Fatalf("region = %v, want %v", got, want)
	}
}

func TestResizeSingleAxisFlip(t *testing.T) {
	parent := markup.Size{W: 100, H: 100}
	r := markup.Rect{Left: 20, Top: 20, Width: 40, Height: 40}
	r, h := Resize(r, HandleLeft, markup.Pt(80, 50), parent, 3)
	if h != HandleRight {
		t.Fatalf("handle = %v, want right", h)
	}
	if want := (markup.Rect{Left: 57, Top: 20, Width: 3, Height: 40}); r != want {
		t.Fatalf("region = %v, want %v", r, want)
	}
	r, h = Resize(r, h, markup.Pt(80, 50), parent, 3)
	if h != HandleRight {
		t.Fatalf("handle = %v after second drag", h)
	}
	if want := (markup.Rect{Left: 57, Top: 20, Width: 23, Height: 40}); r != want {
		t.Fatalf("region = %v, want %v", r, want)
	}
}

func TestTranslateClamps(t *testing.T) {
	parent := markup.Size{W: 100, H: 50}
	r := markup.Rect{Left: 10, Top: 10, Width: 30, Height: 20}
	got := Translate(r, markup.Pt(500, -500), parent)
	if want := (markup.Rect{Left: 70, Top: 0, Width: 30, Height: 20}); got != want {
		t.Fatalf("Translate = %v, want %v", got, want)
	}
}

func TestMoveDragUsesDeltaSinceLastEvent(t *testing.T) {
	c := NewCropController(markup.Size{W: 100, H: 100}, 1)
	c.region = regionFromRect(markup.Rect{Left: 10, Top: 10, Width: 20, Height: 20})
	if h := c.Begin(markup.Pt(15, 15)); h != HandleMove {
		t.Fatalf("grabbed %v, want move", h)
	}
	c.Drag(markup.Pt(20, 15))
	c.Drag(markup.Pt(25, 25))
	c.End()
	if want := (markup.Rect{Left: 20, Top: 20, Width: 20, Height: 20}); c.Rect() != want {
		t.Fatalf("region = %v, want %v", c.Rect(), want)
	}
}

func TestMasksComplementRegion(t *testing.T) {
	parent := markup.Size{W: 100, H: 80}
	r := markup.Rect{Left: 10, Top: 20, Width: 30, Height: 40}
	m := MasksFor(r, parent)
	want := Masks{
		Top:    markup.Rect{Left: 0, Top: 0, Width: 100, Height: 20},
		Bottom: markup.Rect{Left: 0, Top: 60, Width: 100, Height: 20},
		Left:   markup.Rect{Left: 0, Top: 20, Width: 10, Height: 40},
		Right:  markup.Rect{Left: 40, Top: 20, Width: 60, Height: 40},
	}
	if m != want {
		t.Fatalf("masks = %+v, want %+v", m, want)
	}
	area := r.Width * r.Height
	for _, mr := range m.All() {
		area += mr.Width * mr.Height
	}
	if area != parent.W*parent.H {
		t.Fatalf("masks and region cover %g, want %g", area, parent.W*parent.H)
	}
}

func TestPercentRegionResolvesOnFirstInteraction(t *testing.T) {
	c := NewCropController(markup.Size{W: 100, H: 50}, 1)
	if !c.Region().Symbolic() {
		t.Fatal("expected a symbolic initial region")
	}
	c.Resize(markup.Size{W: 200, H: 100}, 2, 2)
	if got := c.Region(); got.Width != Percent(100) || got.Height != Percent(100) {
		t.Fatalf("resize touched percentages: %v", got)
	}
	c.Begin(markup.Pt(100, 50))
	if got := c.Region(); got.Symbolic() || got.Width != Px(200) || got.Height != Px(100) {
		t.Fatalf("region not resolved to pixels: %v", got)
	}
}

func TestControllerResizeDuringMoveKeepsRegionInside(t *testing.T) {
	c := NewCropController(markup.Size{W: 100, H: 100}, 1)
	c.Begin(markup.Pt(-1, -1))
	c.Drag(markup.Pt(60, 60))
	c.End()
	if want := (markup.Rect{Left: 60, Top: 60, Width: 40, Height: 40}); c.Rect() != want {
		t.Fatalf("region = %v, want %v", c.Rect(), want)
	}

	c.Begin(markup.Pt(80, 80))
	c.Drag(markup.Pt(70, 70))
	c.Resize(markup.Size{W: 50, H: 50}, 0.5, 0.5)
	if c.Rect() != (markup.Rect{Left: 25, Top: 25, Width: 20, Height: 20}) {
		t.Fatalf("mid-drag view = %v", c.Rect())
	}
	c.Drag(markup.Pt(50, 50))
	c.End()
	r := c.Rect()
	if want := (markup.Rect{Left: 30, Top: 30, Width: 20, Height: 20}); r != want {
		t.Fatalf("region = %v, want %v", r, want)
	}
	if r.Right() > 50 || r.Bottom() > 50 {
		t.Fatalf("region %v escapes the parent", r)
	}
}
