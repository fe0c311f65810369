package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/markup/internal/markup"
)

func white(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestPolylineRoundCaps(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	s := markup.Stroke{Color: color.NRGBA{R: 255, A: 255}, Width: 10}
	Polyline(img, []markup.Point{markup.Pt(10, 20), markup.Pt(30, 20)}, s)

	red := color.RGBA{R: 255, A: 255}
	if got := img.RGBAAt(20, 20); got != red {
		t.Fatalf("centre pixel = %v, want red", got)
	}
	// The cap extends past the end point by the half width.
	if got := img.RGBAAt(33, 19); got.A == 0 {
		t.Fatal("round cap missing beyond the end point")
	}
	// The corner of a square cap would be painted, a round one is not.
	if got := img.RGBAAt(34, 15); got.A != 0 {
		t.Fatalf("corner outside the round cap painted: %v", got)
	}
}

func TestTranslucentStrokeDoesNotDoubleOnOverlap(t *testing.T) {
	s := markup.Stroke{Color: color.NRGBA{R: 255, A: 102}, Width: 15}
	once := white(60, 40)
	Polyline(once, []markup.Point{markup.Pt(10, 20), markup.Pt(50, 20)}, s)
	back := white(60, 40)
	Polyline(back, []markup.Point{markup.Pt(10, 20), markup.Pt(50, 20), markup.Pt(10, 20)}, s)

	if got, want := back.RGBAAt(30, 20), once.RGBAAt(30, 20); got != want {
		t.Fatalf("overlapping segments blended twice: %v vs %v", got, want)
	}
	if got := once.RGBAAt(30, 20); got.G == 255 || got.G == 0 {
		t.Fatalf("expected a translucent blend, got %v", got)
	}
}

func TestPolylineSinglePointDrawsDot(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Polyline(img, []markup.Point{markup.Pt(5, 5)}, markup.Stroke{Color: color.NRGBA{B: 255, A: 255}, Width: 4})
	if got := img.RGBAAt(5, 5); got.B != 255 {
		t.Fatalf("dot missing: %v", got)
	}
}

func TestOutlineLeavesInteriorAlone(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	Outline(img, markup.Rect{Left: 10, Top: 10, Width: 30, Height: 30}, markup.Stroke{Color: color.NRGBA{R: 255, A: 255}, Width: 2})
	if got := img.RGBAAt(25, 10); got.R != 255 {
		t.Fatalf("top edge = %v", got)
	}
	if got := img.RGBAAt(10, 10); got.R != 255 {
		t.Fatalf("square corner = %v", got)
	}
	if got := img.RGBAAt(25, 25); got.A != 0 {
		t.Fatalf("interior painted: %v", got)
	}
}

func TestPixelate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 12), G: uint8(y * 12), A: 255})
		}
	}
	before := img.RGBAAt(3, 3)
	Pixelate(img, image.Rect(0, 0, 10, 10), 1)
	if img.RGBAAt(3, 3) != before {
		t.Fatal("block of one pixel should leave the image alone")
	}
	Pixelate(img, image.Rect(10, 10, 0, 0), 5)
	if img.RGBAAt(0, 0) != img.RGBAAt(4, 4) || img.RGBAAt(5, 5) != img.RGBAAt(9, 9) {
		t.Fatal("cells are not uniform")
	}
	if img.RGBAAt(0, 0) == img.RGBAAt(5, 5) {
		t.Fatal("distinct cells collapsed to one colour")
	}
	if got := img.RGBAAt(15, 15); got != (color.RGBA{R: 180, G: 180, A: 255}) {
		t.Fatalf("pixel outside the area changed: %v", got)
	}
}

func TestOperationPanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Operation(image.NewRGBA(image.Rect(0, 0, 1, 1)), nil, 1, 1)
}

func TestLayersCachesCompletedOperations(t *testing.T) {
	base := white(20, 20)
	s := markup.Stroke{Color: color.NRGBA{R: 255, A: 255}, Width: 2}
	a := &markup.PencilOp{Stroke: s, Path: []markup.Point{markup.Pt(2, 2), markup.Pt(8, 2)}}
	b := &markup.RectOp{Stroke: s, From: markup.Pt(10, 10), To: markup.Pt(15, 15)}
	live := &markup.MarkerpenOp{Stroke: s, From: markup.Pt(2, 18), To: markup.Pt(18, 18)}

	var l Layers
	frame := l.Render(base, []markup.Operation{a, b}, nil)
	if l.Len() != 2 {
		t.Fatalf("cached %d frames, want 2", l.Len())
	}
	if frame.RGBAAt(5, 2).G == 255 {
		t.Fatal("first operation missing from frame")
	}
	if base.RGBAAt(5, 2) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("Render modified the base image")
	}

	frame = l.Render(base, []markup.Operation{a, b, live}, live)
	if l.Len() != 2 {
		t.Fatalf("live operation was cached: %d frames", l.Len())
	}
	if frame.RGBAAt(10, 18).G == 255 {
		t.Fatal("live operation missing from frame")
	}

	l.Drop(b)
	if l.Len() != 1 {
		t.Fatalf("Drop left %d frames, want 1", l.Len())
	}
	l.Render(white(20, 20), []markup.Operation{a}, nil)
	if l.Len() != 1 {
		t.Fatalf("new base kept stale frames: %d", l.Len())
	}
	l.Reset()
	if l.Len() != 0 {
		t.Fatal("Reset kept frames")
	}
}
