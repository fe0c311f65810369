package composite

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/example/markup/internal/markup"
	"github.com/example/markup/internal/source"
)

// noise fills an image with a pattern where neighbouring pixels differ.
func noise(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8((x + y) * 3), A: 255})
		}
	}
	return img
}

func TestScale(t *testing.T) {
	sx, sy, err := Scale(image.Pt(100, 300), markup.Size{W: 50, H: 100})
	if err != nil {
		t.Fatal(err)
	}
	if sx != 2 || sy != 3 {
		t.Fatalf("scale = %g,%g want 2,3", sx, sy)
	}
	if _, _, err := Scale(image.Point{}, markup.Size{W: 1, H: 1}); !errors.Is(err, ErrOriginalUnavailable) {
		t.Fatalf("zero original: %v", err)
	}
	if _, _, err := Scale(image.Pt(1, 1), markup.Size{}); !errors.Is(err, ErrDisplayUnknown) {
		t.Fatalf("zero display: %v", err)
	}
}

func TestMosaicLandsAtOriginalScale(t *testing.T) {
	orig := noise(100, 100)
	job := Job{
		Display: markup.Size{W: 50, H: 50},
		Ops:     []markup.Operation{&markup.MosaicOp{Block: 10, From: markup.Pt(10, 10), To: markup.Pt(30, 30)}},
	}
	out, err := Render(orig, job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Bounds() != orig.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), orig.Bounds())
	}
	for _, p := range []image.Point{{19, 19}, {60, 60}, {19, 40}, {40, 60}} {
		if out.RGBAAt(p.X, p.Y) != orig.RGBAAt(p.X, p.Y) {
			t.Errorf("pixel %v outside (20,20)-(60,60) changed", p)
		}
	}
	// Block 10 at 2x gives 20px cells starting at (20,20).
	if out.RGBAAt(20, 20) != out.RGBAAt(39, 39) {
		t.Errorf("cell (20,20)-(40,40) is not uniform")
	}
	if out.RGBAAt(40, 40) != out.RGBAAt(59, 59) {
		t.Errorf("cell (40,40)-(60,60) is not uniform")
	}
	if out.RGBAAt(20, 20) == out.RGBAAt(40, 40) {
		t.Errorf("neighbouring cells share a colour")
	}
}

func TestStrokeLandsAtOriginalScale(t *testing.T) {
	orig := image.NewRGBA(image.Rect(0, 0, 100, 100))
	red := color.RGBA{R: 255, A: 255}
	job := Job{
		Display: markup.Size{W: 50, H: 50},
		Ops: []markup.Operation{&markup.RectOp{
			Stroke: markup.Stroke{Color: color.NRGBA{R: 255, A: 255}, Width: 1},
			From:   markup.Pt(10, 10),
			To:     markup.Pt(30, 30),
		}},
	}
	out, err := Render(orig, job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, p := range []image.Point{{40, 20}, {20, 40}, {59, 40}, {40, 59}} {
		if got := out.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("edge pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range []image.Point{{40, 40}, {17, 40}, {62, 40}} {
		if got := out.RGBAAt(p.X, p.Y); got.A != 0 {
			t.Errorf("pixel %v = %v, want untouched", p, got)
		}
	}
}

func TestCropAppliesAfterReplay(t *testing.T) {
	orig := noise(100, 100)
	crop := markup.Rect{Left: 10, Top: 10, Width: 20, Height: 20}
	job := Job{
		Display: markup.Size{W: 50, H: 50},
		Ops: []markup.Operation{&markup.PencilOp{
			Stroke: markup.Stroke{Color: color.NRGBA{B: 255, A: 255}, Width: 4},
			Path:   []markup.Point{markup.Pt(0, 20), markup.Pt(50, 20)},
		}},
		Crop: &crop,
	}
	out, err := Render(orig, job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 40, 40) {
		t.Fatalf("bounds = %v, want 40x40", got)
	}
	// The stroke runs through original y=40, which is y=20 of the crop.
	if got := out.RGBAAt(5, 20); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("stroke missing from cropped output: %v", got)
	}
	if got, want := out.RGBAAt(5, 5), orig.RGBAAt(25, 25); got != want {
		t.Fatalf("crop offset wrong: got %v want %v", got, want)
	}
}

func TestMosaicSamplesEarlierStrokes(t *testing.T) {
	orig := image.NewRGBA(image.Rect(0, 0, 40, 40))
	job := Job{
		Display: markup.Size{W: 40, H: 40},
		Ops: []markup.Operation{
			&markup.RectOp{Stroke: markup.Stroke{Color: color.NRGBA{G: 255, A: 255}, Width: 10}, From: markup.Pt(10, 10), To: markup.Pt(10, 10)},
			&markup.MosaicOp{Block: 20, From: markup.Pt(0, 0), To: markup.Pt(40, 40)},
		},
	}
	out, err := Render(orig, job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := out.RGBAAt(0, 0); got.G == 0 {
		t.Fatalf("mosaic did not pick up the earlier stroke: %v", got)
	}
}

func TestExportKeepsFormatAndFallsBack(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, noise(8, 8)); err != nil {
		t.Fatal(err)
	}
	src := source.Open(source.File{Name: "shot.png", Data: buf.Bytes()}, "")
	out, err := Export(context.Background(), src, Job{Display: markup.Size{W: 8, H: 8}})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.File.MIME != "image/png" || out.File.Name != "shot.png" {
		t.Fatalf("exported %s as %s", out.File.Name, out.File.MIME)
	}

	webp := source.Open(source.File{Name: "shot.webp", MIME: "image/webp", Data: buf.Bytes()}, "")
	out, err = Export(context.Background(), webp, Job{Display: markup.Size{W: 8, H: 8}})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.File.MIME != "image/png" || out.File.Name != "shot.png" {
		t.Fatalf("webp fallback exported %s as %s", out.File.Name, out.File.MIME)
	}
}

func TestExportUndecodableOriginal(t *testing.T) {
	src := source.Open(source.File{Name: "x.png", MIME: "image/png", Data: []byte("junk")}, "")
	if _, err := Export(context.Background(), src, Job{Display: markup.Size{W: 1, H: 1}}); !errors.Is(err, ErrOriginalUnavailable) {
		t.Fatalf("Export = %v, want ErrOriginalUnavailable", err)
	}
}
