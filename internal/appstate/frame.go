package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/markup/internal/editor"
)

const (
	checkerSize = 8
	messageTTL  = 2 * time.Second
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// composeFrame draws the whole window into dst.
func (a *AppState) composeFrame(dst *image.RGBA) {
	t := a.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{t.Background}, image.Point{}, draw.Src)
	draw.Draw(dst, a.lay.toolbar, &image.Uniform{t.ToolbarBackground}, image.Point{}, draw.Src)
	for i, b := range a.buttons {
		b.Draw(dst, a.buttonState(i))
	}
	a.drawCanvas(dst)
	a.drawStatus(dst)
	a.drawMessage(dst)
}

func (a *AppState) drawCanvas(dst *image.RGBA) {
	disp := a.lay.display
	if disp.Empty() || a.orig == nil {
		return
	}
	t := a.theme
	drawCheckerboard(dst, disp, checkerSize, t.CheckerLight, t.CheckerDark)
	preview := a.layers.Render(a.displayBase(), a.session.Operations(), a.session.Live())
	draw.Draw(dst, disp, preview, image.Point{}, draw.Over)

	masks, ok := a.session.Masks()
	if !ok {
		return
	}
	for _, m := range masks.All() {
		r := m.Image().Add(disp.Min).Intersect(disp)
		draw.Draw(dst, r, &image.Uniform{t.Mask}, image.Point{}, draw.Over)
	}
	crop, _ := a.session.Crop()
	r := crop.Image().Add(disp.Min)
	drawDashedRect(dst, r, 4, 1, t.RegionBorder, color.Black)
	active := a.session.CropHandle()
	for i, hr := range handleRects(r) {
		col := t.Handle
		if editor.Handle(i+1) == active {
			col = t.ButtonBackgroundActive
		}
		draw.Draw(dst, hr, &image.Uniform{col}, image.Point{}, draw.Src)
		drawRect(dst, hr, t.ButtonBorder, 1)
	}
}

// displayBase returns the original scaled to the display size. The result
// is cached until the layout changes.
func (a *AppState) displayBase() *image.RGBA {
	size := a.lay.display.Size()
	if a.base != nil && a.base.Bounds().Size() == size {
		return a.base
	}
	a.base = image.NewRGBA(image.Rectangle{Max: size})
	xdraw.ApproxBiLinear.Scale(a.base, a.base.Bounds(), a.orig, a.orig.Bounds(), draw.Src, nil)
	return a.base
}

func (a *AppState) statusText() string {
	s := a.session
	disp := s.DisplaySize()
	text := fmt.Sprintf("%s  %s  %s  ops:%d", s.Tool(), s.Cursor(), disp, len(s.Operations()))
	if region, ok := s.CropRegion(); ok {
		text += "  crop " + region.String()
	}
	if s.PolylineOpen() {
		text += "  (line open)"
	}
	return text
}

func (a *AppState) drawStatus(dst *image.RGBA) {
	t := a.theme
	draw.Draw(dst, a.lay.status, &image.Uniform{t.StatusBackground}, image.Point{}, draw.Src)
	drawLabel(dst, a.lay.status.Min.X+4, a.lay.status.Min.Y+16, a.statusText(), t.Foreground)
}

func (a *AppState) messageVisible() bool {
	return a.message != "" && time.Now().Before(a.messageUntil)
}

// drawMessage shows the last message in a box centred on the canvas.
func (a *AppState) drawMessage(dst *image.RGBA) {
	if !a.messageVisible() {
		return
	}
	t := a.theme
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.Foreground), Face: messageFace}
	tw := d.MeasureString(a.message).Ceil()
	m := messageFace.Metrics()
	th := (m.Ascent + m.Descent).Ceil()
	c := a.lay.canvas
	x := c.Min.X + (c.Dx()-tw)/2
	y := c.Min.Y + (c.Dy()-th)/2
	box := image.Rect(x-8, y-8, x+tw+8, y+th+8)
	draw.Draw(dst, box, &image.Uniform{t.StatusBackground}, image.Point{}, draw.Src)
	drawRect(dst, box, t.ButtonBorder, 1)
	d.Dot = fixed.P(x, y+m.Ascent.Ceil())
	d.DrawString(a.message)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// drawDashedRect outlines rect with dashes alternating between c1 and c2.
func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	pick := func(i int) color.Color {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		col := pick(x - rect.Min.X)
		for t := 0; t < thickness; t++ {
			img.Set(x, rect.Min.Y+t, col)
			img.Set(x, rect.Max.Y-1-t, col)
		}
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		col := pick(y - rect.Min.Y)
		for t := 0; t < thickness; t++ {
			img.Set(rect.Min.X+t, y, col)
			img.Set(rect.Max.X-1-t, y, col)
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}

// handleRects returns the eight handle squares of rect in editor.Handle
// order, starting at HandleLeft.
func handleRects(rect image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	at := func(x, y int) image.Rectangle { return image.Rect(x-hs, y-hs, x+hs, y+hs) }
	return []image.Rectangle{
		at(rect.Min.X, cy),         // left
		at(rect.Min.X, rect.Min.Y), // left top
		at(cx, rect.Min.Y),         // top
		at(rect.Max.X, rect.Min.Y), // right top
		at(rect.Max.X, cy),         // right
		at(rect.Max.X, rect.Max.Y), // right bottom
		at(cx, rect.Max.Y),         // bottom
		at(rect.Min.X, rect.Max.Y), // left bottom
	}
}
