package appstate

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/example/markup/internal/markup"
)

const (
	buttonHeight = 24
	statusHeight = 24
	// margin keeps the crop handles on the canvas when the region touches
	// the image edge.
	margin     = handleSize
	handleSize = 8

	maxInitialWidth  = 1280
	maxInitialHeight = 800
)

// layout splits the window into toolbar, canvas and status bar. display is
// where the image is drawn; its size is the display size the session works
// in.
type layout struct {
	toolbar image.Rectangle
	canvas  image.Rectangle
	status  image.Rectangle
	display image.Rectangle
}

func computeLayout(winW, winH, toolbarW int, img image.Point) layout {
	l := layout{
		toolbar: image.Rect(0, 0, toolbarW, winH-statusHeight),
		canvas:  image.Rect(toolbarW, 0, winW, winH-statusHeight),
		status:  image.Rect(0, winH-statusHeight, winW, winH),
	}
	avail := l.canvas.Inset(margin)
	size := fitSize(img, avail.Size())
	// Anchored at the top left so the image does not jump while the
	// window is resized.
	l.display = image.Rectangle{Min: avail.Min, Max: avail.Min.Add(size)}
	return l
}

// fitSize scales img down to fit within avail keeping its aspect ratio. It
// never scales up.
func fitSize(img, avail image.Point) image.Point {
	if img.X <= 0 || img.Y <= 0 || avail.X <= 0 || avail.Y <= 0 {
		return image.Point{}
	}
	scale := math.Min(1, math.Min(float64(avail.X)/float64(img.X), float64(avail.Y)/float64(img.Y)))
	return image.Pt(
		max(1, int(math.Round(float64(img.X)*scale))),
		max(1, int(math.Round(float64(img.Y)*scale))),
	)
}

// initialWindowSize picks the window size for img. A non-empty origin, the
// rectangle the editor was opened from, bounds the first display size.
func initialWindowSize(img image.Point, origin image.Rectangle, toolbarW int) image.Point {
	avail := image.Pt(maxInitialWidth, maxInitialHeight)
	if !origin.Empty() {
		avail = origin.Size()
	}
	size := fitSize(img, avail)
	return image.Pt(size.X+toolbarW+2*margin, size.Y+statusHeight+2*margin)
}

func (l layout) displaySize() markup.Size {
	return markup.Size{W: float64(l.display.Dx()), H: float64(l.display.Dy())}
}

// toDisplay converts window coordinates into display coordinates.
func (l layout) toDisplay(x, y float32) markup.Point {
	return markup.Pt(float64(x)-float64(l.display.Min.X), float64(y)-float64(l.display.Min.Y))
}

// toolbarWidthFor is wide enough for every label plus padding.
func toolbarWidthFor(labels []string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := 48
	for _, lbl := range labels {
		if lw := d.MeasureString(lbl).Ceil() + 8; lw > w {
			w = lw
		}
	}
	return w
}
