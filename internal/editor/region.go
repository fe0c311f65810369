package editor

import (
	"fmt"
	"math"

	"github.com/example/markup/internal/markup"
)

// Length is a crop extent that is either absolute display pixels or a
// percentage of the displayed image.
type Length struct {
	Value   float64
	Percent bool
}

// Px returns an absolute length.
func Px(v float64) Length { return Length{Value: v} }

// Percent returns a length relative to the parent extent.
func Percent(v float64) Length { return Length{Value: v, Percent: true} }

// Resolve converts l to display pixels against a parent extent.
func (l Length) Resolve(parent float64) float64 {
	if l.Percent {
		return parent * l.Value / 100
	}
	return l.Value
}

func (l Length) String() string {
	if l.Percent {
		return fmt.Sprintf("%g%%", l.Value)
	}
	return fmt.Sprintf("%gpx", l.Value)
}

// CropRegion is the part of the displayed image that bounds the export.
// Left and Top are always pixels; the extents start out as 100% and are
// resolved to pixels on first interaction.
type CropRegion struct {
	Left, Top     float64
	Width, Height Length
}

// FullRegion covers the whole displayed image.
func FullRegion() CropRegion {
	return CropRegion{Width: Percent(100), Height: Percent(100)}
}

// Rect resolves the region against the displayed image size.
func (c CropRegion) Rect(parent markup.Size) markup.Rect {
	return markup.Rect{
		Left:   c.Left,
		Top:    c.Top,
		Width:  c.Width.Resolve(parent.W),
		Height: c.Height.Resolve(parent.H),
	}
}

// Symbolic reports whether either extent is still a percentage.
func (c CropRegion) Symbolic() bool { return c.Width.Percent || c.Height.Percent }

// Scale rescales the pixel fields. Percentages are left as they are.
func (c *CropRegion) Scale(sx, sy float64) {
	c.Left *= sx
	c.Top *= sy
	if !c.Width.Percent {
		c.Width.Value *= sx
	}
	if !c.Height.Percent {
		c.Height.Value *= sy
	}
}

func (c CropRegion) String() string {
	return fmt.Sprintf("{left:%gpx top:%gpx width:%v height:%v}", c.Left, c.Top, c.Width, c.Height)
}

func regionFromRect(r markup.Rect) CropRegion {
	return CropRegion{Left: r.Left, Top: r.Top, Width: Px(r.Width), Height: Px(r.Height)}
}

// Masks are the four dimming rectangles outside the crop region.
type Masks struct {
	Top, Bottom, Left, Right markup.Rect
}

// All returns the masks in top, bottom, left, right order.
func (m Masks) All() []markup.Rect { return []markup.Rect{m.Top, m.Bottom, m.Left, m.Right} }

// MasksFor computes the complement of r against the parent size.
func MasksFor(r markup.Rect, parent markup.Size) Masks {
	return Masks{
		Top:    markup.Rect{Width: parent.W, Height: r.Top},
		Bottom: markup.Rect{Top: r.Bottom(), Width: parent.W, Height: parent.H - r.Bottom()},
		Left:   markup.Rect{Top: r.Top, Width: r.Left, Height: r.Height},
		Right:  markup.Rect{Left: r.Right(), Top: r.Top, Width: parent.W - r.Right(), Height: r.Height},
	}
}

// Resize moves the edge(s) owned by h to the pointer at p. The pointer is
// clamped to the parent. When an extent collapses to minSize or below it is
// held at minSize against the opposite edge and the returned handle is the
// flipped one from the flip table.
func Resize(r markup.Rect, h Handle, p markup.Point, parent markup.Size, minSize float64) (markup.Rect, Handle) {
	x := clamp(p.X, 0, parent.W)
	y := clamp(p.Y, 0, parent.H)
	right, bottom := r.Right(), r.Bottom()
	var cx, cy bool

	switch {
	case h.ownsLeft():
		x = math.Min(x, parent.W-minSize)
		r.Left = x
		r.Width = right - x
		if r.Width <= minSize {
			r.Width = minSize
			r.Left = math.Max(right-minSize, 0)
			cx = true
		}
	case h.ownsRight():
		r.Width = x - r.Left
		if r.Width <= minSize {
			r.Width = minSize
			if r.Left+minSize > parent.W {
				r.Left = math.Max(parent.W-minSize, 0)
			}
			cx = true
		}
	}

	switch {
	case h.ownsTop():
		y = math.Min(y, parent.H-minSize)
		r.Top = y
		r.Height = bottom - y
		if r.Height <= minSize {
			r.Height = minSize
			r.Top = math.Max(bottom-minSize, 0)
			cy = true
		}
	case h.ownsBottom():
		r.Height = y - r.Top
		if r.Height <= minSize {
			r.Height = minSize
			if r.Top+minSize > parent.H {
				r.Top = math.Max(parent.H-minSize, 0)
			}
			cy = true
		}
	}

	return r, Flip(h, collapseAxis(cx, cy))
}

// Translate moves r by delta while keeping it inside the parent.
func Translate(r markup.Rect, delta markup.Point, parent markup.Size) markup.Rect {
	r.Left = clamp(r.Left+delta.X, 0, math.Max(parent.W-r.Width, 0))
	r.Top = clamp(r.Top+delta.Y, 0, math.Max(parent.H-r.Height, 0))
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CropController drives the crop region from pointer events.
type CropController struct {
	region   CropRegion
	parent   markup.Size
	minSize  float64
	active   Handle
	dragging bool
	last     markup.Point
	cursor   string

	// fx, fy map the display size the drag started at onto the present one.
	fx, fy float64
}

// NewCropController returns a controller covering the full image. border is
// the border unit; the region never shrinks below three of them.
func NewCropController(parent markup.Size, border float64) *CropController {
	if border <= 0 {
		border = 1
	}
	return &CropController{
		region:  FullRegion(),
		parent:  parent,
		minSize: 3 * border,
		cursor:  HandleNone.Cursor(),
		fx:      1,
		fy:      1,
	}
}

// Region returns the region with its symbolic extents intact.
func (c *CropController) Region() CropRegion { return c.region }

// Rect returns the region resolved to display pixels.
func (c *CropController) Rect() markup.Rect { return c.frameRect().Scale(c.fx, c.fy) }

// frameParent is the display size the drag in progress started at.
func (c *CropController) frameParent() markup.Size {
	return markup.Size{W: c.parent.W / c.fx, H: c.parent.H / c.fy}
}

func (c *CropController) frameRect() markup.Rect { return c.region.Rect(c.frameParent()) }

// Masks returns the dimming rectangles for the current region.
func (c *CropController) Masks() Masks { return MasksFor(c.Rect(), c.parent) }

// Cursor is the cursor name from the last hover.
func (c *CropController) Cursor() string { return c.cursor }

// Active is the handle of the drag in progress.
func (c *CropController) Active() Handle { return c.active }

// Dragging reports whether a resize or move drag is active.
func (c *CropController) Dragging() bool { return c.dragging }

// Hover updates the cursor for a pointer at p. It is ignored mid-drag.
func (c *CropController) Hover(p markup.Point) string {
	if c.dragging {
		return c.cursor
	}
	c.cursor = Classify(p, c.Rect()).Cursor()
	return c.cursor
}

// Begin starts a drag at p and returns the handle it grabbed. Symbolic
// extents are resolved here.
func (c *CropController) Begin(p markup.Point) Handle {
	c.resolve()
	c.active = Classify(p, c.Rect())
	c.cursor = c.active.Cursor()
	c.dragging = true
	c.last = p
	return c.active
}

// Drag follows the pointer with the active handle.
func (c *CropController) Drag(p markup.Point) {
	if !c.dragging {
		return
	}
	p = p.Scale(1/c.fx, 1/c.fy)
	r := c.frameRect()
	switch {
	case c.active == HandleMove:
		r = Translate(r, p.Sub(c.last), c.frameParent())
	case c.active.Resizes():
		r, c.active = Resize(r, c.active, p, c.frameParent(), c.minSize)
		c.cursor = c.active.Cursor()
	}
	c.region = regionFromRect(r)
	c.last = p
}

// End finishes the drag. A rescale deferred during the drag is applied now
// and the region is kept inside the parent.
func (c *CropController) End() {
	if c.fx != 1 || c.fy != 1 {
		c.region = regionFromRect(fit(c.Rect(), c.parent))
		c.fx, c.fy = 1, 1
	}
	c.dragging = false
	c.active = HandleNone
}

// Resize reacts to a new display size by rescaling the stored pixels. While
// a drag is in progress the stored pixels stay in the size the drag started
// at and the factors are kept for End.
func (c *CropController) Resize(size markup.Size, sx, sy float64) {
	if c.dragging {
		c.fx *= sx
		c.fy *= sy
	} else {
		c.region.Scale(sx, sy)
	}
	c.parent = size
}

// fit clamps r into the parent.
func fit(r markup.Rect, parent markup.Size) markup.Rect {
	left := clamp(r.Left, 0, parent.W)
	top := clamp(r.Top, 0, parent.H)
	return markup.Rect{
		Left:   left,
		Top:    top,
		Width:  clamp(r.Right(), left, parent.W) - left,
		Height: clamp(r.Bottom(), top, parent.H) - top,
	}
}

func (c *CropController) resolve() {
	if c.region.Symbolic() {
		c.region = regionFromRect(c.Rect())
	}
}
