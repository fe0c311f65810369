package markup

import (
	"image/color"
	"math"
)

// Stroke describes how a stroked operation is painted.
type Stroke struct {
	Color color.NRGBA
	Width float64
}

// Operation is one recorded drawing action. The set of implementations is
// closed: *PencilOp, *MarkerpenOp, *RectOp, *PolylineOp and *MosaicOp.
// Operations are stored by pointer so the drawing engine can update the one
// under the pointer in place.
type Operation interface {
	// Kind returns the tool that records this operation.
	Kind() Tool
	// Points returns a copy of the display-space points.
	Points() []Point
	// Scale rewrites every point in place.
	Scale(sx, sy float64)
	// Clone returns a deep copy.
	Clone() Operation

	operation()
}

// PencilOp is a freehand polyline following the pointer.
type PencilOp struct {
	Stroke Stroke
	Path   []Point
}

func (*PencilOp) Kind() Tool { return ToolPencil }

func (o *PencilOp) Points() []Point { return clonePoints(o.Path) }

func (o *PencilOp) Scale(sx, sy float64) { scalePoints(o.Path, sx, sy) }

func (o *PencilOp) Clone() Operation {
	return &PencilOp{Stroke: o.Stroke, Path: clonePoints(o.Path)}
}

// Extend appends p to the path.
func (o *PencilOp) Extend(p Point) { o.Path = append(o.Path, p) }

func (*PencilOp) operation() {}

// MarkerpenOp is a translucent straight highlighter stroke.
type MarkerpenOp struct {
	Stroke   Stroke
	From, To Point
}

func (*MarkerpenOp) Kind() Tool { return ToolMarkerpen }

func (o *MarkerpenOp) Points() []Point { return []Point{o.From, o.To} }

func (o *MarkerpenOp) Scale(sx, sy float64) {
	o.From = o.From.Scale(sx, sy)
	o.To = o.To.Scale(sx, sy)
}

func (o *MarkerpenOp) Clone() Operation { c := *o; return &c }

// SetEnd moves the second point.
func (o *MarkerpenOp) SetEnd(p Point) { o.To = p }

func (*MarkerpenOp) operation() {}

// RectOp is an outlined box spanned by two corners.
type RectOp struct {
	Stroke   Stroke
	From, To Point
}

func (*RectOp) Kind() Tool { return ToolRect }

func (o *RectOp) Points() []Point { return []Point{o.From, o.To} }

func (o *RectOp) Scale(sx, sy float64) {
	o.From = o.From.Scale(sx, sy)
	o.To = o.To.Scale(sx, sy)
}

func (o *RectOp) Clone() Operation { c := *o; return &c }

// SetEnd moves the second corner.
func (o *RectOp) SetEnd(p Point) { o.To = p }

// Box returns the canonical rectangle.
func (o *RectOp) Box() Rect { return RectFromPoints(o.From, o.To) }

func (*RectOp) operation() {}

// PolylineOp is a sequence of straight segments built vertex by vertex.
type PolylineOp struct {
	Stroke   Stroke
	Vertices []Point
}

func (*PolylineOp) Kind() Tool { return ToolPolyline }

func (o *PolylineOp) Points() []Point { return clonePoints(o.Vertices) }

func (o *PolylineOp) Scale(sx, sy float64) { scalePoints(o.Vertices, sx, sy) }

func (o *PolylineOp) Clone() Operation {
	return &PolylineOp{Stroke: o.Stroke, Vertices: clonePoints(o.Vertices)}
}

// AddVertex appends p.
func (o *PolylineOp) AddVertex(p Point) { o.Vertices = append(o.Vertices, p) }

// MoveLast replaces the final vertex.
func (o *PolylineOp) MoveLast(p Point) {
	if len(o.Vertices) == 0 {
		o.Vertices = append(o.Vertices, p)
		return
	}
	o.Vertices[len(o.Vertices)-1] = p
}

func (*PolylineOp) operation() {}

// MosaicOp pixelates the box spanned by two corners. Block is the edge length
// of one mosaic cell in display pixels.
type MosaicOp struct {
	Block    float64
	From, To Point
}

func (*MosaicOp) Kind() Tool { return ToolMosaic }

func (o *MosaicOp) Points() []Point { return []Point{o.From, o.To} }

func (o *MosaicOp) Scale(sx, sy float64) {
	o.From = o.From.Scale(sx, sy)
	o.To = o.To.Scale(sx, sy)
}

func (o *MosaicOp) Clone() Operation { c := *o; return &c }

// SetEnd moves the second corner.
func (o *MosaicOp) SetEnd(p Point) { o.To = p }

// Box returns the canonical rectangle.
func (o *MosaicOp) Box() Rect { return RectFromPoints(o.From, o.To) }

func (*MosaicOp) operation() {}

// Bounds returns the smallest rectangle containing every point of op,
// ignoring stroke width.
func Bounds(op Operation) Rect {
	pts := op.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// CloneAll deep copies a list of operations.
func CloneAll(ops []Operation) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Clone()
	}
	return out
}

func clonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

func scalePoints(pts []Point, sx, sy float64) {
	for i := range pts {
		pts[i] = pts[i].Scale(sx, sy)
	}
}
