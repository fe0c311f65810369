package editor

import "github.com/example/markup/internal/markup"

type drawKey struct {
	event EventType
	tool  markup.Tool
}

type drawHandler func(d *DrawingEngine, p markup.Point)

// drawTable is the per-tool pointer protocol. Combinations without an entry
// are ignored.
var drawTable = map[drawKey]drawHandler{
	{PointerDown, markup.ToolPencil}: seedPath,
	{PointerMove, markup.ToolPencil}: extendPath,
	{PointerUp, markup.ToolPencil}:   finishPath,

	{PointerDown, markup.ToolMarkerpen}: seedPair,
	{PointerMove, markup.ToolMarkerpen}: moveSecond,
	{PointerUp, markup.ToolMarkerpen}:   finishPair,

	{PointerDown, markup.ToolRect}: seedPair,
	{PointerMove, markup.ToolRect}: moveSecond,
	{PointerUp, markup.ToolRect}:   finishPair,

	{PointerDown, markup.ToolMosaic}: seedPair,
	{PointerMove, markup.ToolMosaic}: moveSecond,
	{PointerUp, markup.ToolMosaic}:   finishPair,

	{PointerDown, markup.ToolPolyline}: polylineDown,
	{PointerMove, markup.ToolPolyline}: polylineMove,
	{PointerUp, markup.ToolPolyline}:   polylineUp,
}

// DrawingEngine records draw operations for the active tool.
type DrawingEngine struct {
	tool    markup.Tool
	styles  markup.Styles
	history *History

	current markup.Operation
	// open is set while a polyline waits for further vertices.
	open  bool
	moved bool

	// fx, fy map the display size the current draw started at onto the
	// present one.
	fx, fy float64
}

// NewDrawingEngine returns an engine that logs into h.
func NewDrawingEngine(h *History, styles markup.Styles) *DrawingEngine {
	return &DrawingEngine{history: h, styles: styles, fx: 1, fy: 1}
}

// SetTool switches tools, ending any draw in progress.
func (d *DrawingEngine) SetTool(t markup.Tool) {
	d.Cancel()
	d.tool = t
}

// Tool returns the active tool.
func (d *DrawingEngine) Tool() markup.Tool { return d.tool }

// Styles returns the styles new operations are seeded with.
func (d *DrawingEngine) Styles() markup.Styles { return d.styles }

// Handle runs the protocol step for ev with the active tool. It reports
// whether the table had an entry.
func (d *DrawingEngine) Handle(ev EventType, p markup.Point) bool {
	fn, ok := drawTable[drawKey{ev, d.tool}]
	if !ok {
		return false
	}
	fn(d, p.Scale(1/d.fx, 1/d.fy))
	return true
}

// Defer records a display rescale that arrived while a draw is in progress.
// Later pointer positions are mapped back to the size the draw started at,
// and the operation is rescaled once when the draw ends. It reports false
// when nothing is being drawn.
func (d *DrawingEngine) Defer(sx, sy float64) bool {
	if d.current == nil {
		return false
	}
	d.fx *= sx
	d.fy *= sy
	return true
}

// Current returns the operation under the pointer, or nil.
func (d *DrawingEngine) Current() markup.Operation { return d.current }

// InProgress reports whether a draw has started but not finished. An open
// polyline counts as in progress.
func (d *DrawingEngine) InProgress() bool { return d.current != nil }

// PolylineOpen reports whether a polyline is accepting further vertices.
func (d *DrawingEngine) PolylineOpen() bool { return d.open }

// Cancel ends the draw in progress. The operation stays in the log as it was
// last drawn, rescaled by any deferred display change.
func (d *DrawingEngine) Cancel() {
	if d.current != nil && (d.fx != 1 || d.fy != 1) {
		d.current.Scale(d.fx, d.fy)
	}
	d.fx, d.fy = 1, 1
	d.current = nil
	d.open = false
	d.moved = false
}

func (d *DrawingEngine) begin(op markup.Operation) {
	d.history.Push(op)
	d.current = op
	d.moved = false
}

func seedPath(d *DrawingEngine, p markup.Point) {
	d.begin(&markup.PencilOp{Stroke: d.styles.Pencil, Path: []markup.Point{p}})
}

func extendPath(d *DrawingEngine, p markup.Point) {
	if op, ok := d.current.(*markup.PencilOp); ok {
		op.Extend(p)
	}
}

func finishPath(d *DrawingEngine, p markup.Point) {
	extendPath(d, p)
	d.Cancel()
}

func seedPair(d *DrawingEngine, p markup.Point) {
	switch d.tool {
	case markup.ToolMarkerpen:
		d.begin(&markup.MarkerpenOp{Stroke: d.styles.Markerpen, From: p, To: p})
	case markup.ToolRect:
		d.begin(&markup.RectOp{Stroke: d.styles.Rect, From: p, To: p})
	case markup.ToolMosaic:
		d.begin(&markup.MosaicOp{Block: d.styles.MosaicBlock, From: p, To: p})
	}
}

type endSetter interface {
	SetEnd(markup.Point)
}

func moveSecond(d *DrawingEngine, p markup.Point) {
	if op, ok := d.current.(endSetter); ok {
		op.SetEnd(p)
	}
}

func finishPair(d *DrawingEngine, p markup.Point) {
	moveSecond(d, p)
	d.Cancel()
}

func polylineDown(d *DrawingEngine, p markup.Point) {
	if op, ok := d.current.(*markup.PolylineOp); ok && d.open {
		op.AddVertex(p)
		d.history.DropRedo()
		d.moved = false
		return
	}
	d.begin(&markup.PolylineOp{Stroke: d.styles.Polyline, Vertices: []markup.Point{p, p}})
	d.open = true
}

func polylineMove(d *DrawingEngine, p markup.Point) {
	op, ok := d.current.(*markup.PolylineOp)
	if !ok {
		return
	}
	op.MoveLast(p)
	d.moved = true
}

// polylineUp closes the polyline only when the pointer moved after the
// matching down. A plain click leaves it open for the next vertex.
func polylineUp(d *DrawingEngine, p markup.Point) {
	op, ok := d.current.(*markup.PolylineOp)
	if !ok || !d.moved {
		return
	}
	op.MoveLast(p)
	d.Cancel()
}
