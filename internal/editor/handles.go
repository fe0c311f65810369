package editor

import (
	"fmt"

	"github.com/example/markup/internal/markup"
)

// Handle identifies which part of the crop region a drag manipulates.
type Handle int

const (
	HandleNone Handle = iota
	HandleLeft
	HandleLeftTop
	HandleTop
	HandleRightTop
	HandleRight
	HandleRightBottom
	HandleBottom
	HandleLeftBottom
	// HandleMove translates the whole region.
	HandleMove
)

var handleNames = [...]string{
	HandleNone:        "none",
	HandleLeft:        "left",
	HandleLeftTop:     "left-top",
	HandleTop:         "top",
	HandleRightTop:    "right-top",
	HandleRight:       "right",
	HandleRightBottom: "right-bottom",
	HandleBottom:      "bottom",
	HandleLeftBottom:  "left-bottom",
	HandleMove:        "move",
}

func (h Handle) String() string {
	if h >= 0 && int(h) < len(handleNames) {
		return handleNames[h]
	}
	return fmt.Sprintf("Handle(%d)", int(h))
}

// Resizes reports whether h is one of the eight resize handles.
func (h Handle) Resizes() bool { return h >= HandleLeft && h <= HandleLeftBottom }

func (h Handle) ownsLeft() bool {
	return h == HandleLeft || h == HandleLeftTop || h == HandleLeftBottom
}

func (h Handle) ownsRight() bool {
	return h == HandleRight || h == HandleRightTop || h == HandleRightBottom
}

func (h Handle) ownsTop() bool {
	return h == HandleTop || h == HandleLeftTop || h == HandleRightTop
}

func (h Handle) ownsBottom() bool {
	return h == HandleBottom || h == HandleLeftBottom || h == HandleRightBottom
}

// Cursor returns the pointer cursor name shown while hovering h.
func (h Handle) Cursor() string {
	switch h {
	case HandleLeftTop, HandleRightBottom:
		return "nwse-resize"
	case HandleRightTop, HandleLeftBottom:
		return "nesw-resize"
	case HandleLeft, HandleRight:
		return "ew-resize"
	case HandleTop, HandleBottom:
		return "ns-resize"
	case HandleMove:
		return "move"
	}
	return "auto"
}

// Axis names the extent(s) that collapsed during a resize drag.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisXY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisXY:
		return "xy"
	}
	return "none"
}

func collapseAxis(x, y bool) Axis {
	switch {
	case x && y:
		return AxisXY
	case x:
		return AxisX
	case y:
		return AxisY
	}
	return AxisNone
}

type flipKey struct {
	handle Handle
	axis   Axis
}

// flipTable maps the active handle and the collapsed axis to the handle that
// continues the drag on the far side. Edge handles never collapse on the
// perpendicular axis, so those entries keep the handle.
var flipTable = map[flipKey]Handle{
	{HandleLeft, AxisX}:  HandleRight,
	{HandleLeft, AxisY}:  HandleLeft,
	{HandleLeft, AxisXY}: HandleRight,

	{HandleRight, AxisX}:  HandleLeft,
	{HandleRight, AxisY}:  HandleRight,
	{HandleRight, AxisXY}: HandleLeft,

	{HandleTop, AxisX}:  HandleTop,
	{HandleTop, AxisY}:  HandleBottom,
	{HandleTop, AxisXY}: HandleBottom,

	{HandleBottom, AxisX}:  HandleBottom,
	{HandleBottom, AxisY}:  HandleTop,
	{HandleBottom, AxisXY}: HandleTop,

	{HandleLeftTop, AxisX}:  HandleRightTop,
	{HandleLeftTop, AxisY}:  HandleLeftBottom,
	{HandleLeftTop, AxisXY}: HandleRightBottom,

	{HandleRightTop, AxisX}:  HandleLeftTop,
	{HandleRightTop, AxisY}:  HandleRightBottom,
	{HandleRightTop, AxisXY}: HandleLeftBottom,

	{HandleRightBottom, AxisX}:  HandleLeftBottom,
	{HandleRightBottom, AxisY}:  HandleRightTop,
	{HandleRightBottom, AxisXY}: HandleLeftTop,

	{HandleLeftBottom, AxisX}:  HandleRightBottom,
	{HandleLeftBottom, AxisY}:  HandleLeftTop,
	{HandleLeftBottom, AxisXY}: HandleRightTop,
}

// Flip returns the handle that takes over after the region collapses along
// axis while h is active. Unknown combinations return h.
func Flip(h Handle, axis Axis) Handle {
	if next, ok := flipTable[flipKey{h, axis}]; ok {
		return next
	}
	return h
}

// Classify resolves which handle a pointer at p addresses for region r.
// Corner zones, where the pointer lies beyond both an x edge and a y edge,
// take priority over edge zones. A pointer inside r addresses the move handle.
func Classify(p markup.Point, r markup.Rect) Handle {
	left := p.X < r.Left
	right := p.X > r.Right()
	top := p.Y < r.Top
	bottom := p.Y > r.Bottom()
	switch {
	case left && top:
		return HandleLeftTop
	case right && bottom:
		return HandleRightBottom
	case right && top:
		return HandleRightTop
	case left && bottom:
		return HandleLeftBottom
	case left:
		return HandleLeft
	case right:
		return HandleRight
	case top:
		return HandleTop
	case bottom:
		return HandleBottom
	}
	return HandleMove
}
