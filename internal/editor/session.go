// Package editor implements the interactive crop and annotation session: the
// crop region state machine, the per-tool drawing protocol, undo and redo,
// display resize handling and export.
package editor

import (
	"context"
	"errors"
	"image"
	"log"

	"github.com/example/markup/internal/composite"
	"github.com/example/markup/internal/markup"
	"github.com/example/markup/internal/source"
)

var (
	// ErrNothingToSave is returned by Save when there is no crop region and
	// no drawing.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrOriginalUnavailable is returned by Save when the original image
	// could not be decoded.
	ErrOriginalUnavailable = composite.ErrOriginalUnavailable
	// ErrDisplayUnknown is returned by Save before any display size was
	// reported.
	ErrDisplayUnknown = composite.ErrDisplayUnknown
	// ErrClosed is returned by Save after Close.
	ErrClosed = errors.New("session closed")
)

// SaveFunc receives the exported image and the image it replaces.
type SaveFunc func(newImage, oldImage *source.Image)

// RenderCache is notified when cached renderings of operations go stale.
type RenderCache interface {
	Drop(op markup.Operation)
	Reset()
}

// Option configures a Session.
type Option func(*Session)

// WithStyles sets the paint settings for new operations.
func WithStyles(st markup.Styles) Option { return func(s *Session) { s.styles = st } }

// WithBorder sets the border unit used for the minimum crop size.
func WithBorder(b float64) Option { return func(s *Session) { s.border = b } }

// WithOrigin records the screen rectangle the editor was opened from.
func WithOrigin(r image.Rectangle) Option { return func(s *Session) { s.origin = r } }

// WithOnSave sets the callback run after a successful save.
func WithOnSave(fn SaveFunc) Option { return func(s *Session) { s.onSave = fn } }

// WithOnClose sets the callback run once when the session closes.
func WithOnClose(fn func()) Option { return func(s *Session) { s.onClose = fn } }

// WithOnChange sets the callback run whenever the session needs a redraw.
func WithOnChange(fn func()) Option { return func(s *Session) { s.onChange = fn } }

// WithRenderCache attaches a preview cache to invalidate.
func WithRenderCache(c RenderCache) Option { return func(s *Session) { s.cache = c } }

// Session is the edit state for one image. It is driven from a single event
// loop and is not safe for concurrent use.
type Session struct {
	src    *source.Image
	origin image.Rectangle
	styles markup.Styles
	border float64

	tool    markup.Tool
	history History
	engine  *DrawingEngine
	crop    *CropController
	scale   ScaleSync

	reg     listeners
	mode    *scope
	gesture *scope

	cache    RenderCache
	onSave   SaveFunc
	onClose  func()
	onChange func()
	closed   bool
}

// New opens a session on src.
func New(src *source.Image, opts ...Option) *Session {
	s := &Session{
		src:    src,
		styles: markup.DefaultStyles(),
		border: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = NewDrawingEngine(&s.history, s.styles)
	return s
}

// Source returns the image currently being edited.
func (s *Session) Source() *source.Image { return s.src }

// Origin returns the rectangle passed with WithOrigin.
func (s *Session) Origin() image.Rectangle { return s.origin }

// Tool returns the active tool.
func (s *Session) Tool() markup.Tool { return s.tool }

// Styles returns the paint settings for new operations.
func (s *Session) Styles() markup.Styles { return s.styles }

// DisplaySize returns the last size passed to HandleResize.
func (s *Session) DisplaySize() markup.Size { return s.scale.Size() }

// Operations returns the operation log in replay order. The slice must not
// be modified.
func (s *Session) Operations() []markup.Operation { return s.history.Ops() }

// Live returns the operation still following the pointer, or nil.
func (s *Session) Live() markup.Operation { return s.engine.Current() }

// PolylineOpen reports whether a polyline is waiting for more vertices.
func (s *Session) PolylineOpen() bool { return s.engine.PolylineOpen() }

// CanUndo reports whether there is an operation to undo.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether there is an undone operation to restore.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Crop returns the crop region in display pixels while crop mode is on.
func (s *Session) Crop() (markup.Rect, bool) {
	if s.crop == nil {
		return markup.Rect{}, false
	}
	return s.crop.Rect(), true
}

// CropRegion returns the crop region with symbolic extents intact.
func (s *Session) CropRegion() (CropRegion, bool) {
	if s.crop == nil {
		return CropRegion{}, false
	}
	return s.crop.Region(), true
}

// CropHandle returns the handle of the crop drag in progress.
func (s *Session) CropHandle() Handle {
	if s.crop == nil {
		return HandleNone
	}
	return s.crop.Active()
}

// Masks returns the dimming rectangles while crop mode is on.
func (s *Session) Masks() (Masks, bool) {
	if s.crop == nil {
		return Masks{}, false
	}
	return s.crop.Masks(), true
}

// Cursor names the pointer cursor the host should show.
func (s *Session) Cursor() string {
	switch {
	case s.crop != nil:
		return s.crop.Cursor()
	case s.tool.Draws():
		return "crosshair"
	}
	return "auto"
}

// Listeners returns the number of attached pointer handlers.
func (s *Session) Listeners() int { return s.reg.len() }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// HandlePointerDown delivers a pointer press in display coordinates.
func (s *Session) HandlePointerDown(p markup.Point) { s.dispatch(PointerDown, p) }

// HandlePointerMove delivers pointer motion in display coordinates.
func (s *Session) HandlePointerMove(p markup.Point) { s.dispatch(PointerMove, p) }

// HandlePointerUp delivers a pointer release in display coordinates.
func (s *Session) HandlePointerUp(p markup.Point) { s.dispatch(PointerUp, p) }

func (s *Session) dispatch(ev EventType, p markup.Point) {
	if s.closed {
		return
	}
	s.reg.dispatch(ev, p)
	s.changed()
}

// SetTool activates t. Choosing a drawing tool leaves crop mode, which
// discards the crop region. Any gesture in progress ends first.
func (s *Session) SetTool(t markup.Tool) {
	if s.closed || t == s.tool {
		return
	}
	s.endGesture()
	s.mode.release()
	s.mode = nil
	s.crop = nil
	s.engine.SetTool(markup.ToolNone)
	s.tool = t

	switch {
	case t == markup.ToolCrop:
		s.enterCrop()
	case t.Draws():
		s.enterDraw()
	}
	s.changed()
}

func (s *Session) enterCrop() {
	s.crop = NewCropController(s.scale.Size(), s.border)
	s.mode = s.reg.scope()
	s.mode.on(PointerMove, func(p markup.Point) { s.crop.Hover(p) })
	s.mode.on(PointerDown, s.cropDown)
}

func (s *Session) cropDown(p markup.Point) {
	if !s.scale.Size().Known() {
		return
	}
	s.endGesture()
	s.crop.Begin(p)
	s.gesture = s.reg.scope()
	s.gesture.on(PointerMove, s.crop.Drag)
	s.gesture.on(PointerUp, func(markup.Point) { s.endGesture() })
}

func (s *Session) enterDraw() {
	s.engine.SetTool(s.tool)
	s.mode = s.reg.scope()
	s.mode.on(PointerDown, s.drawDown)
}

func (s *Session) drawDown(p markup.Point) {
	if !s.gesture.active() {
		s.gesture = s.reg.scope()
		s.gesture.on(PointerMove, func(p markup.Point) { s.engine.Handle(PointerMove, p) })
		s.gesture.on(PointerUp, s.drawUp)
	}
	s.engine.Handle(PointerDown, p)
}

func (s *Session) drawUp(p markup.Point) {
	s.engine.Handle(PointerUp, p)
	if !s.engine.InProgress() {
		s.gesture.release()
		s.gesture = nil
	}
}

// endGesture finishes any drag, draw or open polyline and detaches the
// listeners that followed it.
func (s *Session) endGesture() {
	s.engine.Cancel()
	if s.crop != nil {
		s.crop.End()
	}
	s.gesture.release()
	s.gesture = nil
}

// HandleResize rescales stored coordinates to a new display size. The first
// size only records it. Coordinates of a gesture in progress keep their
// values until the gesture ends, when the same factors are applied to them.
func (s *Session) HandleResize(size markup.Size) {
	if s.closed {
		return
	}
	sx, sy, ok := s.scale.Observe(size)
	if !ok {
		sx, sy = 1, 1
	}
	if s.crop != nil {
		s.crop.Resize(size, sx, sy)
	}
	if ok {
		live := s.engine.Current()
		s.engine.Defer(sx, sy)
		rescaleOps(s.history.log, live, sx, sy)
		rescaleOps(s.history.redo, live, sx, sy)
	}
	if s.cache != nil {
		s.cache.Reset()
	}
	s.changed()
}

// Undo removes the newest operation. It reports whether anything changed.
func (s *Session) Undo() bool {
	if s.closed {
		return false
	}
	s.endGesture()
	op, ok := s.history.Undo()
	if !ok {
		return false
	}
	if s.cache != nil {
		s.cache.Drop(op)
	}
	s.changed()
	return true
}

// Redo restores the newest undone operation.
func (s *Session) Redo() bool {
	if s.closed {
		return false
	}
	s.endGesture()
	if _, ok := s.history.Redo(); !ok {
		return false
	}
	s.changed()
	return true
}

// Save composites the edits onto the original image. On success the save
// callback receives the new and old images, the session resets and keeps
// editing the new image.
func (s *Session) Save(ctx context.Context) (*source.Image, error) {
	if s.closed {
		return nil, ErrClosed
	}
	s.endGesture()
	if s.crop == nil && s.history.Len() == 0 {
		log.Printf("save: %v", ErrNothingToSave)
		return nil, ErrNothingToSave
	}
	job := composite.Job{Display: s.scale.Size(), Ops: s.history.Ops()}
	if s.crop != nil {
		r := s.crop.Rect()
		job.Crop = &r
	}
	out, err := composite.Export(ctx, s.src, job)
	if err != nil {
		log.Printf("save %s: %v", s.src.File.Name, err)
		return nil, err
	}

	old := s.src
	s.src = out
	s.reset()
	if s.onSave != nil {
		s.onSave(out, old)
	}
	s.changed()
	return out, nil
}

func (s *Session) reset() {
	s.endGesture()
	s.mode.release()
	s.mode = nil
	s.crop = nil
	s.engine.SetTool(markup.ToolNone)
	s.tool = markup.ToolNone
	s.history.Clear()
	if s.cache != nil {
		s.cache.Reset()
	}
}

// Close ends the session. Every listener is detached, even mid-gesture, and
// the close callback runs once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.reset()
	s.closed = true
	if s.onClose != nil {
		s.onClose()
	}
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
