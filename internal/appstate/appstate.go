// Package appstate runs the interactive editor window. It turns shiny
// window events into calls on an editor.Session and paints the preview,
// the crop overlay and the toolbar.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/markup/internal/clipboard"
	"github.com/example/markup/internal/composite"
	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/markup"
	"github.com/example/markup/internal/render"
	"github.com/example/markup/internal/source"
	"github.com/example/markup/internal/theme"
)

const (
	frameDropThreshold = 10
	loadTimeout        = 30 * time.Second
	saveTimeout        = 30 * time.Second
)

// AppState holds the window state around one editing session.
type AppState struct {
	session *editor.Session
	theme   *theme.Theme
	title   string
	layers  render.Layers

	sessionOpts []editor.Option
	onClose     func()
	onCopy      func(*source.Image)
	closeOnce   sync.Once

	width, height int
	toolbarW      int
	lay           layout
	orig          image.Image
	base          *image.RGBA

	buttons        []*CacheButton
	hover          int
	pressed        bool
	actions        map[string]func()
	keyboardAction map[KeyShortcut]string

	message      string
	messageUntil time.Time
	quit         bool
	repaint      func()
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.title = title } }

// WithSessionOptions passes options through to the editor session. Close and
// change callbacks belong to the AppState and are overridden.
func WithSessionOptions(opts ...editor.Option) Option {
	return func(a *AppState) { a.sessionOpts = append(a.sessionOpts, opts...) }
}

// WithOnClose registers a callback run once when the editor closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// WithOnCopy registers a callback run after the image is copied to the
// clipboard.
func WithOnCopy(fn func(*source.Image)) Option { return func(a *AppState) { a.onCopy = fn } }

// New prepares an editor for src. Nothing is shown until Run.
func New(src *source.Image, opts ...Option) *AppState {
	a := &AppState{
		theme: theme.Default(),
		title: "Markup",
		hover: -1,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if src != nil && src.File.Name != "" {
		a.title = fmt.Sprintf("%s - %s", src.File.Name, a.title)
	}
	sopts := append(a.sessionOpts,
		editor.WithRenderCache(&a.layers),
		editor.WithOnChange(a.invalidate),
		editor.WithOnClose(a.notifyClose),
	)
	a.session = editor.New(src, sopts...)
	a.registerActions()
	return a
}

// Session exposes the underlying edit session.
func (a *AppState) Session() *editor.Session { return a.session }

func (a *AppState) invalidate() {
	if a.repaint != nil {
		a.repaint()
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) setMessage(msg string) {
	log.Print(msg)
	a.message = msg
	a.messageUntil = time.Now().Add(messageTTL)
}

// register binds an action name to fn and to its keyboard shortcuts.
func (a *AppState) register(name string, keys KeyboardShortcuts, fn func()) {
	a.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			a.keyboardAction[sc] = name
		}
	}
}

func (a *AppState) trigger(name string) {
	if fn, ok := a.actions[name]; ok {
		fn()
	}
}

type toolEntry struct {
	label string
	tool  markup.Tool
	key   rune
}

var toolEntries = []toolEntry{
	{"C:Crop", markup.ToolCrop, 'c'},
	{"P:Pencil", markup.ToolPencil, 'p'},
	{"M:Marker", markup.ToolMarkerpen, 'm'},
	{"L:Line", markup.ToolPolyline, 'l'},
	{"R:Rect", markup.ToolRect, 'r'},
	{"X:Mosaic", markup.ToolMosaic, 'x'},
}

type actionEntry struct {
	label, action string
}

var actionEntries = []actionEntry{
	{"^Z:Undo", "undo"},
	{"^Y:Redo", "redo"},
	{"^S:Save", "save"},
	{"^C:Copy", "copy"},
	{"Q:Close", "close"},
}

func (a *AppState) registerActions() {
	a.actions = map[string]func(){}
	a.keyboardAction = map[KeyShortcut]string{}
	a.buttons = nil
	var labels []string

	for _, te := range toolEntries {
		tool := te.tool
		a.register(tool.String(), shortcutList{{Rune: te.key}}, func() { a.toggleTool(tool) })
		a.buttons = append(a.buttons, &CacheButton{Button: &labelButton{
			label: te.label, action: tool.String(), theme: a.theme, activate: a.trigger,
		}})
		labels = append(labels, te.label)
	}
	a.register("none", shortcutList{{Code: key.CodeEscape}}, func() { a.session.SetTool(markup.ToolNone) })
	a.register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		if !a.session.Undo() {
			a.setMessage("nothing to undo")
		}
	})
	a.register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, func() {
		if !a.session.Redo() {
			a.setMessage("nothing to redo")
		}
	})
	a.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, a.save)
	a.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, a.copy)
	a.register("close", shortcutList{
		{Rune: 'q'},
		{Rune: 'w', Modifiers: key.ModControl},
	}, func() { a.quit = true })

	for _, ae := range actionEntries {
		a.buttons = append(a.buttons, &CacheButton{Button: &labelButton{
			label: ae.label, action: ae.action, theme: a.theme, activate: a.trigger,
		}})
		labels = append(labels, ae.label)
	}
	a.toolbarW = toolbarWidthFor(labels)
}

// toggleTool activates t, or deactivates it when it is already active.
func (a *AppState) toggleTool(t markup.Tool) {
	if a.session.Tool() == t {
		t = markup.ToolNone
	}
	a.session.SetTool(t)
}

func (a *AppState) buttonState(i int) ButtonState {
	lb, ok := a.buttons[i].Button.(*labelButton)
	if !ok {
		return StateDefault
	}
	switch lb.action {
	case "undo":
		if !a.session.CanUndo() {
			return StateDisabled
		}
	case "redo":
		if !a.session.CanRedo() {
			return StateDisabled
		}
	case a.session.Tool().String():
		return StatePressed
	}
	if i == a.hover {
		return StateHover
	}
	return StateDefault
}

// prepare waits for the original image to decode.
func (a *AppState) prepare(ctx context.Context) error {
	orig, err := a.session.Source().Original(ctx)
	if err != nil {
		return err
	}
	a.orig = orig
	a.base = nil
	return nil
}

// resize lays the window out for a new size and reports the display size to
// the session.
func (a *AppState) resize(w, h int) {
	a.width, a.height = w, h
	var img image.Point
	if a.orig != nil {
		img = a.orig.Bounds().Size()
	}
	a.lay = computeLayout(w, h, a.toolbarW, img)
	for i, b := range a.buttons {
		b.SetRect(image.Rect(0, i*buttonHeight, a.toolbarW, (i+1)*buttonHeight))
	}
	a.session.HandleResize(a.lay.displaySize())
}

func (a *AppState) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	out, err := a.session.Save(ctx)
	switch {
	case errors.Is(err, editor.ErrNothingToSave):
		a.setMessage("nothing to save")
		return
	case err != nil:
		a.setMessage(fmt.Sprintf("save failed: %v", err))
		return
	}
	// A crop changes the image size, so the layout follows the new image.
	if err := a.prepare(ctx); err != nil {
		log.Printf("reload %s: %v", out.File.Name, err)
	}
	a.resize(a.width, a.height)
	a.setMessage("saved " + out.File.Name)
}

// copy places the image with the current edits on the clipboard without
// committing them.
func (a *AppState) copy() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	s := a.session
	out := s.Source()
	if len(s.Operations()) > 0 || s.Tool() == markup.ToolCrop {
		job := composite.Job{Display: s.DisplaySize(), Ops: s.Operations()}
		if r, ok := s.Crop(); ok {
			job.Crop = &r
		}
		var err error
		if out, err = composite.Export(ctx, s.Source(), job); err != nil {
			a.setMessage(fmt.Sprintf("copy failed: %v", err))
			return
		}
	}
	if err := clipboard.WriteImage(out.File); err != nil {
		a.setMessage(fmt.Sprintf("copy failed: %v", err))
		return
	}
	a.setMessage("image copied to clipboard")
	if a.onCopy != nil {
		a.onCopy(out)
	}
}

func (a *AppState) handleKey(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	if name, ok := a.keyboardAction[shortcutOf(e)]; ok {
		a.trigger(name)
	}
}

func (a *AppState) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	if p.In(a.lay.toolbar) && !a.pressed {
		a.hover = -1
		for i, b := range a.buttons {
			if !p.In(b.Rect()) {
				continue
			}
			a.hover = i
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && a.buttonState(i) != StateDisabled {
				b.Activate()
			}
			break
		}
		return
	}
	a.hover = -1
	dp := a.lay.toDisplay(e.X, e.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if a.messageVisible() {
			a.messageUntil = time.Time{}
		}
		a.pressed = true
		a.session.HandlePointerDown(dp)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if a.pressed {
			a.pressed = false
			a.session.HandlePointerUp(dp)
		}
	case e.Direction == mouse.DirNone:
		a.session.HandlePointerMove(dp)
	}
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	defer a.session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	err := a.prepare(ctx)
	cancel()
	if err != nil {
		log.Printf("open %s: %v", a.session.Source().File.Name, err)
		return
	}

	winSize := initialWindowSize(a.orig.Bounds().Size(), a.session.Origin(), a.toolbarW)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: winSize.X, Height: winSize.Y, Title: a.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	a.repaint = func() { w.Send(paint.Event{}) }
	a.resize(winSize.X, winSize.Y)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan *image.RGBA, 1)
	painterDone := make(chan struct{})
	go func() {
		defer close(painterDone)
		for frame := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, frame)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPainter := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}
	defer func() {
		stopPainter()
		close(paintCh)
		<-painterDone
	}()

	for !a.quit {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			frame := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
			a.composeFrame(frame)
			select {
			case <-paintCh:
			default:
			}
			paintCh <- frame
		case mouse.Event:
			a.handleMouse(e)
			w.Send(paint.Event{})
		case key.Event:
			a.handleKey(e)
			w.Send(paint.Event{})
		case error:
			log.Print(e)
		}
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, frame *image.RGBA) {
	b, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	draw.Draw(b.RGBA(), b.Bounds(), frame, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
