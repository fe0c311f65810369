// Package notify shows desktop notifications when the editor captures,
// saves or copies an image.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/markup/internal/platform"
	"github.com/example/markup/internal/source"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture emits a notification when a screenshot is taken.
	EventCapture Event = "capture"
	// EventSave emits a notification when an edited image is written.
	EventSave Event = "save"
	// EventCopy emits a notification when an image is copied to the clipboard.
	EventCopy Event = "copy"
)

const displayTimeout = 5 * time.Second

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from the environment.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Markup",
		Events: map[Event]EventPreference{
			EventCapture: {Template: "Captured %s"},
			EventSave:    {Template: "Saved %s"},
			EventCopy:    {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences reads MARKUP_NOTIFY_TITLE and the per-event
// MARKUP_NOTIFY_*_TEXT templates on top of the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("MARKUP_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event := range prefs.Events {
		key := "MARKUP_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// Notifier sends OS-level notifications for the enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body string, opts platform.Options) error
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Captured announces a screenshot. The screenshot itself is the icon.
func (n *Notifier) Captured(img *source.Image, detail string) {
	if !n.enabledFor(EventCapture) {
		return
	}
	if detail == "" {
		detail = "screen"
	}
	n.withPreview(img, func(icon string) {
		n.dispatch(EventCapture, detail, icon)
	})
}

// Saved announces that img was written to path. The written file is the
// icon when it exists.
func (n *Notifier) Saved(path string, img *source.Image) {
	if !n.enabledFor(EventSave) {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := os.Stat(abs); err == nil {
		n.dispatch(EventSave, abs, abs)
		return
	}
	n.withPreview(img, func(icon string) {
		n.dispatch(EventSave, abs, icon)
	})
}

// Copied announces that img was placed on the clipboard.
func (n *Notifier) Copied(img *source.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	detail := "image"
	if img != nil && img.File.Name != "" {
		detail = img.File.Name
	}
	n.withPreview(img, func(icon string) {
		n.dispatch(EventCopy, detail, icon)
	})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts := platform.Options{AppName: n.prefs.Title, IconPath: icon, Timeout: displayTimeout}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// withPreview writes the encoded image to a temporary file for the duration
// of fn. fn gets an empty path when there is no image or the write fails.
func (n *Notifier) withPreview(img *source.Image, fn func(icon string)) {
	if img == nil || len(img.File.Data) == 0 {
		fn("")
		return
	}
	path, cleanup, err := createPreview(img.File)
	if err != nil {
		log.Printf("notification preview: %v", err)
		fn("")
		return
	}
	defer cleanup()
	fn(path)
}

func createPreview(f source.File) (string, func(), error) {
	ext := filepath.Ext(source.RenameForMIME("preview", f.MIME))
	tmp, err := os.CreateTemp("", "markup-preview-*"+ext)
	if err != nil {
		return "", nil, err
	}
	path := tmp.Name()
	if _, err := tmp.Write(f.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
