// Package capture grabs the desktop as an editor source image.
package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/example/markup/internal/source"
)

type platformBackend interface {
	ListMonitors() ([]MonitorInfo, error)
	GrabScreen() (*image.RGBA, error)
}

var backend = newBackend()

var (
	errNoMonitors = errors.New("no monitors available")
	// ErrWayland is returned when only a Wayland session is available; the
	// grab needs an X server (XWayland counts).
	ErrWayland = errors.New("screen capture requires an X11 display")
)

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors retrieves all monitors using the platform backend.
func ListMonitors() ([]MonitorInfo, error) {
	return backend.ListMonitors()
}

// Screenshot captures the desktop. When a monitor selector is provided the
// result is cropped to the matching monitor.
func Screenshot(monitor string) (*image.RGBA, error) {
	img, err := backend.GrabScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	if monitor == "" {
		return img, nil
	}
	monitors, err := backend.ListMonitors()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	mon, err := FindMonitor(monitors, monitor)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

// Source captures the desktop and wraps it as a PNG source image. The
// returned rectangle is the captured area in screen coordinates.
func Source(monitor string) (*source.Image, image.Rectangle, error) {
	img, err := Screenshot(monitor)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	area := img.Bounds()
	if monitor != "" {
		if monitors, err := backend.ListMonitors(); err == nil {
			if mon, err := FindMonitor(monitors, monitor); err == nil {
				area = mon.Rect
			}
		}
	}
	src, err := source.FromImage("screenshot.png", "image/png", img)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return src, area, nil
}

// FindMonitor resolves a monitor selector against the provided list. The
// selector is "primary", an index (optionally prefixed with '#') or part of
// the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	if sel == "" {
		return monitors[0], nil
	}
	if sel == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	return clone.AsRGBA(imaging.Crop(src, rect)), nil
}
