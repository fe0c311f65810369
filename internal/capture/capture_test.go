package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeBackend struct {
	monitors    []MonitorInfo
	screen      *image.RGBA
	monitorsErr error
	grabErr     error
}

func (f fakeBackend) ListMonitors() ([]MonitorInfo, error) {
	if f.monitorsErr != nil {
		return nil, f.monitorsErr
	}
	return f.monitors, nil
}

func (f fakeBackend) GrabScreen() (*image.RGBA, error) {
	if f.grabErr != nil {
		return nil, f.grabErr
	}
	return f.screen, nil
}

func useBackend(t *testing.T, b platformBackend) {
	t.Helper()
	original := backend
	backend = b
	t.Cleanup(func() { backend = original })
}

var twoMonitors = []MonitorInfo{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 4, 4)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(4, 0, 8, 4), Primary: true},
}

func TestFindMonitor(t *testing.T) {
	tests := []struct {
		selector string
		want     string
		err      bool
	}{
		{"", "HDMI-1", false},
		{"primary", "eDP-1", false},
		{"1", "eDP-1", false},
		{"#0", "HDMI-1", false},
		{"edp", "eDP-1", false},
		{"5", "", true},
		{"dp-9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got, err := FindMonitor(twoMonitors, tt.selector)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.want {
				t.Fatalf("FindMonitor(%q) = %s, want %s", tt.selector, got.Name, tt.want)
			}
		})
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("empty list: %v", err)
	}
}

func TestScreenshotCropsToMonitor(t *testing.T) {
	screen := image.NewRGBA(image.Rect(0, 0, 8, 4))
	screen.SetRGBA(5, 1, color.RGBA{G: 255, A: 255})
	useBackend(t, fakeBackend{monitors: twoMonitors, screen: screen})

	img, err := Screenshot("primary")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("pixel = %v", got)
	}

	src, area, err := Source("1")
	if err != nil {
		t.Fatal(err)
	}
	if area != twoMonitors[1].Rect {
		t.Fatalf("area = %v", area)
	}
	size, err := src.Size(context.Background())
	if err != nil || size != image.Pt(4, 4) {
		t.Fatalf("source size = %v, %v", size, err)
	}
}

func TestScreenshotGrabError(t *testing.T) {
	sentinel := errors.New("denied")
	useBackend(t, fakeBackend{grabErr: sentinel})
	if _, err := Screenshot(""); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
