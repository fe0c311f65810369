//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestWaylandOnly(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !waylandOnly() {
		t.Fatal("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("DISPLAY", ":0")
	if waylandOnly() {
		t.Fatal("XWayland display should be usable")
	}

	t.Setenv("DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "x11")
	if waylandOnly() {
		t.Fatal("did not expect wayland session when indicators are absent")
	}
}

func TestXImageToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{
		ImageByteOrder: xproto.ImageOrderLSBFirst,
		PixmapFormats:  []xproto.Format{{Depth: 24, BitsPerPixel: 32}},
	}
	reply := &xproto.GetImageReply{
		Depth: 24,
		// Two BGRX pixels; the padding byte must not become alpha.
		Data: []byte{0x30, 0x20, 0x10, 0x00, 0x00, 0x00, 0xFF, 0x00},
	}
	img, err := xImageToRGBA(setup, reply, 2, 1, "test")
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Fatalf("pixel 0 = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0xFF, 0, 0, 0xFF}) {
		t.Fatalf("pixel 1 = %v", got)
	}

	reply.Depth = 16
	if _, err := xImageToRGBA(setup, reply, 2, 1, "test"); err == nil {
		t.Fatal("expected error for an unknown depth")
	}
}
