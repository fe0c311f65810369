package main

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markup/internal/config"
	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/markup"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestParseScript(t *testing.T) {
	script := `# draw a box
size 50 50
tool rect
down 10 10
move 30.5 30

up 30 30
undo
redo
save
`
	steps, err := parseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	if len(steps) != 8 {
		t.Fatalf("%d steps, want 8", len(steps))
	}
	if steps[1].kind != stepTool || steps[1].tool != markup.ToolRect {
		t.Fatalf("tool step = %+v", steps[1])
	}
	if steps[3].x != 30.5 || steps[3].line != 5 {
		t.Fatalf("move step = %+v", steps[3])
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name, script, want string
	}{
		{"unknown", "jump 1 2", "unknown command"},
		{"arity", "down 1", "takes 2 arguments"},
		{"number", "move a 2", "line 1"},
		{"tool", "tool brush", "unknown tool"},
		{"size", "size 0 10", "size must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScript(strings.NewReader(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestReplayWritesOriginalScale(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	script := filepath.Join(dir, "edit.txt")
	writePNG(t, in, 100, 100)
	if err := os.WriteFile(script, []byte("size 50 50\ntool rect\ndown 10 10\nmove 30 30\nup 30 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &root{program: "markup", config: config.New()}
	cmd, err := parseReplayCmd([]string{"-file", in, "-script", script, "-output", out}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	img := readPNG(t, out)
	if got := img.Bounds().Size(); got != image.Pt(100, 100) {
		t.Fatalf("output is %v, want 100x100", got)
	}
	r0, g0, b0, _ := img.At(40, 20).RGBA()
	if r0>>8 != 255 || g0>>8 != 0 || b0>>8 != 0 {
		t.Fatalf("pixel (40,20) = %v, want red", img.At(40, 20))
	}
	if got := color.RGBAModel.Convert(img.At(40, 40)).(color.RGBA); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("interior pixel = %v, want white", got)
	}
}

func TestReplayCrop(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 80, 60)

	r := &root{program: "markup", config: config.New()}
	cmd, err := parseReplayCmd([]string{"-file", in, "-script", "-"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cmd.stdin = strings.NewReader("size 40 30\ntool crop\ndown 41 31\nmove 20 15\nup 20 15\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := readPNG(t, in).Bounds().Size(); got != image.Pt(40, 30) {
		t.Fatalf("cropped output is %v, want 40x30", got)
	}
}

func TestReplayNothingToSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 10, 10)
	cmd, err := parseReplayCmd([]string{"-file", in, "-script", "-"}, &root{program: "markup"})
	if err != nil {
		t.Fatal(err)
	}
	cmd.stdin = strings.NewReader("size 10 10\ntool pencil\n")
	if err := cmd.Run(); !errors.Is(err, editor.ErrNothingToSave) {
		t.Fatalf("Run = %v, want ErrNothingToSave", err)
	}
}

func TestReplayPointerBeforeSize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 10, 10)
	cmd, err := parseReplayCmd([]string{"-file", in, "-script", "-"}, &root{program: "markup"})
	if err != nil {
		t.Fatal(err)
	}
	cmd.stdin = strings.NewReader("tool rect\ndown 1 1\n")
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "before size") {
		t.Fatalf("Run = %v", err)
	}
}
