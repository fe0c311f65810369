package main

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markup/internal/appstate"
	"github.com/example/markup/internal/config"
	"github.com/example/markup/internal/source"
)

func TestEditRunCaptureError(t *testing.T) {
	original := captureSourceFn
	sentinel := errors.New("boom")
	captureSourceFn = func(string) (*source.Image, image.Rectangle, error) { return nil, image.Rectangle{}, sentinel }
	t.Cleanup(func() { captureSourceFn = original })

	cmd := &editCmd{capture: true, output: "out.png", root: &root{program: "markup", config: config.New()}}
	err := cmd.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestEditRunClipboardError(t *testing.T) {
	original := readClipboardFn
	sentinel := errors.New("empty")
	readClipboardFn = func() (source.File, error) { return source.File{}, sentinel }
	t.Cleanup(func() { readClipboardFn = original })

	cmd := &editCmd{fromClipboard: true, output: "out.png", root: &root{program: "markup", config: config.New()}}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestEditRunOpensEditor(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 12, 8)

	original := runEditorFn
	var got *appstate.AppState
	runEditorFn = func(st *appstate.AppState) { got = st }
	t.Cleanup(func() { runEditorFn = original })

	cmd, err := parseEditCmd([]string{"-file", in}, &root{program: "markup", config: config.New()})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got == nil {
		t.Fatal("editor not started")
	}
	if name := got.Session().Source().File.Name; name != "in.png" {
		t.Fatalf("editing %q", name)
	}
	if cmd.output != in {
		t.Fatalf("output = %q, want the input file", cmd.output)
	}
}

func TestParseEditErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"clipboard needs output", []string{"-from-clipboard"}, "output file is required"},
		{"clipboard and capture", []string{"-from-clipboard", "-capture", "-output", "x.png"}, "cannot be used with -capture"},
		{"file and capture", []string{"-file", "a.png", "-capture"}, "-file cannot be used"},
		{"monitor without capture", []string{"-file", "a.png", "-monitor", "1"}, "-monitor requires -capture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEditCmd(tt.args, &root{program: "markup", config: config.New()})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseEditDefaultsOutputToSaveDir(t *testing.T) {
	cfg := config.New()
	cfg.SaveDir = t.TempDir()
	cmd, err := parseEditCmd([]string{"-capture"}, &root{program: "markup", config: cfg})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := filepath.Join(cfg.SaveDir, "screenshot.png"); cmd.output != want {
		t.Fatalf("output = %q, want %q", cmd.output, want)
	}
}

func TestParseEditNoSourceIsUsage(t *testing.T) {
	_, err := parseEditCmd(nil, &root{program: "markup"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	if !strings.Contains(uerr.Error(), "markup edit") {
		t.Fatalf("help does not name the command:\n%s", uerr.Error())
	}
}

func TestRootUnknownCommand(t *testing.T) {
	r := newRoot()
	err := r.Run([]string{"frobnicate"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("error = %v, want UsageError", err)
	}
	for _, cmd := range []string{"edit", "replay", "config", "version"} {
		if !strings.Contains(uerr.Error(), cmd) {
			t.Errorf("root help lacks %q", cmd)
		}
	}
}

func TestConfigPrint(t *testing.T) {
	cfg := config.New()
	cfg.Theme = "dark"
	c, err := parseConfigCmd([]string{"print"}, &root{program: "markup", config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	c.out = &buf
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "theme = dark") || !strings.Contains(buf.String(), "[editor]") {
		t.Fatalf("unexpected config output:\n%s", buf.String())
	}
}

func TestConfigSave(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("MARKUP_CONFIG", "")
	c, err := parseConfigCmd([]string{"save"}, &root{program: "markup", config: config.New()})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "markup", "config.rc"))
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "[editor]") {
		t.Fatalf("saved config lacks the editor section:\n%s", data)
	}
}
