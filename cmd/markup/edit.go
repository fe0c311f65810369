package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/example/markup/internal/appstate"
	"github.com/example/markup/internal/capture"
	"github.com/example/markup/internal/clipboard"
	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/source"
)

var (
	captureSourceFn = capture.Source
	readClipboardFn = clipboard.ReadImage
	runEditorFn     = func(st *appstate.AppState) { st.Run() }
)

// editCmd opens the editor window.
type editCmd struct {
	file          string
	output        string
	fromClipboard bool
	capture       bool
	monitor       string
	toClipboard   bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) Program() string { return e.root.subcommand("edit") }

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "image file to edit")
	fs.StringVar(&e.output, "output", "", "where saved images are written (default: -file)")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "load the image from the clipboard")
	fs.BoolVar(&e.capture, "capture", false, "edit a screenshot of the desktop")
	fs.StringVar(&e.monitor, "monitor", "", "monitor to capture: primary, an index or part of its name")
	fs.BoolVar(&e.toClipboard, "to-clipboard", false, "also copy each saved image to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	sources := 0
	for _, set := range []bool{e.file != "" && !e.fromClipboard, e.fromClipboard, e.capture} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, &UsageError{of: e}
	case e.fromClipboard && e.capture:
		return nil, fmt.Errorf("-from-clipboard cannot be used with -capture")
	case e.file != "" && e.capture:
		return nil, fmt.Errorf("-file cannot be used with -capture")
	}
	if e.monitor != "" && !e.capture {
		return nil, fmt.Errorf("-monitor requires -capture")
	}
	if e.output == "" {
		e.output = e.file
	}
	if e.output == "" && r != nil && r.config != nil && r.config.SaveDir != "" {
		name := "clipboard.png"
		if e.capture {
			name = "screenshot.png"
		}
		e.output = filepath.Join(r.config.SaveDir, name)
	}
	if e.output == "" {
		return nil, fmt.Errorf("output file is required when editing a clipboard image or screenshot")
	}
	return e, nil
}

func (e *editCmd) load() (*source.Image, image.Rectangle, error) {
	switch {
	case e.capture:
		src, area, err := captureSourceFn(e.monitor)
		if err != nil {
			return nil, image.Rectangle{}, fmt.Errorf("failed to capture screen: %w", err)
		}
		e.root.notifyCapture(src, e.monitor)
		return src, area, nil
	case e.fromClipboard:
		f, err := readClipboardFn()
		if err != nil {
			return nil, image.Rectangle{}, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return source.Open(f, ""), image.Rectangle{}, nil
	}
	src, err := source.Load(e.file)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return src, image.Rectangle{}, nil
}

// onSave writes each saved image and optionally copies it.
func (e *editCmd) onSave(newImage, _ *source.Image) {
	path, err := writeImage(context.Background(), e.output, newImage)
	if err != nil {
		log.Printf("save: %v", err)
		return
	}
	log.Printf("saved %s", path)
	e.root.notifySave(path, newImage)
	if !e.toClipboard {
		return
	}
	if err := clipboard.WriteImage(newImage.File); err != nil {
		log.Printf("copy: %v", err)
		return
	}
	e.root.notifyCopy(newImage)
}

func (e *editCmd) Run() error {
	src, area, err := e.load()
	if err != nil {
		return err
	}
	if _, err := src.Size(context.Background()); err != nil {
		if errors.Is(err, source.ErrUnsupportedFormat) {
			return fmt.Errorf("%s: %w", src.File.Name, err)
		}
		return err
	}

	cfg := e.root.config
	opts := []appstate.Option{
		appstate.WithTheme(e.root.activeTheme),
		appstate.WithOnCopy(e.root.notifyCopy),
		appstate.WithSessionOptions(
			editor.WithStyles(cfg.Styles()),
			editor.WithBorder(cfg.Editor.Border),
			editor.WithOrigin(area),
			editor.WithOnSave(e.onSave),
		),
	}
	runEditorFn(appstate.New(src, opts...))
	return nil
}
