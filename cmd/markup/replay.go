package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/markup"
	"github.com/example/markup/internal/source"
)

// replayCmd applies a recorded edit script to an image without a window.
type replayCmd struct {
	file   string
	script string
	output string
	*root
	fs    *flag.FlagSet
	stdin io.Reader
}

func (p *replayCmd) Program() string { return p.root.subcommand("replay") }

func (p *replayCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	p := &replayCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.file, "file", "", "image file to edit")
	fs.StringVar(&p.script, "script", "", "edit script, or - for stdin")
	fs.StringVar(&p.output, "output", "", "output file path (default: -file)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if p.file == "" || p.script == "" {
		return nil, &UsageError{of: p}
	}
	if p.output == "" {
		p.output = p.file
	}
	return p, nil
}

type stepKind int

const (
	stepSize stepKind = iota
	stepTool
	stepDown
	stepMove
	stepUp
	stepUndo
	stepRedo
	stepSave
)

var stepDefs = map[string]struct {
	kind stepKind
	args int
}{
	"size": {stepSize, 2},
	"tool": {stepTool, 1},
	"down": {stepDown, 2},
	"move": {stepMove, 2},
	"up":   {stepUp, 2},
	"undo": {stepUndo, 0},
	"redo": {stepRedo, 0},
	"save": {stepSave, 0},
}

// scriptStep is one parsed script line.
type scriptStep struct {
	line int
	kind stepKind
	x, y float64
	tool markup.Tool
}

func parseScript(r io.Reader) ([]scriptStep, error) {
	var steps []scriptStep
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		def, ok := stepDefs[strings.ToLower(fields[0])]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown command %q", n, fields[0])
		}
		if len(fields)-1 != def.args {
			return nil, fmt.Errorf("line %d: %s takes %d arguments, got %d", n, fields[0], def.args, len(fields)-1)
		}
		step := scriptStep{line: n, kind: def.kind}
		switch {
		case def.kind == stepTool:
			t, err := markup.ParseTool(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			step.tool = t
		case def.args == 2:
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if err := errors.Join(errX, errY); err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			if def.kind == stepSize && (x <= 0 || y <= 0) {
				return nil, fmt.Errorf("line %d: size must be positive", n)
			}
			step.x, step.y = x, y
		}
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// runScript drives s with steps. Pending edits are saved at the end. The
// last saved image is returned.
func runScript(ctx context.Context, s *editor.Session, steps []scriptStep) (*source.Image, error) {
	var last *source.Image
	save := func() error {
		out, err := s.Save(ctx)
		if errors.Is(err, editor.ErrNothingToSave) {
			return nil
		}
		if err != nil {
			return err
		}
		last = out
		return nil
	}
	for _, st := range steps {
		p := markup.Pt(st.x, st.y)
		switch st.kind {
		case stepDown, stepMove, stepUp:
			if !s.DisplaySize().Known() {
				return nil, fmt.Errorf("line %d: pointer event before size", st.line)
			}
		}
		switch st.kind {
		case stepSize:
			s.HandleResize(markup.Size{W: st.x, H: st.y})
		case stepTool:
			s.SetTool(st.tool)
		case stepDown:
			s.HandlePointerDown(p)
		case stepMove:
			s.HandlePointerMove(p)
		case stepUp:
			s.HandlePointerUp(p)
		case stepUndo:
			s.Undo()
		case stepRedo:
			s.Redo()
		case stepSave:
			if err := save(); err != nil {
				return nil, fmt.Errorf("line %d: %w", st.line, err)
			}
		}
	}
	if _, cropping := s.Crop(); cropping || s.CanUndo() {
		if err := save(); err != nil {
			return nil, err
		}
	}
	if last == nil {
		return nil, editor.ErrNothingToSave
	}
	return last, nil
}

func (p *replayCmd) openScript() (io.ReadCloser, error) {
	if p.script == "-" {
		return io.NopCloser(p.stdin), nil
	}
	return os.Open(p.script)
}

func (p *replayCmd) Run() error {
	f, err := p.openScript()
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	steps, err := parseScript(f)
	f.Close()
	if err != nil {
		return err
	}

	src, err := source.Load(p.file)
	if err != nil {
		return err
	}
	var opts []editor.Option
	if p.root != nil && p.root.config != nil {
		opts = append(opts,
			editor.WithStyles(p.root.config.Styles()),
			editor.WithBorder(p.root.config.Editor.Border),
		)
	}
	s := editor.New(src, opts...)
	defer s.Close()

	ctx := context.Background()
	out, err := runScript(ctx, s, steps)
	if err != nil {
		return fmt.Errorf("replay %s: %w", p.file, err)
	}
	path, err := writeImage(ctx, p.output, out)
	if err != nil {
		return err
	}
	log.Printf("saved %s", path)
	p.root.notifySave(path, out)
	return nil
}
