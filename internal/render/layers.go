package render

import (
	"image"

	"github.com/anthonynsimon/bild/clone"

	"github.com/example/markup/internal/markup"
)

type layer struct {
	op    markup.Operation
	frame *image.RGBA
}

// Layers caches the preview after each completed operation so redrawing a
// live stroke only replays the operations added since the last frame.
type Layers struct {
	base   *image.RGBA
	layers []layer
}

// Render returns base with ops painted at display scale. live, when it is
// one of ops, is painted but never cached since it still changes. The result
// must not be modified by the caller.
func (l *Layers) Render(base *image.RGBA, ops []markup.Operation, live markup.Operation) *image.RGBA {
	if base != l.base {
		l.Reset()
		l.base = base
	}
	n := 0
	for n < len(l.layers) && n < len(ops) && l.layers[n].op == ops[n] && ops[n] != live {
		n++
	}
	l.truncate(n)

	frame := base
	if n > 0 {
		frame = l.layers[n-1].frame
	}
	caching := true
	for _, op := range ops[n:] {
		next := clone.AsRGBA(frame)
		Operation(next, op, 1, 1)
		frame = next
		if op == live {
			caching = false
		}
		if caching {
			l.layers = append(l.layers, layer{op: op, frame: frame})
		}
	}
	return frame
}

// Drop discards the frame for op and every frame after it.
func (l *Layers) Drop(op markup.Operation) {
	for i, c := range l.layers {
		if c.op == op {
			l.truncate(i)
			return
		}
	}
}

// Reset discards every cached frame.
func (l *Layers) Reset() {
	l.truncate(0)
	l.base = nil
}

// Len returns the number of cached frames.
func (l *Layers) Len() int { return len(l.layers) }

func (l *Layers) truncate(n int) {
	for i := n; i < len(l.layers); i++ {
		l.layers[i] = layer{}
	}
	l.layers = l.layers[:n]
}
