package editor

import "github.com/example/markup/internal/markup"

// ScaleSync tracks the last known display size of the image.
type ScaleSync struct {
	size markup.Size
}

// Size returns the last observed size.
func (s *ScaleSync) Size() markup.Size { return s.size }

// Observe records next and returns the per-axis factors that map coordinates
// at the previous size onto next. ok is false when there is nothing to
// rescale: the first observation, a zero size on either side, or no change.
func (s *ScaleSync) Observe(next markup.Size) (sx, sy float64, ok bool) {
	prev := s.size
	s.size = next
	if !prev.Known() || !next.Known() || prev == next {
		return 1, 1, false
	}
	return next.W / prev.W, next.H / prev.H, true
}

// rescaleOps scales every operation except skip in place. skip is the live
// operation, which the drawing engine rescales when its draw ends.
func rescaleOps(ops []markup.Operation, skip markup.Operation, sx, sy float64) {
	for _, op := range ops {
		if op == skip {
			continue
		}
		op.Scale(sx, sy)
	}
}
