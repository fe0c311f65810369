// Package composite renders recorded edits onto the original image at its
// full resolution.
package composite

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/example/markup/internal/markup"
	"github.com/example/markup/internal/render"
	"github.com/example/markup/internal/source"
)

var (
	// ErrOriginalUnavailable means the original pixel size is not known.
	ErrOriginalUnavailable = errors.New("original image size unavailable")
	// ErrDisplayUnknown means the display size needed for scaling is zero.
	ErrDisplayUnknown = errors.New("display size unknown")
)

// Scale returns the per-axis factors that map display coordinates onto the
// original image.
func Scale(original image.Point, display markup.Size) (sx, sy float64, err error) {
	if original.X <= 0 || original.Y <= 0 {
		return 0, 0, ErrOriginalUnavailable
	}
	if !display.Known() {
		return 0, 0, ErrDisplayUnknown
	}
	return float64(original.X) / display.W, float64(original.Y) / display.H, nil
}

// Job is one export of the edit state.
type Job struct {
	Display markup.Size
	Ops     []markup.Operation
	// Crop is in display space. Nil exports the whole image.
	Crop *markup.Rect
}

// Render replays the job on a copy of original and applies the crop.
func Render(original image.Image, job Job) (*image.RGBA, error) {
	if original == nil {
		return nil, ErrOriginalUnavailable
	}
	sx, sy, err := Scale(original.Bounds().Size(), job.Display)
	if err != nil {
		return nil, err
	}
	surface := clone.AsRGBA(original)
	if surface.Rect.Min != (image.Point{}) {
		surface = clone.AsRGBA(imaging.Crop(surface, surface.Rect))
	}
	render.Operations(surface, job.Ops, sx, sy)
	if job.Crop == nil {
		return surface, nil
	}
	area := job.Crop.Scale(sx, sy).Image().Intersect(surface.Bounds())
	if area.Empty() {
		return nil, fmt.Errorf("crop %v lies outside the image", *job.Crop)
	}
	return clone.AsRGBA(imaging.Crop(surface, area)), nil
}

// Export waits for the original of src, renders the job and encodes the
// result in the source's format.
func Export(ctx context.Context, src *source.Image, job Job) (*source.Image, error) {
	original, err := src.Original(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrOriginalUnavailable, err)
	}
	out, err := Render(original, job)
	if err != nil {
		return nil, err
	}
	return source.FromImage(src.File.Name, src.File.MIME, out)
}
