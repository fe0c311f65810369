package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// Pixelate replaces r in dst with square cells of roughly block pixels, each
// filled with the average colour of what dst held underneath.
func Pixelate(dst *image.RGBA, r image.Rectangle, block float64) {
	r = r.Canon().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	cell := int(math.Round(block))
	if cell <= 1 {
		return
	}
	cols := (r.Dx() + cell - 1) / cell
	rows := (r.Dy() + cell - 1) / cell
	src := imaging.Crop(dst, r)
	small := imaging.Resize(src, cols, rows, imaging.Box)
	big := imaging.Resize(small, r.Dx(), r.Dy(), imaging.NearestNeighbor)
	draw.Draw(dst, r, big, image.Point{}, draw.Src)
}
