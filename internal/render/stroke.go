package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/markup/internal/markup"
)

// kappa places cubic control points so four arcs approximate a circle.
const kappa = 0.5522847498

// Polyline strokes pts with round caps and joins. Every segment and every
// round cap is added to one mask with the same winding, so overlapping parts
// of a translucent stroke are painted once.
func Polyline(dst draw.Image, pts []markup.Point, s markup.Stroke) {
	if len(pts) == 0 || s.Width <= 0 || s.Color.A == 0 {
		return
	}
	h := s.Width / 2
	area := pointBounds(pts).Inset(-int(math.Ceil(h)) - 1).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	z := vector.NewRasterizer(area.Dx(), area.Dy())
	z.DrawOp = draw.Over
	origin := markup.Pt(float64(area.Min.X), float64(area.Min.Y))
	for i := 1; i < len(pts); i++ {
		segment(z, pts[i-1].Sub(origin), pts[i].Sub(origin), h)
	}
	for _, p := range pts {
		disc(z, p.Sub(origin), h)
	}
	z.Draw(dst, area, image.NewUniform(s.Color), image.Point{})
}

// Outline strokes the border of r centred on its edges with square corners.
func Outline(dst draw.Image, r markup.Rect, s markup.Stroke) {
	if s.Width <= 0 || s.Color.A == 0 {
		return
	}
	h := s.Width / 2
	outer := markup.Rect{Left: r.Left - h, Top: r.Top - h, Width: r.Width + s.Width, Height: r.Height + s.Width}
	area := outer.Image().Inset(-1).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	z := vector.NewRasterizer(area.Dx(), area.Dy())
	z.DrawOp = draw.Over
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	box(z, outer.Left-ox, outer.Top-oy, outer.Right()-ox, outer.Bottom()-oy, false)
	if r.Width > s.Width && r.Height > s.Width {
		// The inner box winds the other way and cancels the interior.
		box(z, r.Left+h-ox, r.Top+h-oy, r.Right()-h-ox, r.Bottom()-h-oy, true)
	}
	z.Draw(dst, area, image.NewUniform(s.Color), image.Point{})
}

func segment(z *vector.Rasterizer, a, b markup.Point, h float64) {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return
	}
	n := markup.Pt(-d.Y*h/l, d.X*h/l)
	p0, p1, p2, p3 := a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)
	z.MoveTo(f32(p0.X), f32(p0.Y))
	z.LineTo(f32(p1.X), f32(p1.Y))
	z.LineTo(f32(p2.X), f32(p2.Y))
	z.LineTo(f32(p3.X), f32(p3.Y))
	z.ClosePath()
}

func disc(z *vector.Rasterizer, c markup.Point, r float64) {
	k := r * kappa
	x, y := c.X, c.Y
	z.MoveTo(f32(x+r), f32(y))
	z.CubeTo(f32(x+r), f32(y-k), f32(x+k), f32(y-r), f32(x), f32(y-r))
	z.CubeTo(f32(x-k), f32(y-r), f32(x-r), f32(y-k), f32(x-r), f32(y))
	z.CubeTo(f32(x-r), f32(y+k), f32(x-k), f32(y+r), f32(x), f32(y+r))
	z.CubeTo(f32(x+k), f32(y+r), f32(x+r), f32(y+k), f32(x+r), f32(y))
	z.ClosePath()
}

// box adds an axis aligned rectangle. reverse winds it the other way.
func box(z *vector.Rasterizer, x0, y0, x1, y1 float64, reverse bool) {
	if reverse {
		z.MoveTo(f32(x0), f32(y0))
		z.LineTo(f32(x0), f32(y1))
		z.LineTo(f32(x1), f32(y1))
		z.LineTo(f32(x1), f32(y0))
	} else {
		z.MoveTo(f32(x0), f32(y0))
		z.LineTo(f32(x1), f32(y0))
		z.LineTo(f32(x1), f32(y1))
		z.LineTo(f32(x0), f32(y1))
	}
	z.ClosePath()
}

func pointBounds(pts []markup.Point) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

func f32(v float64) float32 { return float32(v) }
