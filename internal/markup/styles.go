package markup

import "image/color"

// Styles holds the paint settings each drawing tool seeds new operations with.
type Styles struct {
	Pencil      Stroke
	Markerpen   Stroke
	Rect        Stroke
	Polyline    Stroke
	MosaicBlock float64
}

// DefaultStyles mirrors the editor's stock pens: a thin red pencil and a wide
// red highlighter at 40% opacity.
func DefaultStyles() Styles {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	return Styles{
		Pencil:      Stroke{Color: red, Width: 2},
		Markerpen:   Stroke{Color: color.NRGBA{R: 0xFF, A: 102}, Width: 15},
		Rect:        Stroke{Color: red, Width: 2},
		Polyline:    Stroke{Color: red, Width: 2},
		MosaicBlock: 10,
	}
}
