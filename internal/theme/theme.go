package theme

import (
	"image/color"
)

// Theme defines the colours of the editor chrome. Annotation colours are not
// part of a theme; they come from the [editor] config section.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the image
	Foreground color.RGBA // Status bar text

	// Toolbar & status bar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA

	// Tool Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonTextDisabled     color.RGBA
	ButtonBorder           color.RGBA

	// Crop overlay
	Mask         color.RGBA // Drawn over the area outside the crop region
	RegionBorder color.RGBA
	Handle       color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		StatusBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonTextActive:       color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:     color.RGBA{130, 130, 130, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		Mask:                   color.RGBA{0, 0, 0, 128},
		RegionBorder:           color.RGBA{255, 255, 255, 255},
		Handle:                 color.RGBA{255, 255, 255, 255},
		CheckerLight:           color.RGBA{220, 220, 220, 255},
		CheckerDark:            color.RGBA{192, 192, 192, 255},
	}
}
