package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/markup/internal/markup"
	"github.com/example/markup/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Editor holds the tool settings new annotations are drawn with.
type Editor struct {
	Border        float64
	PencilColor   color.NRGBA
	PencilWidth   float64
	MarkerColor   color.NRGBA
	MarkerWidth   float64
	MarkerOpacity float64
	RectColor     color.NRGBA
	RectWidth     float64
	PolylineColor color.NRGBA
	PolylineWidth float64
	MosaicBlock   float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Editor  Editor
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Editor: Editor{
			Border:        1,
			PencilColor:   red,
			PencilWidth:   2,
			MarkerColor:   red,
			MarkerWidth:   15,
			MarkerOpacity: 0.4,
			RectColor:     red,
			RectWidth:     2,
			PolylineColor: red,
			PolylineWidth: 2,
			MosaicBlock:   10,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Styles converts the editor section into the paint settings of a session.
func (c *Config) Styles() markup.Styles {
	e := c.Editor
	marker := e.MarkerColor
	marker.A = uint8(float64(marker.A)*clamp01(e.MarkerOpacity) + 0.5)
	return markup.Styles{
		Pencil:      markup.Stroke{Color: e.PencilColor, Width: e.PencilWidth},
		Markerpen:   markup.Stroke{Color: marker, Width: e.MarkerWidth},
		Rect:        markup.Stroke{Color: e.RectColor, Width: e.RectWidth},
		Polyline:    markup.Stroke{Color: e.PolylineColor, Width: e.PolylineWidth},
		MosaicBlock: e.MosaicBlock,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	e := c.Editor
	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "border = %g\n", e.Border)
	fmt.Fprintf(&sb, "pencil_color = %s\n", theme.FormatColor(e.PencilColor))
	fmt.Fprintf(&sb, "pencil_width = %g\n", e.PencilWidth)
	fmt.Fprintf(&sb, "marker_color = %s\n", theme.FormatColor(e.MarkerColor))
	fmt.Fprintf(&sb, "marker_width = %g\n", e.MarkerWidth)
	fmt.Fprintf(&sb, "marker_opacity = %g\n", e.MarkerOpacity)
	fmt.Fprintf(&sb, "rect_color = %s\n", theme.FormatColor(e.RectColor))
	fmt.Fprintf(&sb, "rect_width = %g\n", e.RectWidth)
	fmt.Fprintf(&sb, "polyline_color = %s\n", theme.FormatColor(e.PolylineColor))
	fmt.Fprintf(&sb, "polyline_width = %g\n", e.PolylineWidth)
	fmt.Fprintf(&sb, "mosaic_block = %g\n", e.MosaicBlock)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Colors() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
