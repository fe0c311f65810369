package markup

import (
	"fmt"
	"strings"
)

// Tool identifies the active editing tool. At most one tool is active at a
// time.
type Tool int

const (
	ToolNone Tool = iota
	ToolCrop
	ToolPencil
	ToolMarkerpen
	ToolPolyline
	ToolRect
	ToolMosaic
)

var toolNames = map[Tool]string{
	ToolNone:      "none",
	ToolCrop:      "crop",
	ToolPencil:    "pencil",
	ToolMarkerpen: "markerpen",
	ToolPolyline:  "polyline",
	ToolRect:      "rect",
	ToolMosaic:    "mosaic",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Draws reports whether t records draw operations.
func (t Tool) Draws() bool {
	switch t {
	case ToolPencil, ToolMarkerpen, ToolPolyline, ToolRect, ToolMosaic:
		return true
	}
	return false
}

// ParseTool resolves a tool by name. "marker" is accepted as an alias for
// markerpen and "line" for polyline.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return ToolNone, nil
	case "crop":
		return ToolCrop, nil
	case "pencil":
		return ToolPencil, nil
	case "markerpen", "marker":
		return ToolMarkerpen, nil
	case "polyline", "line":
		return ToolPolyline, nil
	case "rect":
		return ToolRect, nil
	case "mosaic":
		return ToolMosaic, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", name)
}
