package markup

import (
	"image"
	"reflect"
	"testing"
)

func TestRectFromPointsCanonical(t *testing.T) {
	got := RectFromPoints(Pt(30, 5), Pt(10, 25))
	want := Rect{Left: 10, Top: 5, Width: 20, Height: 20}
	if got != want {
		t.Fatalf("RectFromPoints = %v, want %v", got, want)
	}
	if got.Right() != 30 || got.Bottom() != 25 {
		t.Fatalf("unexpected edges right=%g bottom=%g", got.Right(), got.Bottom())
	}
}

func TestRectImageRounds(t *testing.T) {
	r := Rect{Left: 1.4, Top: 1.6, Width: 10.2, Height: 3.3}
	if got, want := r.Image(), image.Rect(1, 2, 12, 5); !got.Eq(want) {
		t.Fatalf("Image() = %v, want %v", got, want)
	}
}

func TestParseTool(t *testing.T) {
	tests := []struct {
		in   string
		want Tool
	}{
		{"pencil", ToolPencil},
		{"Marker", ToolMarkerpen},
		{" markerpen ", ToolMarkerpen},
		{"line", ToolPolyline},
		{"rect", ToolRect},
		{"mosaic", ToolMosaic},
		{"crop", ToolCrop},
		{"", ToolNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTool(tt.in)
			if err != nil {
				t.Fatalf("ParseTool(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseTool(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if _, err := ParseTool("spray"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestToolDraws(t *testing.T) {
	if ToolCrop.Draws() || ToolNone.Draws() {
		t.Fatal("crop and none must not record operations")
	}
	for _, tool := range []Tool{ToolPencil, ToolMarkerpen, ToolPolyline, ToolRect, ToolMosaic} {
		if !tool.Draws() {
			t.Errorf("%v should draw", tool)
		}
	}
}

func TestOperationScaleAndClone(t *testing.T) {
	ops := []Operation{
		&PencilOp{Stroke: DefaultStyles().Pencil, Path: []Point{Pt(1, 2), Pt(3, 4)}},
		&MarkerpenOp{Stroke: DefaultStyles().Markerpen, From: Pt(1, 2), To: Pt(3, 4)},
		&RectOp{Stroke: DefaultStyles().Rect, From: Pt(1, 2), To: Pt(3, 4)},
		&PolylineOp{Stroke: DefaultStyles().Polyline, Vertices: []Point{Pt(1, 2), Pt(3, 4)}},
		&MosaicOp{Block: 10, From: Pt(1, 2), To: Pt(3, 4)},
	}
	for _, op := range ops {
		t.Run(op.Kind().String(), func(t *testing.T) {
			clone := op.Clone()
			if !reflect.DeepEqual(clone, op) {
				t.Fatalf("clone differs: %#v vs %#v", clone, op)
			}
			op.Scale(2, 3)
			want := []Point{Pt(2, 6), Pt(6, 12)}
			if got := op.Points(); !reflect.DeepEqual(got, want) {
				t.Fatalf("scaled points = %v, want %v", got, want)
			}
			if got := clone.Points(); !reflect.DeepEqual(got, []Point{Pt(1, 2), Pt(3, 4)}) {
				t.Fatalf("clone was mutated by Scale: %v", got)
			}
		})
	}
}

func TestPolylineMoveLast(t *testing.T) {
	op := &PolylineOp{}
	op.MoveLast(Pt(1, 1))
	op.AddVertex(Pt(2, 2))
	op.MoveLast(Pt(5, 5))
	if want := []Point{Pt(1, 1), Pt(5, 5)}; !reflect.DeepEqual(op.Vertices, want) {
		t.Fatalf("vertices = %v, want %v", op.Vertices, want)
	}
}

func TestBounds(t *testing.T) {
	op := &PencilOp{Path: []Point{Pt(5, 9), Pt(1, 3), Pt(7, 4)}}
	want := Rect{Left: 1, Top: 3, Width: 6, Height: 6}
	if got := Bounds(op); got != want {
		t.Fatalf("Bounds = %v, want %v", got, want)
	}
	if got := Bounds(&PencilOp{}); got != (Rect{}) {
		t.Fatalf("empty Bounds = %v", got)
	}
}
