package render

import (
	"image/color"
	"reflect"
	"testing"
)

var red = color.NRGBA{R: 255, A: 255}

func TestConsolidateEmpty(t *testing.T) {
	if got := Consolidate(nil); got != nil {
		t.Fatalf("Consolidate(nil) = %v, want nil", got)
	}
}

func TestConsolidateSingleLine(t *testing.T) {
	got := Consolidate([]Op{Line(Point{0, 0}, Point{4, 0}, red, 2)})
	want := []Op{Line(Point{0, 0}, Point{4, 0}, Black, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want single blackened line", got)
	}
}

func TestConsolidateMergesChainedLines(t *testing.T) {
	got := Consolidate([]Op{
		Line(Point{0, 0}, Point{4, 0}, red, 2),
		Line(Point{4, 0}, Point{4, 4}, red, 2),
		Line(Point{4, 4}, Point{0, 4}, red, 2),
	})
	want := []Op{Polyline([]Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, Black, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want one polyline", got)
	}
}

func TestConsolidateBreaksOnGap(t *testing.T) {
	got := Consolidate([]Op{
		Line(Point{0, 0}, Point{4, 0}, red, 2),
		Line(Point{10, 10}, Point{14, 10}, red, 2),
	})
	want := []Op{
		Line(Point{0, 0}, Point{4, 0}, Black, 2),
		Line(Point{10, 10}, Point{14, 10}, Black, 2),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want two separate lines", got)
	}
}

func TestConsolidateBreaksOnThickness(t *testing.T) {
	got := Consolidate([]Op{
		Line(Point{0, 0}, Point{4, 0}, red, 2),
		Line(Point{4, 0}, Point{8, 0}, red, 3),
	})
	if len(got) != 2 {
		t.Fatalf("got %d ops, want the thickness change to break the run", len(got))
	}
	if got[0].Kind != KindLine || got[1].Kind != KindLine {
		t.Fatalf("got kinds %v/%v, want two lines", got[0].Kind, got[1].Kind)
	}
}

func TestConsolidateFlushesAroundRects(t *testing.T) {
	rect := Rect{Left: 1, Top: 1, Right: 3, Bottom: 3}
	got := Consolidate([]Op{
		Line(Point{0, 0}, Point{4, 0}, red, 2),
		Line(Point{4, 0}, Point{8, 0}, red, 2),
		FilledRect(rect, red),
		Line(Point{8, 0}, Point{12, 0}, red, 2),
	})
	want := []Op{
		Polyline([]Point{{0, 0}, {4, 0}, {8, 0}}, Black, 2),
		FilledRect(rect, Black),
		Line(Point{8, 0}, Point{12, 0}, Black, 2),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestConsolidateEverythingBlack(t *testing.T) {
	got := Consolidate([]Op{
		FilledRect(Rect{Right: 2, Bottom: 2}, red),
		Line(Point{0, 0}, Point{1, 0}, color.NRGBA{G: 128, A: 200}, 1),
	})
	for i, op := range got {
		if op.Color != Black {
			t.Fatalf("op %d color = %v, want black", i, op.Color)
		}
	}
}
