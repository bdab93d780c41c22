// Package render defines the drawing-operation model that crosses the
// simulation/backend boundary, and (under the ebiten build tag) the
// canvas that executes it. Simulation code only ever produces Op
// values; nothing here is required for the simulation to advance.
package render

import "image/color"

// Point is a position in screen space.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned screen-space rectangle.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// OpKind discriminates the primitive held by an Op.
type OpKind uint8

const (
	// KindLine is a stroked segment from Start to End.
	KindLine OpKind = iota
	// KindRect is a stroked rectangle outline.
	KindRect
	// KindFilledRect is a filled rectangle.
	KindFilledRect
	// KindPolyline is a stroked multi-segment path through Points.
	KindPolyline
)

// Op is one retained drawing primitive. Kind selects which fields are
// meaningful; Points is used only by polylines.
type Op struct {
	Kind       OpKind
	Start, End Point
	Rect       Rect
	Points     []Point
	Color      color.NRGBA
	Thickness  float32
}

// Line builds a stroked-segment operation.
func Line(start, end Point, col color.NRGBA, thickness float32) Op {
	return Op{Kind: KindLine, Start: start, End: end, Color: col, Thickness: thickness}
}

// StrokedRect builds a rectangle-outline operation.
func StrokedRect(r Rect, col color.NRGBA, thickness float32) Op {
	return Op{Kind: KindRect, Rect: r, Color: col, Thickness: thickness}
}

// FilledRect builds a filled-rectangle operation.
func FilledRect(r Rect, col color.NRGBA) Op {
	return Op{Kind: KindFilledRect, Rect: r, Color: col}
}

// Polyline builds a multi-segment stroke through points.
func Polyline(points []Point, col color.NRGBA, thickness float32) Op {
	return Op{Kind: KindPolyline, Points: points, Color: col, Thickness: thickness}
}

// BlendMode selects how a batch composites onto the canvas.
type BlendMode uint8

const (
	// BlendNormal is standard source-over alpha blending.
	BlendNormal BlendMode = iota
	// BlendMin takes the channel-wise minimum of source and
	// destination color. Drawing black under BlendMin forces every
	// covered pixel to exact black even at partial antialiased
	// coverage, which is what makes previously drawn strokes erasable.
	BlendMin
)

// Batch is an ordered group of operations submitted under one blend
// mode.
type Batch struct {
	Blend BlendMode
	Ops   []Op
}
