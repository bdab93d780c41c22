package render

import "image/color"

// Black is the erase color.
var Black = color.NRGBA{A: 255}

const mergeEpsilon = 0.01

// Consolidate rewrites ops for erasure: every primitive is recolored
// black, and runs of equal-thickness lines where each segment starts
// at the previous segment's end are merged into a single polyline. Any
// non-mergeable operation flushes the pending run first, so the
// covered pixel set is unchanged; only the primitive count drops.
func Consolidate(ops []Op) []Op {
	if len(ops) == 0 {
		return nil
	}

	result := make([]Op, 0, len(ops))
	var run []Point
	var runThickness float32

	flush := func() {
		switch {
		case len(run) > 2:
			pts := make([]Point, len(run))
			copy(pts, run)
			result = append(result, Polyline(pts, Black, runThickness))
		case len(run) == 2:
			result = append(result, Line(run[0], run[1], Black, runThickness))
		}
		run = run[:0]
	}

	near := func(a, b float32) bool {
		d := a - b
		return d < mergeEpsilon && d > -mergeEpsilon
	}

	for i := range ops {
		op := &ops[i]
		if op.Kind == KindLine {
			switch {
			case len(run) == 0:
				run = append(run, op.Start, op.End)
				runThickness = op.Thickness
			case near(run[len(run)-1].X, op.Start.X) &&
				near(run[len(run)-1].Y, op.Start.Y) &&
				near(runThickness, op.Thickness):
				run = append(run, op.End)
			default:
				flush()
				run = append(run, op.Start, op.End)
				runThickness = op.Thickness
			}
			continue
		}

		flush()
		black := *op
		black.Color = Black
		result = append(result, black)
	}
	flush()

	return result
}
