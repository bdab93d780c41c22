package citygrow

import (
	"citygrow/internal/core"
	"citygrow/internal/render"
)

// Painter turns events into screen-space drawing operations and
// retains them per branch id, in emission order, so the reverse phase
// can undo them from the tail. It also tracks which ids are "main":
// main content draws above and erases after everything else.
type Painter struct {
	scale     float32
	rectAlpha uint8

	history map[uint32][]render.Op
	main    map[uint32]struct{}
}

func newPainter(scale, rectAlpha float32) *Painter {
	return &Painter{
		scale:     scale,
		rectAlpha: uint8(rectAlpha*255 + 0.5),
		history:   make(map[uint32][]render.Op),
		main:      make(map[uint32]struct{}),
	}
}

func (p *Painter) reset() {
	clear(p.history)
	clear(p.main)
}

func (p *Painter) markMain(id uint32) {
	p.main[id] = struct{}{}
}

func (p *Painter) isMain(id uint32) bool {
	_, ok := p.main[id]
	return ok
}

func (p *Painter) empty() bool {
	return len(p.history) == 0
}

// mainCount reports how many ids are currently flagged main.
func (p *Painter) mainCount() int {
	return len(p.main)
}

// gridToScreen maps a cell coordinate to the center of its screen
// footprint. Cells sit on every other scale-sized step.
func (p *Painter) gridToScreen(pos core.Pos) render.Point {
	return render.Point{
		X: float32(pos.X)*2*p.scale + p.scale/2,
		Y: float32(pos.Y)*2*p.scale + p.scale/2,
	}
}

// fillRect computes one city-block rectangle: the scale-sized square
// in the gap beside the move, offset from the history tip by perp.
func (p *Painter) fillRect(tip, to, perp core.Pos) render.Rect {
	cx := tip.X + perp.X
	cy := tip.Y + perp.Y
	if to.X < cx {
		cx = to.X
	}
	if to.Y < cy {
		cy = to.Y
	}
	left := float32(cx)*2*p.scale + p.scale
	top := float32(cy)*2*p.scale + p.scale
	return render.Rect{Left: left, Top: top, Right: left + p.scale, Bottom: top + p.scale}
}

// record derives the drawing operations for ev, appends them to the
// event's branch history, and appends the same operations to frame,
// returning the extended slice. A branch-off renders exactly like a
// move of the child: a line from the parent's tip to the spawn cell.
func (p *Painter) record(frame []render.Op, ev Event) []render.Op {
	var (
		id       uint32
		from, to core.Pos
		mode     BranchMode
		col      core.HSLA
		tip      core.Pos
	)
	switch e := ev.(type) {
	case MoveEvent:
		id, from, to, mode, col, tip = e.ID, e.From, e.To, e.Mode, e.Color, e.Tip
	case BranchOffEvent:
		id, from, to, mode, col, tip = e.ChildID, e.ParentPos, e.ChildPos, e.ParentMode, e.ChildColor, e.ParentPos
	default:
		return frame
	}

	ops := p.history[id]
	start := len(ops)

	if mode == ModeCity {
		// City moves fill the blocks on both sides of the stroke.
		// Perpendicular of the move direction: (-dy, dx).
		dir := core.Pos{X: to.X - from.X, Y: to.Y - from.Y}
		perp := core.Pos{X: -dir.Y, Y: dir.X}
		if !perp.IsZero() {
			fade := col.WithAlpha(p.rectAlpha).NRGBA()
			ops = append(ops,
				render.FilledRect(p.fillRect(tip, to, perp), fade),
				render.FilledRect(p.fillRect(tip, to, core.Pos{X: -perp.X, Y: -perp.Y}), fade),
			)
		}
	}
	ops = append(ops, render.Line(p.gridToScreen(from), p.gridToScreen(to), col.NRGBA(), p.scale))

	p.history[id] = ops
	return append(frame, ops[start:]...)
}
