package citygrow

import "citygrow/internal/core"

// Event is a semantic occurrence produced by one tick and consumed by
// the painter within the same tick.
type Event interface {
	// BranchID identifies the branch under whose history the event's
	// drawing operations are recorded.
	BranchID() uint32
}

// MoveEvent reports a branch tip advancing by one cell.
type MoveEvent struct {
	ID    uint32
	From  core.Pos
	To    core.Pos
	Mode  BranchMode
	Color core.HSLA

	// Tip is the tail of the branch's visit history before this move.
	// The city-block fill geometry anchors on it rather than on From,
	// which can differ after a backtrack jump.
	Tip core.Pos
}

// BranchID implements Event.
func (e MoveEvent) BranchID() uint32 { return e.ID }

// BranchOffEvent reports a child branch spawning off a parent.
type BranchOffEvent struct {
	ChildID    uint32
	ParentPos  core.Pos
	ChildPos   core.Pos
	ParentMode BranchMode
	ChildColor core.HSLA
}

// BranchID implements Event.
func (e BranchOffEvent) BranchID() uint32 { return e.ChildID }
