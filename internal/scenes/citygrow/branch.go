package citygrow

import (
	"math"

	"citygrow/internal/core"
)

// BranchMode selects the growth style of a branch.
type BranchMode uint8

const (
	// ModeCity is the erratic random-walk style; city moves also lay
	// down block-fill rectangles.
	ModeCity BranchMode = iota
	// ModeLand is the directionally biased style that grows long
	// corridors.
	ModeLand
)

// String returns the mode name.
func (m BranchMode) String() string {
	if m == ModeLand {
		return "land"
	}
	return "city"
}

// randSource is the slice of RNG surface the simulation consumes. The
// deterministic tick order exhausts it in a fixed decision sequence;
// tests substitute scripted sources.
type randSource interface {
	Float32() float32
	IntN(n int) int
	Uint16N(n uint16) uint16
	Uint8() uint8
	Ratio(num, den uint32) bool
}

// Branch is one growing path: a tip position, a growth mode, the full
// ordered history of visited cells, a tick budget and a color. The
// growth engine owns branches exclusively; only drawing operations
// derived from their events ever leave the engine.
type Branch struct {
	id        uint32
	pos       core.Pos
	mode      BranchMode
	expandDir core.Pos
	fields    []core.Pos // append-only; backtracking scans it from the tail
	age       uint16
	lifeTime  uint16
	color     core.HSLA
}

// step advances the branch one tick. ok is false when the branch died
// this tick, either because its lifetime ran out or because no valid
// move exists even after backtracking. On success the returned
// positions describe the committed move: from is the resolved tip
// (post-backtrack), to the destination, and tip the history tail
// before the move. The caller marks the destination occupied.
func (b *Branch) step(g *core.BitGrid, p *Params, rng randSource) (from, to, tip core.Pos, ok bool) {
	if b.age >= b.lifeTime {
		return from, to, tip, false
	}

	// Near the end of life a branch degrades into erratic infill
	// regardless of its mode; otherwise it may switch modes.
	if b.lifeTime-b.age < p.LifeTimeBranch {
		b.mode = ModeCity
	} else {
		b.transitionModes(g, p, rng)
	}

	if !b.resolvePosition(g, p) {
		return from, to, tip, false
	}
	next := b.findNextMove(g, p, rng)

	from = b.pos
	tip = b.fields[len(b.fields)-1]
	b.pos = next
	b.fields = append(b.fields, next)
	b.age++
	return from, next, tip, true
}

// transitionModes rolls the per-tick mode switch. Switching to land
// re-aims the expand direction at a random free neighbor (keeping the
// old direction when boxed in); switching back to city re-rolls age to
// a uniform value in [0, age], which stretches the remaining lifetime
// without resetting the bookkeeping.
func (b *Branch) transitionModes(g *core.BitGrid, p *Params, rng randSource) {
	switch {
	case b.mode == ModeCity && rng.Float32() < p.PropCityToLand:
		if d, ok := b.sampleExpandDirection(g, rng); ok {
			b.expandDir = d
		}
		b.mode = ModeLand
	case b.mode == ModeLand && rng.Float32() < p.PropLandToCity:
		b.mode = ModeCity
		b.age = rng.Uint16N(b.age + 1)
	}
}

// sampleExpandDirection picks a random free neighbor of the tip and
// returns the offset to it.
func (b *Branch) sampleExpandDirection(g *core.BitGrid, rng randSource) (core.Pos, bool) {
	neighbors := g.FreeNeighbors(nil, b.pos)
	if len(neighbors) == 0 {
		return core.Pos{}, false
	}
	target := neighbors[rng.IntN(len(neighbors))]
	d, ok := target.Sub(b.pos)
	if !ok {
		return core.Pos{}, false
	}
	return d, true
}

// resolvePosition ensures the branch sits on a cell with at least one
// free neighbor, jumping backward through its history when the tip is
// boxed in. The search window is capped at MaxStepsBack. Reports false
// when no reachable position works, which kills the branch.
func (b *Branch) resolvePosition(g *core.BitGrid, p *Params) bool {
	if g.HasFreeNeighbor(b.pos) {
		return true
	}
	window := p.MaxStepsBack
	if window > len(b.fields) {
		window = len(b.fields)
	}
	for i := 0; i < window; i++ {
		cand := b.fields[len(b.fields)-1-i]
		if g.HasFreeNeighbor(cand) {
			b.pos = cand
			return true
		}
	}
	return false
}

// findNextMove picks the destination cell. The caller guarantees the
// current position has at least one free neighbor. City mode picks
// uniformly. Land mode prefers continuing along expandDir, with an
// occasional drift to a random neighbor; when the preferred cell is
// blocked it picks randomly and re-aims expandDir at the cell taken.
func (b *Branch) findNextMove(g *core.BitGrid, p *Params, rng randSource) core.Pos {
	neighbors := g.FreeNeighbors(nil, b.pos)
	if b.mode != ModeLand {
		return neighbors[rng.IntN(len(neighbors))]
	}

	if preferred, ok := b.pos.Add(b.expandDir); ok && g.Contains(preferred) && containsPos(neighbors, preferred) {
		den := uint32(math.Round(float64(float32(len(neighbors)) * p.LandDirectionalBias)))
		if rng.Ratio(uint32(len(neighbors)), den) {
			return neighbors[rng.IntN(len(neighbors))]
		}
		return preferred
	}

	next := neighbors[rng.IntN(len(neighbors))]
	if d, ok := next.Sub(b.pos); ok {
		b.expandDir = d
	}
	return next
}

// canBranchOff reports whether the branch has moved at least once;
// spawning always originates from the historical tip, so a branch that
// never moved has nothing to spawn from.
func (b *Branch) canBranchOff() bool {
	return len(b.fields) > 1
}

func containsPos(list []core.Pos, p core.Pos) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
