package citygrow

import (
	"slices"

	"citygrow/internal/render"
)

// reverseStep pops up to budget operations off the history tails and
// returns them in overall reverse order, ready for an erase batch.
// Non-main branches drain completely before any main branch loses an
// operation, mirroring (and undoing) the draw-order guarantee. Ids
// whose history empties are dropped from the painter, including the
// main flag. done reports that nothing is left to erase.
//
// Ids are processed in sorted order so a seeded run erases
// identically every time.
func (p *Painter) reverseStep(budget int) (ops []render.Op, done bool) {
	if len(p.history) == 0 {
		return nil, true
	}
	if budget < 1 {
		budget = 1
	}

	ids := make([]uint32, 0, len(p.history))
	for id := range p.history {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var mainIDs, nonMainIDs []uint32
	for _, id := range ids {
		if p.isMain(id) {
			mainIDs = append(mainIDs, id)
		} else {
			nonMainIDs = append(nonMainIDs, id)
		}
	}
	process := nonMainIDs
	if len(process) == 0 {
		process = mainIDs
	}

	perBranch := (budget + len(process) - 1) / len(process)

	for _, id := range process {
		hist := p.history[id]
		n := perBranch
		if n > len(hist) {
			n = len(hist)
		}
		ops = append(ops, hist[len(hist)-n:]...)
		hist = hist[:len(hist)-n]
		if len(hist) == 0 {
			delete(p.history, id)
			delete(p.main, id)
		} else {
			p.history[id] = hist
		}
	}

	// Oldest-popped erases last: the batch undoes in strict LIFO order.
	slices.Reverse(ops)
	return ops, len(p.history) == 0
}
