package core

// IntSource is the randomness a grid needs to draw positions.
type IntSource interface {
	IntN(n int) int
}

// BitGrid is a dense boolean occupancy field over a rectangular cell
// space, bit-packed in row-major order. Reads outside the bounds
// report !ok and writes outside the bounds are dropped, so position
// math that wandered off the board costs a candidate neighbor rather
// than a panic.
type BitGrid struct {
	W, H int
	bits []uint64
}

// NewBitGrid allocates a grid with the given dimensions. Non-positive
// dimensions are clamped to 1.
func NewBitGrid(w, h int) *BitGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &BitGrid{W: w, H: h, bits: make([]uint64, (w*h+63)/64)}
}

func (g *BitGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get reports the cell value at (x, y). ok is false out of range.
func (g *BitGrid) Get(x, y int) (value, ok bool) {
	if !g.inBounds(x, y) {
		return false, false
	}
	i := y*g.W + x
	return g.bits[i/64]&(1<<(i%64)) != 0, true
}

// Set writes the cell at (x, y). Out-of-range writes are no-ops.
func (g *BitGrid) Set(x, y int, value bool) {
	if !g.inBounds(x, y) {
		return
	}
	i := y*g.W + x
	if value {
		g.bits[i/64] |= 1 << (i % 64)
	} else {
		g.bits[i/64] &^= 1 << (i % 64)
	}
}

// Fill sets every cell to value.
func (g *BitGrid) Fill(value bool) {
	var word uint64
	if value {
		word = ^uint64(0)
	}
	for i := range g.bits {
		g.bits[i] = word
	}
}

// Contains reports whether p lies within the grid bounds.
func (g *BitGrid) Contains(p Pos) bool {
	return g.inBounds(int(p.X), int(p.Y))
}

// RandomPos draws a uniformly random in-bounds position.
func (g *BitGrid) RandomPos(rng IntSource) Pos {
	return Pos{X: int32(rng.IntN(g.W)), Y: int32(rng.IntN(g.H))}
}

// FreeNeighbors appends to dst the 4-neighbors of p that are in bounds
// and unoccupied, in direction order (East, West, South, North), and
// returns the extended slice. Neighbors whose coordinates would
// overflow are excluded.
func (g *BitGrid) FreeNeighbors(dst []Pos, p Pos) []Pos {
	for _, d := range Directions {
		n, ok := p.Add(d)
		if !ok {
			continue
		}
		if occupied, ok := g.Get(int(n.X), int(n.Y)); ok && !occupied {
			dst = append(dst, n)
		}
	}
	return dst
}

// HasFreeNeighbor reports whether p has at least one in-bounds
// unoccupied 4-neighbor.
func (g *BitGrid) HasFreeNeighbor(p Pos) bool {
	for _, d := range Directions {
		n, ok := p.Add(d)
		if !ok {
			continue
		}
		if occupied, ok := g.Get(int(n.X), int(n.Y)); ok && !occupied {
			return true
		}
	}
	return false
}
