package core

import "math"

// Pos is an integer cell coordinate on the occupancy grid. It is also
// used for direction vectors, where the components are offsets rather
// than absolute coordinates.
type Pos struct {
	X, Y int32
}

// Directions lists the four axis-aligned neighbor offsets. The order
// (East, West, South, North) is fixed and doubles as the tie-break
// order wherever a deterministic first choice is needed.
var Directions = [4]Pos{
	{1, 0},  // East
	{-1, 0}, // West
	{0, 1},  // South
	{0, -1}, // North
}

// Add returns p+d. ok is false when either component would overflow;
// an overflowing candidate is rejected, never wrapped.
func (p Pos) Add(d Pos) (Pos, bool) {
	if (d.X > 0 && p.X > math.MaxInt32-d.X) || (d.X < 0 && p.X < math.MinInt32-d.X) {
		return Pos{}, false
	}
	if (d.Y > 0 && p.Y > math.MaxInt32-d.Y) || (d.Y < 0 && p.Y < math.MinInt32-d.Y) {
		return Pos{}, false
	}
	return Pos{p.X + d.X, p.Y + d.Y}, true
}

// Sub returns p-d with the same overflow-rejecting behavior as Add.
func (p Pos) Sub(d Pos) (Pos, bool) {
	if (d.X < 0 && p.X > math.MaxInt32+d.X) || (d.X > 0 && p.X < math.MinInt32+d.X) {
		return Pos{}, false
	}
	if (d.Y < 0 && p.Y > math.MaxInt32+d.Y) || (d.Y > 0 && p.Y < math.MinInt32+d.Y) {
		return Pos{}, false
	}
	return Pos{p.X - d.X, p.Y - d.Y}, true
}

// IsZero reports whether both components are zero.
func (p Pos) IsZero() bool { return p.X == 0 && p.Y == 0 }
