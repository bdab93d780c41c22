package citygrow

import (
	"testing"

	"citygrow/internal/core"
)

// stubRNG plays back scripted draws. Exhausted scripts fall back to
// values that keep the simulation on its most deterministic path: no
// probabilistic event fires and every choice takes the first option.
type stubRNG struct {
	floats  []float32
	ints    []int
	uint16s []uint16
	bytes   []uint8
	ratios  []bool
}

func (r *stubRNG) Float32() float32 {
	if len(r.floats) == 0 {
		return 1
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *stubRNG) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *stubRNG) Uint16N(n uint16) uint16 {
	if len(r.uint16s) == 0 {
		return 0
	}
	v := r.uint16s[0]
	r.uint16s = r.uint16s[1:]
	if n > 0 && v >= n {
		v = n - 1
	}
	return v
}

func (r *stubRNG) Uint8() uint8 {
	if len(r.bytes) == 0 {
		return 0
	}
	v := r.bytes[0]
	r.bytes = r.bytes[1:]
	return v
}

func (r *stubRNG) Ratio(num, den uint32) bool {
	if len(r.ratios) == 0 {
		return false
	}
	v := r.ratios[0]
	r.ratios = r.ratios[1:]
	return v
}

func testParams() *Params {
	p := DefaultConfig().Params
	return &p
}

func newTestBranch(pos core.Pos, mode BranchMode, lifeTime uint16) *Branch {
	return &Branch{
		pos:      pos,
		mode:     mode,
		fields:   []core.Pos{pos},
		lifeTime: lifeTime,
		color:    core.HSLA{H: 0, S: 255, L: 140, A: 255},
	}
}

// With all randomness pinned to "first free neighbor" a lone city
// branch snakes through the whole board and then dies with no free
// cell left anywhere in its history.
func TestBranchFillsBoardThenDies(t *testing.T) {
	g := core.NewBitGrid(4, 4)
	p := testParams()
	p.PropCityToLand = 0
	rng := &stubRNG{}

	b := newTestBranch(core.Pos{X: 0, Y: 0}, ModeCity, 1000)
	g.Set(0, 0, true)

	wantPath := []core.Pos{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3},
		{X: 2, Y: 3}, {X: 1, Y: 3}, {X: 0, Y: 3},
		{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	for i, want := range wantPath {
		_, to, _, ok := b.step(g, p, rng)
		if !ok {
			t.Fatalf("step %d: branch died early", i)
		}
		if to != want {
			t.Fatalf("step %d: moved to %v, want %v", i, to, want)
		}
		g.Set(int(to.X), int(to.Y), true)
	}

	occupied := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v, _ := g.Get(x, y); v {
				occupied++
			}
		}
	}
	if occupied != 16 {
		t.Fatalf("occupied = %d, want the full board", occupied)
	}

	if _, _, _, ok := b.step(g, p, rng); ok {
		t.Fatal("a boxed-in branch with no usable history must die")
	}
}

func TestBranchDiesAtLifetime(t *testing.T) {
	g := core.NewBitGrid(8, 8)
	b := newTestBranch(core.Pos{X: 4, Y: 4}, ModeCity, 2)
	g.Set(4, 4, true)
	b.age = 2

	if _, _, _, ok := b.step(g, testParams(), &stubRNG{}); ok {
		t.Fatal("a branch at its lifetime must die before moving")
	}
}

// A boxed-in tip jumps back through the visit history, but only as far
// as the backtrack cap allows.
func TestBranchBacktrackWindow(t *testing.T) {
	setup := func() (*core.BitGrid, *Branch) {
		g := core.NewBitGrid(3, 2)
		g.Fill(true)
		g.Set(0, 1, false)
		b := newTestBranch(core.Pos{X: 0, Y: 0}, ModeCity, 100)
		b.fields = []core.Pos{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
		b.pos = core.Pos{X: 2, Y: 0}
		return g, b
	}

	p := testParams()
	p.PropCityToLand = 0

	p.MaxStepsBack = 2
	g, b := setup()
	if _, _, _, ok := b.step(g, p, &stubRNG{}); ok {
		t.Fatal("the open cell is 3 steps back; a cap of 2 must kill the branch")
	}

	p.MaxStepsBack = 3
	g, b = setup()
	from, to, tip, ok := b.step(g, p, &stubRNG{})
	if !ok {
		t.Fatal("a cap of 3 reaches the open cell")
	}
	if from != (core.Pos{X: 0, Y: 0}) {
		t.Fatalf("from = %v, want the backtracked position (0,0)", from)
	}
	if to != (core.Pos{X: 0, Y: 1}) {
		t.Fatalf("to = %v, want (0,1)", to)
	}
	if tip != (core.Pos{X: 2, Y: 0}) {
		t.Fatalf("tip = %v, want the pre-move history tail (2,0)", tip)
	}
}

func TestTransitionCityToLand(t *testing.T) {
	g := core.NewBitGrid(4, 4)
	g.Set(1, 1, true)
	p := testParams()
	rng := &stubRNG{floats: []float32{0}} // fires city-to-land

	b := newTestBranch(core.Pos{X: 1, Y: 1}, ModeCity, 100)
	_, to, _, ok := b.step(g, p, rng)
	if !ok {
		t.Fatal("step failed")
	}
	if b.mode != ModeLand {
		t.Fatalf("mode = %v, want land", b.mode)
	}
	if b.expandDir != (core.Pos{X: 1, Y: 0}) {
		t.Fatalf("expandDir = %v, want east", b.expandDir)
	}
	// The fresh direction points at the free neighbor the branch then
	// takes.
	if to != (core.Pos{X: 2, Y: 1}) {
		t.Fatalf("to = %v, want (2,1)", to)
	}
}

func TestTransitionLandToCityRerollsAge(t *testing.T) {
	g := core.NewBitGrid(8, 8)
	g.Set(4, 4, true)
	p := testParams()
	rng := &stubRNG{floats: []float32{0}, uint16s: []uint16{7}}

	b := newTestBranch(core.Pos{X: 4, Y: 4}, ModeLand, 100)
	b.age = 50
	b.expandDir = core.Pos{X: 1, Y: 0}

	if _, _, _, ok := b.step(g, p, rng); !ok {
		t.Fatal("step failed")
	}
	if b.mode != ModeCity {
		t.Fatalf("mode = %v, want city", b.mode)
	}
	// Re-rolled to 7, then the committed move added one.
	if b.age != 8 {
		t.Fatalf("age = %d, want 8", b.age)
	}
}

func TestLateLifeForcesCity(t *testing.T) {
	g := core.NewBitGrid(8, 8)
	g.Set(4, 4, true)
	p := testParams() // LifeTimeBranch 15

	b := newTestBranch(core.Pos{X: 4, Y: 4}, ModeLand, 10)
	b.expandDir = core.Pos{X: 1, Y: 0}

	if _, _, _, ok := b.step(g, p, &stubRNG{}); !ok {
		t.Fatal("step failed")
	}
	if b.mode != ModeCity {
		t.Fatal("a branch near the end of its life must fall back to city mode")
	}
}

func TestLandPrefersExpandDirection(t *testing.T) {
	g := core.NewBitGrid(4, 4)
	g.Set(1, 1, true)
	p := testParams()

	b := newTestBranch(core.Pos{X: 1, Y: 1}, ModeLand, 100)
	b.expandDir = core.Pos{X: 1, Y: 0}

	_, to, _, ok := b.step(g, p, &stubRNG{})
	if !ok {
		t.Fatal("step failed")
	}
	if to != (core.Pos{X: 2, Y: 1}) {
		t.Fatalf("to = %v, want the preferred cell (2,1)", to)
	}
	if b.expandDir != (core.Pos{X: 1, Y: 0}) {
		t.Fatal("taking the preferred cell must not change the direction")
	}
}

func TestLandDriftTakesRandomNeighbor(t *testing.T) {
	g := core.NewBitGrid(4, 4)
	g.Set(1, 1, true)
	p := testParams()
	rng := &stubRNG{ratios: []bool{true}, ints: []int{2}}

	b := newTestBranch(core.Pos{X: 1, Y: 1}, ModeLand, 100)
	b.expandDir = core.Pos{X: 1, Y: 0}

	_, to, _, ok := b.step(g, p, rng)
	if !ok {
		t.Fatal("step failed")
	}
	// Neighbor order is east, west, south, north; index 2 is south.
	if to != (core.Pos{X: 1, Y: 2}) {
		t.Fatalf("to = %v, want the drifted cell (1,2)", to)
	}
	if b.expandDir != (core.Pos{X: 1, Y: 0}) {
		t.Fatal("a drift move must not re-aim the direction")
	}
}

func TestLandBlockedPreferredReaims(t *testing.T) {
	g := core.NewBitGrid(4, 4)
	g.Set(1, 1, true)
	g.Set(2, 1, true) // blocks the preferred east cell
	p := testParams()
	rng := &stubRNG{ints: []int{1}}

	b := newTestBranch(core.Pos{X: 1, Y: 1}, ModeLand, 100)
	b.expandDir = core.Pos{X: 1, Y: 0}

	_, to, _, ok := b.step(g, p, rng)
	if !ok {
		t.Fatal("step failed")
	}
	// Remaining neighbors are west, south, north; index 1 is south.
	if to != (core.Pos{X: 1, Y: 2}) {
		t.Fatalf("to = %v, want (1,2)", to)
	}
	if b.expandDir != (core.Pos{X: 0, Y: 1}) {
		t.Fatalf("expandDir = %v, want re-aimed south", b.expandDir)
	}
}

func TestCanBranchOff(t *testing.T) {
	b := newTestBranch(core.Pos{X: 0, Y: 0}, ModeCity, 100)
	if b.canBranchOff() {
		t.Fatal("a branch that never moved has nothing to spawn from")
	}
	b.fields = append(b.fields, core.Pos{X: 1, Y: 0})
	if !b.canBranchOff() {
		t.Fatal("a branch with history must be able to spawn")
	}
}
