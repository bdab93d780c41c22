// Package citygrow grows a branching, city-like line network on an
// occupancy grid, renders it incrementally, erases it in reverse and
// restarts, forever.
package citygrow

import (
	"log"

	"citygrow/internal/core"
	"citygrow/internal/render"
	pcore "citygrow/pkg/core"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

func init() {
	core.Register("citygrow", func(w, h int, opts map[string]string) core.Scene {
		cfg := FromMap(opts)
		cfg.Width = w
		cfg.Height = h
		return NewWithConfig(cfg)
	})
}

// Scene owns all simulation state for one grow/erase cycle loop: the
// occupancy grid, the active branches, the painter history and the
// single RNG stream every probabilistic decision draws from.
type Scene struct {
	cfg Config

	grid     *core.BitGrid
	branches []*Branch
	painter  *Painter

	reversing bool
	nextID    uint32
	rng       randSource

	ramp     *gween.Tween
	throttle *core.FixedStep
}

// New returns a scene for the given viewport using default tunables.
func New(w, h int) *Scene {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a scene configured from the provided options.
func NewWithConfig(cfg Config) *Scene {
	s := &Scene{cfg: cfg}
	cw, ch := cfg.cellCounts()
	s.grid = core.NewBitGrid(cw, ch)
	s.painter = newPainter(cfg.Scale, cfg.Params.CityRectAlpha)
	s.Reset(cfg.Seed)
	return s
}

// Name returns the scene identifier.
func (s *Scene) Name() string { return "citygrow" }

// Scale reports the cell scale in pixels.
func (s *Scene) Scale() float32 { return s.cfg.Scale }

// OccupancyGrid exposes the grid for debug visualization. Callers must
// treat it as read-only.
func (s *Scene) OccupancyGrid() *core.BitGrid { return s.grid }

// Parameters exposes the scene tunables.
func (s *Scene) Parameters() core.ParameterSnapshot { return s.cfg.Parameters() }

// Reset reinitializes all state from the given seed.
func (s *Scene) Reset(seed int64) {
	s.rng = pcore.NewRNG(seed)
	s.nextID = 0
	s.initialize()
}

// Resize discards everything and reinitializes at the new viewport
// dimensions. There is no graceful teardown of in-flight animation.
func (s *Scene) Resize(w, h int) {
	s.cfg.Width = w
	s.cfg.Height = h
	cw, ch := s.cfg.cellCounts()
	s.grid = core.NewBitGrid(cw, ch)
	s.initialize()
}

// Advance runs one simulation tick and returns this frame's drawing
// work: a normal-blend batch while growing, a min-blend erase batch
// while reversing, nil when the frame produced nothing.
func (s *Scene) Advance(dt float64) []render.Batch {
	if s.reversing {
		return s.advanceReverse(dt)
	}
	return s.advanceGrowth()
}

func (s *Scene) advanceGrowth() []render.Batch {
	events := s.branchingPass()
	events = append(events, s.steppingPass()...)

	// Non-main strokes are recorded and drawn first so main strokes
	// sit on top of them within the frame.
	var mainEvents []Event
	frame := make([]render.Op, 0, len(events))
	for _, ev := range events {
		if s.painter.isMain(ev.BranchID()) {
			mainEvents = append(mainEvents, ev)
			continue
		}
		frame = s.painter.record(frame, ev)
	}
	for _, ev := range mainEvents {
		frame = s.painter.record(frame, ev)
	}

	if len(s.branches) == 0 {
		s.startReverse()
	}
	if len(frame) == 0 {
		return nil
	}
	return []render.Batch{{Blend: render.BlendNormal, Ops: frame}}
}

func (s *Scene) startReverse() {
	s.reversing = true
	p := &s.cfg.Params
	s.ramp = nil
	if p.ReverseRampSeconds > 0 && p.ReverseRampFrom < p.ReverseActionsPerFrame {
		s.ramp = gween.New(float32(p.ReverseRampFrom), float32(p.ReverseActionsPerFrame),
			float32(p.ReverseRampSeconds), ease.InQuad)
	}
	s.throttle = nil
	if p.ReverseTPS > 0 {
		s.throttle = core.NewFixedStep(p.ReverseTPS)
	}
	log.Printf("citygrow: growth exhausted, erasing %d branch histories", len(s.painter.history))
}

func (s *Scene) advanceReverse(dt float64) []render.Batch {
	if s.throttle != nil && !s.throttle.Tick(dt) {
		return nil
	}

	budget := s.cfg.Params.ReverseActionsPerFrame
	if s.ramp != nil {
		v, finished := s.ramp.Update(float32(dt))
		budget = int(v + 0.5)
		if budget < 1 {
			budget = 1
		}
		if finished {
			s.ramp = nil
		}
	}

	ops, done := s.painter.reverseStep(budget)

	var batches []render.Batch
	if merged := render.Consolidate(ops); len(merged) > 0 {
		batches = append(batches, render.Batch{Blend: render.BlendMin, Ops: merged})
	}
	if done {
		log.Print("citygrow: reverse complete, restarting cycle")
		s.initialize()
	}
	return batches
}

// initialize clears the grid and painter and seeds a fresh set of
// start branches on distinct cells, all flagged main.
func (s *Scene) initialize() {
	s.grid.Fill(false)
	s.branches = s.branches[:0]
	s.reversing = false
	s.ramp = nil
	s.throttle = nil
	s.painter.reset()

	for i := 0; i < s.cfg.Params.StartBranches; i++ {
		pos, ok := s.freeSeedCell()
		if !ok {
			break
		}
		b := s.newSeedBranch(pos)
		s.grid.Set(int(pos.X), int(pos.Y), true)
		s.painter.markMain(b.id)
		s.branches = append(s.branches, b)
	}
}

// freeSeedCell draws random positions until it hits a free cell.
// Draws are bounded so a board smaller than the seed count cannot spin
// forever; after the bound it falls back to scanning for the first
// free cell.
func (s *Scene) freeSeedCell() (core.Pos, bool) {
	for i := 0; i < s.grid.W*s.grid.H; i++ {
		pos := s.grid.RandomPos(s.rng)
		if occupied, _ := s.grid.Get(int(pos.X), int(pos.Y)); !occupied {
			return pos, true
		}
	}
	for y := 0; y < s.grid.H; y++ {
		for x := 0; x < s.grid.W; x++ {
			if occupied, _ := s.grid.Get(x, y); !occupied {
				return core.Pos{X: int32(x), Y: int32(y)}, true
			}
		}
	}
	return core.Pos{}, false
}

func (s *Scene) allocID() uint32 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Scene) newSeedBranch(pos core.Pos) *Branch {
	p := &s.cfg.Params
	return &Branch{
		id:       s.allocID(),
		pos:      pos,
		mode:     ModeCity,
		fields:   []core.Pos{pos},
		lifeTime: p.LifeTime,
		color:    core.HSLA{H: s.rng.Uint8(), S: p.SaturationMain, L: p.LightnessDefault, A: 255},
	}
}

// branchingPass rolls a population-scaled branch-off chance for every
// active branch. Children spawned mid-pass join the active set
// immediately (they step this tick) but do not change the population
// divisor. Exactly one roll is consumed per branch visited, success or
// not, keeping the RNG stream order fixed.
func (s *Scene) branchingPass() []Event {
	var events []Event
	population := len(s.branches)
	for i := 0; i < len(s.branches); i++ {
		b := s.branches[i]
		chance := s.cfg.Params.ScaledBranchChance(b.mode, population)
		if s.rng.Float32() >= chance {
			continue
		}
		child, ev, ok := s.tryBranchOff(b)
		if !ok {
			continue
		}
		s.branches = append(s.branches, child)
		events = append(events, ev)
	}
	return events
}

// tryBranchOff spawns a child at a random free neighbor of the
// parent's historical tip. The child starts in city mode with the
// short child lifetime and an accent color; with a small probability
// it is promoted immediately: full lifetime, shifted hue, main flag.
func (s *Scene) tryBranchOff(parent *Branch) (*Branch, Event, bool) {
	if !parent.canBranchOff() {
		return nil, nil, false
	}
	searchPos := parent.fields[len(parent.fields)-1]
	neighbors := s.grid.FreeNeighbors(nil, searchPos)
	if len(neighbors) == 0 {
		return nil, nil, false
	}
	spawn := neighbors[s.rng.IntN(len(neighbors))]

	p := &s.cfg.Params
	child := &Branch{
		id:       s.allocID(),
		pos:      spawn,
		mode:     ModeCity,
		fields:   []core.Pos{spawn},
		lifeTime: p.LifeTimeBranch,
		color:    core.HSLA{H: parent.color.H, S: p.SaturationBranch, L: p.LightnessBranch, A: 255},
	}
	s.grid.Set(int(spawn.X), int(spawn.Y), true)

	// The event keeps the accent color even when the child is promoted
	// right after; only subsequent moves show the promoted palette.
	ev := BranchOffEvent{
		ChildID:    child.id,
		ParentPos:  searchPos,
		ChildPos:   spawn,
		ParentMode: parent.mode,
		ChildColor: child.color,
	}

	if s.rng.Float32() < p.PropBranchOffToMain {
		child.color = core.HSLA{H: child.color.H, S: p.SaturationMain, L: p.LightnessDefault, A: 255}.
			ShiftHue(p.ChangeHueNewMain)
		child.lifeTime = p.LifeTime
		s.painter.markMain(child.id)
	}
	return child, ev, true
}

// steppingPass advances every active branch once, committing moves to
// the grid and emitting Move events. Branches that die drop out of the
// active set; their painter history persists for the reverse phase.
func (s *Scene) steppingPass() []Event {
	events := make([]Event, 0, len(s.branches))
	kept := s.branches[:0]
	for _, b := range s.branches {
		from, to, tip, ok := b.step(s.grid, &s.cfg.Params, s.rng)
		if !ok {
			continue
		}
		s.grid.Set(int(to.X), int(to.Y), true)
		events = append(events, MoveEvent{
			ID:    b.id,
			From:  from,
			To:    to,
			Mode:  b.mode,
			Color: b.color,
			Tip:   tip,
		})
		kept = append(kept, b)
	}
	// Zero the tail so dead branches do not linger in the backing
	// array.
	for i := len(kept); i < len(s.branches); i++ {
		s.branches[i] = nil
	}
	s.branches = kept
	return events
}
