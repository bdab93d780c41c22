package core

// FixedStep accumulates frame deltas and reports when a fixed-rate
// tick is due. It never reads the wall clock, so seeded runs stay
// reproducible when it gates part of the simulation.
type FixedStep struct {
	step float64
	acc  float64
}

// NewFixedStep constructs a FixedStep controller targeting the given
// ticks per second.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{}
	f.SetTPS(tps)
	f.acc = f.step
	return f
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = 1.0 / float64(tps)
}

// Tick feeds one frame delta in seconds and reports whether a tick is
// due.
func (f *FixedStep) Tick(dt float64) bool {
	f.acc += dt
	if f.acc >= f.step {
		f.acc -= f.step
		return true
	}
	return false
}

// Reset drops accumulated time so the next Tick fires immediately.
func (f *FixedStep) Reset() {
	f.acc = f.step
}
