package core

import "citygrow/internal/render"

// Size describes a viewport in pixels.
type Size struct {
	W int
	H int
}

// Scene is the contract a frame-driven animation must implement. The
// host invokes Advance exactly once per delivered tick and submits the
// returned batches to the drawing backend itself; a scene never
// touches the backend, so its logical state cannot be left
// inconsistent by a failed draw call.
type Scene interface {
	Name() string

	// Reset reinitializes all simulation state from the given seed.
	Reset(seed int64)

	// Advance runs one atomic simulation tick and returns the drawing
	// work it produced, in submission order. dt is the host frame
	// delta in seconds.
	Advance(dt float64) []render.Batch

	// Resize is a hard cancellation: the scene discards everything and
	// reinitializes at the new dimensions.
	Resize(w, h int)
}

// ParametersProvider exposes a scene's tunables for inspection.
type ParametersProvider interface {
	Parameters() ParameterSnapshot
}

// Factory constructs a Scene for the given viewport using an optional
// flat key/value configuration.
type Factory func(w, h int, cfg map[string]string) Scene

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}
