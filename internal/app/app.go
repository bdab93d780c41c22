//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"citygrow/internal/core"
	"citygrow/internal/render"
	"citygrow/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core.Scene to the ebiten.Game interface. Update
// advances the simulation and queues the batches it produced; Draw
// applies queued batches to the persistent canvas and composites the
// canvas to the screen. Logical state always advances regardless of
// drawing outcomes.
type Game struct {
	scene   core.Scene
	overlay *ui.Overlay
	canvas  *render.Canvas
	pending []render.Batch

	paused     bool
	needsClear bool
	seed       int64
	tps        int
}

// New constructs a Game for the provided scene.
func New(scene core.Scene, tps int, seed int64) *Game {
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		scene:   scene,
		overlay: ui.NewOverlay(scene),
		seed:    seed,
		tps:     tps,
	}
}

// Reset reinitializes the scene with the provided seed and schedules a
// canvas clear, since the incremental surface still holds the previous
// run's pixels.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
	g.pending = g.pending[:0]
	g.needsClear = true
}

// Update handles input and advances the simulation by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()

	if g.paused {
		return nil
	}
	// The logical step is fixed at the configured TPS so seeded runs
	// do not depend on wall-clock jitter.
	g.pending = append(g.pending, g.scene.Advance(1/float64(g.tps))...)
	return nil
}

// Draw applies pending batches to the canvas and blits it. A size
// change is a hard reset: new canvas, reinitialized scene, queued
// batches dropped.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.canvas == nil {
		g.canvas = render.NewCanvas(w, h)
	} else if cw, ch := g.canvas.Size(); cw != w || ch != h {
		g.canvas = render.NewCanvas(w, h)
		g.scene.Resize(w, h)
		g.pending = g.pending[:0]
		g.needsClear = false
	}
	if g.needsClear {
		g.canvas.Image().Fill(color.Black)
		g.needsClear = false
	}

	if len(g.pending) > 0 {
		if err := g.canvas.Submit(g.pending); err != nil {
			// Render-only failure: log and move on, the simulation
			// state is already committed.
			log.Printf("render: %v", err)
		}
		g.pending = g.pending[:0]
	}

	screen.DrawImage(g.canvas.Image(), nil)
	g.overlay.Draw(screen)
}

// Layout makes the logical screen match the window pixel size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run boots the windowed host for the configured scene and blocks
// until the window closes.
func Run(cfg *Config) error {
	factory, ok := core.Scenes()[cfg.Scene]
	if !ok {
		return fmt.Errorf("unknown scene %q", cfg.Scene)
	}
	scene := factory(cfg.Width, cfg.Height, cfg.Options())
	scene.Reset(cfg.Seed)

	game := New(scene, cfg.TPS, cfg.Seed)

	ebiten.SetWindowTitle("citygrow: " + scene.Name())
	ebiten.SetTPS(game.tps)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	log.Printf("starting scene %q at %dx%d (seed %d)", scene.Name(), cfg.Width, cfg.Height, cfg.Seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
