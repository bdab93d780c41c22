//go:build ebiten

package ui

import (
	"citygrow/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type occupancyProvider interface {
	OccupancyGrid() *core.BitGrid
	Scale() float32
}

// Overlay draws optional debugging visuals on top of the scene.
type Overlay struct {
	scene core.Scene

	showOccupancy bool
	maskImg       *ebiten.Image
	maskBuf       []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scene core.Scene) *Overlay {
	return &Overlay{scene: scene}
}

// Update toggles the overlay views.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showOccupancy = !o.showOccupancy
	}
}

// Draw renders the enabled overlays.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showOccupancy {
		return
	}
	prov, ok := o.scene.(occupancyProvider)
	if !ok {
		return
	}

	grid := prov.OccupancyGrid()
	w, h := grid.W, grid.H
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != w || o.maskImg.Bounds().Dy() != h {
		o.maskImg = ebiten.NewImage(w, h)
		o.maskBuf = make([]byte, w*h*4)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := (y*w + x) * 4
			var v byte
			if occupied, _ := grid.Get(x, y); occupied {
				v = 0x80
			}
			o.maskBuf[base+0] = v
			o.maskBuf[base+1] = v
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = v
		}
	}
	o.maskImg.WritePixels(o.maskBuf)

	op := &ebiten.DrawImageOptions{}
	spacing := float64(prov.Scale()) * 2
	op.GeoM.Scale(spacing, spacing)
	screen.DrawImage(o.maskImg, op)
}
