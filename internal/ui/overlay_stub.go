//go:build !ebiten

package ui

import "citygrow/internal/core"

// Overlay is a no-op when the GUI is not compiled in.
type Overlay struct{}

func NewOverlay(core.Scene) *Overlay { return &Overlay{} }

func (o *Overlay) Update() {}
