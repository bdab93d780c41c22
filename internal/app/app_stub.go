//go:build !ebiten

package app

import "errors"

// Run reports that the GUI requires the ebiten build tag. Headless
// builds keep the rest of the module (and its tests) compiling without
// a display stack.
func Run(*Config) error {
	return errors.New("the GUI requires the 'ebiten' build tag; rebuild with -tags ebiten")
}
