//go:build !sdl2

package render

import (
	"fmt"

	"github.com/cortland/dmgboy/dmgboy"
)

// SDL2 is the stand-in type used when the binary is built without the
// sdl2 tag. NewSDL2 always fails; use Terminal instead, or rebuild with
// `-tags sdl2` (and the SDL2 development libraries installed).
type SDL2 struct{}

// NewSDL2 returns an error, since this binary was built without SDL2
// support.
func NewSDL2(*dmgboy.Machine) (*SDL2, error) {
	return nil, fmt.Errorf("render: SDL2 backend not available, rebuild with -tags sdl2")
}

// Run never executes; NewSDL2 always errors first.
func (s *SDL2) Run() error { return fmt.Errorf("render: SDL2 backend not available") }
