//go:build sdl2

package render

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/cortland/dmgboy/dmgboy"
	"github.com/cortland/dmgboy/dmgboy/joypad"
	"github.com/cortland/dmgboy/dmgboy/video"
)

const pixelScale = 4

// sdlKeyBindings maps SDL scancodes to DMG buttons.
var sdlKeyBindings = map[sdl.Scancode]joypad.Button{
	sdl.SCANCODE_UP:     joypad.Up,
	sdl.SCANCODE_DOWN:   joypad.Down,
	sdl.SCANCODE_LEFT:   joypad.Left,
	sdl.SCANCODE_RIGHT:  joypad.Right,
	sdl.SCANCODE_RETURN: joypad.Start,
	sdl.SCANCODE_RSHIFT: joypad.Select,
	sdl.SCANCODE_Z:      joypad.A,
	sdl.SCANCODE_X:      joypad.B,
}

// SDL2 renders a Machine through an SDL2 window, scaled up by pixelScale.
// Building it requires the SDL2 development libraries and the "sdl2" build
// tag; without the tag, render.NewSDL2 (the !sdl2 stub) is compiled instead.
type SDL2 struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	machine  *dmgboy.Machine
	running  bool
}

// NewSDL2 creates an SDL2-backed renderer for m.
func NewSDL2(m *dmgboy.Machine) (*SDL2, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("render: sdl2 init: %w", err)
	}

	window, err := sdl.CreateWindow("dmgboy",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.Width*pixelScale, video.Height*pixelScale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("render: sdl2 create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, fmt.Errorf("render: sdl2 create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		return nil, fmt.Errorf("render: sdl2 create texture: %w", err)
	}

	return &SDL2{window: window, renderer: renderer, texture: texture, machine: m, running: true}, nil
}

// Run drives the machine one frame per display refresh, polling SDL2
// events for button presses and the window close request.
func (s *SDL2) Run() error {
	defer s.Close()

	for s.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			s.handleEvent(event)
		}

		s.machine.RunFrame()
		if err := s.draw(); err != nil {
			return err
		}
	}
	return nil
}

func (s *SDL2) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.running = false
	case *sdl.KeyboardEvent:
		button, ok := sdlKeyBindings[e.Keysym.Scancode]
		if !ok {
			return
		}
		if e.Type == sdl.KEYDOWN {
			s.machine.Press(button)
		} else if e.Type == sdl.KEYUP {
			s.machine.Release(button)
		}
	}
}

func (s *SDL2) draw() error {
	fb := s.machine.Framebuffer()
	pixels, pitch, err := s.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("render: sdl2 lock texture: %w", err)
	}

	for y := 0; y < video.Height; y++ {
		srcRow := fb[y*video.Width*4 : (y+1)*video.Width*4]
		dstRow := pixels[y*pitch : y*pitch+video.Width*4]
		copy(dstRow, srcRow)
	}
	s.texture.Unlock()

	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

// Close releases SDL2 resources.
func (s *SDL2) Close() {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
