// Package render draws a running Machine to an output device. Terminal is
// the default backend: a tcell screen with one terminal cell per DMG pixel,
// each painted as a space over the pixel's shade as background color (no
// half-block glyphs, so the screen needs 160x144 cells).
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cortland/dmgboy/dmgboy"
	"github.com/cortland/dmgboy/dmgboy/joypad"
	"github.com/cortland/dmgboy/dmgboy/video"
)

const frameInterval = time.Second / 60

// keyBindings maps terminal key events to DMG buttons.
var keyBindings = map[tcell.Key]joypad.Button{
	tcell.KeyUp:    joypad.Up,
	tcell.KeyDown:  joypad.Down,
	tcell.KeyLeft:  joypad.Left,
	tcell.KeyRight: joypad.Right,
	tcell.KeyEnter: joypad.Start,
}

var runeBindings = map[rune]joypad.Button{
	'z': joypad.A,
	'x': joypad.B,
	'a': joypad.Select,
	's': joypad.Start,
}

// Terminal renders a Machine's framebuffer to a tcell screen and feeds
// keyboard input back into it as button presses.
type Terminal struct {
	screen  tcell.Screen
	machine *dmgboy.Machine
	running bool
}

// NewTerminal initializes a tcell screen for the given machine.
func NewTerminal(m *dmgboy.Machine) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: init terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: init terminal: %w", err)
	}
	return &Terminal{screen: screen, machine: m, running: true}, nil
}

// Run drives the machine at 60 frames/second, rendering after each frame
// and polling keyboard input between frames, until Escape or Ctrl-C is
// pressed.
func (t *Terminal) Run() error {
	defer t.screen.Fini()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	events := make(chan tcell.Event, 16)
	go t.screen.ChannelEvents(events, nil)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for t.running {
		select {
		case ev := <-events:
			t.handleEvent(ev)
		case <-ticker.C:
			t.machine.RunFrame()
			t.draw()
		}
	}
	return nil
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			t.running = false
			return
		}
		if button, ok := keyBindings[ev.Key()]; ok {
			t.machine.Press(button)
			return
		}
		if ev.Key() == tcell.KeyRune {
			if button, ok := runeBindings[ev.Rune()]; ok {
				t.machine.Press(button)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// shadeStyle renders each of the four DMG shades as a background color,
// since a solid block glyph reads more cleanly at terminal resolution
// than trying to distinguish foreground glyphs per shade.
var shadeStyle = [4]tcell.Style{
	tcell.StyleDefault.Background(tcell.ColorWhite),
	tcell.StyleDefault.Background(tcell.ColorSilver),
	tcell.StyleDefault.Background(tcell.ColorGray),
	tcell.StyleDefault.Background(tcell.ColorBlack),
}

func (t *Terminal) draw() {
	fb := t.machine.Framebuffer()

	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			offset := (y*video.Width + x) * 4
			style := styleForRGB(fb[offset], fb[offset+1], fb[offset+2])
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	t.screen.Show()
}

func styleForRGB(r, g, b byte) tcell.Style {
	switch {
	case r == 0xFF:
		return shadeStyle[video.ShadeWhite]
	case r == 0xCC:
		return shadeStyle[video.ShadeLightGrey]
	case r == 0x77:
		return shadeStyle[video.ShadeDarkGrey]
	default:
		return shadeStyle[video.ShadeBlack]
	}
}
