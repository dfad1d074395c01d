// Command dmgboy runs a DMG ROM, either in a terminal window or
// headlessly for a fixed number of frames.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/cortland/dmgboy/dmgboy"
	"github.com/cortland/dmgboy/dmgboy/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgboy"
	app.Usage = "dmgboy [options] <ROM file>"
	app.Description = "A DMG (Game Boy) emulator core with a terminal frontend"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to a DMG boot ROM image (optional; skipped by default)",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a terminal display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "Use the SDL2 window backend instead of the terminal (requires a build with -tags sdl2)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgboy: fatal error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	m := dmgboy.New()
	if bootPath := c.String("boot-rom"); bootPath != "" {
		boot, err := os.ReadFile(bootPath)
		if err != nil {
			return fmt.Errorf("reading boot ROM: %w", err)
		}
		m.LoadBootROM(boot)
	}
	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		for i := 0; i < frames; i++ {
			m.RunFrame()
		}
		slog.Info("dmgboy: headless run complete", "frames", frames)
		return nil
	}

	if c.Bool("sdl2") {
		backend, err := render.NewSDL2(m)
		if err != nil {
			return err
		}
		return backend.Run()
	}

	term, err := render.NewTerminal(m)
	if err != nil {
		return err
	}
	return term.Run()
}
