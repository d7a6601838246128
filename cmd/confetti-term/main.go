// Command confetti-term rains confetti in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/confetti/internal/config"
	"github.com/iburimskiy/confetti/internal/confetti"
	"github.com/iburimskiy/confetti/internal/render"
	"github.com/iburimskiy/confetti/internal/sound"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "confetti-term:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "YAML config file")
		duration   = flag.Duration("duration", 0, "stop emitting after this long (0 = run until stopped)")
		minCount   = flag.Int("min", 0, "minimum particles to add")
		maxCount   = flag.Int("max", 0, "maximum particles to add")
		logFile    = flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	log := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		var level slog.Level
		if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
			level = slog.LevelInfo
		}
		log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	var player *sound.Player
	if cfg.Sound.Enabled {
		if player, err = sound.NewPlayer(cfg.Sound.Volume, log); err != nil {
			log.Warn("sound disabled", "err", err)
			player = nil
		} else {
			defer player.Close()
		}
	}

	term := render.NewTerminal(screen)
	anim := confetti.New(
		func() confetti.Surface { return term },
		confetti.WithSettings(settings),
		confetti.WithLogger(log.With("surface", cfg.SurfaceName)),
		confetti.WithFrameSync(false),
	)

	start := func(opts confetti.StartOptions) {
		anim.Start(opts)
		if player != nil {
			player.SetPaused(false)
			player.Pop()
		}
	}
	opts := cfg.StartOptions()
	if *duration > 0 || *minCount > 0 || *maxCount > 0 {
		opts = confetti.StartOptions{Duration: *duration, Min: *minCount, Max: *maxCount}
	}
	start(opts)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	go func() {
		defer cancel()
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
				switch ev.Rune() {
				case 'q':
					return
				case 's':
					anim.Stop()
				case 't':
					if anim.IsRunning() {
						anim.Stop()
					} else {
						start(confetti.StartOptions{})
					}
				case ' ':
					anim.TogglePause()
					if player != nil {
						player.SetPaused(anim.IsPaused())
					}
				case 'r':
					anim.Remove()
					screen.Show()
				case 'g':
					anim.SetGradient(!anim.Settings().Gradient)
				case 'b':
					start(confetti.StartOptions{Duration: config.BurstDuration, Min: config.BurstCount})
				}
				if ev.Key() == tcell.KeyEnter {
					start(cfg.StartOptions())
				}
			}
		}
	}()

	err = confetti.Loop(ctx, anim, term.Show)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
