package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/confetti/internal/config"
	"github.com/iburimskiy/confetti/internal/confetti"
	"github.com/iburimskiy/confetti/internal/game"
	"github.com/iburimskiy/confetti/internal/prefs"
	"github.com/iburimskiy/confetti/internal/sound"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		duration   = flag.Duration("duration", 0, "stop emitting after this long (0 = run until stopped)")
		minCount   = flag.Int("min", 0, "minimum particles to add")
		maxCount   = flag.Int("max", 0, "maximum particles to add")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	opts := game.Options{Logger: log}

	store, err := prefs.Open("confetti", prefs.Preferences{
		Gradient: cfg.Gradient,
		Speed:    cfg.Speed,
		Sound:    cfg.Sound.Enabled,
	}, log)
	if err != nil {
		log.Warn("preferences disabled", "err", err)
	}
	opts.Prefs = store

	if cfg.Sound.Enabled {
		// Non-fatal, the confetti runs without sound.
		player, err := sound.NewPlayer(cfg.Sound.Volume, log)
		if err != nil {
			log.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Sound = player
		}
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		log.Error("create game", "err", err)
		os.Exit(1)
	}

	start := cfg.StartOptions()
	if *duration > 0 || *minCount > 0 || *maxCount > 0 {
		start = confetti.StartOptions{Duration: *duration, Min: *minCount, Max: *maxCount}
	}
	g.Start(start)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
