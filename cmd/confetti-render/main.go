// Command confetti-render writes confetti frames as PNG files without a
// window, stepping a simulated clock one frame interval at a time.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/iburimskiy/confetti/internal/config"
	"github.com/iburimskiy/confetti/internal/confetti"
	"github.com/iburimskiy/confetti/internal/render"
)

var background = color.RGBA{R: 16, G: 18, B: 28, A: 255}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		outDir     = flag.String("out", "", "output directory (default: the surface name)")
		frames     = flag.Int("frames", 240, "maximum number of frames to write")
		width      = flag.Int("width", 800, "frame width in pixels")
		height     = flag.Int("height", 600, "frame height in pixels")
		seed       = flag.Uint64("seed", 1, "random seed")
		duration   = flag.Duration("duration", 2*time.Second, "stop emitting after this much simulated time")
		minCount   = flag.Int("min", 0, "minimum particles to add")
		maxCount   = flag.Int("max", 0, "maximum particles to add")
		gradient   = flag.Bool("gradient", false, "draw two-color gradient strokes")
		logLevel   = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}
	settings, err := cfg.Settings()
	if err != nil {
		log.Error("config settings", "err", err)
		os.Exit(1)
	}
	if *gradient {
		settings.Gradient = true
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.SurfaceName
	}

	raster := render.NewRaster(*width, *height, background)
	defer raster.Close()

	clock := confetti.NewManualClock(time.Unix(0, 0))
	anim := confetti.New(
		func() confetti.Surface { return raster },
		confetti.WithSettings(settings),
		confetti.WithClock(clock),
		confetti.WithRand(rand.New(rand.NewPCG(*seed, *seed))),
		confetti.WithLogger(log.With("surface", cfg.SurfaceName)),
	)
	anim.Start(confetti.StartOptions{Duration: *duration, Min: *minCount, Max: *maxCount})

	n, err := renderFrames(anim, clock, raster, *frames, dir)
	if err != nil {
		log.Error("render", "err", err, "written", n)
		os.Exit(1)
	}
	log.Info("frames written", "count", n, "dir", dir)
}

// renderFrames steps the animation until it finishes or limit frames were
// written, saving each frame to dir/frame_NNNN.png.
func renderFrames(anim *confetti.Animator, clock *confetti.ManualClock, raster *render.Raster, limit int, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}
	interval := anim.Settings().FrameInterval

	written := 0
	for written < limit && anim.Scheduled() {
		clock.Advance(interval)
		anim.Frame(clock.Now())
		if err := raster.Err(); err != nil {
			return written, fmt.Errorf("frame %d: %w", written, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", written))
		if err := raster.SavePNG(path); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}
