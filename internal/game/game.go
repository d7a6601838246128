// Package game hosts the confetti animator in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/confetti/internal/config"
	"github.com/iburimskiy/confetti/internal/confetti"
	"github.com/iburimskiy/confetti/internal/prefs"
)

const (
	speedStep = 0.5
	minSpeed  = 0
	maxSpeed  = 20
)

var background = color.RGBA{R: 16, G: 18, B: 28, A: 255}

// Sound is what the game needs from the audio player.
type Sound interface {
	Pop()
	SetPaused(paused bool)
}

type Options struct {
	Sound  Sound        // nil plays nothing
	Prefs  *prefs.Store // nil persists nothing
	Logger *slog.Logger
	Clock  confetti.Clock
}

type Game struct {
	cfg     *config.Config
	anim    *confetti.Animator
	surface *screenSurface
	clock   confetti.Clock

	sound        Sound
	soundEnabled bool
	prefs        *prefs.Store
	log          *slog.Logger

	startedAt time.Time
	lastErr   error
}

func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("surface", cfg.SurfaceName)

	g := &Game{
		cfg:          cfg,
		surface:      newScreenSurface(cfg.Window.Width, cfg.Window.Height),
		clock:        opts.Clock,
		sound:        opts.Sound,
		soundEnabled: cfg.Sound.Enabled && opts.Sound != nil,
		prefs:        opts.Prefs,
		log:          log,
	}
	animOpts := []confetti.Option{
		confetti.WithSettings(settings),
		confetti.WithLogger(log),
	}
	if g.clock != nil {
		animOpts = append(animOpts, confetti.WithClock(g.clock))
	}
	g.anim = confetti.New(func() confetti.Surface { return g.surface }, animOpts...)

	if g.prefs != nil {
		p, err := g.prefs.Load()
		if err != nil {
			log.Warn("using default preferences", "err", err)
		}
		g.anim.SetGradient(p.Gradient)
		g.anim.SetSpeed(p.Speed)
		g.soundEnabled = g.soundEnabled && p.Sound
	}
	return g, nil
}

// Animator exposes the animator for callers that script the effect.
func (g *Game) Animator() *confetti.Animator { return g.anim }

func (g *Game) now() time.Time {
	if g.clock != nil {
		return g.clock.Now()
	}
	return time.Now()
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.Start(g.cfg.StartOptions())
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.Start(confetti.StartOptions{Duration: config.BurstDuration, Min: config.BurstCount})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.anim.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.anim.Remove()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.ToggleGradient()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.ToggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.ChangeSpeed(speedStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.ChangeSpeed(-speedStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		if err := g.openConfigDialog(); err != nil {
			g.lastErr = err
		}
	}

	if g.anim.Scheduled() {
		g.anim.Frame(g.now())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.surface.draw(screen)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

// Layout keeps the surface the size of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surface.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Start starts the animator and plays the pop.
func (g *Game) Start(opts confetti.StartOptions) {
	g.anim.Start(opts)
	g.startedAt = g.now()
	if g.soundEnabled {
		g.sound.SetPaused(false)
		g.sound.Pop()
	}
}

func (g *Game) Toggle() {
	if g.anim.IsRunning() {
		g.anim.Stop()
		return
	}
	g.Start(confetti.StartOptions{})
}

func (g *Game) TogglePause() {
	g.anim.TogglePause()
	if g.sound != nil {
		g.sound.SetPaused(g.anim.IsPaused())
	}
}

func (g *Game) ToggleGradient() {
	g.anim.SetGradient(!g.anim.Settings().Gradient)
	g.savePrefs()
}

func (g *Game) ToggleSound() {
	if g.sound == nil {
		return
	}
	g.soundEnabled = !g.soundEnabled
	g.savePrefs()
}

func (g *Game) ChangeSpeed(delta float64) {
	g.anim.SetSpeed(clamp(g.anim.Settings().Speed+delta, minSpeed, maxSpeed))
	g.savePrefs()
}

func (g *Game) savePrefs() {
	if g.prefs == nil {
		return
	}
	s := g.anim.Settings()
	err := g.prefs.Save(prefs.Preferences{
		Gradient: s.Gradient,
		Speed:    s.Speed,
		Sound:    g.soundEnabled,
	})
	if err != nil {
		g.log.Warn("preferences not saved", "err", err)
		g.lastErr = err
	}
}

func (g *Game) openConfigDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Confetti Config"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.LoadConfig(filename)
}

// LoadConfig swaps in the settings of a config file. Particles already on
// screen keep their colors until they are recycled.
func (g *Game) LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}
	g.anim.SetSettings(settings)
	g.cfg = cfg
	g.lastErr = nil
	g.log.Info("config loaded", "path", path)
	return nil
}

func (g *Game) status() string {
	s := g.anim.Settings()
	elapsed := "--:--"
	if !g.startedAt.IsZero() {
		elapsed = formatDuration(g.now().Sub(g.startedAt))
	}
	status := fmt.Sprintf("%s | particles: %d | speed: %.1f | gradient: %v | since start: %s",
		g.anim.State(), g.anim.Len(), s.Speed, s.Gradient, elapsed)
	if g.sound != nil {
		status += fmt.Sprintf(" | sound: %v", g.soundEnabled)
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}
