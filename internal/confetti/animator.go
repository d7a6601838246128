// Package confetti animates falling confetti on a Surface.
//
// An Animator owns a flat slice of particles. The host calls Frame once per
// display frame (or from Loop when it has no display-synced callback) for as
// long as Scheduled reports true. Control methods may be called from any
// goroutine.
package confetti

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// StartOptions parameterise Start. Zero fields count as not given.
type StartOptions struct {
	// Duration schedules an automatic Stop.
	Duration time.Duration
	// Min and Max bound the number of particles to add.
	Min, Max int
}

// target returns the particle count Start should grow to.
func (o StartOptions) target(current, maxCount int, rng *rand.Rand) int {
	lo, hi := o.Min, o.Max
	switch {
	case lo > 0 && hi > 0:
		if lo == hi {
			return current + hi
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return current + lo + rng.IntN(hi-lo+1)
	case lo > 0:
		return current + lo
	case hi > 0:
		return current + hi
	default:
		return maxCount
	}
}

type Option func(*Animator)

func WithSettings(s Settings) Option {
	return func(a *Animator) { a.settings = s.normalized() }
}

func WithClock(c Clock) Option {
	return func(a *Animator) { a.clock = c }
}

func WithRand(r *rand.Rand) Option {
	return func(a *Animator) { a.rng = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithFrameSync tells the animator whether Frame is driven by a
// display-synced callback. Only synced hosts are throttled to the frame
// interval; timer-driven hosts already tick at that interval.
func WithFrameSync(synced bool) Option {
	return func(a *Animator) { a.synced = synced }
}

type Animator struct {
	mu sync.Mutex

	settings Settings
	clock    Clock
	rng      *rand.Rand
	log      *slog.Logger
	synced   bool

	newSurface func() Surface
	surface    Surface

	state     State
	resumeTo  State // state a Pause interrupted
	scheduled bool
	lastFrame time.Time
	phase     float64
	particles []Particle
}

// New returns a stopped animator. newSurface is called at most once, the
// first time a surface is needed.
func New(newSurface func() Surface, opts ...Option) *Animator {
	a := &Animator{
		settings:   DefaultSettings(),
		clock:      systemClock{},
		log:        slog.New(slog.DiscardHandler),
		synced:     true,
		newSurface: newSurface,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return a
}

// EnsureSurface creates the surface on first use and returns it.
func (a *Animator) EnsureSurface() Surface {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ensureSurface()
}

func (a *Animator) ensureSurface() Surface {
	if a.surface == nil {
		a.surface = a.newSurface()
		w, h := a.surface.Size()
		a.log.Debug("surface attached", "width", w, "height", h)
	}
	return a.surface
}

// Start tops the particle collection up to the target implied by opts and
// sets the animator running.
func (a *Animator) Start(opts StartOptions) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.start(opts)
}

func (a *Animator) start(opts StartOptions) {
	surface := a.ensureSurface()
	w, h := surface.Size()

	target := opts.target(len(a.particles), a.settings.MaxCount, a.rng)
	added := 0
	for len(a.particles) < target {
		var p Particle
		p.reset(a.rng, a.settings.Palette, a.settings.Alpha, w, h)
		a.particles = append(a.particles, p)
		added++
	}

	a.state = Running
	a.resumeTo = Stopped
	a.scheduled = true
	if opts.Duration > 0 {
		a.clock.AfterFunc(opts.Duration, a.Stop)
	}
	a.log.Info("confetti started", "added", added, "count", len(a.particles), "duration", opts.Duration)
}

// Stop ends emission. Particles in flight keep falling and are removed as
// they leave the surface.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stop()
}

func (a *Animator) stop() {
	switch a.state {
	case Running:
		a.state = Stopped
	case Paused:
		a.resumeTo = Stopped
	default:
		return
	}
	a.log.Info("confetti stopped", "count", len(a.particles))
}

func (a *Animator) Toggle() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.isRunning() {
		a.stop()
		return
	}
	a.start(StartOptions{})
}

// Pause freezes the animation; the last drawn frame stays on the surface.
func (a *Animator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pause()
}

func (a *Animator) pause() {
	if a.state == Paused {
		return
	}
	a.resumeTo = a.state
	a.state = Paused
}

// Resume continues a paused animation from where it was frozen.
func (a *Animator) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resume()
}

func (a *Animator) resume() {
	if a.state != Paused {
		return
	}
	a.state = a.resumeTo
	a.resumeTo = Stopped
	a.scheduled = true
}

func (a *Animator) TogglePause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Paused {
		a.resume()
		return
	}
	a.pause()
}

// Remove stops immediately and discards every particle.
func (a *Animator) Remove() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = Stopped
	a.resumeTo = Stopped
	a.particles = nil
	a.scheduled = false
	if a.surface != nil {
		a.surface.Clear()
	}
	a.log.Info("confetti removed")
}

func (a *Animator) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isRunning()
}

func (a *Animator) isRunning() bool {
	return a.state == Running || (a.state == Paused && a.resumeTo == Running)
}

func (a *Animator) IsPaused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == Paused
}

func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Scheduled reports whether the host should keep calling Frame.
func (a *Animator) Scheduled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scheduled
}

func (a *Animator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.particles)
}

// Particles returns a copy of the current particles in draw order.
func (a *Animator) Particles() []Particle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Particle(nil), a.particles...)
}

func (a *Animator) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// SetSettings replaces the settings. Existing particles keep their colors
// until they are recycled.
func (a *Animator) SetSettings(s Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings = s.normalized()
}

func (a *Animator) SetGradient(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings.Gradient = on
}

func (a *Animator) SetSpeed(speed float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings.Speed = speed
}

// Frame advances and redraws the animation. now is the host's frame time.
func (a *Animator) Frame(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.scheduled {
		return
	}
	if a.state == Paused {
		a.scheduled = false
		return
	}

	surface := a.ensureSurface()
	if len(a.particles) == 0 {
		surface.Clear()
		a.scheduled = false
		a.log.Debug("frame loop finished")
		return
	}

	interval := a.settings.FrameInterval
	elapsed := now.Sub(a.lastFrame)
	if a.synced && elapsed < interval {
		return
	}

	surface.Clear()
	w, h := surface.Size()
	a.step(w, h)
	a.draw(surface)

	if a.lastFrame.IsZero() {
		a.lastFrame = now
	} else {
		a.lastFrame = now.Add(-(elapsed % interval))
	}
	a.scheduled = len(a.particles) > 0 || a.state == Running
}

// step moves every particle one frame and recycles or drops the ones that
// left the viewport. Removal compacts the slice in place, keeping order.
func (a *Animator) step(w, h float64) {
	a.phase += phaseStep
	running := a.state == Running
	live := len(a.particles)
	kept := a.particles[:0]

	for i := range a.particles {
		p := a.particles[i]
		if !running && p.Y < hiddenTop {
			// Not yet visible: push below the bottom so it is dropped now.
			p.Y = h + 100
		} else {
			p.advance(a.phase, a.settings.Speed)
		}

		if p.offscreen(w, h) {
			if running && live <= a.settings.MaxCount {
				p.reset(a.rng, a.settings.Palette, a.settings.Alpha, w, h)
			} else {
				live--
				continue
			}
		}
		kept = append(kept, p)
	}
	a.particles = kept
}

func (a *Animator) draw(surface Surface) {
	for i := range a.particles {
		surface.Stroke(a.particles[i].segment(a.settings.Gradient))
	}
}
