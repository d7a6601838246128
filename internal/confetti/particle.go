package confetti

import (
	"image/color"
	"math"
	"math/rand/v2"
)

const (
	// phaseStep advances the sway shared by all particles once per frame.
	phaseStep = 0.01

	// Horizontal slack before a particle counts as off-screen.
	edgeMargin = 20

	// Particles above this line are dropped instead of drawn once stopped.
	hiddenTop = -15
)

// Particle is one piece of confetti.
type Particle struct {
	X, Y               float64
	Diameter           float64
	Tilt               float64
	TiltAngle          float64
	TiltAngleIncrement float64
	Color              color.NRGBA
	Color2             color.NRGBA
}

// reset re-rolls every attribute, placing the particle somewhere in the
// band one viewport height above the top edge.
func (p *Particle) reset(rng *rand.Rand, palette []color.RGBA, alpha, w, h float64) {
	a := uint8(math.Round(alpha * 255))
	p.Color = withAlpha(palette[rng.IntN(len(palette))], a)
	p.Color2 = withAlpha(palette[rng.IntN(len(palette))], a)
	p.X = rng.Float64() * w
	p.Y = rng.Float64()*h - h
	p.Diameter = 10*rng.Float64() + 5
	p.Tilt = 10*rng.Float64() - 10
	p.TiltAngleIncrement = 0.07*rng.Float64() + 0.05
	p.TiltAngle = rng.Float64() * math.Pi
}

// advance moves the particle one frame along the shared sway.
func (p *Particle) advance(phase, speed float64) {
	p.TiltAngle += p.TiltAngleIncrement
	p.X += math.Sin(phase) - 0.5
	p.Y += 0.5 * (math.Cos(phase) + p.Diameter + speed)
	p.Tilt = 15 * math.Sin(p.TiltAngle)
}

func (p *Particle) offscreen(w, h float64) bool {
	return p.X > w+edgeMargin || p.X < -edgeMargin || p.Y > h
}

// segment is the stroke that represents the particle on a surface.
func (p *Particle) segment(gradient bool) Segment {
	x0 := p.X + p.Tilt
	half := p.Diameter / 2
	s := Segment{
		X0:       x0,
		Y0:       p.Y,
		X1:       x0 + half,
		Y1:       p.Y + p.Tilt + half,
		Width:    p.Diameter,
		From:     p.Color,
		To:       p.Color,
		Gradient: gradient,
	}
	if gradient {
		s.To = p.Color2
	}
	return s
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
