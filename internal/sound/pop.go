// Package sound plays the celebration pop that accompanies a confetti start.
package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
)

const (
	popLength    = 180 * time.Millisecond
	popStartFreq = 1400.0
	popEndFreq   = 300.0
	popDecay     = 7.0
	noiseMix     = 0.35
)

// pop is a short burst: white noise for the crack and a falling sine for
// the body, both under an exponential decay.
type pop struct {
	rate  float64
	pos   int
	n     int
	phase float64
	rng   *rand.Rand
}

func newPop(rate beep.SampleRate, seed uint64) *pop {
	return &pop{
		rate: float64(rate),
		n:    rate.N(popLength),
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (p *pop) Stream(samples [][2]float64) (int, bool) {
	if p.pos >= p.n {
		return 0, false
	}
	i := 0
	for ; i < len(samples) && p.pos < p.n; i++ {
		v := p.sample()
		samples[i][0] = v
		samples[i][1] = v
		p.pos++
	}
	return i, true
}

func (p *pop) Err() error { return nil }

func (p *pop) sample() float64 {
	t := float64(p.pos) / float64(p.n)
	freq := popStartFreq * math.Pow(popEndFreq/popStartFreq, t)
	p.phase += 2 * math.Pi * freq / p.rate
	env := math.Exp(-popDecay * t)
	noise := p.rng.Float64()*2 - 1
	return env * ((1-noiseMix)*math.Sin(p.phase) + noiseMix*noise)
}
