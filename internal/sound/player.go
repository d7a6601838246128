package sound

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes pops into a single speaker chain: mixer -> ctrl -> volume.
// The mixer never drains, so the chain is started once.
type Player struct {
	mixer *beep.Mixer
	ctrl  *beep.Ctrl
	rng   *rand.Rand
	log   *slog.Logger
}

// NewPlayer initialises the speaker. volume is in log2 steps (0 = unity).
func NewPlayer(volume float64, log *slog.Logger) (*Player, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	p := &Player{
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   log,
	}
	p.ctrl = &beep.Ctrl{Streamer: p.mixer}
	speaker.Play(&effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   volume,
	})
	log.Debug("speaker ready", "rate", int(sampleRate), "volume", volume)
	return p, nil
}

// Pop queues one celebration pop.
func (p *Player) Pop() {
	speaker.Lock()
	p.mixer.Add(newPop(sampleRate, p.rng.Uint64()))
	speaker.Unlock()
}

// SetPaused holds or releases everything queued on the player.
func (p *Player) SetPaused(paused bool) {
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Close drops all queued sound.
func (p *Player) Close() {
	speaker.Clear()
}
