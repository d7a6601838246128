package confetti

import (
	"image/color"
	"time"
)

// Settings are the tunables an Animator reads on every frame.
type Settings struct {
	MaxCount      int
	Speed         float64
	FrameInterval time.Duration
	Alpha         float64
	Gradient      bool
	Palette       []color.RGBA
}

// DefaultPalette is dodgerblue, olivedrab, gold, pink, slateblue, lightblue,
// violet, palegreen, steelblue, sandybrown, chocolate and crimson.
var DefaultPalette = []color.RGBA{
	{R: 30, G: 144, B: 255, A: 255},
	{R: 107, G: 142, B: 35, A: 255},
	{R: 255, G: 215, B: 0, A: 255},
	{R: 255, G: 192, B: 203, A: 255},
	{R: 106, G: 90, B: 205, A: 255},
	{R: 173, G: 216, B: 230, A: 255},
	{R: 238, G: 130, B: 238, A: 255},
	{R: 152, G: 251, B: 152, A: 255},
	{R: 70, G: 130, B: 180, A: 255},
	{R: 244, G: 164, B: 96, A: 255},
	{R: 210, G: 105, B: 30, A: 255},
	{R: 220, G: 20, B: 60, A: 255},
}

func DefaultSettings() Settings {
	return Settings{
		MaxCount:      150,
		Speed:         2,
		FrameInterval: 15 * time.Millisecond,
		Alpha:         1,
		Gradient:      false,
		Palette:       append([]color.RGBA(nil), DefaultPalette...),
	}
}

// normalized fills zero fields with defaults so a partially built Settings
// never stalls the loop or panics on an empty palette.
func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.MaxCount <= 0 {
		s.MaxCount = d.MaxCount
	}
	if s.FrameInterval <= 0 {
		s.FrameInterval = d.FrameInterval
	}
	if s.Alpha < 0 {
		s.Alpha = 0
	}
	if s.Alpha > 1 {
		s.Alpha = 1
	}
	if len(s.Palette) == 0 {
		s.Palette = d.Palette
	}
	return s
}
