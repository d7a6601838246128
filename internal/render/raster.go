package render

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/confetti/internal/confetti"
)

// Raster is an offscreen confetti surface backed by a gg context.
type Raster struct {
	dc         *gg.Context
	background color.Color
	err        error
}

// NewRaster returns a w×h raster. A nil background clears to transparent.
func NewRaster(w, h int, background color.Color) *Raster {
	return &Raster{
		dc:         gg.NewContext(w, h),
		background: background,
	}
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Clear() {
	if r.background == nil {
		r.dc.Clear()
		return
	}
	r.dc.ClearWithColor(gg.FromColor(r.background))
}

func (r *Raster) Stroke(s confetti.Segment) {
	r.dc.SetLineWidth(s.Width)
	if s.Gradient {
		r.dc.SetStrokeBrush(gg.NewLinearGradientBrush(s.X0, s.Y0, s.X1, s.Y1).
			AddColorStop(0, toRGBA(s.From)).
			AddColorStop(1, toRGBA(s.To)))
	} else {
		r.dc.SetStrokeBrush(gg.Solid(toRGBA(s.From)))
	}
	r.dc.DrawLine(s.X0, s.Y0, s.X1, s.Y1)
	if err := r.dc.Stroke(); err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first stroke error since the raster was created.
func (r *Raster) Err() error { return r.err }

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) Close() error { return r.dc.Close() }

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}
