package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/confetti/internal/confetti"
	"github.com/iburimskiy/confetti/internal/render"
)

// screenSurface records the strokes of the last animator frame and replays
// them in Draw. Frames are computed in Update, so a paused animator keeps
// showing its last frame for free.
type screenSurface struct {
	width, height int
	segments      []confetti.Segment

	vertices []ebiten.Vertex
	indices  []uint16
	white    *ebiten.Image
}

func newScreenSurface(w, h int) *screenSurface {
	return &screenSurface{width: w, height: h}
}

func (s *screenSurface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

func (s *screenSurface) Clear() { s.segments = s.segments[:0] }

func (s *screenSurface) Stroke(seg confetti.Segment) { s.segments = append(s.segments, seg) }

// resize follows the window; called from Layout.
func (s *screenSurface) resize(w, h int) {
	s.width, s.height = w, h
}

func (s *screenSurface) draw(dst *ebiten.Image) {
	for _, seg := range s.segments {
		if seg.Gradient {
			s.drawGradient(dst, seg)
			continue
		}
		vector.StrokeLine(dst,
			float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1),
			float32(seg.Width), seg.From, true)
	}
}

func (s *screenSurface) drawGradient(dst *ebiten.Image, seg confetti.Segment) {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	var path vector.Path
	path.MoveTo(float32(seg.X0), float32(seg.Y0))
	path.LineTo(float32(seg.X1), float32(seg.Y1))
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width: float32(seg.Width),
	})
	shadeVertices(s.vertices, seg)
	dst.DrawTriangles(s.vertices, s.indices, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// shadeVertices colors each vertex by its projection onto the segment, which
// is a linear gradient from seg.From to seg.To.
func shadeVertices(vertices []ebiten.Vertex, seg confetti.Segment) {
	dx, dy := seg.X1-seg.X0, seg.Y1-seg.Y0
	lenSq := dx*dx + dy*dy
	for i := range vertices {
		v := &vertices[i]
		t := 0.0
		if lenSq > 0 {
			t = ((float64(v.DstX)-seg.X0)*dx + (float64(v.DstY)-seg.Y0)*dy) / lenSq
		}
		c := render.Blend(seg.From, seg.To, t)
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(c.R) / 255
		v.ColorG = float32(c.G) / 255
		v.ColorB = float32(c.B) / 255
		v.ColorA = float32(c.A) / 255
	}
}
