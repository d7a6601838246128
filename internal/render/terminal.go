package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/confetti/internal/confetti"
)

// Terminal cell size in surface pixels. Cells are about twice as tall as wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Terminal draws confetti as colored cells on a tcell screen. The surface is
// measured in pixels so particle kinematics match the other surfaces.
type Terminal struct {
	screen tcell.Screen
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Size() (float64, float64) {
	cols, rows := t.screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

func (t *Terminal) Clear() { t.screen.Clear() }

// Stroke plots every cell the segment passes through. Width is ignored: a
// confetti piece is never wider than two cells.
func (t *Terminal) Stroke(s confetti.Segment) {
	cols, rows := t.screen.Size()
	x0, y0 := s.X0/CellWidth, s.Y0/CellHeight
	x1, y1 := s.X1/CellWidth, s.Y1/CellHeight

	n := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		col := int(math.Floor(x0 + (x1-x0)*f))
		row := int(math.Floor(y0 + (y1-y0)*f))
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		c := s.From
		if s.Gradient {
			c = Blend(s.From, s.To, f)
		}
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		t.screen.SetContent(col, row, ' ', nil, style)
	}
}

func (t *Terminal) Show() { t.screen.Show() }
