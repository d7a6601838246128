package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/confetti/internal/confetti"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want color.NRGBA
	}{
		{"start", 0, red},
		{"end", 1, blue},
		{"below range", -2, red},
		{"above range", 3, blue},
		{"middle", 0.5, color.NRGBA{R: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(red, blue, tt.t); got != tt.want {
				t.Errorf("Blend(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestRasterStroke(t *testing.T) {
	r := NewRaster(64, 64, color.Black)
	defer r.Close()

	if w, h := r.Size(); w != 64 || h != 64 {
		t.Fatalf("Size() = %vx%v, want 64x64", w, h)
	}

	r.Clear()
	r.Stroke(confetti.Segment{X0: 10, Y0: 32, X1: 54, Y1: 32, Width: 8, From: red, To: red})
	if err := r.Err(); err != nil {
		t.Fatalf("Stroke() error = %v", err)
	}

	cr, cg, _, _ := r.Image().At(32, 32).RGBA()
	if cr>>8 < 200 || cg>>8 > 40 {
		t.Errorf("pixel on the stroke = %v, want red", r.Image().At(32, 32))
	}
	_, _, _, ca := r.Image().At(32, 5).RGBA()
	if ca>>8 != 255 {
		t.Errorf("background alpha = %d, want opaque", ca>>8)
	}
	if pr, _, _, _ := r.Image().At(32, 5).RGBA(); pr>>8 > 10 {
		t.Errorf("background pixel = %v, want black", r.Image().At(32, 5))
	}
}

func TestRasterGradientStroke(t *testing.T) {
	r := NewRaster(100, 20, nil)
	defer r.Close()

	r.Clear()
	r.Stroke(confetti.Segment{X0: 0, Y0: 10, X1: 100, Y1: 10, Width: 10, From: red, To: blue, Gradient: true})

	lr, _, lb, _ := r.Image().At(5, 10).RGBA()
	rr, _, rb, _ := r.Image().At(95, 10).RGBA()
	if lr <= lb {
		t.Errorf("left end r=%d b=%d, want red dominant", lr>>8, lb>>8)
	}
	if rb <= rr {
		t.Errorf("right end r=%d b=%d, want blue dominant", rr>>8, rb>>8)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(16, 8, nil)
	defer r.Close()
	r.Clear()

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 16x8", b)
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func cellBackground(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestTerminalSizeInPixels(t *testing.T) {
	term := NewTerminal(newSimScreen(t, 40, 10))
	w, h := term.Size()
	if w != 40*CellWidth || h != 10*CellHeight {
		t.Errorf("Size() = %vx%v", w, h)
	}
}

func TestTerminalStroke(t *testing.T) {
	screen := newSimScreen(t, 20, 5)
	term := NewTerminal(screen)

	term.Clear()
	// Cells (2,1) through (5,1).
	term.Stroke(confetti.Segment{X0: 2 * CellWidth, Y0: 20, X1: 5 * CellWidth, Y1: 20, Width: 10, From: red, To: blue, Gradient: true})
	term.Show()

	if got, want := cellBackground(screen, 2, 1), tcell.NewRGBColor(255, 0, 0); got != want {
		t.Errorf("first cell background = %v, want %v", got, want)
	}
	if got, want := cellBackground(screen, 5, 1), tcell.NewRGBColor(0, 0, 255); got != want {
		t.Errorf("last cell background = %v, want %v", got, want)
	}
	if got := cellBackground(screen, 10, 1); got != tcell.ColorDefault {
		t.Errorf("untouched cell background = %v, want default", got)
	}
}

func TestTerminalStrokeClipsOffscreen(t *testing.T) {
	screen := newSimScreen(t, 4, 4)
	term := NewTerminal(screen)
	term.Clear()
	term.Stroke(confetti.Segment{X0: -100, Y0: -100, X1: -50, Y1: -40, Width: 5, From: red, To: red})
	term.Stroke(confetti.Segment{X0: 500, Y0: 500, X1: 520, Y1: 510, Width: 5, From: red, To: red})
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			if bg := cellBackground(screen, x, y); bg != tcell.ColorDefault {
				t.Fatalf("cell (%d,%d) painted by an off-screen stroke", x, y)
			}
		}
	}
}
