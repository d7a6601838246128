package confetti

import "image/color"

// Surface is where an Animator draws. Size is read every frame, so a surface
// that follows its host window keeps the viewport in sync on resize.
type Surface interface {
	Size() (w, h float64)
	Clear()
	Stroke(s Segment)
}

// Segment is a stroked line. With Gradient set the color runs linearly
// from From at (X0, Y0) to To at (X1, Y1).
type Segment struct {
	X0, Y0   float64
	X1, Y1   float64
	Width    float64
	From, To color.NRGBA
	Gradient bool
}
