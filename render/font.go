package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// White is the default caption colour.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Font defines how captions are rendered.
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding around the caption text.
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
}

// DefaultFont returns default font settings.
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
	}
}

// boxColors paints successive detections.
var boxColors = []color.RGBA{
	{R: 255, G: 56, B: 56, A: 255},   // #FF3838
	{R: 255, G: 112, B: 31, A: 255},  // #FF701F
	{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
	{R: 72, G: 249, B: 10, A: 255},   // #48F90A
	{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
	{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
	{R: 100, G: 115, B: 255, A: 255}, // #6473FF
	{R: 132, G: 56, B: 255, A: 255},  // #8438FF
	{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
	{R: 146, G: 204, B: 23, A: 255},  // #92CC17
}
