package detector

import (
	"fmt"
	"image"

	"github.com/nvr-ai/go-ssd/labels"
)

// Detection is one accepted object: its label, confidence and pixel box.
// The box is top-left plus extent and is not clipped to the frame.
type Detection struct {
	// Label is the resolved class name, or the zero Label when unknown.
	Label labels.Label
	// Score is the model confidence.
	Score float32
	// X, Y is the top-left corner in pixels.
	X, Y int
	// Width, Height is the extent in pixels.
	Width, Height int
}

// Rect converts the detection to an image.Rectangle.
//
// Returns:
//   - An image.Rectangle with canonicalized coordinates.
//
// @example
// d := Detection{X: 20, Y: 20, Width: 50, Height: 100}
// fmt.Printf("Rectangle: %v\n", d.Rect()) // Rectangle: (20,20)-(70,120)
func (d Detection) Rect() image.Rectangle {
	return image.Rect(d.X, d.Y, d.X+d.Width, d.Y+d.Height)
}

func (d Detection) String() string {
	return fmt.Sprintf("Object %s (confidence %f): %dx%d at (%d, %d)",
		d.Label, d.Score, d.Width, d.Height, d.X, d.Y)
}

// Sink receives accepted detections. Add reports false when the sink could
// not take the detection.
type Sink interface {
	Add(d Detection) bool
}

// collector is the Sink behind Decode.
type collector struct {
	detections []Detection
}

func (c *collector) Add(d Detection) bool {
	c.detections = append(c.detections, d)
	return true
}
