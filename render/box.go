// Package render - draws decoded detections onto gocv images.
package render

import (
	"fmt"
	"image"

	"github.com/nvr-ai/go-ssd/analytics"
	"github.com/nvr-ai/go-ssd/detector"
	"gocv.io/x/gocv"
)

// Options controls detection rendering.
type Options struct {
	Font          Font
	LineThickness int
	// HideCaptions draws boxes only.
	HideCaptions bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{Font: DefaultFont(), LineThickness: 2}
}

// Caption returns the text drawn above a detection, e.g. "person 0.87".
func Caption(d detector.Detection) string {
	if !d.Label.Valid() {
		return fmt.Sprintf("%.2f", d.Score)
	}
	return fmt.Sprintf("%s %.2f", d.Label, d.Score)
}

type boxLabel struct {
	rect    image.Rectangle
	clr     int
	text    string
	textPos image.Point
}

// Detections draws a box and caption for each detection onto img.
//
// Arguments:
//   - img: The frame the detections were decoded for.
//   - dets: The detections, in pixel space of img.
//   - opts: Rendering options.
func Detections(img *gocv.Mat, dets []detector.Detection, opts Options) {
	font := opts.Font
	labels := make([]boxLabel, 0, len(dets))

	for i, d := range dets {
		clr := i % len(boxColors)
		rect := d.Rect()
		gocv.Rectangle(img, rect, boxColors[clr], opts.LineThickness)

		if opts.HideCaptions {
			continue
		}

		text := Caption(d)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)
		left := rect.Min.X - opts.LineThickness/2

		labels = append(labels, boxLabel{
			rect: image.Rect(left,
				rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
				left+textSize.X+font.LeftPad+font.RightPad, rect.Min.Y),
			clr:     clr,
			text:    text,
			textPos: image.Pt(left+font.LeftPad, rect.Min.Y-font.BottomPad),
		})
	}

	// captions go on top so later boxes never cover them
	for _, l := range labels {
		gocv.Rectangle(img, l.rect, boxColors[l.clr], -1)
		gocv.PutTextWithParams(img, l.text, l.textPos,
			font.Face, font.Scale, font.Color, font.Thickness, font.LineType, false)
	}
}

// RelationMeta draws the object detections recorded in meta onto img.
func RelationMeta(img *gocv.Mat, meta *analytics.RelationMeta, opts Options) {
	ods := meta.ObjectDetections()
	dets := make([]detector.Detection, len(ods))
	for i, od := range ods {
		dets[i] = detector.Detection{
			Label:  od.Label,
			Score:  od.Score,
			X:      od.X,
			Y:      od.Y,
			Width:  od.Width,
			Height: od.Height,
		}
	}
	Detections(img, dets, opts)
}
