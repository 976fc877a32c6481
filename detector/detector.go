// Package detector - decodes SSD output tensors into pixel-space object detections.
package detector

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/nvr-ai/go-ssd/config"
	"github.com/nvr-ai/go-ssd/labels"
	"github.com/nvr-ai/go-ssd/tensors"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrIncompleteGroup is returned when a group lacks boxes, scores or
// num-detections.
var ErrIncompleteGroup = errors.New("missing tensor data expected for SSD model")

// Decoder turns one frame's SSD tensors into detections. It keeps no state
// between calls and may be shared across goroutines.
type Decoder struct {
	logger *zap.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the decoder's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// New creates a decoder.
//
// Arguments:
//   - opts: Decoder options.
//
// Returns:
//   - *Decoder: The decoder. It logs nothing unless WithLogger is given.
func New(opts ...Option) *Decoder {
	d := &Decoder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode decodes group and returns the accepted detections.
//
// Arguments:
//   - width: Frame width in pixels.
//   - height: Frame height in pixels.
//   - group: The SSD tensor group, usually from tensors.Set.FindDetectorGroup.
//   - th: The threshold snapshot to filter with.
//
// Returns:
//   - []Detection: The accepted detections, possibly empty.
//   - error: A per-frame failure; no detections are returned with it.
func (d *Decoder) Decode(width, height uint32, group *tensors.Group, th config.Thresholds) ([]Detection, error) {
	var c collector
	if err := d.DecodeInto(width, height, group, th, &c); err != nil {
		return nil, err
	}
	return c.detections, nil
}

// DecodeInto decodes group and adds each accepted detection to sink.
//
// Mapping or type failures on the boxes, scores or num-detections tensors
// and a failure to read the detection count abort the call before anything
// reaches the sink. A failed read for a single detection only skips that
// detection. A missing or unreadable classes tensor leaves labels unset.
//
// Arguments:
//   - width: Frame width in pixels.
//   - height: Frame height in pixels.
//   - group: The SSD tensor group.
//   - th: The threshold snapshot to filter with.
//   - sink: Receives accepted detections.
//
// Returns:
//   - error: ErrIncompleteGroup, tensors.ErrUnsupportedType, tensors.ErrMapFailed or
//     tensors.ErrOutOfBounds for the count.
func (d *Decoder) DecodeInto(width, height uint32, group *tensors.Group, th config.Thresholds, sink Sink) error {
	roles := tensors.ResolveRoles(group)

	numDetections, okNum := roles.Get(tensors.RoleNumDetections)
	boxes, okBoxes := roles.Get(tensors.RoleBoxes)
	scores, okScores := roles.Get(tensors.RoleScores)
	if !okNum || !okBoxes || !okScores {
		d.logger.Warn("missing tensor data expected for SSD model")
		return ErrIncompleteGroup
	}

	for _, t := range []*tensors.Tensor{numDetections, boxes, scores} {
		if err := tensors.CheckType(t); err != nil {
			d.logger.Error("unsupported tensor type", zap.String("tensor", t.ID), zap.Error(err))
			return err
		}
	}

	numView, err := d.mapRequired(numDetections)
	if err != nil {
		return err
	}
	defer numView.Release()

	boxesView, err := d.mapRequired(boxes)
	if err != nil {
		return err
	}
	defer boxesView.Release()

	scoresView, err := d.mapRequired(scores)
	if err != nil {
		return err
	}
	defer scoresView.Release()

	classes, classesView := d.mapClasses(roles, th.Labels)
	defer classesView.Release()

	count, err := tensors.At[uint32](numDetections, numView, 0)
	if err != nil {
		d.logger.Error("failed to get the number of detections", zap.Error(err))
		return errors.Wrap(err, "failed to get the number of detections")
	}

	d.logger.Debug("model claims detections", zap.Uint32("num_detections", count))

	fw, fh := float32(width), float32(height)

	for i := uint64(0); i < uint64(count); i++ {
		score, err := tensors.At[float32](scores, scoresView, i)
		if err != nil {
			// Every later index is past the end as well.
			d.logger.Debug("scores tensor shorter than claimed detections",
				zap.Uint64("index", i), zap.Uint32("num_detections", count))
			break
		}

		if !(score >= th.ScoreThreshold) {
			continue
		}

		yMin, xMin, yMax, xMax, ok := readBox(boxes, boxesView, i)
		if !ok {
			d.logger.Debug("skipping detection with unreadable box", zap.Uint64("index", i))
			continue
		}

		wFrac, hFrac := clamp01(xMax), clamp01(yMax)
		if wFrac*hFrac > th.SizeThreshold {
			d.logger.Debug("object exceeds size threshold, skipping",
				zap.Float32("width_frac", wFrac), zap.Float32("height_frac", hFrac),
				zap.Float32("size_threshold", th.SizeThreshold))
			continue
		}

		var label labels.Label
		if classesView != nil {
			if id, err := tensors.At[uint32](classes, classesView, i); err == nil {
				label, _ = th.Labels.Resolve(id)
			}
		}

		x := toPixel(xMin * fw)
		y := toPixel(yMin * fh)
		det := Detection{
			Label:  label,
			Score:  score,
			X:      x,
			Y:      y,
			Width:  toPixel(float32(xMax*fw) - float32(x)),
			Height: toPixel(float32(yMax*fh) - float32(y)),
		}

		if !sink.Add(det) {
			d.logger.Warn("could not add detection to meta", zap.Stringer("detection", det))
			continue
		}

		d.logger.Debug("object detected",
			zap.String("label", det.Label.String()), zap.Float32("score", det.Score),
			zap.Int("x", det.X), zap.Int("y", det.Y),
			zap.Int("width", det.Width), zap.Int("height", det.Height))
	}

	return nil
}

func (d *Decoder) mapRequired(t *tensors.Tensor) (*tensors.View, error) {
	view, err := t.Map()
	if err != nil {
		d.logger.Error("failed to map tensor memory", zap.String("tensor", t.ID), zap.Error(err))
		return nil, err
	}
	return view, nil
}

// mapClasses maps the classes tensor when labels can be resolved at all.
// Any failure only disables labelling.
func (d *Decoder) mapClasses(roles tensors.Roles, table *labels.Table) (*tensors.Tensor, *tensors.View) {
	classes, ok := roles.Get(tensors.RoleClasses)
	if !ok || table.Len() == 0 {
		return nil, nil
	}

	if err := tensors.CheckType(classes); err != nil {
		d.logger.Debug("ignoring classes tensor", zap.Error(err))
		return nil, nil
	}

	view, err := classes.Map()
	if err != nil {
		d.logger.Debug("failed to map classes tensor", zap.Error(err))
		return nil, nil
	}

	return classes, view
}

// readBox reads detection i as y_min, x_min, y_max, x_max. ok is false when
// any coordinate is out of bounds or not finite.
func readBox(boxes *tensors.Tensor, view *tensors.View, i uint64) (yMin, xMin, yMax, xMax float32, ok bool) {
	var coords [4]float32
	for j := range coords {
		v, err := tensors.At[float32](boxes, view, i*4+uint64(j))
		if err != nil || math32.IsNaN(v) || math32.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
		coords[j] = v
	}
	return coords[0], coords[1], coords[2], coords[3], true
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(v, 1))
}

// toPixel truncates toward zero, saturating at the int32 range.
func toPixel(v float32) int {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int(v)
	}
}
