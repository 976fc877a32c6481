// Package config - detection thresholds and the label table used by the decoder.
package config

import (
	"sync"
	"sync/atomic"

	"github.com/nvr-ai/go-ssd/labels"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// DefaultScoreThreshold is the minimum confidence a detection needs.
	DefaultScoreThreshold float32 = 0.3
	// DefaultSizeThreshold is the largest clamped x_max*y_max product kept.
	DefaultSizeThreshold float32 = 0.9
)

// ErrOutOfRange is returned when a threshold is NaN or outside [0, 1].
var ErrOutOfRange = errors.New("threshold must be within [0, 1]")

// Thresholds is one consistent view of the decoder configuration.
type Thresholds struct {
	// ScoreThreshold filters detections below this confidence.
	ScoreThreshold float32
	// SizeThreshold filters detections whose clamped x_max*y_max exceeds it.
	SizeThreshold float32
	// Labels resolves class indices. Nil when no label file is set.
	Labels *labels.Table
	// LabelFile is the path Labels was loaded from.
	LabelFile string
}

// DefaultThresholds returns the configuration a new element starts with.
//
// Returns:
//   - Thresholds: Score 0.3, size 0.9, no labels.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ScoreThreshold: DefaultScoreThreshold,
		SizeThreshold:  DefaultSizeThreshold,
	}
}

// Cell holds the current Thresholds. Readers take a snapshot with Load and
// never block; writers are serialised and publish a fresh snapshot.
type Cell struct {
	mu      sync.Mutex
	current atomic.Pointer[Thresholds]
	logger  *zap.Logger
	labels  *labels.Table
}

// Option configures a Cell.
type Option func(*Cell)

// WithLogger sets the logger used to report rejected label files.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cell) {
		c.logger = logger
	}
}

// WithLabels sets the label table the cell starts with, e.g. labels.COCO().
// A later SetLabelFile replaces it.
func WithLabels(table *labels.Table) Option {
	return func(c *Cell) {
		c.labels = table
	}
}

// NewCell returns a cell holding DefaultThresholds.
func NewCell(opts ...Option) *Cell {
	c := &Cell{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	initial := DefaultThresholds()
	initial.Labels = c.labels
	c.current.Store(&initial)
	return c
}

// Load returns the current snapshot.
func (c *Cell) Load() Thresholds {
	return *c.current.Load()
}

// SetScoreThreshold replaces the score threshold.
//
// Arguments:
//   - v: The new threshold in [0, 1].
//
// Returns:
//   - error: ErrOutOfRange, in which case the previous value is kept.
func (c *Cell) SetScoreThreshold(v float32) error {
	if err := validate("score-threshold", v); err != nil {
		return err
	}
	c.update(func(t *Thresholds) { t.ScoreThreshold = v })
	return nil
}

// SetSizeThreshold replaces the size threshold.
//
// Arguments:
//   - v: The new threshold in [0, 1].
//
// Returns:
//   - error: ErrOutOfRange, in which case the previous value is kept.
func (c *Cell) SetSizeThreshold(v float32) error {
	if err := validate("size-threshold", v); err != nil {
		return err
	}
	c.update(func(t *Thresholds) { t.SizeThreshold = v })
	return nil
}

// SetLabelFile loads path and, if that succeeds, swaps in the new table and
// path together. On failure the previous table and path are kept and a
// warning is logged.
//
// Arguments:
//   - path: Path to a label file.
//
// Returns:
//   - error: The labels.ErrUnreadable or labels.ErrEmpty load error.
func (c *Cell) SetLabelFile(path string) error {
	table, err := labels.Load(path)
	if err != nil {
		c.logger.Warn("label file rejected, keeping previous labels",
			zap.String("label_file", path), zap.Error(err))
		return err
	}

	c.update(func(t *Thresholds) {
		t.Labels = table
		t.LabelFile = path
	})
	return nil
}

func (c *Cell) update(fn func(*Thresholds)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := *c.current.Load()
	fn(&next)
	c.current.Store(&next)
}

func validate(name string, v float32) error {
	if v != v || v < 0 || v > 1 {
		return errors.Wrapf(ErrOutOfRange, "%s %v", name, v)
	}
	return nil
}
