package pipeline

import (
	"sync"

	"github.com/nvr-ai/go-ssd/analytics"
	"github.com/nvr-ai/go-ssd/config"
	"github.com/nvr-ai/go-ssd/detector"
	"github.com/nvr-ai/go-ssd/labels"
	"github.com/nvr-ai/go-ssd/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Element decodes the SSD tensors attached to each frame into analytics
// metadata. Process may run concurrently with property changes.
type Element struct {
	mu         sync.RWMutex
	info       VideoInfo
	negotiated bool

	cell     *config.Cell
	decoder  *detector.Decoder
	logger   *zap.Logger
	capacity int
	labels   *labels.Table
	stats    statsTracker
}

// Option configures an Element.
type Option func(*Element)

// WithLogger sets the element's logger. It is shared with the decoder and the
// configuration cell.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Element) {
		e.logger = logger
	}
}

// WithMetaCapacity sets the capacity of the relation metas Process creates.
func WithMetaCapacity(n int) Option {
	return func(e *Element) {
		e.capacity = n
	}
}

// WithLabels preloads a label table, used until a label file is set.
func WithLabels(table *labels.Table) Option {
	return func(e *Element) {
		e.labels = table
	}
}

// NewElement creates an element with default thresholds.
//
// Arguments:
//   - opts: Element options.
//
// Returns:
//   - *Element: The element. Process fails until SetCaps is called.
func NewElement(opts ...Option) *Element {
	e := &Element{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.New(false)
	}
	e.cell = config.NewCell(config.WithLogger(e.logger), config.WithLabels(e.labels))
	e.decoder = detector.New(detector.WithLogger(e.logger))
	return e
}

// SetCaps records the negotiated frame geometry.
//
// Arguments:
//   - info: The video info. Width and height must be positive.
//
// Returns:
//   - error: ErrInvalidCaps, in which case the previous geometry is kept.
func (e *Element) SetCaps(info VideoInfo) error {
	if info.Width <= 0 || info.Height <= 0 {
		e.logger.Error("failed to parse caps", zap.Int("width", info.Width), zap.Int("height", info.Height))
		return errors.Wrapf(ErrInvalidCaps, "%dx%d", info.Width, info.Height)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.info = info
	e.negotiated = true
	return nil
}

// VideoInfo returns the negotiated geometry and whether caps were set.
func (e *Element) VideoInfo() (VideoInfo, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.info, e.negotiated
}

// Thresholds returns the current configuration snapshot.
func (e *Element) Thresholds() config.Thresholds {
	return e.cell.Load()
}

// Stats returns the element's processing statistics.
func (e *Element) Stats() Stats {
	return e.stats.snapshot()
}

// Process decodes the first qualifying tensor group of frame into
// frame.Analytics.
//
// Arguments:
//   - frame: The frame to process.
//
// Returns:
//   - error: ErrNotNegotiated before SetCaps, or a *ProcessingError wrapping
//     the decoder failure. A frame without a qualifying group is not an error.
func (e *Element) Process(frame *Frame) error {
	info, ok := e.VideoInfo()
	if !ok {
		return ErrNotNegotiated
	}

	group, _, found := frame.Tensors.FindDetectorGroup()
	if !found {
		e.logger.Warn("missing tensor meta", zap.Int64("frame", frame.ID))
		e.stats.skipped()
		return nil
	}

	if frame.Analytics == nil {
		frame.Analytics = analytics.NewRelationMeta(e.capacity)
	}

	before := frame.Analytics.Len()
	done := e.stats.startDecode()
	err := e.decoder.DecodeInto(uint32(info.Width), uint32(info.Height), group, e.cell.Load(), frame.Analytics)
	done(frame.Analytics.Len()-before, err != nil)
	if err != nil {
		e.logger.Error("failed to extract bounding boxes", zap.Int64("frame", frame.ID), zap.Error(err))
		return &ProcessingError{FrameID: frame.ID, Err: err}
	}

	return nil
}
