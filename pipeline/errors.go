package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotNegotiated is returned by Process before SetCaps succeeded.
	ErrNotNegotiated = errors.New("video info not negotiated")
	// ErrInvalidCaps is returned by SetCaps for non-positive geometry.
	ErrInvalidCaps = errors.New("failed to parse caps")
	// ErrUnknownProperty is returned for property names the element lacks.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrInvalidValue is returned when a property value has the wrong type.
	ErrInvalidValue = errors.New("invalid property value")
	// ErrProcessing matches every error Process returns from the decoder.
	ErrProcessing = errors.New("failed to process frame")
)

// ProcessingError is a decoder failure for one frame. errors.Is matches both
// ErrProcessing and the decoder's own error.
type ProcessingError struct {
	FrameID int64
	Err     error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("frame %d: %v: %v", e.FrameID, ErrProcessing, e.Err)
}

func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
