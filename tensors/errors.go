package tensors

import "github.com/pkg/errors"

var (
	// ErrMapFailed is returned when a tensor's backing buffer cannot be mapped.
	ErrMapFailed = errors.New("failed to map tensor memory")
	// ErrUnsupportedType is returned for element types other than Float32 and UInt32.
	ErrUnsupportedType = errors.New("only float32 and uint32 tensors are understood")
	// ErrOutOfBounds is returned when an indexed read passes the end of the mapped bytes.
	ErrOutOfBounds = errors.New("tensor index out of bounds")
)
