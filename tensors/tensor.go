// Package tensors - tagged inference output tensors and bounds-checked access to their data.
package tensors

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// DataType is the declared element type of a tensor.
type DataType int

const (
	// Unknown is a tensor whose element type was not declared.
	Unknown DataType = iota
	Int4
	Int8
	UInt8
	Int16
	UInt16
	Int32
	// UInt32 is a 32-bit unsigned integer tensor.
	UInt32
	Int64
	UInt64
	Float16
	// Float32 is a 32-bit IEEE-754 float tensor.
	Float32
	Float64
	BFloat16
)

// String returns a readable description of the DataType.
func (t DataType) String() string {
	switch t {
	case Int4:
		return "int4"
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case BFloat16:
		return "bfloat16"
	default:
		return "unknown"
	}
}

// Buffer is the backing storage of a tensor. Map gives read access to its
// bytes until the returned View is released.
type Buffer interface {
	Map() (*View, error)
}

// Memory is a Buffer over a plain byte slice.
type Memory []byte

// Map returns a view over the slice. Releasing it is a no-op.
func (m Memory) Map() (*View, error) {
	return NewView(m, nil), nil
}

// View is read access to the bytes of a mapped Buffer.
type View struct {
	data    []byte
	release func()
	once    sync.Once
}

// NewView wraps data in a View. release, if not nil, runs exactly once on
// the first call to Release.
//
// Arguments:
//   - data: The mapped bytes.
//   - release: Called to unmap the bytes.
//
// Returns:
//   - *View: The view.
func NewView(data []byte, release func()) *View {
	return &View{data: data, release: release}
}

// Bytes returns the mapped bytes, or nil once the view has been released.
func (v *View) Bytes() []byte {
	if v == nil {
		return nil
	}
	return v.data
}

// Len is the number of mapped bytes.
func (v *View) Len() int {
	return len(v.Bytes())
}

// Release unmaps the view. It is safe to call more than once.
func (v *View) Release() {
	if v == nil {
		return
	}
	v.once.Do(func() {
		v.data = nil
		if v.release != nil {
			v.release()
		}
	})
}

// Tensor is one output of an inference invocation: raw bytes tagged with a
// role identifier and a declared element type.
type Tensor struct {
	// ID is the role tag, e.g. "Gst.Model.ObjectDetector.Boxes".
	ID string
	// Type is the declared element type.
	Type DataType
	// Dims is the shape, outermost first. Informational only.
	Dims []int
	// Data holds the element bytes in native byte order.
	Data Buffer
}

// Map maps the tensor's data for reading.
//
// Returns:
//   - *View: The mapped bytes. The caller must Release it.
//   - error: ErrMapFailed if the tensor has no data or the buffer refused.
func (t *Tensor) Map() (*View, error) {
	if t == nil || t.Data == nil {
		return nil, errors.Wrap(ErrMapFailed, "tensor has no data")
	}

	view, err := t.Data.Map()
	if err != nil {
		return nil, errors.Wrapf(ErrMapFailed, "tensor %s: %v", t.ID, err)
	}
	if view == nil {
		return nil, errors.Wrapf(ErrMapFailed, "tensor %s: buffer returned no view", t.ID)
	}

	return view, nil
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor %s (%s, dims %v)", t.ID, t.Type, t.Dims)
}
