package tensors

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Element is a primitive a tensor element can be read as.
type Element interface {
	float32 | uint32
}

// elementSize is the width in bytes of both supported element types.
const elementSize = 4

// Supported reports whether elements of type t can be read with At.
func Supported(t DataType) bool {
	return t == Float32 || t == UInt32
}

// CheckType returns ErrUnsupportedType unless the tensor declares one of the
// two readable element types.
func CheckType(t *Tensor) error {
	if !Supported(t.Type) {
		return errors.Wrapf(ErrUnsupportedType, "tensor %s is %s", t.ID, t.Type)
	}
	return nil
}

// At reads the element at index from a mapped tensor view.
//
// The four bytes at index*4 are interpreted in native byte order as the
// tensor's declared type and converted to T. A Float32 element read as
// uint32 is truncated toward zero and saturates; NaN and negatives read as 0.
//
// Arguments:
//   - t: The tensor the view was mapped from.
//   - v: The mapped view.
//   - index: The element index.
//
// Returns:
//   - T: The element.
//   - error: ErrUnsupportedType or ErrOutOfBounds.
func At[T Element](t *Tensor, v *View, index uint64) (T, error) {
	var out T

	if err := CheckType(t); err != nil {
		return out, err
	}

	data := v.Bytes()
	if index >= math.MaxUint64/elementSize || (index+1)*elementSize > uint64(len(data)) {
		return out, errors.Wrapf(ErrOutOfBounds, "tensor %s: element %d needs %d bytes, have %d",
			t.ID, index, (index+1)*elementSize, len(data))
	}

	raw := binary.NativeEndian.Uint32(data[index*elementSize:])

	switch p := any(&out).(type) {
	case *float32:
		if t.Type == Float32 {
			*p = math.Float32frombits(raw)
		} else {
			*p = float32(raw)
		}
	case *uint32:
		if t.Type == Float32 {
			*p = saturateUint32(math.Float32frombits(raw))
		} else {
			*p = raw
		}
	}

	return out, nil
}

// saturateUint32 converts f to uint32, truncating toward zero and clamping
// to the representable range.
func saturateUint32(f float32) uint32 {
	switch {
	case f != f || f <= 0:
		return 0
	case f >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(f)
	}
}
