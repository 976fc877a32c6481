package tensors

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// FromFloat32s returns a Float32 tensor tagged id holding a copy of data.
func FromFloat32s(id string, dims []int, data []float32) *Tensor {
	buf, _ := binary.Append(make([]byte, 0, len(data)*elementSize), binary.NativeEndian, data)
	return &Tensor{ID: id, Type: Float32, Dims: dims, Data: Memory(buf)}
}

// FromUint32s returns a UInt32 tensor tagged id holding a copy of data.
func FromUint32s(id string, dims []int, data []uint32) *Tensor {
	buf, _ := binary.Append(make([]byte, 0, len(data)*elementSize), binary.NativeEndian, data)
	return &Tensor{ID: id, Type: UInt32, Dims: dims, Data: Memory(buf)}
}

// FromDense copies a gorgonia dense tensor into a tagged Tensor.
//
// Arguments:
//   - id: The role tag for the tensor.
//   - d: A float32 or uint32 dense tensor, or a scalar of either type.
//
// Returns:
//   - *Tensor: The tagged tensor.
//   - error: ErrUnsupportedType for any other dtype.
func FromDense(id string, d *tensor.Dense) (*Tensor, error) {
	if d == nil {
		return nil, errors.Wrapf(ErrMapFailed, "dense tensor %s is nil", id)
	}

	dims := append([]int(nil), d.Shape()...)

	switch data := d.Data().(type) {
	case []float32:
		return FromFloat32s(id, dims, data), nil
	case float32:
		return FromFloat32s(id, dims, []float32{data}), nil
	case []uint32:
		return FromUint32s(id, dims, data), nil
	case uint32:
		return FromUint32s(id, dims, []uint32{data}), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "dense tensor %s has dtype %v", id, d.Dtype())
	}
}
