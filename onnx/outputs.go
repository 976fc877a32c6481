package onnx

import (
	"encoding/binary"

	"github.com/nvr-ai/go-ssd/tensors"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// DefaultOutputIDs maps the output names of TensorFlow Object Detection API
// SSD exports to decoder role tags.
var DefaultOutputIDs = map[string]string{
	"detection_boxes":   tensors.BoxesID,
	"detection_scores":  tensors.ScoresID,
	"num_detections":    tensors.NumDetectionsID,
	"detection_classes": tensors.ClassesID,
}

// IDsForOutputNames returns the role tag of each output name, or the name
// itself when it has no role.
func IDsForOutputNames(names []string) []string {
	ids := make([]string, len(names))
	for i, name := range names {
		if id, ok := DefaultOutputIDs[name]; ok {
			ids[i] = id
		} else {
			ids[i] = name
		}
	}
	return ids
}

// FromOutput copies an ONNX Runtime tensor into a tagged Tensor.
//
// Tensors of element types the decoder cannot read keep their bytes and
// declared type, so the decoder reports them as unsupported.
//
// Arguments:
//   - id: The role tag for the tensor.
//   - v: The ONNX Runtime value, normally a session output.
//
// Returns:
//   - *tensors.Tensor: The tagged tensor.
//   - error: tensors.ErrUnsupportedType for non-tensor values.
func FromOutput(id string, v ort.Value) (*tensors.Tensor, error) {
	switch t := v.(type) {
	case *ort.Tensor[float32]:
		return fromTensor(id, tensors.Float32, t)
	case *ort.Tensor[uint32]:
		return fromTensor(id, tensors.UInt32, t)
	case *ort.Tensor[float64]:
		return fromTensor(id, tensors.Float64, t)
	case *ort.Tensor[int64]:
		return fromTensor(id, tensors.Int64, t)
	case *ort.Tensor[int32]:
		return fromTensor(id, tensors.Int32, t)
	case *ort.Tensor[uint8]:
		return fromTensor(id, tensors.UInt8, t)
	case *ort.Tensor[int8]:
		return fromTensor(id, tensors.Int8, t)
	default:
		return nil, errors.Wrapf(tensors.ErrUnsupportedType, "output %s is %T", id, v)
	}
}

func fromTensor[T ort.TensorData](id string, dt tensors.DataType, t *ort.Tensor[T]) (*tensors.Tensor, error) {
	if t == nil {
		return nil, errors.Wrapf(tensors.ErrMapFailed, "output %s is nil", id)
	}

	data := t.GetData()
	buf, err := binary.Append(nil, binary.NativeEndian, data)
	if err != nil {
		return nil, errors.Wrapf(tensors.ErrMapFailed, "output %s: %v", id, err)
	}

	shape := t.GetShape()
	dims := make([]int, len(shape))
	for i, d := range shape {
		dims[i] = int(d)
	}

	return &tensors.Tensor{ID: id, Type: dt, Dims: dims, Data: tensors.Memory(buf)}, nil
}

// GroupFromOutputs builds one tensor group from session outputs.
//
// Arguments:
//   - ids: The role tag of each output, see IDsForOutputNames.
//   - outputs: The session outputs, parallel to ids.
//
// Returns:
//   - *tensors.Group: The group, in output order.
//   - error: An error if the slices differ in length or an output is not a tensor.
func GroupFromOutputs(ids []string, outputs []ort.Value) (*tensors.Group, error) {
	if len(ids) != len(outputs) {
		return nil, errors.Errorf("%d ids for %d outputs", len(ids), len(outputs))
	}

	g := tensors.NewGroup()
	for i, v := range outputs {
		t, err := FromOutput(ids[i], v)
		if err != nil {
			return nil, err
		}
		g.Tensors = append(g.Tensors, t)
	}
	return g, nil
}
