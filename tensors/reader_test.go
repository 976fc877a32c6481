package tensors

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapped(t *testing.T, tn *Tensor) *View {
	t.Helper()
	v, err := tn.Map()
	require.NoError(t, err)
	t.Cleanup(v.Release)
	return v
}

func TestAtFloat32(t *testing.T) {
	tn := FromFloat32s(ScoresID, []int{3}, []float32{0.25, 0.5, 0.75})
	v := mapped(t, tn)

	for i, want := range []float32{0.25, 0.5, 0.75} {
		got, err := At[float32](tn, v, uint64(i))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAtUint32(t *testing.T) {
	tn := FromUint32s(ClassesID, []int{2}, []uint32{7, math.MaxUint32})
	v := mapped(t, tn)

	got, err := At[uint32](tn, v, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got)

	got, err = At[uint32](tn, v, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), got)
}

// TestAtNativeByteOrder checks the bytes are interpreted in platform order.
func TestAtNativeByteOrder(t *testing.T) {
	buf := binary.NativeEndian.AppendUint32(nil, 0xdeadbeef)
	tn := &Tensor{ID: NumDetectionsID, Type: UInt32, Data: Memory(buf)}

	got, err := At[uint32](tn, mapped(t, tn), 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), got)
}

func TestAtOutOfBounds(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		index uint64
	}{
		{"empty", nil, 0},
		{"one past end", make([]byte, 8), 2},
		{"partial element", make([]byte, 7), 1},
		{"overflowing index", make([]byte, 8), math.MaxUint64 / 2},
		{"max index", make([]byte, 8), math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := &Tensor{ID: ScoresID, Type: Float32, Data: Memory(tt.data)}
			_, err := At[float32](tn, mapped(t, tn), tt.index)
			assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)
		})
	}
}

func TestAtUnsupportedType(t *testing.T) {
	for _, typ := range []DataType{Unknown, Int8, UInt8, Int32, Int64, Float16, Float64} {
		t.Run(typ.String(), func(t *testing.T) {
			tn := &Tensor{ID: BoxesID, Type: typ, Data: Memory(make([]byte, 64))}
			_, err := At[float32](tn, mapped(t, tn), 0)
			assert.True(t, errors.Is(err, ErrUnsupportedType), "got %v", err)
			_, err = At[uint32](tn, mapped(t, tn), 0)
			assert.True(t, errors.Is(err, ErrUnsupportedType), "got %v", err)
		})
	}
}

func TestAtCrossKind(t *testing.T) {
	floats := FromFloat32s(NumDetectionsID, nil, []float32{3.9, -2, float32(math.NaN()), 1e12})
	fv := mapped(t, floats)

	for i, want := range []uint32{3, 0, 0, math.MaxUint32} {
		got, err := At[uint32](floats, fv, uint64(i))
		require.NoError(t, err)
		assert.Equal(t, want, got, "index %d", i)
	}

	ints := FromUint32s(ScoresID, nil, []uint32{42})
	got, err := At[float32](ints, mapped(t, ints), 0)
	require.NoError(t, err)
	assert.Equal(t, float32(42), got)
}

func TestAtReleasedView(t *testing.T) {
	tn := FromFloat32s(ScoresID, nil, []float32{1})
	v, err := tn.Map()
	require.NoError(t, err)
	v.Release()

	_, err = At[float32](tn, v, 0)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}
