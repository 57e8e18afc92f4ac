package nn

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Supported tensor element types in model files
const (
	DTypeFloat64 = "float64"
	DTypeFloat32 = "float32"
	DTypeFloat16 = "float16"
)

// dtypeSize returns the encoded width in bytes of one element of dtype
func dtypeSize(dtype string) (int, error) {
	switch dtype {
	case DTypeFloat64:
		return 8, nil
	case DTypeFloat32:
		return 4, nil
	case DTypeFloat16:
		return 2, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q", dtype)
	}
}

// encodeSliceWithDType encodes values as base64 little-endian bytes of dtype.
// Narrower dtypes round to nearest; a finite value beyond their range is an error.
func encodeSliceWithDType(data []float64, dtype string) (string, error) {
	size, err := dtypeSize(dtype)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}

	bytes := make([]byte, len(data)*size)
	for i, v := range data {
		var narrowed float64
		switch dtype {
		case DTypeFloat64:
			binary.LittleEndian.PutUint64(bytes[i*8:], math.Float64bits(v))
			narrowed = v
		case DTypeFloat32:
			f := float32(v)
			binary.LittleEndian.PutUint32(bytes[i*4:], math.Float32bits(f))
			narrowed = float64(f)
		case DTypeFloat16:
			h := float16.Fromfloat32(float32(v))
			binary.LittleEndian.PutUint16(bytes[i*2:], h.Bits())
			narrowed = float64(h.Float32())
		}
		if math.IsInf(narrowed, 0) && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return "", fmt.Errorf("value %g at %d overflows %s", v, i, dtype)
		}
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

// decodeSliceWithDType decodes base64 little-endian bytes of dtype into float64 values
func decodeSliceWithDType(encoded string, dtype string) ([]float64, error) {
	size, err := dtypeSize(dtype)
	if err != nil {
		return nil, err
	}
	if encoded == "" {
		return nil, nil
	}

	bytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if len(bytes)%size != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of %s values", len(bytes), dtype)
	}

	data := make([]float64, len(bytes)/size)
	for i := range data {
		switch dtype {
		case DTypeFloat64:
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(bytes[i*8:]))
		case DTypeFloat32:
			data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4:])))
		case DTypeFloat16:
			data[i] = float64(float16.Frombits(binary.LittleEndian.Uint16(bytes[i*2:])).Float32())
		}
	}
	return data, nil
}
