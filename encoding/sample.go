// Package encoding implements the six Mini-SEED sample encodings (ASCII,
// INT16, INT32, FLOAT32, FLOAT64, Steim-1, Steim-2) behind a pair of
// generic interfaces so record decode/encode can dispatch on one
// polymorphic call instead of a format-code switch at every call site.
package encoding

// Sample is the set of native sample widths Mini-SEED encodings decode to.
type Sample interface {
	int32 | float32 | float64
}

// SampleEncoder accumulates samples of type T and produces the packed byte
// representation for one encoding's data area.
//
// Modeled on the teacher's ColumnarEncoder[T]: Write/WriteSlice accumulate,
// Bytes/Len/Size inspect, Reset clears state while retaining the backing
// buffer, Finish completes the encoding (the Steim encoders pack the
// accumulated samples into frames; the fixed-width encoders have nothing
// to finish).
type SampleEncoder[T Sample] interface {
	Write(v T)
	WriteSlice(values []T)
	Bytes() []byte
	Len() int
	Size() int
	Reset()
	Finish()
}

// SampleDecoder reconstructs samples of type T from a packed byte payload.
//
// Modeled on the teacher's ColumnarDecoder[T]: All decodes the full run,
// At performs a single random-access lookup where the encoding supports it
// (fixed-width encodings only; Steim returns ok=false since reconstruction
// is inherently sequential).
type SampleDecoder[T Sample] interface {
	All(data []byte, count int) ([]T, error)
	At(data []byte, index, count int) (T, bool)
}

// EncodingCode identifies a SEED sample encoding, per blockette 1000.
type EncodingCode uint8

const (
	EncodingASCII   EncodingCode = 0
	EncodingInt16   EncodingCode = 1
	EncodingInt32   EncodingCode = 3
	EncodingFloat32 EncodingCode = 4
	EncodingFloat64 EncodingCode = 5
	EncodingSteim1  EncodingCode = 10
	EncodingSteim2  EncodingCode = 11
)

// SampleSize returns the on-wire width in bytes of one sample for
// fixed-width encodings, or 0 for variable/Steim encodings.
func SampleSize(code EncodingCode) int {
	switch code {
	case EncodingInt16:
		return 2
	case EncodingInt32, EncodingFloat32:
		return 4
	case EncodingFloat64:
		return 8
	case EncodingASCII:
		return 1
	default:
		return 0
	}
}
