package encoding

import (
	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
)

// fixedEncoder accumulates samples of a fixed on-wire width and serializes
// them with a caller-supplied put function. It backs the INT16, INT32,
// FLOAT32, and FLOAT64 encoders, which differ only in width and put/get.
type fixedEncoder[T Sample] struct {
	order  endian.EndianEngine
	width  int
	put    func(b []byte, order endian.EndianEngine, v T)
	values []T
}

func newFixedEncoder[T Sample](order endian.EndianEngine, width int, put func([]byte, endian.EndianEngine, T)) *fixedEncoder[T] {
	return &fixedEncoder[T]{order: order, width: width, put: put}
}

func (e *fixedEncoder[T]) Write(v T)            { e.values = append(e.values, v) }
func (e *fixedEncoder[T]) WriteSlice(vs []T)     { e.values = append(e.values, vs...) }
func (e *fixedEncoder[T]) Len() int              { return len(e.values) }
func (e *fixedEncoder[T]) Size() int             { return len(e.values) * e.width }
func (e *fixedEncoder[T]) Reset()                { e.values = e.values[:0] }
func (e *fixedEncoder[T]) Finish()                {}

func (e *fixedEncoder[T]) Bytes() []byte {
	out := make([]byte, len(e.values)*e.width)
	for i, v := range e.values {
		e.put(out[i*e.width:(i+1)*e.width], e.order, v)
	}

	return out
}

type fixedDecoder[T Sample] struct {
	order endian.EndianEngine
	width int
	get   func(b []byte, order endian.EndianEngine) T
}

func newFixedDecoder[T Sample](order endian.EndianEngine, width int, get func([]byte, endian.EndianEngine) T) *fixedDecoder[T] {
	return &fixedDecoder[T]{order: order, width: width, get: get}
}

func (d *fixedDecoder[T]) All(data []byte, count int) ([]T, error) {
	if len(data) < count*d.width {
		return nil, errs.ErrTruncated
	}

	out := make([]T, count)
	for i := 0; i < count; i++ {
		out[i] = d.get(data[i*d.width:(i+1)*d.width], d.order)
	}

	return out, nil
}

func (d *fixedDecoder[T]) At(data []byte, index, count int) (T, bool) {
	var zero T
	if index < 0 || index >= count || len(data) < (index+1)*d.width {
		return zero, false
	}

	return d.get(data[index*d.width:(index+1)*d.width], d.order), true
}

// NewInt16Encoder returns a SampleEncoder for the SEED INT16 encoding.
// Samples are widened to int32 on decode per the Samples.Int32 field; the
// encoder narrows back to int16 on the wire.
func NewInt16Encoder(order endian.EndianEngine) SampleEncoder[int32] {
	return newFixedEncoder[int32](order, 2, func(b []byte, o endian.EndianEngine, v int32) {
		o.PutUint16(b, uint16(int16(v)))
	})
}

// NewInt16Decoder returns a SampleDecoder for the SEED INT16 encoding.
func NewInt16Decoder(order endian.EndianEngine) SampleDecoder[int32] {
	return newFixedDecoder[int32](order, 2, func(b []byte, o endian.EndianEngine) int32 {
		return int32(int16(o.Uint16(b)))
	})
}

// NewInt32Encoder returns a SampleEncoder for the SEED INT32 encoding.
func NewInt32Encoder(order endian.EndianEngine) SampleEncoder[int32] {
	return newFixedEncoder[int32](order, 4, func(b []byte, o endian.EndianEngine, v int32) {
		o.PutUint32(b, uint32(v))
	})
}

// NewInt32Decoder returns a SampleDecoder for the SEED INT32 encoding.
func NewInt32Decoder(order endian.EndianEngine) SampleDecoder[int32] {
	return newFixedDecoder[int32](order, 4, func(b []byte, o endian.EndianEngine) int32 {
		return int32(o.Uint32(b))
	})
}

// NewFloat32Encoder returns a SampleEncoder for the SEED FLOAT32 encoding.
func NewFloat32Encoder(order endian.EndianEngine) SampleEncoder[float32] {
	return newFixedEncoder[float32](order, 4, func(b []byte, o endian.EndianEngine, v float32) {
		o.PutUint32(b, float32bits(v))
	})
}

// NewFloat32Decoder returns a SampleDecoder for the SEED FLOAT32 encoding.
func NewFloat32Decoder(order endian.EndianEngine) SampleDecoder[float32] {
	return newFixedDecoder[float32](order, 4, func(b []byte, o endian.EndianEngine) float32 {
		return float32frombits(o.Uint32(b))
	})
}

// NewFloat64Encoder returns a SampleEncoder for the SEED FLOAT64 encoding.
func NewFloat64Encoder(order endian.EndianEngine) SampleEncoder[float64] {
	return newFixedEncoder[float64](order, 8, func(b []byte, o endian.EndianEngine, v float64) {
		o.PutUint64(b, float64bits(v))
	})
}

// NewFloat64Decoder returns a SampleDecoder for the SEED FLOAT64 encoding.
func NewFloat64Decoder(order endian.EndianEngine) SampleDecoder[float64] {
	return newFixedDecoder[float64](order, 8, func(b []byte, o endian.EndianEngine) float64 {
		return float64frombits(o.Uint64(b))
	})
}
