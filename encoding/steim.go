package encoding

import (
	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/steim"
)

// steimDecoder adapts the steim package to SampleDecoder[int32]. At is not
// supported since Steim reconstruction is inherently sequential.
type steimDecoder struct {
	order  endian.EndianEngine
	ver    steim.Version
	logger config.Logger
}

// NewSteim1Decoder returns a SampleDecoder for the SEED Steim-1 encoding.
func NewSteim1Decoder(order endian.EndianEngine, logger config.Logger) SampleDecoder[int32] {
	return &steimDecoder{order: order, ver: steim.V1, logger: logger}
}

// NewSteim2Decoder returns a SampleDecoder for the SEED Steim-2 encoding.
func NewSteim2Decoder(order endian.EndianEngine, logger config.Logger) SampleDecoder[int32] {
	return &steimDecoder{order: order, ver: steim.V2, logger: logger}
}

func (d *steimDecoder) All(data []byte, count int) ([]int32, error) {
	return steim.Decode(data, count, d.order, d.ver, d.logger)
}

func (d *steimDecoder) At(data []byte, index, count int) (int32, bool) {
	return 0, false
}

// steimEncoder adapts the steim package to SampleEncoder[int32]. Size/Bytes
// are only meaningful after Finish has packed the accumulated samples,
// since Steim frame count depends on the whole run, not per-sample state.
type steimEncoder struct {
	order     endian.EndianEngine
	ver       steim.Version
	maxFrames   int
	values      []int32
	packed      []byte
	packedCount int
}

// NewSteim1Encoder returns a SampleEncoder for the SEED Steim-1 encoding.
// maxFrames bounds the data area to maxFrames*steim.FrameSize bytes.
func NewSteim1Encoder(order endian.EndianEngine, maxFrames int) SampleEncoder[int32] {
	return &steimEncoder{order: order, ver: steim.V1, maxFrames: maxFrames}
}

// NewSteim2Encoder returns a SampleEncoder for the SEED Steim-2 encoding.
func NewSteim2Encoder(order endian.EndianEngine, maxFrames int) SampleEncoder[int32] {
	return &steimEncoder{order: order, ver: steim.V2, maxFrames: maxFrames}
}

func (e *steimEncoder) Write(v int32)        { e.values = append(e.values, v) }
func (e *steimEncoder) WriteSlice(vs []int32) { e.values = append(e.values, vs...) }
func (e *steimEncoder) Len() int             { return len(e.values) }
func (e *steimEncoder) Reset()               { e.values = e.values[:0]; e.packed = nil }

func (e *steimEncoder) Finish() {
	e.packed, e.packedCount = steim.Encode(e.values, e.order, e.ver, e.maxFrames)
}

func (e *steimEncoder) Bytes() []byte {
	if e.packed == nil {
		e.Finish()
	}

	return e.packed
}

func (e *steimEncoder) Size() int { return len(e.Bytes()) }

// Packed reports how many of the accumulated samples actually fit within
// maxFrames; callers split the remainder into a following record.
func (e *steimEncoder) Packed() int {
	if e.packed == nil {
		e.Finish()
	}

	return e.packedCount
}
