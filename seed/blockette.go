package seed

import (
	"math"

	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
)

// Blockette types with special handling in the decoder/encoder.
const (
	BlocketteTypeSampleRate = 100
	BlocketteType1000       = 1000
	BlocketteType1001       = 1001
	BlocketteType2000       = 2000
)

// blocketteLength maps a known blockette type to its fixed body length in
// bytes, excluding the 4-byte common header (type + next-offset). A zero
// length marks a variable-length/self-describing blockette (405, 2000).
var blocketteLength = map[uint16]int{
	100:  8,
	200:  48,
	201:  56,
	300:  56,
	310:  56,
	320:  64,
	390:  28,
	395:  16,
	400:  16,
	405:  0, // variable, truncated support: length comes from the body itself
	500:  192,
	1000: 4,
	1001: 4,
	2000: 0, // self-describing: body carries its own length field
}

// Blockette is one node of a record's blockette chain: a 4-byte common
// header (type, next-blockette-offset) plus a typed body.
type Blockette struct {
	Type uint16
	Next uint16 // offset of the next blockette in the record, 0 = end of chain
	Body []byte
}

// Blockette100 carries blockette 100's "actual" sample rate override.
type Blockette100 struct {
	ActualSampleRate float32
	Flags            byte
}

// ParseBlockette100 decodes a blockette 100 body (8 bytes).
func ParseBlockette100(body []byte, order endian.EndianEngine) (Blockette100, error) {
	if len(body) < 8 {
		return Blockette100{}, errs.ErrWrongLength
	}

	bits := order.Uint32(body[0:4])

	return Blockette100{
		ActualSampleRate: math.Float32frombits(bits),
		Flags:            body[4],
	}, nil
}

// Blockette1000 carries the record's true encoding, byte order, and length.
type Blockette1000 struct {
	Encoding  uint8
	ByteOrder uint8 // 0 = little-endian, 1 = big-endian
	RecLenExp uint8
	Reserved  uint8
}

// ParseBlockette1000 decodes a blockette 1000 body (4 bytes).
func ParseBlockette1000(body []byte) (Blockette1000, error) {
	if len(body) < 4 {
		return Blockette1000{}, errs.ErrWrongLength
	}

	return Blockette1000{
		Encoding:  body[0],
		ByteOrder: body[1],
		RecLenExp: body[2],
		Reserved:  body[3],
	}, nil
}

// Bytes serializes a blockette 1000 body.
func (b Blockette1000) Bytes() []byte {
	return []byte{b.Encoding, b.ByteOrder, b.RecLenExp, b.Reserved}
}

// RecLen returns 2^RecLenExp, the record length in bytes this blockette
// declares.
func (b Blockette1000) RecLen() int {
	return 1 << b.RecLenExp
}

// Blockette1001 carries sub-BTime timing quality and a microsecond offset.
type Blockette1001 struct {
	TimingQuality byte
	MicroSec      int8
	Reserved      byte
	FrameCount    byte
}

// ParseBlockette1001 decodes a blockette 1001 body (4 bytes).
func ParseBlockette1001(body []byte) (Blockette1001, error) {
	if len(body) < 4 {
		return Blockette1001{}, errs.ErrWrongLength
	}

	return Blockette1001{
		TimingQuality: body[0],
		MicroSec:      int8(body[1]),
		Reserved:      body[2],
		FrameCount:    body[3],
	}, nil
}

// Bytes serializes a blockette 1001 body.
func (b Blockette1001) Bytes() []byte {
	return []byte{b.TimingQuality, byte(b.MicroSec), b.Reserved, b.FrameCount}
}
