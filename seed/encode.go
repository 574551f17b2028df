package seed

import (
	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/encoding"
	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/hptime"
	"github.com/geokit/mseed2sac/steim"
)

// Template is the caller-supplied skeleton for Pack: a partially-populated
// header plus the encoding/byte-order/reclen the encoder should use. Zero
// values are sentinels that trigger the documented defaults.
type Template struct {
	Network, Station, Location, Channel string
	Quality                             byte // 0 -> 'D'
	RecLen                              int  // 0 -> 4096
	Encoding                            uint8
	BigEndian                           bool
	SampleRate                          float64
	StartTime                           hptime.Time
	SequenceStart                       int // 0 -> 1
}

const (
	defaultRecLen      = 4096
	maxSequenceNumber  = 999999
	steimDataAlignment = 64
)

// Sink receives each fully-serialized record produced by Pack. Returning a
// non-nil error aborts packing; no partial record has been committed to a
// previous successful Sink call.
type Sink func(record []byte) error

func fieldBytes(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)

	return b
}

// capacityPerRecord returns the maximum number of samples one record can
// hold for the given encoding, reclen, and data offset.
func capacityPerRecord(enc uint8, recLen, dataOffset int) int {
	switch encoding.EncodingCode(enc) {
	case encoding.EncodingSteim1:
		frames := (recLen - dataOffset) / steim.FrameSize

		return frames * steim.Steim1MaxSamplesPerFrame
	case encoding.EncodingSteim2:
		frames := (recLen - dataOffset) / steim.FrameSize

		return frames * steim.Steim2MaxSamplesPerFrame
	default:
		sz := encoding.SampleSize(encoding.EncodingCode(enc))
		if sz == 0 {
			return 0
		}

		return (recLen - dataOffset) / sz
	}
}

func isPowerOfTwoInRange(n int) bool {
	if n < 128 || n > 1048576 {
		return false
	}

	return n&(n-1) == 0
}

func recLenExp(n int) uint8 {
	var exp uint8
	for (1 << exp) < n {
		exp++
	}

	return exp
}

func itoa6(n int) string {
	b := [6]byte{'0', '0', '0', '0', '0', '0'}
	for i := 5; i >= 0 && n > 0; i-- {
		b[i] = byte('0' + n%10)
		n /= 10
	}

	return string(b[:])
}

// Pack encodes samples into one or more fixed-length records per tpl,
// invoking sink for each. It returns the number of records written and
// samples consumed.
func Pack(tpl Template, samples []int32, cfg *config.Codec, sink Sink) (recordsWritten, samplesConsumed int, err error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}

	quality := tpl.Quality
	if quality == 0 {
		quality = 'D'
	}

	recLen := tpl.RecLen
	if recLen == 0 {
		recLen = defaultRecLen
	}
	if !isPowerOfTwoInRange(recLen) {
		return 0, 0, errs.ErrWrongLength
	}

	enc := tpl.Encoding
	if enc == 0 {
		enc = uint8(encoding.EncodingSteim2)
	}

	order := endian.GetLittleEndianEngine()
	byteOrderByte := uint8(0)
	if tpl.BigEndian {
		order = endian.GetBigEndianEngine()
		byteOrderByte = 1
	}

	dataOffset := FSDHSize + 8 // FSDH + blockette 1000 (4-byte common header + 4-byte body)
	isSteim := enc == uint8(encoding.EncodingSteim1) || enc == uint8(encoding.EncodingSteim2)
	if isSteim && dataOffset%steimDataAlignment != 0 {
		dataOffset += steimDataAlignment - dataOffset%steimDataAlignment
	}

	capacity := capacityPerRecord(enc, recLen, dataOffset)
	if capacity <= 0 {
		return 0, 0, errs.ErrWrongLength
	}

	seq := tpl.SequenceStart
	if seq == 0 {
		seq = 1
	}

	start := tpl.StartTime
	pos := 0

	for pos < len(samples) {
		end := pos + capacity
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[pos:end]

		rec, err := buildRecord(tpl, chunk, quality, recLen, enc, order, byteOrderByte, dataOffset, start, seq)
		if err != nil {
			return recordsWritten, samplesConsumed, err
		}

		if err := sink(rec); err != nil {
			return recordsWritten, samplesConsumed, err
		}

		recordsWritten++
		samplesConsumed += len(chunk)
		pos = end

		if tpl.SampleRate > 0 {
			start = start.AddSeconds(float64(len(chunk)) / tpl.SampleRate)
		}

		seq++
		if seq > maxSequenceNumber {
			seq = 1
		}
	}

	return recordsWritten, samplesConsumed, nil
}

func buildRecord(tpl Template, chunk []int32, quality byte, recLen int, enc uint8, order endian.EndianEngine, byteOrderByte uint8, dataOffset int, start hptime.Time, seq int) ([]byte, error) {
	buf := make([]byte, recLen)

	copy(buf[0:6], []byte(itoa6(seq)))
	buf[6] = quality
	copy(buf[8:13], fieldBytes(tpl.Station, 5))
	copy(buf[13:15], fieldBytes(tpl.Location, 2))
	copy(buf[15:18], fieldBytes(tpl.Channel, 3))
	copy(buf[18:20], fieldBytes(tpl.Network, 2))

	bt := hptime.FromTime(start)
	hptime.PutBTime(buf[20:30], bt, order)

	factor, mult, ok := hptime.FactorMultiplier(tpl.SampleRate)
	if !ok {
		return nil, errs.ErrOutOfRange
	}

	order.PutUint16(buf[30:32], uint16(len(chunk)))
	order.PutUint16(buf[32:34], uint16(factor))
	order.PutUint16(buf[34:36], uint16(mult))
	buf[36] = ActivityTimeCorrectionApplied
	buf[39] = 1 // one blockette: 1000
	order.PutUint16(buf[44:46], uint16(dataOffset))
	order.PutUint16(buf[46:48], uint16(FSDHSize))

	blktOff := FSDHSize
	order.PutUint16(buf[blktOff:blktOff+2], BlocketteType1000)
	order.PutUint16(buf[blktOff+2:blktOff+4], 0) // next = 0, end of chain

	b1000 := Blockette1000{Encoding: enc, ByteOrder: byteOrderByte, RecLenExp: recLenExp(recLen)}
	copy(buf[blktOff+4:blktOff+8], b1000.Bytes())

	if err := encodeSamples(buf[dataOffset:], enc, order, chunk); err != nil {
		return nil, err
	}

	return buf, nil
}

func encodeSamples(data []byte, enc uint8, order endian.EndianEngine, chunk []int32) error {
	switch encoding.EncodingCode(enc) {
	case encoding.EncodingInt16:
		e := encoding.NewInt16Encoder(order)
		e.WriteSlice(chunk)
		copy(data, e.Bytes())
	case encoding.EncodingInt32:
		e := encoding.NewInt32Encoder(order)
		e.WriteSlice(chunk)
		copy(data, e.Bytes())
	case encoding.EncodingSteim1, encoding.EncodingSteim2:
		ver := steim.V1
		if encoding.EncodingCode(enc) == encoding.EncodingSteim2 {
			ver = steim.V2
		}
		frames := len(data) / steim.FrameSize
		packed, _ := steim.Encode(chunk, order, ver, frames)
		copy(data, packed)
	default:
		return errs.ErrUnknownFormat
	}

	return nil
}
