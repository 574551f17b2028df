package seed

import (
	"unicode"

	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/hptime"
)

// Samples is a sum type holding a record's decoded sample buffer in
// whichever native width its encoding produced.
type Samples struct {
	Int32   []int32
	Float32 []float32
	Float64 []float64
	Text    []byte
}

// Len returns the number of decoded samples, regardless of which field is
// populated.
func (s Samples) Len() int {
	switch {
	case s.Int32 != nil:
		return len(s.Int32)
	case s.Float32 != nil:
		return len(s.Float32)
	case s.Float64 != nil:
		return len(s.Float64)
	case s.Text != nil:
		return len(s.Text)
	default:
		return 0
	}
}

// Record is a fully-decoded Mini-SEED data record.
type Record struct {
	RecLen          int
	Encoding        uint8
	ByteOrder       endian.EndianEngine // header byte order
	SampleByteOrder endian.EndianEngine // sample/data area byte order

	Header     FSDH
	Blockettes []Blockette

	Blkt100  *Blockette100
	Blkt1000 *Blockette1000
	Blkt1001 *Blockette1001

	SampleCount int
	SampleRate  float64
	StartTime   hptime.Time
	EndTime     hptime.Time

	Samples Samples

	Raw []byte // full record bytes, retained for re-emit/diagnostics
}

// isDataIndicator reports whether c is one of the four SEED data-record
// quality indicators.
func isDataIndicator(c byte) bool {
	switch c {
	case 'D', 'R', 'Q', 'M':
		return true
	default:
		return false
	}
}

// validateSignature checks the first 8 bytes of a record per spec:
// 6 ASCII digits, a data-record indicator, then space or NUL.
func validateSignature(b []byte) error {
	if len(b) < 8 {
		return errs.ErrTruncated
	}

	for i := 0; i < 6; i++ {
		if !unicode.IsDigit(rune(b[i])) {
			return errs.ErrNotSeed
		}
	}

	if !isDataIndicator(b[6]) {
		return errs.ErrNotSeed
	}

	if b[7] != ' ' && b[7] != 0 {
		return errs.ErrNotSeed
	}

	return nil
}

// detectByteOrder inspects the BTime year at offset 20 under both byte
// orders and returns whichever produces a sane [1920,2020] year.
func detectByteOrder(b []byte) (endian.EndianEngine, error) {
	if len(b) < 22 {
		return nil, errs.ErrTruncated
	}

	be := endian.GetBigEndianEngine()
	beYear := be.Uint16(b[20:22])
	if beYear >= 1920 && beYear <= 2020 {
		return be, nil
	}

	le := endian.GetLittleEndianEngine()
	leYear := le.Uint16(b[20:22])
	if leYear >= 1920 && leYear <= 2020 {
		return le, nil
	}

	return nil, errs.ErrNotSeed
}

// DecodeOptions configures a single Decode call.
type DecodeOptions struct {
	ExpectedRecLen int // 0 = no expectation
	WantSamples    bool
}

// Decode parses one Mini-SEED record from b.
func Decode(b []byte, cfg *config.Codec, opts DecodeOptions) (*Record, error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}

	if err := validateSignature(b); err != nil {
		return nil, err
	}

	order, err := detectByteOrder(b)
	if err != nil {
		return nil, err
	}
	if cfg.UnpackHeaderByteOrder == config.ByteOrderLittle {
		order = endian.GetLittleEndianEngine()
	} else if cfg.UnpackHeaderByteOrder == config.ByteOrderBig {
		order = endian.GetBigEndianEngine()
	}

	hdr, err := ParseFSDH(b, order)
	if err != nil {
		return nil, err
	}

	rec := &Record{Header: hdr, ByteOrder: order, SampleByteOrder: order, Raw: b}

	if err := walkBlockettes(rec, b, order, cfg.Logger); err != nil {
		return nil, err
	}

	if err := resolveLengthAndEncoding(rec, cfg, opts); err != nil {
		return nil, err
	}

	if err := deriveFields(rec, cfg); err != nil {
		return nil, err
	}

	if opts.WantSamples {
		if err := decodeSamples(rec, b, cfg); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func walkBlockettes(rec *Record, b []byte, order endian.EndianEngine, logger config.Logger) error {
	offset := rec.Header.BlocketteOffset
	var lastOffset uint16

	for i := 0; i < int(rec.Header.NumBlockettes)+8 && offset != 0; i++ {
		if int(offset)+4 > len(b) {
			if logger != nil {
				logger.Warnf("blockette offset %d exceeds record bounds", offset)
			}
			break
		}

		if offset <= lastOffset && i > 0 {
			if logger != nil {
				logger.Warnf("non-monotonic blockette offset %d <= %d", offset, lastOffset)
			}
			break
		}

		btype := order.Uint16(b[offset : offset+2])
		next := order.Uint16(b[offset+2 : offset+4])

		length, known := blocketteLength[btype]
		if !known {
			if logger != nil {
				logger.Warnf("unknown blockette type %d at offset %d", btype, offset)
			}
			break
		}

		var body []byte
		switch {
		case btype == BlocketteType2000:
			if int(offset)+6 > len(b) {
				break
			}
			blen := int(order.Uint16(b[offset+4 : offset+6]))
			if int(offset)+blen > len(b) {
				blen = len(b) - int(offset)
			}
			body = b[offset+4 : int(offset)+blen]
		case length == 0: // blockette 405, variable/truncated
			end := len(b)
			if next != 0 && int(next) <= len(b) {
				end = int(next)
			}
			body = b[offset+4 : end]
		default:
			end := int(offset) + 4 + length
			if end > len(b) {
				end = len(b)
			}
			body = b[offset+4 : end]
		}

		blkt := Blockette{Type: btype, Next: next, Body: append([]byte(nil), body...)}
		rec.Blockettes = append(rec.Blockettes, blkt)

		switch btype {
		case BlocketteTypeSampleRate:
			if v, err := ParseBlockette100(body, order); err == nil {
				rec.Blkt100 = &v
			}
		case BlocketteType1000:
			if v, err := ParseBlockette1000(body); err == nil {
				rec.Blkt1000 = &v
			}
		case BlocketteType1001:
			if v, err := ParseBlockette1001(body); err == nil {
				rec.Blkt1001 = &v
			}
		}

		lastOffset = offset
		offset = next
	}

	return nil
}

func resolveLengthAndEncoding(rec *Record, cfg *config.Codec, opts DecodeOptions) error {
	if rec.Blkt1000 != nil {
		reclen := rec.Blkt1000.RecLen()
		if opts.ExpectedRecLen != 0 && opts.ExpectedRecLen != reclen {
			return errs.ErrWrongLength
		}
		rec.RecLen = reclen
		rec.Encoding = rec.Blkt1000.Encoding

		if rec.Blkt1000.ByteOrder == 0 {
			rec.SampleByteOrder = endian.GetLittleEndianEngine()
		} else {
			rec.SampleByteOrder = endian.GetBigEndianEngine()
		}
	}

	if cfg.UnpackDataByteOrder == config.ByteOrderLittle {
		rec.SampleByteOrder = endian.GetLittleEndianEngine()
	} else if cfg.UnpackDataByteOrder == config.ByteOrderBig {
		rec.SampleByteOrder = endian.GetBigEndianEngine()
	}

	if rec.Blkt1000 != nil {
		return nil
	}

	if cfg.UnpackDataFormat >= 0 {
		rec.Encoding = uint8(cfg.UnpackDataFormat)
		if opts.ExpectedRecLen != 0 {
			rec.RecLen = opts.ExpectedRecLen
		}

		return nil
	}

	if cfg.UnpackDataFormatFallback >= 0 {
		rec.Encoding = uint8(cfg.UnpackDataFormatFallback)
		if opts.ExpectedRecLen != 0 {
			rec.RecLen = opts.ExpectedRecLen
		}

		return nil
	}

	return errs.ErrNoBlockette1000
}

func deriveFields(rec *Record, cfg *config.Codec) error {
	factor := rec.Header.SampRateFact
	mult := rec.Header.SampRateMult
	rec.SampleRate = hptime.SampleRate(factor, mult)

	if rec.Blkt100 != nil {
		rec.SampleRate = float64(rec.Blkt100.ActualSampleRate)
	}

	start, err := rec.Header.StartTime.ToTime()
	if err != nil {
		return err
	}

	if rec.Header.ActivityFlags&ActivityTimeCorrectionApplied == 0 && rec.Header.TimeCorrect != 0 {
		start = start.AddSeconds(float64(rec.Header.TimeCorrect) / 10000.0)
	}

	if rec.Blkt1001 != nil {
		start = start.AddSeconds(float64(rec.Blkt1001.MicroSec) / 1000000.0)
	}

	rec.StartTime = start
	rec.SampleCount = int(rec.Header.NumSamples)

	if rec.SampleRate > 0 && rec.SampleCount > 0 {
		rec.EndTime = start.AddSeconds(float64(rec.SampleCount-1) / rec.SampleRate)
	} else {
		rec.EndTime = start
	}

	return nil
}

// DataOffsetOrDefault returns the record's declared data offset, falling
// back to FSDHSize (the byte right after the fixed header) when zero.
func (r *Record) DataOffsetOrDefault() int {
	if r.Header.DataOffset != 0 {
		return int(r.Header.DataOffset)
	}

	return FSDHSize
}
