package tracecache

import (
	"github.com/geokit/mseed2sac/compress"
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/format"
	"github.com/geokit/mseed2sac/hptime"
	"github.com/geokit/mseed2sac/trace"
)

// Read parses a tracecache file body produced by Write and reconstructs a
// *trace.Collection without invoking the Mini-SEED decoder. The segments'
// Network/Station/Location/Channel fields are left empty since the cache
// format key segments by source hash only; callers that need the original
// names must keep their own hash-to-name table (e.g. via internal/collision).
func Read(data []byte) (*trace.Collection, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if int(hdr.IndexOffset) > len(data) {
		return nil, errs.ErrTruncated
	}

	var codec compress.Codec
	if compressed, codecType := DecodeCompressionFlags(hdr.Flags); compressed {
		codec, err = compress.GetCodec(format.CompressionType(codecType))
		if err != nil {
			return nil, err
		}
	}

	entries := make([]IndexEntry, hdr.SegmentCount)
	pos := int(hdr.IndexOffset)
	for i := range entries {
		e, err := ParseIndexEntry(data[pos:])
		if err != nil {
			return nil, err
		}

		entries[i] = e
		pos += IndexEntrySize
	}

	col := trace.NewCollection()

	timePos := int(hdr.TimeOffset)
	valuePos := int(hdr.ValueOffset)

	for _, e := range entries {
		if timePos+int(e.TimeLen) > len(data) {
			return nil, errs.ErrTruncated
		}

		timeRun := data[timePos : timePos+int(e.TimeLen)]
		timePos += int(e.TimeLen)

		valueLen := int(e.ValueLen)
		if valuePos+valueLen > len(data) {
			return nil, errs.ErrTruncated
		}

		valueRun := data[valuePos : valuePos+valueLen]
		valuePos += valueLen

		if codec != nil {
			timeRun, err = codec.Decompress(timeRun)
			if err != nil {
				return nil, err
			}

			valueRun, err = codec.Decompress(valueRun)
			if err != nil {
				return nil, err
			}
		}

		seg, err := rebuildSegment(e, timeRun, valueRun)
		if err != nil {
			return nil, err
		}

		col.Segments = append(col.Segments, seg)
	}

	return col, nil
}

func rebuildSegment(e IndexEntry, timeRun, valueRun []byte) (*trace.Segment, error) {
	ticks := decodeTimestamps(timeRun, int(e.SampleCount))

	seg := &trace.Segment{
		SampleRate: inferRate(ticks),
	}

	if len(ticks) > 0 {
		seg.Start = hptime.Time(ticks[0])
		seg.End = hptime.Time(ticks[len(ticks)-1])
	}

	switch e.SampleType {
	case SampleTagFloat32:
		seg.SampleType = trace.SampleFloat32
		seg.Samples.Float32 = decodeFloat32Values(valueRun, int(e.SampleCount))
	case SampleTagFloat64:
		seg.SampleType = trace.SampleFloat64
		seg.Samples.Float64 = decodeFloat64Values(valueRun, int(e.SampleCount))
	default:
		seg.SampleType = trace.SampleInt32
		seg.Samples.Int32 = decodeInt32Values(valueRun, int(e.SampleCount))
	}

	return seg, nil
}

// inferRate recovers the nominal sample rate from the first two decoded
// tick timestamps. A single-sample segment has no implied rate and is
// reported as 0.
func inferRate(ticks []int64) float64 {
	if len(ticks) < 2 {
		return 0
	}

	period := ticks[1] - ticks[0]
	if period <= 0 {
		return 0
	}

	return float64(hptime.Modulus) / float64(period)
}

