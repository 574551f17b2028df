package tracecache

import (
	"sort"

	"github.com/geokit/mseed2sac/compress"
	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/format"
	"github.com/geokit/mseed2sac/internal/collision"
	"github.com/geokit/mseed2sac/internal/hash"
	"github.com/geokit/mseed2sac/trace"
)

// Write serializes col to a tracecache file body, returning the full
// bytes (header + index + timestamp payload + value payload). cfg
// selects the compression codec applied to the two payload sections.
func Write(col *trace.Collection, cfg *config.Codec) ([]byte, error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}

	tracker := collision.NewTracker()
	entries := make([]IndexEntry, len(col.Segments))
	timeRuns := make([][]byte, len(col.Segments))
	valueRuns := make([][]byte, len(col.Segments))

	var earliest int64
	for i, seg := range col.Segments {
		name := seg.SourceName()
		h := hash.SourceID(name)
		if err := tracker.TrackSource(name, h); err != nil {
			return nil, err
		}

		tag, valBytes := valuePayload(seg)

		entries[i] = IndexEntry{
			SourceHash:  h,
			SampleCount: uint32(seg.Len()),
			SampleType:  tag,
		}

		timeRuns[i] = encodeTimestamps(seg.Start, seg.SampleRate, seg.Len())
		valueRuns[i] = valBytes

		if i == 0 || int64(seg.Start) < earliest {
			earliest = int64(seg.Start)
		}
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return entries[order[a]].SourceHash < entries[order[b]].SourceHash })

	codec, usesCompression, err := codecFor(cfg.CacheCompression)
	if err != nil {
		return nil, err
	}

	var timePayload, valuePayloadBuf []byte
	sortedEntries := make([]IndexEntry, len(entries))
	for outIdx, srcIdx := range order {
		e := entries[srcIdx]
		tr := timeRuns[srcIdx]
		vr := valueRuns[srcIdx]

		if usesCompression {
			tr, err = codec.Compress(tr)
			if err != nil {
				return nil, err
			}

			vr, err = codec.Compress(vr)
			if err != nil {
				return nil, err
			}
		}

		e.TimeLen = uint32(len(tr))
		e.ValueLen = uint32(len(vr))
		sortedEntries[outIdx] = e
		timePayload = append(timePayload, tr...)
		valuePayloadBuf = append(valuePayloadBuf, vr...)
	}

	indexOffset := HeaderSize
	timeOffset := indexOffset + len(sortedEntries)*IndexEntrySize
	valueOffset := timeOffset + len(timePayload)

	flags := EncodeCompressionFlags(usesCompression, uint8(cfg.CacheCompression))

	hdr := Header{
		Magic:        Magic,
		Version:      Version,
		Flags:        flags,
		StartTick:    earliest,
		SegmentCount: uint32(len(sortedEntries)),
		IndexOffset:  uint32(indexOffset),
		TimeOffset:   uint32(timeOffset),
		ValueOffset:  uint32(valueOffset),
	}

	out := append([]byte(nil), hdr.Bytes()...)
	for _, e := range sortedEntries {
		out = append(out, e.Bytes()...)
	}
	out = append(out, timePayload...)
	out = append(out, valuePayloadBuf...)

	return out, nil
}

func valuePayload(seg *trace.Segment) (SampleTypeTag, []byte) {
	switch seg.SampleType {
	case trace.SampleFloat32:
		return SampleTagFloat32, encodeFloat32Values(seg.Samples.Float32)
	case trace.SampleFloat64:
		return SampleTagFloat64, encodeFloat64Values(seg.Samples.Float64)
	default:
		return SampleTagInt32, encodeInt32Values(seg.Samples.Int32)
	}
}

func codecFor(t format.CompressionType) (compress.Codec, bool, error) {
	if t == format.CompressionNone {
		return nil, false, nil
	}

	c, err := compress.GetCodec(t)
	if err != nil {
		return nil, false, err
	}

	return c, true, nil
}
