package tracecache

import (
	"testing"

	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/format"
	"github.com/geokit/mseed2sac/hptime"
	"github.com/geokit/mseed2sac/seed"
	"github.com/geokit/mseed2sac/trace"
	"github.com/stretchr/testify/require"
)

func sampleCollection() *trace.Collection {
	col := trace.NewCollection()

	col.Segments = append(col.Segments,
		&trace.Segment{
			Network: "IU", Station: "ANMO", Location: "00", Channel: "BHZ",
			SampleRate: 20,
			SampleType: trace.SampleInt32,
			Start:      hptime.Time(1_700_000_000_000_000),
			Samples:    seed.Samples{Int32: []int32{1, 2, 3, 4, 5, 4, 3, 2, 1, 0}},
		},
		&trace.Segment{
			Network: "IU", Station: "ANMO", Location: "00", Channel: "LHZ",
			SampleRate: 1,
			SampleType: trace.SampleFloat32,
			Start:      hptime.Time(1_700_000_100_000_000),
			Samples:    seed.Samples{Float32: []float32{1.1, 2.2, 3.3}},
		},
	)

	return col
}

func TestWriteReadRoundTripUncompressed(t *testing.T) {
	col := sampleCollection()

	data, err := Write(col, config.NewDefault())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	got, err := Read(data)
	require.NoError(t, err)
	require.Len(t, got.Segments, len(col.Segments))

	byRate := map[float64]*trace.Segment{}
	for _, seg := range got.Segments {
		byRate[seg.SampleRate] = seg
	}

	intSeg := byRate[20]
	require.NotNil(t, intSeg)
	require.Equal(t, trace.SampleInt32, intSeg.SampleType)
	require.Equal(t, col.Segments[0].Samples.Int32, intSeg.Samples.Int32)
	require.Equal(t, col.Segments[0].Start, intSeg.Start)

	floatSeg := byRate[1]
	require.NotNil(t, floatSeg)
	require.Equal(t, trace.SampleFloat32, floatSeg.SampleType)
	require.Equal(t, col.Segments[1].Samples.Float32, floatSeg.Samples.Float32)
}

func TestWriteReadRoundTripCompressed(t *testing.T) {
	col := sampleCollection()

	cfg := config.NewDefault()
	cfg.CacheCompression = format.CompressionS2

	data, err := Write(col, cfg)
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)
	require.Len(t, got.Segments, len(col.Segments))

	hdr, err := ParseHeader(data)
	require.NoError(t, err)
	compressed, codec := DecodeCompressionFlags(hdr.Flags)
	require.True(t, compressed)
	require.Equal(t, uint8(format.CompressionS2), codec)
}

func TestWriteEmptyCollection(t *testing.T) {
	col := trace.NewCollection()

	data, err := Write(col, nil)
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)
	require.Empty(t, got.Segments)
}

func TestWriteDetectsSourceCollision(t *testing.T) {
	col := trace.NewCollection()
	col.Segments = append(col.Segments,
		&trace.Segment{Network: "IU", Station: "ANMO", Location: "00", Channel: "BHZ", SampleType: trace.SampleInt32},
		&trace.Segment{Network: "IU", Station: "ANMO", Location: "00", Channel: "BHZ", SampleType: trace.SampleInt32},
	)

	_, err := Write(col, nil)
	require.Error(t, err)
}
