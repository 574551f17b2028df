package trace

import (
	"testing"

	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/hptime"
	"github.com/geokit/mseed2sac/seed"
	"github.com/stretchr/testify/require"
)

func makeRecord(net, sta, loc, chan_ string, quality byte, rate float64, start, end hptime.Time, samples []int32) *seed.Record {
	var h seed.FSDH
	copy(h.Network[:], net+"  ")
	copy(h.Station[:], sta+"     ")
	copy(h.Location[:], loc+"  ")
	copy(h.Channel[:], chan_+"   ")
	h.DataQuality = quality

	return &seed.Record{
		Header:     h,
		SampleRate: rate,
		StartTime:  start,
		EndTime:    end,
		Samples:    seed.Samples{Int32: samples},
	}
}

func TestInsertCreatesNewSegment(t *testing.T) {
	col := NewCollection()
	rec := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, hptime.Time(0), hptime.Time(50000), []int32{1, 2, 3})

	seg, whence, err := Insert(col, rec, -1, -1)
	require.NoError(t, err)
	require.Equal(t, WhenceNew, whence)
	require.Equal(t, "IU.ANMO.00.BHZ", seg.SourceName())
	require.Len(t, col.Segments, 1)
}

func TestInsertAppendsContiguousRecord(t *testing.T) {
	col := NewCollection()
	period := hptime.Time(int64(hptime.Modulus) / 20) // 1/20s in ticks

	// Insert's adjacency check compares the raw gap between a candidate
	// record's start and the segment's end against tol; a zero gap always
	// qualifies regardless of tolerance.
	r1 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 0, period*2, []int32{1, 2, 3})
	_, _, err := Insert(col, r1, -1, -1)
	require.NoError(t, err)

	r2 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, period*2, period*3, []int32{4, 5})
	seg, whence, err := Insert(col, r2, -1, -1)
	require.NoError(t, err)
	require.Equal(t, WhenceAppend, whence)
	require.Equal(t, []int32{1, 2, 3, 4, 5}, seg.Samples.Int32)
	require.Len(t, col.Segments, 1)
}

func TestInsertPrependsContiguousRecord(t *testing.T) {
	col := NewCollection()
	period := hptime.Time(int64(hptime.Modulus) / 20)

	r1 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, period*3, period*4, []int32{4, 5})
	_, _, err := Insert(col, r1, -1, -1)
	require.NoError(t, err)

	r2 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 0, period*3, []int32{1, 2, 3})
	seg, whence, err := Insert(col, r2, -1, -1)
	require.NoError(t, err)
	require.Equal(t, WhencePrepend, whence)
	require.Equal(t, []int32{1, 2, 3, 4, 5}, seg.Samples.Int32)
}

func TestInsertStartsNewSegmentOnLargeGap(t *testing.T) {
	col := NewCollection()

	r1 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 0, 100000, []int32{1, 2, 3})
	_, _, err := Insert(col, r1, -1, -1)
	require.NoError(t, err)

	r2 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 100_000_000, 100_050_000, []int32{4, 5})
	_, whence, err := Insert(col, r2, -1, -1)
	require.NoError(t, err)
	require.Equal(t, WhenceNew, whence)
	require.Len(t, col.Segments, 2)
}

func TestInsertSeparatesDifferentRates(t *testing.T) {
	col := NewCollection()

	r1 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 0, 100000, []int32{1, 2, 3})
	_, _, err := Insert(col, r1, -1, -1)
	require.NoError(t, err)

	r2 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 1, 100000, 200000, []int32{4, 5})
	_, whence, err := Insert(col, r2, -1, -1)
	require.NoError(t, err)
	require.Equal(t, WhenceNew, whence)
	require.Len(t, col.Segments, 2)
}

func TestInsertQualitySeparation(t *testing.T) {
	col := NewCollection()
	col.QualitySeparated = true

	r1 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 0, 100000, []int32{1, 2, 3})
	_, _, err := Insert(col, r1, -1, -1)
	require.NoError(t, err)

	r2 := makeRecord("IU", "ANMO", "00", "BHZ", 'Q', 20, 100000, 200000, []int32{4, 5})
	_, whence, err := Insert(col, r2, -1, -1)
	require.NoError(t, err)
	require.Equal(t, WhenceNew, whence)
	require.Len(t, col.Segments, 2)
}

func TestInsertRejectsSampleTypeMismatch(t *testing.T) {
	col := NewCollection()
	period := hptime.Time(int64(hptime.Modulus) / 20)

	r1 := makeRecord("IU", "ANMO", "00", "BHZ", 'D', 20, 0, period*2, []int32{1, 2, 3})
	_, _, err := Insert(col, r1, -1, -1)
	require.NoError(t, err)

	r2 := &seed.Record{
		Header:     r1.Header,
		SampleRate: 20,
		StartTime:  period * 2,
		EndTime:    period * 3,
		Samples:    seed.Samples{Float32: []float32{1.1, 2.2}},
	}

	_, _, err = Insert(col, r2, -1, -1)
	require.ErrorIs(t, err, errs.ErrRateMismatch)
}

func TestSegmentLen(t *testing.T) {
	s := &Segment{Samples: seed.Samples{Int32: []int32{1, 2, 3}}}
	require.Equal(t, 3, s.Len())
}
