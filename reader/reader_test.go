package reader

import (
	"bytes"
	"io"
	"testing"

	"github.com/geokit/mseed2sac/encoding"
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/hptime"
	"github.com/geokit/mseed2sac/seed"
	"github.com/stretchr/testify/require"
)

func buildRecord(t *testing.T, net, sta string, seq int, samples []int32) []byte {
	t.Helper()

	tpl := seed.Template{
		Network: net, Station: sta, Channel: "BHZ",
		Encoding:       uint8(encoding.EncodingInt32),
		RecLen:         512,
		SampleRate:     20,
		StartTime:      hptime.Time(0),
		SequenceStart:  seq,
	}

	var rec []byte
	_, _, err := seed.Pack(tpl, samples, nil, func(r []byte) error {
		rec = append([]byte(nil), r...)
		return nil
	})
	require.NoError(t, err)

	return rec
}

func TestReaderDecodesMultipleRecords(t *testing.T) {
	r1 := buildRecord(t, "IU", "ANMO", 1, []int32{1, 2, 3})
	r2 := buildRecord(t, "IU", "ANMO", 2, []int32{4, 5, 6})
	r3 := buildRecord(t, "IU", "ANMO", 3, []int32{7, 8, 9})

	stream := append(append(append([]byte{}, r1...), r2...), r3...)

	rd, err := New(bytes.NewReader(stream), nil, Options{WantSamples: true})
	require.NoError(t, err)

	var got [][]int32
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, rec.Samples.Int32)
	}

	require.Equal(t, [][]int32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, got)
	require.Equal(t, 3, rd.Count())
}

func TestReaderCloseIsIdempotentAndClearsState(t *testing.T) {
	r1 := buildRecord(t, "IU", "ANMO", 1, []int32{1, 2, 3})

	rd, err := New(bytes.NewReader(r1), nil, Options{WantSamples: true})
	require.NoError(t, err)

	require.NoError(t, rd.Close())
	require.NoError(t, rd.Close())
	require.Nil(t, rd.src)
	require.Equal(t, 0, rd.reclen)
}

func TestReaderRejectsNonSeedStream(t *testing.T) {
	rd, err := New(bytes.NewReader([]byte("not a mseed stream at all, just junk bytes padded out")), nil, Options{})
	require.NoError(t, err)

	_, err = rd.Next()
	require.ErrorIs(t, err, errs.ErrNotSeed)
}

func TestReaderSkipsNonDataWhenConfigured(t *testing.T) {
	r1 := buildRecord(t, "IU", "ANMO", 1, []int32{1, 2, 3})
	junk := make([]byte, 512) // all zeros: fails validateSignature -> ErrNotSeed
	r2 := buildRecord(t, "IU", "ANMO", 2, []int32{4, 5, 6})

	stream := append(append(append([]byte{}, r1...), junk...), r2...)

	rd, err := New(bytes.NewReader(stream), nil, Options{SkipNotData: true, WantSamples: true})
	require.NoError(t, err)

	rec1, err := rd.Next()
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, rec1.Samples.Int32)

	rec2, err := rd.Next()
	require.NoError(t, err)
	require.Equal(t, []int32{4, 5, 6}, rec2.Samples.Int32)
}

func TestReaderWithoutSkipPropagatesNonSeedError(t *testing.T) {
	r1 := buildRecord(t, "IU", "ANMO", 1, []int32{1, 2, 3})
	junk := make([]byte, 512)

	stream := append(append([]byte{}, r1...), junk...)

	rd, err := New(bytes.NewReader(stream), nil, Options{WantSamples: true})
	require.NoError(t, err)

	_, err = rd.Next()
	require.NoError(t, err)

	_, err = rd.Next()
	require.ErrorIs(t, err, errs.ErrNotSeed)
}

func TestFindReclenFromBlockette1000(t *testing.T) {
	r1 := buildRecord(t, "IU", "ANMO", 1, []int32{1, 2, 3})

	rl, ok := findReclen(r1)
	require.True(t, ok)
	require.Equal(t, 512, rl)
}

func TestHasValidSignature(t *testing.T) {
	require.True(t, hasValidSignature([]byte("000001D \x00\x00\x00\x00")))
	require.False(t, hasValidSignature([]byte("XXXXXXD \x00\x00\x00\x00")))
	require.False(t, hasValidSignature([]byte("short")))
}
