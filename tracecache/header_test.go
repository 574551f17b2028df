package tracecache

import (
	"testing"

	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/format"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Magic:        Magic,
		Version:      Version,
		Flags:        EncodeCompressionFlags(true, uint8(format.CompressionZstd)),
		StartTick:    1234567890,
		SegmentCount: 3,
		IndexOffset:  32,
		TimeOffset:   80,
		ValueOffset:  200,
	}

	got, err := ParseHeader(h.Bytes())
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestParseHeaderBadMagic(t *testing.T) {
	b := Header{Magic: [4]byte{'X', 'X', 'X', 'X'}, Version: Version}.Bytes()

	_, err := ParseHeader(b)
	require.ErrorIs(t, err, errs.ErrCacheBadMagic)
}

func TestParseHeaderBadVersion(t *testing.T) {
	b := Header{Magic: Magic, Version: Version + 1}.Bytes()

	_, err := ParseHeader(b)
	require.ErrorIs(t, err, errs.ErrCacheVersion)
}

func TestParseHeaderTruncated(t *testing.T) {
	_, err := ParseHeader(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestCompressionFlagsRoundTrip(t *testing.T) {
	flags := EncodeCompressionFlags(true, uint8(format.CompressionLZ4))
	compressed, codec := DecodeCompressionFlags(flags)
	require.True(t, compressed)
	require.Equal(t, uint8(format.CompressionLZ4), codec)

	flags = EncodeCompressionFlags(false, uint8(format.CompressionLZ4))
	compressed, _ = DecodeCompressionFlags(flags)
	require.False(t, compressed)
}

func TestIndexEntryRoundTrip(t *testing.T) {
	e := IndexEntry{
		SourceHash:  0xdeadbeefcafef00d,
		SampleCount: 1000,
		SampleType:  SampleTagFloat64,
		RateClass:   2,
		TimeLen:     512,
		ValueLen:    8000,
	}

	got, err := ParseIndexEntry(e.Bytes())
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestIndexEntryValueWidth(t *testing.T) {
	require.Equal(t, 4, SampleTagInt32.ValueWidth())
	require.Equal(t, 4, SampleTagFloat32.ValueWidth())
	require.Equal(t, 8, SampleTagFloat64.ValueWidth())
}

func TestParseIndexEntryTruncated(t *testing.T) {
	_, err := ParseIndexEntry(make([]byte, 4))
	require.ErrorIs(t, err, errs.ErrTruncated)
}
