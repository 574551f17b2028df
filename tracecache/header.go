package tracecache

import (
	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
)

// Magic identifies a tracecache file: "TRCC" in ASCII.
var Magic = [4]byte{'T', 'R', 'C', 'C'}

const Version uint16 = 1

// Flags bits. Bit 0 records whether the timestamp/value payloads are
// compressed; bits 1-3 hold the format.CompressionType used when bit 0 is
// set, so a reader never has to guess the codec.
const (
	FlagCompressed = 1 << 0
	codecShift     = 1
	codecMask      = 0x7 << codecShift
)

// EncodeCompressionFlags packs whether compression was used and which
// codec into a Header.Flags value.
func EncodeCompressionFlags(compressed bool, codec uint8) uint16 {
	if !compressed {
		return 0
	}

	return FlagCompressed | (uint16(codec)<<codecShift)&codecMask
}

// DecodeCompressionFlags is the inverse of EncodeCompressionFlags.
func DecodeCompressionFlags(flags uint16) (compressed bool, codec uint8) {
	compressed = flags&FlagCompressed != 0
	codec = uint8((flags & codecMask) >> codecShift)

	return compressed, codec
}

// HeaderSize is the fixed 32-byte header length.
const HeaderSize = 32

// Header is the fixed leading block of a tracecache file.
type Header struct {
	Magic         [4]byte
	Version       uint16
	Flags         uint16
	StartTick     int64 // hptime.Time of the earliest segment start, as raw ticks
	SegmentCount  uint32
	IndexOffset   uint32
	TimeOffset    uint32
	ValueOffset   uint32
}

// Bytes serializes h into exactly HeaderSize bytes, little-endian.
func (h Header) Bytes() []byte {
	order := endian.GetLittleEndianEngine()
	b := make([]byte, HeaderSize)

	copy(b[0:4], h.Magic[:])
	order.PutUint16(b[4:6], h.Version)
	order.PutUint16(b[6:8], h.Flags)
	order.PutUint64(b[8:16], uint64(h.StartTick))
	order.PutUint32(b[16:20], h.SegmentCount)
	order.PutUint32(b[20:24], h.IndexOffset)
	order.PutUint32(b[24:28], h.TimeOffset)
	order.PutUint32(b[28:32], h.ValueOffset)

	return b
}

// ParseHeader decodes the first HeaderSize bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errs.ErrTruncated
	}

	var h Header
	copy(h.Magic[:], b[0:4])
	if h.Magic != Magic {
		return Header{}, errs.ErrCacheBadMagic
	}

	order := endian.GetLittleEndianEngine()
	h.Version = order.Uint16(b[4:6])
	if h.Version != Version {
		return Header{}, errs.ErrCacheVersion
	}

	h.Flags = order.Uint16(b[6:8])
	h.StartTick = int64(order.Uint64(b[8:16]))
	h.SegmentCount = order.Uint32(b[16:20])
	h.IndexOffset = order.Uint32(b[20:24])
	h.TimeOffset = order.Uint32(b[24:28])
	h.ValueOffset = order.Uint32(b[28:32])

	return h, nil
}

// IndexEntrySize is the fixed 24-byte length of one index entry.
const IndexEntrySize = 24

// SampleTypeTag identifies which trace.SampleType an entry's value
// payload holds, without this package importing trace.
type SampleTypeTag uint8

const (
	SampleTagInt32   SampleTypeTag = 0
	SampleTagFloat32 SampleTypeTag = 1
	SampleTagFloat64 SampleTypeTag = 2
)

// IndexEntry locates one segment's timestamp and value payload slices.
// TimeLen and ValueLen record the on-disk (possibly compressed) byte
// length of each payload; the uncompressed value size is always
// recoverable as SampleCount times the fixed width implied by SampleType.
type IndexEntry struct {
	SourceHash  uint64
	SampleCount uint32
	SampleType  SampleTypeTag
	RateClass   uint8 // index into the file's sample-rate table (unused, reserved)
	TimeLen     uint32
	ValueLen    uint32
}

// ValueWidth returns the on-wire width in bytes of one uncompressed
// sample of t.
func (t SampleTypeTag) ValueWidth() int {
	switch t {
	case SampleTagInt32, SampleTagFloat32:
		return 4
	case SampleTagFloat64:
		return 8
	default:
		return 0
	}
}

// Bytes serializes e into exactly IndexEntrySize bytes, little-endian.
func (e IndexEntry) Bytes() []byte {
	order := endian.GetLittleEndianEngine()
	b := make([]byte, IndexEntrySize)

	order.PutUint64(b[0:8], e.SourceHash)
	order.PutUint32(b[8:12], e.SampleCount)
	b[12] = byte(e.SampleType)
	b[13] = e.RateClass
	// b[14:16] reserved
	order.PutUint32(b[16:20], e.TimeLen)
	order.PutUint32(b[20:24], e.ValueLen)

	return b
}

// ParseIndexEntry decodes one IndexEntrySize-byte slice.
func ParseIndexEntry(b []byte) (IndexEntry, error) {
	if len(b) < IndexEntrySize {
		return IndexEntry{}, errs.ErrTruncated
	}

	order := endian.GetLittleEndianEngine()

	return IndexEntry{
		SourceHash:  order.Uint64(b[0:8]),
		SampleCount: order.Uint32(b[8:12]),
		SampleType:  SampleTypeTag(b[12]),
		RateClass:   b[13],
		TimeLen:     order.Uint32(b[16:20]),
		ValueLen:    order.Uint32(b[20:24]),
	}, nil
}
