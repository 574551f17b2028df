// Package errs defines the sentinel errors returned across the decoder,
// trace assembler, SAC writer and trace cache. Callers should compare
// against these with errors.Is/errors.As; wrapped errors carry additional
// context via fmt.Errorf("%w: ...", errs.ErrX, ...).
package errs

import "errors"

// Record parsing errors.
var (
	// ErrNotSeed is returned when a record's sequence number field and data
	// header/quality indicator do not look like a Mini-SEED fixed header.
	ErrNotSeed = errors.New("mseed2sac: not a recognizable Mini-SEED record")

	// ErrTruncated is returned when fewer bytes are available than a
	// record's declared length requires.
	ErrTruncated = errors.New("mseed2sac: truncated record")

	// ErrNoBlockette1000 is returned when an operation requires the record
	// length/encoding carried in blockette 1000 and none is present.
	ErrNoBlockette1000 = errors.New("mseed2sac: missing blockette 1000")

	// ErrWrongLength is returned when a blockette's declared length does not
	// match the fixed length for its type, or a record length is not a
	// power of two in the supported range.
	ErrWrongLength = errors.New("mseed2sac: wrong length")

	// ErrOutOfRange is returned when a numeric field (reclen exponent,
	// sample rate factor/multiplier, blockette count) falls outside its
	// valid range.
	ErrOutOfRange = errors.New("mseed2sac: value out of range")

	// ErrUnknownFormat is returned when a record's sample encoding byte maps
	// to no supported codec.
	ErrUnknownFormat = errors.New("mseed2sac: unknown sample encoding")

	// ErrUnknownBlockette names a blockette type with no known fixed length.
	// No function in this module returns it: the blockette walk logs a
	// warning and stops at such an entry.
	ErrUnknownBlockette = errors.New("mseed2sac: unknown blockette type")
)

// Steim codec errors.
var (
	// ErrSteimBadFlag is returned when a Steim frame's control word contains
	// a tag value undefined for the frame's compression variant.
	ErrSteimBadFlag = errors.New("mseed2sac: invalid steim control flag")

	// ErrSteimIntegrityFail is returned by callers that treat a forward/
	// reverse integration constant mismatch as fatal; the decoder itself
	// only warns by default.
	ErrSteimIntegrityFail = errors.New("mseed2sac: steim integrity check failed")
)

// HPTime/BTime errors.
var (
	// ErrInvalidBTime is returned when a BTime's year, day-of-year, or
	// clock fields cannot represent a valid calendar instant.
	ErrInvalidBTime = errors.New("mseed2sac: invalid BTime value")
)

// Trace assembly errors.
var (
	// ErrHashCollision is returned when two distinct source names hash to
	// the same 64-bit ID and the caller has no way to disambiguate them.
	ErrHashCollision = errors.New("mseed2sac: hash collision")

	// ErrInvalidSourceName is returned when an empty source name is tracked.
	ErrInvalidSourceName = errors.New("mseed2sac: invalid source name")

	// ErrSourceAlreadyStarted is returned when the same source name is
	// tracked twice without an intervening reset.
	ErrSourceAlreadyStarted = errors.New("mseed2sac: source already tracked")

	// ErrRateMismatch is returned when a record's sample type (int32,
	// float32 or float64) differs from that of the segment it would
	// otherwise extend.
	ErrRateMismatch = errors.New("mseed2sac: sample rate mismatch")
)

// SAC writer errors.
var (
	// ErrEmptySegment names a segment with zero samples. No function in
	// this module returns it.
	ErrEmptySegment = errors.New("mseed2sac: segment has no samples")

	// ErrHeaderFieldTooLong names a text value that does not fit its
	// fixed-width SAC header field. No function in this module returns it.
	ErrHeaderFieldTooLong = errors.New("mseed2sac: value exceeds SAC header field width")
)

// Archive (ZIP) writer errors.
var (
	// ErrArchiveClosed is returned when a new entry is created after Close.
	ErrArchiveClosed = errors.New("mseed2sac: archive already closed")

	// ErrEntryOpen is returned when a new entry is created before the
	// previous entry's writer has been closed.
	ErrEntryOpen = errors.New("mseed2sac: previous archive entry still open")
)

// Trace-cache errors.
var (
	// ErrCacheBadMagic is returned when a trace-cache stream does not begin
	// with the expected magic bytes.
	ErrCacheBadMagic = errors.New("mseed2sac: invalid trace-cache magic")

	// ErrCacheVersion is returned when a trace-cache stream declares a
	// format version newer than this build understands.
	ErrCacheVersion = errors.New("mseed2sac: unsupported trace-cache version")

	// ErrCacheCorrupt names a trace-cache payload that cannot be decoded.
	// The format carries no checksums, and no function in this module
	// returns it.
	ErrCacheCorrupt = errors.New("mseed2sac: trace-cache payload corrupt")
)
