// Package seed implements the Mini-SEED fixed section data header,
// blockette chain, and whole-record decode/encode orchestration.
package seed

import (
	"strings"

	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/hptime"
)

// FSDHSize is the fixed 48-byte length of the fixed section data header.
const FSDHSize = 48

// FSDH is the Mini-SEED fixed section data header: the first 48 bytes of
// every record.
type FSDH struct {
	SequenceNumber  [6]byte // ASCII digits
	DataQuality     byte    // 'D', 'R', 'Q', or 'M'
	Reserved        byte
	Station         [5]byte
	Location        [2]byte
	Channel         [3]byte
	Network         [2]byte
	StartTime       hptime.BTime
	NumSamples      uint16
	SampRateFact    int16
	SampRateMult    int16
	ActivityFlags   byte
	IOFlags         byte
	DataQualFlags   byte
	NumBlockettes   byte
	TimeCorrect     int32 // units of 1/10000 s
	DataOffset      uint16
	BlocketteOffset uint16
}

// ActivityTimeCorrectionApplied is bit 1 (value 2) of ActivityFlags: when
// set, TimeCorrect has already been applied to StartTime and must not be
// applied again when deriving a record's true start time.
const ActivityTimeCorrectionApplied = 0x02

// ParseFSDH decodes the first 48 bytes of record into an FSDH using order.
func ParseFSDH(b []byte, order endian.EndianEngine) (FSDH, error) {
	if len(b) < FSDHSize {
		return FSDH{}, errs.ErrTruncated
	}

	var h FSDH
	copy(h.SequenceNumber[:], b[0:6])
	h.DataQuality = b[6]
	h.Reserved = b[7]
	copy(h.Station[:], b[8:13])
	copy(h.Location[:], b[13:15])
	copy(h.Channel[:], b[15:18])
	copy(h.Network[:], b[18:20])

	bt, err := hptime.ParseBTime(b[20:30], order)
	if err != nil {
		return FSDH{}, err
	}
	h.StartTime = bt

	h.NumSamples = order.Uint16(b[30:32])
	h.SampRateFact = int16(order.Uint16(b[32:34]))
	h.SampRateMult = int16(order.Uint16(b[34:36]))
	h.ActivityFlags = b[36]
	h.IOFlags = b[37]
	h.DataQualFlags = b[38]
	h.NumBlockettes = b[39]
	h.TimeCorrect = int32(order.Uint32(b[40:44]))
	h.DataOffset = order.Uint16(b[44:46])
	h.BlocketteOffset = order.Uint16(b[46:48])

	return h, nil
}

// Bytes serializes h into exactly FSDHSize bytes using order.
func (h FSDH) Bytes(order endian.EndianEngine) []byte {
	b := make([]byte, FSDHSize)

	copy(b[0:6], h.SequenceNumber[:])
	b[6] = h.DataQuality
	b[7] = h.Reserved
	copy(b[8:13], h.Station[:])
	copy(b[13:15], h.Location[:])
	copy(b[15:18], h.Channel[:])
	copy(b[18:20], h.Network[:])

	hptime.PutBTime(b[20:30], h.StartTime, order)

	order.PutUint16(b[30:32], h.NumSamples)
	order.PutUint16(b[32:34], uint16(h.SampRateFact))
	order.PutUint16(b[34:36], uint16(h.SampRateMult))
	b[36] = h.ActivityFlags
	b[37] = h.IOFlags
	b[38] = h.DataQualFlags
	b[39] = h.NumBlockettes
	order.PutUint32(b[40:44], uint32(h.TimeCorrect))
	order.PutUint16(b[44:46], h.DataOffset)
	order.PutUint16(b[46:48], h.BlocketteOffset)

	return b
}

// SourceName returns the "net.sta.loc.chan" identifier for this header,
// with fixed-width fields trimmed of their trailing ASCII space padding.
func (h FSDH) SourceName() string {
	return strings.Join([]string{
		trimField(h.Network[:]),
		trimField(h.Station[:]),
		trimField(h.Location[:]),
		trimField(h.Channel[:]),
	}, ".")
}

func trimField(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}
