// Package hptime implements the high-precision epoch time and binary
// calendar time representations used throughout the Mini-SEED format.
package hptime

import (
	"fmt"
	"time"

	"github.com/geokit/mseed2sac/endian"
)

// Modulus is the number of Time ticks per second: 1 tick = 1 microsecond.
const Modulus int64 = 1000000

// Error is the sentinel value returned by conversions that fail; it
// mirrors libmseed's HPTERROR (the minimum representable 64-bit tick count).
const Error Time = Time(-9223372036854775808)

// Time is a signed 64-bit count of ticks (1 tick = 1/1,000,000 s) since the
// Unix epoch, matching the wire encoding used by blockette 1001 and the
// in-memory representation used by the trace assembler.
type Time int64

// FromUnix builds a Time from a standard library time.Time, truncating to
// microsecond resolution.
func FromUnix(t time.Time) Time {
	return Time(t.Unix()*Modulus + int64(t.Nanosecond())/1000)
}

// ToUnix converts a Time back to a UTC time.Time.
func (t Time) ToUnix() time.Time {
	sec := int64(t) / Modulus
	rem := int64(t) % Modulus
	if rem < 0 {
		rem += Modulus
		sec--
	}

	return time.Unix(sec, rem*1000).UTC()
}

// Add returns t shifted by d.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d.Microseconds())
}

// Sub returns the duration between two Time values.
func (t Time) Sub(o Time) time.Duration {
	return time.Duration(int64(t)-int64(o)) * time.Microsecond
}

// AddSeconds returns t shifted by the given number of seconds, which may be
// fractional (used for sample-interval arithmetic).
func (t Time) AddSeconds(seconds float64) Time {
	return t + Time(seconds*float64(Modulus))
}

// String renders an ISO-8601-like timestamp with microsecond precision.
func (t Time) String() string {
	return t.ToUnix().Format("2006-01-02T15:04:05.000000")
}

// BTime is the 10-byte SEED binary time structure embedded in the fixed
// section data header and several blockettes: a 4-digit year, day-of-year,
// hour, minute, second, a one-byte padding field, and a fractional-second
// field in units of 1/10000 second.
type BTime struct {
	Year   uint16
	Day    uint16 // 1-366
	Hour   uint8
	Min    uint8
	Sec    uint8
	Unused uint8
	Fract  uint16 // 1/10000 of a second
}

const btimeSize = 10

// ParseBTime decodes a 10-byte BTime field using the given byte order.
func ParseBTime(b []byte, order endian.EndianEngine) (BTime, error) {
	if len(b) < btimeSize {
		return BTime{}, fmt.Errorf("btime: need %d bytes, got %d", btimeSize, len(b))
	}

	return BTime{
		Year:   order.Uint16(b[0:2]),
		Day:    order.Uint16(b[2:4]),
		Hour:   b[4],
		Min:    b[5],
		Sec:    b[6],
		Unused: b[7],
		Fract:  order.Uint16(b[8:10]),
	}, nil
}

// PutBTime encodes bt into b[0:10] using the given byte order.
func PutBTime(b []byte, bt BTime, order endian.EndianEngine) {
	order.PutUint16(b[0:2], bt.Year)
	order.PutUint16(b[2:4], bt.Day)
	b[4] = bt.Hour
	b[5] = bt.Min
	b[6] = bt.Sec
	b[7] = bt.Unused
	order.PutUint16(b[8:10], bt.Fract)
}

// LooksSane reports whether the year field falls within the range used to
// detect byte order: a correctly-swapped record's start time always yields
// a plausible calendar year, while a byte-order mismatch produces nonsense.
func (bt BTime) LooksSane() bool {
	return bt.Year >= 1920 && bt.Year <= 2020
}

// ToTime converts a BTime to a high-precision Time, truncating fractional
// seconds to the BTime's native 1/10000 second precision.
func (bt BTime) ToTime() (Time, error) {
	if bt.Day < 1 || bt.Day > 366 {
		return Error, fmt.Errorf("btime: day-of-year %d out of range", bt.Day)
	}

	t := time.Date(int(bt.Year), time.January, 1, int(bt.Hour), int(bt.Min), int(bt.Sec), 0, time.UTC)
	t = t.AddDate(0, 0, int(bt.Day)-1)

	base := FromUnix(t)

	return base + Time(int64(bt.Fract)*(Modulus/10000)), nil
}

// FromTime converts a Time to a BTime, truncating (not rounding) beyond
// 1/10000 second precision as libmseed does.
func FromTime(t Time) BTime {
	u := t.ToUnix()
	fract := (int64(t) % Modulus)
	if fract < 0 {
		fract += Modulus
	}

	return BTime{
		Year:  uint16(u.Year()),
		Day:   uint16(u.YearDay()),
		Hour:  uint8(u.Hour()),
		Min:   uint8(u.Minute()),
		Sec:   uint8(u.Second()),
		Fract: uint16(fract / (Modulus / 10000)),
	}
}
