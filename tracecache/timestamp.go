package tracecache

import (
	"encoding/binary"

	"github.com/geokit/mseed2sac/hptime"
)

// encodeTimestamps writes one delta-of-delta, zigzag+varint byte run for
// the per-sample tick timestamps implied by start, rate, and count. Since
// Mini-SEED segments are evenly sampled, every second delta is identical
// (1/rate in ticks) and collapses to a run of zero-valued deltas-of-deltas
// after the first two samples.
func encodeTimestamps(start hptime.Time, rate float64, count int) []byte {
	if count == 0 {
		return nil
	}

	ticks := make([]int64, count)
	ticks[0] = int64(start)
	if rate > 0 {
		period := float64(hptime.Modulus) / rate
		for i := 1; i < count; i++ {
			ticks[i] = ticks[0] + int64(float64(i)*period)
		}
	}

	buf := make([]byte, 0, count*2)
	buf = appendVarint(buf, ticks[0])

	var prevDelta int64
	if count > 1 {
		prevDelta = ticks[1] - ticks[0]
		buf = appendVarint(buf, prevDelta)
	}

	for i := 2; i < count; i++ {
		delta := ticks[i] - ticks[i-1]
		dod := delta - prevDelta
		buf = appendVarint(buf, dod)
		prevDelta = delta
	}

	return buf
}

// decodeTimestamps is the inverse of encodeTimestamps.
func decodeTimestamps(data []byte, count int) []int64 {
	if count == 0 {
		return nil
	}

	ticks := make([]int64, count)
	pos := 0

	v, n := readVarint(data[pos:])
	ticks[0] = v
	pos += n

	if count == 1 {
		return ticks
	}

	delta, n := readVarint(data[pos:])
	pos += n
	ticks[1] = ticks[0] + delta

	for i := 2; i < count; i++ {
		dod, n := readVarint(data[pos:])
		pos += n
		delta += dod
		ticks[i] = ticks[i-1] + delta
	}

	return ticks
}

func appendVarint(buf []byte, v int64) []byte {
	zz := uint64((v << 1) ^ (v >> 63))
	tmp := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(tmp, zz)

	return append(buf, tmp[:n]...)
}

func readVarint(data []byte) (int64, int) {
	zz, n := binary.Uvarint(data)
	v := int64(zz>>1) ^ -int64(zz&1)

	return v, n
}
