// Package steim implements the Steim-1 and Steim-2 variable-bit-width
// first-difference codecs used by Mini-SEED sample encodings 10 and 11.
package steim

import (
	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/errs"
)

// FrameSize is the fixed size in bytes of one Steim frame.
const FrameSize = 64

// wordsPerFrame is FrameSize/4: one control word plus 15 work slots.
const wordsPerFrame = 16

// Steim1MaxSamplesPerFrame and Steim2MaxSamplesPerFrame are the maximum
// number of differences a single frame can carry, used for per-record
// sample-capacity estimates.
const (
	Steim1MaxSamplesPerFrame = 60  // 15 work slots * 4 diffs/slot
	Steim2MaxSamplesPerFrame = 105 // 15 work slots * 7 diffs/slot
)

// Version selects Steim-1 or Steim-2 tag semantics.
type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

func signExtend(v uint32, width int) int32 {
	mask := uint32(1)<<uint(width) - 1
	v &= mask
	if v&(1<<uint(width-1)) != 0 {
		v |= ^mask
	}

	return int32(v)
}

func extractFields(body uint32, bodyBits int, widths []int) []int32 {
	out := make([]int32, len(widths))
	pos := bodyBits
	for i, w := range widths {
		pos -= w
		v := (body >> uint(pos)) & (uint32(1)<<uint(w) - 1)
		out[i] = signExtend(v, w)
	}

	return out
}

// tagDiffs returns the signed differences packed in one non-reserved work
// word, given its 2-bit tag and Steim version.
func tagDiffs(word uint32, tag uint32, ver Version) ([]int32, error) {
	switch tag {
	case 0:
		return nil, nil
	case 1:
		return extractFields(word, 32, []int{8, 8, 8, 8}), nil
	case 2:
		if ver == V1 {
			return extractFields(word, 32, []int{16, 16}), nil
		}
		disc := (word >> 30) & 0x3
		body := word & 0x3FFFFFFF
		switch disc {
		case 1:
			return extractFields(body, 30, []int{30}), nil
		case 2:
			return extractFields(body, 30, []int{15, 15}), nil
		case 3:
			return extractFields(body, 30, []int{10, 10, 10}), nil
		default:
			return nil, errs.ErrSteimBadFlag
		}
	case 3:
		if ver == V1 {
			return extractFields(word, 32, []int{32}), nil
		}
		disc := (word >> 30) & 0x3
		body := word & 0x3FFFFFFF
		switch disc {
		case 0:
			return extractFields(body, 30, []int{6, 6, 6, 6, 6}), nil
		case 1:
			return extractFields(body, 30, []int{5, 5, 5, 5, 5, 5}), nil
		case 2:
			return extractFields(body, 28, []int{4, 4, 4, 4, 4, 4, 4}), nil
		default:
			return nil, errs.ErrSteimBadFlag
		}
	default:
		return nil, errs.ErrSteimBadFlag
	}
}

// Decode reconstructs count int32 samples from a Steim-1 or Steim-2 data
// area. A non-nil logger receives a warning (not an error) if the final
// reconstructed sample does not match the declared reverse integration
// constant Xn.
func Decode(data []byte, count int, order endian.EndianEngine, ver Version, logger config.Logger) ([]int32, error) {
	if count == 0 {
		return nil, nil
	}

	diffs := make([]int32, 0, count+Steim2MaxSamplesPerFrame)
	var x0, xn int32
	haveX0 := false

	nFrames := len(data) / FrameSize
	for f := 0; f < nFrames && len(diffs) < count; f++ {
		frame := data[f*FrameSize : (f+1)*FrameSize]
		control := order.Uint32(frame[0:4])

		for w := 1; w < wordsPerFrame; w++ {
			tag := (control >> uint(30-2*w)) & 0x3
			word := order.Uint32(frame[w*4 : w*4+4])

			if f == 0 && w == 1 {
				x0 = int32(word)
				haveX0 = true

				continue
			}
			if f == 0 && w == 2 {
				xn = int32(word)

				continue
			}

			ds, err := tagDiffs(word, tag, ver)
			if err != nil {
				return nil, err
			}

			diffs = append(diffs, ds...)
		}
	}

	if !haveX0 {
		return nil, errs.ErrTruncated
	}
	if len(diffs) > count-1 {
		diffs = diffs[:count-1]
	}

	samples := make([]int32, count)
	prev := x0
	samples[0] = x0
	for i := 1; i < count; i++ {
		if i-1 < len(diffs) {
			prev += diffs[i-1]
		}
		samples[i] = prev
	}

	if count > 0 && samples[count-1] != xn && logger != nil {
		logger.Warnf("steim: reconstructed final sample %d does not match Xn %d", samples[count-1], xn)
	}

	return samples, nil
}

// packCandidate is one (values-per-word, bit-width) grouping tried by the
// greedy encoder, most compact (most values per word) first.
type packCandidate struct {
	n     int
	width int
	tag   uint32
	disc  uint32 // only meaningful for Steim-2 tags 2 and 3
}

func candidates(ver Version) []packCandidate {
	if ver == V1 {
		return []packCandidate{
			{n: 4, width: 8, tag: 1},
			{n: 2, width: 16, tag: 2},
			{n: 1, width: 32, tag: 3},
		}
	}

	return []packCandidate{
		{n: 7, width: 4, tag: 3, disc: 2},
		{n: 6, width: 5, tag: 3, disc: 1},
		{n: 5, width: 6, tag: 3, disc: 0},
		{n: 4, width: 8, tag: 1},
		{n: 3, width: 10, tag: 2, disc: 3},
		{n: 2, width: 15, tag: 2, disc: 2},
		{n: 1, width: 30, tag: 2, disc: 1},
	}
}

func fits(v int32, width int) bool {
	lo := int32(-1) << uint(width-1)
	hi := -lo - 1

	return v >= lo && v <= hi
}

func packWord(c packCandidate, diffs []int32) uint32 {
	var body uint32
	for i := 0; i < c.n; i++ {
		var v int32
		if i < len(diffs) {
			v = diffs[i]
		}
		body = (body << uint(c.width)) | (uint32(v) & (uint32(1)<<uint(c.width) - 1))
	}

	if c.tag == 1 || (c.width == 16 || c.width == 32) {
		return body
	}

	// Steim-2 packed word: discriminator occupies the top 2 bits, body the
	// low n*width bits (30, or 28 for 7x4 with bits 29-28 left zero).
	return (c.disc << 30) | body
}

func pickCandidate(ver Version, diffs []int32) (packCandidate, int) {
	for _, c := range candidates(ver) {
		n := c.n
		if n > len(diffs) {
			n = len(diffs)
		}

		ok := true
		for i := 0; i < n; i++ {
			if !fits(diffs[i], c.width) {
				ok = false

				break
			}
		}

		if ok {
			return c, n
		}
	}

	// Fallback: widest single-value tag available for this version.
	cs := candidates(ver)

	return cs[len(cs)-1], 1
}

// Encode packs samples into a Steim-1 or Steim-2 data area of exactly
// maxFrames*FrameSize bytes, returning the frames actually used and the
// number of samples packed (<= len(samples), capped by capacity).
func Encode(samples []int32, order endian.EndianEngine, ver Version, maxFrames int) (data []byte, packed int) {
	if len(samples) == 0 || maxFrames <= 0 {
		return nil, 0
	}

	data = make([]byte, maxFrames*FrameSize)

	diffs := make([]int32, len(samples))
	for i := 1; i < len(samples); i++ {
		diffs[i] = samples[i] - samples[i-1]
	}

	pos := 1 // diffs[0] is always 0 (D0) and is never packed; x0 seeds reconstruction
	frame := 0
	lastPacked := 0

	for frame < maxFrames && pos < len(diffs) {
		control := uint32(0)
		frameBuf := data[frame*FrameSize : (frame+1)*FrameSize]

		firstWork := 1
		if frame == 0 {
			order.PutUint32(frameBuf[4:8], uint32(samples[0]))
			control |= 1 << uint(30-2*1)
			firstWork = 3
		}

		for w := firstWork; w < wordsPerFrame && pos < len(diffs); w++ {
			remaining := diffs[pos:]
			c, n := pickCandidate(ver, remaining)
			word := packWord(c, remaining)
			order.PutUint32(frameBuf[w*4:w*4+4], word)
			control |= c.tag << uint(30-2*w)

			pos += n
			lastPacked += n
			if lastPacked >= len(samples)-1 {
				lastPacked = len(samples) - 1
			}
		}

		order.PutUint32(frameBuf[0:4], control)
		frame++
	}

	xn := samples[len(samples)-1]
	if lastPacked < len(samples)-1 {
		xn = samples[lastPacked]
	}
	if frame == 0 {
		// Single-frame record with no diffs packed (e.g. one sample total):
		// still emit a minimal first frame carrying X0/Xn.
		frameBuf := data[0:FrameSize]
		order.PutUint32(frameBuf[4:8], uint32(samples[0]))
		order.PutUint32(frameBuf[0:4], 1<<uint(30-2*1))
		frame = 1
	}
	order.PutUint32(data[8:12], uint32(xn))

	packedCount := lastPacked + 1
	if packedCount > len(samples) {
		packedCount = len(samples)
	}

	return data[:frame*FrameSize], packedCount
}
