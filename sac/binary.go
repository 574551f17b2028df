package sac

import (
	"math"

	"github.com/geokit/mseed2sac/endian"
)

// Bytes serializes h into exactly HeaderLen bytes using order (host,
// little-endian, or big-endian, per the caller's chosen output variant).
func (h *Header) Bytes(order endian.EndianEngine) []byte {
	buf := make([]byte, HeaderLen)
	off := 0

	for _, f := range h.floatFields() {
		order.PutUint32(buf[off:off+4], math.Float32bits(*f))
		off += 4
	}

	for _, f := range h.intFields() {
		order.PutUint32(buf[off:off+4], uint32(*f))
		off += 4
	}

	writeText(buf[off:off+8], h.Kstnm)
	off += 8
	writeText(buf[off:off+16], h.Kevnm)
	off += 16

	for _, f := range h.strFields()[:len(h.strFields())-1] {
		writeText(buf[off:off+8], *f)
		off += 8
	}

	return buf
}

func writeText(dst []byte, s string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}

// DataBytes serializes one float32 data block (Y or, for spectral/XY
// files, X then Y) using order.
func DataBytes(samples []float32, order endian.EndianEngine) []byte {
	buf := make([]byte, len(samples)*4)
	for i, v := range samples {
		order.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}

	return buf
}
