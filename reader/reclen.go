package reader

import "github.com/geokit/mseed2sac/seed"

// findReclen checks whether buf begins with a valid Mini-SEED record and,
// if so, reports the record length carried in its Blockette 1000. It
// reports false when the record has no Blockette 1000.
func findReclen(buf []byte) (int, bool) {
	if len(buf) < seed.FSDHSize {
		return 0, false
	}

	rec, err := seed.Decode(buf, nil, seed.DecodeOptions{WantSamples: false})
	if err != nil {
		return 0, false
	}

	if rec.Blkt1000 != nil {
		return rec.Blkt1000.RecLen(), true
	}

	return 0, false
}

// hasValidSignature checks the first 8 bytes per the fixed-header
// signature rule, independent of byte order.
func hasValidSignature(b []byte) bool {
	if len(b) < 8 {
		return false
	}

	for i := 0; i < 6; i++ {
		if b[i] < '0' || b[i] > '9' {
			return false
		}
	}

	switch b[6] {
	case 'D', 'R', 'Q', 'M':
	default:
		return false
	}

	return b[7] == ' ' || b[7] == 0
}
