package hptime

import "math"

// SampleRate converts a FSDH sample-rate factor/multiplier pair into a
// nominal sample rate in Hz. A positive factor is a rate in Hz; a negative
// factor denotes 1/|factor|. A positive multiplier scales the rate up; a
// negative multiplier divides it.
func SampleRate(factor, multiplier int16) float64 {
	var rate float64

	switch {
	case factor > 0:
		rate = float64(factor)
	case factor < 0:
		rate = -1.0 / float64(factor)
	}

	switch {
	case multiplier > 0:
		rate *= float64(multiplier)
	case multiplier < 0:
		rate = -1.0 * (rate / float64(multiplier))
	}

	return rate
}

// FactorMultiplier derives a SEED sample-rate factor/multiplier pair from a
// nominal sample rate in Hz. Integer rates map directly (factor=rate,
// multiplier=1); fractional rates are approximated as a ratio via continued
// fraction expansion, with the denominator negated to mark it as a divisor.
func FactorMultiplier(rate float64) (factor, multiplier int16, ok bool) {
	if rate < 0.0 || rate > 32727.0 {
		return 0, 0, false
	}

	if math.Abs(rate-math.Trunc(rate)) < 1e-6 {
		f := int16(rate)
		m := int16(0)
		if f != 0 {
			m = 1
		}

		return f, m, true
	}

	num, den := ratApprox(rate, 32727, 1e-12)

	return int16(num), int16(-den), true
}

// ratApprox finds an approximate rational number num/den for real through
// continued-fraction expansion, such that neither |num| nor |den| exceeds
// maxval and |real - num/den| <= precision when achievable.
func ratApprox(real float64, maxval int, precision float64) (num, den int) {
	pos := true
	realj := real
	if real < 0.0 {
		pos = false
		realj = -real
	}

	preal := realj

	bj := int(realj + precision)
	realj = 1 / (realj - float64(bj))

	aj, aj1 := bj, 1
	bjd, bjd1 := 1, 0

	pnum, pden := aj, bjd
	num, den = pnum, pden
	if !pos {
		num = -num
	}

	for math.Abs(preal-float64(aj)/float64(bjd)) > precision && aj < maxval && bjd < maxval {
		aj2, bjd2 := aj1, bjd1
		aj1, bjd1 = aj, bjd

		bj = int(realj + precision)
		realj = 1 / (realj - float64(bj))

		aj = bj*aj1 + aj2
		bjd = bj*bjd1 + bjd2

		num, den = pnum, pden
		if !pos {
			num = -num
		}

		pnum, pden = aj, bjd
	}

	if pnum < maxval && pden < maxval {
		num, den = pnum, pden
		if !pos {
			num = -num
		}
	}

	return num, den
}
