package sac

import "strings"

// writeAlpha renders h and samples in the alphanumeric SAC text variant:
// all float fields at 5/line (%#15.7g), all int fields at 5/line (%10d),
// all string fields verbatim, then the data block at 5 floats/line.
func writeAlpha(h *Header, samples []float32) []byte {
	var b strings.Builder

	floats := h.floatFields()
	writeFloatLines(&b, derefFloats(floats))

	ints := h.intFields()
	writeIntLines(&b, derefInts(ints))

	b.WriteString(padField(h.Kstnm, 8))
	b.WriteString(padField(h.Kevnm, 16))
	b.WriteByte('\n')

	strs := h.strFields()[:len(h.strFields())-1]
	for i := 0; i < len(strs); i += 3 {
		end := i + 3
		if end > len(strs) {
			end = len(strs)
		}
		for _, f := range strs[i:end] {
			b.WriteString(padField(*f, 8))
		}
		b.WriteByte('\n')
	}

	writeFloatLines(&b, toFloat64(samples))

	return []byte(b.String())
}

func derefFloats(fs []*float32) []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = float64(*f)
	}

	return out
}

func derefInts(fs []*int32) []int64 {
	out := make([]int64, len(fs))
	for i, f := range fs {
		out[i] = int64(*f)
	}

	return out
}

func toFloat64(fs []float32) []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = float64(f)
	}

	return out
}

func padField(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}

	return s + strings.Repeat(" ", n-len(s))
}

func writeFloatLines(b *strings.Builder, values []float64) {
	for i, v := range values {
		b.WriteString(formatG(v))
		if (i+1)%5 == 0 {
			b.WriteByte('\n')
		}
	}
	if len(values)%5 != 0 {
		b.WriteByte('\n')
	}
}

func writeIntLines(b *strings.Builder, values []int64) {
	for i, v := range values {
		b.WriteString(formatD(v))
		if (i+1)%5 == 0 {
			b.WriteByte('\n')
		}
	}
	if len(values)%5 != 0 {
		b.WriteByte('\n')
	}
}
