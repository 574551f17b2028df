package trace

// Heal repeatedly merges adjacent, mergeable segments (same source,
// rate-tolerable, gap within timeTolerance) until a pass produces no
// merges.
func Heal(col *Collection, timeTolerance, rateTolerance float64) {
	for {
		merged := false

		for i := 0; i < len(col.Segments); i++ {
			for j := i + 1; j < len(col.Segments); j++ {
				a, b := col.Segments[i], col.Segments[j]
				if a.sourceHash != b.sourceHash || a.SourceName() != b.SourceName() {
					continue
				}
				if !rateMatches(a.SampleRate, b.SampleRate, rateTolerance) {
					continue
				}

				tol := timeTolerance
				if tol == -1 {
					tol = a.period() / 2
				}
				if tol == -2 {
					continue
				}

				if spliceIfAdjacent(a, b, tol) {
					col.Segments = append(col.Segments[:j], col.Segments[j+1:]...)
					merged = true
					j--
				}
			}
		}

		if !merged {
			return
		}
	}
}

// spliceIfAdjacent merges b into a if b abuts a's end or start within tol
// seconds, returning true if a merge occurred.
func spliceIfAdjacent(a, b *Segment, tol float64) bool {
	gap := b.Start.Sub(a.End).Seconds()
	if gap >= -tol && gap <= tol {
		appendSegment(a, b)
		a.End = b.End

		return true
	}

	gap = a.Start.Sub(b.End).Seconds()
	if gap >= -tol && gap <= tol {
		prependSegment(a, b)
		a.Start = b.Start

		return true
	}

	return false
}

func appendSegment(a, b *Segment) {
	switch a.SampleType {
	case SampleInt32:
		a.Samples.Int32 = append(a.Samples.Int32, b.Samples.Int32...)
	case SampleFloat32:
		a.Samples.Float32 = append(a.Samples.Float32, b.Samples.Float32...)
	case SampleFloat64:
		a.Samples.Float64 = append(a.Samples.Float64, b.Samples.Float64...)
	}
}

func prependSegment(a, b *Segment) {
	switch a.SampleType {
	case SampleInt32:
		a.Samples.Int32 = append(append([]int32(nil), b.Samples.Int32...), a.Samples.Int32...)
	case SampleFloat32:
		a.Samples.Float32 = append(append([]float32(nil), b.Samples.Float32...), a.Samples.Float32...)
	case SampleFloat64:
		a.Samples.Float64 = append(append([]float64(nil), b.Samples.Float64...), a.Samples.Float64...)
	}
}
