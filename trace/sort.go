package trace

import "sort"

// Sort orders segments by srcname ascending, then sample rate ascending,
// then start time ascending, then end time descending.
func Sort(col *Collection) {
	sort.SliceStable(col.Segments, func(i, j int) bool {
		a, b := col.Segments[i], col.Segments[j]

		if a.SourceName() != b.SourceName() {
			return a.SourceName() < b.SourceName()
		}
		if a.SampleRate != b.SampleRate {
			return a.SampleRate < b.SampleRate
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}

		return a.End > b.End
	})
}
