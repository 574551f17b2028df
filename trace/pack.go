package trace

import (
	"github.com/geokit/mseed2sac/seed"
)

// Pack re-encodes every integer-sample segment in the collection in list
// order (float segments are skipped), invoking
// sink for each record produced, advancing each segment's start time and
// shrinking its buffer by the samples actually consumed.
func Pack(col *Collection, recLen int, enc uint8, bigEndian bool, sink seed.Sink) error {
	for _, seg := range col.Segments {
		if seg.SampleType != SampleInt32 {
			// Steim/INT16/INT32 encodings require integer samples; a
			// segment decoded from FLOAT32/FLOAT64 records is written
			// straight to SAC instead of being re-packed as Mini-SEED.
			continue
		}

		tpl := seed.Template{
			Network:    seg.Network,
			Station:    seg.Station,
			Location:   seg.Location,
			Channel:    seg.Channel,
			Quality:    seg.Quality,
			RecLen:     recLen,
			Encoding:   enc,
			BigEndian:  bigEndian,
			SampleRate: seg.SampleRate,
			StartTime:  seg.Start,
		}

		_, consumed, err := seed.Pack(tpl, seg.Samples.Int32, nil, sink)
		if err != nil {
			return err
		}

		if consumed > 0 {
			seg.Samples.Int32 = seg.Samples.Int32[consumed:]
			if seg.SampleRate > 0 {
				seg.Start = seg.Start.AddSeconds(float64(consumed) / seg.SampleRate)
			}
		}
	}

	return nil
}
