// Package trace assembles decoded Mini-SEED records into contiguous
// sample segments keyed by source identity and sample rate, and provides
// sort/heal/pack operations over the resulting collection.
package trace

import (
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/hptime"
	"github.com/geokit/mseed2sac/internal/hash"
	"github.com/geokit/mseed2sac/seed"
)

// SampleType discriminates which buffer of Segment.Samples is populated.
type SampleType int

const (
	SampleInt32 SampleType = iota
	SampleFloat32
	SampleFloat64
)

// Whence reports how Insert placed a record relative to an existing
// segment.
type Whence int

const (
	WhenceNone Whence = iota
	WhenceAppend
	WhencePrepend
	WhenceNew
)

// Segment is a run of contiguous samples from one source at one sample
// rate.
type Segment struct {
	Network, Station, Location, Channel string
	Quality                             byte // 0 when quality separation is off
	SampleRate                          float64
	SampleType                          SampleType

	Start, End hptime.Time

	Samples seed.Samples

	sourceHash uint64
}

// SourceName returns the "net.sta.loc.chan" identifier for s.
func (s *Segment) SourceName() string {
	return s.Network + "." + s.Station + "." + s.Location + "." + s.Channel
}

func (s *Segment) period() float64 {
	if s.SampleRate <= 0 {
		return 0
	}

	return 1.0 / s.SampleRate
}

// Collection is an ordered set of segments. Each segment stores a hash of
// its source name, which Insert compares before the full name while it
// scans the segments in order.
type Collection struct {
	Segments []*Segment

	// QualitySeparated controls whether Quality participates in the
	// source-identity key used by Insert.
	QualitySeparated bool
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

const (
	defaultRateTolerance = 0.0001
)

func rateMatches(r1, r2, tolerance float64) bool {
	if tolerance == -2 {
		return true
	}
	if tolerance == -1 {
		tolerance = defaultRateTolerance
	}
	if r1 == 0 || r2 == 0 {
		return r1 == r2
	}

	diff := 1.0 - r1/r2
	if diff < 0 {
		diff = -diff
	}

	return diff < tolerance
}

// recordWindow is the minimal view of a decoded record Insert needs.
type recordWindow struct {
	rec   *seed.Record
	start hptime.Time
	end   hptime.Time
}

func windowOf(rec *seed.Record) recordWindow {
	return recordWindow{rec: rec, start: rec.StartTime, end: rec.EndTime}
}

// Insert places one decoded record into the collection, appending or
// prepending to a matching segment, or creating a new one. timeTolerance
// is in seconds; -1 selects half the sample period, -2 disables merging by
// time (the record never extends an existing segment and always starts a
// new one).
func Insert(col *Collection, rec *seed.Record, timeTolerance, rateTolerance float64) (*Segment, Whence, error) {
	w := windowOf(rec)

	srcHash := hash.SourceID(rec.Header.SourceName())

	for _, seg := range col.Segments {
		if seg.sourceHash != srcHash {
			continue
		}
		if !sameSource(seg, rec, col.QualitySeparated) {
			continue
		}
		if !rateMatches(seg.SampleRate, rec.SampleRate, rateTolerance) {
			continue
		}

		tol := timeTolerance
		if tol == -1 {
			tol = seg.period() / 2
		}

		if tol != -2 {
			postGap := w.start.Sub(seg.End).Seconds()
			if postGap >= -tol && postGap <= tol {
				if err := appendSamples(seg, rec); err != nil {
					return nil, WhenceNone, err
				}
				seg.End = w.end

				return seg, WhenceAppend, nil
			}

			preGap := seg.Start.Sub(w.end).Seconds()
			if preGap >= -tol && preGap <= tol {
				if err := prependSamples(seg, rec); err != nil {
					return nil, WhenceNone, err
				}
				seg.Start = w.start

				return seg, WhencePrepend, nil
			}
		}
	}

	seg := newSegmentFromRecord(rec, col.QualitySeparated)
	seg.sourceHash = srcHash
	col.Segments = append(col.Segments, seg)

	return seg, WhenceNew, nil
}

func sameSource(seg *Segment, rec *seed.Record, qualitySeparated bool) bool {
	if seg.Network != string(trim(rec.Header.Network[:])) ||
		seg.Station != string(trim(rec.Header.Station[:])) ||
		seg.Location != string(trim(rec.Header.Location[:])) ||
		seg.Channel != string(trim(rec.Header.Channel[:])) {
		return false
	}

	if qualitySeparated && seg.Quality != rec.Header.DataQuality {
		return false
	}

	return true
}

func trim(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}

	return b[:end]
}

func newSegmentFromRecord(rec *seed.Record, qualitySeparated bool) *Segment {
	seg := &Segment{
		Network:    string(trim(rec.Header.Network[:])),
		Station:    string(trim(rec.Header.Station[:])),
		Location:   string(trim(rec.Header.Location[:])),
		Channel:    string(trim(rec.Header.Channel[:])),
		SampleRate: rec.SampleRate,
		Start:      rec.StartTime,
		End:        rec.EndTime,
	}

	if qualitySeparated {
		seg.Quality = rec.Header.DataQuality
	}

	switch {
	case rec.Samples.Int32 != nil:
		seg.SampleType = SampleInt32
		seg.Samples.Int32 = append([]int32(nil), rec.Samples.Int32...)
	case rec.Samples.Float32 != nil:
		seg.SampleType = SampleFloat32
		seg.Samples.Float32 = append([]float32(nil), rec.Samples.Float32...)
	case rec.Samples.Float64 != nil:
		seg.SampleType = SampleFloat64
		seg.Samples.Float64 = append([]float64(nil), rec.Samples.Float64...)
	}

	return seg
}

func appendSamples(seg *Segment, rec *seed.Record) error {
	if rec.Samples.Len() == 0 {
		return nil
	}
	if err := checkSampleType(seg, rec); err != nil {
		return err
	}

	switch seg.SampleType {
	case SampleInt32:
		seg.Samples.Int32 = append(seg.Samples.Int32, rec.Samples.Int32...)
	case SampleFloat32:
		seg.Samples.Float32 = append(seg.Samples.Float32, rec.Samples.Float32...)
	case SampleFloat64:
		seg.Samples.Float64 = append(seg.Samples.Float64, rec.Samples.Float64...)
	}

	return nil
}

func prependSamples(seg *Segment, rec *seed.Record) error {
	if rec.Samples.Len() == 0 {
		return nil
	}
	if err := checkSampleType(seg, rec); err != nil {
		return err
	}

	switch seg.SampleType {
	case SampleInt32:
		seg.Samples.Int32 = append(append([]int32(nil), rec.Samples.Int32...), seg.Samples.Int32...)
	case SampleFloat32:
		seg.Samples.Float32 = append(append([]float32(nil), rec.Samples.Float32...), seg.Samples.Float32...)
	case SampleFloat64:
		seg.Samples.Float64 = append(append([]float64(nil), rec.Samples.Float64...), seg.Samples.Float64...)
	}

	return nil
}

func checkSampleType(seg *Segment, rec *seed.Record) error {
	switch seg.SampleType {
	case SampleInt32:
		if rec.Samples.Int32 == nil && rec.Samples.Len() > 0 {
			return errs.ErrRateMismatch
		}
	case SampleFloat32:
		if rec.Samples.Float32 == nil && rec.Samples.Len() > 0 {
			return errs.ErrRateMismatch
		}
	case SampleFloat64:
		if rec.Samples.Float64 == nil && rec.Samples.Len() > 0 {
			return errs.ErrRateMismatch
		}
	}

	return nil
}

// Len returns the segment's current sample count.
func (s *Segment) Len() int { return s.Samples.Len() }
