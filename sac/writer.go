package sac

import (
	"fmt"

	"github.com/geokit/mseed2sac/endian"
	"github.com/geokit/mseed2sac/hptime"
)

// Format selects one of the four SAC output variants.
type Format int

const (
	FormatAlpha Format = iota
	FormatHostBinary
	FormatLittleEndianBinary
	FormatBigEndianBinary
)

// Source carries the segment-derived fields Build needs; it is satisfied
// by trace.Segment without this package importing trace.
type Source struct {
	Network, Station, Location, Channel string
	SampleRate                          float64
	Start                               hptime.Time
	Samples                             []float32

	// Optional station/event geometry, used only when HasStationCoords or
	// HasEventCoords is set; otherwise Build leaves the corresponding header
	// fields at the sentinel.
	HasStationCoords bool
	StLa, StLo, StEl, StDp float64

	HasEventCoords bool
	EvLa, EvLo, EvDp float64
	EventTime        hptime.Time
}

// Build constructs a fully-populated Header from src; the samples are not
// part of the result.
func Build(src Source) *Header {
	h := NewHeader()

	h.Knetwk = src.Network
	h.Kstnm = src.Station
	h.Khole = src.Location
	h.Kcmpnm = src.Channel

	if src.SampleRate > 0 {
		h.Delta = float32(1.0 / src.SampleRate)
	}
	h.Npts = int32(len(src.Samples))

	bt := hptime.FromTime(src.Start)
	h.Nzyear = int32(bt.Year)
	h.Nzjday = int32(bt.Day)
	h.Nzhour = int32(bt.Hour)
	h.Nzmin = int32(bt.Min)
	h.Nzsec = int32(bt.Sec)
	h.Nzmsec = int32(bt.Fract) / 10 // Fract is 1/10000 s; msec = Fract/10

	refMillis := hptime.Time(int64(src.Start) - int64(src.Start)%1000)
	h.B = float32(src.Start.Sub(refMillis).Seconds())
	if src.SampleRate > 0 && h.Npts > 0 {
		h.E = h.B + float32(float64(h.Npts-1)*float64(h.Delta))
	} else {
		h.E = h.B
	}

	h.Iztype = IB

	if src.HasStationCoords {
		h.Stla = float32(src.StLa)
		h.Stlo = float32(src.StLo)
		h.Stel = float32(src.StEl)
		h.Stdp = float32(src.StDp)
	}

	if src.HasEventCoords {
		h.Evla = float32(src.EvLa)
		h.Evlo = float32(src.EvLo)
		h.Evdp = float32(src.EvDp)
		h.O = float32(src.EventTime.Sub(src.Start).Seconds())

		if src.HasStationCoords {
			dz := Delaz(src.EvLa, src.EvLo, src.StLa, src.StLo)
			h.Dist = float32(dz.DistKM)
			h.Az = float32(dz.Az)
			h.Baz = float32(dz.Baz)
			h.Gcarc = float32(dz.GCArcDeg)
			h.Lcalda = 1
		}
	}

	h.Depmin, h.Depmax, h.Depmen = sampleStats(src.Samples)

	return h
}

func sampleStats(samples []float32) (min, max, mean float32) {
	if len(samples) == 0 {
		return FUndef, FUndef, FUndef
	}

	min, max = samples[0], samples[0]
	var sum float64
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += float64(v)
	}

	return min, max, float32(sum / float64(len(samples)))
}

// Write serializes h and its data block in the requested format.
func Write(h *Header, samples []float32, format Format) ([]byte, error) {
	switch format {
	case FormatAlpha:
		return writeAlpha(h, samples), nil
	case FormatHostBinary:
		return writeBinary(h, samples, endian.IsNativeBigEndian()), nil
	case FormatLittleEndianBinary:
		return writeBinary(h, samples, false), nil
	case FormatBigEndianBinary:
		return writeBinary(h, samples, true), nil
	default:
		return nil, fmt.Errorf("sac: unknown format %d", format)
	}
}

func writeBinary(h *Header, samples []float32, bigEndian bool) []byte {
	order := endian.GetLittleEndianEngine()
	if bigEndian {
		order = endian.GetBigEndianEngine()
	}

	out := append([]byte(nil), h.Bytes(order)...)

	return append(out, DataBytes(samples, order)...)
}

// FileName builds the "NET.STA.LOC.CHAN.Q.YYYY.DDD.HHMMSS.SAC[A]"
// filename for h; quality is the originating record's data-quality byte
// ('D','R','Q','M') or 0 for none.
func FileName(h *Header, quality byte, alpha bool) string {
	ext := "SAC"
	if alpha {
		ext = "SACA"
	}

	q := ""
	if quality != 0 {
		q = string(quality) + "."
	}

	return fmt.Sprintf("%s.%s.%s.%s.%s%04d.%03d.%02d%02d%02d.%s",
		h.Knetwk, h.Kstnm, h.Khole, h.Kcmpnm, q,
		h.Nzyear, h.Nzjday, h.Nzhour, h.Nzmin, h.Nzsec, ext)
}
