package seed

import (
	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/encoding"
	"github.com/geokit/mseed2sac/errs"
)

// decodeSamples decodes rec's data area into rec.Samples according to
// rec.Encoding, using rec.SampleByteOrder.
func decodeSamples(rec *Record, b []byte, cfg *config.Codec) error {
	offset := rec.DataOffsetOrDefault()
	if offset > len(b) {
		return errs.ErrTruncated
	}

	data := b[offset:]
	count := rec.SampleCount
	order := rec.SampleByteOrder

	switch encoding.EncodingCode(rec.Encoding) {
	case encoding.EncodingASCII:
		text, err := encoding.DecodeASCII(data, len(data))
		if err != nil {
			return err
		}
		rec.Samples.Text = text

	case encoding.EncodingInt16:
		vals, err := encoding.NewInt16Decoder(order).All(data, count)
		if err != nil {
			return err
		}
		rec.Samples.Int32 = vals

	case encoding.EncodingInt32:
		vals, err := encoding.NewInt32Decoder(order).All(data, count)
		if err != nil {
			return err
		}
		rec.Samples.Int32 = vals

	case encoding.EncodingFloat32:
		vals, err := encoding.NewFloat32Decoder(order).All(data, count)
		if err != nil {
			return err
		}
		rec.Samples.Float32 = vals

	case encoding.EncodingFloat64:
		vals, err := encoding.NewFloat64Decoder(order).All(data, count)
		if err != nil {
			return err
		}
		rec.Samples.Float64 = vals

	case encoding.EncodingSteim1:
		vals, err := encoding.NewSteim1Decoder(order, cfg.Logger).All(data, count)
		if err != nil {
			return err
		}
		rec.Samples.Int32 = vals

	case encoding.EncodingSteim2:
		vals, err := encoding.NewSteim2Decoder(order, cfg.Logger).All(data, count)
		if err != nil {
			return err
		}
		rec.Samples.Int32 = vals

	default:
		return errs.ErrUnknownFormat
	}

	return nil
}
