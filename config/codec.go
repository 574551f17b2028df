// Package config holds the process-wide codec configuration that replaces
// the original implementation's environment variables, built through the
// same functional-options pattern used elsewhere in this module.
package config

import (
	"github.com/geokit/mseed2sac/format"
	"github.com/geokit/mseed2sac/internal/options"
)

// ByteOrderOverride forces header/sample byte-order interpretation instead
// of relying on autodetection.
type ByteOrderOverride int

const (
	ByteOrderAuto ByteOrderOverride = iota
	ByteOrderLittle
	ByteOrderBig
)

// Logger receives non-fatal integrity warnings (Steim Xn mismatch, sample
// count mismatch, non-monotonic blockette offsets) encountered during
// decode. The zero value (nil) is a no-op logger.
type Logger interface {
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...any) {}

// Codec is the immutable-after-construction configuration block shared by
// the decoder, encoder, and reader.
type Codec struct {
	UnpackHeaderByteOrder    ByteOrderOverride
	UnpackDataByteOrder      ByteOrderOverride
	UnpackDataFormat         int // -1 = not overridden, else 0-33 SEED encoding code
	UnpackDataFormatFallback int // default 10 (Steim-1) per spec
	PackHeaderByteOrder      ByteOrderOverride
	PackDataByteOrder        ByteOrderOverride

	Logger           Logger
	CacheCompression format.CompressionType
}

// NewDefault returns a Codec with the original implementation's defaults:
// autodetected byte order, Steim-1 fallback encoding, no compression.
func NewDefault() *Codec {
	return &Codec{
		UnpackDataFormat:         -1,
		UnpackDataFormatFallback: 10,
		Logger:                   noopLogger{},
		CacheCompression:         format.CompressionNone,
	}
}

// Option configures a Codec at construction time.
type Option = options.Option[*Codec]

// New builds a Codec from the given options, applied over NewDefault().
func New(opts ...Option) (*Codec, error) {
	c := NewDefault()
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// WithLogger installs a Logger for integrity warnings.
func WithLogger(l Logger) Option {
	return options.NoError(func(c *Codec) {
		if l != nil {
			c.Logger = l
		}
	})
}

// WithUnpackHeaderByteOrder forces header byte-order interpretation.
func WithUnpackHeaderByteOrder(o ByteOrderOverride) Option {
	return options.NoError(func(c *Codec) { c.UnpackHeaderByteOrder = o })
}

// WithUnpackDataByteOrder forces sample byte-order interpretation.
func WithUnpackDataByteOrder(o ByteOrderOverride) Option {
	return options.NoError(func(c *Codec) { c.UnpackDataByteOrder = o })
}

// WithUnpackDataFormat overrides the sample encoding used during decode.
func WithUnpackDataFormat(code int) Option {
	return options.NoError(func(c *Codec) { c.UnpackDataFormat = code })
}

// WithUnpackDataFormatFallback sets the encoding used when no blockette
// 1000 is present and no override applies.
func WithUnpackDataFormatFallback(code int) Option {
	return options.NoError(func(c *Codec) { c.UnpackDataFormatFallback = code })
}

// WithPackHeaderByteOrder forces the output header byte order.
func WithPackHeaderByteOrder(o ByteOrderOverride) Option {
	return options.NoError(func(c *Codec) { c.PackHeaderByteOrder = o })
}

// WithPackDataByteOrder forces the output sample byte order.
func WithPackDataByteOrder(o ByteOrderOverride) Option {
	return options.NoError(func(c *Codec) { c.PackDataByteOrder = o })
}

// WithCacheCompression selects the compression codec applied to trace-cache
// payloads; it has no effect on Mini-SEED or SAC encoding.
func WithCacheCompression(t format.CompressionType) Option {
	return options.NoError(func(c *Codec) { c.CacheCompression = t })
}
