// Package format defines the small set of on-disk type tags shared by the
// trace-cache header and the compress package.
package format

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw       EncodingType = 0x1 // TypeRaw stores samples/ticks with no transform.
	TypeDeltaDiff EncodingType = 0x2 // TypeDeltaDiff stores delta-of-delta encoded HPTime ticks.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDeltaDiff:
		return "DeltaDiff"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
