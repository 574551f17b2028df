package encoding

import "github.com/geokit/mseed2sac/errs"

// ASCIIEncoder accumulates opaque log-message bytes for the SEED ASCII
// encoding (encoding code 0). It does not implement SampleEncoder[T] since
// ASCII samples are bytes, not a numeric Sample type.
type ASCIIEncoder struct {
	buf []byte
}

func NewASCIIEncoder() *ASCIIEncoder { return &ASCIIEncoder{} }

func (e *ASCIIEncoder) Write(b byte)       { e.buf = append(e.buf, b) }
func (e *ASCIIEncoder) WriteSlice(b []byte) { e.buf = append(e.buf, b...) }
func (e *ASCIIEncoder) Bytes() []byte       { return e.buf }
func (e *ASCIIEncoder) Len() int            { return len(e.buf) }
func (e *ASCIIEncoder) Size() int           { return len(e.buf) }
func (e *ASCIIEncoder) Reset()              { e.buf = e.buf[:0] }
func (e *ASCIIEncoder) Finish()             {}

// DecodeASCII returns the count bytes of ASCII payload verbatim.
func DecodeASCII(data []byte, count int) ([]byte, error) {
	if len(data) < count {
		return nil, errs.ErrTruncated
	}

	return append([]byte(nil), data[:count]...), nil
}
