// Package reader implements a streaming, non-seeking Mini-SEED record
// reader: record-length autodetection, an optional pack-file envelope, and
// steady-state fixed-length reads handed off to the seed decoder.
package reader

import (
	"bufio"
	"io"

	"github.com/geokit/mseed2sac/config"
	"github.com/geokit/mseed2sac/errs"
	"github.com/geokit/mseed2sac/seed"
)

// envelope identifies a pack-file container wrapping the Mini-SEED stream.
type envelope struct {
	kind        string
	infoLen     int
	nextOffset  int64
}

var envelopeInfoLen = map[string]int{
	"PED": 8,
	"PSD": 11,
	"PLC": 13,
	"PQI": 15,
}

// Reader is a stateful iterator over one Mini-SEED byte stream.
type Reader struct {
	src    *bufio.Reader
	cfg    *config.Codec
	reclen    int // 0 = still detecting
	env       *envelope
	count     int
	bytesRead int64 // bytes consumed within the current envelope data block

	skipNotData bool
	wantSamples bool
	expectLen   int

	closer io.Closer
}

// Options configures a new Reader.
type Options struct {
	Codec       *config.Codec
	SkipNotData bool
	WantSamples bool
}

// New wraps r, sniffing for a pack-file envelope identifier at the start
// of the stream.
func New(r io.Reader, closer io.Closer, opts Options) (*Reader, error) {
	br := bufio.NewReaderSize(r, 8192)

	rd := &Reader{
		src:         br,
		cfg:         opts.Codec,
		skipNotData: opts.SkipNotData,
		wantSamples: opts.WantSamples,
		closer:      closer,
	}
	if rd.cfg == nil {
		rd.cfg = config.NewDefault()
	}

	if err := rd.detectEnvelope(); err != nil {
		return nil, err
	}

	return rd, nil
}

func (r *Reader) detectEnvelope() error {
	peek, err := r.src.Peek(3)
	if err != nil {
		if err == io.EOF {
			return nil
		}

		return err
	}

	kind := string(peek)
	infoLen, ok := envelopeInfoLen[kind]
	if !ok {
		return nil
	}

	r.env = &envelope{kind: kind, infoLen: infoLen}

	return r.readEnvelopeInfo()
}

// readEnvelopeInfo consumes one envelope info block plus its 8-byte
// checksum prefix, recording the byte length of the next data block (the
// trailing 8 ASCII bytes of the info block).
func (r *Reader) readEnvelopeInfo() error {
	buf := make([]byte, r.env.infoLen)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return err
	}

	sizeStr := buf[r.env.infoLen-8:]
	var size int64
	for _, c := range sizeStr {
		if c < '0' || c > '9' {
			continue
		}
		size = size*10 + int64(c-'0')
	}

	checksum := make([]byte, 8)
	if _, err := io.ReadFull(r.src, checksum); err != nil {
		return err
	}

	r.env.nextOffset = size
	r.bytesRead = 0

	return nil
}

const (
	probeStart = 256
	probeMax   = 8192
)

// detectReclen doubles a read-and-probe window from 256 to 8192 bytes,
// calling findReclen on the accumulated buffer after each doubling.
func (r *Reader) detectReclen() error {
	size := probeStart

	var buf []byte
	for size <= probeMax {
		need := size - len(buf)
		chunk := make([]byte, need)

		n, err := io.ReadFull(r.src, chunk)
		buf = append(buf, chunk[:n]...)

		if rl, ok := findReclen(buf); ok {
			// Push back everything beyond the record we sniffed into
			// via a fresh bufio.Reader would require real seeking;
			// instead retain the already-read probe buffer and splice
			// it ahead of further reads.
			r.reclen = rl
			r.src = prependReader(buf, r.src)

			return nil
		}

		if hasValidSignature(buf) {
			// No Blockette 1000: test whether the next 48 bytes also look
			// like a fixed header, implying reclen == len(buf).
			if peek, err := r.src.Peek(seed.FSDHSize); err == nil && hasValidSignature(peek) {
				r.reclen = size
				r.src = prependReader(buf, r.src)

				return nil
			}
		}

		if err != nil {
			break
		}

		size *= 2
	}

	return errs.ErrNotSeed
}

// prependReader returns a *bufio.Reader that yields buf's bytes first,
// then falls back to tail.
func prependReader(buf []byte, tail *bufio.Reader) *bufio.Reader {
	return bufio.NewReaderSize(io.MultiReader(newByteReader(buf), tail), 8192)
}

type byteReader struct {
	b   []byte
	pos int
}

func newByteReader(b []byte) *byteReader { return &byteReader{b: b} }

func (br *byteReader) Read(p []byte) (int, error) {
	if br.pos >= len(br.b) {
		return 0, io.EOF
	}

	n := copy(p, br.b[br.pos:])
	br.pos += n

	return n, nil
}

// Next returns the next decoded record, or io.EOF when the stream is
// exhausted.
func (r *Reader) Next() (*seed.Record, error) {
	if r.env != nil && r.env.nextOffset != 0 && r.bytesRead >= r.env.nextOffset {
		if err := r.readEnvelopeInfo(); err != nil {
			return nil, err
		}
	}

	if r.reclen == 0 {
		if err := r.detectReclen(); err != nil {
			return nil, err
		}
	}

	if _, err := r.src.Peek(1); err != nil {
		return nil, io.EOF
	}

	buf := make([]byte, r.reclen)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return nil, err
	}
	r.bytesRead += int64(len(buf))

	rec, err := seed.Decode(buf, r.cfg, seed.DecodeOptions{
		ExpectedRecLen: r.reclen,
		WantSamples:    r.wantSamples,
	})
	if err != nil {
		if r.skipNotData && err == errs.ErrNotSeed {
			return r.Next()
		}

		return nil, err
	}

	r.count++

	return rec, nil
}

// Count returns the number of records successfully decoded so far.
func (r *Reader) Count() int { return r.count }

// Close releases the reader's resources. Safe to call after any error or
// after normal completion.
func (r *Reader) Close() error {
	r.reclen = 0
	r.env = nil
	r.src = nil
	r.bytesRead = 0

	if r.closer != nil {
		return r.closer.Close()
	}

	return nil
}
