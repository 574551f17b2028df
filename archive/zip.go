// Package archive implements a streaming (non-seeking) ZIP writer:
// per-entry local header, deflated or stored body, and data descriptor,
// terminated by a central directory with ZIP64 support.
package archive

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/geokit/mseed2sac/errs"
)

const (
	localHeaderSig  = 0x04034b50
	dataDescSig     = 0x08074b50
	centralDirSig   = 0x02014b50
	eocdSig         = 0x06054b50
	zip64EocdSig    = 0x06064b50
	zip64LocatorSig = 0x07064b50

	versionNeeded = 45 // ZIP64-aware readers
	flagStreaming = 1 << 3

	methodStored  = 0
	methodDeflate = 8

	maxWriteChunk = 1 << 20 // 1 MiB
)

type entry struct {
	name         string
	offset       uint64
	crc32        uint32
	compSize     uint64
	uncompSize   uint64
	method       uint16
}

// Writer is a streaming ZIP archive writer. It is single-use and not
// safe for concurrent access.
type Writer struct {
	w       io.Writer
	offset  uint64
	entries []entry
	closed  bool

	cur        *entry
	curCRC     hash.Hash32
	curDeflate *flate.Writer
	curRaw     io.Writer
}

// New returns a Writer that streams a ZIP archive to w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (z *Writer) write(p []byte) error {
	for len(p) > 0 {
		n := len(p)
		if n > maxWriteChunk {
			n = maxWriteChunk
		}

		if _, err := z.w.Write(p[:n]); err != nil {
			return err
		}

		z.offset += uint64(n)
		p = p[n:]
	}

	return nil
}

// CreateEntry begins a new archive entry named name. deflate selects
// deflate compression over stored (no compression).
func (z *Writer) CreateEntry(name string, deflate bool) error {
	if z.closed {
		return errs.ErrArchiveClosed
	}
	if z.cur != nil {
		return errs.ErrEntryOpen
	}

	method := uint16(methodStored)
	if deflate {
		method = methodDeflate
	}

	header := make([]byte, 30+len(name))
	binary.LittleEndian.PutUint32(header[0:4], localHeaderSig)
	binary.LittleEndian.PutUint16(header[4:6], versionNeeded)
	binary.LittleEndian.PutUint16(header[6:8], flagStreaming)
	binary.LittleEndian.PutUint16(header[8:10], method)
	binary.LittleEndian.PutUint16(header[10:12], 0) // mod time
	binary.LittleEndian.PutUint16(header[12:14], 0) // mod date
	// CRC-32, compressed size, uncompressed size are zero; data descriptor follows.
	binary.LittleEndian.PutUint16(header[26:28], uint16(len(name)))
	binary.LittleEndian.PutUint16(header[28:30], 0) // extra field length
	copy(header[30:], name)

	ent := entry{name: name, offset: z.offset, method: method}
	z.cur = &ent

	if err := z.write(header); err != nil {
		return err
	}

	z.curCRC = crc32.NewIEEE()
	z.curRaw = &trackingWriter{z: z}

	if deflate {
		fw, err := flate.NewWriter(z.curRaw, flate.DefaultCompression)
		if err != nil {
			return err
		}
		z.curDeflate = fw
	}

	return nil
}

// trackingWriter forwards compressed bytes to the underlying archive
// stream and counts them.
type trackingWriter struct {
	z *Writer
	n uint64
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if err := t.z.write(p); err != nil {
		return 0, err
	}
	t.n += uint64(len(p))

	return len(p), nil
}

// Write streams p into the currently open entry.
func (z *Writer) Write(p []byte) (int, error) {
	if z.cur == nil {
		return 0, errs.ErrEntryOpen
	}

	z.curCRC.Write(p)
	z.cur.uncompSize += uint64(len(p))

	if z.curDeflate != nil {
		if _, err := z.curDeflate.Write(p); err != nil {
			return 0, err
		}

		return len(p), nil
	}

	if err := z.write(p); err != nil {
		return 0, err
	}
	z.cur.compSize += uint64(len(p))

	return len(p), nil
}

// CloseEntry finalizes the current entry, writing its data descriptor.
func (z *Writer) CloseEntry() error {
	if z.cur == nil {
		return errs.ErrEntryOpen
	}

	if z.curDeflate != nil {
		if err := z.curDeflate.Close(); err != nil {
			return err
		}
		z.cur.compSize = z.curRaw.(*trackingWriter).n
	}

	z.cur.crc32 = z.curCRC.Sum32()

	desc := make([]byte, 24)
	binary.LittleEndian.PutUint32(desc[0:4], dataDescSig)
	binary.LittleEndian.PutUint32(desc[4:8], z.cur.crc32)
	binary.LittleEndian.PutUint64(desc[8:16], z.cur.compSize)
	binary.LittleEndian.PutUint64(desc[16:24], z.cur.uncompSize)

	if err := z.write(desc); err != nil {
		return err
	}

	z.entries = append(z.entries, *z.cur)
	z.cur = nil
	z.curDeflate = nil
	z.curRaw = nil

	return nil
}

// Close writes the central directory (and ZIP64 records if needed) and
// finalizes the archive. It is an error to call Close with an entry still
// open.
func (z *Writer) Close() error {
	if z.cur != nil {
		return errs.ErrEntryOpen
	}
	if z.closed {
		return nil
	}
	z.closed = true

	cdStart := z.offset

	for _, e := range z.entries {
		if err := z.writeCentralDirEntry(e); err != nil {
			return err
		}
	}

	cdEnd := z.offset
	cdSize := cdEnd - cdStart

	if cdEnd > 0xFFFFFFFF || cdStart > 0xFFFFFFFF {
		if err := z.writeZip64Eocd(cdStart, cdSize); err != nil {
			return err
		}
	}

	return z.writeEocd(cdStart, cdSize)
}

func (z *Writer) writeCentralDirEntry(e entry) error {
	needsZip64 := e.offset > 0xFFFFFFFF

	extraLen := 0
	if needsZip64 {
		extraLen = 12
	}

	header := make([]byte, 46+len(e.name)+extraLen)
	binary.LittleEndian.PutUint32(header[0:4], centralDirSig)
	binary.LittleEndian.PutUint16(header[4:6], versionNeeded)
	binary.LittleEndian.PutUint16(header[6:8], versionNeeded)
	binary.LittleEndian.PutUint16(header[8:10], flagStreaming)
	binary.LittleEndian.PutUint16(header[10:12], e.method)
	binary.LittleEndian.PutUint32(header[16:20], e.crc32)

	compSize, uncompSize, offset := uint32(e.compSize), uint32(e.uncompSize), uint32(e.offset)
	if needsZip64 {
		compSize, uncompSize, offset = 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF
	}
	binary.LittleEndian.PutUint32(header[20:24], compSize)
	binary.LittleEndian.PutUint32(header[24:28], uncompSize)
	binary.LittleEndian.PutUint16(header[28:30], uint16(len(e.name)))
	binary.LittleEndian.PutUint16(header[30:32], uint16(extraLen))
	binary.LittleEndian.PutUint32(header[42:46], offset)
	copy(header[46:46+len(e.name)], e.name)

	if needsZip64 {
		ex := header[46+len(e.name):]
		binary.LittleEndian.PutUint16(ex[0:2], 1) // ZIP64 extra tag
		binary.LittleEndian.PutUint16(ex[2:4], 8)
		binary.LittleEndian.PutUint64(ex[4:12], e.offset)
	}

	return z.write(header)
}

func (z *Writer) writeZip64Eocd(cdStart, cdSize uint64) error {
	rec := make([]byte, 56)
	binary.LittleEndian.PutUint32(rec[0:4], zip64EocdSig)
	binary.LittleEndian.PutUint64(rec[4:12], 44)
	binary.LittleEndian.PutUint16(rec[12:14], versionNeeded)
	binary.LittleEndian.PutUint16(rec[14:16], versionNeeded)
	binary.LittleEndian.PutUint64(rec[24:32], uint64(len(z.entries)))
	binary.LittleEndian.PutUint64(rec[32:40], uint64(len(z.entries)))
	binary.LittleEndian.PutUint64(rec[40:48], cdSize)
	binary.LittleEndian.PutUint64(rec[48:56], cdStart)

	locatorOffset := z.offset
	if err := z.write(rec); err != nil {
		return err
	}

	locator := make([]byte, 20)
	binary.LittleEndian.PutUint32(locator[0:4], zip64LocatorSig)
	binary.LittleEndian.PutUint64(locator[8:16], locatorOffset)
	binary.LittleEndian.PutUint32(locator[16:20], 1)

	return z.write(locator)
}

func (z *Writer) writeEocd(cdStart, cdSize uint64) error {
	rec := make([]byte, 22)
	binary.LittleEndian.PutUint32(rec[0:4], eocdSig)

	n := uint16(len(z.entries))
	if len(z.entries) > 0xFFFF {
		n = 0xFFFF
	}
	binary.LittleEndian.PutUint16(rec[8:10], n)
	binary.LittleEndian.PutUint16(rec[10:12], n)

	size32 := uint32(cdSize)
	start32 := uint32(cdStart)
	if cdSize > 0xFFFFFFFF {
		size32 = 0xFFFFFFFF
	}
	if cdStart > 0xFFFFFFFF {
		start32 = 0xFFFFFFFF
	}
	binary.LittleEndian.PutUint32(rec[12:16], size32)
	binary.LittleEndian.PutUint32(rec[16:20], start32)

	return z.write(rec)
}
