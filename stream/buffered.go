/*
DESCRIPTION
  buffered.go provides BufferedReader, a 4 KiB read-ahead wrapper around a
  SegmentedReader that invalidates its buffer on seek.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stream

import "io"

const bufferedReaderSize = 4096

// BufferedReader adds read-ahead buffering to a SegmentedReader. Any Seek
// discards the buffer; the next Read refills it from the new position.
type BufferedReader struct {
	r   *SegmentedReader
	buf []byte
	pos int // read position within buf.
	n   int // valid bytes in buf.
}

// NewBufferedReader wraps r with a 4 KiB read-ahead buffer.
func NewBufferedReader(r *SegmentedReader) *BufferedReader {
	return &BufferedReader{r: r, buf: make([]byte, bufferedReaderSize)}
}

// Read implements io.Reader, filling from the internal buffer before
// issuing further reads against the underlying SegmentedReader.
func (b *BufferedReader) Read(p []byte) (int, error) {
	if b.pos >= b.n {
		n, err := b.r.Read(b.buf)
		b.pos, b.n = 0, n
		if n == 0 {
			return 0, err
		}
	}
	n := copy(p, b.buf[b.pos:b.n])
	b.pos += n
	return n, nil
}

// ReadExact reads exactly len(buf) bytes.
func (b *BufferedReader) ReadExact(buf []byte) error {
	_, err := io.ReadFull(b, buf)
	return err
}

// Seek implements io.Seeker, discarding any buffered bytes.
func (b *BufferedReader) Seek(offset int64, whence int) (int64, error) {
	b.pos, b.n = 0, 0
	return b.r.Seek(offset, whence)
}

// Tell returns the current virtual position.
func (b *BufferedReader) Tell() int64 { return b.r.Tell() - int64(b.n-b.pos) }

// TotalSize returns the total length of the underlying virtual stream.
func (b *BufferedReader) TotalSize() int64 { return b.r.TotalSize() }
