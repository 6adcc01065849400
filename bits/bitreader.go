/*
DESCRIPTION
  bitreader.go provides a bit reader implementation that reads forward-only
  over an io.Reader byte source, yielding fixed-width unsigned fields that
  may straddle byte boundaries.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a forward-only bit reader over an io.Reader, plus the
// byte-level peek/scan helpers the MPEG-2 video walker needs to locate start
// codes without consuming them.
package bits

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned by ReadBits when n is outside [1,32].
var ErrInvalidArgument = errors.New("bits: n must satisfy 1 <= n <= 32")

// peeker is the subset of *bufio.Reader that BitReader needs for its
// byte-level helpers.
type peeker interface {
	io.ByteReader
	Peek(int) ([]byte, error)
	Discard(int) (int, error)
}

// BitReader is a forward-only bit reader over an io.Reader source. It is not
// safe for concurrent use.
type BitReader struct {
	r     peeker
	n     uint64
	bits  int
	nRead int

	keep    bool
	kept    []byte
}

// NewBitReader returns a new BitReader reading from r.
func NewBitReader(r io.Reader) *BitReader {
	p, ok := r.(peeker)
	if !ok {
		p = bufio.NewReader(r)
	}
	return &BitReader{r: p}
}

// ReadBits reads the next n bits from the source MSB-first and returns them
// as the least-significant bits of a uint32. n must satisfy 1 <= n <= 32.
func (br *BitReader) ReadBits(n int) (uint32, error) {
	if n <= 0 || n > 32 {
		return 0, ErrInvalidArgument
	}
	for n > br.bits {
		b, err := br.r.ReadByte()
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		br.nRead++
		if br.keep {
			br.kept = append(br.kept, b)
		}
		br.n <<= 8
		br.n |= uint64(b)
		br.bits += 8
	}
	r := (br.n >> uint(br.bits-n)) & ((1 << uint(n)) - 1)
	br.bits -= n
	return uint32(r), nil
}

// ReadFlag reads a single bit and reports it as a bool.
func (br *BitReader) ReadFlag() (bool, error) {
	b, err := br.ReadBits(1)
	return b == 1, err
}

// StartKeep begins accumulating every byte fetched from the source (not
// merely the bits requested) into a side buffer, so that a caller performing
// a variable-length bit parse can later recover the exact raw bytes consumed.
func (br *BitReader) StartKeep() {
	br.keep = true
	br.kept = nil
}

// StopKeep ends accumulation and returns the bytes collected since the
// matching StartKeep call.
func (br *BitReader) StopKeep() []byte {
	br.keep = false
	k := br.kept
	br.kept = nil
	return k
}

// ByteAligned reports whether the reader's position is at the start of a
// byte boundary.
func (br *BitReader) ByteAligned() bool {
	return br.bits == 0
}

// AlignToByte discards whatever bits remain unread in the
// currently-buffered byte, moving the reader to the next byte boundary.
// MPEG-2 video syntax pads every non-byte-aligned structure with zero
// stuffing bits for exactly this purpose before the next start code.
func (br *BitReader) AlignToByte() {
	br.bits = 0
}

// BytesRead returns the number of whole bytes fetched from the underlying
// source so far.
func (br *BitReader) BytesRead() int {
	return br.nRead
}

// PeekBytes returns the next n bytes without consuming them. It requires the
// reader to be byte-aligned.
func (br *BitReader) PeekBytes(n int) ([]byte, error) {
	if !br.ByteAligned() {
		return nil, errors.New("bits: PeekBytes requires byte alignment")
	}
	b, err := br.r.Peek(n)
	if err == io.EOF {
		return b, io.ErrUnexpectedEOF
	}
	return b, err
}

// SkipBytes discards the next n bytes from the source. It requires the
// reader to be byte-aligned.
func (br *BitReader) SkipBytes(n int) error {
	if !br.ByteAligned() {
		return errors.New("bits: SkipBytes requires byte alignment")
	}
	for n > 0 {
		d, err := br.r.Discard(n)
		br.nRead += d
		n -= d
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// ReadBytes reads and returns the next n bytes from the source. It requires
// the reader to be byte-aligned.
func (br *BitReader) ReadBytes(n int) ([]byte, error) {
	if !br.ByteAligned() {
		return nil, errors.New("bits: ReadBytes requires byte alignment")
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := br.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		br.nRead++
		if br.keep {
			br.kept = append(br.kept, b)
		}
		buf[i] = b
	}
	return buf, nil
}
