/*
DESCRIPTION
  startcode.go provides the MPEG-2 video elementary stream start codes and
  the peek-driven scan that locates the next one in a byte stream.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mpeg2 walks an MPEG-2 video elementary stream, recognising its
// start-code-delimited structure down to picture headers without
// attempting to decode macroblock data.
package mpeg2

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/bits"
	"github.com/ausocean/psdemux/psderr"
)

// Start code fourth bytes. Every start code shares the 00 00 01 prefix.
const (
	PictureStartCode     = 0x00
	UserDataStartCode    = 0xB2
	SequenceHeaderCode   = 0xB3
	SequenceErrorCode    = 0xB4
	ExtensionStartCode   = 0xB5
	SequenceEndCode      = 0xB7
	GroupStartCode       = 0xB8
	sliceStartCodeMin    = 0x01
	sliceStartCodeMax    = 0xAF
)

// isSliceStartCode reports whether b is a slice_start_code (0x01..0xAF).
func isSliceStartCode(b byte) bool {
	return b >= sliceStartCodeMin && b <= sliceStartCodeMax
}

// Extension start code identifier nibbles, read from the four bits
// following an extension_start_code.
const (
	SequenceExtensionID             = 0b0001
	SequenceDisplayExtensionID       = 0b0010
	QuantMatrixExtensionID           = 0b0011
	CopyrightExtensionID             = 0b0100
	SequenceScalableExtensionID      = 0b0101
	PictureDisplayExtensionID        = 0b0111
	PictureCodingExtensionID         = 0b1000
	PictureSpatialScalableExtensionID = 0b1001
	PictureTemporalScalableExtensionID = 0b1010
)

// peekStartCode peeks the next 4 bytes of r, reporting whether they form a
// 00 00 01 XX start code and, if so, the fourth byte. Every structure
// this module parses between start codes ends at an arbitrary bit
// position, so this always realigns to the next byte boundary first, per
// the zero-stuffing every encoder inserts there.
func peekStartCode(br *bits.BitReader) (byte, bool, error) {
	br.AlignToByte()
	b, err := br.PeekBytes(4)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			return 0, false, nil
		}
		return 0, false, err
	}
	if b[0] != 0 || b[1] != 0 || b[2] != 1 {
		return 0, false, nil
	}
	return b[3], true, nil
}

// nextStartCode advances br past zero padding until positioned at a
// 00 00 01 start code, returning its fourth byte. In strict mode a
// non-zero padding byte is a MalformedVideoStream error.
func nextStartCode(br *bits.BitReader, strict bool) (byte, error) {
	for {
		xx, ok, err := peekStartCode(br)
		if err != nil {
			return 0, err
		}
		if ok {
			return xx, nil
		}
		b, err := br.ReadBytes(1)
		if err != nil {
			return 0, errors.Wrap(psderr.ErrIO, err.Error())
		}
		if strict && b[0] != 0 {
			return 0, errors.Wrap(psderr.ErrMalformedVideoStream, "mpeg2: non-zero padding byte while scanning for start code")
		}
	}
}
