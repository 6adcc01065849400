/*
DESCRIPTION
  sequenceextension.go provides SequenceExtension, the 10-byte block that
  must immediately follow a SequenceHeader in an MPEG-2 (as opposed to
  MPEG-1) video stream.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mpeg2

import (
	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/bits"
	"github.com/ausocean/psdemux/psderr"
)

// SequenceExtension carries the MPEG-2-specific fields extending the
// MPEG-1-compatible SequenceHeader: profile/level, chroma format, and the
// progressive_sequence flag. Its presence immediately after a
// SequenceHeader is what distinguishes an MPEG-2 video stream from
// MPEG-1, which this module does not support.
type SequenceExtension struct {
	ProfileAndLevelIndication byte
	ProgressiveSequence       bool
	ChromaFormat              byte // 2-bit.
	HorizontalSizeExtension   byte // 2-bit.
	VerticalSizeExtension     byte // 2-bit.
	BitRateExtension          uint16 // 12-bit.
	VBVBufferSizeExtension    byte
	LowDelay                  bool
	FrameRateExtensionN       byte // 2-bit.
	FrameRateExtensionD       byte // 5-bit.
}

// NewSequenceExtension parses a SequenceExtension from br, which must be
// positioned at an extension_start_code whose following nibble is
// SequenceExtensionID.
func NewSequenceExtension(br *bits.BitReader) (*SequenceExtension, error) {
	code, err := br.ReadBits(32)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if code != 0x00000100|uint32(ExtensionStartCode) {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "sequence_extension: extension_start_code")
	}

	id, err := br.ReadBits(4)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if id != SequenceExtensionID {
		return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "sequence_extension: ISO/IEC 11172-2 (MPEG-1 video) is not supported")
	}

	se := &SequenceExtension{}

	pli, err := br.ReadBits(8)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.ProfileAndLevelIndication = byte(pli)

	prog, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.ProgressiveSequence = prog

	chroma, err := br.ReadBits(2)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.ChromaFormat = byte(chroma)

	hsize, err := br.ReadBits(2)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.HorizontalSizeExtension = byte(hsize)

	vsize, err := br.ReadBits(2)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.VerticalSizeExtension = byte(vsize)

	marker, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if !marker {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "sequence_extension: marker_bit")
	}

	bitRateExt, err := br.ReadBits(12)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.BitRateExtension = uint16(bitRateExt)

	marker2, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if !marker2 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "sequence_extension: marker_bit after bit_rate_extension")
	}

	vbvExt, err := br.ReadBits(8)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.VBVBufferSizeExtension = byte(vbvExt)

	lowDelay, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.LowDelay = lowDelay

	frN, err := br.ReadBits(2)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.FrameRateExtensionN = byte(frN)

	frD, err := br.ReadBits(5)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	se.FrameRateExtensionD = byte(frD)

	return se, nil
}
