/*
DESCRIPTION
  sequenceheader.go provides SequenceHeader: the 12-byte fixed block that
  opens every MPEG-2 video sequence, plus its two optional 64-byte
  quantiser matrices.

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

// SequenceHeader is the fixed 12-byte block opening an MPEG-2 video
// sequence, with its optional quantiser matrices.
type SequenceHeader struct {
	HorizontalSize             uint16 // 12-bit.
	VerticalSize                uint16 // 12-bit.
	AspectRatioInformation       byte   // 4-bit.
	FrameRateCode                byte   // 4-bit.
	BitRateValue                 uint32 // 18-bit, in units of 400 bits/s.
	VBVBufferSize                uint16 // 10-bit, in units of 16384 bits.
	ConstrainedParametersFlag    bool

	IntraQuantiserMatrix    *[64]byte
	NonIntraQuantiserMatrix *[64]byte
}

// NewSequenceHeader parses a SequenceHeader from br, which must be
// positioned at sequence_header_code.
func NewSequenceHeader(br *bits.BitReader) (*SequenceHeader, error) {
	code, err := br.ReadBits(32)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if code != 0x00000100|uint32(SequenceHeaderCode) {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "sequence_header: start code")
	}

	sh := &SequenceHeader{}

	horiz, err := br.ReadBits(12)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.HorizontalSize = uint16(horiz)

	vert, err := br.ReadBits(12)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.VerticalSize = uint16(vert)

	aspect, err := br.ReadBits(4)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.AspectRatioInformation = byte(aspect)

	rate, err := br.ReadBits(4)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.FrameRateCode = byte(rate)

	bitRate, err := br.ReadBits(18)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.BitRateValue = bitRate

	marker, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if !marker {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "sequence_header: marker_bit")
	}

	vbv, err := br.ReadBits(10)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.VBVBufferSize = uint16(vbv)

	constrained, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	sh.ConstrainedParametersFlag = constrained

	loadIntra, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if loadIntra {
		m, err := readQuantMatrix(br)
		if err != nil {
			return nil, err
		}
		sh.IntraQuantiserMatrix = m
	}

	loadNonIntra, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if loadNonIntra {
		m, err := readQuantMatrix(br)
		if err != nil {
			return nil, err
		}
		sh.NonIntraQuantiserMatrix = m
	}

	return sh, nil
}

// readQuantMatrix reads a 64-entry, 8-bit-per-entry quantiser matrix. The
// matrix is packed immediately after the load flag bit with no byte
// alignment, so every entry straddles a byte boundary unless an earlier
// field happened to land the reader on one.
func readQuantMatrix(br *bits.BitReader) (*[64]byte, error) {
	var m [64]byte
	for i := range m {
		v, err := br.ReadBits(8)
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		m[i] = byte(v)
	}
	return &m, nil
}
