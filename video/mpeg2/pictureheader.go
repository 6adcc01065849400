/*
DESCRIPTION
  pictureheader.go provides PictureHeader: the fixed prefix identifying a
  coded picture, plus its variable-length bit-stream trailer (motion
  vector ranges and the extra_information_picture escape sequence).

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

// PictureCodingType tags the 3-bit picture_coding_type field.
type PictureCodingType byte

const (
	IFrame PictureCodingType = 1
	PFrame PictureCodingType = 2
	BFrame PictureCodingType = 3
)

// PictureHeader is the fixed-prefix-plus-variable-trailer block opening a
// coded picture.
type PictureHeader struct {
	TemporalReference  uint16 // 10-bit.
	PictureCodingType  PictureCodingType
	VBVDelay           uint16

	FullPelForwardVector bool
	ForwardFCode         byte // 3-bit, valid iff type is P or B.
	FullPelBackwardVector bool
	BackwardFCode        byte // 3-bit, valid iff type is B.

	ExtraInformation []byte // one byte per extra_bit_picture == 1.

	// RawTrailer holds every byte fetched while parsing the variable
	// trailer, for callers that want to re-derive bit offsets without
	// re-parsing (e.g. a picture_data scan that starts immediately after).
	RawTrailer []byte
}

// NewPictureHeader parses a PictureHeader from br, which must be
// positioned at a picture_start_code.
func NewPictureHeader(br *bits.BitReader) (*PictureHeader, error) {
	code, err := br.ReadBits(32)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if code != 0x00000100|uint32(PictureStartCode) {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "picture_header: start code")
	}

	ph := &PictureHeader{}

	tr, err := br.ReadBits(10)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	ph.TemporalReference = uint16(tr)

	ct, err := br.ReadBits(3)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	ph.PictureCodingType = PictureCodingType(ct)

	vbv, err := br.ReadBits(16)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	ph.VBVDelay = uint16(vbv)

	br.StartKeep()

	if ph.PictureCodingType == PFrame || ph.PictureCodingType == BFrame {
		full, err := br.ReadFlag()
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		ph.FullPelForwardVector = full

		fc, err := br.ReadBits(3)
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		ph.ForwardFCode = byte(fc)
	}

	if ph.PictureCodingType == BFrame {
		full, err := br.ReadFlag()
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		ph.FullPelBackwardVector = full

		bc, err := br.ReadBits(3)
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		ph.BackwardFCode = byte(bc)
	}

	for {
		extraBit, err := br.ReadFlag()
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		if !extraBit {
			break
		}
		info, err := br.ReadBits(8)
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		ph.ExtraInformation = append(ph.ExtraInformation, byte(info))
	}

	ph.RawTrailer = br.StopKeep()

	return ph, nil
}
