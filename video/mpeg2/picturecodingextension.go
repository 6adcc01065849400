/*
DESCRIPTION
  picturecodingextension.go provides PictureCodingExtension, the 9-byte
  fixed block carrying per-picture coding parameters, plus its optional
  3-byte CompositeDisplayData tail.

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

// CompositeDisplayData is the optional 3-byte tail of
// PictureCodingExtension, present when composite_display_flag is set.
type CompositeDisplayData struct {
	VAxis      bool
	FieldSequence byte // 3-bit.
	SubCarrier   bool
	BurstAmplitude byte // 7-bit.
	SubCarrierPhase byte
}

func newCompositeDisplayData(br *bits.BitReader) (*CompositeDisplayData, error) {
	c := &CompositeDisplayData{}

	v, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	c.VAxis = v

	fs, err := br.ReadBits(3)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	c.FieldSequence = byte(fs)

	sc, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	c.SubCarrier = sc

	ba, err := br.ReadBits(7)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	c.BurstAmplitude = byte(ba)

	scp, err := br.ReadBits(8)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	c.SubCarrierPhase = byte(scp)

	return c, nil
}

// PictureCodingExtension carries per-picture coding parameters that have
// no MPEG-1 equivalent: motion vector f-codes for each of up to two
// reference/field directions, intra DC precision, field/frame structure
// flags, and scan/quantisation mode flags.
type PictureCodingExtension struct {
	FCode [2][2]byte // [forward/backward][horizontal/vertical], 4-bit each.

	IntraDCPrecision         byte // 2-bit.
	PictureStructure         byte // 2-bit.
	TopFieldFirst            bool
	FramePredFrameDCT        bool
	ConcealmentMotionVectors bool
	QScaleType               bool
	IntraVLCFormat           bool
	AlternateScan            bool
	RepeatFirstField         bool
	Chroma420Type            bool
	ProgressiveFrame         bool

	CompositeDisplay *CompositeDisplayData
}

// NewPictureCodingExtension parses a PictureCodingExtension from br,
// which must be positioned at an extension_start_code whose following
// nibble is PictureCodingExtensionID.
func NewPictureCodingExtension(br *bits.BitReader) (*PictureCodingExtension, error) {
	code, err := br.ReadBits(32)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if code != 0x00000100|uint32(ExtensionStartCode) {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "picture_coding_extension: extension_start_code")
	}

	id, err := br.ReadBits(4)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if id != PictureCodingExtensionID {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "picture_coding_extension: extension_start_code_identifier")
	}

	pce := &PictureCodingExtension{}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, err := br.ReadBits(4)
			if err != nil {
				return nil, errors.Wrap(psderr.ErrIO, err.Error())
			}
			pce.FCode[i][j] = byte(v)
		}
	}

	idc, err := br.ReadBits(2)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	pce.IntraDCPrecision = byte(idc)

	ps, err := br.ReadBits(2)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	pce.PictureStructure = byte(ps)

	fields := []*bool{
		&pce.TopFieldFirst,
		&pce.FramePredFrameDCT,
		&pce.ConcealmentMotionVectors,
		&pce.QScaleType,
		&pce.IntraVLCFormat,
		&pce.AlternateScan,
		&pce.RepeatFirstField,
		&pce.Chroma420Type,
		&pce.ProgressiveFrame,
	}
	for _, f := range fields {
		v, err := br.ReadFlag()
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		*f = v
	}

	composite, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if composite {
		c, err := newCompositeDisplayData(br)
		if err != nil {
			return nil, err
		}
		pce.CompositeDisplay = c
	}

	return pce, nil
}
