/*
DESCRIPTION
  groupofpictures.go provides GroupOfPictureHeader, the 8-byte block
  opening a group of pictures.

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

// GroupOfPictureHeader is the fixed 8-byte block opening a group of
// pictures.
type GroupOfPictureHeader struct {
	TimeCode   uint32 // 25-bit.
	ClosedGOP  bool
	BrokenLink bool
}

// NewGroupOfPictureHeader parses a GroupOfPictureHeader from br, which
// must be positioned at a group_start_code.
func NewGroupOfPictureHeader(br *bits.BitReader) (*GroupOfPictureHeader, error) {
	code, err := br.ReadBits(32)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if code != 0x00000100|uint32(GroupStartCode) {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "group_of_pictures: start code")
	}

	g := &GroupOfPictureHeader{}

	tc, err := br.ReadBits(25)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	g.TimeCode = tc

	closed, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	g.ClosedGOP = closed

	broken, err := br.ReadFlag()
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	g.BrokenLink = broken

	// Five reserved bits pad this block out to a byte boundary.
	if _, err := br.ReadBits(5); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	return g, nil
}
