/*
DESCRIPTION
  stdbuf.go provides the P-STD buffer descriptor sub-header.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pes

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/psderr"
)

// PSTDBuffer is the two-byte P-STD buffer descriptor nested inside an
// Extension sub-header.
type PSTDBuffer struct {
	Scale byte   // p_std_buffer_scale.
	Size  uint16 // 13-bit p_std_buffer_size.
}

func parsePSTDBuffer(r io.Reader) (*PSTDBuffer, error) {
	b := make([]byte, 2)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if b[0]>>6 != 0b01 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "pstdbuf: prefix")
	}
	return &PSTDBuffer{
		Scale: (b[0] & 0x20) >> 5,
		Size:  uint16(b[0]&0x1F)<<8 | uint16(b[1]),
	}, nil
}
