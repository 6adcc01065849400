/*
DESCRIPTION
  crc.go provides the previous-PES-packet-CRC sub-header.

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
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/psderr"
)

// CRC is the two-byte previous-PES-packet-CRC sub-header.
type CRC struct {
	PreviousPacketCRC uint16
}

func parseCRC(r io.Reader) (*CRC, error) {
	b := make([]byte, 2)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	return &CRC{PreviousPacketCRC: binary.BigEndian.Uint16(b)}, nil
}
