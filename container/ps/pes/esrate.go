/*
DESCRIPTION
  esrate.go provides the elementary stream rate sub-header.

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

// ESRate is the 24-bit elementary stream rate sub-header.
type ESRate struct {
	Rate uint32 // 22-bit rate, in units of 50 bytes/s.
}

func parseESRate(r io.Reader) (*ESRate, error) {
	b := make([]byte, 3)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	rate := uint32(b[0]&0x7F)<<15 | uint32(b[1])<<7 | uint32(b[2]&0xFE)>>1
	return &ESRate{Rate: rate}, nil
}
