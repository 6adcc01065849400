/*
DESCRIPTION
  escr.go provides the elementary stream clock reference sub-header.

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

// ESCR is the 48-bit elementary stream clock reference sub-header.
type ESCR struct {
	Base uint64 // 33-bit base.
	Ext  uint16 // 9-bit extension.
}

func parseESCR(r io.Reader) (*ESCR, error) {
	b := make([]byte, 6)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	base := uint64(b[0]&0x38)>>3<<30 |
		uint64(b[0]&0x03)<<28 |
		uint64(b[1])<<20 |
		uint64(b[2]&0xF8)>>3<<15 |
		uint64(b[2]&0x03)<<13 |
		uint64(b[3])<<5 |
		uint64(b[4]&0xF8)>>3
	ext := uint16(b[4]&0x03)<<7 | uint16(b[5]>>1)
	return &ESCR{Base: base, Ext: ext}, nil
}
