/*
DESCRIPTION
  pts.go provides the PTS/DTS timestamp type, and the two sub-headers that
  carry it in a PES FlagData block (PTS-only and PTS+DTS).

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
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/psderr"
)

// PTS is a 33-bit presentation/decode timestamp in units of 1/90000 s.
type PTS uint64

// String renders a PTS as HH:MM:SS.mmmmmm.
func (p PTS) String() string {
	ms := float64(p) / 90
	us := int(int64(ms/1000*1e6) % 1000000)
	s := int(int64(ms/1000) % 60)
	m := int(int64(ms/(1000*60)) % 60)
	h := int(int64(ms/(1000*60*60)) % 24)
	return fmt.Sprintf("%02d:%02d:%02d.%06d", h, m, s, us)
}

func decodePTS(b []byte, prefixByte0 int) PTS {
	return PTS(uint64(b[prefixByte0]&0x0E)>>1<<30 |
		uint64(b[prefixByte0+1])<<22 |
		uint64(b[prefixByte0+2]&0xFE)>>1<<15 |
		uint64(b[prefixByte0+3])<<7 |
		uint64(b[prefixByte0+4]&0xFE)>>1)
}

// PTSOnly is the 40-bit '0010' PTS flag sub-header.
type PTSOnly struct {
	PTS PTS
}

func parsePTSOnly(r io.Reader) (*PTSOnly, error) {
	buf := make([]byte, 5)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if buf[0]>>4 != 0b0010 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "pts: prefix")
	}
	return &PTSOnly{PTS: decodePTS(buf, 0)}, nil
}

// PTSDTS is the 80-bit '0011'/'0001' PTS+DTS flag sub-header.
type PTSDTS struct {
	PTS PTS
	DTS PTS
}

func parsePTSDTS(r io.Reader) (*PTSDTS, error) {
	buf := make([]byte, 10)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if buf[0]>>4 != 0b0011 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "ptsdts: pts prefix")
	}
	if buf[5]>>4 != 0b0001 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "ptsdts: dts prefix")
	}
	return &PTSDTS{PTS: decodePTS(buf, 0), DTS: decodePTS(buf, 5)}, nil
}
