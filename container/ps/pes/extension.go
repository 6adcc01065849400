/*
DESCRIPTION
  extension.go provides the PES extension sub-header and its nested
  private-data, extension-2, and TREF blocks.

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

// PrivateData is the 16-byte PES_private_data block.
type PrivateData struct {
	Data [16]byte
}

func parsePrivateData(r io.Reader) (*PrivateData, error) {
	var p PrivateData
	if _, err := io.ReadFull(r, p.Data[:]); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	return &p, nil
}

// TrefExtension is the optional 40-bit TREF block nested in the reserved
// stream_id_extension variant of Extension2.
type TrefExtension struct {
	TREF uint64 // 33-bit time reference.
}

func parseTrefExtension(r io.Reader) (*TrefExtension, error) {
	b := make([]byte, 5)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if b[0]&0x01 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "tref: marker_0")
	}
	if b[2]&0x01 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "tref: marker_1")
	}
	if b[4]&0x01 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "tref: marker_2")
	}
	tref := uint64(b[0]&0x0E)>>1<<30 |
		uint64(b[1])<<22 |
		uint64(b[2]&0xFE)>>1<<15 |
		uint64(b[3])<<7 |
		uint64(b[4]&0xFE)>>1
	return &TrefExtension{TREF: tref}, nil
}

// Extension2 is the variable-length PES_extension_field_2 block. Exactly
// one of StreamIDExtension or TREF (nil unless the reserved variant carries
// a TREF extension) is meaningful, selected by the stream_id_extension_flag
// bit.
type Extension2 struct {
	FieldLength         byte
	StreamIDExtFlag     byte
	StreamIDExtension   byte // valid iff StreamIDExtFlag == 0
	TREF                *TrefExtension
}

func parseExtension2(r io.Reader) (*Extension2, error) {
	b := make([]byte, 2)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if b[0]>>7 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "extension2: marker_0")
	}
	e := &Extension2{
		FieldLength:     b[0] & 0x7F,
		StreamIDExtFlag: (b[1] & 0x80) >> 7,
	}
	if e.StreamIDExtFlag == 0 {
		e.StreamIDExtension = b[1] & 0x7F
		return e, nil
	}
	trefExtFlag := b[1] & 0x01
	if trefExtFlag == 0 {
		tref, err := parseTrefExtension(r)
		if err != nil {
			return nil, err
		}
		e.TREF = tref
	}
	return e, nil
}

// ExtensionFlag is the variable-length PES extension sub-header.
// pack_header_field_flag is required to be 0; this system does not support
// a pack header embedded in a PES extension.
type ExtensionFlag struct {
	PrivateData                  *PrivateData
	ProgramPacketSequenceCounter *ProgramPacketSequenceCounter
	PSTDBuffer                   *PSTDBuffer
	Extension2                   *Extension2
}

func parseExtensionFlag(r io.Reader) (*ExtensionFlag, error) {
	b := make([]byte, 1)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	e := &ExtensionFlag{}

	if b[0]&0x80 != 0 {
		pd, err := parsePrivateData(r)
		if err != nil {
			return nil, err
		}
		e.PrivateData = pd
	}

	if b[0]&0x40 != 0 {
		return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "extension: pack_header_field_flag set")
	}

	if b[0]&0x20 != 0 {
		c, err := parseProgramPacketSequenceCounter(r)
		if err != nil {
			return nil, err
		}
		e.ProgramPacketSequenceCounter = c
	}

	if b[0]&0x10 != 0 {
		s, err := parsePSTDBuffer(r)
		if err != nil {
			return nil, err
		}
		e.PSTDBuffer = s
	}

	if b[0]&0x01 != 0 {
		e2, err := parseExtension2(r)
		if err != nil {
			return nil, err
		}
		e.Extension2 = e2
	}

	return e, nil
}
