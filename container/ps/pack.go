/*
DESCRIPTION
  pack.go provides the outermost MPEG-2 Program Stream multiplexing unit:
  pack header framing, SCR/mux-rate decoding, and the PES packets it
  contains.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ps parses MPEG-2 Program Stream files: pack and system headers,
// and the top-level per-stream packet index built by walking them.
package ps

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/container/ps/pes"
	"github.com/ausocean/psdemux/psderr"
)

// PackStartCode and ProgramEndCode delimit a pack and the end of a program
// stream respectively.
var (
	PackStartCode   = [4]byte{0x00, 0x00, 0x01, 0xBA}
	ProgramEndCode  = [4]byte{0x00, 0x00, 0x01, 0xB9}
	SystemHeaderCode = [4]byte{0x00, 0x00, 0x01, 0xBB}
)

// Pack is one pack-layer multiplexing unit: a fixed 14-byte header
// (system clock reference, program mux rate, stuffing), an optional
// SystemHeader, and the PES packets it contains.
type Pack struct {
	Offset  int64
	SCR     uint64 // system_clock_reference = 300*SCR_base + SCR_ext.
	SCRBase uint64
	SCRExt  uint16
	MuxRate uint32 // bits/s.
	System  *SystemHeader
	Packets []*pes.Packet
}

// ParsePack reads one pack from r, which must be positioned at a pack
// start code, and leaves r positioned at the next pack start code or the
// program end code.
func ParsePack(r io.ReadSeeker) (*Pack, error) {
	offset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	b := make([]byte, 14)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	if b[0] != 0 || b[1] != 0 || b[2] != 1 || b[3] != PackStartCode[3] {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "pack: start code")
	}
	if (b[4]&0xC0)>>6 != 0b01 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "pack: not an MPEG-2 PS stream")
	}

	markers := []struct {
		ok   bool
		name string
	}{
		{b[4]&0x04 != 0, "marker_0"},
		{b[6]&0x04 != 0, "marker_1"},
		{b[8]&0x04 != 0, "marker_2"},
		{b[9]&0x01 != 0, "marker_3"},
		{b[12]&0x02 != 0, "marker_4"},
		{b[12]&0x01 != 0, "marker_5"},
	}
	for _, m := range markers {
		if !m.ok {
			return nil, errors.Wrap(psderr.ErrInvalidMarker, "pack: "+m.name)
		}
	}

	p := &Pack{Offset: offset}
	p.SCRBase = uint64(b[4]&0x38)>>3<<30 |
		uint64(b[4]&0x03)<<28 |
		uint64(b[5])<<20 |
		uint64(b[6]&0xF8)>>3<<15 |
		uint64(b[6]&0x03)<<13 |
		uint64(b[7])<<5 |
		uint64(b[8]&0xF8)>>3
	p.SCRExt = uint16(b[8]&0x03)<<7 | uint16(b[9]&0xFE)>>1
	p.SCR = 300*p.SCRBase + uint64(p.SCRExt)

	rate := uint32(b[10])<<14 | uint32(b[11])<<6 | uint32(b[12]&0xFC)>>2
	p.MuxRate = rate * 400 // 50 bytes/s units -> bits/s.

	stuffLen := int(b[13] & 0x07)
	if stuffLen > 0 {
		if _, err := r.Seek(int64(stuffLen), io.SeekCurrent); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
	}

	peek, err := peek4(r)
	if err != nil {
		return nil, err
	}
	if peek == SystemHeaderCode {
		sh, err := ParseSystemHeader(r)
		if err != nil {
			return nil, err
		}
		p.System = sh
	}

	for {
		peek, err = peek4(r)
		if err != nil {
			return nil, err
		}
		if peek[0] != 0 || peek[1] != 0 || peek[2] != 1 {
			return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "pack: expected start code after pack header")
		}
		if peek == PackStartCode || peek == ProgramEndCode {
			break
		}
		packet, err := pes.Parse(r)
		if err != nil {
			return nil, err
		}
		p.Packets = append(p.Packets, packet)
	}

	return p, nil
}

// peek4 reads the next 4 bytes from r without consuming them.
func peek4(r io.ReadSeeker) ([4]byte, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return b, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if _, err := r.Seek(-4, io.SeekCurrent); err != nil {
		return b, errors.Wrap(psderr.ErrIO, err.Error())
	}
	return b, nil
}
