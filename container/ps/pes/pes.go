/*
DESCRIPTION
  pes.go provides the top-level PES packet walker: the fixed 6-byte
  start-code/stream_id/length prefix, dispatch over stream_id, and the
  lazily-skipped payload range.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pes parses MPEG-2 Program Stream PES packet framing and the
// optional PES header sub-fields it may carry.
package pes

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/psderr"
)

// Packet describes one PES packet discovered while walking a Pack. Payload
// bytes are never read by Parse; PayloadOffset/PayloadLength describe where
// they live in the underlying file for later lazy retrieval.
type Packet struct {
	Offset           int64
	StreamID         byte
	SubStreamID      byte
	HasSubStreamID   bool
	Length           uint16 // pes_packet_length: bytes following this field.
	HeaderLength      int    // bytes from Offset to the start of the payload.
	PayloadOffset    int64
	PayloadLength    int
	Flags            *FlagData // nil for opaque/padding stream packets.
}

// Parse reads one PES packet from r, which must be positioned at a
// packet_start_code_prefix (00 00 01), and leaves r positioned immediately
// after the packet (payload skipped via seek, not read).
func Parse(r io.ReadSeeker) (*Packet, error) {
	offset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	prefix := make([]byte, 6)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if prefix[0] != 0 || prefix[1] != 0 || prefix[2] != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "pes: packet_start_code_prefix")
	}

	p := &Packet{
		Offset:   offset,
		StreamID: prefix[3],
		Length:   binary.BigEndian.Uint16(prefix[4:6]),
	}

	switch {
	case p.StreamID == PaddingStream:
		p.HeaderLength = 6
		p.PayloadOffset = offset + 6
		p.PayloadLength = int(p.Length)
		if _, err := r.Seek(int64(p.Length), io.SeekCurrent); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}

	case isOpaque(p.StreamID):
		p.HeaderLength = 6
		p.PayloadOffset = offset + 6
		p.PayloadLength = int(p.Length)
		if _, err := r.Seek(int64(p.Length), io.SeekCurrent); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}

	default:
		fd, err := ParseFlagData(r)
		if err != nil {
			return nil, err
		}
		p.Flags = fd
		p.HeaderLength = 6 + fd.BytesConsumed()
		p.PayloadOffset = p.Offset + int64(p.HeaderLength)
		p.PayloadLength = int(p.Length) - fd.BytesConsumed()
		if p.PayloadLength < 0 {
			return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "pes: pes_packet_length shorter than parsed header")
		}

		if p.StreamID == PrivateStream1 && p.PayloadLength > 0 {
			sub := make([]byte, 1)
			if _, err := io.ReadFull(r, sub); err != nil {
				return nil, errors.Wrap(psderr.ErrIO, err.Error())
			}
			p.SubStreamID = sub[0]
			p.HasSubStreamID = true
			if _, err := r.Seek(-1, io.SeekCurrent); err != nil {
				return nil, errors.Wrap(psderr.ErrIO, err.Error())
			}
		}

		if _, err := r.Seek(int64(p.PayloadLength), io.SeekCurrent); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
	}

	return p, nil
}
