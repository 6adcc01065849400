/*
DESCRIPTION
  sequence.go provides the program-packet-sequence-counter sub-header.

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

// ProgramPacketSequenceCounter is the two-byte program-packet-sequence
// counter nested inside an Extension sub-header.
type ProgramPacketSequenceCounter struct {
	Counter            byte // 7-bit program_packet_sequence_counter.
	MPEG1MPEG2Ident    byte // 1-bit identifier: 1 == MPEG-2.
	OriginalStuffLen   byte // 6-bit original_stuff_length.
}

func parseProgramPacketSequenceCounter(r io.Reader) (*ProgramPacketSequenceCounter, error) {
	b := make([]byte, 2)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if b[0]>>7 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "sequence: marker_0")
	}
	if b[1]>>7 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "sequence: marker_1")
	}
	return &ProgramPacketSequenceCounter{
		Counter:          b[0] & 0x7F,
		MPEG1MPEG2Ident:  (b[1] & 0x40) >> 6,
		OriginalStuffLen: b[1] & 0x3F,
	}, nil
}
