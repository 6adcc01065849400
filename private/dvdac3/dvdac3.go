/*
DESCRIPTION
  dvdac3.go provides the DVD AC-3 recognizer: detects an AC-3 audio
  elementary stream carried in a private_stream_1 PES sub-stream, the
  layout DVD-Video uses, and locates its payload past the fixed
  4-byte AC-3 sub-header.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dvdac3 recognizes DVD-Video's AC-3 audio sub-stream layout
// within private_stream_1 PES packets.
package dvdac3

import (
	"github.com/ausocean/psdemux/container/ps/pes"
	"github.com/ausocean/psdemux/private"
)

// subHeaderLength is the fixed AC-3 sub-header DVD-Video prepends to
// every private_stream_1 payload carrying AC-3: stream_id (1 byte),
// frame_number (1 byte), first_access_unit_pointer (2 bytes).
const subHeaderLength = 4

// ac3StreamIDBase is the private_stream_1 sub-stream byte identifying an
// AC-3 audio stream. First accepts only this value; the other ids of the
// 0x81..0x87 range are not recognized.
const ac3StreamIDBase = 0x80

var ac3SyncWord = [2]byte{0x0B, 0x77}

// Recognizer recognizes a single AC-3 sub-stream within a
// private_stream_1 stream. The zero value is ready to use.
type Recognizer struct {
	subStreamID byte
}

var _ private.Recognizer = (*Recognizer)(nil)

// First reports whether packet carries an AC-3 sub-header followed by
// the AC-3 sync word.
func (r *Recognizer) First(packet *pes.Packet, raw []byte) (private.Recognition, bool, error) {
	if packet.StreamID != pes.PrivateStream1 {
		return private.Recognition{}, false, nil
	}
	if packet.Flags == nil || packet.HeaderLength != 0x11 {
		return private.Recognition{}, false, nil
	}
	if len(raw) < packet.HeaderLength+subHeaderLength+2 {
		return private.Recognition{}, false, nil
	}
	payload := raw[packet.HeaderLength:]
	if payload[0] != ac3StreamIDBase {
		return private.Recognition{}, false, nil
	}
	if payload[subHeaderLength] != ac3SyncWord[0] || payload[subHeaderLength+1] != ac3SyncWord[1] {
		return private.Recognition{}, false, nil
	}

	r.subStreamID = payload[0]

	return private.Recognition{
		Offset: packet.PayloadOffset + subHeaderLength,
		Length: packet.PayloadLength - subHeaderLength,
	}, true, nil
}

// Subsequent validates a later packet of the same sub-stream using only
// the cheap checks: sub-header stream_id and HeaderLength.
func (r *Recognizer) Subsequent(packet *pes.Packet, raw []byte) (private.Recognition, bool, error) {
	if packet.StreamID != pes.PrivateStream1 {
		return private.Recognition{}, false, nil
	}
	if packet.HeaderLength != 0x11 {
		return private.Recognition{}, false, nil
	}
	if len(raw) < packet.HeaderLength+subHeaderLength {
		return private.Recognition{}, false, nil
	}
	payload := raw[packet.HeaderLength:]
	if payload[0] != r.subStreamID {
		return private.Recognition{}, false, nil
	}

	return private.Recognition{
		Offset: packet.PayloadOffset + subHeaderLength,
		Length: packet.PayloadLength - subHeaderLength,
	}, true, nil
}
