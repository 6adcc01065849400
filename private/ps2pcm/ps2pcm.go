/*
DESCRIPTION
  ps2pcm.go provides the PS2 PCM recognizer: detects the PlayStation 2
  PCM sub-header layout carried in private_stream_1 PES packets, and
  builds a synthesized WAV stream over the recognized audio segments
  with interleave-block reinterleaving applied on read.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ps2pcm recognizes the PlayStation 2 interleaved PCM sub-stream
// layout within private_stream_1 PES packets, and assembles the
// recognized payload segments into a standard interleaved WAV stream.
package ps2pcm

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/container/ps/pes"
	"github.com/ausocean/psdemux/private"
	"github.com/ausocean/psdemux/psderr"
)

// Fixed offsets and lengths within a PS2 PCM sub-header, captured from
// the reference decoder this format was reverse-engineered from.
const (
	fullHeaderLength = 0x3F // length of the sub-header on the first PES.
	subHeaderLength  = 0x17 // length of the sub-header on later PES.
	interleaveBlock  = 0x200

	// subHeaderBlockOverhead is the fixed amount subtracted from
	// block_size to get a subsequent packet's audio data length, per the
	// reference decoder's own data_size = block_size - 0x11.
	subHeaderBlockOverhead = 0x11
)

// Header is the fixed sub-header PS2 PCM prepends to the first
// private_stream_1 PES packet of a sub-stream.
type Header struct {
	StreamAudioType byte
	StreamNumber    uint16
	AudioType       byte // 0 PCM-BE, 1 PCM-LE, 2 VAG.
	SamplingRate    uint32
	NumChannels     uint32
	InterleaveSize  uint32
	LoopStart       uint32
	LoopEnd         uint32
	TotalAudioSize  uint32
}

func parseHeader(payload []byte) (*Header, bool) {
	if len(payload) < fullHeaderLength {
		return nil, false
	}
	if payload[0] != 0 || payload[1] != 0 || payload[2] != 1 || payload[3] != pes.PrivateStream1 {
		return nil, false
	}
	sat := payload[0x14]
	if sat != 0xA0 && sat != 0xA1 {
		return nil, false
	}
	if string(payload[0x17:0x1B]) != "SShd" {
		return nil, false
	}
	if string(payload[0x37:0x3B]) != "SSbd" {
		return nil, false
	}

	h := &Header{
		StreamAudioType: sat,
		StreamNumber:    binary.LittleEndian.Uint16(payload[0x15:0x17]),
		AudioType:       payload[0x1F],
		SamplingRate:    binary.LittleEndian.Uint32(payload[0x23:0x27]),
		NumChannels:     binary.LittleEndian.Uint32(payload[0x27:0x2B]),
		InterleaveSize:  binary.LittleEndian.Uint32(payload[0x2B:0x2F]),
		LoopStart:       binary.LittleEndian.Uint32(payload[0x2F:0x33]),
		LoopEnd:         binary.LittleEndian.Uint32(payload[0x33:0x37]),
		TotalAudioSize:  binary.LittleEndian.Uint32(payload[0x3B:0x3F]),
	}
	if h.AudioType > 2 {
		return nil, false
	}
	if h.InterleaveSize != interleaveBlock {
		return nil, false
	}
	if h.NumChannels == 0 || h.TotalAudioSize%(h.NumChannels*interleaveBlock) != 0 {
		return nil, false
	}
	return h, true
}

// Recognizer recognizes a single PS2 PCM sub-stream within a
// private_stream_1 stream.
type Recognizer struct {
	Header *Header
}

var _ private.Recognizer = (*Recognizer)(nil)

// First reports whether packet carries a valid full PS2 PCM sub-header.
func (r *Recognizer) First(packet *pes.Packet, raw []byte) (private.Recognition, bool, error) {
	h, ok := parseHeader(raw)
	if !ok {
		return private.Recognition{}, false, nil
	}
	r.Header = h
	return private.Recognition{
		Offset: packet.Offset + fullHeaderLength,
		Length: len(raw) - fullHeaderLength,
	}, true, nil
}

// Subsequent validates a later packet using the shorter 23-byte
// sub-header layout.
func (r *Recognizer) Subsequent(packet *pes.Packet, raw []byte) (private.Recognition, bool, error) {
	if r.Header == nil {
		return private.Recognition{}, false, errors.Wrap(psderr.ErrWrongPrivateStream, "ps2pcm: Subsequent called before First")
	}
	if len(raw) < subHeaderLength {
		return private.Recognition{}, false, nil
	}
	if raw[0] != 0 || raw[1] != 0 || raw[2] != 1 || raw[3] != pes.PrivateStream1 {
		return private.Recognition{}, false, nil
	}
	if raw[0x14] != r.Header.StreamAudioType {
		return private.Recognition{}, false, nil
	}

	blockSize := int(binary.BigEndian.Uint16(raw[4:6]))
	return private.Recognition{
		Offset: packet.Offset + subHeaderLength,
		Length: blockSize - subHeaderBlockOverhead,
	}, true, nil
}
