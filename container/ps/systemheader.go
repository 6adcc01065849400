/*
DESCRIPTION
  systemheader.go provides the MPEG-2 Program Stream system header: the
  fixed 12-byte rate-bound/audio-bound/video-bound block followed by a
  variable list of per-stream bound descriptors.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ps

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/psderr"
)

// StreamBound is a P-STD bound for a single stream_id, either the 3-byte
// common form or the 6-byte extended form, which is selected by a
// stream_id of 0xB7 in the first byte.
type StreamBound struct {
	StreamID    byte
	Extended    bool
	PSTDBufferBoundScale byte
	PSTDBufferSizeBound  uint16

	// Fields valid only when Extended is true.
	SubStreamID byte
}

func parseStreamBound(r io.Reader) (*StreamBound, error) {
	b := make([]byte, 1)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	// stream_id == 0xB7 selects the 6-byte extended descriptor, which
	// carries a stream_id_extension in place of the usual audio/video
	// stream number; every other stream_id uses the 3-byte standard form.
	if b[0] == 0xB7 {
		rest := make([]byte, 5)
		if _, err := io.ReadFull(r, rest); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		if rest[0]&0xC0 != 0x40 {
			return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: stream_id_extension marker bits")
		}
		if rest[1]&0x01 != 1 {
			return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: marker_bit after stream_id_extension")
		}
		if rest[2]&0xC0 != 0xC0 {
			return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: pstd marker bits")
		}
		return &StreamBound{
			StreamID:             b[0],
			Extended:             true,
			SubStreamID:          (rest[0] & 0x7E) >> 1,
			PSTDBufferBoundScale: (rest[2] & 0x20) >> 5,
			PSTDBufferSizeBound:  uint16(rest[2]&0x1F)<<8 | uint16(rest[3]),
		}, nil
	}

	rest := make([]byte, 2)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if rest[0]&0xC0 != 0xC0 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: stream_id marker bits")
	}
	return &StreamBound{
		StreamID:             b[0],
		PSTDBufferBoundScale: (rest[0] & 0x20) >> 5,
		PSTDBufferSizeBound:  uint16(rest[0]&0x1F)<<8 | uint16(rest[1]),
	}, nil
}

// SystemHeader describes the multiplexing constraints that apply to the
// rest of the program stream: overall rate bound, stream counts, and a
// per-stream list of P-STD buffer bounds.
type SystemHeader struct {
	HeaderLength                uint16
	RateBound                   uint32
	AudioBound                  byte
	FixedFlag                   bool
	CSPSFlag                    bool
	SystemAudioLockFlag         bool
	SystemVideoLockFlag         bool
	VideoBound                  byte
	PacketRateRestrictionFlag   bool
	Streams                     []*StreamBound
}

// ParseSystemHeader reads a SystemHeader from r, which must be positioned
// at a system_header_start_code.
func ParseSystemHeader(r io.ReadSeeker) (*SystemHeader, error) {
	b := make([]byte, 12)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if b[0] != 0 || b[1] != 0 || b[2] != 1 || b[3] != 0xBB {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "system_header: start code")
	}

	sh := &SystemHeader{
		HeaderLength: uint16(b[4])<<8 | uint16(b[5]),
	}

	if b[6]&0x80 != 0x80 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: marker_bit")
	}
	sh.RateBound = uint32(b[6]&0x7F)<<15 | uint32(b[7])<<7 | uint32(b[8]&0xFE)>>1
	if b[8]&0x01 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: marker_bit after rate_bound")
	}

	sh.AudioBound = (b[9] & 0xFC) >> 2
	sh.FixedFlag = b[9]&0x02 != 0
	sh.CSPSFlag = b[9]&0x01 != 0

	sh.SystemAudioLockFlag = b[10]&0x80 != 0
	sh.SystemVideoLockFlag = b[10]&0x40 != 0
	if b[10]&0x20 != 0x20 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "system_header: marker_bit before video_bound")
	}
	sh.VideoBound = b[10] & 0x1F

	sh.PacketRateRestrictionFlag = b[11]&0x80 != 0

	for {
		peek := make([]byte, 1)
		if _, err := io.ReadFull(r, peek); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		if _, err := r.Seek(-1, io.SeekCurrent); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		if peek[0]&0x80 == 0 {
			break
		}

		sb, err := parseStreamBound(r)
		if err != nil {
			return nil, err
		}
		sh.Streams = append(sh.Streams, sb)
	}

	return sh, nil
}
