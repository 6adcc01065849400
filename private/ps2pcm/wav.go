/*
DESCRIPTION
  wav.go builds a standard interleaved WAV stream over a PS2 PCM
  sub-stream's recognized payload segments, synthesizing a RIFF header
  and reinterleaving the per-channel 0x200-byte blocks PS2 PCM stores on
  read.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ps2pcm

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/stream"
)

const bitDepth = 16

var errShortfallTooLarge = errors.New("ps2pcm: audio shortfall exceeds one interleave block")

// WAVHeader returns the 44-byte RIFF/WAVE/fmt /data header for a PS2 PCM
// stream, sized against h.TotalAudioSize the way the rest of this module
// measures audio data.
func WAVHeader(h *Header) []byte {
	buf := make([]byte, 44)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36+h.TotalAudioSize)
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM.
	binary.LittleEndian.PutUint16(buf[22:24], uint16(h.NumChannels))
	binary.LittleEndian.PutUint32(buf[24:28], h.SamplingRate)
	byteRate := h.SamplingRate * h.NumChannels * (bitDepth / 8)
	binary.LittleEndian.PutUint32(buf[28:32], byteRate)
	blockAlign := uint16(h.NumChannels * (bitDepth / 8))
	binary.LittleEndian.PutUint16(buf[32:34], blockAlign)
	binary.LittleEndian.PutUint16(buf[34:36], bitDepth)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], h.TotalAudioSize)
	return buf
}

// BuildSegments assembles the synthesized WAV header segment and the
// recognized audio payload segments (in file order, against the shared
// file handle) into the list a stream.SegmentedReader needs. If the
// summed payload falls short of h.TotalAudioSize — a known PS2 encoder
// rounding quirk — a zero-padding segment covers the shortfall, which
// must be less than one interleave block per channel.
func BuildSegments(h *Header, handle io.ReadSeeker, offsets []int64, lengths []int) ([]stream.Segment, error) {
	header := WAVHeader(h)
	segs := make([]stream.Segment, 0, len(offsets)+2)
	segs = append(segs, stream.NewMemorySegment(header, 0))

	v := int64(len(header))
	var total int64
	for i := range offsets {
		segs = append(segs, stream.Segment{
			Handle:   handle,
			Physical: offsets[i],
			Virtual:  v,
			Length:   int64(lengths[i]),
		})
		v += int64(lengths[i])
		total += int64(lengths[i])
	}

	shortfall := int64(h.TotalAudioSize) - total
	if shortfall > 0 {
		maxShortfall := int64(h.NumChannels) * interleaveBlock
		if shortfall >= maxShortfall {
			return nil, errShortfallTooLarge
		}
		segs = append(segs, stream.NewMemorySegment(make([]byte, shortfall), v))
	}

	return segs, nil
}
