/*
DESCRIPTION
  reinterleave.go provides ReinterleavedReader, which presents a PS2 PCM
  stream's per-channel 0x200-byte interleave blocks as standard
  sample-interleaved WAV audio data, reading and reinterleaving one
  full interleave group (NumChannels blocks of 16-bit samples) at a time.

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
	"io"

	"github.com/ausocean/psdemux/stream"
)

// ReinterleavedReader wraps a SegmentedReader positioned at the start of
// a PS2 PCM stream's WAV header and re-orders each group of
// NumChannels interleave blocks into standard per-sample interleaved
// 16-bit audio on read. The header bytes pass through unchanged; only
// the data chunk is reinterleaved.
//
// PS2 PCM stores channel 0's first interleaveBlock bytes, then channel
// 1's first interleaveBlock bytes, and so on; a reinterleaved WAV
// instead alternates sample-by-sample across channels. A one-group
// cache avoids redoing the reinterleave on small sequential reads.
type ReinterleavedReader struct {
	r           *stream.SegmentedReader
	numChannels int
	headerLen   int64

	group    []byte // one reinterleaved group of numChannels*interleaveBlock bytes.
	groupPos int
	groupEnd int // valid bytes in group; 0 before the first fill and once the source is exhausted.
}

// NewReinterleavedReader wraps r, whose first headerLen bytes are the
// synthesized WAV header (passed through unchanged) and whose remaining
// bytes are numChannels-way PS2 interleave blocks.
func NewReinterleavedReader(r *stream.SegmentedReader, numChannels int, headerLen int64) *ReinterleavedReader {
	return &ReinterleavedReader{r: r, numChannels: numChannels, headerLen: headerLen}
}

// Read implements io.Reader.
func (rr *ReinterleavedReader) Read(p []byte) (int, error) {
	if pos := rr.r.Tell(); pos < rr.headerLen {
		if rem := rr.headerLen - pos; int64(len(p)) > rem {
			p = p[:rem]
		}
		n, err := rr.r.Read(p)
		return n, err
	}

	if rr.groupPos >= rr.groupEnd {
		if err := rr.fillGroup(); err != nil {
			return 0, err
		}
		if rr.groupEnd == 0 {
			return 0, io.EOF
		}
	}

	n := copy(p, rr.group[rr.groupPos:rr.groupEnd])
	rr.groupPos += n
	return n, nil
}

// fillGroup reads one full interleave group from the underlying
// SegmentedReader and reinterleaves it in place.
func (rr *ReinterleavedReader) fillGroup() error {
	raw := make([]byte, rr.numChannels*interleaveBlock)
	n, err := io.ReadFull(rr.r, raw)
	if err != nil && err != io.ErrUnexpectedEOF {
		return err
	}
	if n == 0 {
		rr.groupEnd = 0
		return nil
	}
	raw = raw[:n]

	rr.group = reinterleave(raw, rr.numChannels)
	rr.groupPos = 0
	rr.groupEnd = len(rr.group)
	return nil
}

// reinterleave re-orders raw, which holds numChannels consecutive
// interleaveBlock-byte runs of 16-bit little-endian samples (one run per
// channel), into standard per-sample channel-interleaved order. raw may
// be shorter than a full group on the final, possibly partial, group.
func reinterleave(raw []byte, numChannels int) []byte {
	const bytesPerSample = 2
	samplesPerChannel := len(raw) / numChannels / bytesPerSample

	out := make([]byte, samplesPerChannel*numChannels*bytesPerSample)
	for ch := 0; ch < numChannels; ch++ {
		block := raw[ch*samplesPerChannel*bytesPerSample : (ch+1)*samplesPerChannel*bytesPerSample]
		for s := 0; s < samplesPerChannel; s++ {
			src := block[s*bytesPerSample : s*bytesPerSample+bytesPerSample]
			dstOff := (s*numChannels + ch) * bytesPerSample
			copy(out[dstOff:dstOff+bytesPerSample], src)
		}
	}
	return out
}
