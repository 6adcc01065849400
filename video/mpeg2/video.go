/*
DESCRIPTION
  video.go provides Video, the outer driver that walks an MPEG-2 video
  elementary stream as a sequence of Sequence blocks terminated by a
  sequence_end_code.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mpeg2

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/bits"
	"github.com/ausocean/psdemux/psderr"
)

// Video is the result of walking an MPEG-2 video elementary stream: one
// or more Sequences, in order.
type Video struct {
	Sequences []*Sequence
}

// Parse walks r as an MPEG-2 video elementary stream. If infoOnly is
// true, Parse returns once the first Sequence has been parsed; that walk
// covers every group and picture of the sequence, not only its headers.
// Otherwise it walks every Sequence through to the sequence_end_code.
func Parse(r io.Reader, infoOnly bool) (*Video, error) {
	br := bits.NewBitReader(r)

	xx, ok, err := peekStartCode(br)
	if err != nil {
		return nil, err
	}
	if !ok || xx != SequenceHeaderCode {
		return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "video: does not start with a sequence_header_code")
	}

	v := &Video{}

	for {
		seq, err := NewSequence(br)
		if err != nil {
			return nil, err
		}
		v.Sequences = append(v.Sequences, seq)

		if infoOnly {
			return v, nil
		}

		xx, ok, err := peekStartCode(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrap(psderr.ErrIO, "video: unexpected end of stream")
		}
		if xx == SequenceEndCode {
			return v, nil
		}
		if xx != SequenceHeaderCode {
			return nil, errors.Wrap(psderr.ErrMalformedVideoStream, "video: expected sequence_header_code or sequence_end_code")
		}
	}
}
