/*
DESCRIPTION
  segment.go provides the Segment type: one physically contiguous range
  of bytes mapped into a virtual stream, and the in-memory handle used to
  synthesize segments (e.g. a generated WAV header) that have no
  physical file backing.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stream provides a virtual seekable byte stream synthesized from
// an ordered list of physical segments, used to present a Program Stream's
// scattered PES payload bytes as one contiguous elementary stream without
// copying them at index time.
package stream

import (
	"bytes"
	"io"
)

// Segment is one physically contiguous run of bytes mapped into a
// SegmentedReader's virtual address space.
type Segment struct {
	Handle   io.ReadSeeker
	Physical int64 // offset into Handle where this segment's bytes start.
	Virtual  int64 // offset into the virtual stream where this segment starts.
	Length   int64
}

// end returns the exclusive virtual end of the segment.
func (s Segment) end() int64 { return s.Virtual + s.Length }

// NewMemorySegment wraps b as a synthesized segment starting at virtual
// offset v, for prepending generated bytes (a WAV header, zero-padding)
// ahead of or between physical payload segments.
func NewMemorySegment(b []byte, v int64) Segment {
	return Segment{
		Handle:   bytes.NewReader(b),
		Physical: 0,
		Virtual:  v,
		Length:   int64(len(b)),
	}
}
