/*
DESCRIPTION
  reader.go provides SegmentedReader, a virtual io.ReadSeeker built from
  an ordered list of Segments with strictly contiguous virtual ranges.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stream

import (
	"errors"
	"io"
	"sort"
)

// SegmentedReader presents an ordered list of Segments as one contiguous,
// seekable virtual stream. Reads against a segment's Handle seek that
// handle first, since segments may share a handle (and therefore a
// cursor) with other segments or other SegmentedReaders.
type SegmentedReader struct {
	segments []Segment
	total    int64

	idx    int   // index of the segment containing pos.
	offset int64 // offset within segments[idx].
	pos    int64 // virtual position, == tell().
}

// NewSegmentedReader builds a SegmentedReader over segments, which must
// have strictly non-overlapping, contiguous virtual ranges starting at 0.
// segments need not be pre-sorted; NewSegmentedReader sorts them by
// Virtual before validating contiguity.
func NewSegmentedReader(segments []Segment) (*SegmentedReader, error) {
	cp := make([]Segment, len(segments))
	copy(cp, segments)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Virtual < cp[j].Virtual })

	var total int64
	for _, s := range cp {
		if s.Virtual != total {
			return nil, errors.New("stream: segments are not contiguous from 0")
		}
		if s.Length < 0 {
			return nil, errors.New("stream: segment has negative length")
		}
		total += s.Length
	}

	return &SegmentedReader{segments: cp, total: total}, nil
}

// TotalSize returns the total length of the virtual stream.
func (r *SegmentedReader) TotalSize() int64 { return r.total }

// Tell returns the current virtual position.
func (r *SegmentedReader) Tell() int64 { return r.pos }

// Read implements io.Reader over the virtual stream, switching segments
// as needed and seeking the underlying handle before each physical read.
func (r *SegmentedReader) Read(p []byte) (int, error) {
	if len(r.segments) == 0 || r.pos >= r.total {
		return 0, io.EOF
	}

	total := 0
	for total < len(p) && r.pos < r.total {
		seg := r.segments[r.idx]
		remaining := seg.Length - r.offset
		if remaining == 0 {
			r.idx++
			r.offset = 0
			continue
		}

		want := int64(len(p) - total)
		if want > remaining {
			want = remaining
		}

		if _, err := seg.Handle.Seek(seg.Physical+r.offset, io.SeekStart); err != nil {
			return total, err
		}
		n, err := io.ReadFull(seg.Handle, p[total:total+int(want)])
		total += n
		r.offset += int64(n)
		r.pos += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// ReadExact reads exactly len(buf) bytes. It returns io.EOF if no bytes
// remain, and io.ErrUnexpectedEOF if the virtual stream ends partway
// through buf.
func (r *SegmentedReader) ReadExact(buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

// Seek implements io.Seeker over the virtual stream.
func (r *SegmentedReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		target = r.total + offset
	default:
		return 0, errors.New("stream: invalid whence")
	}

	if target < 0 {
		target = 0
	}
	if target > r.total {
		target = r.total
	}

	idx := sort.Search(len(r.segments), func(i int) bool {
		return r.segments[i].end() > target
	})
	if idx == len(r.segments) {
		idx = len(r.segments) - 1
	}

	r.idx = idx
	if len(r.segments) > 0 {
		r.offset = target - r.segments[idx].Virtual
	}
	r.pos = target
	return r.pos, nil
}
