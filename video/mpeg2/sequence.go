/*
DESCRIPTION
  sequence.go provides Sequence, the driver that parses one MPEG-2 video
  sequence: its header and extension, then the groups of pictures and
  pictures it contains, scanning past each picture's slice data without
  decoding it.

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

// scanChunkSize is the read granularity used while scanning for the next
// start code bounding a picture's slice data.
const scanChunkSize = 4096

// Picture is one coded picture within a Sequence: its header, coding
// extension, and any extensions/user data following it.
type Picture struct {
	Header     *PictureHeader
	Coding     *PictureCodingExtension
	Extensions *ExtensionAndUserData
}

// GroupOfPictures is one group-of-pictures header and the pictures
// coded under it.
type GroupOfPictures struct {
	Header     *GroupOfPictureHeader
	Extensions *ExtensionAndUserData
	Pictures   []*Picture
}

// Sequence is one complete MPEG-2 video sequence: a header and
// extension, optionally grouped pictures, and any ungrouped pictures
// coded directly.
type Sequence struct {
	Header    *SequenceHeader
	Extension *SequenceExtension
	Extras    *ExtensionAndUserData

	Groups   []*GroupOfPictures
	Pictures []*Picture // pictures not part of any GroupOfPictures.
}

// NewSequence parses one Sequence from br, which must be positioned at a
// sequence_header_code, and leaves br positioned at the next start code
// that is neither a group_start_code nor a picture_start_code (normally a
// sequence_header_code or sequence_end_code).
//
// An MPEG-2 video sequence always carries a SequenceExtension
// immediately after its SequenceHeader; its absence means the stream is
// ISO/IEC 11172-2 (MPEG-1 video), which this module does not support.
func NewSequence(br *bits.BitReader) (*Sequence, error) {
	sh, err := NewSequenceHeader(br)
	if err != nil {
		return nil, err
	}
	s := &Sequence{Header: sh}

	xx, ok, err := peekStartCode(br)
	if err != nil {
		return nil, err
	}
	if !ok || xx != ExtensionStartCode {
		return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "sequence: ISO/IEC 11172-2 (MPEG-1 video) is not supported")
	}

	se, err := NewSequenceExtension(br)
	if err != nil {
		return nil, err
	}
	s.Extension = se

	extras, err := readExtensionAndUserData(br, SequenceLevel)
	if err != nil {
		return nil, err
	}
	s.Extras = extras

	for {
		xx, ok, err := peekStartCode(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrap(psderr.ErrIO, "sequence: unexpected end of stream")
		}

		switch {
		case xx == GroupStartCode:
			g, err := parseGroupOfPictures(br)
			if err != nil {
				return nil, err
			}
			s.Groups = append(s.Groups, g)

		case xx == PictureStartCode:
			p, err := parsePicture(br)
			if err != nil {
				return nil, err
			}
			s.Pictures = append(s.Pictures, p)

		default:
			return s, nil
		}
	}
}

func parseGroupOfPictures(br *bits.BitReader) (*GroupOfPictures, error) {
	h, err := NewGroupOfPictureHeader(br)
	if err != nil {
		return nil, err
	}
	g := &GroupOfPictures{Header: h}

	extras, err := readExtensionAndUserData(br, GroupLevel)
	if err != nil {
		return nil, err
	}
	g.Extensions = extras

	for {
		xx, ok, err := peekStartCode(br)
		if err != nil {
			return nil, err
		}
		if !ok || xx != PictureStartCode {
			return g, nil
		}
		p, err := parsePicture(br)
		if err != nil {
			return nil, err
		}
		g.Pictures = append(g.Pictures, p)
	}
}

func parsePicture(br *bits.BitReader) (*Picture, error) {
	h, err := NewPictureHeader(br)
	if err != nil {
		return nil, err
	}
	p := &Picture{Header: h}

	xx, ok, err := peekStartCode(br)
	if err != nil {
		return nil, err
	}
	if ok && xx == ExtensionStartCode {
		c, err := NewPictureCodingExtension(br)
		if err != nil {
			return nil, err
		}
		p.Coding = c
	}

	extras, err := readExtensionAndUserData(br, PictureLevel)
	if err != nil {
		return nil, err
	}
	p.Extensions = extras

	if err := skipPictureData(br); err != nil {
		return nil, err
	}

	return p, nil
}

// skipPictureData scans forward in scanChunkSize-byte chunks for the next
// occurrence of a sequence_header_code, group_start_code,
// picture_start_code, or sequence_end_code, repositioning br there. No
// per-slice bit parse is performed: slice data contributes nothing to
// this module's demuxing contract.
func skipPictureData(br *bits.BitReader) error {
	for {
		b, err := br.PeekBytes(scanChunkSize)
		short := false
		if err == io.ErrUnexpectedEOF {
			// Fewer than scanChunkSize bytes remain; PeekBytes still
			// returns every byte actually available, so the scan below
			// covers the whole remaining tail, not just its first 4
			// bytes.
			short = true
		} else if err != nil {
			return errors.Wrap(psderr.ErrIO, err.Error())
		}

		for i := 0; i+3 < len(b); i++ {
			if b[i] == 0 && b[i+1] == 0 && b[i+2] == 1 && isBoundaryStartCode(b[i+3]) {
				if err := br.SkipBytes(i); err != nil {
					return errors.Wrap(psderr.ErrIO, err.Error())
				}
				return nil
			}
		}

		if short {
			// The remaining tail holds no boundary start code; the
			// stream ends here.
			return nil
		}

		if err := br.SkipBytes(scanChunkSize - 3); err != nil {
			return errors.Wrap(psderr.ErrIO, err.Error())
		}
	}
}

// isBoundaryStartCode reports whether xx delimits the end of picture
// data: the start of another sequence, group, picture, or the stream end.
func isBoundaryStartCode(xx byte) bool {
	switch xx {
	case SequenceHeaderCode, GroupStartCode, PictureStartCode, SequenceEndCode:
		return true
	default:
		return false
	}
}
