/*
DESCRIPTION
  flagdata.go provides the top-level PES optional-header block: a 3-byte
  flag prefix followed by whichever of ~15 sub-sections the flags gate, and
  the 0xFF stuffing bytes that pad out to pes_header_data_length.

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

// FlagData is the optional PES header block present on every PES packet
// whose stream_id is not in the opaque set.
type FlagData struct {
	ScramblingControl     byte
	Priority              bool
	DataAlignment         bool
	Copyright             bool
	Original              bool
	PTSDTSFlags           byte // 0b00 none, 0b10 PTS only, 0b11 PTS+DTS.
	HeaderDataLength      byte

	PTSOnly    *PTSOnly
	PTSDTS     *PTSDTS
	ESCR       *ESCR
	ESRate     *ESRate
	TrickMode  *DSMTrickMode
	CopyInfo   *AdditionalCopyInfo
	CRC        *CRC
	Extension  *ExtensionFlag

	// bytesConsumed is the total number of bytes read from the source by
	// Parse, including the 3-byte prefix and the trailing 0xFF stuffing.
	// Callers needing a PES packet's header_length use this, not
	// HeaderDataLength (which excludes the fixed 9-byte PES/flag prefix).
	bytesConsumed int
}

// BytesConsumed reports how many bytes Parse read from the source to
// produce fd, including the fixed 3-byte prefix and trailing stuffing.
func (fd *FlagData) BytesConsumed() int { return fd.bytesConsumed }

// countingReader tallies bytes read through it so Parse can compute the
// stuffing length without a second pass.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// ParseFlagData reads a FlagData block from r, which must be positioned
// immediately after a PES packet's 6-byte start-code/stream_id/length
// prefix.
func ParseFlagData(r io.Reader) (*FlagData, error) {
	b := make([]byte, 3)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	cr := &countingReader{r: r}

	if b[0]>>6 != 0b10 {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "flagdata: prefix")
	}

	fd := &FlagData{
		ScramblingControl: (b[0] & 0x30) >> 4,
		Priority:          b[0]&0x08 != 0,
		DataAlignment:     b[0]&0x04 != 0,
		Copyright:         b[0]&0x02 != 0,
		Original:          b[0]&0x01 != 0,
		PTSDTSFlags:       (b[1] & 0xC0) >> 6,
		HeaderDataLength:  b[2],
	}

	escrFlag := b[1]&0x20 != 0
	esRateFlag := b[1]&0x10 != 0
	dsmTrickModeFlag := b[1]&0x08 != 0
	copyInfoFlag := b[1]&0x04 != 0
	crcFlag := b[1]&0x02 != 0
	extensionFlag := b[1]&0x01 != 0

	switch fd.PTSDTSFlags {
	case 0b00:
		// No timestamps present.
	case 0b10:
		p, err := parsePTSOnly(cr)
		if err != nil {
			return nil, err
		}
		fd.PTSOnly = p
	case 0b11:
		p, err := parsePTSDTS(cr)
		if err != nil {
			return nil, err
		}
		fd.PTSDTS = p
	default: // 0b01 is forbidden.
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "flagdata: pts_dts_flags == 0b01 is forbidden")
	}

	if escrFlag {
		e, err := parseESCR(cr)
		if err != nil {
			return nil, err
		}
		fd.ESCR = e
	}

	if esRateFlag {
		e, err := parseESRate(cr)
		if err != nil {
			return nil, err
		}
		fd.ESRate = e
	}

	if dsmTrickModeFlag {
		t, err := parseDSMTrickMode(cr)
		if err != nil {
			return nil, err
		}
		fd.TrickMode = t
	}

	if copyInfoFlag {
		c, err := parseAdditionalCopyInfo(cr)
		if err != nil {
			return nil, err
		}
		fd.CopyInfo = c
	}

	if crcFlag {
		c, err := parseCRC(cr)
		if err != nil {
			return nil, err
		}
		fd.CRC = c
	}

	if extensionFlag {
		e, err := parseExtensionFlag(cr)
		if err != nil {
			return nil, err
		}
		fd.Extension = e
	}

	stuffLen := int(fd.HeaderDataLength) - cr.n
	if stuffLen < 0 {
		return nil, errors.Wrap(psderr.ErrUnsupportedFormat, "flagdata: pes_header_data_length shorter than parsed sub-headers")
	}
	if stuffLen > 0 {
		stuff := make([]byte, stuffLen)
		if _, err := io.ReadFull(cr, stuff); err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		for _, s := range stuff {
			if s != 0xFF {
				return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "flagdata: non-0xFF stuffing byte")
			}
		}
	}

	fd.bytesConsumed = 3 + cr.n
	return fd, nil
}
