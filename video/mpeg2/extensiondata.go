/*
DESCRIPTION
  extensiondata.go provides ExtensionAndUserData, the repeated
  peek-and-dispatch loop that consumes every extension_start_code and
  user_data_start_code block following a sequence, group, or picture
  header. Every extension block this loop meets is captured as raw bytes
  rather than fully modelled, since nothing in this module's demuxing
  contract depends on their fields.

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

// ExtensionLevel distinguishes which extensions are valid at a given
// point in the grammar: sequence level, group-of-pictures level (which
// carries only user data), or picture level.
type ExtensionLevel int

const (
	SequenceLevel ExtensionLevel = iota
	GroupLevel
	PictureLevel
)

// RawExtension captures an extension block this module does not model in
// full. ID is its extension_start_code_identifier; Data holds the bytes
// from the next byte boundary after that nibble through the byte
// immediately preceding the next start code. The four bits that share a
// byte with the identifier are not kept.
type RawExtension struct {
	ID   byte
	Data []byte
}

// ExtensionAndUserData is the parsed result of repeatedly consuming
// extension and user-data blocks following a sequence, group, or picture
// header.
type ExtensionAndUserData struct {
	SequenceDisplay *RawExtension
	Scalable        *RawExtension
	QuantMatrix     *RawExtension
	PictureDisplay  *RawExtension
	Other           []*RawExtension
	UserData        []*UserData
}

// parseRawExtension realigns br to a byte boundary and reads everything
// up to the next start code, for extensions this module does not model in
// full. The caller has already consumed the identifier nibble and passes
// it as id.
func parseRawExtension(br *bits.BitReader, id byte) (*RawExtension, error) {
	var data []byte
	for {
		_, ok, err := peekStartCode(br)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		b, err := br.ReadBytes(1)
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				break
			}
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		data = append(data, b[0])
	}
	return &RawExtension{ID: id, Data: data}, nil
}

// readExtensionAndUserData implements the ExtensionAndUserData(i)
// production: repeatedly peek 4 bytes; while they form an
// extension_start_code or user_data_start_code, parse the matching
// sub-structure. level is not consulted: every extension id is accepted
// at any level, captured raw and filed by its id.
func readExtensionAndUserData(br *bits.BitReader, level ExtensionLevel) (*ExtensionAndUserData, error) {
	eud := &ExtensionAndUserData{}

	for {
		xx, ok, err := peekStartCode(br)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch xx {
		case UserDataStartCode:
			ud, err := NewUserData(br)
			if err != nil {
				return nil, err
			}
			eud.UserData = append(eud.UserData, ud)

		case ExtensionStartCode:
			if _, err := br.ReadBits(32); err != nil { // consume the start code.
				return nil, errors.Wrap(psderr.ErrIO, err.Error())
			}
			idBits, err := br.ReadBits(4)
			if err != nil {
				return nil, errors.Wrap(psderr.ErrIO, err.Error())
			}
			id := byte(idBits)

			raw, err := parseRawExtension(br, id)
			if err != nil {
				return nil, err
			}
			switch id {
			case SequenceDisplayExtensionID:
				eud.SequenceDisplay = raw
			case SequenceScalableExtensionID, PictureSpatialScalableExtensionID, PictureTemporalScalableExtensionID:
				eud.Scalable = raw
			case QuantMatrixExtensionID:
				eud.QuantMatrix = raw
			case PictureDisplayExtensionID:
				eud.PictureDisplay = raw
			default:
				eud.Other = append(eud.Other, raw)
			}

		default:
			return eud, nil
		}
	}

	return eud, nil
}
