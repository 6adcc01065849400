/*
DESCRIPTION
  trickmode.go provides the DSM trick-mode-control sub-header, modelled as a
  tagged union over its five named modes and a reserved variant shared by
  the remaining three control values.

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

// TrickModeControl is the 3-bit tag selecting a DSM trick-mode variant.
type TrickModeControl byte

const (
	FastForward TrickModeControl = iota
	SlowMotion
	FreezeFrame
	FastReverse
	SlowReverse
	TrickModeReserved1
	TrickModeReserved2
	TrickModeReserved3
)

// FastForwardMode is the payload of the fast-forward and fast-reverse
// variants.
type FastForwardMode struct {
	FieldID             byte
	IntraSliceRefresh    byte
	FrequencyTruncation  byte
}

// RepeatControlMode is the payload of the slow-motion and slow-reverse
// variants: a 5 or 8 bit repeat control field depending on direction.
type RepeatControlMode struct {
	RepCntrl byte
}

// FreezeFrameMode is the payload of the freeze-frame variant.
type FreezeFrameMode struct {
	FieldID  byte
	Reserved byte
}

// ReservedMode is the payload of the three reserved trick-mode variants.
type ReservedMode struct {
	Reserved byte
}

// DSMTrickMode is the one-byte DSM trick-mode-control sub-header. Exactly
// one of its mode fields is non-nil, selected by Control.
type DSMTrickMode struct {
	Control TrickModeControl

	FastForward  *FastForwardMode
	SlowMotion   *RepeatControlMode
	FreezeFrame  *FreezeFrameMode
	FastReverse  *FastForwardMode
	SlowReverse  *RepeatControlMode
	Reserved     *ReservedMode
}

func parseDSMTrickMode(r io.Reader) (*DSMTrickMode, error) {
	b := make([]byte, 1)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	t := &DSMTrickMode{Control: TrickModeControl((b[0] & 0xE0) >> 5)}
	switch t.Control {
	case FastForward:
		t.FastForward = &FastForwardMode{
			FieldID:             (b[0] & 0x18) >> 3,
			IntraSliceRefresh:   (b[0] & 0x04) >> 2,
			FrequencyTruncation: b[0] & 0x03,
		}
	case SlowMotion:
		t.SlowMotion = &RepeatControlMode{RepCntrl: b[0] & 0x1F}
	case FreezeFrame:
		t.FreezeFrame = &FreezeFrameMode{
			FieldID:  (b[0] & 0x18) >> 3,
			Reserved: b[0] & 0x07,
		}
	case FastReverse:
		t.FastReverse = &FastForwardMode{
			FieldID:             (b[0] & 0x18) >> 3,
			IntraSliceRefresh:   (b[0] & 0x04) >> 2,
			FrequencyTruncation: b[0] & 0x03,
		}
	case SlowReverse:
		t.SlowReverse = &RepeatControlMode{RepCntrl: b[0]}
	default:
		t.Reserved = &ReservedMode{Reserved: b[0]}
	}
	return t, nil
}
