/*
DESCRIPTION
  userdata.go provides UserData, the free-form byte block that follows a
  user_data_start_code up to the next start code.

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
	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/bits"
	"github.com/ausocean/psdemux/psderr"
)

// UserData is the raw byte payload following a user_data_start_code, up
// to (not including) the next start code.
type UserData struct {
	Data []byte
}

// NewUserData parses a UserData block from br, which must be positioned
// at a user_data_start_code.
func NewUserData(br *bits.BitReader) (*UserData, error) {
	code, err := br.ReadBits(32)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if code != 0x00000100|uint32(UserDataStartCode) {
		return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "user_data: start code")
	}

	var data []byte
	for {
		xx, ok, err := peekStartCode(br)
		if err != nil {
			return nil, err
		}
		if ok {
			_ = xx
			break
		}
		b, err := br.ReadBytes(1)
		if err != nil {
			return nil, errors.Wrap(psderr.ErrIO, err.Error())
		}
		data = append(data, b[0])
	}

	return &UserData{Data: data}, nil
}
