/*
DESCRIPTION
  copyinfo.go provides the additional-copy-info sub-header.

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

// AdditionalCopyInfo is the one-byte additional-copy-info sub-header.
type AdditionalCopyInfo struct {
	Info byte // 7-bit additional_copy_info.
}

func parseAdditionalCopyInfo(r io.Reader) (*AdditionalCopyInfo, error) {
	b := make([]byte, 1)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	if b[0]>>7 != 1 {
		return nil, errors.Wrap(psderr.ErrInvalidMarker, "copyinfo: marker")
	}
	return &AdditionalCopyInfo{Info: b[0] & 0x7F}, nil
}
