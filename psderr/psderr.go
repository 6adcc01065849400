/*
DESCRIPTION
  psderr.go provides the flat set of sentinel error kinds shared by every
  psdemux parsing package. Callers classify a wrapped error with
  errors.Is against these sentinels.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package psderr defines the error kinds shared across the psdemux parsing
// packages. A parser wraps one of these sentinels with context using
// github.com/pkg/errors.Wrap/Wrapf; callers classify a failure with
// errors.Is against the sentinel.
package psderr

import "github.com/pkg/errors"

// Kind sentinels. Every parse failure in this module is, once unwrapped,
// one of these.
var (
	// ErrInvalidFixedBits is returned when a field whose value is dictated
	// by the standard does not match.
	ErrInvalidFixedBits = errors.New("psdemux: invalid fixed bits")

	// ErrInvalidMarker is returned when a marker bit required to be 1 is 0.
	ErrInvalidMarker = errors.New("psdemux: invalid marker bit")

	// ErrUnsupportedFormat is returned for MPEG-1 video (a sequence header
	// with no sequence extension after it), a video stream that does not
	// open with a sequence header, a PES extension carrying a pack header,
	// a declared header length too short for the fields parsed, and bytes
	// after a pack header that are not a start code. Scrambled PES payloads
	// are not rejected, and the PES dispatcher accepts every stream_id.
	ErrUnsupportedFormat = errors.New("psdemux: unsupported format")

	// ErrMalformedVideoStream is returned when a non-zero byte is
	// encountered while scanning for a start-code prefix in strict mode.
	ErrMalformedVideoStream = errors.New("psdemux: malformed video stream")

	// ErrWrongPrivateStream is returned by the PS2 PCM recognizer's
	// Subsequent when First has not recognized a stream. A recognizer's
	// First declines a private_stream_1 payload by returning ok=false with
	// a nil error, not with this error.
	ErrWrongPrivateStream = errors.New("psdemux: wrong private stream")

	// ErrUnknownStream is returned when a caller asks for a stream by a
	// symbolic name that maps to no id.
	ErrUnknownStream = errors.New("psdemux: unknown stream name")

	// ErrStreamNotPresent is returned when a caller asks for a stream id
	// that is not present in the opened file.
	ErrStreamNotPresent = errors.New("psdemux: stream not present")

	// ErrIO wraps an underlying read failure or a short read.
	ErrIO = errors.New("psdemux: io error")
)
