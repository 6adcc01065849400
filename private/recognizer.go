/*
DESCRIPTION
  recognizer.go provides the shared interface implemented by every
  private-stream content recognizer (DVD AC-3, PS2 PCM): given a
  private_stream_1 PES packet, decide whether its payload matches the
  recognizer's format and, if so, where the actual elementary stream
  bytes begin within it.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package private provides the shared recognizer contract used by the
// private_stream_1 content recognizers (DVD AC-3, PS2 PCM) to identify
// and locate their payload within an otherwise-opaque PES sub-stream.
package private

import "github.com/ausocean/psdemux/container/ps/pes"

// Recognition describes where a recognizer found its elementary stream
// payload within one PES packet's payload range.
type Recognition struct {
	Offset int64 // absolute file offset where the payload proper begins.
	Length int
}

// Recognizer identifies whether a PES packet carries a particular
// private-stream content format and, if so, locates its payload.
//
// First is called once, on the first PES packet for a sub-stream, and
// may inspect bytes beyond what Subsequent requires (e.g. a
// format-specific header that straddles the PES header/payload
// boundary). Subsequent is called for every later packet of a stream
// already claimed by a prior First call, and should perform only the
// cheaper per-packet validation the format allows.
//
// Both methods receive raw, the packet's bytes starting at packet.Offset
// (the PES start code onward), since some private-stream headers (PS2
// PCM) are measured from there rather than from the PES payload.
type Recognizer interface {
	First(packet *pes.Packet, raw []byte) (Recognition, bool, error)
	Subsequent(packet *pes.Packet, raw []byte) (Recognition, bool, error)
}
