/*
DESCRIPTION
  programstream.go drives the pack/system-header/PES layers to build an
  in-memory catalog of a program stream file: every pack in file order,
  and a per-stream_id index of the PES packets carrying that stream's
  data.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ps

import (
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ausocean/psdemux/container/ps/pes"
	"github.com/ausocean/psdemux/psderr"
	"github.com/ausocean/utils/logging"
)

// pkg prefixes every log line this package emits, matching the teacher's
// per-package prefix constant convention (e.g. device/webcam's "webcam: ").
const pkg = "ps: "

// nopLogger discards every call. It backs the zero-logger entry points so
// NewProgramStream's walking loop can log unconditionally.
type nopLogger struct{}

func (nopLogger) SetLevel(int8)                    {}
func (nopLogger) Log(int8, string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})     {}
func (nopLogger) Info(string, ...interface{})      {}
func (nopLogger) Warning(string, ...interface{})   {}
func (nopLogger) Error(string, ...interface{})     {}
func (nopLogger) Fatal(string, ...interface{})     {}

// ProgramStream is an in-memory catalog of every pack and PES packet
// found while walking a program stream, indexed by stream_id for
// subsequent per-stream iteration.
type ProgramStream struct {
	r     io.ReadSeeker
	Packs []*Pack

	byStream map[byte][]*pes.Packet
}

// Open opens path as a file and parses it as a program stream.
func Open(path string) (*ProgramStream, error) {
	return OpenWithLogger(path, nopLogger{})
}

// OpenWithLogger is Open, additionally logging per-pack progress to l
// as the catalog is built (e.g. for a CLI driver reporting on a
// multi-gigabyte file's slow first pass).
func OpenWithLogger(path string, l logging.Logger) (*ProgramStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	psm, err := NewProgramStreamWithLogger(f, l)
	if err != nil {
		f.Close()
		return nil, err
	}
	return psm, nil
}

// NewProgramStream parses r, which must be positioned at the start of a
// program stream, into a ProgramStream. r is retained for later payload
// retrieval via Packets' PayloadOffset/PayloadLength.
func NewProgramStream(r io.ReadSeeker) (*ProgramStream, error) {
	return NewProgramStreamWithLogger(r, nopLogger{})
}

// NewProgramStreamWithLogger is NewProgramStream, additionally logging
// per-pack progress to l.
func NewProgramStreamWithLogger(r io.ReadSeeker, l logging.Logger) (*ProgramStream, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	psm := &ProgramStream{r: r, byStream: make(map[byte][]*pes.Packet)}

	for {
		peek, err := peek4(r)
		if err != nil {
			return nil, err
		}
		if peek == ProgramEndCode {
			break
		}
		if peek != PackStartCode {
			return nil, errors.Wrap(psderr.ErrInvalidFixedBits, "program_stream: expected pack_start_code")
		}

		pack, err := ParsePack(r)
		if err != nil {
			return nil, err
		}
		psm.Packs = append(psm.Packs, pack)
		for _, pkt := range pack.Packets {
			psm.byStream[pkt.StreamID] = append(psm.byStream[pkt.StreamID], pkt)
		}
		l.Debug(pkg+"parsed pack", "index", len(psm.Packs)-1, "offset", pack.Offset, "packets", len(pack.Packets))
	}

	l.Info(pkg+"catalog built", "packs", len(psm.Packs), "streams", len(psm.byStream))

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}

	return psm, nil
}

// Streams returns the stream_ids present in the program stream, in the
// order each was first encountered.
func (p *ProgramStream) Streams() []byte {
	seen := make(map[byte]bool)
	var ids []byte
	for _, pack := range p.Packs {
		for _, pkt := range pack.Packets {
			if !seen[pkt.StreamID] {
				seen[pkt.StreamID] = true
				ids = append(ids, pkt.StreamID)
			}
		}
	}
	return ids
}

// Stream returns every PES packet belonging to id, in file order.
func (p *ProgramStream) Stream(id byte) []*pes.Packet {
	return p.byStream[id]
}

// StreamIter returns every PES packet belonging to the stream identified
// by idOrName, in file order. idOrName may be a symbolic name (as
// returned by pes.NameByStreamID, e.g. "padding_stream" or "video stream
// number 3") or a numeric stream_id in the 0..255 range formatted as a
// decimal string. It fails with psderr.ErrUnknownStream if a name does
// not map to any stream_id, and psderr.ErrStreamNotPresent if the id was
// never observed while building the catalog.
func (p *ProgramStream) StreamIter(idOrName string) ([]*pes.Packet, error) {
	id, ok := pes.StreamIDByName(idOrName)
	if !ok {
		n, err := strconv.ParseUint(idOrName, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(psderr.ErrUnknownStream, "program_stream: %q", idOrName)
		}
		id = byte(n)
	}
	pkts, present := p.byStream[id]
	if !present {
		return nil, errors.Wrapf(psderr.ErrStreamNotPresent, "program_stream: stream_id 0x%02X", id)
	}
	return pkts, nil
}

// Len returns the total number of PES packets across every pack in the
// program stream.
func (p *ProgramStream) Len() int {
	n := 0
	for _, pkts := range p.byStream {
		n += len(pkts)
	}
	return n
}

// PackCount returns the number of packs in the program stream.
func (p *ProgramStream) PackCount() int { return len(p.Packs) }

// Handle returns the underlying reader the catalog was built from, for
// callers building a stream.SegmentedReader over one or more Packets'
// PayloadOffset/PayloadLength ranges. Per spec.md §5, only one caller may
// read through it at a time.
func (p *ProgramStream) Handle() io.ReadSeeker { return p.r }

// Payload reads and returns the payload bytes of pkt from the
// ProgramStream's underlying reader.
func (p *ProgramStream) Payload(pkt *pes.Packet) ([]byte, error) {
	if _, err := p.r.Seek(pkt.PayloadOffset, io.SeekStart); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	buf := make([]byte, pkt.PayloadLength)
	if _, err := io.ReadFull(p.r, buf); err != nil {
		return nil, errors.Wrap(psderr.ErrIO, err.Error())
	}
	return buf, nil
}
