/*
DESCRIPTION
  dvdac3_test.go provides testing for functionality found in dvdac3.go.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package dvdac3

import (
	"bytes"
	"testing"

	"github.com/ausocean/psdemux/container/ps/pes"
)

// ac3Packet builds a private_stream_1 PES packet whose header_length is
// 0x11 and whose payload carries a 4-byte AC-3 sub-header followed by the
// AC-3 sync word at +4/+5, per spec.md S5.
func ac3Packet(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x01, 0xBD, 0x00, 0x15})
	buf.Write([]byte{0x80, 0x80, 0x08})             // flags: PTS only, header_data_length 8.
	buf.Write([]byte{0x21, 0x00, 0x01, 0x00, 0x01})  // PTS = 0.
	buf.Write(bytes.Repeat([]byte{0xFF}, 3))         // stuffing.
	buf.Write([]byte{0x80, 0x00, 0x00, 0x00})        // AC-3 sub-header.
	buf.Write([]byte{0x0B, 0x77})                    // sync word.
	buf.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})        // frame data.
	return buf.Bytes()
}

// TestFirstRecognizesAC3 implements spec.md S5.
func TestFirstRecognizesAC3(t *testing.T) {
	raw := ac3Packet(t)
	pkt, err := pes.Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("pes.Parse: unexpected error: %v", err)
	}
	if pkt.HeaderLength != 0x11 {
		t.Fatalf("HeaderLength = %#x, want 0x11", pkt.HeaderLength)
	}

	var r Recognizer
	rec, ok, err := r.First(pkt, raw)
	if err != nil {
		t.Fatalf("First: unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("First: ok = false, want true")
	}
	wantLength := pkt.PayloadLength - 4
	if rec.Length != wantLength {
		t.Errorf("Length = %d, want %d", rec.Length, wantLength)
	}
	if rec.Offset != pkt.PayloadOffset+4 {
		t.Errorf("Offset = %d, want %d", rec.Offset, pkt.PayloadOffset+4)
	}
	if !bytes.Equal(raw[rec.Offset:rec.Offset+int64(rec.Length)], []byte{0x0B, 0x77, 0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("recognized region = %x, want sync word and frame data", raw[rec.Offset:rec.Offset+int64(rec.Length)])
	}
}

// TestFirstRejectsWrongSyncWord checks that First declines a packet whose
// AC-3 sub-header has the right shape but the wrong sync word.
func TestFirstRejectsWrongSyncWord(t *testing.T) {
	raw := ac3Packet(t)
	raw[len(raw)-6] = 0x00 // corrupt the first sync word byte.

	pkt, err := pes.Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("pes.Parse: unexpected error: %v", err)
	}
	var r Recognizer
	_, ok, err := r.First(pkt, raw)
	if err != nil {
		t.Fatalf("First: unexpected error: %v", err)
	}
	if ok {
		t.Errorf("First: ok = true, want false")
	}
}

// TestSubsequentMatchesSameSubStream checks that Subsequent accepts a later
// packet of the same sub-stream and rejects a different one.
func TestSubsequentMatchesSameSubStream(t *testing.T) {
	raw := ac3Packet(t)
	pkt, err := pes.Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("pes.Parse: unexpected error: %v", err)
	}
	var r Recognizer
	if _, ok, err := r.First(pkt, raw); err != nil || !ok {
		t.Fatalf("First: ok=%v, err=%v", ok, err)
	}

	rec, ok, err := r.Subsequent(pkt, raw)
	if err != nil || !ok {
		t.Fatalf("Subsequent: ok=%v, err=%v", ok, err)
	}
	if rec.Offset != pkt.PayloadOffset+4 {
		t.Errorf("Offset = %d, want %d", rec.Offset, pkt.PayloadOffset+4)
	}

	raw2 := ac3Packet(t)
	raw2[len(raw2)-6-4] = 0x81 // different sub-stream id byte.
	pkt2, err := pes.Parse(bytes.NewReader(raw2))
	if err != nil {
		t.Fatalf("pes.Parse: unexpected error: %v", err)
	}
	if _, ok, err := r.Subsequent(pkt2, raw2); err != nil || ok {
		t.Errorf("Subsequent with different sub-stream id: ok=%v, err=%v, want false, nil", ok, err)
	}
}
