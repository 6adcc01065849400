/*
DESCRIPTION
  systemheader_test.go provides testing for functionality found in
  systemheader.go.

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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// systemHeaderBytes builds a syntactically valid system_header with the
// given video_bound and one 3-byte standard stream descriptor per id in
// streamIDs (each id must have its top bit set, e.g. an audio or video
// stream_id).
func systemHeaderBytes(videoBound byte, streamIDs []byte) []byte {
	var b []byte
	b = append(b, 0x00, 0x00, 0x01, 0xBB)
	headerLen := 6 + 3*len(streamIDs)
	b = append(b, byte(headerLen>>8), byte(headerLen))
	b = append(b, 0x80, 0x00, 0x01) // marker, rate_bound (0), marker.
	b = append(b, 0x00)             // audio_bound/fixed_flag/CSPS_flag all 0.
	b = append(b, 0x20|(videoBound&0x1F))
	b = append(b, 0x7F) // packet_rate_restriction_flag 0, reserved bits.
	for _, id := range streamIDs {
		b = append(b, id, 0xC0, 0x00)
	}
	return b
}

// extendedStreamBoundBytes builds one 6-byte extended stream descriptor
// (stream_id 0xB7) that decodes to the given sub-stream id. subStreamID
// must have its 0x20 bit set: parseStreamBound's marker check pins bit 6
// of the descriptor byte to 1, and that same bit feeds into the decoded
// SubStreamID, so only values in that range round-trip.
func extendedStreamBoundBytes(subStreamID byte) []byte {
	return []byte{
		0xB7,
		0x40 | (subStreamID&0x3F)<<1 | 0x01, // '01' marker, stream_id_extension, marker.
		0x01,                                // marker_bit, 7 reserved bits.
		0xC0, 0x00,                          // pstd marker bits, size bound.
		0x00,                                // sixth byte, not decoded by parseStreamBound.
	}
}

// TestParseSystemHeaderFixedFields checks the fixed 12-byte block is
// decoded correctly.
func TestParseSystemHeaderFixedFields(t *testing.T) {
	b := systemHeaderBytes(0x1F, []byte{0xC0, 0xE0})
	// The descriptor loop stops at a byte whose top bit is 0, so the
	// header needs something after it.
	b = append(b, ProgramEndCode[:]...)
	sh, err := ParseSystemHeader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("ParseSystemHeader: unexpected error: %v", err)
	}
	if sh.VideoBound != 0x1F {
		t.Errorf("VideoBound = %#x, want 0x1F", sh.VideoBound)
	}
	if sh.RateBound != 0 {
		t.Errorf("RateBound = %d, want 0", sh.RateBound)
	}

	want := []*StreamBound{
		{StreamID: 0xC0, PSTDBufferBoundScale: 0, PSTDBufferSizeBound: 0},
		{StreamID: 0xE0, PSTDBufferBoundScale: 0, PSTDBufferSizeBound: 0},
	}
	if diff := cmp.Diff(want, sh.Streams); diff != "" {
		t.Errorf("Streams mismatch (-want +got):\n%s", diff)
	}
}

// TestParseSystemHeaderExtendedDescriptor checks that a stream_id 0xB7
// descriptor is parsed as the 6-byte extended form.
func TestParseSystemHeaderExtendedDescriptor(t *testing.T) {
	var b []byte
	b = append(b, 0x00, 0x00, 0x01, 0xBB, 0x00, 0x0C)
	b = append(b, 0x80, 0x00, 0x01, 0x00, 0x20, 0x7F)
	b = append(b, extendedStreamBoundBytes(0x25)...)
	b = append(b, ProgramEndCode[:]...)

	sh, err := ParseSystemHeader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("ParseSystemHeader: unexpected error: %v", err)
	}
	if len(sh.Streams) != 1 {
		t.Fatalf("len(Streams) = %d, want 1", len(sh.Streams))
	}
	sb := sh.Streams[0]
	if !sb.Extended {
		t.Errorf("Extended = false, want true")
	}
	if sb.StreamID != 0xB7 {
		t.Errorf("StreamID = %#x, want 0xB7", sb.StreamID)
	}
	if sb.SubStreamID != 0x25 {
		t.Errorf("SubStreamID = %#x, want 0x25", sb.SubStreamID)
	}
}

// TestParseSystemHeaderBadStartCode checks rejection of an unexpected
// start code.
func TestParseSystemHeaderBadStartCode(t *testing.T) {
	b := []byte{0x00, 0x00, 0x01, 0xBA, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := ParseSystemHeader(bytes.NewReader(b)); err == nil {
		t.Errorf("ParseSystemHeader: expected error for wrong start code, got nil")
	}
}
