/*
DESCRIPTION
  streamid_test.go provides testing for functionality found in streamid.go.

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

import "testing"

// TestStreamIDByNameVideo implements spec.md S4: a video stream name maps
// back to its stream_id, and an unrecognised name maps to nothing.
func TestStreamIDByNameVideo(t *testing.T) {
	id, ok := StreamIDByName("video stream number 3")
	if !ok {
		t.Fatalf("StreamIDByName: ok = false, want true")
	}
	if id != 0xE3 {
		t.Errorf("StreamIDByName(\"video stream number 3\") = %#x, want 0xE3", id)
	}
	if _, ok := StreamIDByName("zzz"); ok {
		t.Errorf("StreamIDByName(\"zzz\"): ok = true, want false")
	}
}

// TestNameByStreamIDRoundTrip checks NameByStreamID/StreamIDByName agree
// across the audio, video, and fixed-name ranges.
func TestNameByStreamIDRoundTrip(t *testing.T) {
	ids := []byte{AudioStreamLow, AudioStreamHigh, VideoStreamLow, VideoStreamHigh,
		ProgramStreamMap, PrivateStream1, PaddingStream, ProgramStreamDirector}
	for _, id := range ids {
		name := NameByStreamID(id)
		if name == "" {
			t.Errorf("NameByStreamID(%#x) = \"\", want non-empty", id)
			continue
		}
		got, ok := StreamIDByName(name)
		if !ok || got != id {
			t.Errorf("StreamIDByName(%q) = %#x, %v, want %#x, true", name, got, ok, id)
		}
	}
}

// TestAudioVideoStreamNumberRanges checks the boundaries of the audio and
// video stream_id ranges, including rejection just outside them.
func TestAudioVideoStreamNumberRanges(t *testing.T) {
	if n, ok := AudioStreamNumber(0xC5); !ok || n != 5 {
		t.Errorf("AudioStreamNumber(0xC5) = %d, %v, want 5, true", n, ok)
	}
	if _, ok := AudioStreamNumber(0xBF); ok {
		t.Errorf("AudioStreamNumber(0xBF): ok = true, want false")
	}
	if _, ok := AudioStreamNumber(0xE0); ok {
		t.Errorf("AudioStreamNumber(0xE0): ok = true, want false")
	}
	if n, ok := VideoStreamNumber(0xE3); !ok || n != 3 {
		t.Errorf("VideoStreamNumber(0xE3) = %d, %v, want 3, true", n, ok)
	}
	if _, ok := VideoStreamNumber(0xF0); ok {
		t.Errorf("VideoStreamNumber(0xF0): ok = true, want false")
	}
}

// TestIsOpaque checks the opaque stream_id set used by Parse's dispatch.
func TestIsOpaque(t *testing.T) {
	for _, id := range []byte{ProgramStreamMap, PrivateStream2, ECMStream, EMMStream,
		ProgramStreamDirector, DSMCCStream, H2221TypeE} {
		if !isOpaque(id) {
			t.Errorf("isOpaque(%#x) = false, want true", id)
		}
	}
	for _, id := range []byte{PrivateStream1, PaddingStream, AudioStreamLow, VideoStreamLow} {
		if isOpaque(id) {
			t.Errorf("isOpaque(%#x) = true, want false", id)
		}
	}
}
