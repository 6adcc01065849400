/*
DESCRIPTION
  streamid.go provides the fixed mapping between PES stream_id byte values
  and their symbolic names, in both directions.

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

import "fmt"

// Fixed stream_id values referenced throughout the PES/Pack parsers.
const (
	ProgramStreamMap      byte = 0xBC
	PrivateStream1        byte = 0xBD
	PaddingStream         byte = 0xBE
	PrivateStream2        byte = 0xBF
	AudioStreamLow        byte = 0xC0
	AudioStreamHigh       byte = 0xDF
	VideoStreamLow        byte = 0xE0
	VideoStreamHigh       byte = 0xEF
	ECMStream             byte = 0xF0
	EMMStream             byte = 0xF1
	DSMCCStream           byte = 0xF2
	ISO13522Stream        byte = 0xF3
	H2221TypeA            byte = 0xF4
	H2221TypeB            byte = 0xF5
	H2221TypeC            byte = 0xF6
	H2221TypeD            byte = 0xF7
	H2221TypeE            byte = 0xF8
	AncillaryStream       byte = 0xF9
	SLPacketizedStream    byte = 0xFA
	FlexMuxStream         byte = 0xFB
	MetadataStream        byte = 0xFC
	ExtendedStreamID      byte = 0xFD
	ReservedDataStream    byte = 0xFE
	ProgramStreamDirector byte = 0xFF
)

var fixedNames = map[byte]string{
	ProgramStreamMap:      "program_stream_map",
	PrivateStream1:        "private_stream_1",
	PaddingStream:         "padding_stream",
	PrivateStream2:        "private_stream_2",
	ECMStream:             "ECM_stream",
	EMMStream:             "EMM_stream",
	DSMCCStream:           "DSMCC_stream",
	ISO13522Stream:        "ISO/IEC_13522_stream",
	H2221TypeA:            "ISO/Rec. ITU-T H.222.1 type A",
	H2221TypeB:            "ISO/Rec. ITU-T H.222.1 type B",
	H2221TypeC:            "ISO/Rec. ITU-T H.222.1 type C",
	H2221TypeD:            "ISO/Rec. ITU-T H.222.1 type D",
	H2221TypeE:            "ISO/Rec. ITU-T H.222.1 type E",
	AncillaryStream:       "ancillary_stream",
	SLPacketizedStream:    "ISO/IEC 14496-1_SL-packetized_stream",
	FlexMuxStream:         "ISO/IEC 14496-1_FlexMux_stream",
	MetadataStream:        "metadata stream",
	ExtendedStreamID:      "extended_stream_id",
	ReservedDataStream:    "reserved data stream",
	ProgramStreamDirector: "program_stream_directory",
}

// AudioStreamNumber reports the audio stream number N encoded in id, and
// whether id falls in the audio stream range 0xC0..0xDF.
func AudioStreamNumber(id byte) (n int, ok bool) {
	if id < AudioStreamLow || id > AudioStreamHigh {
		return 0, false
	}
	return int(id & 0x1F), true
}

// VideoStreamNumber reports the video stream number N encoded in id, and
// whether id falls in the video stream range 0xE0..0xEF.
func VideoStreamNumber(id byte) (n int, ok bool) {
	if id < VideoStreamLow || id > VideoStreamHigh {
		return 0, false
	}
	return int(id & 0x0F), true
}

// NameByStreamID returns the symbolic name for a stream_id byte.
func NameByStreamID(id byte) string {
	if n, ok := AudioStreamNumber(id); ok {
		return fmt.Sprintf("audio stream number %d", n)
	}
	if n, ok := VideoStreamNumber(id); ok {
		return fmt.Sprintf("video stream number %d", n)
	}
	if name, ok := fixedNames[id]; ok {
		return name
	}
	return ""
}

// StreamIDByName is the inverse of NameByStreamID. It reports false if name
// does not match any stream_id.
func StreamIDByName(name string) (byte, bool) {
	for id := 0xBC; id <= 0xFF; id++ {
		if NameByStreamID(byte(id)) == name {
			return byte(id), true
		}
	}
	return 0, false
}

// isOpaque reports whether a PES packet with this stream_id carries no
// FlagData header and is handled as an undifferentiated payload block:
// program_stream_map, private_stream_2, ECM, EMM, program_stream_directory,
// DSMCC, and H.222.1 type E.
func isOpaque(id byte) bool {
	switch id {
	case ProgramStreamMap, PrivateStream2, ECMStream, EMMStream,
		ProgramStreamDirector, DSMCCStream, H2221TypeE:
		return true
	default:
		return false
	}
}
