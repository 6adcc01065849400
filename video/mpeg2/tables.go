/*
DESCRIPTION
  tables.go provides the aspect-ratio and frame-rate lookup tables used to
  render a SequenceHeader's coded fields as human-readable values.

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

// AspectRatio maps the 4-bit aspect_ratio_information field to its named
// display aspect ratio.
var AspectRatio = map[byte]string{
	0b0001: "1:1 (square sample)",
	0b0010: "4:3",
	0b0011: "16:9",
	0b0100: "2.21:1",
}

// FrameRate maps the 4-bit frame_rate_code field to frames per second.
var FrameRate = map[byte]float64{
	0b0001: 24000.0 / 1001,
	0b0010: 24,
	0b0011: 25,
	0b0100: 30000.0 / 1001,
	0b0101: 30,
	0b0110: 50,
	0b0111: 60000.0 / 1001,
	0b1000: 60,
}

// ChromaFormat maps the 2-bit chroma_format field (sequence scalable and
// extension blocks) to its named subsampling.
var ChromaFormat = map[byte]string{
	0b01: "4:2:0",
	0b10: "4:2:2",
	0b11: "4:4:4",
}
