/*
DESCRIPTION
  psprobe is a command line driver over the psdemux core: it opens an
  MPEG-2 Program Stream file, builds its catalog, and either lists the
  streams found, prints a summary of the first video sequence, or
  extracts one stream's payload bytes to a file. Argument handling,
  printing, and file output are the external collaborators spec.md's
  scope (§1) explicitly keeps out of the core packages; this binary is
  where they live.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// psprobe inspects and extracts elementary streams from an MPEG-2
// Program Stream file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/psdemux/container/ps"
	"github.com/ausocean/psdemux/container/ps/pes"
	"github.com/ausocean/psdemux/private"
	"github.com/ausocean/psdemux/private/dvdac3"
	"github.com/ausocean/psdemux/private/ps2pcm"
	"github.com/ausocean/psdemux/stream"
	"github.com/ausocean/psdemux/video/mpeg2"
)

// Logging configuration, matching the teacher's cmd/* binaries.
const (
	logPath      = "psprobe.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

const pkg = "psprobe: "

func main() {
	var (
		inPath      = flag.String("in", "", "path to the program stream file (required)")
		listStreams = flag.Bool("list-streams", false, "list stream_ids present in the file and exit")
		info        = flag.Bool("info", false, "print the first video sequence's header summary")
		extract     = flag.String("extract", "", "symbolic name or numeric stream_id to extract")
		outPath     = flag.String("out", "out.raw", "destination path for -extract")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "psprobe: -in is required")
		os.Exit(2)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, fileLog, logSuppress)

	psm, err := ps.OpenWithLogger(*inPath, log)
	if err != nil {
		log.Fatal(pkg+"could not open program stream", "error", err.Error())
	}

	switch {
	case *listStreams:
		listStreamsCmd(psm)
	case *info:
		if err := infoCmd(psm, log); err != nil {
			log.Fatal(pkg+"info failed", "error", err.Error())
		}
	case *extract != "":
		if err := extractCmd(psm, *extract, *outPath, log); err != nil {
			log.Fatal(pkg+"extract failed", "error", err.Error())
		}
	default:
		fmt.Printf("%d packs, %d PES packets\n", psm.PackCount(), psm.Len())
	}
}

func listStreamsCmd(psm *ps.ProgramStream) {
	for _, id := range psm.Streams() {
		name := pes.NameByStreamID(id)
		fmt.Printf("0x%02X  %-40s  %d packets\n", id, name, len(psm.Stream(id)))
	}
}

func infoCmd(psm *ps.ProgramStream, log logging.Logger) error {
	videoIDs := videoStreamIDs(psm)
	if len(videoIDs) == 0 {
		return fmt.Errorf("no video streams present")
	}
	pkts := psm.Stream(videoIDs[0])
	if len(pkts) == 0 {
		return fmt.Errorf("video stream 0x%02X carries no PES packets", videoIDs[0])
	}

	segs := payloadSegments(psm, pkts)
	sr, err := stream.NewSegmentedReader(segs)
	if err != nil {
		return err
	}

	v, err := mpeg2.Parse(sr, true)
	if err != nil {
		return err
	}
	if len(v.Sequences) == 0 {
		return fmt.Errorf("no sequence parsed")
	}
	sh := v.Sequences[0].Header
	log.Info(pkg+"parsed sequence header",
		"width", sh.HorizontalSize, "height", sh.VerticalSize,
		"aspect_ratio", mpeg2.AspectRatio[sh.AspectRatioInformation],
		"frame_rate", mpeg2.FrameRate[sh.FrameRateCode])
	fmt.Printf("%dx%d  aspect=%s  frame_rate=%.3f fps\n",
		sh.HorizontalSize, sh.VerticalSize,
		mpeg2.AspectRatio[sh.AspectRatioInformation],
		mpeg2.FrameRate[sh.FrameRateCode])
	return nil
}

func videoStreamIDs(psm *ps.ProgramStream) []byte {
	var ids []byte
	for _, id := range psm.Streams() {
		if _, ok := pes.VideoStreamNumber(id); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// payloadSegments builds the physical segment list for pkts against
// psm's underlying file handle, per spec.md §4.F/§9: no payload bytes
// are copied here, only offsets and lengths already known from the
// catalog.
func payloadSegments(psm *ps.ProgramStream, pkts []*pes.Packet) []stream.Segment {
	segs := make([]stream.Segment, 0, len(pkts))
	var v int64
	for _, pkt := range pkts {
		segs = append(segs, stream.Segment{
			Handle:   psm.Handle(),
			Physical: pkt.PayloadOffset,
			Virtual:  v,
			Length:   int64(pkt.PayloadLength),
		})
		v += int64(pkt.PayloadLength)
	}
	return segs
}

func extractCmd(psm *ps.ProgramStream, idOrName, outPath string, log logging.Logger) error {
	pkts, err := psm.StreamIter(idOrName)
	if err != nil {
		return err
	}
	if len(pkts) == 0 {
		return fmt.Errorf("stream %q carries no packets", idOrName)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	// private_stream_1 gets a shot at the recognizers before falling back
	// to a raw payload dump, per spec.md §4.H/§6.
	if pkts[0].StreamID == pes.PrivateStream1 {
		if n, err := extractPrivateStream(psm, pkts, out, log); err == nil {
			log.Info(pkg+"extracted private stream payload", "bytes", n, "out", outPath)
			return nil
		}
	}

	segs := payloadSegments(psm, pkts)
	sr, err := stream.NewSegmentedReader(segs)
	if err != nil {
		return err
	}
	n, err := io.Copy(out, sr)
	if err != nil {
		return err
	}
	log.Info(pkg+"extracted stream payload", "bytes", n, "out", outPath)
	return nil
}

// extractPrivateStream tries each private-stream recognizer in turn
// against the first packet, per spec.md §6's "recognizer interface" and
// §7's WrongPrivateStream recoverable-error policy.
func extractPrivateStream(psm *ps.ProgramStream, pkts []*pes.Packet, out io.Writer, log logging.Logger) (int64, error) {
	raw, err := readRaw(psm, pkts[0])
	if err != nil {
		return 0, err
	}

	recognizers := []private.Recognizer{&dvdac3.Recognizer{}, &ps2pcm.Recognizer{}}
	for _, rec := range recognizers {
		if _, ok, err := rec.First(pkts[0], raw); err == nil && ok {
			log.Debug(pkg + "private stream recognized")
			return copyRecognizedPackets(psm, pkts, rec, out)
		}
	}
	return 0, fmt.Errorf("no recognizer claimed the private stream")
}

func copyRecognizedPackets(psm *ps.ProgramStream, pkts []*pes.Packet, rec private.Recognizer, out io.Writer) (int64, error) {
	var segs []stream.Segment
	var v int64
	for i, pkt := range pkts {
		raw, err := readRaw(psm, pkt)
		if err != nil {
			return 0, err
		}
		var rec2 private.Recognition
		var ok bool
		if i == 0 {
			rec2, ok, err = rec.First(pkt, raw)
		} else {
			rec2, ok, err = rec.Subsequent(pkt, raw)
		}
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		segs = append(segs, stream.Segment{
			Handle:   psm.Handle(),
			Physical: rec2.Offset,
			Virtual:  v,
			Length:   int64(rec2.Length),
		})
		v += int64(rec2.Length)
	}
	sr, err := stream.NewSegmentedReader(segs)
	if err != nil {
		return 0, err
	}
	return io.Copy(out, sr)
}

// readRaw reads the bytes of pkt starting at its PES start code, the
// range private-stream recognizers inspect (spec.md §4.H/§6).
func readRaw(psm *ps.ProgramStream, pkt *pes.Packet) ([]byte, error) {
	n := pkt.HeaderLength + pkt.PayloadLength
	buf := make([]byte, n)
	h := psm.Handle()
	if _, err := h.Seek(pkt.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(h, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
