package frame

import (
	"bytes"
	"testing"

	"github.com/danmuck/mspctl/internal/protocol"
	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

func TestScannerSplitAcrossChunks(t *testing.T) {
	testlog.Start(t)
	wire, err := EncodeV1(protocol.CmdStatus, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var sc Scanner
	for i := 0; i < len(wire)-1; i++ {
		if frames := sc.Feed(wire[i : i+1]); len(frames) != 0 {
			t.Fatalf("byte %d: unexpected early frame", i)
		}
	}
	frames := sc.Feed(wire[len(wire)-1:])
	if len(frames) != 1 || !bytes.Equal(frames[0], wire) {
		t.Fatalf("frames %v, want the original buffer", frames)
	}
}

func TestScannerMultipleFramesPerChunk(t *testing.T) {
	testlog.Start(t)
	a, _ := EncodeV1(protocol.CmdApiVersion, nil)
	b, _ := EncodeV2(protocol.Cmd2CommonTz, []byte{7, 8})
	c, _ := EncodeV1(protocol.CmdAttitude, []byte{1, 0, 2, 0, 3, 0})

	var sc Scanner
	chunk := append(append(append([]byte{}, a...), b...), c...)
	frames := sc.Feed(chunk)
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i, want := range [][]byte{a, b, c} {
		if !bytes.Equal(frames[i], want) {
			t.Fatalf("frame %d: % X, want % X", i, frames[i], want)
		}
	}
}

func TestScannerSkipsGarbageBetweenFrames(t *testing.T) {
	testlog.Start(t)
	wire, _ := EncodeV1(protocol.CmdApiVersion, nil)

	var sc Scanner
	chunk := append([]byte{0x00, 0xFF, 0x7E}, wire...)
	chunk = append(chunk, 0xAA, 0xBB)
	frames := sc.Feed(chunk)
	if len(frames) != 1 || !bytes.Equal(frames[0], wire) {
		t.Fatalf("frames %v, want one clean frame", frames)
	}

	// trailing garbage must not poison the next frame
	next, _ := EncodeV2(protocol.Code(0x0100), nil)
	frames = sc.Feed(next)
	if len(frames) != 1 || !bytes.Equal(frames[0], next) {
		t.Fatalf("second feed: frames %v", frames)
	}
}

func TestScannerResyncsOnFalsePreamble(t *testing.T) {
	testlog.Start(t)
	wire, _ := EncodeV1(protocol.CmdStatus, []byte{5})

	// '$' followed by a non-marker byte, then a real frame whose own '$'
	// must be re-examined during resync.
	var sc Scanner
	chunk := append([]byte{Preamble, 0x00}, wire...)
	frames := sc.Feed(chunk)
	if len(frames) != 1 || !bytes.Equal(frames[0], wire) {
		t.Fatalf("frames %v, want the real frame", frames)
	}

	// '$' then another '$M...' where the second '$' arrives while a marker
	// is expected
	sc.Reset()
	chunk = append([]byte{Preamble}, wire...)
	frames = sc.Feed(chunk)
	if len(frames) != 1 || !bytes.Equal(frames[0], wire) {
		t.Fatalf("nested preamble: frames %v", frames)
	}
}

func TestScannerEmittedBuffersAreIndependent(t *testing.T) {
	testlog.Start(t)
	a, _ := EncodeV1(protocol.CmdApiVersion, nil)
	b, _ := EncodeV1(protocol.CmdStatus, []byte{9})

	var sc Scanner
	frames := sc.Feed(append(append([]byte{}, a...), b...))
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	frames[0][0] = 0xFF
	if frames[1][0] != Preamble {
		t.Fatalf("emitted buffers share storage")
	}
}
