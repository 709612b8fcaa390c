package ledstrip

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

func TestFrameEncode(t *testing.T) {
	f := Frame{Seq: 7, Pixels: []byte{
		255, 0, 0, 255,
		0, 127, 255, 255,
	}}
	got := f.Encode()
	want := []byte{SOF0, SOF1, 0x00, 0x08, CmdShowFrame, 7, 255, 0, 0, 0, 127, 255}
	var cks byte
	for _, b := range want[2:] {
		cks ^= b
	}
	want = append(want, cks)
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestFrameEncodeLongLength(t *testing.T) {
	f := Frame{Pixels: make([]byte, 4*3080)}
	got := f.Encode()
	length := int(got[2])<<8 | int(got[3])
	if length != 2+3080*3 {
		t.Fatalf("LEN = %d, want %d", length, 2+3080*3)
	}
	if len(got) != 4+length+1 {
		t.Fatalf("len(Encode()) = %d", len(got))
	}
}

type recordWriter struct {
	mu     sync.Mutex
	gate   chan struct{}
	frames [][]byte
	closed bool
	fail   bool
}

func (w *recordWriter) Write(p []byte) (int, error) {
	if w.gate != nil {
		<-w.gate
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return 0, errors.New("unplugged")
	}
	w.frames = append(w.frames, append([]byte(nil), p...))
	return len(p), nil
}

func (w *recordWriter) Close() error {
	w.closed = true
	return nil
}

func TestStripWritesFrames(t *testing.T) {
	w := &recordWriter{}
	s := New(w)
	s.Push([]byte{1, 2, 3, 255})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Fatal("writer not closed")
	}
	if len(w.frames) != 1 || s.Sent() != 1 {
		t.Fatalf("frames = %d, sent = %d", len(w.frames), s.Sent())
	}
	if got := w.frames[0][6:9]; !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("payload = % X", got)
	}

	// push after close is a no-op
	s.Push([]byte{1, 2, 3, 255})
}

func TestStripLatestFrameWins(t *testing.T) {
	w := &recordWriter{gate: make(chan struct{})}
	s := New(w)

	// the writer blocks until the gate opens, so at most one frame is in
	// flight and one queued
	for i := byte(0); i < 4; i++ {
		s.Push([]byte{i, 0, 0, 255})
	}
	close(w.gate)
	s.Close()

	if len(w.frames) == 0 || len(w.frames) > 2 {
		t.Fatalf("wrote %d frames, want 1 or 2", len(w.frames))
	}
	last := w.frames[len(w.frames)-1]
	if last[5] != 3 || last[6] != 3 {
		t.Fatalf("last frame seq %d payload %d, want 3 and 3", last[5], last[6])
	}
}

func TestStripWriteErrorKeepsRunning(t *testing.T) {
	w := &recordWriter{fail: true}
	s := New(w)
	s.Push([]byte{1, 2, 3, 255})
	s.Close()
	if s.Sent() != 0 {
		t.Fatalf("Sent() = %d, want 0", s.Sent())
	}
}

func TestStripDropsOversizedFrame(t *testing.T) {
	w := &recordWriter{}
	s := New(w)
	s.Push(make([]byte, 4*(MaxCells+1)))
	s.Close()
	if len(w.frames) != 0 {
		t.Fatal("oversized frame was written")
	}
}
