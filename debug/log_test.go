package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	Disable()

	Log("midi", "hello %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if Enabled() {
		t.Fatal("expected logging disabled")
	}
}

func TestLogWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	Log("strip", "frame %d", 7)
	line := buf.String()
	if !strings.Contains(line, "strip") || !strings.HasSuffix(line, "frame 7\n") {
		t.Fatalf("unexpected log line %q", line)
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 9; i++ {
		LogEvery(3, "midi", "tick")
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", got, buf.String())
	}
	if !strings.Contains(buf.String(), "count=9") {
		t.Fatalf("expected final count in output, got %q", buf.String())
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	Log("visualizer", "drop")
	Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Debug logging started") || !strings.Contains(string(data), "drop") {
		t.Fatalf("unexpected log contents %q", data)
	}
}
