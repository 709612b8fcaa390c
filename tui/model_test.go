package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"keystrip/midi"
	"keystrip/theme"
	"keystrip/visualizer"
)

type recordSink struct {
	frames [][]byte
}

func (s *recordSink) Push(pixels []byte) {
	s.frames = append(s.frames, append([]byte(nil), pixels...))
}

func newTestModel(t *testing.T) (Model, *recordSink) {
	t.Helper()
	vis, err := visualizer.New(88)
	if err != nil {
		t.Fatalf("visualizer.New() error = %v", err)
	}
	m := NewModel(vis, midi.NewDeviceManager(midi.Options{}), theme.New(theme.UI()), 2)
	sink := &recordSink{}
	m.Sink = sink
	return m, sink
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestRawMsgLightsKeyAndPushesFrame(t *testing.T) {
	m, sink := newTestModel(t)

	m, cmd := update(t, m, RawMsg{0x90, 60, 127})
	if cmd == nil {
		t.Fatal("expected listen command after RawMsg")
	}
	if got, want := m.Vis.Pixel(39), visualizer.ColorFor(3).Opaque(); got != want {
		t.Fatalf("pixel 39 = %v, want %v", got, want)
	}
	if len(sink.frames) != 1 || len(sink.frames[0]) != 4*88 {
		t.Fatalf("sink got %d frames", len(sink.frames))
	}
	if !strings.Contains(m.View(), "C4") {
		t.Fatalf("status should list the held note:\n%s", m.View())
	}
}

func TestMalformedRawMsgStillPushes(t *testing.T) {
	m, sink := newTestModel(t)
	m, _ = update(t, m, RawMsg{0xF8})
	if len(sink.frames) != 1 {
		t.Fatalf("sink got %d frames, want 1", len(sink.frames))
	}
	if len(m.Vis.State().Active()) != 0 {
		t.Fatal("malformed message lit a key")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m, _ := newTestModel(t)
		m, cmd := update(t, m, key)
		if cmd == nil {
			t.Fatalf("%q: expected quit command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%q: expected tea.QuitMsg", key.String())
		}
		if m.View() != "" {
			t.Fatalf("%q: view should be empty after quit", key.String())
		}
	}
}

func TestSpaceRedraws(t *testing.T) {
	m, sink := newTestModel(t)
	before := m.Vis.Frames()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Vis.Frames() != before+1 {
		t.Fatalf("Frames() = %d, want %d", m.Vis.Frames(), before+1)
	}
	if len(sink.frames) != 1 {
		t.Fatalf("sink got %d frames, want 1", len(sink.frames))
	}
}

func TestDeviceEvents(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "no keyboard") {
		t.Fatal("expected no keyboard in header")
	}

	m, _ = update(t, m, DeviceEventMsg{Type: midi.DeviceConnected, Name: "Keystation 88"})
	if !strings.Contains(m.View(), "Keystation 88") {
		t.Fatal("expected device name in header")
	}

	m, _ = update(t, m, DeviceEventMsg{Type: midi.DeviceDisconnected, Name: "Keystation 88"})
	if !strings.Contains(m.View(), "no keyboard") {
		t.Fatal("expected device cleared after disconnect")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	view := m.View()
	if !strings.Contains(view, "toggle legend") || !strings.Contains(view, "hue 330") {
		t.Fatalf("help view missing legend:\n%s", view)
	}
}

func TestViewStripHeight(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	view := m.View()
	if got := strings.Count(view, string(m.Theme.Symbols.Cell)); got != 80 {
		t.Fatalf("strip cells = %d, want 2 rows of 40", got)
	}
}
