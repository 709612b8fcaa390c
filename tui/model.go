package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keystrip/midi"
	"keystrip/theme"
	"keystrip/visualizer"
	"keystrip/widgets"
)

// FrameSink receives every rendered frame, e.g. an LED strip
type FrameSink interface {
	Push(pixels []byte)
}

type Model struct {
	Vis       *visualizer.Visualizer
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme
	Sink      FrameSink // may be nil

	height   int
	width    int // terminal columns, 0 until known
	device   string
	showHelp bool
	quitting bool
}

// RawMsg carries one raw MIDI message from the device manager
type RawMsg []byte

type DeviceEventMsg midi.DeviceEvent

func NewModel(vis *visualizer.Visualizer, deviceMgr *midi.DeviceManager, th *theme.Theme, height int) Model {
	if height < 1 {
		height = 1
	}
	return Model{
		Vis:       vis,
		DeviceMgr: deviceMgr,
		Theme:     th,
		height:    height,
	}
}

func ListenForMessages(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-deviceMgr.Messages()
		if !ok {
			return nil
		}
		return RawMsg(msg)
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForMessages(m.DeviceMgr),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			m.Vis.Render()
			m.push()

		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case RawMsg:
		m.Vis.Receive(msg)
		m.push()
		return m, ListenForMessages(m.DeviceMgr)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.device = event.Name
		} else if m.device == event.Name {
			m.device = ""
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) push() {
	if m.Sink != nil {
		m.Sink.Push(m.Vis.Pixels())
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	strip := widgets.RenderStrip(m.Vis.Pixels(), m.height, m.Theme.Symbols.Cell)
	if m.width > 0 {
		strip = lipgloss.NewStyle().MaxWidth(m.width).Render(strip)
	}

	var out strings.Builder
	out.WriteString(m.header())
	out.WriteString("\n\n")
	out.WriteString(strip)
	out.WriteString("\n\n")
	out.WriteString(m.status())
	out.WriteString("\n")
	if m.showHelp {
		out.WriteString("\n")
		out.WriteString(m.legend())
		out.WriteString("\n\n")
		out.WriteString(widgets.RenderKeyHelp(keyHelp))
		out.WriteString("\n")
	} else {
		out.WriteString(m.Theme.MutedStyle().Render("space:redraw  ?:help  q:quit"))
	}

	return out.String()
}

func (m Model) header() string {
	device := m.Theme.WarningStyle().Render("no keyboard")
	if m.device != "" {
		device = m.Theme.StatusStyle().Render(m.device)
	}
	return m.Theme.AccentStyle().Render("keystrip") + "  " + device
}

func (m Model) status() string {
	state := m.Vis.State()

	pedal := m.Theme.Symbols.PedalUp
	if state.Pedal() > 0 {
		pedal = m.Theme.Symbols.PedalDown
	}

	var names []string
	for _, k := range state.Active() {
		names = append(names, k.Name())
	}
	notes := strings.Join(names, " ")
	if notes == "" {
		notes = "-"
	}

	return m.Theme.StatusStyle().Render(fmt.Sprintf("pedal %c %3.0f%%  notes %s", pedal, state.Pedal()*100, notes)) +
		"  " + m.Theme.MutedStyle().Render(fmt.Sprintf("frame %d  width %d", m.Vis.Frames(), m.Vis.Width()))
}

func (m Model) legend() string {
	pal := theme.PitchClasses()
	lines := make([]string, 0, len(pal.Colors))
	for i, c := range pal.Colors {
		desc := fmt.Sprintf("hue %3.0f", visualizer.Hue(visualizer.PitchClass(i)))
		lines = append(lines, widgets.RenderLegendItem(c, m.Theme.Symbols.Cell, pal.Names[i], desc))
	}
	return strings.Join(lines, "\n")
}

var keyHelp = []widgets.KeySection{{
	Title: "Keys",
	Keys: []widgets.KeyBinding{
		{Key: "space", Desc: "redraw"},
		{Key: "?", Desc: "toggle legend"},
		{Key: "q, esc", Desc: "quit"},
	},
}}
