// ABOUTME: Bubbletea model for the play TUI
// ABOUTME: Shows stream info, decode progress and volume; handles key input
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Resonate-Protocol/mpegsync/pkg/audio/decode"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Playback states
const (
	StateOpening  = "opening"
	StatePlaying  = "playing"
	StateFinished = "finished"
	StateFailed   = "failed"
)

// Model represents the TUI state
type Model struct {
	source string

	// Stream
	info       decode.StreamInfo
	hasInfo    bool
	audioStart int64

	// Progress
	units   int64
	samples int64
	state   string
	err     error

	// Playback
	volume int
	muted  bool

	volumeCtrl *VolumeControl
	quitting   bool

	width int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	helpStyle = lipgloss.NewStyle().Faint(true)
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Stopping playback...\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("mpegsync"))
	b.WriteString("\n")
	m.field(&b, "Source", truncate(m.source, 60))
	m.field(&b, "State", m.state)
	b.WriteString("\n")

	if m.hasInfo {
		m.field(&b, "Format", fmt.Sprintf("%s %s, %d Hz %s, %d kbps",
			m.info.Version, m.info.Layer, m.info.SampleRate, channelName(m.info.Channels), m.info.Bitrate))
		if m.info.Encoder != "" {
			m.field(&b, "Encoder", m.info.Encoder)
		}
		m.field(&b, "Audio at", fmt.Sprintf("byte %d", m.audioStart))
		b.WriteString("\n")
	}

	progress := fmt.Sprintf("%d frames", m.units)
	if m.info.TotalFrames > 0 {
		progress = fmt.Sprintf("[%s] %d/%d frames",
			renderBar(int(m.units), m.info.TotalFrames, 30), m.units, m.info.TotalFrames)
	}
	m.field(&b, "Progress", progress)
	m.field(&b, "Elapsed", formatDuration(m.elapsed()))

	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	m.field(&b, "Volume", fmt.Sprintf("[%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓:Volume  m:Mute  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) field(b *strings.Builder, name, value string) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-9s", name+":")))
	b.WriteString(" ")
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func (m Model) elapsed() time.Duration {
	if m.info.SampleRate == 0 {
		return 0
	}
	return time.Duration(m.samples) * time.Second / time.Duration(m.info.SampleRate)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume = min(m.volume+5, 100)
		m.sendVolume()
	case "down":
		m.volume = max(m.volume-5, 0)
		m.sendVolume()
	case "m":
		m.muted = !m.muted
		m.sendVolume()
	}

	return m, nil
}

func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Info != nil {
		m.info = *msg.Info
		m.hasInfo = true
		m.audioStart = msg.AudioStart
	}
	if msg.Units > m.units {
		m.units = msg.Units
		m.samples = msg.Samples
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Err != nil {
		m.err = msg.Err
		m.state = StateFailed
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Info       *decode.StreamInfo
	AudioStart int64
	Units      int64
	Samples    int64
	State      string
	Err        error
}

func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = min((value*width)/max, width)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
