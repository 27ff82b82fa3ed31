// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the play command
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume or mute change from the TUI
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg signals that the user asked to stop
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(source string, volume int, volCtrl *VolumeControl) Model {
	return Model{
		source:     source,
		volume:     volume,
		state:      StateOpening,
		volumeCtrl: volCtrl,
	}
}

// TUI runs the play screen
type TUI struct {
	program  *tea.Program
	updates  chan StatusMsg
	controls *VolumeControl
}

// New creates the play TUI for source
func New(source string, volume int) *TUI {
	controls := NewVolumeControl()
	return &TUI{
		program:  tea.NewProgram(NewModel(source, volume, controls), tea.WithAltScreen()),
		updates:  make(chan StatusMsg, 10),
		controls: controls,
	}
}

// Controls returns the channels the TUI reports user input on
func (t *TUI) Controls() *VolumeControl {
	return t.controls
}

// Start runs the TUI until it quits
func (t *TUI) Start() error {
	go func() {
		for msg := range t.updates {
			t.program.Send(msg)
		}
	}()

	_, err := t.program.Run()
	return err
}

// Update sends a status update to the TUI without blocking
func (t *TUI) Update(msg StatusMsg) {
	select {
	case t.updates <- msg:
	default:
	}
}

// Stop quits the TUI
func (t *TUI) Stop() {
	t.program.Quit()
	close(t.updates)
}
