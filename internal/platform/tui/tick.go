// Package tui provides the Bubble Tea front end: the local game loop, the
// variant menu and the SSH server.
// Games never see Bubble Tea; this package maps keys, drives ticks and paints.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TickMsg asks the model to advance the game by one platform frame.
type TickMsg struct {
	At time.Time
}

// frameInterval is the wall time of one platform frame. Non-positive rates
// fall back to the default frame rate.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}
