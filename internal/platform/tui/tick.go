// Package tui provides the Bubble Tea integration for the dango maze.
// It handles the terminal UI loop, input mapping, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dango-maze/internal/maze"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// TimerMsg is sent to refresh the on-screen timer.
type TimerMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// timerCmd schedules the next timer refresh, independent of the frame rate.
func timerCmd() tea.Cmd {
	return tea.Tick(maze.TimerInterval, func(t time.Time) tea.Msg {
		return TimerMsg(t)
	})
}
