// Package tui provides the Bubble Tea frame driver for the game.
// It handles the terminal UI loop, input mapping, score submission and the
// menu/leaderboard screens, locally or over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the tick loop that scheduled it; ticks from a loop that was
// replaced by a restart are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick message after one
// frame at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// generations hands out tick loop ids. They are unique across every model in
// the process, so a tick from a discarded game can never match a new one.
var generations atomic.Int64

func nextGeneration() int {
	return int(generations.Add(1))
}
