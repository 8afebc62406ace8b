package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/game"
)

type action uint8

const (
	actNone action = iota
	actUp
	actDown
	actLeft
	actRight
	actPause
	actRestart
	actQuit
)

var keyActions = map[string]action{
	"up":     actUp,
	"down":   actDown,
	"left":   actLeft,
	"right":  actRight,
	"w":      actUp,
	"s":      actDown,
	"a":      actLeft,
	"d":      actRight,
	"W":      actUp,
	"S":      actDown,
	"A":      actLeft,
	"D":      actRight,
	" ":      actPause,
	"r":      actRestart,
	"R":      actRestart,
	"q":      actQuit,
	"ctrl+c": actQuit,
}

func keyAction(msg tea.KeyMsg) action {
	if msg.Type == tea.KeySpace {
		return actPause
	}
	return keyActions[msg.String()]
}

func (a action) direction() game.Direction {
	switch a {
	case actUp:
		return game.Up
	case actDown:
		return game.Down
	case actLeft:
		return game.Left
	case actRight:
		return game.Right
	}
	return game.None
}
