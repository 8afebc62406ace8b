// Package tui is the Bubble Tea front end: it owns the tick timer, maps keys
// and clicks to session actions, and renders the board.
package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/gridsnake/session"
)

// TickMsg drives one session tick. Gen ties it to the tick loop that
// scheduled it; pausing or restarting starts a new loop and strands old ticks.
type TickMsg struct {
	Gen  int
	Time time.Time
}

func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

type Model struct {
	sess     *session.Session
	interval time.Duration
	logger   *slog.Logger
	styles   styles

	gen int
}

func New(sess *session.Session, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		sess:     sess,
		interval: sess.Config().TickInterval,
		logger:   logger,
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval, m.gen)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.sess.Tick()
		if !m.sess.Running() {
			// Paused or over: let the loop die; resume/restart starts a new one.
			return m, nil
		}
		return m, tickCmd(m.interval, m.gen)
	case tea.KeyMsg:
		return m.apply(keyAction(msg))
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if b, ok := m.buttonAt(msg.X, msg.Y); ok {
			return m.apply(b.act)
		}
	}
	return m, nil
}

func (m Model) apply(a action) (tea.Model, tea.Cmd) {
	switch a {
	case actUp, actDown, actLeft, actRight:
		m.sess.Queue(a.direction())
		return m, nil
	case actPause:
		m.sess.TogglePause()
		m.gen++
		if m.sess.Running() {
			return m, tickCmd(m.interval, m.gen)
		}
		return m, nil
	case actRestart:
		m.sess.Restart()
		m.gen++
		return m, tickCmd(m.interval, m.gen)
	case actQuit:
		m.logger.Info("quit requested", "game_id", m.sess.GameID(), "score", m.sess.State().Score)
		return m, tea.Quit
	}
	return m, nil
}
