package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/gridsnake/game"
)

const (
	title    = "Classic Snake"
	hintText = "Arrow keys / WASD. Space = pause. R = restart."

	// Screen rows above the board's top border.
	headerLines = 1
)

type styles struct {
	title  lipgloss.Style
	score  lipgloss.Style
	board  lipgloss.Style
	head   lipgloss.Style
	body   lipgloss.Style
	food   lipgloss.Style
	empty  lipgloss.Style
	status lipgloss.Style
	button lipgloss.Style
	hint   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		score:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		board:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")),
		head:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		body:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		food:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		status: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		button: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		hint:   lipgloss.NewStyle().Faint(true),
	}
}

// Cells are two columns wide so the board looks roughly square.
const (
	cellHead  = "██"
	cellBody  = "▓▓"
	cellFood  = "● "
	cellEmpty = " ·"
)

type button struct {
	label  string
	act    action
	x0, x1 int // [x0, x1) screen columns
}

// buttons lays the control row out left to right, one space apart. Styling
// only adds colour, so label widths are the on-screen widths.
func (m Model) buttons() []button {
	pause := "Pause"
	if m.sess.Paused() {
		pause = "Resume"
	}
	specs := []struct {
		label string
		act   action
	}{
		{"Up", actUp},
		{"Left", actLeft},
		{"Down", actDown},
		{"Right", actRight},
		{pause, actPause},
		{"Restart", actRestart},
	}

	out := make([]button, 0, len(specs))
	x := 0
	for _, s := range specs {
		text := "[" + s.label + "]"
		out = append(out, button{label: text, act: s.act, x0: x, x1: x + len(text)})
		x += len(text) + 1
	}
	return out
}

// controlsRow is the screen row of the button bar: header, bordered board,
// status line, then buttons.
func (m Model) controlsRow() int {
	return headerLines + int(m.sess.State().Rows) + 2 + 1
}

func (m Model) buttonAt(x, y int) (button, bool) {
	if y != m.controlsRow() {
		return button{}, false
	}
	for _, b := range m.buttons() {
		if x >= b.x0 && x < b.x1 {
			return b, true
		}
	}
	return button{}, false
}

func (m Model) View() string {
	st := m.sess.State()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.title.Render(title))
	b.WriteString("  ")
	b.WriteString(s.score.Render(fmt.Sprintf("Score: %d", st.Score)))
	b.WriteByte('\n')

	b.WriteString(s.board.Render(m.renderCells(st)))
	b.WriteByte('\n')

	if label := m.sess.Status(); label != "" {
		b.WriteString(s.status.Render(label))
	}
	b.WriteByte('\n')

	for i, btn := range m.buttons() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.button.Render(btn.label))
	}
	b.WriteByte('\n')

	b.WriteString(s.hint.Render(hintText + " Q = quit."))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) renderCells(st *game.GameState) string {
	s := m.styles
	body := make(map[game.Point]bool, len(st.Snake))
	for _, p := range st.Snake {
		body[p] = true
	}

	var b strings.Builder
	for y := int32(0); y < st.Rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := int32(0); x < st.Cols; x++ {
			p := game.Point{X: x, Y: y}
			switch {
			case len(st.Snake) > 0 && st.Snake[0] == p:
				b.WriteString(s.head.Render(cellHead))
			case body[p]:
				b.WriteString(s.body.Render(cellBody))
			case st.Food != nil && *st.Food == p:
				b.WriteString(s.food.Render(cellFood))
			default:
				b.WriteString(s.empty.Render(cellEmpty))
			}
		}
	}
	return b.String()
}

// RenderPlain draws the board as plain ASCII, top row first:
// H head, o body, * food, . empty.
func RenderPlain(st *game.GameState) string {
	body := make(map[game.Point]bool, len(st.Snake))
	for _, p := range st.Snake {
		body[p] = true
	}

	var b strings.Builder
	for y := int32(0); y < st.Rows; y++ {
		for x := int32(0); x < st.Cols; x++ {
			p := game.Point{X: x, Y: y}
			switch {
			case len(st.Snake) > 0 && st.Snake[0] == p:
				b.WriteByte('H')
			case body[p]:
				b.WriteByte('o')
			case st.Food != nil && *st.Food == p:
				b.WriteByte('*')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
