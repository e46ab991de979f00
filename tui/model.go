// Package tui plays a local adventure session in the terminal using Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/zucenko/ancienttales/model"
	"github.com/zucenko/ancienttales/view"
)

var ErrNoTTY = errors.New("the terminal client needs an interactive terminal")

type tickMsg time.Time

// Model owns one Session and feeds key presses into the machine.
type Model struct {
	machine *model.Machine
	session model.Session
	keys    KeyMap
	help    help.Model

	question int // active seacoast question
	cursor   int // highlighted option or character
	feedback model.Outcome
	quitting bool
}

func New(machine *model.Machine) Model {
	return Model{
		machine: machine,
		session: model.NewSession(),
		keys:    DefaultKeyMap,
		help:    help.New(),
	}
}

func (m Model) Session() model.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.machine.Snapshot(m.session)
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.choices(snap)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Tab):
		if n := len(snap.Questions); snap.Scene == model.SC_SEACOAST && n > 0 {
			m.question = (m.question + 1) % n
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Proceed):
		if snap.Can(model.ACT_PROCEED) {
			m.apply(model.Action{Kind: model.ACT_PROCEED})
		}
	case key.Matches(msg, m.keys.Enter):
		m.apply(m.enterAction(snap))
	}
	return m, nil
}

// enterAction picks what enter means on the current screen.
func (m Model) enterAction(snap model.Snapshot) model.Action {
	switch snap.Scene {
	case model.SC_MENU:
		if m.cursor < len(snap.Characters) {
			return model.Action{Kind: model.ACT_SELECT, Character: snap.Characters[m.cursor].Id}
		}
	case model.SC_SEACOAST:
		if q, ok := m.activeQuestion(snap); ok {
			return model.Action{Kind: model.ACT_SUBMIT, Question: q.Index, Choice: q.Options[m.cursor]}
		}
	default:
		if snap.Can(model.ACT_SUBMIT) {
			if q, ok := m.activeQuestion(snap); ok {
				return model.Action{Kind: model.ACT_SUBMIT, Question: q.Index, Choice: q.Options[m.cursor]}
			}
		}
		if len(snap.Actions) > 0 {
			return model.Action{Kind: snap.Actions[0]}
		}
	}
	return model.Action{}
}

func (m *Model) apply(a model.Action) {
	if a.Kind == model.ACT_NONE {
		return
	}
	before := m.session
	out := m.machine.Apply(&m.session, a)
	if out.Result == model.RES_NOOP {
		return
	}
	m.feedback = out
	if m.session.Scene != before.Scene {
		m.question, m.cursor = 0, 0
	} else if m.session.Scene != model.SC_SEACOAST {
		m.cursor = 0
	}
}

func (m Model) activeQuestion(snap model.Snapshot) (model.QuestionView, bool) {
	if m.question >= len(snap.Questions) {
		return model.QuestionView{}, false
	}
	q := snap.Questions[m.question]
	if m.cursor >= len(q.Options) {
		return model.QuestionView{}, false
	}
	return q, true
}

func (m Model) choices(snap model.Snapshot) int {
	if snap.Scene == model.SC_MENU {
		return len(snap.Characters)
	}
	if m.question < len(snap.Questions) {
		return len(snap.Questions[m.question].Options)
	}
	return 0
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.machine.Snapshot(m.session)
	var b strings.Builder

	b.WriteString(TitleStyle.Render(snap.Backdrop.Title))
	b.WriteString("\n\n")

	switch snap.Scene {
	case model.SC_MENU:
		for i, ch := range snap.Characters {
			b.WriteString(m.option(i, "Play as "+ch.Name))
		}
	case model.SC_SHIP_INTRO, model.SC_DIVING:
		b.WriteString(TextStyle.Render(snap.Text))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(view.Progress(snap.Cursor, snap.Total)))
		b.WriteString("\n")
	case model.SC_PEARL_GAME:
		b.WriteString(HeartsStyle.Render(view.Hearts(snap.Hearts, snap.MaxHearts)))
		b.WriteString("  ")
		b.WriteString(DimStyle.Render(view.ScoreTime(snap.Score, snap.Remaining)))
		b.WriteString("\n\n")
	case model.SC_SUMMARY:
		b.WriteString(TextStyle.Render(snap.Text))
		b.WriteString("\n")
	}

	for qi, q := range snap.Questions {
		if snap.Scene == model.SC_SEACOAST && qi != m.question {
			b.WriteString(DimStyle.Render(q.Text))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(TextStyle.Render(q.Text))
		b.WriteString("\n")
		for i, opt := range q.Options {
			b.WriteString(m.option(i, opt))
		}
		b.WriteString("\n")
	}

	if len(snap.Questions) == 0 && snap.Scene != model.SC_MENU {
		for _, a := range snap.Actions {
			b.WriteString(SelectedStyle.Render("[enter] " + view.ActionLabel(a, snap.Scene)))
			b.WriteString("\n")
		}
	}
	if snap.Scene == model.SC_SEACOAST {
		b.WriteString(DimStyle.Render("[p] " + view.ActionLabel(model.ACT_PROCEED, snap.Scene)))
		b.WriteString("\n")
	}

	if line := view.Feedback(m.feedback); line != "" {
		style := SuccessStyle
		if m.feedback.Result == model.RES_WRONG {
			style = ErrorStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if snap.Scene != model.SC_MENU {
		b.WriteString(DimStyle.Render(fmt.Sprintf("\nScore: %d", snap.Score)))
	}
	return BoxStyle.Render(b.String()) + "\n" + m.help.View(m.keys)
}

func (m Model) option(i int, label string) string {
	if i == m.cursor {
		return SelectedStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the Bubble Tea program in the alternate screen.
func Run(machine *model.Machine) error {
	if !IsTTY() {
		return ErrNoTTY
	}
	p := tea.NewProgram(New(machine), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
