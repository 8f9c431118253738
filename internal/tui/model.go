// Package tui provides the Bubble Tea learning interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	practicesession "github.com/ksalp/lernportal/internal/domain/practice_session"
)

const refreshInterval = time.Second

type tickMsg time.Time

// Model implements the Bubble Tea learning UI on top of a started session.
type Model struct {
	session *practicesession.Session
	input   textinput.Model
	snap    practicesession.Snapshot

	width  int
	height int

	lastCorrect bool // previous submission was accepted automatically
	answered    int  // answers given in this run
	err         error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#A8071A")).Padding(0, 1)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#434343")).Padding(1, 2)
)

// NewModel constructs the UI for a session that already left PhaseLoading.
func NewModel(s *practicesession.Session) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type the answer and press Enter..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Prompt = "> "
	ti.Focus()

	return &Model{
		session: s,
		input:   ti,
		snap:    s.Snapshot(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// The recorder raises the connection flag from its own goroutines.
		m.snap = m.session.Snapshot()
		return m, tick()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		if m.snap.Phase == practicesession.PhaseAnswer {
			return m.updateAnswer(msg)
		}
		return m.updateQuestion(msg)
	}
	return m, nil
}

func (m *Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	correct, err := m.session.SubmitAnswer(m.input.Value())
	m.err = err
	if err == nil {
		m.answered++
		m.lastCorrect = correct
		m.input.Reset()
	}
	m.snap = m.session.Snapshot()
	return m, nil
}

func (m *Model) updateAnswer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}

	var correct bool
	switch msg.Runes[0] {
	case 'y', 'Y', 'j', 'J':
		correct = true
	case 'n', 'N':
		correct = false
	default:
		return m, nil
	}

	m.err = m.session.GradeManually(correct)
	m.lastCorrect = false
	m.snap = m.session.Snapshot()
	return m, nil
}

// Answered reports how many answers were submitted through the UI.
func (m *Model) Answered() int {
	return m.answered
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	if m.snap.ConnectionError {
		b.WriteString(bannerStyle.Render("Connection problem: answers may not have been saved."))
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render(m.snap.Stats.Locator()))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(m.snap.Question))
	b.WriteString("\n\n")

	switch m.snap.Phase {
	case practicesession.PhaseAnswer:
		b.WriteString(wrongStyle.Render("Your answer:    " + quoted(m.snap.UserAnswer)))
		b.WriteString("\n")
		b.WriteString(correctStyle.Render("Correct answer: " + m.snap.CorrectAnswer))
		b.WriteString("\n\n")
		b.WriteString("Was your answer right anyway? [y/n]")
	default:
		if m.answered > 0 && m.lastCorrect {
			b.WriteString(correctStyle.Render("Correct!"))
			b.WriteString("\n")
		}
		b.WriteString(m.input.View())
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(wrongStyle.Render(m.err.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(statsStyle.Render(m.snap.StatsText))

	content := boxStyle.Render(b.String())
	footer := footerStyle.Render(m.footer())
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) footer() string {
	if m.snap.Phase == practicesession.PhaseAnswer {
		return "y correct · n wrong · esc quit"
	}
	return fmt.Sprintf("enter submit · esc quit · %d answered", m.answered)
}

func quoted(s string) string {
	if s == "" {
		return "(empty)"
	}
	return s
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
