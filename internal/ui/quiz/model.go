package quiz

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"wiki-quiz-service/internal/app"
	"wiki-quiz-service/internal/domain"
)

// Model lets one user take a quiz in the terminal.
type Model struct {
	title   string
	topics  map[string]string
	session *app.Session
	cursor  int
	noColor bool
	status  string
}

// Options configures the quiz UI model.
type Options struct {
	NoColor bool
}

// NewModel starts a local session over quiz.
func NewModel(quiz domain.QuizRecord, opts Options) Model {
	return Model{
		title:   quiz.Title,
		topics:  quiz.RelatedTopics,
		session: app.NewSession("local", quiz.ID, quiz.Questions),
		noColor: opts.NoColor,
	}
}

// Score reports the outcome of the session so far.
func (m Model) Score() domain.Score {
	return m.session.Score()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update maps key presses onto session transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.session.Reset()
		m.cursor = 0
		return m, nil
	}
	if m.session.Finished() {
		return m, nil
	}

	switch key.String() {
	case "left", "p", "h":
		m.report(m.session.Retreat())
		m.cursor = m.answeredOption()
	case "right", "n", "l":
		m.report(m.session.Advance())
		m.cursor = m.answeredOption()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if q, ok := m.session.Current(); ok && m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case "enter", " ":
		q, ok := m.session.Current()
		if !ok || len(q.Options) == 0 {
			return m, nil
		}
		m.report(m.session.SelectAnswer(m.session.CurrentIndex(), q.Options[m.cursor]))
	}
	return m, nil
}

// View renders the current question, or the results once finished.
func (m Model) View() string {
	if m.session.Finished() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			renderResults(m.session.Snapshot(), m.noColor),
			renderTopics(m.topics, m.noColor),
			renderHelp(true, m.noColor),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		renderQuestion(m.session, m.cursor, m.noColor),
		renderStatus(m.status, m.noColor),
		renderHelp(false, m.noColor),
	)
}

func (m Model) header() string {
	return renderHeader(m.title, m.session.CurrentIndex(), m.session.Len(), m.noColor)
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// answeredOption places the cursor on the recorded answer of the current question.
func (m Model) answeredOption() int {
	q, ok := m.session.Current()
	if !ok {
		return 0
	}
	selected, answered := m.session.Answer(m.session.CurrentIndex())
	if !answered {
		return 0
	}
	for i, option := range q.Options {
		if option == selected {
			return i
		}
	}
	return 0
}
