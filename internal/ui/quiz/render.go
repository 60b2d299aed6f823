package quiz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"wiki-quiz-service/internal/app"
	"wiki-quiz-service/internal/domain"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorCursor  = lipgloss.Color("214")
)

func renderHeader(title string, index, total int, noColor bool) string {
	line := title
	if total > 0 {
		line += fmt.Sprintf(" | Question %d of %d", index+1, total)
	}
	return stylize(line, noColor, colorTitle)
}

// renderQuestion reveals the correct answer as soon as the question is answered.
func renderQuestion(session *app.Session, cursor int, noColor bool) string {
	q, ok := session.Current()
	if !ok {
		return stylize("This quiz has no questions.", noColor, colorMuted)
	}
	selected, answered := session.Answer(session.CurrentIndex())

	var b strings.Builder
	b.WriteString(q.Text)
	b.WriteString(" ")
	b.WriteString(stylize("["+q.Difficulty+"]", noColor, colorMuted))
	b.WriteString("\n")
	for i, option := range q.Options {
		pointer := "  "
		if i == cursor {
			pointer = stylize("> ", noColor, colorCursor)
		}
		line := option
		switch {
		case answered && q.Answer != nil && option == *q.Answer:
			line = stylize(option+" (correct)", noColor, colorCorrect)
		case answered && option == selected:
			line = stylize(option+" (your answer)", noColor, colorWrong)
		}
		b.WriteString(pointer + line + "\n")
	}
	if answered && q.Explanation != "" {
		b.WriteString(stylize(q.Explanation, noColor, colorMuted))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderResults(state domain.SessionState, noColor bool) string {
	score := app.Score(state.Questions, state.Answers)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Score: %d%% (%d of %d correct)\n", score.Percentage, score.Correct, score.Total))
	for i, q := range state.Questions {
		mark := stylize("x", noColor, colorWrong)
		if app.IsCorrect(q, state.Answers, i) {
			mark = stylize("v", noColor, colorCorrect)
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, q.Text))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTopics(topics map[string]string, noColor bool) string {
	if len(topics) == 0 {
		return ""
	}
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(stylize("Related topics:", noColor, colorTitle))
	for _, name := range names {
		b.WriteString("\n  " + name)
		if url := topics[name]; url != "" {
			b.WriteString(" " + stylize(url, noColor, colorMuted))
		}
	}
	return b.String()
}

func renderStatus(status string, noColor bool) string {
	if status == "" {
		return ""
	}
	return stylize(status, noColor, colorWrong)
}

func renderHelp(finished, noColor bool) string {
	if finished {
		return stylize("r restart | q quit", noColor, colorMuted)
	}
	return stylize("up/down choose | enter answer | left/right move | r restart | q quit", noColor, colorMuted)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
