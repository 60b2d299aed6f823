package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"wiki-quiz-service/internal/app"
	"wiki-quiz-service/internal/client"
	"wiki-quiz-service/internal/domain"
	quizui "wiki-quiz-service/internal/ui/quiz"
)

// NewTakeCmd runs an interactive quiz in the terminal.
func NewTakeCmd() *cobra.Command {
	var (
		server  string
		quizID  int64
		file    string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take a stored quiz interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				quiz domain.QuizRecord
				err  error
			)
			switch {
			case file != "":
				quiz, err = loadQuizFile(file)
			case quizID > 0:
				c := client.New(server, &http.Client{Timeout: 10 * time.Second})
				quiz, err = c.Quiz(cmd.Context(), quizID)
			default:
				return errors.New("either --id or --file is required")
			}
			if err != nil {
				return err
			}

			model := quizui.NewModel(quiz, quizui.Options{NoColor: noColor || !useColor(cmd.OutOrStdout())})
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(quizui.Model); ok {
				score := m.Score()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% (%d of %d correct)\n", quiz.Title, score.Percentage, score.Correct, score.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", defaultServer, "quiz service base URL")
	cmd.Flags().Int64Var(&quizID, "id", 0, "stored quiz id")
	cmd.Flags().StringVar(&file, "file", "", "read a quiz record from a JSON file instead")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}

// loadQuizFile reads a record in the generator's format, legacy encodings included.
func loadQuizFile(path string) (domain.QuizRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	var raw domain.QuizRecordRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.QuizRecord{}, fmt.Errorf("read %s: %w", path, err)
	}
	decoded, err := app.DecodeLegacy(raw)
	if err != nil {
		return domain.QuizRecord{}, err
	}
	return app.NormalizeRecord(decoded, app.ReviewDifficulty), nil
}

var isTerminal = term.IsTerminal

// useColor reports whether w is a terminal that has not opted out of color.
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}
