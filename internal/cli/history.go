package cli

import (
	"fmt"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"wiki-quiz-service/internal/client"
)

const defaultServer = "http://localhost:8080"

// NewHistoryCmd lists stored quizzes from a running server.
func NewHistoryCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(server, &http.Client{Timeout: 10 * time.Second})
			entries, err := c.History(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no quizzes yet")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCREATED\tURL")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Title, e.CreatedAt.Local().Format(time.DateTime), e.URL)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&server, "server", defaultServer, "quiz service base URL")
	return cmd
}
