package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hr-partner/hrp/internal/matcher"
	"github.com/hr-partner/hrp/internal/score"
	"github.com/hr-partner/hrp/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the persisted match history",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		orch := matcher.New(tk.client, tk.logger)
		history, err := orch.History(cmd.Context(), page, limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSCORE\tVERDICT\tCREATED\tCOMMENT")
		for _, m := range history.Items {
			assessment := score.Classify(m.Score)
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				m.ID,
				score.FormatPercent(m.Score),
				verdictLine(m.Verdict, assessment.Verdict),
				m.CreatedAt,
				util.TruncateForLog(m.LLMComment, 60),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if history.Total > 0 {
			fmt.Printf("\npage %d, %d of %d matches\n", history.Page, len(history.Items), history.Total)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("page", 1, "page number, starting at 1")
	historyCmd.Flags().Int("limit", 20, "matches per page")

	rootCmd.AddCommand(historyCmd)
}
