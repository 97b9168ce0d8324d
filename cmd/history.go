package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"healthscore/internal/analysis"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored assessments and engagement stats for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup("")
		if err != nil {
			return err
		}
		defer d.Close()

		userID := d.cfg.User.ID
		records, err := d.svc.GetHistory(userID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		if len(records) == 0 {
			fmt.Fprintf(out, "No assessments for %s\n", userID)
			return nil
		}

		now := time.Now()
		fmt.Fprintf(out, "%-36s  %-14s  %7s  %s\n", "ID", "When", "Overall", "Rating")
		for i := len(records) - 1; i >= 0; i-- {
			a := records[i]
			fmt.Fprintf(out, "%-36s  %-14s  %7d  %s\n",
				a.ID,
				humanize.RelTime(a.CreatedAt, now, "ago", "from now"),
				a.OverallScore,
				analysis.ScoreDescription(a.OverallScore),
			)
		}

		fmt.Fprintf(out, "\nStreak: %d day(s)  Completion: %d%%  Total: %s\n",
			analysis.CalculateStreak(records),
			analysis.CalculateCompletionRate(records),
			humanize.Comma(int64(len(records))),
		)
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print assessments as JSON")
}
