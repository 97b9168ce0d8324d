package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"healthscore/internal/analysis"
	"healthscore/internal/questionnaire"
)

var assessJSON bool

var assessCmd = &cobra.Command{
	Use:   "assess <answers-file>",
	Short: "Score an answers file (YAML or JSON) and store the assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := questionnaire.LoadFile(args[0])
		if err != nil {
			var verr *questionnaire.ValidationError
			if errors.As(err, &verr) {
				for _, f := range verr.Fields {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
				}
			}
			return err
		}

		d, err := setup("")
		if err != nil {
			return err
		}
		defer d.Close()

		a, err := d.svc.Submit(cmd.Context(), d.cfg.User.ID, answers)
		if err != nil {
			return err
		}
		result := d.svc.Result(a)

		if assessJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Assessment any             `json:"assessment"`
				Result     analysis.Result `json:"result"`
			}{a, result})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Assessment %s for %s\n\n", a.ID, a.UserID)
		fmt.Fprintf(out, "Overall score: %d/100 (%s)\n", a.OverallScore, result.Description)
		fmt.Fprintf(out, "Data quality:  %s\n\n", analysis.DataQualityDescription(answers.Len()))
		for _, f := range result.Feedback {
			fmt.Fprintf(out, "%-20s %3d  %s\n", f.Pillar.Label(), f.Score, f.Feedback)
			for _, r := range f.Recommendations {
				fmt.Fprintf(out, "%24s- %s\n", "", r)
			}
		}
		if a.Coaching != nil {
			fmt.Fprintf(out, "\nCoaching:\n%s\n", *a.Coaching)
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Print the stored assessment as JSON")
}
