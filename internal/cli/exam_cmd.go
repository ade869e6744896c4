package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/edital/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Record practice exam results and review performance",
	}

	cmd.AddCommand(
		newExamRecordCmd(app),
		newExamReportCmd(app),
	)

	return cmd
}

func newExamRecordCmd(app *App) *cobra.Command {
	var adapt bool

	cmd := &cobra.Command{
		Use:   "record FILE",
		Short: "Record an exam attempt from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			result, err := app.Exams.ImportResultFile(ctx, app.UserID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatExamResult(result))

			if !adapt {
				return nil
			}
			results, err := app.Plans.AdaptActivePlans(ctx, app.UserID)
			if err != nil {
				return err
			}
			for _, res := range results {
				fmt.Fprint(out, formatter.FormatAdaptation(res.Plan, res.Metrics, res.SessionsChanged))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&adapt, "adapt", false, "Adapt all active plans after recording")

	return cmd
}

func newExamReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show performance per subject across all recorded exams",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := app.Exams.PerformanceReport(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPerformance(metrics))
			return nil
		},
	}
}
