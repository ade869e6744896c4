package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/edital/internal/cli/formatter"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate, adapt and follow study plans",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanAdaptCmd(app),
		newPlanBrowseCmd(app),
		newPlanDeactivateCmd(app),
		newPlanSessionCmd(app),
	)

	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var hours float64
	var replace bool

	cmd := &cobra.Command{
		Use:   "generate SYLLABUS_ID",
		Short: "Generate a study plan from today until the exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			syllabusID, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("hours") {
				hours = app.DailyHours
			}

			plan, err := app.Plans.GeneratePlan(ctx, app.UserID, syllabusID, hours, service.GenerateOptions{
				Replace: replace,
				Now:     app.now(),
			})
			if err != nil {
				if errors.Is(err, domain.ErrPlanExists) {
					return fmt.Errorf("%w (use --replace to deactivate it)", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated plan %s with %d sessions\n", plan.ID, len(plan.Sessions))
			fmt.Fprintln(out, formatter.FormatPlan(plan, nil, app.now()))
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Daily study hours (defaults to EDITAL_DAILY_HOURS)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Deactivate the current active plan for this syllabus")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.ListPlans(context.Background(), app.UserID, !all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive plans")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [PLAN_ID]",
		Short: "Show a plan's sessions and whether it is on track",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanArg(ctx, app, args)
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetPlan(ctx, planID)
			if err != nil {
				return err
			}
			risk, err := app.Plans.Risk(ctx, planID, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan, risk, app.now()))
			return nil
		},
	}
}

func newPlanAdaptCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "adapt [PLAN_ID]",
		Short: "Rebalance session time toward weak subjects using exam results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if all {
				results, err := app.Plans.AdaptActivePlans(ctx, app.UserID)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintln(out, formatter.Dim("No active plans."))
				}
				for _, res := range results {
					fmt.Fprint(out, formatter.FormatAdaptation(res.Plan, res.Metrics, res.SessionsChanged))
				}
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("plan ID is required unless --all is set")
			}
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Plans.AdaptPlan(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatAdaptation(res.Plan, res.Metrics, res.SessionsChanged))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Adapt every active plan")

	return cmd
}

func newPlanDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate PLAN_ID",
		Short: "Deactivate a plan so a new one can be generated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.DeactivatePlan(ctx, planID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated plan %s\n", planID)
			return nil
		},
	}
}

func newPlanSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record progress on plan sessions",
	}

	cmd.AddCommand(
		newSessionStatusCmd(app, "complete", "Mark a session completed", domain.SessionCompleted),
		newSessionStatusCmd(app, "postpone", "Mark a session postponed", domain.SessionPostponed),
		newSessionStatusCmd(app, "reset", "Move a session back to pending", domain.SessionPending),
	)

	return cmd
}

func newSessionStatusCmd(app *App, use, short string, status domain.SessionStatus) *cobra.Command {
	var actual, performance int
	var notes string

	cmd := &cobra.Command{
		Use:   use + " PLAN_ID SESSION",
		Short: short,
		Long:  short + ". SESSION is the # shown by 'plan show' or a session ID.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetPlan(ctx, planID)
			if err != nil {
				return err
			}
			sessionID, err := resolveSessionID(plan, args[1])
			if err != nil {
				return err
			}

			update := domain.SessionUpdate{
				Status:         status,
				ActualDuration: ifChanged(cmd.Flags(), "actual", actual),
				Performance:    ifChanged(cmd.Flags(), "performance", performance),
				Notes:          ifChanged(cmd.Flags(), "notes", notes),
			}

			updated, err := app.Plans.UpdateSessionStatus(ctx, planID, sessionID, update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s %s. Plan progress: %s\n",
				args[1], status, formatter.RenderProgress(updated.Progress, 10))
			return nil
		},
	}

	cmd.Flags().IntVar(&actual, "actual", 0, "Minutes actually studied")
	cmd.Flags().IntVar(&performance, "performance", 0, "Self-assessed performance (0-100)")
	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")

	return cmd
}

// ifChanged returns &val when the named flag was set on the command line,
// nil otherwise, so unset flags leave the stored value alone.
func ifChanged[T any](fs *pflag.FlagSet, name string, val T) *T {
	if !fs.Changed(name) {
		return nil
	}
	return &val
}
