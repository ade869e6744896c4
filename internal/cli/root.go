package cli

import (
	"time"

	"github.com/alexanderramin/edital/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Syllabi service.SyllabusService
	Plans   service.PlanService
	Cards   service.FlashcardService
	Exams   service.ExamService

	// UserID owns everything the CLI creates or lists.
	UserID string
	// DailyHours is the default study budget for plan generation.
	DailyHours float64

	// Now and IsInteractive are replaceable in tests.
	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "edital" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "edital",
		Short:         "Adaptive study planner for exam syllabi",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSyllabusCmd(app),
		newPlanCmd(app),
		newCardCmd(app),
		newExamCmd(app),
	)

	return root
}
