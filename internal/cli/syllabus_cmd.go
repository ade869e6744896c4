package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/edital/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSyllabusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "syllabus",
		Aliases: []string{"syl"},
		Short:   "Import and inspect exam syllabi",
	}

	cmd.AddCommand(
		newSyllabusImportCmd(app),
		newSyllabusListCmd(app),
		newSyllabusShowCmd(app),
		newSyllabusRemoveCmd(app),
	)

	return cmd
}

func newSyllabusImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a syllabus from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syl, err := app.Syllabi.ImportFile(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s with %d topics (%s)\n", formatter.Bold(syl.Name), len(syl.Topics), syl.ID)
			fmt.Fprint(out, formatter.FormatSyllabus(syl, app.now()))
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newSyllabusListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported syllabi",
		RunE: func(cmd *cobra.Command, args []string) error {
			syllabi, err := app.Syllabi.List(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyllabusList(syllabi, app.now()))
			return nil
		},
	}
}

func newSyllabusShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a syllabus and its topics in priority order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			syl, err := app.Syllabi.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSyllabus(syl, app.now()))
			return nil
		},
	}
}

func newSyllabusRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a syllabus with its plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSyllabusID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Syllabi.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed syllabus %s\n", id)
			return nil
		},
	}
}
