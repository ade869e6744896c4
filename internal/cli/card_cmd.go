package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/edital/internal/cli/formatter"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/scheduler"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "card",
		Aliases: []string{"cards"},
		Short:   "Manage spaced-repetition flashcards",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardListCmd(app),
		newCardDueCmd(app),
		newCardReviewCmd(app),
		newCardHistoryCmd(app),
		newCardRemoveCmd(app),
	)

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var front, back, subject string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a flashcard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (front == "" || back == "") && app.interactive() {
				if err := cardForm(&front, &back, &subject).Run(); err != nil {
					return err
				}
			}
			card := &domain.Flashcard{
				UserID:    app.UserID,
				Front:     front,
				Back:      back,
				Subject:   subject,
				CreatedAt: app.now(),
			}
			if err := app.Cards.Create(context.Background(), card); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added flashcard %s, first review %s\n",
				card.ID, card.Review.NextReviewDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&front, "front", "", "Question side")
	cmd.Flags().StringVar(&back, "back", "", "Answer side")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject the card belongs to")

	return cmd
}

func newCardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.Cards.List(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCardList(cards, app.now()))
			return nil
		},
	}
}

func newCardDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List flashcards due for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.Cards.ListDue(context.Background(), app.UserID, app.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, formatter.Dim("Nothing due. Come back later."))
				return nil
			}
			fmt.Fprintf(out, "%d card(s) due\n", len(cards))
			fmt.Fprint(out, formatter.FormatCardList(cards, app.now()))
			return nil
		},
	}
}

func newCardReviewCmd(app *App) *cobra.Command {
	var quality int

	cmd := &cobra.Command{
		Use:   "review [CARD_ID]",
		Short: "Review a card, or every due card interactively",
		Long: "Review grades recall from 0 (blackout) to 5 (perfect). With CARD_ID and --quality the\n" +
			"grade is recorded directly; without them due cards are presented one by one.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				cardID, err := resolveCardID(ctx, app, args[0])
				if err != nil {
					return err
				}
				card, err := app.Cards.GetByID(ctx, cardID)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("quality") {
					if !app.interactive() {
						return fmt.Errorf("--quality is required when not running in a terminal")
					}
					fmt.Fprintln(out, formatter.FormatCardPrompt(card))
					if err := qualityForm(card, &quality).Run(); err != nil {
						return err
					}
				}
				return reviewCard(ctx, app, out, card, quality)
			}

			if cmd.Flags().Changed("quality") {
				return fmt.Errorf("--quality needs a CARD_ID")
			}
			if !app.interactive() {
				return fmt.Errorf("interactive review needs a terminal; pass CARD_ID and --quality instead")
			}
			return reviewDueCards(ctx, app, out)
		},
	}

	cmd.Flags().IntVar(&quality, "quality", 0, fmt.Sprintf("Recall quality (%d-%d)", scheduler.MinQuality, scheduler.MaxQuality))

	return cmd
}

func reviewCard(ctx context.Context, app *App, out io.Writer, card *domain.Flashcard, quality int) error {
	reviewed, err := app.Cards.Review(ctx, card.ID, quality, app.now())
	if err != nil {
		return err
	}
	fmt.Fprint(out, formatter.FormatReviewResult(reviewed, quality))
	return nil
}

func reviewDueCards(ctx context.Context, app *App, out io.Writer) error {
	cards, err := app.Cards.ListDue(ctx, app.UserID, app.now())
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(out, formatter.Dim("Nothing due. Come back later."))
		return nil
	}

	reviewed := 0
	for i, card := range cards {
		fmt.Fprintf(out, "\n%s\n", formatter.Dim(fmt.Sprintf("Card %d of %d", i+1, len(cards))))
		fmt.Fprintln(out, formatter.FormatCardPrompt(card))

		var quality int
		if err := qualityForm(card, &quality).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				break
			}
			return err
		}
		if err := reviewCard(ctx, app, out, card, quality); err != nil {
			return err
		}
		reviewed++
	}
	fmt.Fprintf(out, "\nReviewed %d of %d due card(s)\n", reviewed, len(cards))
	return nil
}

func newCardHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history CARD_ID",
		Short: "Show a card's review log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cardID, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			logs, err := app.Cards.History(ctx, cardID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReviewHistory(logs))
			return nil
		},
	}
}

func newCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CARD_ID",
		Short: "Remove a flashcard and its review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cardID, err := resolveCardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Cards.Delete(ctx, cardID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed flashcard %s\n", cardID)
			return nil
		},
	}
}
