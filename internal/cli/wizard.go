package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/edital/internal/cli/formatter"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// editalHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func editalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// qualityLabels describe the SM-2 recall grades.
var qualityLabels = []string{
	"0 - blackout",
	"1 - wrong, answer felt familiar",
	"2 - wrong, answer was easy to recall",
	"3 - right, with serious difficulty",
	"4 - right, after hesitation",
	"5 - perfect recall",
}

// qualityForm asks for the recall grade of a card, showing its answer.
func qualityForm(card *domain.Flashcard, value *int) *huh.Form {
	options := make([]huh.Option[int], 0, len(qualityLabels))
	for q := len(qualityLabels) - 1; q >= 0; q-- {
		options = append(options, huh.NewOption(qualityLabels[q], q))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How well did you recall it?").
				Description("Answer: "+card.Back).
				Options(options...).
				Value(value),
		),
	).WithTheme(editalHuhTheme()).WithShowHelp(false)
}

// cardForm collects the faces and subject of a new flashcard.
func cardForm(front, back, subject *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Front").Value(front).Validate(requiredText("front")),
			huh.NewText().Title("Back").Value(back).Validate(requiredText("back")),
			huh.NewInput().Title("Subject (optional)").Value(subject),
		),
	).WithTheme(editalHuhTheme())
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
