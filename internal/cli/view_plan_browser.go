package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/edital/internal/cli/formatter"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/scheduler"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// sessionUpdatedMsg carries the plan returned by a status change.
type sessionUpdatedMsg struct {
	plan *domain.StudyPlan
	risk *scheduler.RiskResult
	note string
	err  error
}

type planBrowserKeys struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Postpone key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

var browserKeys = planBrowserKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
	Postpone: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "postpone")),
	Reset:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "reset")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// planBrowserView lists a plan's sessions and lets the user change their status.
type planBrowserView struct {
	app    *App
	plan   *domain.StudyPlan
	risk   *scheduler.RiskResult
	cursor int
	busy   bool
	note   string
	err    error
}

func newPlanBrowserView(app *App, plan *domain.StudyPlan, risk *scheduler.RiskResult) *planBrowserView {
	v := &planBrowserView{app: app, plan: plan, risk: risk}
	v.cursor = v.firstOpenSession()
	return v
}

func (v *planBrowserView) ShortHelp() []key.Binding {
	return []key.Binding{
		browserKeys.Up, browserKeys.Down,
		browserKeys.Complete, browserKeys.Postpone, browserKeys.Reset,
		browserKeys.Quit,
	}
}

func (v *planBrowserView) Init() tea.Cmd { return nil }

func (v *planBrowserView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionUpdatedMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.plan = msg.plan
		v.risk = msg.risk
		v.note = msg.note
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browserKeys.Quit):
			return v, tea.Quit
		case key.Matches(msg, browserKeys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, browserKeys.Down):
			if v.cursor < len(v.plan.Sessions)-1 {
				v.cursor++
			}
		case key.Matches(msg, browserKeys.Complete):
			return v, v.setStatus(domain.SessionCompleted)
		case key.Matches(msg, browserKeys.Postpone):
			return v, v.setStatus(domain.SessionPostponed)
		case key.Matches(msg, browserKeys.Reset):
			return v, v.setStatus(domain.SessionPending)
		}
	}
	return v, nil
}

func (v *planBrowserView) setStatus(status domain.SessionStatus) tea.Cmd {
	if v.busy || v.cursor >= len(v.plan.Sessions) {
		return nil
	}
	session := v.plan.Sessions[v.cursor]
	if session.Status == status {
		return nil
	}
	v.busy = true
	app, planID, now := v.app, v.plan.ID, v.app.now()
	return func() tea.Msg {
		ctx := context.Background()
		plan, err := app.Plans.UpdateSessionStatus(ctx, planID, session.ID, domain.SessionUpdate{Status: status})
		if err != nil {
			return sessionUpdatedMsg{err: err}
		}
		risk, err := app.Plans.Risk(ctx, planID, now)
		if err != nil {
			return sessionUpdatedMsg{err: err}
		}
		note := fmt.Sprintf("%s → %s", session.TopicName, status)
		return sessionUpdatedMsg{plan: plan, risk: risk, note: note}
	}
}

func (v *planBrowserView) firstOpenSession() int {
	for i, s := range v.plan.Sessions {
		if s.Status != domain.SessionCompleted {
			return i
		}
	}
	return 0
}

func (v *planBrowserView) View() string {
	var b strings.Builder
	now := v.app.now()

	b.WriteString("\n  " + formatter.StyleHeader.Render("STUDY PLAN") + "  " +
		formatter.Dim(formatter.TruncID(v.plan.ID)) + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s", formatter.RenderProgress(v.plan.Progress, 24),
		formatter.ExamCountdown(v.plan.EndDate, now)))
	if v.risk != nil {
		b.WriteString("  " + formatter.RiskIndicator(v.risk.Level))
	}
	b.WriteString("\n\n")

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for i, s := range v.plan.Sessions {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		date := s.ScheduledDate.Format("Mon 02 Jan")
		if s.Status == domain.SessionPending && s.ScheduledDate.Before(today) {
			date = formatter.StyleRed.Render(date)
		} else {
			date = formatter.Dim(date)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s  %s\n",
			cursor, date, formatter.SessionStatusPill(s.Status),
			style.Render(s.TopicName), formatter.Dim(formatter.FormatMinutes(s.Duration))))
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	case v.note != "":
		b.WriteString("  " + formatter.StyleGreen.Render(v.note) + "\n")
	}

	var hints []string
	for _, k := range v.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	b.WriteString("  " + strings.Join(hints, "  ") + "\n")
	return b.String()
}

func newPlanBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [PLAN_ID]",
		Short: "Browse a plan's sessions and mark them done interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan browse needs a terminal; use 'plan session' instead")
			}
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
			_, err = tea.NewProgram(newPlanBrowserView(app, plan, risk),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
}
