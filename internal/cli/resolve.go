package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/edital/internal/domain"
)

// resolvePrefix picks the single id starting with input. Full ids pass
// through unchanged; ambiguous prefixes are rejected.
func resolvePrefix(kind, input string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s %q: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveSyllabusID accepts a full UUID or a unique prefix of one of the
// user's syllabi.
func resolveSyllabusID(ctx context.Context, app *App, input string) (string, error) {
	syllabi, err := app.Syllabi.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(syllabi))
	for i, s := range syllabi {
		ids[i] = s.ID
	}
	return resolvePrefix("syllabus", input, ids)
}

// resolvePlanID accepts a full UUID or a unique prefix of one of the
// user's plans, active or not.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	plans, err := app.Plans.ListPlans(ctx, app.UserID, false)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}
	return resolvePrefix("plan", input, ids)
}

func resolveCardID(ctx context.Context, app *App, input string) (string, error) {
	cards, err := app.Cards.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return resolvePrefix("flashcard", input, ids)
}

// resolveSessionID accepts the 1-based position shown by 'plan show', a full
// session UUID, or a unique prefix of one.
func resolveSessionID(plan *domain.StudyPlan, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(plan.Sessions) {
			return "", fmt.Errorf("session #%d: %w", n, domain.ErrNotFound)
		}
		return plan.Sessions[n-1].ID, nil
	}
	ids := make([]string, len(plan.Sessions))
	for i, s := range plan.Sessions {
		ids[i] = s.ID
	}
	return resolvePrefix("session", input, ids)
}

// resolvePlanArg resolves an optional PLAN_ID argument. Without one, the
// user's only active plan is used.
func resolvePlanArg(ctx context.Context, app *App, args []string) (string, error) {
	if len(args) > 0 {
		return resolvePlanID(ctx, app, args[0])
	}
	plans, err := app.Plans.ListPlans(ctx, app.UserID, true)
	if err != nil {
		return "", err
	}
	switch len(plans) {
	case 0:
		return "", fmt.Errorf("no active plan: %w", domain.ErrNotFound)
	case 1:
		return plans[0].ID, nil
	default:
		return "", fmt.Errorf("%d active plans, pass a PLAN_ID", len(plans))
	}
}
