package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/repository"
	"github.com/alexanderramin/edital/internal/scheduler"
	"golang.org/x/sync/errgroup"
)

// DefaultAdaptWorkers bounds AdaptActivePlans when no worker count is configured.
const DefaultAdaptWorkers = 4

var errPlanInactive = &domain.PreconditionError{Message: "plan is not active"}

type planService struct {
	plans        repository.PlanRepo
	uow          db.UnitOfWork
	adaptWorkers int
	now          func() time.Time
	observer     UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, adaptWorkers int, observers ...UseCaseObserver) PlanService {
	if adaptWorkers <= 0 {
		adaptWorkers = DefaultAdaptWorkers
	}
	return &planService{
		plans:        plans,
		uow:          uow,
		adaptWorkers: adaptWorkers,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		observer:     combineObservers(observers),
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID, syllabusID string, dailyHours float64, opts GenerateOptions) (plan *domain.StudyPlan, err error) {
	fields := map[string]any{"syllabus_id": syllabusID, "daily_hours": dailyHours, "replace": opts.Replace}
	defer observe(ctx, s.observer, "generate-plan", fields)(&err)

	now := opts.Now
	if now.IsZero() {
		now = s.now()
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		syllabi := repository.NewSQLiteSyllabusRepo(tx)
		plans := repository.NewSQLitePlanRepo(tx)

		syl, err := syllabi.GetByID(ctx, syllabusID)
		if err != nil {
			return err
		}
		if syl.UserID != userID {
			return fmt.Errorf("syllabus %s: %w", syllabusID, domain.ErrNotFound)
		}

		existing, err := plans.GetActive(ctx, userID, syllabusID)
		switch {
		case err == nil:
			if !opts.Replace {
				return domain.ErrPlanExists
			}
			existing.IsActive = false
			existing.LastUpdated = now
			if err := plans.Update(ctx, existing); err != nil {
				return fmt.Errorf("deactivating previous plan: %w", err)
			}
			fields["replaced_plan_id"] = existing.ID
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		plan, err = scheduler.GeneratePlan(syl, dailyHours, now)
		if err != nil {
			return err
		}
		return plans.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	fields["plan_id"] = plan.ID
	fields["sessions"] = len(plan.Sessions)
	return plan, nil
}

func (s *planService) AdaptPlan(ctx context.Context, planID string) (result *AdaptResult, err error) {
	fields := map[string]any{"plan_id": planID}
	defer observe(ctx, s.observer, "adapt-plan", fields)(&err)

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)

		plan, err := plans.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		if !plan.IsActive {
			return errPlanInactive
		}
		history, err := repository.NewSQLiteExamRepo(tx).ListResultsByUser(ctx, plan.UserID)
		if err != nil {
			return fmt.Errorf("loading exam history: %w", err)
		}

		metrics := scheduler.AggregatePerformance(history)
		adapted := scheduler.AdaptPlan(plan, metrics, now)
		if err := plans.ReplaceSessions(ctx, adapted.ID, adapted.Sessions); err != nil {
			return err
		}
		adapted.Progress = adapted.ComputeProgress()
		if err := plans.Update(ctx, adapted); err != nil {
			return err
		}

		result = &AdaptResult{
			Plan:            adapted,
			Metrics:         metrics,
			SessionsChanged: scheduler.CountChangedSessions(plan, adapted),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["sessions_changed"] = result.SessionsChanged
	fields["topics_measured"] = result.Metrics.Len()
	return result, nil
}

func (s *planService) AdaptActivePlans(ctx context.Context, userID string) (_ []*AdaptResult, err error) {
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "adapt-active-plans", fields)(&err)

	active, err := s.plans.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	fields["plans"] = len(active)

	results := make([]*AdaptResult, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.adaptWorkers)
	for i, p := range active {
		g.Go(func() error {
			res, err := s.AdaptPlan(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("adapting plan %s: %w", p.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	changed := 0
	for _, res := range results {
		changed += res.SessionsChanged
	}
	fields["plans_sessions_changed"] = changed
	return results, nil
}

func (s *planService) UpdateSessionStatus(ctx context.Context, planID, sessionID string, update domain.SessionUpdate) (plan *domain.StudyPlan, err error) {
	fields := map[string]any{"plan_id": planID, "session_id": sessionID, "status": string(update.Status)}
	defer observe(ctx, s.observer, "update-session", fields)(&err)

	if err := update.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)

		plan, err = plans.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		session, err := plan.UpdateSession(sessionID, update, now)
		if err != nil {
			return err
		}
		if err := plans.UpdateSession(ctx, session); err != nil {
			return err
		}
		return plans.Update(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	fields["progress"] = plan.Progress
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*domain.StudyPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) ListPlans(ctx context.Context, userID string, activeOnly bool) ([]*domain.StudyPlan, error) {
	return s.plans.ListByUser(ctx, userID, activeOnly)
}

func (s *planService) DeactivatePlan(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "deactivate-plan", map[string]any{"plan_id": id})(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		plan, err := plans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !plan.IsActive {
			return nil
		}
		plan.IsActive = false
		plan.LastUpdated = s.now()
		return plans.Update(ctx, plan)
	})
}

func (s *planService) Risk(ctx context.Context, planID string, now time.Time) (*scheduler.RiskResult, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	risk := scheduler.ComputeRisk(scheduler.RiskInput{
		Now:        now,
		ExamDate:   plan.EndDate,
		DailyHours: plan.DailyHours,
		Sessions:   plan.Sessions,
	})
	return &risk, nil
}
