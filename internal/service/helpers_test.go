package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/edital/internal/db"
	"github.com/alexanderramin/edital/internal/domain"
	"github.com/alexanderramin/edital/internal/repository"
	"github.com/alexanderramin/edital/internal/testutil"
	"github.com/stretchr/testify/require"
)

// monday is a fixed weekday so generated calendars are predictable.
var monday = time.Date(2025, 3, 17, 8, 30, 0, 0, time.UTC)

type testEnv struct {
	db        *sql.DB
	uow       db.UnitOfWork
	syllabi   repository.SyllabusRepo
	plans     repository.PlanRepo
	cards     repository.FlashcardRepo
	exams     repository.ExamRepo
	syllabus  SyllabusService
	plan      PlanService
	flashcard FlashcardService
	exam      ExamService
}

func setupServices(t *testing.T, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newTestEnv(database, testutil.NewTestUoW(database), observers...)
}

func newTestEnv(database *sql.DB, uow db.UnitOfWork, observers ...UseCaseObserver) *testEnv {
	env := &testEnv{
		db:      database,
		uow:     uow,
		syllabi: repository.NewSQLiteSyllabusRepo(database),
		plans:   repository.NewSQLitePlanRepo(database),
		cards:   repository.NewSQLiteFlashcardRepo(database),
		exams:   repository.NewSQLiteExamRepo(database),
	}
	env.syllabus = NewSyllabusService(env.syllabi, uow, observers...)
	env.plan = NewPlanService(env.plans, uow, 2, observers...)
	env.flashcard = NewFlashcardService(env.cards, uow, observers...)
	env.exam = NewExamService(env.exams, uow, observers...)
	return env
}

// seedSyllabus stores the default two-topic syllabus with its exam two
// weeks after monday.
func seedSyllabus(t *testing.T, env *testEnv) *domain.Syllabus {
	t.Helper()
	syl := testutil.NewTestSyllabus("Concurso TRT", testutil.WithExamDate(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, env.syllabi.Create(context.Background(), syl))
	return syl
}

// recordingObserver keeps every event it sees. Batch adaptation reports
// from several goroutines, hence the lock.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) named(name string) []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func intPtr(v int) *int { return &v }
