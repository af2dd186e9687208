package service

import (
	"context"
	"testing"
	"time"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/platform/store"
	"laurel/internal/services/periods/domain"
	"laurel/internal/services/periods/repo"
)

type fakeDB struct{}

func (f fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f fakeDB) Query(context.Context, string, ...any) (store.Rows, error)     { return nil, nil }
func (f fakeDB) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

type memRepo struct{ periods []domain.Period }

func (m *memRepo) Period(_ context.Context, id string) (domain.Period, error) {
	for _, p := range m.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Period{}, perr.NotFoundf("period %s not found", id)
}

func (m *memRepo) FirstEndingOnOrAfter(_ context.Context, at time.Time) (domain.Period, bool, error) {
	var best *domain.Period
	for i := range m.periods {
		p := m.periods[i]
		if p.EndDate.Before(at) {
			continue
		}
		if best == nil || p.EndDate.Before(best.EndDate) {
			best = &p
		}
	}
	if best == nil {
		return domain.Period{}, false, nil
	}
	return *best, true, nil
}

func newSvc(periods ...domain.Period) *Svc {
	m := &memRepo{periods: periods}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
	return New(fakeDB{}, binder)
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestPeriodForDatePicksSmallestCoveringEnd(t *testing.T) {
	svc := newSvc(
		domain.Period{ID: "q3", Status: domain.StatusClosed, EndDate: day(2026, 9, 30)},
		domain.Period{ID: "q4", Status: domain.StatusOpen, EndDate: day(2026, 12, 31)},
	)

	p, ok, err := svc.PeriodForDate(context.Background(), day(2026, 8, 15))
	if err != nil || !ok {
		t.Fatalf("PeriodForDate: ok=%v err=%v", ok, err)
	}
	if p.ID != "q3" {
		t.Fatalf("period = %s, want q3 (smallest end date on or after)", p.ID)
	}
}

func TestPeriodForDateOnBoundary(t *testing.T) {
	svc := newSvc(domain.Period{ID: "q3", EndDate: day(2026, 9, 30)})

	p, ok, err := svc.PeriodForDate(context.Background(), day(2026, 9, 30))
	if err != nil || !ok || p.ID != "q3" {
		t.Fatalf("boundary instant should fall in the ending period, got %v %v %v", p.ID, ok, err)
	}
}

func TestPeriodForDateUncovered(t *testing.T) {
	svc := newSvc(domain.Period{ID: "q3", EndDate: day(2026, 9, 30)})

	_, ok, err := svc.PeriodForDate(context.Background(), day(2026, 10, 1))
	if err != nil {
		t.Fatalf("uncovered instant should not error, got %v", err)
	}
	if ok {
		t.Fatalf("uncovered instant reported a period")
	}
}

func TestPeriodRequiresID(t *testing.T) {
	svc := newSvc()

	_, err := svc.Period(context.Background(), "")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
