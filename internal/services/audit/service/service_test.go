package service

import (
	"context"
	"testing"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/platform/store"
	"laurel/internal/services/audit/domain"
	"laurel/internal/services/audit/repo"
)

type fakeDB struct{}

func (f fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f fakeDB) Query(context.Context, string, ...any) (store.Rows, error)     { return nil, nil }
func (f fakeDB) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

type memRepo struct{ events []domain.Event }

func (m *memRepo) Insert(_ context.Context, ev domain.Event) error {
	m.events = append(m.events, ev)
	return nil
}

func (m *memRepo) ListBySubject(_ context.Context, subjectID string, _ int) ([]domain.Event, error) {
	var out []domain.Event
	for _, ev := range m.events {
		if ev.SubjectID == subjectID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func newSvc() (*Svc, *memRepo) {
	m := &memRepo{}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
	return New(fakeDB{}, binder), m
}

func TestRecordFillsIDAndTimestamp(t *testing.T) {
	svc, m := newSvc()

	err := svc.Record(context.Background(), domain.Event{
		Kind:      domain.KindQuantifyScored,
		ActorID:   "r1",
		SubjectID: "item-1",
		Message:   "rater r1 scored praise item-1 with 8",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(m.events) != 1 {
		t.Fatalf("events = %d, want 1", len(m.events))
	}
	ev := m.events[0]
	if ev.ID == "" || ev.At.IsZero() {
		t.Fatalf("event = %+v, want generated id and timestamp", ev)
	}
}

func TestRecordRequiresKindAndMessage(t *testing.T) {
	svc, _ := newSvc()

	err := svc.Record(context.Background(), domain.Event{ActorID: "r1"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}

func TestBySubjectFilters(t *testing.T) {
	svc, m := newSvc()
	m.events = []domain.Event{
		{ID: "1", Kind: "k", SubjectID: "a", Message: "m"},
		{ID: "2", Kind: "k", SubjectID: "b", Message: "m"},
	}

	got, err := svc.BySubject(context.Background(), "a", 10)
	if err != nil || len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("BySubject = %+v %v", got, err)
	}
}
