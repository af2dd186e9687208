package service

import (
	"context"
	"testing"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/platform/store"
	"laurel/internal/services/praise/domain"
	"laurel/internal/services/praise/repo"
)

type fakeDB struct{}

func (f fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f fakeDB) Query(context.Context, string, ...any) (store.Rows, error)     { return nil, nil }
func (f fakeDB) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

type memRepo struct {
	items   map[string]domain.Item
	ratings map[string]domain.Rating
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]domain.Item{}, ratings: map[string]domain.Rating{}}
}

func (m *memRepo) InsertItem(_ context.Context, it domain.Item) error {
	m.items[it.ID] = it
	return nil
}

func (m *memRepo) Item(_ context.Context, id string) (domain.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return domain.Item{}, perr.NotFoundf("praise item %s not found", id)
	}
	return it, nil
}

func (m *memRepo) ItemsByReceiver(_ context.Context, receiverID string, _ int) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range m.items {
		if it.ReceiverID == receiverID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memRepo) InsertRating(_ context.Context, rt domain.Rating) error {
	for _, existing := range m.ratings {
		if existing.ItemID == rt.ItemID && existing.RaterID == rt.RaterID {
			return perr.DuplicateKeyf("rating exists for (%s, %s)", rt.ItemID, rt.RaterID)
		}
	}
	m.ratings[rt.ID] = rt
	return nil
}

func (m *memRepo) RatingsByItem(_ context.Context, itemID string) ([]domain.Rating, error) {
	var out []domain.Rating
	for _, rt := range m.ratings {
		if rt.ItemID == itemID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func newSvc() (*Svc, *memRepo) {
	m := newMemRepo()
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
	return New(fakeDB{}, binder), m
}

func TestCreateItemNormalizesReason(t *testing.T) {
	svc, m := newSvc()

	it, err := svc.CreateItem(context.Background(), domain.CreateItemInput{
		ReceiverID: "alice",
		GiverID:    "bob",
		Reason:     "  for   the‍   release  ",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if it.Reason != "for the release" {
		t.Fatalf("reason = %q, want normalized %q", it.Reason, "for the release")
	}
	if it.ID == "" || it.Score != 0 {
		t.Fatalf("item = %+v, want generated id and zero score", it)
	}
	if _, ok := m.items[it.ID]; !ok {
		t.Fatalf("item not persisted")
	}
}

func TestCreateItemRejectsEmptyReason(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.CreateItem(context.Background(), domain.CreateItemInput{
		ReceiverID: "alice", GiverID: "bob", Reason: "   ",
	})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestAssignOncePerRater(t *testing.T) {
	svc, m := newSvc()
	m.items["it1"] = domain.Item{ID: "it1"}

	rt, err := svc.Assign(context.Background(), domain.AssignInput{ItemID: "it1", RaterID: "r1"})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if rt.Completed() {
		t.Fatalf("pristine rating should not be completed: %+v", rt)
	}

	_, err = svc.Assign(context.Background(), domain.AssignInput{ItemID: "it1", RaterID: "r1"})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("second assign err = %v, want conflict", err)
	}
}

func TestAssignUnknownItem(t *testing.T) {
	svc, _ := newSvc()

	_, err := svc.Assign(context.Background(), domain.AssignInput{ItemID: "ghost", RaterID: "r1"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
