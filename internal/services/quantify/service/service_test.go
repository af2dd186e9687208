package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/platform/store"
	auditdom "laurel/internal/services/audit/domain"
	periodsdom "laurel/internal/services/periods/domain"
	praisedom "laurel/internal/services/praise/domain"
	"laurel/internal/services/quantify/domain"
	"laurel/internal/services/quantify/repo"
	scoredom "laurel/internal/services/scorelog/domain"
)

// fakeDB satisfies repokit.TxRunner; the in-memory repo ignores the Queryer
type fakeDB struct{}

func (f fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f fakeDB) Query(context.Context, string, ...any) (store.Rows, error)     { return nil, nil }
func (f fakeDB) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

// memStore is an in-memory repo.Repo, safe for concurrent callers
type memStore struct {
	mu      sync.Mutex
	items   map[string]*praisedom.Item
	ratings map[string]*praisedom.Rating
}

func newMemStore() *memStore {
	return &memStore{
		items:   map[string]*praisedom.Item{},
		ratings: map[string]*praisedom.Rating{},
	}
}

func (m *memStore) Item(_ context.Context, id string) (praisedom.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return praisedom.Item{}, perr.NotFoundf("praise item %s not found", id)
	}
	return *it, nil
}

func (m *memStore) Items(ctx context.Context, ids []string) ([]praisedom.Item, error) {
	out := make([]praisedom.Item, 0, len(ids))
	for _, id := range ids {
		it, err := m.Item(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *memStore) WriteItemScore(_ context.Context, id string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return perr.NotFoundf("praise item %s not found", id)
	}
	it.Score = score
	return nil
}

func (m *memStore) Rating(_ context.Context, raterID, itemID string) (praisedom.Rating, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.ratings {
		if rt.RaterID == raterID && rt.ItemID == itemID {
			return *rt, true, nil
		}
	}
	return praisedom.Rating{}, false, nil
}

func (m *memStore) RatingsByItem(_ context.Context, itemID string) ([]praisedom.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []praisedom.Rating
	for _, rt := range m.ratings {
		if rt.ItemID == itemID {
			out = append(out, *rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) DependentItems(_ context.Context, raterID, originalItemID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, rt := range m.ratings {
		if rt.RaterID == raterID && rt.DuplicateOf != nil && *rt.DuplicateOf == originalItemID {
			out = append(out, rt.ItemID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) ApplyOutcome(_ context.Context, ratingID string, o praisedom.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.ratings[ratingID]
	if !ok {
		return perr.NotFoundf("rating %s not found", ratingID)
	}
	rt.Apply(o)
	return nil
}

func (m *memStore) WriteRealized(_ context.Context, ratingID string, realized float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.ratings[ratingID]
	if !ok {
		return perr.NotFoundf("rating %s not found", ratingID)
	}
	rt.ScoreRealized = realized
	return nil
}

// fakePeriods resolves against a static period list
type fakePeriods struct{ periods []periodsdom.Period }

func (f *fakePeriods) Period(_ context.Context, id string) (periodsdom.Period, error) {
	for _, p := range f.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return periodsdom.Period{}, perr.NotFoundf("period %s not found", id)
}

func (f *fakePeriods) PeriodForDate(_ context.Context, at time.Time) (periodsdom.Period, bool, error) {
	var best *periodsdom.Period
	for i := range f.periods {
		p := f.periods[i]
		if p.EndDate.Before(at) {
			continue
		}
		if best == nil || p.EndDate.Before(best.EndDate) {
			best = &p
		}
	}
	if best == nil {
		return periodsdom.Period{}, false, nil
	}
	return *best, true, nil
}

// fakeSettings serves typed values from nested maps
type fakeSettings struct {
	floats map[string]map[string]float64
	lists  map[string]map[string][]int
}

func (f *fakeSettings) Float(_ context.Context, periodID, key string) (float64, bool, error) {
	v, ok := f.floats[periodID][key]
	return v, ok, nil
}

func (f *fakeSettings) IntList(_ context.Context, periodID, key string) ([]int, bool, error) {
	v, ok := f.lists[periodID][key]
	return v, ok, nil
}

func (f *fakeSettings) Bool(context.Context, string, string) (bool, bool, error) {
	return false, false, nil
}

func (f *fakeSettings) String(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}

type fakeAudit struct{ events []auditdom.Event }

func (f *fakeAudit) Record(_ context.Context, ev auditdom.Event) error {
	f.events = append(f.events, ev)
	return nil
}

type fakeHistory struct{ events []scoredom.ScoreEvent }

func (f *fakeHistory) WriteBatch(_ context.Context, evs []scoredom.ScoreEvent) error {
	f.events = append(f.events, evs...)
	return nil
}

var fib = []int{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}

type fixture struct {
	mem      *memStore
	periods  *fakePeriods
	settings *fakeSettings
	audit    *fakeAudit
	history  *fakeHistory
	svc      *Svc

	seq int
}

func newFixture() *fixture {
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	f := &fixture{
		mem: newMemStore(),
		periods: &fakePeriods{periods: []periodsdom.Period{
			{ID: "p1", Name: "Q3", Status: periodsdom.StatusQuantify, EndDate: end},
		}},
		settings: &fakeSettings{
			floats: map[string]map[string]float64{"p1": {"DUPLICATE_PRAISE_PERCENTAGE": 0.1}},
			lists:  map[string]map[string][]int{"p1": {"ALLOWED_SCORE_VALUES": fib}},
		},
		audit:   &fakeAudit{},
		history: &fakeHistory{},
	}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f.mem })
	f.svc = New(fakeDB{}, binder, Options{
		Periods:  f.periods,
		Settings: f.settings,
		Audit:    f.audit,
		History:  f.history,
	})
	return f
}

func (f *fixture) seedItem(id string) {
	f.mem.items[id] = &praisedom.Item{
		ID:         id,
		ReceiverID: "recv",
		GiverID:    "giver",
		Reason:     "for shipping the thing",
		CreatedAt:  time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) seedRating(raterID, itemID string) string {
	f.seq++
	id := fmt.Sprintf("rt%03d", f.seq)
	f.mem.ratings[id] = &praisedom.Rating{ID: id, ItemID: itemID, RaterID: raterID}
	return id
}

func score(v float64) *float64 { return &v }

func TestQuantifyScoresAggregateToMean(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")
	f.seedRating("r2", "a")
	f.seedRating("r3", "a")

	ctx := context.Background()

	items, err := f.svc.Quantify(ctx, domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	if err != nil {
		t.Fatalf("quantify r1: %v", err)
	}
	if len(items) != 1 || items[0].Score != 8 {
		t.Fatalf("after r1 got %+v, want single item with score 8", items)
	}

	if _, err := f.svc.Quantify(ctx, domain.Input{RaterID: "r2", ItemID: "a", Score: score(13)}); err != nil {
		t.Fatalf("quantify r2: %v", err)
	}
	items, err = f.svc.Quantify(ctx, domain.Input{RaterID: "r3", ItemID: "a", Score: score(144)})
	if err != nil {
		t.Fatalf("quantify r3: %v", err)
	}
	if items[0].Score != 55.0 {
		t.Fatalf("composite = %v, want 55.0", items[0].Score)
	}
	if got := f.mem.items["a"].Score; got != 55.0 {
		t.Fatalf("persisted score = %v, want 55.0", got)
	}
}

func TestDismissalContributesZero(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")
	f.seedRating("r2", "a")
	f.seedRating("r3", "a")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	mustQuantify(t, f, domain.Input{RaterID: "r2", ItemID: "a", Dismissed: true})
	items := mustQuantify(t, f, domain.Input{RaterID: "r3", ItemID: "a", Score: score(144)})

	if items[0].Score != 50.67 {
		t.Fatalf("composite = %v, want 50.67", items[0].Score)
	}
}

func TestStoredDismissalShadowsDuplicateMark(t *testing.T) {
	f := newFixture()
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{50, 100}
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	bid := f.seedRating("r1", "b")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(100)})

	// a damaged row carrying both marks: the dismissal wins, the duplicate
	// value must not resurface
	orig := "a"
	f.mem.ratings[bid].Dismissed = true
	f.mem.ratings[bid].DuplicateOf = &orig

	got, err := f.svc.CompositeScore(context.Background(), "b", false)
	if err != nil {
		t.Fatalf("composite score: %v", err)
	}
	if got != 0 {
		t.Fatalf("composite = %v, want 0 when the rating is dismissed", got)
	}
}

func TestDuplicateDerivesScaledValue(t *testing.T) {
	f := newFixture()
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{50, 100}
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	ratingB := f.seedRating("r1", "b")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(100)})
	items := mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})

	if items[0].Score != 10.0 {
		t.Fatalf("duplicate composite = %v, want 10.0", items[0].Score)
	}
	if got := f.mem.ratings[ratingB].ScoreRealized; got != 10.0 {
		t.Fatalf("realized = %v, want 10.0", got)
	}
}

func TestRescoringOriginalCascadesToDuplicates(t *testing.T) {
	f := newFixture()
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{50, 100}
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	f.seedRating("r1", "b")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(100)})
	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})

	items := mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(50)})
	if len(items) != 2 {
		t.Fatalf("affected = %d items, want 2 (original plus dependent)", len(items))
	}
	byID := map[string]float64{}
	for _, it := range items {
		byID[it.ID] = it.Score
	}
	if byID["a"] != 50.0 {
		t.Fatalf("original = %v, want 50.0", byID["a"])
	}
	if byID["b"] != 5.0 {
		t.Fatalf("dependent = %v, want 5.0", byID["b"])
	}
	if got := f.mem.items["b"].Score; got != 5.0 {
		t.Fatalf("persisted dependent score = %v, want 5.0", got)
	}
}

func TestSelfDuplicateRejected(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", DuplicateOf: "a"})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestDuplicateChainsRejectedBothWays(t *testing.T) {
	f := newFixture()
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{100}
	f.seedItem("a")
	f.seedItem("b")
	f.seedItem("c")
	f.seedRating("r1", "a")
	f.seedRating("r1", "b")
	f.seedRating("r1", "c")

	ctx := context.Background()
	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(100)})
	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})

	// pointing at an existing duplicate is rejected
	_, err := f.svc.Quantify(ctx, domain.Input{RaterID: "r1", ItemID: "c", DuplicateOf: "b"})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("duplicate-of-duplicate err = %v, want conflict", err)
	}

	// an item already serving as an original cannot itself become a duplicate
	_, err = f.svc.Quantify(ctx, domain.Input{RaterID: "r1", ItemID: "a", DuplicateOf: "c"})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("original-to-duplicate err = %v, want conflict", err)
	}
}

func TestConcurrentDuplicateChainIsRejected(t *testing.T) {
	for i := 0; i < 50; i++ {
		f := newFixture()
		f.seedItem("a")
		f.seedItem("b")
		f.seedItem("c")
		f.seedRating("r1", "a")
		f.seedRating("r1", "b")
		f.seedRating("r1", "c")

		// the two marks share item b in their lock sets, so whichever lands
		// second must see the other's commit and refuse the chain
		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "c", DuplicateOf: "b"})
		}()
		wg.Wait()

		if (errs[0] == nil) == (errs[1] == nil) {
			t.Fatalf("errs = [%v, %v], want exactly one rejection", errs[0], errs[1])
		}
		for id, rt := range f.mem.ratings {
			if rt.DuplicateOf == nil {
				continue
			}
			target, ok, _ := f.mem.Rating(context.Background(), rt.RaterID, *rt.DuplicateOf)
			if ok && target.DuplicateOf != nil {
				t.Fatalf("rating %s forms a duplicate chain through item %s", id, *rt.DuplicateOf)
			}
		}
	}
}

func TestScoreMustBeAllowed(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", Score: score(666)})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	root := perr.Root(err)
	for _, want := range []string{"666", "not allowed", "144"} {
		if !contains(root.Error(), want) {
			t.Fatalf("error %q should mention %q", root.Error(), want)
		}
	}
}

func TestScoreRequiredWithoutOtherIntent(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestIntentPrecedenceDuplicateWins(t *testing.T) {
	f := newFixture()
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{100}
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	ratingB := f.seedRating("r1", "b")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(100)})
	mustQuantify(t, f, domain.Input{
		RaterID: "r1", ItemID: "b",
		Score: score(100), Dismissed: true, DuplicateOf: "a",
	})

	rt := f.mem.ratings[ratingB]
	if rt.DuplicateOf == nil || *rt.DuplicateOf != "a" {
		t.Fatalf("rating = %+v, want duplicate_of=a", rt)
	}
	if rt.Dismissed || rt.Score != 0 {
		t.Fatalf("rating = %+v, want dismissed and score cleared", rt)
	}
}

func TestPeriodMustBeInQuantifyStatus(t *testing.T) {
	f := newFixture()
	f.periods.periods[0].Status = periodsdom.StatusOpen
	f.seedItem("a")
	f.seedRating("r1", "a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestItemOutsideAnyPeriodRejected(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.mem.items["a"].CreatedAt = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	f.seedRating("r1", "a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestUnassignedRaterRejected(t *testing.T) {
	f := newFixture()
	f.seedItem("a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestUnknownItemIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "ghost", Score: score(8)})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDuplicateWithoutOriginalRatingFailsAggregation(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "b") // r1 never rated a

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found for the missing original rating", err)
	}
}

func TestMissingDuplicatePercentageIsConfigError(t *testing.T) {
	f := newFixture()
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{100}
	delete(f.settings.floats["p1"], "DUPLICATE_PRAISE_PERCENTAGE")
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	f.seedRating("r1", "b")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(100)})
	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestMissingAllowedValuesIsConfigError(t *testing.T) {
	f := newFixture()
	delete(f.settings.lists["p1"], "ALLOWED_SCORE_VALUES")
	f.seedItem("a")
	f.seedRating("r1", "a")

	_, err := f.svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestDuplicateRoundingTwoDecimals(t *testing.T) {
	f := newFixture()
	f.settings.floats["p1"]["DUPLICATE_PRAISE_PERCENTAGE"] = 0.102
	f.settings.lists["p1"]["ALLOWED_SCORE_VALUES"] = []int{47}
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	f.seedRating("r1", "b")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(47)})
	items := mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "b", DuplicateOf: "a"})

	// 47 * 0.102 = 4.794, rounds to 4.79
	if items[0].Score != 4.79 {
		t.Fatalf("composite = %v, want 4.79", items[0].Score)
	}
}

func TestCompositeScoreIsIdempotent(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")
	f.seedRating("r2", "a")
	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	mustQuantify(t, f, domain.Input{RaterID: "r2", ItemID: "a", Score: score(13)})

	ctx := context.Background()
	first, err := f.svc.CompositeScore(ctx, "a", true)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	second, err := f.svc.CompositeScore(ctx, "a", true)
	if err != nil {
		t.Fatalf("composite again: %v", err)
	}
	if first != second || first != 10.5 {
		t.Fatalf("composite = %v then %v, want stable 10.5", first, second)
	}
}

func TestCompositeScorePeekDoesNotPersist(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	rid := f.seedRating("r1", "a")
	f.mem.ratings[rid].Score = 8 // completed but never aggregated

	got, err := f.svc.CompositeScore(context.Background(), "a", false)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if got != 8.0 {
		t.Fatalf("composite = %v, want 8.0", got)
	}
	if f.mem.items["a"].Score != 0 {
		t.Fatalf("peek persisted item score %v", f.mem.items["a"].Score)
	}
	if f.mem.ratings[rid].ScoreRealized != 0 {
		t.Fatalf("peek persisted realized %v", f.mem.ratings[rid].ScoreRealized)
	}
}

func TestCompositeScoreWithNoCompletedRatingsIsZero(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")

	got, err := f.svc.CompositeScore(context.Background(), "a", false)
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	if got != 0 {
		t.Fatalf("composite = %v, want 0", got)
	}
}

func TestQuantifyManyAppliesInOrder(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	f.seedRating("r1", "b")

	items, err := f.svc.QuantifyMany(context.Background(), domain.BatchInput{
		RaterID: "r1", ItemIDs: []string{"a", "b"}, Dismissed: true,
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("batch returned %d items, want 2", len(items))
	}
	for _, id := range []string{"a", "b"} {
		if f.mem.items[id].Score != 0 {
			t.Fatalf("item %s score = %v, want 0 after dismissal", id, f.mem.items[id].Score)
		}
	}
}

func TestAuditAndHistoryEmitted(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedRating("r1", "a")

	mustQuantify(t, f, domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})

	if len(f.audit.events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(f.audit.events))
	}
	ev := f.audit.events[0]
	if ev.Kind != auditdom.KindQuantifyScored || ev.ActorID != "r1" || ev.SubjectID != "a" {
		t.Fatalf("audit event = %+v", ev)
	}
	if !contains(ev.Message, "r1") || !contains(ev.Message, "a") {
		t.Fatalf("audit message %q should carry the actor and item ids", ev.Message)
	}

	if len(f.history.events) != 1 {
		t.Fatalf("history events = %d, want 1", len(f.history.events))
	}
	he := f.history.events[0]
	if he.Realized != 8 || he.Aggregate != 8 || he.ItemID != "a" {
		t.Fatalf("history event = %+v", he)
	}
}

// txSpy records whether the transaction closure failed, which on a real
// store means the transaction rolled back
type txSpy struct {
	fakeDB
	calls      int
	rolledBack bool
}

func (s *txSpy) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	s.calls++
	err := fn(s.fakeDB)
	if err != nil {
		s.rolledBack = true
	}
	return err
}

func TestFailedCascadeRollsBackAndEmitsNothing(t *testing.T) {
	f := newFixture()
	f.seedItem("a")
	f.seedItem("b")
	f.seedRating("r1", "a")
	bid := f.seedRating("r1", "b")

	// b already resolved as a duplicate of a; removing the percentage makes
	// its recomputation fail halfway through the cascade
	orig := "a"
	f.mem.ratings[bid].DuplicateOf = &orig
	delete(f.settings.floats["p1"], "DUPLICATE_PRAISE_PERCENTAGE")

	spy := &txSpy{}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f.mem })
	svc := New(spy, binder, Options{
		Periods:  f.periods,
		Settings: f.settings,
		Audit:    f.audit,
		History:  f.history,
	})

	_, err := svc.Quantify(context.Background(), domain.Input{RaterID: "r1", ItemID: "a", Score: score(8)})
	if perr.CodeOf(err) != perr.ErrorCodeConfig {
		t.Fatalf("err = %v, want config error", err)
	}

	if spy.calls != 1 || !spy.rolledBack {
		t.Fatalf("tx calls = %d rolledBack = %v, want one rolled back transaction", spy.calls, spy.rolledBack)
	}
	if len(f.audit.events) != 0 {
		t.Fatalf("audit events = %d, want none after a failed transaction", len(f.audit.events))
	}
	if len(f.history.events) != 0 {
		t.Fatalf("history events = %d, want none after a failed transaction", len(f.history.events))
	}
}

func mustQuantify(t *testing.T, f *fixture, in domain.Input) []praisedom.Item {
	t.Helper()
	items, err := f.svc.Quantify(context.Background(), in)
	if err != nil {
		t.Fatalf("quantify %+v: %v", in, err)
	}
	return items
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }
