package service

import (
	"context"
	"testing"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/platform/store"
	"laurel/internal/services/settings/domain"
	"laurel/internal/services/settings/repo"
)

type fakeDB struct{}

func (f fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f fakeDB) Query(context.Context, string, ...any) (store.Rows, error)     { return nil, nil }
func (f fakeDB) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f fakeDB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(f) }

type memRepo struct{ rows map[string]domain.Setting }

func (m *memRepo) Raw(_ context.Context, periodID, key string) (domain.Setting, bool, error) {
	s, ok := m.rows[periodID+"/"+key]
	return s, ok, nil
}

func newSvc(rows ...domain.Setting) *Svc {
	m := &memRepo{rows: map[string]domain.Setting{}}
	for _, s := range rows {
		m.rows[s.PeriodID+"/"+s.Key] = s
	}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
	return New(fakeDB{}, binder)
}

func TestFloatParsesNumber(t *testing.T) {
	svc := newSvc(domain.Setting{
		PeriodID: "p1", Key: "DUPLICATE_PRAISE_PERCENTAGE", Kind: domain.KindNumber, Value: " 0.1 ",
	})

	v, ok, err := svc.Float(context.Background(), "p1", "DUPLICATE_PRAISE_PERCENTAGE")
	if err != nil || !ok {
		t.Fatalf("Float: ok=%v err=%v", ok, err)
	}
	if v != 0.1 {
		t.Fatalf("Float = %v, want 0.1", v)
	}
}

func TestFloatMissingRow(t *testing.T) {
	svc := newSvc()

	_, ok, err := svc.Float(context.Background(), "p1", "DUPLICATE_PRAISE_PERCENTAGE")
	if err != nil {
		t.Fatalf("missing row should not error, got %v", err)
	}
	if ok {
		t.Fatalf("missing row reported ok")
	}
}

func TestFloatBadValueIsConfigError(t *testing.T) {
	svc := newSvc(domain.Setting{PeriodID: "p1", Key: "K", Kind: domain.KindNumber, Value: "nope"})

	_, _, err := svc.Float(context.Background(), "p1", "K")
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestKindMismatchIsConfigError(t *testing.T) {
	svc := newSvc(domain.Setting{PeriodID: "p1", Key: "K", Kind: domain.KindString, Value: "1.5"})

	_, _, err := svc.Float(context.Background(), "p1", "K")
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("err = %v, want config error on kind mismatch", err)
	}
}

func TestIntListParsesCSV(t *testing.T) {
	svc := newSvc(domain.Setting{
		PeriodID: "p1", Key: "ALLOWED_SCORE_VALUES", Kind: domain.KindIntList, Value: "1, 2,3 ,5,8",
	})

	got, ok, err := svc.IntList(context.Background(), "p1", "ALLOWED_SCORE_VALUES")
	if err != nil || !ok {
		t.Fatalf("IntList: ok=%v err=%v", ok, err)
	}
	want := []int{1, 2, 3, 5, 8}
	if len(got) != len(want) {
		t.Fatalf("IntList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IntList = %v, want %v", got, want)
		}
	}
}

func TestIntListEmptyIsConfigError(t *testing.T) {
	svc := newSvc(domain.Setting{PeriodID: "p1", Key: "K", Kind: domain.KindIntList, Value: " , "})

	_, _, err := svc.IntList(context.Background(), "p1", "K")
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestBoolAndString(t *testing.T) {
	svc := newSvc(
		domain.Setting{PeriodID: "p1", Key: "FLAG", Kind: domain.KindBoolean, Value: "true"},
		domain.Setting{PeriodID: "p1", Key: "NAME", Kind: domain.KindString, Value: "laurel"},
	)

	b, ok, err := svc.Bool(context.Background(), "p1", "FLAG")
	if err != nil || !ok || !b {
		t.Fatalf("Bool: %v %v %v", b, ok, err)
	}
	s, ok, err := svc.String(context.Background(), "p1", "NAME")
	if err != nil || !ok || s != "laurel" {
		t.Fatalf("String: %q %v %v", s, ok, err)
	}
}

func TestEmptyArgsRejected(t *testing.T) {
	svc := newSvc()

	_, _, err := svc.Float(context.Background(), "", "K")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
