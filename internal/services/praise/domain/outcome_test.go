package domain

import "testing"

func TestOutcomeRoundTrip(t *testing.T) {
	var r Rating

	r.Apply(Scored(13))
	if o := r.Outcome(); o.Kind() != OutcomeScored || o.Score() != 13 {
		t.Fatalf("outcome = %+v, want scored 13", o)
	}

	r.Apply(Dismissed())
	if o := r.Outcome(); o.Kind() != OutcomeDismissed {
		t.Fatalf("outcome = %+v, want dismissed", o)
	}
	if r.Score != 0 {
		t.Fatalf("dismissal should clear score, got %v", r.Score)
	}

	r.Apply(DuplicateOf("item-9"))
	o := r.Outcome()
	id, ok := o.Duplicate()
	if o.Kind() != OutcomeDuplicate || !ok || id != "item-9" {
		t.Fatalf("outcome = %+v, want duplicate of item-9", o)
	}
	if r.Dismissed {
		t.Fatalf("duplicate mark should clear dismissal")
	}
}

func TestApplyNormalizesFieldBag(t *testing.T) {
	dup := "other"
	r := Rating{Score: 8, Dismissed: true, DuplicateOf: &dup}

	r.Apply(Scored(5))
	if r.Score != 5 || r.Dismissed || r.DuplicateOf != nil {
		t.Fatalf("rating = %+v, want only score set", r)
	}
}

func TestCompleted(t *testing.T) {
	dup := "other"
	cases := []struct {
		name string
		r    Rating
		want bool
	}{
		{"pristine", Rating{}, false},
		{"scored", Rating{Score: 8}, true},
		{"dismissed", Rating{Dismissed: true}, true},
		{"duplicate", Rating{DuplicateOf: &dup}, true},
	}
	for _, tc := range cases {
		if got := tc.r.Completed(); got != tc.want {
			t.Fatalf("%s: Completed = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStoredDismissalWinsOverDuplicate(t *testing.T) {
	dup := "other"
	r := Rating{Dismissed: true, DuplicateOf: &dup}
	if r.Outcome().Kind() != OutcomeDismissed {
		t.Fatalf("dismissal should resolve ahead of a stale duplicate mark")
	}
}
