package domain

// OutcomeKind discriminates the rating outcome union
type OutcomeKind uint8

// Outcome kinds. A rating is in exactly one of these states once quantified
const (
	OutcomeScored OutcomeKind = iota + 1
	OutcomeDismissed
	OutcomeDuplicate
)

// Outcome is the tagged union of possible rating states.
// Construct via Scored, Dismissed or DuplicateOf; the zero Outcome is invalid
type Outcome struct {
	kind        OutcomeKind
	score       float64
	duplicateOf string
}

// Scored builds an outcome carrying a direct score
func Scored(score float64) Outcome { return Outcome{kind: OutcomeScored, score: score} }

// Dismissed builds a dismissal outcome
func Dismissed() Outcome { return Outcome{kind: OutcomeDismissed} }

// DuplicateOf builds an outcome marking the rating a duplicate of another item
func DuplicateOf(itemID string) Outcome {
	return Outcome{kind: OutcomeDuplicate, duplicateOf: itemID}
}

// Kind returns the discriminant
func (o Outcome) Kind() OutcomeKind { return o.kind }

// Score returns the direct score; only meaningful for OutcomeScored
func (o Outcome) Score() float64 { return o.score }

// Duplicate returns the original item id and whether this is a duplicate outcome
func (o Outcome) Duplicate() (string, bool) {
	return o.duplicateOf, o.kind == OutcomeDuplicate
}

// Outcome derives the tagged union from the stored field bag.
// Dismissal and duplicate marks are mutually exclusive by construction of Apply,
// but stored rows predating that guarantee resolve dismissal-first, so a
// stale duplicate mark can never resurrect a dismissed rating's value
func (r Rating) Outcome() Outcome {
	switch {
	case r.Dismissed:
		return Dismissed()
	case r.DuplicateOf != nil:
		return DuplicateOf(*r.DuplicateOf)
	default:
		return Scored(r.Score)
	}
}

// Apply is the only mutator for the outcome fields. It normalizes the field
// bag so that exactly one state is set and the other two are cleared
func (r *Rating) Apply(o Outcome) {
	r.Score = 0
	r.Dismissed = false
	r.DuplicateOf = nil
	switch o.kind {
	case OutcomeScored:
		r.Score = o.score
	case OutcomeDismissed:
		r.Dismissed = true
	case OutcomeDuplicate:
		dup := o.duplicateOf
		r.DuplicateOf = &dup
	}
}
