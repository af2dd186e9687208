// Package domain defines period-scoped setting types
package domain

import "time"

// Kind is the declared value type of a setting row
type Kind string

// Setting value kinds. Readers request a concrete kind and a mismatch with
// the stored declaration is a configuration error, not a silent coercion
const (
	KindNumber  Kind = "NUMBER"
	KindIntList Kind = "INT_LIST"
	KindBoolean Kind = "BOOLEAN"
	KindString  Kind = "STRING"
)

// Setting keys consumed by the quantification engine
const (
	KeyDuplicatePraisePercentage = "DUPLICATE_PRAISE_PERCENTAGE"
	KeyAllowedScoreValues        = "ALLOWED_SCORE_VALUES"
)

// Setting is one period-scoped configuration row. Value holds the raw text
// representation; typed accessors on the service parse it per Kind
type Setting struct {
	PeriodID  string
	Key       string
	Kind      Kind
	Value     string
	UpdatedAt time.Time
}
