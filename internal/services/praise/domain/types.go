// Package domain defines the praise record model shared across services
package domain

import "time"

// Item is a contribution record being rated by peers
// Score is the aggregate realized value and is written only by the score aggregator
type Item struct {
	ID          string
	ReceiverID  string
	GiverID     string
	ForwarderID string
	Reason      string
	Score       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Rating is one rater's evaluation of one praise item
// Exactly one rating exists per (item, rater) pair; rows are created by the
// assignment step with score=0, dismissed=false, duplicate_of unset and are
// mutated only through the quantify workflow
type Rating struct {
	ID            string
	ItemID        string
	RaterID       string
	Score         float64
	ScoreRealized float64
	Dismissed     bool
	DuplicateOf   *string // item id
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Completed reports whether the rating counts toward the composite score
func (r Rating) Completed() bool {
	return r.Dismissed || r.DuplicateOf != nil || r.Score > 0
}
