// Package domain defines reward period types
package domain

import "time"

// Status is the lifecycle state of a reward period
type Status string

// Period lifecycle states. Ratings may only be edited while the owning
// period is in StatusQuantify
const (
	StatusOpen     Status = "OPEN"
	StatusQuantify Status = "QUANTIFY"
	StatusClosed   Status = "CLOSED"
)

// Period is a bounded reward window. A praise item belongs to the period
// with the smallest end date on or after the item's creation time
type Period struct {
	ID        string
	Name      string
	Status    Status
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether an instant falls on or before the period end
func (p Period) Contains(at time.Time) bool { return !p.EndDate.Before(at) }
