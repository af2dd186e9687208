// Package domain defines audit trail types
package domain

import (
	"context"
	"time"
)

// Event kinds emitted by the quantification workflow
const (
	KindQuantifyScored    = "quantify.scored"
	KindQuantifyDismissed = "quantify.dismissed"
	KindQuantifyDuplicate = "quantify.duplicate"
)

// Event is one human-readable audit record. Message carries the rendered
// text with identifiers substituted in; the structured fields remain
// queryable alongside it
type Event struct {
	ID        string
	Kind      string
	ActorID   string
	SubjectID string
	Message   string
	At        time.Time
}

// RecorderPort appends audit events for other modules
type RecorderPort interface {
	Record(ctx context.Context, ev Event) error
}
