package domain

import "context"

// CreateItemInput carries the fields needed to record a new praise item
type CreateItemInput struct {
	ReceiverID  string
	GiverID     string
	ForwarderID string
	Reason      string
}

// AssignInput creates the pristine rating row for a rater on an item
type AssignInput struct {
	ItemID  string
	RaterID string
}

// ServicePort is the praise record surface exposed to other modules
type ServicePort interface {
	// CreateItem records a new praise item with a normalized reason and zero score
	CreateItem(ctx context.Context, in CreateItemInput) (Item, error)

	// Item fetches one praise item by id
	Item(ctx context.Context, id string) (Item, error)

	// ItemsByReceiver lists praise items for a receiver, newest first
	ItemsByReceiver(ctx context.Context, receiverID string, limit int) ([]Item, error)

	// Assign creates the pristine rating row for (item, rater)
	Assign(ctx context.Context, in AssignInput) (Rating, error)

	// Ratings lists all ratings for an item
	Ratings(ctx context.Context, itemID string) ([]Rating, error)
}
