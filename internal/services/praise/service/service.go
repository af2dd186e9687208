// Package service contains praise record workflows
package service

import (
	"context"

	"github.com/google/uuid"

	"laurel/internal/core/normalize"
	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	ptime "laurel/internal/platform/time"
	"laurel/internal/services/praise/domain"
	"laurel/internal/services/praise/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("praise.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("praise.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

// CreateItem records a new praise item with a normalized reason and zero score
func (s *Svc) CreateItem(ctx context.Context, in domain.CreateItemInput) (domain.Item, error) {
	if in.ReceiverID == "" {
		return domain.Item{}, perr.InvalidArgf("receiver id required")
	}
	if in.GiverID == "" {
		return domain.Item{}, perr.InvalidArgf("giver id required")
	}
	reason := normalize.Reason(in.Reason)
	if reason == "" {
		return domain.Item{}, perr.Validationf("reason required")
	}

	it := domain.Item{
		ID:          uuid.NewString(),
		ReceiverID:  in.ReceiverID,
		GiverID:     in.GiverID,
		ForwarderID: in.ForwarderID,
		Reason:      reason,
		Score:       0,
		CreatedAt:   ptime.Now().UTC(),
	}
	it.UpdatedAt = it.CreatedAt

	if err := s.Repo.InsertItem(ctx, it); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

// Item fetches one praise item by id
func (s *Svc) Item(ctx context.Context, id string) (domain.Item, error) {
	if id == "" {
		return domain.Item{}, perr.InvalidArgf("item id required")
	}
	return s.Repo.Item(ctx, id)
}

// ItemsByReceiver lists praise items for a receiver, newest first
func (s *Svc) ItemsByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Item, error) {
	if receiverID == "" {
		return nil, perr.InvalidArgf("receiver id required")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.ItemsByReceiver(ctx, receiverID, limit)
}

// Assign creates the pristine rating row for (item, rater)
func (s *Svc) Assign(ctx context.Context, in domain.AssignInput) (domain.Rating, error) {
	if in.ItemID == "" || in.RaterID == "" {
		return domain.Rating{}, perr.InvalidArgf("item id and rater id required")
	}
	if _, err := s.Repo.Item(ctx, in.ItemID); err != nil {
		return domain.Rating{}, err
	}

	rt := domain.Rating{
		ID:        uuid.NewString(),
		ItemID:    in.ItemID,
		RaterID:   in.RaterID,
		CreatedAt: ptime.Now().UTC(),
	}
	rt.UpdatedAt = rt.CreatedAt

	if err := s.Repo.InsertRating(ctx, rt); err != nil {
		if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
			return domain.Rating{}, perr.Conflictf("rater %s is already assigned to praise item %s", in.RaterID, in.ItemID)
		}
		return domain.Rating{}, err
	}
	return rt, nil
}

// Ratings lists all ratings for an item
func (s *Svc) Ratings(ctx context.Context, itemID string) ([]domain.Rating, error) {
	if itemID == "" {
		return nil, perr.InvalidArgf("item id required")
	}
	return s.Repo.RatingsByItem(ctx, itemID)
}
