// Package repo provides the praise repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/services/praise/domain"
)

// Repo is the praise persistence surface used by the service layer
type Repo interface {
	InsertItem(ctx context.Context, it domain.Item) error
	Item(ctx context.Context, id string) (domain.Item, error)
	ItemsByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Item, error)

	InsertRating(ctx context.Context, r domain.Rating) error
	RatingsByItem(ctx context.Context, itemID string) ([]domain.Rating, error)
}

type (
	// PG is a Postgres implementation of the praise repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const itemCols = `id, receiver_id, giver_id, forwarder_id, reason, score, created_at, updated_at`

const ratingCols = `id, item_id, rater_id, score, score_realized, dismissed, duplicate_of, created_at, updated_at`

// InsertItem records a new praise item
func (r *queries) InsertItem(ctx context.Context, it domain.Item) error {
	const sql = `
		INSERT INTO praise_items (
			id, receiver_id, giver_id, forwarder_id, reason, score, created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $7)
	`
	_, err := r.q.Exec(ctx, sql, it.ID, it.ReceiverID, it.GiverID, it.ForwarderID, it.Reason, it.Score, it.CreatedAt)
	return perr.FromPostgres(err, "insert praise item")
}

// Item fetches one praise item by id
func (r *queries) Item(ctx context.Context, id string) (domain.Item, error) {
	const sql = `SELECT ` + itemCols + ` FROM praise_items WHERE id = $1`

	var it domain.Item
	var fwd *string
	row := r.q.QueryRow(ctx, sql, id)
	if err := row.Scan(&it.ID, &it.ReceiverID, &it.GiverID, &fwd, &it.Reason, &it.Score, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Item{}, perr.NotFoundf("praise item %s not found", id)
		}
		return domain.Item{}, err
	}
	if fwd != nil {
		it.ForwarderID = *fwd
	}
	return it, nil
}

// ItemsByReceiver lists praise items for a receiver, newest first
func (r *queries) ItemsByReceiver(ctx context.Context, receiverID string, limit int) ([]domain.Item, error) {
	const sql = `
		SELECT ` + itemCols + `
		FROM praise_items
		WHERE receiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, sql, receiverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		var it domain.Item
		var fwd *string
		if err := rows.Scan(&it.ID, &it.ReceiverID, &it.GiverID, &fwd, &it.Reason, &it.Score, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		if fwd != nil {
			it.ForwarderID = *fwd
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// InsertRating creates a pristine rating row for (item, rater)
func (r *queries) InsertRating(ctx context.Context, rt domain.Rating) error {
	const sql = `
		INSERT INTO praise_ratings (
			id, item_id, rater_id, score, score_realized, dismissed, duplicate_of, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	_, err := r.q.Exec(ctx, sql,
		rt.ID, rt.ItemID, rt.RaterID, rt.Score, rt.ScoreRealized, rt.Dismissed, rt.DuplicateOf, rt.CreatedAt,
	)
	return perr.FromPostgres(err, "insert praise rating")
}

// RatingsByItem lists all ratings for an item
func (r *queries) RatingsByItem(ctx context.Context, itemID string) ([]domain.Rating, error) {
	const sql = `SELECT ` + ratingCols + ` FROM praise_ratings WHERE item_id = $1 ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, sql, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Rating
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(
			&rt.ID, &rt.ItemID, &rt.RaterID, &rt.Score, &rt.ScoreRealized,
			&rt.Dismissed, &rt.DuplicateOf, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
