// Package repo provides the quantification engine repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	praisedom "laurel/internal/services/praise/domain"
)

// Repo is the persistence surface the quantify workflow runs against.
// All reads and writes go through the same binder so a transaction-bound
// Queryer sees its own writes
type Repo interface {
	Item(ctx context.Context, id string) (praisedom.Item, error)
	Items(ctx context.Context, ids []string) ([]praisedom.Item, error)
	WriteItemScore(ctx context.Context, id string, score float64) error

	// Rating fetches the (item, rater) rating; the boolean is false when the
	// rater was never assigned to the item
	Rating(ctx context.Context, raterID, itemID string) (praisedom.Rating, bool, error)
	RatingsByItem(ctx context.Context, itemID string) ([]praisedom.Rating, error)

	// DependentItems lists item ids whose rating by raterID points at
	// originalItemID as its original
	DependentItems(ctx context.Context, raterID, originalItemID string) ([]string, error)

	ApplyOutcome(ctx context.Context, ratingID string, o praisedom.Outcome) error
	WriteRealized(ctx context.Context, ratingID string, realized float64) error
}

type (
	// PG is a Postgres implementation of the quantify repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const itemCols = `id, receiver_id, giver_id, COALESCE(forwarder_id, ''), reason, score, created_at, updated_at`

const ratingCols = `id, item_id, rater_id, score, score_realized, dismissed, duplicate_of, created_at, updated_at`

func scanItem(row repokit.Row) (praisedom.Item, error) {
	var it praisedom.Item
	err := row.Scan(&it.ID, &it.ReceiverID, &it.GiverID, &it.ForwarderID, &it.Reason, &it.Score, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// Item fetches one praise item by id
func (r *queries) Item(ctx context.Context, id string) (praisedom.Item, error) {
	const sql = `SELECT ` + itemCols + ` FROM praise_items WHERE id = $1`

	it, err := scanItem(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return praisedom.Item{}, perr.NotFoundf("praise item %s not found", id)
		}
		return praisedom.Item{}, err
	}
	return it, nil
}

// Items fetches several items preserving the order of ids
func (r *queries) Items(ctx context.Context, ids []string) ([]praisedom.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const sql = `SELECT ` + itemCols + ` FROM praise_items WHERE id = ANY($1)`

	rows, err := r.q.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]praisedom.Item, len(ids))
	for rows.Next() {
		var it praisedom.Item
		if err := rows.Scan(
			&it.ID, &it.ReceiverID, &it.GiverID, &it.ForwarderID, &it.Reason, &it.Score, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		byID[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]praisedom.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, perr.NotFoundf("praise item %s not found", id)
		}
		out = append(out, it)
	}
	return out, nil
}

// WriteItemScore persists the composite score for an item
func (r *queries) WriteItemScore(ctx context.Context, id string, score float64) error {
	const sql = `UPDATE praise_items SET score = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.q.Exec(ctx, sql, id, score)
	if err != nil {
		return perr.FromPostgresf(err, "write score for item %s", id)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("praise item %s not found", id)
	}
	return nil
}

// Rating fetches the rating for (item, rater)
func (r *queries) Rating(ctx context.Context, raterID, itemID string) (praisedom.Rating, bool, error) {
	const sql = `SELECT ` + ratingCols + ` FROM praise_ratings WHERE rater_id = $1 AND item_id = $2`

	var rt praisedom.Rating
	row := r.q.QueryRow(ctx, sql, raterID, itemID)
	if err := row.Scan(
		&rt.ID, &rt.ItemID, &rt.RaterID, &rt.Score, &rt.ScoreRealized,
		&rt.Dismissed, &rt.DuplicateOf, &rt.CreatedAt, &rt.UpdatedAt,
	); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return praisedom.Rating{}, false, nil
		}
		return praisedom.Rating{}, false, err
	}
	return rt, true, nil
}

// RatingsByItem lists all ratings for an item in a stable order
func (r *queries) RatingsByItem(ctx context.Context, itemID string) ([]praisedom.Rating, error) {
	const sql = `SELECT ` + ratingCols + ` FROM praise_ratings WHERE item_id = $1 ORDER BY id ASC`

	rows, err := r.q.Query(ctx, sql, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []praisedom.Rating
	for rows.Next() {
		var rt praisedom.Rating
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

// DependentItems lists items marked by raterID as duplicates of originalItemID
func (r *queries) DependentItems(ctx context.Context, raterID, originalItemID string) ([]string, error) {
	const sql = `
		SELECT item_id
		FROM praise_ratings
		WHERE rater_id = $1 AND duplicate_of = $2
		ORDER BY item_id ASC
	`
	rows, err := r.q.Query(ctx, sql, raterID, originalItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ApplyOutcome rewrites the outcome field bag so exactly one state is set
func (r *queries) ApplyOutcome(ctx context.Context, ratingID string, o praisedom.Outcome) error {
	const sql = `
		UPDATE praise_ratings
		SET score = $2, dismissed = $3, duplicate_of = $4, updated_at = NOW()
		WHERE id = $1
	`
	var rt praisedom.Rating
	rt.Apply(o)

	tag, err := r.q.Exec(ctx, sql, ratingID, rt.Score, rt.Dismissed, rt.DuplicateOf)
	if err != nil {
		return perr.FromPostgresf(err, "apply outcome to rating %s", ratingID)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("rating %s not found", ratingID)
	}
	return nil
}

// WriteRealized persists the resolved effective value for a rating
func (r *queries) WriteRealized(ctx context.Context, ratingID string, realized float64) error {
	const sql = `UPDATE praise_ratings SET score_realized = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.q.Exec(ctx, sql, ratingID, realized)
	if err != nil {
		return perr.FromPostgresf(err, "write realized value for rating %s", ratingID)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("rating %s not found", ratingID)
	}
	return nil
}
