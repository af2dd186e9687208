package service

import (
	"context"

	ptime "laurel/internal/platform/time"
	"laurel/internal/services/quantify/repo"
	scoredom "laurel/internal/services/scorelog/domain"
)

// aggregate recomputes an item's composite score: the two-decimal mean of
// the effective values of completed ratings, or zero when none are
// completed. With persist set the realized value of every completed rating
// and the item score are written through r
func (s *Svc) aggregate(ctx context.Context, r repo.Repo, itemID string, persist bool) (float64, []scoredom.ScoreEvent, error) {
	ratings, err := r.RatingsByItem(ctx, itemID)
	if err != nil {
		return 0, nil, err
	}

	now := ptime.Now().UTC()
	var (
		sum    float64
		n      int
		events []scoredom.ScoreEvent
	)
	for _, rt := range ratings {
		if !rt.Completed() {
			continue
		}
		v, err := s.effectiveValue(ctx, r, rt)
		if err != nil {
			return 0, nil, err
		}
		if persist {
			if err := r.WriteRealized(ctx, rt.ID, v); err != nil {
				return 0, nil, err
			}
		}
		events = append(events, scoredom.ScoreEvent{
			ItemID:   itemID,
			RatingID: rt.ID,
			RaterID:  rt.RaterID,
			Realized: v,
			At:       now,
		})
		sum += v
		n++
	}

	score := 0.0
	if n > 0 {
		score = round2(sum / float64(n))
	}
	for i := range events {
		events[i].Aggregate = score
	}

	if persist {
		if err := r.WriteItemScore(ctx, itemID, score); err != nil {
			return 0, nil, err
		}
	}
	return score, events, nil
}
