package service

import (
	"context"
	"math"

	perr "laurel/internal/platform/errors"
	praisedom "laurel/internal/services/praise/domain"
	"laurel/internal/services/quantify/repo"
	settingsdom "laurel/internal/services/settings/domain"
)

// round2 rounds half away from zero to two decimal places
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// effectiveValue resolves the value a rating contributes to the composite
// score: dismissals contribute zero, duplicates derive from the rater's
// rating on the original item, everything else contributes the direct score
func (s *Svc) effectiveValue(ctx context.Context, r repo.Repo, rt praisedom.Rating) (float64, error) {
	switch o := rt.Outcome(); o.Kind() {
	case praisedom.OutcomeDismissed:
		return 0, nil
	case praisedom.OutcomeDuplicate:
		originalID, _ := o.Duplicate()
		return s.resolveDuplicate(ctx, r, rt, originalID)
	default:
		return rt.Score, nil
	}
}

// resolveDuplicate derives a duplicate rating's value from the same rater's
// rating on the original item, scaled by the period's duplicate percentage
func (s *Svc) resolveDuplicate(ctx context.Context, r repo.Repo, rt praisedom.Rating, originalID string) (float64, error) {
	orig, ok, err := r.Rating(ctx, rt.RaterID, originalID)
	if err != nil {
		return 0, err
	}
	if !ok || orig.DuplicateOf != nil {
		return 0, perr.NotFoundf(
			"no original rating by rater %s on praise item %s for duplicate rating %s", rt.RaterID, originalID, rt.ID,
		)
	}

	item, err := r.Item(ctx, originalID)
	if err != nil {
		return 0, err
	}
	period, ok, err := s.periods.PeriodForDate(ctx, item.CreatedAt)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, perr.Conflictf("praise item %s has no associated period", originalID)
	}

	pct, ok, err := s.settings.Float(ctx, period.ID, settingsdom.KeyDuplicatePraisePercentage)
	if err != nil {
		return 0, err
	}
	if !ok || pct <= 0 {
		return 0, perr.Configf(
			"%s is missing or not positive for period %s", settingsdom.KeyDuplicatePraisePercentage, period.ID,
		)
	}

	return round2(orig.Score * pct), nil
}
