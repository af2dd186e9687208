// Package service contains the quantification consensus workflow
package service

import (
	"context"
	"fmt"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/platform/logger"
	auditdom "laurel/internal/services/audit/domain"
	periodsdom "laurel/internal/services/periods/domain"
	praisedom "laurel/internal/services/praise/domain"
	"laurel/internal/services/quantify/domain"
	"laurel/internal/services/quantify/repo"
	scoredom "laurel/internal/services/scorelog/domain"
	settingsdom "laurel/internal/services/settings/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the quantification workflow
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	periods  periodsdom.ProviderPort
	settings settingsdom.ReaderPort
	audit    auditdom.RecorderPort
	history  scoredom.WriterPort

	locks *keyedMutex
}

// Options wire the collaborating module ports
type Options struct {
	// Periods is required
	Periods periodsdom.ProviderPort

	// Settings is required
	Settings settingsdom.ReaderPort

	// Audit is optional; if set, every quantification appends a trail event
	Audit auditdom.RecorderPort

	// History is optional; if set, recomputed realized values are streamed out
	History scoredom.WriterPort
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("quantify.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("quantify.Service requires a non nil Repo binder")
	}
	if opt.Periods == nil {
		panic("quantify.Service requires a non nil period provider")
	}
	if opt.Settings == nil {
		panic("quantify.Service requires a non nil settings reader")
	}

	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		periods:  opt.Periods,
		settings: opt.Settings,
		audit:    opt.Audit,
		history:  opt.History,
		locks:    newKeyedMutex(),
	}
}

// Quantify applies one rater's evaluation to one item.
// Validation runs up front; the outcome write and every dependent composite
// recomputation then commit in a single transaction, so readers never observe
// a rating change without its cascaded scores
func (s *Svc) Quantify(ctx context.Context, in domain.Input) ([]praisedom.Item, error) {
	if in.RaterID == "" {
		return nil, perr.InvalidArgf("rater id required")
	}
	if in.ItemID == "" {
		return nil, perr.InvalidArgf("item id required")
	}

	item, err := s.Repo.Item(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	period, ok, err := s.periods.PeriodForDate(ctx, item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.Conflictf("praise item %s has no associated period", in.ItemID)
	}
	if period.Status != periodsdom.StatusQuantify {
		return nil, perr.Conflictf("period %s is %s, ratings can only be edited while it is %s",
			period.ID, period.Status, periodsdom.StatusQuantify)
	}

	rating, ok, err := s.Repo.Rating(ctx, in.RaterID, in.ItemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.Conflictf("rater %s is not assigned to praise item %s", in.RaterID, in.ItemID)
	}

	// the lock set covers the item, its dependents and the duplicate target,
	// so concurrent quantifications touching the same duplicate graph
	// serialize. Dependents are re-read under the locks; a set that changed
	// in the window before acquisition means the graph moved, so relock
	dependents, unlock, err := s.lockAffected(ctx, in)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var (
		outcome praisedom.Outcome
		out     []praisedom.Item
		events  []scoredom.ScoreEvent
	)
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		// graph validations run on the locked, transaction-bound state so a
		// concurrent commit cannot slip a duplicate chain past them
		o, err := s.resolveIntent(ctx, r, in, period, dependents)
		if err != nil {
			return err
		}
		outcome = o
		affected := append([]string{in.ItemID}, dependents...)

		if err := r.ApplyOutcome(ctx, rating.ID, outcome); err != nil {
			return err
		}
		for _, id := range affected {
			_, evs, err := s.aggregate(ctx, r, id, true)
			if err != nil {
				return err
			}
			events = append(events, evs...)
		}

		items, err := r.Items(ctx, affected)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, in, outcome)
	if s.history != nil {
		_ = s.history.WriteBatch(ctx, events)
	}
	return out, nil
}

// QuantifyMany applies the same evaluation to several items in order.
// The first failing item aborts the batch; items already processed stay
// committed
func (s *Svc) QuantifyMany(ctx context.Context, in domain.BatchInput) ([]praisedom.Item, error) {
	if len(in.ItemIDs) == 0 {
		return nil, perr.InvalidArgf("at least one item id required")
	}

	var out []praisedom.Item
	for _, id := range in.ItemIDs {
		items, err := s.Quantify(ctx, domain.Input{
			RaterID:     in.RaterID,
			ItemID:      id,
			Score:       in.Score,
			Dismissed:   in.Dismissed,
			DuplicateOf: in.DuplicateOf,
		})
		if err != nil {
			return nil, perr.Wrapf(err, perr.CodeOf(err), "quantify item %s", id)
		}
		out = append(out, items...)
	}
	return out, nil
}

// CompositeScore recomputes one item's composite score outside the workflow,
// for item creation and external recompute triggers
func (s *Svc) CompositeScore(ctx context.Context, itemID string, persist bool) (float64, error) {
	if itemID == "" {
		return 0, perr.InvalidArgf("item id required")
	}
	if _, err := s.Repo.Item(ctx, itemID); err != nil {
		return 0, err
	}

	if !persist {
		score, _, err := s.aggregate(ctx, s.Repo, itemID, false)
		return score, err
	}

	unlock := s.locks.LockAll([]string{itemID})
	defer unlock()

	var (
		score  float64
		events []scoredom.ScoreEvent
	)
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		score, events, err = s.aggregate(ctx, r, itemID, true)
		return err
	})
	if err != nil {
		return 0, err
	}
	if s.history != nil {
		_ = s.history.WriteBatch(ctx, events)
	}
	return score, nil
}

// lockAffected locks the item, its dependent duplicates and the duplicate
// target, then confirms the dependent set did not move while waiting for the
// locks. Returns the dependents read under the locks
func (s *Svc) lockAffected(ctx context.Context, in domain.Input) ([]string, func(), error) {
	for {
		deps, err := s.Repo.DependentItems(ctx, in.RaterID, in.ItemID)
		if err != nil {
			return nil, nil, err
		}
		keys := append([]string{in.ItemID}, deps...)
		if in.DuplicateOf != "" {
			keys = append(keys, in.DuplicateOf)
		}
		unlock := s.locks.LockAll(keys)

		fresh, err := s.Repo.DependentItems(ctx, in.RaterID, in.ItemID)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if sameIDSet(deps, fresh) {
			return fresh, unlock, nil
		}
		unlock()
	}
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

// resolveIntent validates the request against the current graph and collapses
// it to a single outcome. Precedence: duplicate, then dismissal, then score.
// Callers pass the transaction-bound repo so the graph reads see locked state
func (s *Svc) resolveIntent(
	ctx context.Context, r repo.Repo, in domain.Input, period periodsdom.Period, dependents []string,
) (praisedom.Outcome, error) {
	switch {
	case in.DuplicateOf != "":
		if in.DuplicateOf == in.ItemID {
			return praisedom.Outcome{}, perr.Conflictf("praise item %s cannot be a duplicate of itself", in.ItemID)
		}
		if len(dependents) > 0 {
			return praisedom.Outcome{}, perr.Conflictf(
				"praise item %s is the original of other duplicates and cannot become a duplicate itself", in.ItemID,
			)
		}
		if _, err := r.Item(ctx, in.DuplicateOf); err != nil {
			return praisedom.Outcome{}, err
		}
		target, ok, err := r.Rating(ctx, in.RaterID, in.DuplicateOf)
		if err != nil {
			return praisedom.Outcome{}, err
		}
		if ok && target.DuplicateOf != nil {
			return praisedom.Outcome{}, perr.Conflictf(
				"praise item %s is already a duplicate for rater %s, chains of duplicates are not allowed",
				in.DuplicateOf, in.RaterID,
			)
		}
		return praisedom.DuplicateOf(in.DuplicateOf), nil

	case in.Dismissed:
		return praisedom.Dismissed(), nil

	default:
		if in.Score == nil {
			return praisedom.Outcome{}, perr.Validationf("score is required when not dismissing or marking a duplicate")
		}
		allowed, ok, err := s.settings.IntList(ctx, period.ID, settingsdom.KeyAllowedScoreValues)
		if err != nil {
			return praisedom.Outcome{}, err
		}
		if !ok {
			return praisedom.Outcome{}, perr.Configf(
				"%s is not configured for period %s", settingsdom.KeyAllowedScoreValues, period.ID,
			)
		}
		for _, v := range allowed {
			if *in.Score == float64(v) {
				return praisedom.Scored(*in.Score), nil
			}
		}
		return praisedom.Outcome{}, perr.Validationf(
			"score %v is not allowed, must be one of %v", *in.Score, allowed,
		)
	}
}

// emitAudit appends a trail event; failures are logged, never surfaced
func (s *Svc) emitAudit(ctx context.Context, in domain.Input, o praisedom.Outcome) {
	if s.audit == nil {
		return
	}

	var kind, msg string
	switch o.Kind() {
	case praisedom.OutcomeDuplicate:
		original, _ := o.Duplicate()
		kind = auditdom.KindQuantifyDuplicate
		msg = fmt.Sprintf("rater %s marked praise %s as a duplicate of %s", in.RaterID, in.ItemID, original)
	case praisedom.OutcomeDismissed:
		kind = auditdom.KindQuantifyDismissed
		msg = fmt.Sprintf("rater %s dismissed praise %s", in.RaterID, in.ItemID)
	default:
		kind = auditdom.KindQuantifyScored
		msg = fmt.Sprintf("rater %s scored praise %s with %v", in.RaterID, in.ItemID, o.Score())
	}

	ev := auditdom.Event{
		Kind:      kind,
		ActorID:   in.RaterID,
		SubjectID: in.ItemID,
		Message:   msg,
	}
	if err := s.audit.Record(ctx, ev); err != nil {
		logger.C(ctx).Warn().Err(err).Str("item", in.ItemID).Msg("audit append failed")
	}
}
