// Package service provides typed access to period-scoped settings
package service

import (
	"context"
	"strconv"
	"strings"

	"laurel/internal/modkit/repokit"
	perr "laurel/internal/platform/errors"
	"laurel/internal/services/settings/domain"
	"laurel/internal/services/settings/repo"
)

// Service is the public reader port
type Service interface{ domain.ReaderPort }

// Svc implements the reader port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("settings.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("settings.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

func (s *Svc) raw(ctx context.Context, periodID, key string, want domain.Kind) (domain.Setting, bool, error) {
	if periodID == "" || key == "" {
		return domain.Setting{}, false, perr.InvalidArgf("period id and setting key required")
	}
	row, ok, err := s.Repo.Raw(ctx, periodID, key)
	if err != nil || !ok {
		return domain.Setting{}, false, err
	}
	if row.Kind != want {
		return domain.Setting{}, false, perr.Configf(
			"setting %s for period %s is declared %s, requested as %s", key, periodID, row.Kind, want,
		)
	}
	return row, true, nil
}

// Float returns a NUMBER setting
func (s *Svc) Float(ctx context.Context, periodID, key string) (float64, bool, error) {
	row, ok, err := s.raw(ctx, periodID, key, domain.KindNumber)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row.Value), 64)
	if err != nil {
		return 0, false, perr.Configf("setting %s for period %s holds invalid number %q", key, periodID, row.Value)
	}
	return v, true, nil
}

// IntList returns an INT_LIST setting parsed from a comma separated value
func (s *Svc) IntList(ctx context.Context, periodID, key string) ([]int, bool, error) {
	row, ok, err := s.raw(ctx, periodID, key, domain.KindIntList)
	if err != nil || !ok {
		return nil, false, err
	}
	parts := strings.Split(row.Value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false, perr.Configf("setting %s for period %s holds invalid int list %q", key, periodID, row.Value)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, false, perr.Configf("setting %s for period %s holds an empty int list", key, periodID)
	}
	return out, true, nil
}

// Bool returns a BOOLEAN setting
func (s *Svc) Bool(ctx context.Context, periodID, key string) (bool, bool, error) {
	row, ok, err := s.raw(ctx, periodID, key, domain.KindBoolean)
	if err != nil || !ok {
		return false, false, err
	}
	v, err := strconv.ParseBool(strings.TrimSpace(row.Value))
	if err != nil {
		return false, false, perr.Configf("setting %s for period %s holds invalid boolean %q", key, periodID, row.Value)
	}
	return v, true, nil
}

// String returns a STRING setting
func (s *Svc) String(ctx context.Context, periodID, key string) (string, bool, error) {
	row, ok, err := s.raw(ctx, periodID, key, domain.KindString)
	if err != nil || !ok {
		return "", false, err
	}
	return row.Value, true, nil
}
