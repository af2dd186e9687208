// Package modkit provides module wiring and core deps
package modkit

import (
	"laurel/internal/modkit/repokit"
	"laurel/internal/platform/config"
	"laurel/internal/platform/logger"
	"laurel/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
