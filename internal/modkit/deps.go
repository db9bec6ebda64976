// Package modkit provides module wiring and core deps
package modkit

import (
	"paylens/internal/modkit/repokit"
	"paylens/internal/platform/cache"
	"paylens/internal/platform/config"
	"paylens/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	Cache cache.Cache
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
