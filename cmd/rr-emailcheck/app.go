package main

import (
	"fmt"
	"os"

	"github.com/haukened/rr-email/internal/email/common/clock"
	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/config"
	"github.com/haukened/rr-email/internal/email/repos/tld"
	"github.com/haukened/rr-email/internal/email/repos/tld/bloom"
	"github.com/haukened/rr-email/internal/email/repos/tld/bolt"
	"github.com/haukened/rr-email/internal/email/repos/tld/lru"
	"github.com/haukened/rr-email/internal/email/repos/tld/parsers"
	"github.com/haukened/rr-email/internal/email/repos/tld/publicsuffix"
	"github.com/haukened/rr-email/internal/email/services/syntax"
)

// Seams replaced in tests.
var (
	loadConfig             = config.Load
	openStore              = bolt.New
	clk        clock.Clock = clock.RealClock{}
)

// bootstrap loads configuration and configures the global logger.
func bootstrap() (*config.AppConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := log.Configure(cfg.Env, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("logging configuration error: %w", err)
	}
	return cfg, nil
}

// tldRepo bundles a repository with the store it must close.
type tldRepo struct {
	tld.Repository
	store tld.Store
}

func (r *tldRepo) Close() error { return r.store.Close() }

// openRepository wires bolt → lru → bloom into a tld.Repository.
func openRepository(cfg *config.AppConfig, logger log.Logger) (*tldRepo, error) {
	store, err := openStore(cfg.TLD.DB)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New(cfg.TLD.CacheSize)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create tld cache: %w", err)
	}
	repo := tld.NewRepository(store, cache, bloom.NewFactory(), cfg.TLD.FPRate, logger)
	return &tldRepo{Repository: repo, store: store}, nil
}

// importFile parses path and replaces the repository contents with it.
// Lists without a version header are versioned by import time.
func importFile(repo tld.Repository, path, format string, logger log.Logger) (parsers.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return parsers.List{}, fmt.Errorf("open tld list: %w", err)
	}
	defer f.Close()

	now := clk.Now()
	list, err := parsers.Parse(format, f, path, logger, now)
	if err != nil {
		return parsers.List{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(list.Entries) == 0 {
		return list, fmt.Errorf("no top-level domains found in %s", path)
	}
	if list.Version == 0 {
		list.Version = uint64(now.Unix())
	}
	if err := repo.UpdateAll(list.Entries, list.Version, now.Unix()); err != nil {
		return list, err
	}
	return list, nil
}

// buildTLDs returns the table selected by tld.source plus a close func that
// is always safe to call.
func buildTLDs(cfg *config.AppConfig, logger log.Logger) (syntax.KnownTLDs, func() error, error) {
	noop := func() error { return nil }

	var base tld.Table
	closeFn := noop
	switch cfg.TLD.Source {
	case "none":
		base = tld.AllowAll{}
	case "file":
		repo, err := openRepository(cfg, logger)
		if err != nil {
			return nil, noop, err
		}
		if cfg.TLD.File != "" {
			_, err = importFile(repo, cfg.TLD.File, cfg.TLD.Format, logger)
		} else {
			err = repo.Warm()
		}
		if err != nil {
			_ = repo.Close()
			return nil, noop, err
		}
		if repo.Stats().Store.Labels == 0 {
			logger.Warn(map[string]any{"db": cfg.TLD.DB}, "tld_store_empty")
		}
		base, closeFn = repo, repo.Close
	default:
		base = publicsuffix.New()
	}

	if len(cfg.TLD.Extra) > 0 {
		base = tld.Union(base, tld.NewStatic(cfg.TLD.Extra...))
	}
	return base, closeFn, nil
}
