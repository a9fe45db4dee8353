package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/config"
	"github.com/persistorai/graphkernel/internal/db"
	"github.com/persistorai/graphkernel/internal/db/migrations"
	"github.com/persistorai/graphkernel/internal/dbpool"
	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/kvstore"
	"github.com/persistorai/graphkernel/internal/service"
	"github.com/persistorai/graphkernel/internal/store"
)

// backend is the set of stores the services run on.
type backend struct {
	nodes  service.NodeStore
	edges  service.EdgeStore
	bulk   service.BulkStore
	stats  service.StatsStore
	graph  service.GraphStore
	pinger domain.Pinger
	close  func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*backend, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, log)
	case config.BackendBadger:
		return openBadger(cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*backend, error) {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), dbpool.Options{
		MaxConns:         int32(cfg.DBMaxConns), //nolint:gosec // bounded by config validation.
		StatementTimeout: cfg.PathSearchTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		pool.Close()

		return nil, fmt.Errorf("running migrations: %w", err)
	}

	base := store.Base{Pool: pool, Log: log}

	return &backend{
		nodes:  store.NewNodeStore(base),
		edges:  store.NewEdgeStore(base),
		bulk:   store.NewBulkStore(base),
		stats:  store.NewStatsStore(base),
		graph:  store.NewGraphStore(base),
		pinger: pool,
		close:  pool.Close,
	}, nil
}

func openBadger(cfg *config.Config, log *logrus.Logger) (*backend, error) {
	kvCfg := kvstore.DefaultConfig(cfg.BadgerPath)
	if cfg.BadgerInMemory {
		kvCfg = kvstore.InMemoryConfig()
	}

	s, err := kvstore.Open(kvCfg, log)
	if err != nil {
		return nil, fmt.Errorf("opening badger store: %w", err)
	}

	return &backend{
		nodes:  s,
		edges:  s,
		bulk:   s,
		stats:  s,
		graph:  s,
		pinger: s,
		close: func() {
			if err := s.Close(); err != nil {
				log.WithError(err).Error("closing badger store")
			}
		},
	}, nil
}
