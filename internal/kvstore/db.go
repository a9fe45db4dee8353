// Package kvstore is the embedded storage backend, built on BadgerDB. It
// offers the same operations as the PostgreSQL store so the server can run
// without an external database.
//
// Nodes and edges are JSON values under their own keys. Adjacency lives in
// two key-only indexes, one per direction, laid out so that every edge of a
// node, or every edge of one type, is a single prefix scan:
//
//	n\x00<node>                         -> Node
//	e\x00<edge>                         -> Edge
//	o\x00<source>\x00<type>\x00<edge>   -> target
//	i\x00<target>\x00<type>\x00<edge>   -> source
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// Config configures the embedded store.
type Config struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM; data is lost on Close.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// GCInterval is how often value-log GC runs. Zero disables it.
	GCInterval time.Duration

	// GCDiscardRatio is passed to RunValueLogGC.
	GCDiscardRatio float64
}

// DefaultConfig returns settings for a persistent store at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns settings for a throwaway store.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger routes badger's internal logging to logrus.
type badgerLogger struct {
	entry *logrus.Entry
}

func (l *badgerLogger) Errorf(format string, args ...any)   { l.entry.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...any) { l.entry.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...any)    { l.entry.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...any)   { l.entry.Tracef(format, args...) }

// Store is the badger-backed graph store. It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	log *logrus.Logger

	stop chan struct{}
	done chan struct{}
}

// Open opens or creates a store.
func Open(cfg Config, log *logrus.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger path is required for a persistent store")
	}

	var opts badger.Options

	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("creating badger directory %s: %w", cfg.Path, err)
		}

		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{entry: log.WithField("component", "badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}

	s := &Store{db: db, log: log}

	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.stop = make(chan struct{})
		s.done = make(chan struct{})

		go s.runGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return s, nil
}

func (s *Store) runGC(interval time.Duration, ratio float64) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			err := s.db.RunValueLogGC(ratio)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.log.WithError(err).Warn("badger value log GC failed")
			}
		}
	}
}

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger store is closed")
	}

	return nil
}

// Close stops background GC and closes the database.
func (s *Store) Close() error {
	if s.stop != nil {
		close(s.stop)
		<-s.done
		s.stop = nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing badger: %w", err)
	}

	return nil
}

// update runs fn in a read-write transaction unless ctx is already done.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(fn)
}

// view runs fn in a read-only transaction unless ctx is already done.
func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(fn)
}
