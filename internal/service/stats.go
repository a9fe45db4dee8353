package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/metrics"
	"github.com/persistorai/graphkernel/internal/models"
)

// StatsStore is the data-access interface StatsService depends on.
type StatsStore = domain.StatsService

// Compile-time check: *StatsService must satisfy domain.StatsService.
var _ domain.StatsService = (*StatsService)(nil)

// StatsService serves graph counts. Concurrent callers share one count and
// the result is reused for ttl unless a write invalidates it.
type StatsService struct {
	store StatsStore
	ttl   time.Duration
	log   *logrus.Logger

	group singleflight.Group

	mu      sync.Mutex
	cached  *models.GraphStats
	expires time.Time
}

// NewStatsService creates a StatsService.
func NewStatsService(store StatsStore, ttl time.Duration, log *logrus.Logger) *StatsService {
	return &StatsService{store: store, ttl: ttl, log: log}
}

// Stats returns node and edge counts and updates the count gauges.
func (s *StatsService) Stats(ctx context.Context) (*models.GraphStats, error) {
	s.mu.Lock()
	if s.cached != nil && time.Now().Before(s.expires) {
		st := *s.cached
		s.mu.Unlock()

		return &st, nil
	}
	s.mu.Unlock()

	v, err, shared := s.group.Do("stats", func() (any, error) {
		st, err := s.store.Stats(ctx)
		if err != nil {
			return nil, err
		}

		metrics.NodeCount.Set(float64(st.Nodes))
		metrics.EdgeCount.Set(float64(st.Edges))

		s.mu.Lock()
		s.cached = st
		s.expires = time.Now().Add(s.ttl)
		s.mu.Unlock()

		return st, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("shared", shared).Debug("graph.stats")

	st := *v.(*models.GraphStats)

	return &st, nil
}

// invalidate drops the cached counts. It is a no-op on a nil receiver.
func (s *StatsService) invalidate() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
