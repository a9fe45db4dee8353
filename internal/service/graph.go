// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/persistorai/graphkernel/internal/domain"
	"github.com/persistorai/graphkernel/internal/httputil"
	"github.com/persistorai/graphkernel/internal/metrics"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

var tracer = otel.Tracer("graphkernel.service")

// Search kinds used as metric labels.
const (
	kindAll    = "all"
	kindSingle = "single"
	kindStream = "stream"
)

// errStop ends a search early without reporting an error.
var errStop = errors.New("stop search")

// GraphStore is the data-access interface GraphService depends on.
type GraphStore interface {
	Neighbors(ctx context.Context, nodeID string, dir pathfind.Direction, types []string, limit int) (*models.NeighborResult, error)
	OpenReader(ctx context.Context) (domain.GraphReader, error)
}

// Compile-time check: *GraphService must satisfy domain.GraphService.
var _ domain.GraphService = (*GraphService)(nil)

// Limits caps the work a single path search may do.
type Limits struct {
	MaxDepth   int
	MaxResults int
	Timeout    time.Duration
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{MaxDepth: 12, MaxResults: 1000, Timeout: 30 * time.Second}
}

// GraphService runs neighbor queries and exact-depth path searches.
type GraphService struct {
	store  GraphStore
	limits Limits
	log    *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(store GraphStore, limits Limits, log *logrus.Logger) *GraphService {
	return &GraphService{store: store, limits: limits, log: log}
}

// Neighbors returns the edges around nodeID and the nodes at their far ends.
func (s *GraphService) Neighbors(
	ctx context.Context, nodeID, direction string, types []string, limit int,
) (*models.NeighborResult, error) {
	dir, err := pathfind.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"node_id":    nodeID,
		"direction":  dir.String(),
		"types":      types,
		"limit":      limit,
		"request_id": httputil.RequestIDFrom(ctx),
	}).Debug("graph.neighbors")

	return s.store.Neighbors(ctx, nodeID, dir, types, limit)
}

// FindPaths returns up to q.Limit paths of exactly q.Depth edges.
func (s *GraphService) FindPaths(ctx context.Context, q models.PathQuery) (*models.PathResult, error) {
	limit, err := s.prepareQuery(&q)
	if err != nil {
		return nil, err
	}

	result := &models.PathResult{Paths: []models.Path{}}

	stats, err := s.search(ctx, kindAll, q, func(p models.Path) error {
		if len(result.Paths) == limit {
			result.Truncated = true

			return errStop
		}

		result.Paths = append(result.Paths, p)

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Count = len(result.Paths)
	result.Stats = *stats

	return result, nil
}

// FindSinglePath returns one path of exactly q.Depth edges, or
// models.ErrNoPath when there is none.
func (s *GraphService) FindSinglePath(ctx context.Context, q models.PathQuery) (*models.Path, error) {
	if _, err := s.prepareQuery(&q); err != nil {
		return nil, err
	}

	var found *models.Path

	err := s.run(ctx, kindSingle, q, func(ctx context.Context, finder *pathfind.ExactDepthFinder) (int, error) {
		p, err := finder.FindSinglePath(ctx, q.From, q.To)
		if err != nil || p == nil {
			return 0, err
		}

		mp := toModelPath(p)
		found = &mp

		return 1, nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, models.ErrNoPath
	}

	return found, nil
}

// StreamPaths hands each path to fn as it is found. The search stops at
// q.Limit paths, when fn returns an error, or when ctx is done.
func (s *GraphService) StreamPaths(
	ctx context.Context, q models.PathQuery, fn func(models.Path) error,
) (*models.PathStats, error) {
	limit, err := s.prepareQuery(&q)
	if err != nil {
		return nil, err
	}

	sent := 0

	return s.search(ctx, kindStream, q, func(p models.Path) error {
		if sent == limit {
			return errStop
		}

		sent++

		return fn(p)
	})
}

// prepareQuery validates q against the configured limits and returns the
// effective result limit.
func (s *GraphService) prepareQuery(q *models.PathQuery) (int, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	if s.limits.MaxDepth > 0 && q.Depth > s.limits.MaxDepth {
		return 0, fmt.Errorf("%w: %d > %d", models.ErrDepthTooDeep, q.Depth, s.limits.MaxDepth)
	}

	if _, err := pathfind.ParseDirection(q.Direction); err != nil {
		return 0, err
	}

	limit := q.Limit
	if limit == 0 || (s.limits.MaxResults > 0 && limit > s.limits.MaxResults) {
		limit = s.limits.MaxResults
	}

	if limit <= 0 {
		limit = math.MaxInt
	}

	return limit, nil
}

// search streams every path of a query through visit. visit may return
// errStop to end the search quietly.
func (s *GraphService) search(
	ctx context.Context, kind string, q models.PathQuery, visit func(models.Path) error,
) (*models.PathStats, error) {
	var stats pathfind.Stats

	start := time.Now()

	err := s.run(ctx, kind, q, func(ctx context.Context, finder *pathfind.ExactDepthFinder) (int, error) {
		paths := finder.FindAllPaths(ctx, q.From, q.To)
		defer paths.Close() //nolint:errcheck // Close only reports iterator release errors already surfaced by Err.

		var visitErr error

		n := 0
		for paths.Next() {
			if visitErr = visit(toModelPath(paths.Path())); visitErr != nil {
				break
			}

			n++
		}

		stats = paths.Stats()
		metrics.PartialPathsExpanded.WithLabelValues("start").Add(float64(stats.StartPartials))
		metrics.PartialPathsExpanded.WithLabelValues("end").Add(float64(stats.EndPartials))

		if visitErr != nil && !errors.Is(visitErr, errStop) {
			return n, visitErr
		}

		return n, paths.Err()
	})
	if err != nil {
		return nil, err
	}

	return &models.PathStats{
		StartPartials: stats.StartPartials,
		EndPartials:   stats.EndPartials,
		EdgesScanned:  stats.EdgesScanned,
		Pruned:        stats.Pruned,
		DurationMS:    time.Since(start).Milliseconds(),
	}, nil
}

// run opens a reader, checks both endpoints, builds a finder for q and
// passes it to body, recording the span, logs and metrics of the search.
func (s *GraphService) run(
	ctx context.Context,
	kind string,
	q models.PathQuery,
	body func(ctx context.Context, finder *pathfind.ExactDepthFinder) (int, error),
) (err error) {
	if s.limits.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.limits.Timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "graph.find_paths", trace.WithAttributes(
		attribute.String("search.kind", kind),
		attribute.Int("search.depth", q.Depth),
		attribute.Bool("search.allow_loops", q.AllowLoops),
		attribute.String("search.direction", q.Direction),
	))
	defer span.End()

	log := s.log.WithFields(logrus.Fields{
		"from_id":     q.From,
		"to_id":       q.To,
		"depth":       q.Depth,
		"allow_loops": q.AllowLoops,
		"kind":        kind,
		"request_id":  httputil.RequestIDFrom(ctx),
	})
	log.Debug("graph.find_paths")

	start := time.Now()
	found := 0

	defer func() {
		metrics.PathSearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		metrics.PathSearches.WithLabelValues(kind, searchOutcome(found, err)).Inc()

		span.SetAttributes(attribute.Int("search.results", found))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.WithError(err).Debug("graph.find_paths failed")

			return
		}

		metrics.PathsReturned.Observe(float64(found))
		span.SetStatus(codes.Ok, "")
		log.WithField("results", found).Debug("graph.find_paths done")
	}()

	reader, err := s.store.OpenReader(ctx)
	if err != nil {
		return fmt.Errorf("opening graph reader: %w", err)
	}

	defer func() {
		// The search context may already be done; the reader must still be released.
		if cerr := reader.Close(context.WithoutCancel(ctx)); cerr != nil {
			log.WithError(cerr).Warn("closing graph reader")
		}
	}()

	if err := requireNodes(ctx, reader, q.From, q.To); err != nil {
		return err
	}

	finder, err := newFinder(reader, q)
	if err != nil {
		return err
	}

	found, err = body(ctx, finder)
	if err != nil {
		return fmt.Errorf("searching paths: %w", err)
	}

	return nil
}

func requireNodes(ctx context.Context, reader domain.GraphReader, ids ...string) error {
	for _, id := range ids {
		ok, err := reader.NodeExists(ctx, id)
		if err != nil {
			return fmt.Errorf("checking node %q: %w", id, err)
		}

		if !ok {
			return fmt.Errorf("node %q: %w", id, models.ErrNodeNotFound)
		}
	}

	return nil
}

// newFinder builds the traversal policy and finder for q. Direction has
// already been validated.
func newFinder(g pathfind.Graph, q models.PathQuery) (*pathfind.ExactDepthFinder, error) {
	dir, err := pathfind.ParseDirection(q.Direction)
	if err != nil {
		return nil, err
	}

	var exp *pathfind.StandardExpander

	if len(q.Types) == 0 {
		exp = pathfind.ForDirection(g, dir)
	} else {
		exp = pathfind.ForTypeAndDirection(g, q.Types[0], dir)
		for _, typ := range q.Types[1:] {
			exp = exp.Add(typ, dir)
		}
	}

	opts := []pathfind.Option{pathfind.WithLoops(q.AllowLoops)}
	if q.Bound != nil {
		opts = append(opts, pathfind.WithBound(*q.Bound))
	}

	return pathfind.NewExactDepthFinder(exp, q.Depth, opts...)
}

func searchOutcome(found int, err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case err != nil:
		return "error"
	case found == 0:
		return "empty"
	default:
		return "found"
	}
}

func toModelPath(p *pathfind.Path) models.Path {
	edges := p.Edges()
	out := models.Path{
		Length: p.Len(),
		Nodes:  p.Nodes(),
		Edges:  make([]models.PathEdge, len(edges)),
	}

	for i, e := range edges {
		out.Edges[i] = models.PathEdge{ID: e.ID, Type: e.Type, Source: e.From, Target: e.To}
	}

	return out
}
