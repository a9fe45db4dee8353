package pathfind

import (
	"context"
	"errors"
	"math"
)

// Unbounded disables the exploration bound.
const Unbounded = math.MaxInt

// Construction errors.
var (
	ErrNegativeDepth = errors.New("depth must not be negative")
	ErrNilExpander   = errors.New("expander is required")
)

// ExactDepthFinder finds paths of exactly one length between two nodes. It
// holds only configuration; every call builds its own frontiers, so one
// finder may serve concurrent searches as long as its Graph allows
// concurrent readers.
type ExactDepthFinder struct {
	expander   Expander
	depth      int
	bound      int
	allowLoops bool
}

// Option configures an ExactDepthFinder.
type Option func(*ExactDepthFinder)

// WithBound caps how many edges either side of the search may explore. A
// bound below ceil(depth/2) makes every search return no paths rather than
// fail; callers that reuse one bound across several depths rely on that.
// Negative values are treated as zero.
func WithBound(bound int) Option {
	return func(f *ExactDepthFinder) {
		f.bound = max(bound, 0)
	}
}

// WithLoops controls whether a path may visit the same node twice.
func WithLoops(allow bool) Option {
	return func(f *ExactDepthFinder) {
		f.allowLoops = allow
	}
}

// NewExactDepthFinder returns a finder for paths of exactly depth edges
// that follow expander. Loops are disallowed and exploration is unbounded
// unless changed by opts.
func NewExactDepthFinder(expander Expander, depth int, opts ...Option) (*ExactDepthFinder, error) {
	if expander == nil {
		return nil, ErrNilExpander
	}

	if depth < 0 {
		return nil, ErrNegativeDepth
	}

	f := &ExactDepthFinder{expander: expander, depth: depth, bound: Unbounded}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Depth returns the exact path length the finder searches for.
func (f *ExactDepthFinder) Depth() int { return f.depth }

// Bound returns the exploration bound, or Unbounded.
func (f *ExactDepthFinder) Bound() int { return f.bound }

// AllowLoops reports whether returned paths may revisit nodes.
func (f *ExactDepthFinder) AllowLoops() bool { return f.allowLoops }

// FindAllPaths returns a lazy sequence of every path of exactly Depth edges
// from source to target. No graph access happens before the first Next.
// The caller must Close the sequence.
func (f *ExactDepthFinder) FindAllPaths(ctx context.Context, source, target string) *Paths {
	return newPaths(ctx, f, source, target)
}

// FindSinglePath returns the first path FindAllPaths would produce, or nil
// when there is none. Which of several equally long paths is returned is
// unspecified.
func (f *ExactDepthFinder) FindSinglePath(ctx context.Context, source, target string) (*Path, error) {
	paths := f.FindAllPaths(ctx, source, target)
	defer paths.Close()

	if paths.Next() {
		return paths.Path(), nil
	}

	return nil, paths.Err()
}

// startDepth is the number of edges the start side walks.
func (f *ExactDepthFinder) startDepth() int { return (f.depth + 1) / 2 }

// endDepth is the number of edges the end side walks.
func (f *ExactDepthFinder) endDepth() int { return f.depth / 2 }
