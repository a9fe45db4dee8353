package pathfind

import (
	"context"
	"errors"
)

// Stats describes the work one search performed.
type Stats struct {
	StartPartials int `json:"start_partials"`
	EndPartials   int `json:"end_partials"`
	EdgesScanned  int `json:"edges_scanned"`
	Pruned        int `json:"pruned"`
	Results       int `json:"results"`
}

// Paths is the cursor returned by FindAllPaths. It is not safe for
// concurrent use.
//
// The end side is materialised to its full depth and the start side to one
// edge short of its depth. The start side's last step is then streamed: each
// candidate edge either reaches a node of the end frontier, in which case
// the matching end-side paths are joined onto it, or is dropped. When the
// depth is even the streamed edge ends on the meeting node; when it is odd
// the streamed edge is the meeting edge between the two frontiers. Only the
// streamed step keeps a graph cursor open between calls to Next.
type Paths struct {
	ctx    context.Context
	finder *ExactDepthFinder
	source string
	target string

	started bool
	done    bool
	err     error
	stats   Stats

	pending *Path // a result waiting to be handed out (depth 0)

	starts []*Path   // start-side partials, one edge short
	ends   *frontier // end-side partials at full depth
	next   int       // index into starts
	cur    *Path     // start partial being streamed
	it     EdgeIterator

	meet    *Path   // start partial extended by the streamed edge
	matches []*Path // end partials ending where meet ends
	mi      int

	path *Path
}

func newPaths(ctx context.Context, f *ExactDepthFinder, source, target string) *Paths {
	return &Paths{ctx: ctx, finder: f, source: source, target: target}
}

// Next advances to the next path. It returns false when the sequence is
// exhausted, an error occurred, or Close was called.
func (p *Paths) Next() bool {
	if p.done {
		return false
	}

	if !p.started {
		p.started = true
		if err := p.prepare(); err != nil {
			p.fail(err)

			return false
		}
	}

	if p.pending != nil {
		p.path, p.pending = p.pending, nil
		p.stats.Results++

		return true
	}

	for {
		for p.mi < len(p.matches) {
			q := p.matches[p.mi]
			p.mi++

			full := join(p.meet, q)
			if !p.finder.allowLoops && full.hasRepeatedNode() {
				p.stats.Pruned++

				continue
			}

			p.path = full
			p.stats.Results++

			return true
		}

		ok, err := p.advance()
		if err != nil {
			p.fail(err)

			return false
		}

		if !ok {
			p.finish()

			return false
		}
	}
}

// Path returns the current path. It is valid after Next returned true.
func (p *Paths) Path() *Path { return p.path }

// Err returns the error that ended the sequence, if any.
func (p *Paths) Err() error { return p.err }

// Stats returns the work done so far.
func (p *Paths) Stats() Stats { return p.stats }

// Close releases the open graph cursor, if any, and drops the frontiers.
// It is safe to call more than once.
func (p *Paths) Close() error {
	err := p.closeCursor()
	p.done = true
	p.release()

	return err
}

// prepare builds both frontiers up to the point where streaming starts.
func (p *Paths) prepare() error {
	f := p.finder

	if f.depth == 0 {
		if p.source == p.target {
			p.pending = NewPath(p.source)
		}

		return nil
	}

	if f.bound < f.startDepth() {
		return nil
	}

	ends := newFrontier(endSide, p.target)
	reverse := f.expander.Reverse()

	for ends.depth < f.endDepth() {
		next, err := p.grow(reverse, ends, p.source)
		if err != nil {
			return err
		}

		ends = next
		if ends.size == 0 {
			return nil
		}
	}

	starts := newFrontier(startSide, p.source)

	for starts.depth < f.startDepth()-1 {
		next, err := p.grow(f.expander, starts, p.target)
		if err != nil {
			return err
		}

		starts = next
		if starts.size == 0 {
			return nil
		}
	}

	p.ends = ends
	p.starts = starts.flatten()

	return nil
}

// grow expands every partial path of cur by one edge. With loops
// disallowed, a partial may not revisit one of its own nodes, nor reach the
// opposite endpoint early, since that endpoint must close the path.
func (p *Paths) grow(exp Expander, cur *frontier, opposite string) (*frontier, error) {
	next := &frontier{side: cur.side, depth: cur.depth + 1, paths: make(map[string][]*Path, cur.size)}

	var err error

	cur.each(func(partial *Path) bool {
		if err = p.ctx.Err(); err != nil {
			return false
		}

		err = p.expandInto(exp, partial, opposite, next)

		return err == nil
	})

	if err != nil {
		return nil, err
	}

	return next, nil
}

func (p *Paths) expandInto(exp Expander, partial *Path, opposite string, next *frontier) (err error) {
	it, err := exp.Expand(p.ctx, partial)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, it.Close())
	}()

	for it.Next() {
		e := it.Edge()
		p.stats.EdgesScanned++

		node := e.Other(partial.End())
		if !p.finder.allowLoops && (node == opposite || partial.contains(node)) {
			p.stats.Pruned++

			continue
		}

		next.add(partial.Extend(e))

		if next.side == endSide {
			p.stats.EndPartials++
		} else {
			p.stats.StartPartials++
		}
	}

	return it.Err()
}

// advance pulls edges of the streamed start-side step until one reaches the
// end frontier. It returns false once every start partial is used up.
func (p *Paths) advance() (bool, error) {
	for {
		if err := p.ctx.Err(); err != nil {
			return false, err
		}

		if p.it == nil {
			if p.next >= len(p.starts) {
				return false, nil
			}

			p.cur = p.starts[p.next]
			p.next++

			it, err := p.finder.expander.Expand(p.ctx, p.cur)
			if err != nil {
				return false, err
			}

			p.it = it
		}

		if !p.it.Next() {
			iterErr := p.it.Err()
			closeErr := p.closeCursor()

			if err := errors.Join(iterErr, closeErr); err != nil {
				return false, err
			}

			continue
		}

		e := p.it.Edge()
		p.stats.EdgesScanned++

		node := e.Other(p.cur.End())
		if !p.finder.allowLoops && p.cur.contains(node) {
			p.stats.Pruned++

			continue
		}

		matches := p.ends.at(node)
		if len(matches) == 0 {
			continue
		}

		p.stats.StartPartials++
		p.meet = p.cur.Extend(e)
		p.matches = matches
		p.mi = 0

		return true, nil
	}
}

func (p *Paths) closeCursor() error {
	if p.it == nil {
		return nil
	}

	err := p.it.Close()
	p.it = nil

	return err
}

func (p *Paths) fail(err error) {
	p.err = errors.Join(err, p.closeCursor())
	p.done = true
	p.release()
}

func (p *Paths) finish() {
	if err := p.closeCursor(); err != nil && p.err == nil {
		p.err = err
	}

	p.done = true
	p.release()
}

func (p *Paths) release() {
	p.starts = nil
	p.ends = nil
	p.cur = nil
	p.meet = nil
	p.matches = nil
	p.pending = nil
}
