package kvstore

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/pathfind"
)

// adjacencyIterator walks a list of index prefixes with one badger iterator
// at a time. It implements pathfind.EdgeIterator.
type adjacencyIterator struct {
	txn      *badger.Txn
	prefixes [][]byte
	skipSelf bool

	it  *badger.Iterator
	cur []byte
	adj adjacency
	err error

	onClose func(*adjacencyIterator)
}

func newAdjacencyIterator(txn *badger.Txn, node string, dir pathfind.Direction, types []string) *adjacencyIterator {
	return &adjacencyIterator{
		txn:      txn,
		prefixes: adjacencyPrefixes(node, dir, types),
		// With both directions scanned, a self-loop shows up in both
		// indexes; keep the outgoing entry only.
		skipSelf: dir == pathfind.Both,
	}
}

func (a *adjacencyIterator) Next() bool {
	for a.err == nil {
		if a.it == nil {
			if len(a.prefixes) == 0 {
				return false
			}

			a.cur, a.prefixes = a.prefixes[0], a.prefixes[1:]

			opts := badger.DefaultIteratorOptions
			opts.Prefix = a.cur
			a.it = a.txn.NewIterator(opts)
			a.it.Seek(a.cur)
		} else {
			a.it.Next()
		}

		if !a.it.ValidForPrefix(a.cur) {
			a.it.Close()
			a.it = nil

			continue
		}

		item := a.it.Item()

		val, err := item.ValueCopy(nil)
		if err != nil {
			a.err = fmt.Errorf("reading adjacency value: %w", err)

			return false
		}

		adj, err := decodeAdjacency(item.Key(), val)
		if err != nil {
			a.err = err

			return false
		}

		if a.skipSelf && !adj.out && adj.other == adj.node {
			continue
		}

		a.adj = adj

		return true
	}

	return false
}

func (a *adjacencyIterator) Edge() pathfind.Edge { return a.adj.toEdge() }

func (a *adjacencyIterator) Err() error { return a.err }

func (a *adjacencyIterator) Close() error {
	if a.it != nil {
		a.it.Close()
		a.it = nil
	}

	a.prefixes = nil

	if a.onClose != nil {
		a.onClose(a)
		a.onClose = nil
	}

	return nil
}

// collectAdjacency drains an adjacency scan.
func collectAdjacency(txn *badger.Txn, node string, dir pathfind.Direction, types []string) ([]adjacency, error) {
	it := newAdjacencyIterator(txn, node, dir, types)
	defer it.Close() //nolint:errcheck // Close never fails.

	var out []adjacency
	for it.Next() {
		out = append(out, it.adj)
	}

	return out, it.Err()
}
