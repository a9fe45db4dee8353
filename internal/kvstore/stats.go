package kvstore

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/models"
)

// Stats counts nodes and edges with key-only scans.
func (s *Store) Stats(ctx context.Context) (*models.GraphStats, error) {
	var st models.GraphStats

	err := s.view(ctx, func(txn *badger.Txn) error {
		st.Nodes = countPrefix(txn, prefix(tagNode))
		st.Edges = countPrefix(txn, prefix(tagEdge))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("counting graph: %w", err)
	}

	return &st, nil
}

func countPrefix(txn *badger.Txn, p []byte) int64 {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = p
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var n int64
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		n++
	}

	return n
}
