package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/pathfind"
)

// errCursorOpen is returned when a second edge cursor is requested while
// one is still open. A transaction's connection serves one result set at a
// time.
var errCursorOpen = errors.New("graph reader: previous relationship cursor still open")

// graphReader runs every query of one search inside a single read-only
// transaction.
type graphReader struct {
	tx     pgx.Tx
	log    *logrus.Logger
	open   *rowsIterator
	closed bool
}

// Relationships implements pathfind.Graph.
func (r *graphReader) Relationships(
	ctx context.Context,
	node string,
	dir pathfind.Direction,
	types []string,
) (pathfind.EdgeIterator, error) {
	if r.open != nil {
		return nil, errCursorOpen
	}

	rows, err := r.tx.Query(ctx, relationshipsSQL(traversalColumns, dir, len(types) > 0, 0), relationshipsArgs(node, types)...)
	if err != nil {
		return nil, fmt.Errorf("querying relationships of %q: %w", node, err)
	}

	it := &rowsIterator{rows: rows, reader: r}
	r.open = it

	return it, nil
}

// NodeExists reports whether nodeID is in the snapshot.
func (r *graphReader) NodeExists(ctx context.Context, nodeID string) (bool, error) {
	if r.open != nil {
		return false, errCursorOpen
	}

	return nodeExists(ctx, r.tx, nodeID)
}

// Close ends the snapshot. It is safe to call more than once.
func (r *graphReader) Close(ctx context.Context) error {
	if r.closed {
		return nil
	}

	r.closed = true

	if r.open != nil {
		r.log.Debug("graph reader closed with a relationship cursor open")
		r.open.Close() //nolint:errcheck // the transaction is discarded anyway.
	}

	if err := r.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("closing graph reader: %w", err)
	}

	return nil
}

// rowsIterator adapts pgx.Rows to pathfind.EdgeIterator.
type rowsIterator struct {
	rows   pgx.Rows
	reader *graphReader
	edge   pathfind.Edge
	err    error
}

func (it *rowsIterator) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}

	if err := it.rows.Scan(&it.edge.ID, &it.edge.Type, &it.edge.From, &it.edge.To); err != nil {
		it.err = fmt.Errorf("scanning relationship row: %w", err)

		return false
	}

	return true
}

func (it *rowsIterator) Edge() pathfind.Edge { return it.edge }

func (it *rowsIterator) Err() error {
	if it.err != nil {
		return it.err
	}

	if err := it.rows.Err(); err != nil {
		return fmt.Errorf("iterating relationship rows: %w", err)
	}

	return nil
}

func (it *rowsIterator) Close() error {
	it.rows.Close()

	if it.reader != nil && it.reader.open == it {
		it.reader.open = nil
	}

	return nil
}
