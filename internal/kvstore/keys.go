package kvstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/persistorai/graphkernel/internal/pathfind"
)

const sep = 0

// Key space tags.
const (
	tagNode = 'n'
	tagEdge = 'e'
	tagOut  = 'o'
	tagIn   = 'i'
)

func key(tag byte, parts ...string) []byte {
	n := 1
	for _, p := range parts {
		n += 1 + len(p)
	}

	b := make([]byte, 0, n)
	b = append(b, tag)

	for _, p := range parts {
		b = append(b, sep)
		b = append(b, p...)
	}

	return b
}

func nodeKey(id string) []byte { return key(tagNode, id) }
func edgeKey(id string) []byte { return key(tagEdge, id) }

// prefix ends a key with the separator so "a" does not match "ab".
func prefix(tag byte, parts ...string) []byte {
	return append(key(tag, parts...), sep)
}

func outKey(source, typ, id string) []byte { return key(tagOut, source, typ, id) }
func inKey(target, typ, id string) []byte  { return key(tagIn, target, typ, id) }

// adjacency is one decoded index entry.
type adjacency struct {
	node  string
	typ   string
	edge  string
	other string
	out   bool
}

func (a adjacency) toEdge() pathfind.Edge {
	if a.out {
		return pathfind.Edge{ID: a.edge, Type: a.typ, From: a.node, To: a.other}
	}

	return pathfind.Edge{ID: a.edge, Type: a.typ, From: a.other, To: a.node}
}

var errBadKey = errors.New("malformed adjacency key")

func decodeAdjacency(k, v []byte) (adjacency, error) {
	parts := bytes.Split(k, []byte{sep})
	if len(parts) != 4 || len(parts[0]) != 1 {
		return adjacency{}, fmt.Errorf("%w: %q", errBadKey, k)
	}

	return adjacency{
		node:  string(parts[1]),
		typ:   string(parts[2]),
		edge:  string(parts[3]),
		other: string(v),
		out:   parts[0][0] == tagOut,
	}, nil
}

// adjacencyPrefixes lists the index prefixes that hold node's edges in dir,
// one per type when types is not empty.
func adjacencyPrefixes(node string, dir pathfind.Direction, types []string) [][]byte {
	var tags []byte

	switch dir {
	case pathfind.Outgoing:
		tags = []byte{tagOut}
	case pathfind.Incoming:
		tags = []byte{tagIn}
	default:
		tags = []byte{tagOut, tagIn}
	}

	var out [][]byte

	for _, tag := range tags {
		if len(types) == 0 {
			out = append(out, prefix(tag, node))

			continue
		}

		for _, typ := range types {
			out = append(out, prefix(tag, node, typ))
		}
	}

	return out
}

func getJSON(txn *badger.Txn, k []byte, v any) error {
	item, err := txn.Get(k)
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, k []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", k, err)
	}

	return txn.Set(k, data)
}

func exists(txn *badger.Txn, k []byte) (bool, error) {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
