package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/persistorai/graphkernel/client"
)

// defaultChainType is the relationship type of chain lines without a prefix.
const defaultChainType = "R1"

// importFile is the document read by "import json".
type importFile struct {
	Nodes []client.CreateNodeRequest `json:"nodes"`
	Edges []client.CreateEdgeRequest `json:"edges"`
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load nodes and edges in bulk",
	}
	cmd.AddCommand(importChainsCmd())
	cmd.AddCommand(importJSONCmd())
	return cmd
}

func importChainsCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "chains <file>",
		Short: "Import edge chains, one per line",
		Long: `Each line describes a walk of directed edges between comma-separated node IDs,
optionally prefixed by a relationship type:

  a,b,c          creates a->b and b->c with type R1
  KNOWS: a,d     creates a->d with type KNOWS

Blank lines and lines starting with # are ignored. Every line creates new
edges, so repeating a line produces parallel edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			data, err := parseChains(f)
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), data, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and count without writing")
	return cmd
}

func importJSONCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: `Import a {"nodes": [...], "edges": [...]} document`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			var data importFile
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("parsing import file: %w", err)
			}
			return runImport(cmd.Context(), &data, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and count without writing")
	return cmd
}

// parseChains reads chain lines into node and edge upserts. Nodes are
// listed once each, in order of first appearance.
func parseChains(r io.Reader) (*importFile, error) {
	data := &importFile{}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		relType := defaultChainType
		if typ, rest, ok := strings.Cut(line, ":"); ok {
			relType = strings.TrimSpace(typ)
			line = rest
			if relType == "" {
				return nil, fmt.Errorf("line %d: empty relationship type", lineNo)
			}
		}

		ids := strings.Split(line, ",")
		if len(ids) < 2 {
			return nil, fmt.Errorf("line %d: a chain needs at least two nodes", lineNo)
		}
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
			if ids[i] == "" {
				return nil, fmt.Errorf("line %d: empty node id", lineNo)
			}
			if !seen[ids[i]] {
				seen[ids[i]] = true
				data.Nodes = append(data.Nodes, client.CreateNodeRequest{ID: ids[i]})
			}
		}
		for i := 0; i+1 < len(ids); i++ {
			data.Edges = append(data.Edges, client.CreateEdgeRequest{
				ID:     uuid.NewString(),
				Type:   relType,
				Source: ids[i],
				Target: ids[i+1],
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading chains: %w", err)
	}
	return data, nil
}

func runImport(ctx context.Context, data *importFile, dryRun bool) error {
	if dryRun {
		fmt.Fprintf(os.Stderr, "(dry run) %d nodes, %d edges\n", len(data.Nodes), len(data.Edges))
		return nil
	}

	nodes, err := inBatches(data.Nodes, client.MaxBulkItems, func(batch []client.CreateNodeRequest) (int, error) {
		return apiClient.Bulk.Nodes(ctx, batch)
	})
	if err != nil {
		return fmt.Errorf("importing nodes: %w", err)
	}

	edges, err := inBatches(data.Edges, client.MaxBulkItems, func(batch []client.CreateEdgeRequest) (int, error) {
		return apiClient.Bulk.Edges(ctx, batch)
	})
	if err != nil {
		return fmt.Errorf("importing edges (%d nodes already written): %w", nodes, err)
	}

	fmt.Fprintf(os.Stderr, "Nodes: %d upserted\nEdges: %d upserted\n", nodes, edges)
	return nil
}

// inBatches calls fn on consecutive slices of at most size items and sums
// the counts it returns. It stops at the first error.
func inBatches[T any](items []T, size int, fn func([]T) (int, error)) (int, error) {
	total := 0
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		n, err := fn(items[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
