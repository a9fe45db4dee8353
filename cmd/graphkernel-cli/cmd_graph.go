package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/persistorai/graphkernel/client"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Graph traversal commands",
	}
	cmd.AddCommand(graphNeighborsCmd())
	cmd.AddCommand(graphPathsCmd())
	cmd.AddCommand(graphPathCmd())
	return cmd
}

func graphNeighborsCmd() *cobra.Command {
	var opts client.NeighborOptions
	cmd := &cobra.Command{
		Use:   "neighbors <id>",
		Short: "Get the edges around a node and the nodes at their far ends",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Neighbors(context.Background(), args[0], &opts)
			if err != nil {
				fatal("neighbors", err)
			}
			output(result, "")
		},
	}
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "both|out|in")
	cmd.Flags().StringSliceVar(&opts.Types, "type", nil, "Relationship type (repeatable)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Max results")
	return cmd
}

// pathFlags holds the flags shared by the path commands.
type pathFlags struct {
	opts  client.PathOptions
	bound int
}

func (f *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.opts.Depth, "depth", 0, "Exact number of edges in each path (required)")
	cmd.Flags().IntVar(&f.bound, "bound", -1, "Per-side expansion cap (default: unbounded)")
	cmd.Flags().BoolVar(&f.opts.AllowLoops, "loops", false, "Allow paths that revisit a node")
	cmd.Flags().StringVar(&f.opts.Direction, "direction", "", "both|out|in")
	cmd.Flags().StringSliceVar(&f.opts.Types, "type", nil, "Relationship type (repeatable)")
	_ = cmd.MarkFlagRequired("depth")
}

func (f *pathFlags) options() client.PathOptions {
	opts := f.opts
	if f.bound >= 0 {
		b := f.bound
		opts.Bound = &b
	}
	return opts
}

func graphPathsCmd() *cobra.Command {
	var f pathFlags
	cmd := &cobra.Command{
		Use:   "paths <from> <to>",
		Short: "Find all paths of exactly --depth edges between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Paths(context.Background(), args[0], args[1], f.options())
			if err != nil {
				fatal("paths", err)
			}
			switch flagFmt {
			case "table":
				rows := make([][]string, 0, len(result.Paths))
				for i, p := range result.Paths {
					rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(p.Length), pathString(p.Nodes)})
				}
				formatTable([]string{"#", "LENGTH", "NODES"}, rows)
				if result.Truncated {
					fmt.Printf("(truncated at %d paths)\n", result.Count)
				}
			case "quiet":
				for _, p := range result.Paths {
					fmt.Println(pathString(p.Nodes))
				}
			default:
				output(result, "")
			}
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&f.opts.Limit, "limit", 0, "Max paths (server default when 0)")
	return cmd
}

func graphPathCmd() *cobra.Command {
	var f pathFlags
	cmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find one path of exactly --depth edges between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			path, err := apiClient.Graph.Path(context.Background(), args[0], args[1], f.options())
			if err != nil {
				fatal("path", err)
			}
			output(path, pathString(path.Nodes))
		},
	}
	f.register(cmd)
	return cmd
}
