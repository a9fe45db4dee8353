package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/graphkernel/client"
)

func newEdgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Manage edges",
	}
	cmd.AddCommand(edgeCreateCmd())
	cmd.AddCommand(edgeGetCmd())
	cmd.AddCommand(edgeDeleteCmd())
	cmd.AddCommand(edgeListCmd())
	return cmd
}

func edgeCreateCmd() *cobra.Command {
	var id, edgeType, propsJSON string
	cmd := &cobra.Command{
		Use:   "create <source> <target>",
		Short: "Create a directed edge",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreateEdgeRequest{
				ID:     id,
				Type:   edgeType,
				Source: args[0],
				Target: args[1],
			}
			if propsJSON != "" {
				if err := json.Unmarshal([]byte(propsJSON), &req.Properties); err != nil {
					fatal("parse props", err)
				}
			}
			edge, err := apiClient.Edges.Create(context.Background(), req)
			if err != nil {
				fatal("create edge", err)
			}
			output(edge, edge.ID)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Edge ID (generated when empty)")
	cmd.Flags().StringVar(&edgeType, "type", "", "Relationship type (required)")
	cmd.Flags().StringVar(&propsJSON, "props", "", "Properties as JSON")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func edgeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an edge by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			edge, err := apiClient.Edges.Get(context.Background(), args[0])
			if err != nil {
				fatal("get edge", err)
			}
			output(edge, edge.ID)
		},
	}
}

func edgeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an edge",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Edges.Delete(context.Background(), args[0]); err != nil {
				fatal("delete edge", err)
			}
			fmt.Println("deleted")
		},
	}
}

func edgeListCmd() *cobra.Command {
	var (
		nodeID, edgeType string
		limit, offset    int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List edges",
		Run: func(cmd *cobra.Command, args []string) {
			if limit < 0 || offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit and --offset must be non-negative\n")
				os.Exit(1)
			}
			edges, _, err := apiClient.Edges.List(context.Background(), &client.EdgeListOptions{
				NodeID: nodeID,
				Type:   edgeType,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				fatal("list edges", err)
			}
			switch flagFmt {
			case "table":
				rows := make([][]string, 0, len(edges))
				for _, e := range edges {
					rows = append(rows, []string{e.ID, e.Type, e.Source, e.Target})
				}
				formatTable([]string{"ID", "TYPE", "SOURCE", "TARGET"}, rows)
			case "quiet":
				for _, e := range edges {
					fmt.Println(e.ID)
				}
			default:
				output(edges, "")
			}
		},
	}
	cmd.Flags().StringVar(&nodeID, "node", "", "Only edges touching this node")
	cmd.Flags().StringVar(&edgeType, "type", "", "Filter by relationship type")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}
