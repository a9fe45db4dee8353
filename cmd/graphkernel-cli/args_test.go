package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs root with args and returns any error. Output is
// discarded so test logs stay clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds the real command tree with PersistentPreRun stubbed
// out so the API client is never initialised. Only invocations that fail
// validation before Run are safe to execute with it.
func newTestRoot() *cobra.Command {
	root := newRootCmd()
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	return root
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"node get without id", []string{"node", "get"}},
		{"node delete with two ids", []string{"node", "delete", "a", "b"}},
		{"node create with two ids", []string{"node", "create", "a", "b"}},
		{"edge create without target", []string{"edge", "create", "a", "--type", "KNOWS"}},
		{"edge create without type", []string{"edge", "create", "a", "b"}},
		{"edge get without id", []string{"edge", "get"}},
		{"neighbors without id", []string{"graph", "neighbors"}},
		{"paths without target", []string{"graph", "paths", "a", "--depth", "2"}},
		{"paths without depth", []string{"graph", "paths", "a", "b"}},
		{"path without depth", []string{"graph", "path", "a", "b"}},
		{"paths with bad depth", []string{"graph", "paths", "a", "b", "--depth", "two"}},
		{"import chains without file", []string{"import", "chains"}},
		{"import json with two files", []string{"import", "json", "a", "b"}},
		{"unknown command", []string{"traverse", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := executeArgs(t, newTestRoot(), tt.args...); err == nil {
				t.Errorf("%v: expected error, got nil", tt.args)
			}
		})
	}
}

func TestPathFlagsOptions(t *testing.T) {
	cmd := graphPathsCmd()
	if err := cmd.ParseFlags([]string{
		"--depth", "4", "--loops", "--direction", "out", "--type", "R1", "--type", "R2", "--limit", "10",
	}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	depth, _ := cmd.Flags().GetInt("depth")
	bound, _ := cmd.Flags().GetInt("bound")
	loops, _ := cmd.Flags().GetBool("loops")
	types, _ := cmd.Flags().GetStringSlice("type")
	if depth != 4 || bound != -1 || !loops || len(types) != 2 {
		t.Errorf("flags = depth %d, bound %d, loops %v, types %v", depth, bound, loops, types)
	}
}

func TestPathFlagsBound(t *testing.T) {
	f := pathFlags{bound: -1}
	f.opts.Depth = 3
	if opts := f.options(); opts.Bound != nil {
		t.Errorf("negative bound should be omitted, got %d", *opts.Bound)
	}

	f.bound = 0
	opts := f.options()
	if opts.Bound == nil || *opts.Bound != 0 {
		t.Errorf("Bound = %v, want 0", opts.Bound)
	}
	if opts.Depth != 3 {
		t.Errorf("Depth = %d, want 3", opts.Depth)
	}
}
