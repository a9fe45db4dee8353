package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/graphkernel/client"
)

const doctorTimeout = 5 * time.Second

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against the config file, server health, readiness and stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor() error {
	fmt.Println("\ngraphkernel doctor")
	fmt.Println("==================")

	results := []checkResult{configCheck()}

	resolveConfig()
	results = append(results, checkResult{Name: "Server URL", Passed: true, Detail: flagURL})

	c := client.New(flagURL, client.WithTimeout(doctorTimeout))
	results = append(results, serverChecks(c)...)

	fmt.Println()
	allPassed := true
	for _, r := range results {
		mark := "✅"
		if !r.Passed {
			mark = "❌"
			allPassed = false
		}
		if r.Detail != "" {
			fmt.Printf("%s %s: %s\n", mark, r.Name, r.Detail)
		} else {
			fmt.Printf("%s %s\n", mark, r.Name)
		}
		if !r.Passed && r.Hint != "" {
			fmt.Printf("   Hint: %s\n", r.Hint)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("❌ Some checks failed.")
		return errors.New("doctor found issues")
	}
	fmt.Println("✅ All checks passed!")
	return nil
}

// configCheck passes when the config file is absent or parses. A missing
// file only means the defaults are in use.
func configCheck() checkResult {
	cfgPath, _, err := loadConfig()
	switch {
	case err == nil:
		return checkResult{Name: "Config file", Passed: true, Detail: cfgPath}
	case errors.Is(err, fs.ErrNotExist):
		return checkResult{Name: "Config file", Passed: true, Detail: "not found, using defaults"}
	default:
		return checkResult{
			Name: "Config file", Passed: false, Detail: cfgPath,
			Hint: fmt.Sprintf("Fix or remove the file. Error: %v", err),
		}
	}
}

// serverChecks probes health, readiness and stats. Later checks are skipped
// when the server is unreachable.
func serverChecks(c *client.Client) []checkResult {
	ctx, cancel := context.WithTimeout(context.Background(), 3*doctorTimeout)
	defer cancel()

	health, err := c.Health(ctx)
	if err != nil {
		return []checkResult{{
			Name: "Server reachable", Passed: false, Detail: flagURL,
			Hint: fmt.Sprintf("Is graphkernel running? Set --url or GRAPHKERNEL_URL.\n   Error: %v", err),
		}}
	}

	results := []checkResult{{
		Name: "Server reachable", Passed: true,
		Detail: fmt.Sprintf("v%s, %s backend, %d active streams", health.Version, health.Backend, health.ActiveStreams),
	}}

	if ready, err := c.Ready(ctx); err != nil {
		results = append(results, checkResult{
			Name: "Storage ready", Passed: false,
			Hint: fmt.Sprintf("Check the server logs and storage settings. Error: %v", err),
		})
	} else {
		results = append(results, checkResult{Name: "Storage ready", Passed: true, Detail: ready.Checks["storage"]})
	}

	if stats, err := c.Stats(ctx); err != nil {
		results = append(results, checkResult{
			Name: "Graph stats", Passed: false,
			Hint: fmt.Sprintf("Error: %v", err),
		})
	} else {
		results = append(results, checkResult{
			Name: "Graph stats", Passed: true,
			Detail: fmt.Sprintf("%d nodes, %d edges", stats.Nodes, stats.Edges),
		})
	}

	return results
}
