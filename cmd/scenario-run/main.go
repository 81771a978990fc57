package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kestrelworks/symbolic-planner/internal/config"
	"github.com/kestrelworks/symbolic-planner/internal/journal"
	"github.com/kestrelworks/symbolic-planner/internal/scenario"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to planner config YAML")
	journalPath := flag.String("journal", "", "record outcomes to this sqlite journal (overrides config)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: scenario-run [--config planner.yaml] [--journal outcomes.db] fixture.json [fixture.json ...]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	if *journalPath != "" {
		cfg.JournalPath = *journalPath
	}

	var store *journal.Store
	if cfg.JournalPath != "" {
		store, err = journal.Open(cfg.JournalPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
			os.Exit(2)
		}
	}

	code := runAll(flag.Args(), store)
	if store != nil {
		store.Close()
	}
	os.Exit(code)
}

// #endregion main

// #region run

func runAll(paths []string, store *journal.Store) int {
	fmt.Printf("%-36s| %-8s| %-6s| %s\n", "Scenario", "Result", "Nodes", "Status")
	fmt.Printf("%-36s+%-9s+%-7s+%s\n",
		"------------------------------------", "---------", "-------", "--------")

	failed := 0
	for _, path := range paths {
		f, err := scenario.LoadFixture(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return 2
		}

		run, err := scenario.Run(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return 2
		}

		printRow(run)
		if !run.Passed() {
			failed++
			for _, m := range run.Mismatches {
				fmt.Printf("    %s\n", m)
			}
		}

		if store != nil {
			if err := recordOutcome(store, f, run); err != nil {
				fmt.Fprintf(os.Stderr, "%s: record outcome: %v\n", path, err)
			}
		}
	}

	fmt.Printf("\nSummary: %d total, %d passed, %d failed\n", len(paths), len(paths)-failed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func printRow(run scenario.RunResult) {
	outcome := "no plan"
	if run.Result.Success {
		outcome = fmt.Sprintf("cost %.1f", run.Result.Cost)
	}
	status := "OK"
	if !run.Passed() {
		status = "DIFF"
	}
	fmt.Printf("%-36s| %-8s| %-6d| %s\n",
		shorten(run.Description, 36), outcome, run.Result.NodesExpanded, status)
}

func recordOutcome(store *journal.Store, f *scenario.Fixture, run scenario.RunResult) error {
	cost := run.Result.Cost
	if !run.Result.Success {
		cost = 0 // +Inf is not representable in the outcome table
	}
	return store.RecordOutcome(journal.Outcome{
		RequestHash:   f.RequestHash(),
		Algorithm:     string(run.Result.Algorithm),
		Success:       run.Result.Success,
		Cost:          cost,
		Length:        run.Result.Length,
		NodesExpanded: run.Result.NodesExpanded,
		PlanningMs:    float64(run.Result.PlanningTime.Microseconds()) / 1000.0,
		Reason:        run.Result.Reason,
	})
}

func shorten(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// #endregion run
