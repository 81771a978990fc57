package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/kestrelworks/symbolic-planner/internal/journal"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to planner journal sqlite db")
	last := flag.Int("last", 20, "show N most recent entries")
	snapshot := flag.String("snapshot", "", "show single snapshot detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: journal-inspect --db path/to/journal.db [--last N] [--snapshot id] [--json]")
		os.Exit(2)
	}

	store, err := journal.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *snapshot != "" {
		err = runSnapshotMode(store, *snapshot, *jsonOut)
	} else {
		err = runOutcomeMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region outcome-mode

func runOutcomeMode(store *journal.Store, last int, jsonOut bool) error {
	outcomes, err := store.ListOutcomes(last)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Fprintln(os.Stderr, "no outcomes found")
		return nil
	}

	if jsonOut {
		return printJSON(outcomes)
	}

	fmt.Printf("%-14s  %-8s  %-6s  %8s  %6s  %8s  %s\n",
		"Algorithm", "Success", "Len", "Cost", "Nodes", "Time ms", "Reason")
	fmt.Printf("%-14s+-%-8s+-%-6s+-%8s+-%6s+-%8s+-%s\n",
		"--------------", "--------", "------", "--------", "------", "--------", "--------")
	for _, o := range outcomes {
		fmt.Printf("%-14s  %-8v  %-6d  %8.2f  %6d  %8.2f  %s\n",
			o.Algorithm, o.Success, o.Length, o.Cost, o.NodesExpanded, o.PlanningMs, o.Reason)
	}
	return nil
}

// #endregion outcome-mode

// #region snapshot-mode

func runSnapshotMode(store *journal.Store, id string, jsonOut bool) error {
	rec, err := store.GetSnapshot(id)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(rec)
	}

	fmt.Printf("Snapshot: %s\n", rec.ID)
	fmt.Printf("Parent:   %s\n", rec.ParentID)
	fmt.Printf("Created:  %s\n", rec.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("\nState:\n")
	blob, err := json.MarshalIndent(rec.State, "  ", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	fmt.Printf("  %s\n", blob)
	return nil
}

// #endregion snapshot-mode

// #region output

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion output
