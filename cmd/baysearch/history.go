package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/baysearch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := baysearch.SnapshotFilter{Limit: c.Limit}
	if c.Query != "" {
		filter.Query = &c.Query
	}

	snapshots, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", baysearch.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'baysearch search --save' to create one.")
		return nil
	}

	for _, s := range snapshots {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-20q %d results\n",
			s.ID, s.FetchedAt.Format(time.RFC3339), s.Query, s.Result.Total)
	}

	return nil
}
