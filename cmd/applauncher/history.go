package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/deskkit/applauncher/internal/database"
	"github.com/deskkit/applauncher/internal/models"
	"github.com/deskkit/applauncher/internal/reporter"
)

// runHistory lists recent runs and the files they skipped
func runHistory(cmd *cobra.Command) error {
	repo, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := repo.RecentRuns(historyLimit)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), reporter.New(cfg.Log.NoColor).FormatHistoryText(runs, time.Now()))
	return nil
}

// runHistoryRun shows a single run by id
func runHistoryRun(cmd *cobra.Command, runID string) error {
	repo, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	run, err := repo.GetByRunID(runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Errorf("no recorded run with id %s", runID)
		}
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), reporter.New(cfg.Log.NoColor).FormatHistoryText([]models.ScanRun{*run}, time.Now()))
	return nil
}

func runClearHistory(cmd *cobra.Command) error {
	repo, closeDB, err := openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	count, err := repo.CountRuns()
	if err != nil {
		return err
	}
	if err := repo.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded runs from %s\n", count, cfg.HistoryPath())
	return nil
}

// openHistory opens the history database. A database that was never
// created is reported instead of being created empty.
func openHistory() (*database.Repository, func(), error) {
	path := cfg.HistoryPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("no scan history at %s (run with --record first)", path)
	}

	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return database.NewRepository(db), func() { db.Close() }, nil
}
