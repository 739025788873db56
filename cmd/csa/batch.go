package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/transit-csa/engine/internal/applog"
	"github.com/transit-csa/engine/internal/batch"
	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/loader"
	"github.com/transit-csa/engine/internal/output"
)

type runMode int

const (
	modeForward runMode = iota
	modeBackward
	modeProfile
	modeMultiCriteria
)

// runBatch loads the dataset named name under --root, reads its query
// file, dispatches every row through mode, and writes the matching
// output CSVs alongside the dataset.
func runBatch(cmd *cobra.Command, name string, mode runMode) error {
	applog.Init(appConfig.LogLevel)

	root, _ := cmd.Flags().GetString("root")
	if !cmd.Flags().Changed("root") && appConfig.DatasetRoot != "" {
		root = appConfig.DatasetRoot
	}
	useHL, _ := cmd.Flags().GetBool("hl")
	workers, _ := cmd.Flags().GetInt("workers")
	if !cmd.Flags().Changed("workers") && appConfig.Workers > 0 {
		workers = appConfig.Workers
	}

	datasetDir := filepath.Join(root, name)
	applog.Infof("loading dataset %s (hub labels: %v)", datasetDir, useHL)

	tt, err := loader.Load(datasetDir, useHL)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", name, err)
	}

	queryPath, err := resolveQueryFile(datasetDir)
	if err != nil {
		return err
	}
	rows, err := batch.ReadQueries(queryPath)
	if err != nil {
		return fmt.Errorf("read queries: %w", err)
	}
	applog.Infof("dispatching %d queries across %d workers", len(rows), effectiveWorkers(workers))

	batchMode := batchModeFor(mode)
	results, err := batch.Run(context.Background(), tt, useHL, batchMode, rows, workers)
	if err != nil {
		return fmt.Errorf("run queries: %w", err)
	}

	return writeResults(datasetDir, name, useHL, mode, results)
}

func resolveQueryFile(datasetDir string) (string, error) {
	for _, candidate := range []string{"rank_queries.csv", "queries.csv"} {
		path := filepath.Join(datasetDir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: neither rank_queries.csv nor queries.csv found", datasetDir)
}

func effectiveWorkers(w int) int {
	if w > 0 {
		return w
	}
	return runtime.NumCPU() // the same fallback batch.Run applies
}

func batchModeFor(m runMode) batch.Mode {
	switch m {
	case modeBackward:
		return batch.ModeBackward
	case modeProfile:
		return batch.ModeProfile
	case modeMultiCriteria:
		return batch.ModeMultiCriteria
	default:
		return batch.ModeForward
	}
}

func writeResults(datasetDir, name string, useHL bool, mode runMode, results []batch.Result) error {
	algo := output.AlgoName(useHL, mode == modeProfile)
	w := output.NewWriter(datasetDir, name)

	durations := make([]time.Duration, len(results))
	for i, r := range results {
		durations[i] = r.Duration
	}

	switch mode {
	case modeForward, modeBackward:
		arrivals := make([]csatime.Time, len(results))
		for i, r := range results {
			arrivals[i] = r.Arrival
		}
		if err := w.WriteRunningTimes(algo, durations); err != nil {
			return err
		}
		return w.WriteArrivalTimes(algo, arrivals)
	case modeProfile:
		journeys := make([]int, len(results))
		for i, r := range results {
			journeys[i] = r.Journeys
		}
		return w.WriteProfileStats(algo, durations, journeys)
	case modeMultiCriteria:
		sizes := make([]int, len(results))
		for i, r := range results {
			sizes[i] = r.BagSize
		}
		if err := w.WriteRunningTimes(algo, durations); err != nil {
			return err
		}
		return w.WriteBagSizes(algo, sizes)
	}
	return nil
}
