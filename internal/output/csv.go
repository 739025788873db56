// Package output writes the per-query result files the batch runner
// produces: running times, arrival times, profile stats, and multi-
// criteria bag sizes, one CSV per dataset/algorithm combination.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/transit-csa/engine/internal/csatime"
)

// AlgoName returns the <ALGO> token used in output filenames: CSA for
// restricted walking, HLCSA for Hub Labels, with a "p" prefix for the
// profile variant.
func AlgoName(useHubLabels, profile bool) string {
	algo := "CSA"
	if useHubLabels {
		algo = "HLCSA"
	}
	if profile {
		algo = "p" + algo
	}
	return algo
}

type writerBuilder struct {
	dir     string
	dataset string
}

// NewWriter returns a writer that places every output file for dataset
// under dir.
func NewWriter(dir, dataset string) *writerBuilder {
	return &writerBuilder{dir: dir, dataset: dataset}
}

func (w *writerBuilder) path(suffix string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s", w.dataset, suffix))
}

func (w *writerBuilder) create(suffix string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(w.path(suffix))
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", suffix, err)
	}
	return f, csv.NewWriter(f), nil
}

// WriteRunningTimes writes <dataset>_<algo>_running_time.csv: one column
// running_time, in milliseconds with 4 decimals.
func (w *writerBuilder) WriteRunningTimes(algo string, durations []time.Duration) error {
	f, cw, err := w.create(algo + "_running_time.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cw.Write([]string{"running_time"}); err != nil {
		return err
	}
	for _, d := range durations {
		ms := float64(d.Nanoseconds()) / float64(time.Millisecond)
		if err := cw.Write([]string{strconv.FormatFloat(ms, 'f', 4, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteArrivalTimes writes <dataset>_<algo>_arrival_times.csv: one column
// arrival_time.
func (w *writerBuilder) WriteArrivalTimes(algo string, arrivals []csatime.Time) error {
	f, cw, err := w.create(algo + "_arrival_times.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cw.Write([]string{"arrival_time"}); err != nil {
		return err
	}
	for _, a := range arrivals {
		if err := cw.Write([]string{strconv.FormatInt(int64(a), 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProfileStats writes <dataset>_<algo>_stats.csv: running_time (ms,
// 4 decimals) and n_journey, one row per profile query.
func (w *writerBuilder) WriteProfileStats(algo string, durations []time.Duration, journeyCounts []int) error {
	f, cw, err := w.create(algo + "_stats.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cw.Write([]string{"running_time", "n_journey"}); err != nil {
		return err
	}
	for i, d := range durations {
		ms := float64(d.Nanoseconds()) / float64(time.Millisecond)
		row := []string{
			strconv.FormatFloat(ms, 'f', 4, 64),
			strconv.Itoa(journeyCounts[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBagSizes writes <dataset>_<algo>_bag_sizes.csv: one column
// bag_size, the final size of bag[target] for each multi-criteria query.
func (w *writerBuilder) WriteBagSizes(algo string, sizes []int) error {
	f, cw, err := w.create(algo + "_bag_sizes.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cw.Write([]string{"bag_size"}); err != nil {
		return err
	}
	for _, s := range sizes {
		if err := cw.Write([]string{strconv.Itoa(s)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
