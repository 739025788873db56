// Package batch dispatches a query file (queries.csv or rank_queries.csv)
// across a pool of query.Engine workers, each instance reused for every
// row routed to it, and times each query the way the original benchmark
// harness does.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/query"
	"github.com/transit-csa/engine/internal/timetable"
)

// Row is one line of a queries.csv/rank_queries.csv file. Rank is carried
// through for the caller's convenience only; it does not affect how the
// query is answered.
type Row struct {
	Rank   int
	Source timetable.NodeId
	Target timetable.NodeId
	Time   csatime.Time
}

// ReadQueries parses a rank,source,target,time CSV file.
func ReadQueries(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	idx := headerIndex(header)
	rankCol, sourceCol, targetCol, timeCol := idx("rank"), idx("source"), idx("target"), idx("time")
	if sourceCol < 0 || targetCol < 0 || timeCol < 0 {
		return nil, fmt.Errorf("%s: missing required column among source,target,time", path)
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row of %s: %w", path, err)
		}

		var row Row
		if rankCol >= 0 {
			row.Rank, err = strconv.Atoi(strings.TrimSpace(rec[rankCol]))
			if err != nil {
				return nil, fmt.Errorf("parse rank in %s: %w", path, err)
			}
		}
		src, err := strconv.ParseUint(strings.TrimSpace(rec[sourceCol]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse source in %s: %w", path, err)
		}
		tgt, err := strconv.ParseUint(strings.TrimSpace(rec[targetCol]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse target in %s: %w", path, err)
		}
		tm, err := strconv.ParseInt(strings.TrimSpace(rec[timeCol]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse time in %s: %w", path, err)
		}

		row.Source = timetable.NodeId(src)
		row.Target = timetable.NodeId(tgt)
		row.Time = csatime.Time(tm)
		rows = append(rows, row)
	}
	return rows, nil
}

func headerIndex(header []string) func(col string) int {
	return func(col string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
}

// Mode selects which Engine call a Run dispatches each row to.
type Mode int

const (
	ModeForward Mode = iota
	ModeBackward
	ModeProfile
	ModeMultiCriteria
)

// Result is one row's outcome plus the instrumentation the output
// writers consume: the wall-clock duration of the query itself, the
// arrival time (forward/backward), the profile's journey count, or the
// multi-criteria bag's final size, depending on Mode.
type Result struct {
	Row      Row
	Duration time.Duration
	Arrival  csatime.Time
	Journeys int
	BagSize  int
}

// Run fans rows out across workers goroutines, each owning one
// query.Engine constructed once over tt and reused for every row it is
// assigned. Results are returned in the same order as rows.
func Run(ctx context.Context, tt *timetable.Timetable, useHL bool, mode Mode, rows []Row, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(rows) && len(rows) > 0 {
		workers = len(rows)
	}

	results := make([]Result, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			e := query.NewEngine(tt, useHL)
			for i := w; i < len(rows); i += workers {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				results[i] = runOne(e, mode, rows[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(e *query.Engine, mode Mode, row Row) Result {
	start := time.Now()

	res := Result{Row: row}
	switch mode {
	case ModeForward:
		res.Arrival = e.Forward(row.Source, row.Target, row.Time, true)
	case ModeBackward:
		res.Arrival = e.Backward(row.Source, row.Target, row.Time)
	case ModeProfile:
		// Pairs always carries the (inf, inf) sentinel; exclude it from
		// the reported journey count.
		res.Journeys = len(e.Profile(row.Source, row.Target).Pairs()) - 1
	case ModeMultiCriteria:
		res.BagSize = e.MultiCriteria(row.Source, row.Target, row.Time).Len()
	}

	res.Duration = time.Since(start)
	return res
}
