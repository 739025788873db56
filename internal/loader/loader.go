// Package loader reads the gzip-compressed CSV timetable inputs into a
// timetable.Timetable. Loading is all-or-nothing: any malformed row or
// missing file aborts with a wrapped error, and no partial Timetable is
// ever returned.
package loader

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/transit-csa/engine/internal/csatime"
	"github.com/transit-csa/engine/internal/timetable"
)

// ErrDatasetMissing is wrapped into the error returned when a required
// input file does not exist under the dataset root.
var ErrDatasetMissing = errors.New("dataset file missing")

// ErrMalformedRow is wrapped into the error returned when a CSV row
// cannot be parsed into the columns its file requires.
var ErrMalformedRow = errors.New("malformed row")

// walkingSpeedKmH is the pedestrian speed the distance-to-time formula
// assumes, matching the dataset's precomputed Hub Label distances.
const walkingSpeedKmH = 4.0

// distanceToTime converts a Hub Label distance into a Time using the
// dataset's fixed formula: time = round(9*d / (25*v)).
func distanceToTime(d float64) csatime.Time {
	return csatime.Time(math.Round(9 * d / (25 * walkingSpeedKmH)))
}

// Load reads every input file under root and returns the built Timetable.
// When useHubLabels is true, in_hubs.gr.gz/out_hubs.gr.gz are parsed and
// transfers.csv.gz is skipped; otherwise the reverse.
func Load(root string, useHubLabels bool) (*timetable.Timetable, error) {
	b := timetable.NewBuilder()

	if err := parseStopRoutes(b, root); err != nil {
		return nil, err
	}

	if useHubLabels {
		if err := parseHubs(b, root); err != nil {
			return nil, err
		}
	} else {
		if err := parseTransfers(b, root); err != nil {
			return nil, err
		}
	}

	if err := parseConnections(b, root); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// openGzipCSV opens a gzip-compressed CSV file and returns a csv.Reader
// over its decompressed contents along with a closer for both layers.
func openGzipCSV(path string, comma rune) (*csv.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrDatasetMissing)
		}
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	r := csv.NewReader(gz)
	r.Comma = comma
	closer := func() error {
		gzErr := gz.Close()
		fErr := f.Close()
		if gzErr != nil {
			return gzErr
		}
		return fErr
	}
	return r, closer, nil
}

// headerIndex builds a case-insensitive column-name -> index lookup from
// a CSV header row.
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

func parseStopRoutes(b *timetable.Builder, root string) error {
	path := filepath.Join(root, "stop_routes.csv.gz")
	r, closeFile, err := openGzipCSV(path, ',')
	if err != nil {
		return err
	}
	defer closeFile()

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", path, err)
	}
	idx := headerIndex(header)
	stopIDCol := idx("stop_id")
	if stopIDCol < 0 {
		return fmt.Errorf("%s: missing stop_id column: %w", path, ErrMalformedRow)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		id, err := parseNodeID(row[stopIDCol])
		if err != nil {
			return fmt.Errorf("%s: stop_id %q: %w", path, row[stopIDCol], errors.Join(err, ErrMalformedRow))
		}
		b.EnsureStop(id)
	}
	return nil
}

func parseTransfers(b *timetable.Builder, root string) error {
	path := filepath.Join(root, "transfers.csv.gz")
	r, closeFile, err := openGzipCSV(path, ',')
	if err != nil {
		return err
	}
	defer closeFile()

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", path, err)
	}
	idx := headerIndex(header)
	fromCol, toCol, timeCol := idx("from_stop_id"), idx("to_stop_id"), idx("min_transfer_time")
	if fromCol < 0 || toCol < 0 || timeCol < 0 {
		return fmt.Errorf("%s: missing required column: %w", path, ErrMalformedRow)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		from, err := parseNodeID(row[fromCol])
		if err != nil {
			return fmt.Errorf("%s: from_stop_id %q: %w", path, row[fromCol], errors.Join(err, ErrMalformedRow))
		}
		to, err := parseNodeID(row[toCol])
		if err != nil {
			return fmt.Errorf("%s: to_stop_id %q: %w", path, row[toCol], errors.Join(err, ErrMalformedRow))
		}
		t, err := parseTime(row[timeCol])
		if err != nil {
			return fmt.Errorf("%s: min_transfer_time %q: %w", path, row[timeCol], errors.Join(err, ErrMalformedRow))
		}
		b.AddTransfer(from, to, t)
	}
	return nil
}

func parseHubs(b *timetable.Builder, root string) error {
	// in_hubs.gr.gz lists "stop_id hub_id distance"; out_hubs.gr.gz lists
	// "hub_id stop_id distance" — the two files do not share a column
	// order, so each gets its own field mapping rather than a shared one.
	if err := parseHubFile(b, filepath.Join(root, "in_hubs.gr.gz"), false, b.AddInHub); err != nil {
		return err
	}
	if err := parseHubFile(b, filepath.Join(root, "out_hubs.gr.gz"), true, b.AddOutHub); err != nil {
		return err
	}
	return nil
}

// parseHubFile reads a headerless, space-separated three-column graph
// file and feeds each row to add as (stop, hub, time). swapped selects
// which column holds the hub: false reads "stop hub distance"
// (in_hubs.gr.gz), true reads "hub stop distance" (out_hubs.gr.gz).
func parseHubFile(b *timetable.Builder, path string, swapped bool, add func(stop, hub csatime.NodeId, t csatime.Time)) error {
	r, closeFile, err := openGzipCSV(path, ' ')
	if err != nil {
		return err
	}
	defer closeFile()
	r.FieldsPerRecord = 3

	stopCol, hubCol := 0, 1
	if swapped {
		stopCol, hubCol = 1, 0
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		stop, err := parseNodeID(row[stopCol])
		if err != nil {
			return fmt.Errorf("%s: stop id %q: %w", path, row[stopCol], errors.Join(err, ErrMalformedRow))
		}
		hub, err := parseNodeID(row[hubCol])
		if err != nil {
			return fmt.Errorf("%s: hub id %q: %w", path, row[hubCol], errors.Join(err, ErrMalformedRow))
		}
		dist, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return fmt.Errorf("%s: distance %q: %w", path, row[2], errors.Join(err, ErrMalformedRow))
		}
		add(stop, hub, distanceToTime(dist))
	}
	return nil
}

type stopTimeEvent struct {
	stopID   csatime.NodeId
	arr, dep csatime.Time
	seq      int
}

func parseConnections(b *timetable.Builder, root string) error {
	path := filepath.Join(root, "stop_times.csv.gz")
	r, closeFile, err := openGzipCSV(path, ',')
	if err != nil {
		return err
	}
	defer closeFile()

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", path, err)
	}
	idx := headerIndex(header)
	tripCol, arrCol, depCol := idx("trip_id"), idx("arrival_time"), idx("departure_time")
	stopCol, seqCol := idx("stop_id"), idx("stop_sequence")
	if tripCol < 0 || arrCol < 0 || depCol < 0 || stopCol < 0 || seqCol < 0 {
		return fmt.Errorf("%s: missing required column: %w", path, ErrMalformedRow)
	}

	tripEvents := make(map[csatime.TripId][]stopTimeEvent)
	tripOrder := make([]csatime.TripId, 0)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		trip, err := parseTripID(row[tripCol])
		if err != nil {
			return fmt.Errorf("%s: trip_id %q: %w", path, row[tripCol], errors.Join(err, ErrMalformedRow))
		}
		stop, err := parseNodeID(row[stopCol])
		if err != nil {
			return fmt.Errorf("%s: stop_id %q: %w", path, row[stopCol], errors.Join(err, ErrMalformedRow))
		}
		arr, err := parseTime(row[arrCol])
		if err != nil {
			return fmt.Errorf("%s: arrival_time %q: %w", path, row[arrCol], errors.Join(err, ErrMalformedRow))
		}
		dep, err := parseTime(row[depCol])
		if err != nil {
			return fmt.Errorf("%s: departure_time %q: %w", path, row[depCol], errors.Join(err, ErrMalformedRow))
		}
		seq, err := strconv.Atoi(strings.TrimSpace(row[seqCol]))
		if err != nil {
			return fmt.Errorf("%s: stop_sequence %q: %w", path, row[seqCol], errors.Join(err, ErrMalformedRow))
		}

		if _, seen := tripEvents[trip]; !seen {
			tripOrder = append(tripOrder, trip)
		}
		tripEvents[trip] = append(tripEvents[trip], stopTimeEvent{stopID: stop, arr: arr, dep: dep, seq: seq})
	}

	for _, trip := range tripOrder {
		events := tripEvents[trip]
		sort.Slice(events, func(i, j int) bool { return events[i].seq < events[j].seq })
		for i := 0; i+1 < len(events); i++ {
			b.AddConnection(timetable.Connection{
				Trip:    trip,
				DepStop: events[i].stopID,
				ArrStop: events[i+1].stopID,
				DepTime: events[i].dep,
				ArrTime: events[i+1].arr,
				Seq:     events[i].seq,
			})
		}
	}
	return nil
}

func parseNodeID(s string) (csatime.NodeId, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return csatime.NodeId(v), nil
}

func parseTripID(s string) (csatime.TripId, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return csatime.TripId(v), nil
}

func parseTime(s string) (csatime.Time, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return csatime.Time(v), nil
}
