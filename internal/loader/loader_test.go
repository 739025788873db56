package loader

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeRestrictedDataset(t *testing.T, dir string) {
	t.Helper()
	writeGzip(t, filepath.Join(dir, "stop_routes.csv.gz"), "stop_id\n0\n1\n2\n")
	writeGzip(t, filepath.Join(dir, "transfers.csv.gz"), "from_stop_id,to_stop_id,min_transfer_time\n0,2,30\n")
	writeGzip(t, filepath.Join(dir, "stop_times.csv.gz"),
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"+
			"0,100,100,0,0\n"+
			"0,200,200,1,1\n"+
			"1,210,210,1,0\n"+
			"1,300,300,2,1\n")
}

func TestLoadRestrictedDataset(t *testing.T) {
	dir := t.TempDir()
	writeRestrictedDataset(t, dir)

	tt, err := Load(dir, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tt.NumStops() != 3 {
		t.Fatalf("NumStops() = %d, want 3", tt.NumStops())
	}
	if len(tt.Connections) != 2 {
		t.Fatalf("got %d connections, want 2", len(tt.Connections))
	}
	if tt.MaxTripID != 1 {
		t.Errorf("MaxTripID = %d, want 1", tt.MaxTripID)
	}

	transfers := tt.Stop(0).Transfers
	if len(transfers) != 1 || transfers[0].Target != 2 || transfers[0].Time != 30 {
		t.Fatalf("Stop(0).Transfers = %+v, want one transfer to stop 2 at time 30", transfers)
	}
}

func TestLoadHubDataset(t *testing.T) {
	dir := t.TempDir()
	writeGzip(t, filepath.Join(dir, "stop_routes.csv.gz"), "stop_id\n0\n1\n")
	writeGzip(t, filepath.Join(dir, "in_hubs.gr.gz"), "0 10 100\n1 10 50\n")
	// out_hubs.gr.gz reverses the column order to "hub_id stop_id
	// distance": this row means stop 0 can walk to hub 11, not the other
	// way around. A deliberately asymmetric hub id here catches a loader
	// that reuses the in_hubs column mapping for out_hubs.
	writeGzip(t, filepath.Join(dir, "out_hubs.gr.gz"), "11 0 100\n")
	writeGzip(t, filepath.Join(dir, "stop_times.csv.gz"),
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"+
			"0,100,100,0,0\n"+
			"0,200,200,1,1\n")

	tt, err := Load(dir, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// distance 100 at 4km/h -> round(9*100/100) = 9.
	if got := tt.Stop(0).InHubs; len(got) != 1 || got[0].Time != 9 {
		t.Fatalf("Stop(0).InHubs = %+v, want one hub link at time 9", got)
	}
	if inv := tt.InverseInHubs[10]; len(inv) != 2 {
		t.Fatalf("InverseInHubs[10] has %d entries, want 2", len(inv))
	}

	if got := tt.Stop(0).OutHubs; len(got) != 1 || got[0].Hub != 11 || got[0].Time != 9 {
		t.Fatalf("Stop(0).OutHubs = %+v, want one hub link to hub 11 at time 9", got)
	}
}

func TestLoadMissingFileWrapsSentinel(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, false)
	if err == nil {
		t.Fatal("Load on empty dataset directory should fail")
	}
	if !errors.Is(err, ErrDatasetMissing) {
		t.Fatalf("error = %v, want it to wrap ErrDatasetMissing", err)
	}
}

func TestLoadMalformedRowWrapsSentinel(t *testing.T) {
	dir := t.TempDir()
	writeGzip(t, filepath.Join(dir, "stop_routes.csv.gz"), "stop_id\nnot-a-number\n")

	_, err := Load(dir, false)
	if err == nil {
		t.Fatal("Load on malformed stop_routes.csv.gz should fail")
	}
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("error = %v, want it to wrap ErrMalformedRow", err)
	}
	if !strings.Contains(err.Error(), "stop_routes.csv.gz") {
		t.Errorf("error %v should name the offending file", err)
	}
}
