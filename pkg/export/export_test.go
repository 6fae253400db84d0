package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/layout"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/sim"
)

func finishedRun(t *testing.T, id string) Run {
	t.Helper()
	p := params.Default()
	p.DurationS = 60
	p.TrafficIntensity = params.Range{Min: 3600, Max: 3600}
	p.PriorityShare = 0.5

	e, err := sim.New(p, layout.ForVariant("B", p), 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Run(p.Steps()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return Snapshot(e, id)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return rows
}

func TestSnapshotGeneratesID(t *testing.T) {
	run := finishedRun(t, "")
	if !strings.HasPrefix(run.ID, "simulation_raw_") {
		t.Errorf("ID = %q, want the simulation_raw_ prefix", run.ID)
	}

	named := finishedRun(t, "my_run")
	if named.ID != "my_run" {
		t.Errorf("ID = %q, want caller-provided name kept", named.ID)
	}
}

func TestWriteProducesAllTables(t *testing.T) {
	run := finishedRun(t, "test_run")
	dir := t.TempDir()

	final, err := Write(run, dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if final != filepath.Join(dir, "test_run") {
		t.Errorf("final dir = %q, want %q", final, filepath.Join(dir, "test_run"))
	}

	for _, name := range []string{
		"timeseries.csv", "vehicles.csv", "config.csv", "lane_utilization.csv", "signals.csv",
	} {
		if _, err := os.Stat(filepath.Join(final, name)); err != nil {
			t.Errorf("missing table %s: %v", name, err)
		}
	}

	// No staging leftovers.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".staging-") {
			t.Errorf("staging directory %s left behind", e.Name())
		}
	}
}

func TestWriteTimeSeriesShape(t *testing.T) {
	run := finishedRun(t, "shape_run")
	final, err := Write(run, t.TempDir())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows := readCSV(t, filepath.Join(final, "timeseries.csv"))
	// Header plus one row per captured step.
	if got, want := len(rows), run.Series.Len()+1; got != want {
		t.Errorf("timeseries rows = %d, want %d", got, want)
	}
	if rows[0][0] != "timestamp" {
		t.Errorf("header = %v, want timestamp first", rows[0])
	}
}

func TestWriteConfigSingleRow(t *testing.T) {
	run := finishedRun(t, "config_run")
	final, err := Write(run, t.TempDir())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows := readCSV(t, filepath.Join(final, "config.csv"))
	if len(rows) != 2 {
		t.Fatalf("config rows = %d, want header + one record", len(rows))
	}
	if rows[1][0] != "config_run" {
		t.Errorf("simulation_id = %q, want config_run", rows[1][0])
	}
	// Variant B: 2 regular lanes with a priority lane of derived capacity 80.
	if rows[1][1] != "2" || rows[1][2] != "true" || rows[1][3] != "80" {
		t.Errorf("layout columns = %v, want lanes=2 priority=true capacity=80", rows[1][1:4])
	}
}

func TestWriteEventsUseLaneSentinel(t *testing.T) {
	run := finishedRun(t, "lane_run")
	final, err := Write(run, t.TempDir())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows := readCSV(t, filepath.Join(final, "vehicles.csv"))
	if len(rows) < 2 {
		t.Fatal("expected vehicle events in a saturated 60s run")
	}
	sawPriority := false
	for _, row := range rows[1:] {
		if row[4] == "-1" {
			sawPriority = true
			break
		}
	}
	if !sawPriority {
		t.Error("expected at least one priority-lane event exported as lane -1")
	}
}

func TestWriteUtilizationHasSummaryRow(t *testing.T) {
	run := finishedRun(t, "util_run")
	final, err := Write(run, t.TempDir())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows := readCSV(t, filepath.Join(final, "lane_utilization.csv"))
	// Header, two regular lanes, priority lane, summary.
	if len(rows) != 5 {
		t.Fatalf("utilization rows = %d, want 5", len(rows))
	}
	if rows[len(rows)-1][1] != "SUMMARY" {
		t.Errorf("last row = %v, want the SUMMARY aggregate", rows[len(rows)-1])
	}
}
