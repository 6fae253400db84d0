package sim

import (
	"errors"
	"reflect"
	"testing"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/layout"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
)

func testParams() params.Parameters {
	p := params.Default()
	p.TrafficIntensity = params.Range{Min: 1000, Max: 1000}
	p.DiversionRate = params.Range{Min: 0, Max: 0}
	p.DurationS = 120
	p.TimeStepS = 1
	return p
}

func mustEngine(t *testing.T, p params.Parameters, l layout.RoadLayout, seed int64) *Engine {
	t.Helper()
	e, err := New(p, l, seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestZeroDemand(t *testing.T) {
	p := testParams()
	p.TrafficIntensity = params.Range{Min: 0, Max: 0}

	e := mustEngine(t, p, layout.ForVariant("A", p), 1)
	summary, err := e.Run(p.Steps())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.CompletedVehicles != 0 || summary.ActiveVehicles != 0 || summary.QueuedVehicles != 0 {
		t.Errorf("summary = %+v, want all vehicle counts zero", summary)
	}
	if len(e.Events()) != 0 {
		t.Errorf("got %d events, want none for zero demand", len(e.Events()))
	}
	for i, jam := range e.Series().CongestionLengthsKm {
		if jam != 0 {
			t.Fatalf("congestion length at step %d = %v, want 0", i, jam)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	p := testParams()
	p.PriorityShare = 0.2
	p.DiversionRate = params.Range{Min: 0.05, Max: 0.20}

	run := func() ([]VehicleEvent, Summary) {
		e := mustEngine(t, p, layout.ForVariant("B", p), 42)
		summary, err := e.Run(p.Steps())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return e.Events(), summary
	}

	events1, summary1 := run()
	events2, summary2 := run()

	if !reflect.DeepEqual(events1, events2) {
		t.Fatal("identical seeds must produce identical event sequences")
	}
	// ExecutionTime is wall-clock and may differ; everything else must not.
	summary1.ExecutionTime = 0
	summary2.ExecutionTime = 0
	if summary1 != summary2 {
		t.Errorf("summaries differ: %+v vs %+v", summary1, summary2)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	p := testParams()
	e1 := mustEngine(t, p, layout.ForVariant("A", p), 1)
	e2 := mustEngine(t, p, layout.ForVariant("A", p), 2)

	if _, err := e1.Run(p.Steps()); err != nil {
		t.Fatal(err)
	}
	if _, err := e2.Run(p.Steps()); err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(e1.Events(), e2.Events()) {
		t.Error("different seeds produced identical event sequences")
	}
}

func TestTravelTimeSetOnceOnCompletion(t *testing.T) {
	p := testParams()
	p.DurationS = 600
	p.DiversionRate = params.Range{Min: 0.1, Max: 0.1}

	e := mustEngine(t, p, layout.ForVariant("A", p), 7)
	if _, err := e.Run(p.Steps()); err != nil {
		t.Fatal(err)
	}

	admitted := map[int]float64{}
	completions := map[int]int{}
	for _, ev := range e.Events() {
		switch ev.Action {
		case ActionEntered, ActionEnteredFromQueue:
			admitted[ev.VehicleID] = ev.TimeS
		case ActionDiverted, ActionExited:
			completions[ev.VehicleID]++
			entry, ok := admitted[ev.VehicleID]
			if !ok {
				t.Fatalf("vehicle %d completed without an admission event", ev.VehicleID)
			}
			if ev.TravelTimeS < 0 {
				t.Errorf("vehicle %d travel time = %v, want non-negative", ev.VehicleID, ev.TravelTimeS)
			}
			if got, want := ev.TravelTimeS, ev.TimeS-entry; got != want {
				t.Errorf("vehicle %d travel time = %v, want completion-entry = %v", ev.VehicleID, got, want)
			}
		}
	}

	if len(completions) == 0 {
		t.Fatal("expected some completions in a 600s run")
	}
	for id, n := range completions {
		if n != 1 {
			t.Errorf("vehicle %d completed %d times, want exactly once", id, n)
		}
	}
}

func TestNoLanesIsConstructionError(t *testing.T) {
	p := testParams()
	l := layout.RoadLayout{RegularLanes: 0, HasPriorityLane: false, GreenRatio: 0.6}
	if _, err := New(p, l, 1); err == nil {
		t.Fatal("expected a construction error for a layout with no lanes at all")
	}
}

func TestRegularVehicleWithoutRegularLaneAborts(t *testing.T) {
	p := testParams()
	p.PriorityShare = 0 // every generated vehicle needs a regular lane
	p.TrafficIntensity = params.Range{Min: 36000, Max: 36000}
	l := layout.RoadLayout{RegularLanes: 0, HasPriorityLane: true, GreenRatio: 0.6}

	e := mustEngine(t, p, l, 1)

	var stepErr error
	for i := 0; i < 100 && stepErr == nil; i++ {
		stepErr = e.Step()
	}
	if stepErr == nil {
		t.Fatal("expected the first regular-vehicle generation to abort the run")
	}
	if !errors.Is(stepErr, ErrNoRegularLane) {
		t.Errorf("error = %v, want ErrNoRegularLane", stepErr)
	}
}

func TestQueueReleasesInFIFOOrder(t *testing.T) {
	p := testParams()
	p.DurationS = 300
	p.TrafficIntensity = params.Range{Min: 7200, Max: 7200} // 2 vehicles/s forces queueing
	p.SideRoadPositions = []float64{0.05}                   // short entry segment
	l := layout.ForVariant("", p)                           // 2 regular lanes

	e := mustEngine(t, p, l, 3)
	if _, err := e.Run(p.Steps()); err != nil {
		t.Fatal(err)
	}

	var queued, released []int
	for _, ev := range e.Events() {
		switch ev.Action {
		case ActionQueued:
			queued = append(queued, ev.VehicleID)
		case ActionEnteredFromQueue:
			released = append(released, ev.VehicleID)
		}
	}

	if len(queued) == 0 {
		t.Fatal("expected queueing under saturated demand and a short entry segment")
	}
	// Released vehicles must come back out in exactly the order they queued.
	if len(released) > len(queued) {
		t.Fatalf("released %d vehicles but only %d ever queued", len(released), len(queued))
	}
	for i, id := range released {
		if queued[i] != id {
			t.Fatalf("release order differs from queue order at %d: got %d, want %d", i, id, queued[i])
		}
	}
}

func TestPriorityLaneCapacityDerivation(t *testing.T) {
	with := layout.RoadLayout{RegularLanes: 2, HasPriorityLane: true}
	// 1.0 km / 0.0125 km per bus = 80.
	if got := PriorityLaneCapacityFor(with, 1.0); got != 80 {
		t.Errorf("capacity = %d, want 80", got)
	}
	// A corridor shorter than one bus still holds one.
	if got := PriorityLaneCapacityFor(with, 0.01); got != 1 {
		t.Errorf("capacity = %d, want 1 for a tiny corridor", got)
	}
	without := layout.RoadLayout{RegularLanes: 2}
	if got := PriorityLaneCapacityFor(without, 1.0); got != 0 {
		t.Errorf("capacity = %d, want 0 without a priority lane", got)
	}
}

func TestPriorityVehiclesUsePriorityLane(t *testing.T) {
	p := testParams()
	p.PriorityShare = 1.0

	e := mustEngine(t, p, layout.ForVariant("B", p), 5)
	if _, err := e.Run(p.Steps()); err != nil {
		t.Fatal(err)
	}

	events := e.Events()
	if len(events) == 0 {
		t.Fatal("expected generated vehicles")
	}
	for _, ev := range events {
		if ev.Category != CategoryPriority {
			t.Fatalf("vehicle %d category = %s, want priority with share 1.0", ev.VehicleID, ev.Category)
		}
	}
	onPriority := 0
	for _, ev := range events {
		if ev.Lane.IsPriority() {
			onPriority++
		}
	}
	if onPriority == 0 {
		t.Error("expected priority vehicles on the priority lane")
	}
}

func TestRegularVehiclesNeverUsePriorityLane(t *testing.T) {
	p := testParams()
	p.PriorityShare = 0

	e := mustEngine(t, p, layout.ForVariant("C", p), 5)
	if _, err := e.Run(p.Steps()); err != nil {
		t.Fatal(err)
	}
	for _, ev := range e.Events() {
		if ev.Lane.IsPriority() {
			t.Fatalf("regular vehicle %d assigned to the priority lane", ev.VehicleID)
		}
	}
}

func TestSignalScenario(t *testing.T) {
	// Corridor of 5 km with one signal at 2.5 km, two regular lanes,
	// saturated steady demand, no diversion. The run must complete vehicles,
	// reproduce exactly under the same seed, and show congestion forming.
	p := testParams()
	p.RoadLengthKm = 5.0
	p.SideRoadPositions = []float64{2.5}
	p.DurationS = 600

	run := func() *Engine {
		e := mustEngine(t, p, layout.ForVariant("", p), 99)
		if _, err := e.Run(p.Steps()); err != nil {
			t.Fatal(err)
		}
		return e
	}

	e := run()
	if e.CompletedCount() == 0 {
		t.Error("expected a nonzero completed-vehicle count")
	}

	maxJam := 0.0
	for _, jam := range e.Series().CongestionLengthsKm {
		if jam > maxJam {
			maxJam = jam
		}
	}
	if maxJam == 0 {
		t.Error("expected congestion to form behind the red phases")
	}

	again := run()
	if e.CompletedCount() != again.CompletedCount() {
		t.Errorf("completed counts differ across identical runs: %d vs %d",
			e.CompletedCount(), again.CompletedCount())
	}
	if !reflect.DeepEqual(e.Events(), again.Events()) {
		t.Error("event logs differ across identical runs")
	}
}

func TestAccountingInvariant(t *testing.T) {
	p := testParams()
	e := mustEngine(t, p, layout.ForVariant("A", p), 11)
	summary, err := e.Run(p.Steps())
	if err != nil {
		t.Fatal(err)
	}

	generated := map[int]bool{}
	for _, ev := range e.Events() {
		generated[ev.VehicleID] = true
	}
	total := summary.CompletedVehicles + summary.ActiveVehicles + summary.QueuedVehicles
	if total != len(generated) {
		t.Errorf("completed+active+queued = %d, want %d generated vehicles", total, len(generated))
	}
}
