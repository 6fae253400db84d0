package sim

import (
	"fmt"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/layout"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/metrics"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
)

// Accessors for the metrics calculator, the persistence adapter, and the
// viewer. All return copies or derived values; engine state stays private.

// Params returns the run parameters.
func (e *Engine) Params() params.Parameters { return e.params }

// Layout returns the road layout.
func (e *Engine) Layout() layout.RoadLayout { return e.layout }

// Seed returns the RNG seed the engine was constructed with.
func (e *Engine) Seed() int64 { return e.seed }

// Now returns the current simulation time in seconds.
func (e *Engine) Now() float64 { return e.nowS }

// ActiveCount returns the number of vehicles currently on the corridor.
func (e *Engine) ActiveCount() int { return len(e.active) }

// QueueDepth returns the number of vehicles waiting to enter.
func (e *Engine) QueueDepth() int { return len(e.queue) }

// CompletedCount returns the number of vehicles that finished their trip.
func (e *Engine) CompletedCount() int { return len(e.completed) }

// PriorityLaneCapacity returns the derived capacity of the priority lane,
// 0 when the layout has none.
func (e *Engine) PriorityLaneCapacity() int { return e.priorityCapacity }

// CapacityCeiling returns the layout-wide active-vehicle ceiling.
func (e *Engine) CapacityCeiling() int { return e.capacityCeiling }

// Series returns the accumulated per-step telemetry.
func (e *Engine) Series() *TimeSeries { return &e.series }

// Events returns the accumulated per-vehicle event log.
func (e *Engine) Events() []VehicleEvent { return e.events }

// Signals returns a snapshot of the signal states.
func (e *Engine) Signals() []Signal {
	out := make([]Signal, len(e.signals))
	for i, s := range e.signals {
		out[i] = *s
	}
	return out
}

// Description returns the long configuration description, including the
// derived priority-lane capacity.
func (e *Engine) Description() string {
	desc := e.layout.Description(e.params)
	if e.layout.HasPriorityLane {
		desc += fmt.Sprintf(" | priority lane capacity %d", e.priorityCapacity)
	}
	return desc
}

// ActiveStates snapshots the active vehicles for congestion measurement.
func (e *Engine) ActiveStates() []metrics.VehicleState {
	states := make([]metrics.VehicleState, len(e.active))
	for i, v := range e.active {
		states[i] = metrics.VehicleState{
			PositionKm:  v.PositionKm,
			SpeedKmh:    v.SpeedKmh,
			FootprintKm: v.Footprint(),
		}
	}
	return states
}

// Completions converts the completed list into metric records. A diverted
// vehicle's distance is its diversion position; an exiting vehicle's is the
// corridor length.
func (e *Engine) Completions() []metrics.Completion {
	out := make([]metrics.Completion, len(e.completed))
	for i, v := range e.completed {
		distance := e.params.RoadLengthKm
		if v.WillDivert && v.DiversionPositionKm > 0 {
			distance = v.DiversionPositionKm
		}
		out[i] = metrics.Completion{
			Priority:     v.Category == CategoryPriority,
			TravelTimeS:  v.TravelTimeS,
			DistanceKm:   distance,
			WaitingTimeS: v.WaitingTimeS,
		}
	}
	return out
}

// Statistics computes the end-of-run summary statistics.
func (e *Engine) Statistics() metrics.RunStatistics {
	return metrics.Summarize(e.Completions(), e.ActiveStates(), e.layout.HasPriorityLane)
}

// UtilizationInput aggregates the admission event log for the lane
// utilization calculation.
func (e *Engine) UtilizationInput() metrics.UtilizationInput {
	in := metrics.UtilizationInput{
		RegularLaneCounts:    make([]int, e.layout.RegularLanes),
		HasPriorityLane:      e.layout.HasPriorityLane,
		RoadLengthKm:         e.params.RoadLengthKm,
		LaneCapacity:         e.params.LaneCapacity,
		PriorityLaneCapacity: e.priorityCapacity,
	}
	for _, ev := range e.events {
		if ev.Action != ActionEntered && ev.Action != ActionEnteredFromQueue {
			continue
		}
		if ev.Lane.IsPriority() {
			in.PriorityLaneCount++
		} else if ev.Lane.Index() < len(in.RegularLaneCounts) {
			in.RegularLaneCounts[ev.Lane.Index()]++
		}
	}
	return in
}

// Utilization computes the per-lane utilization table from the event log.
func (e *Engine) Utilization() metrics.Utilization {
	return metrics.LaneUtilization(e.UtilizationInput())
}
