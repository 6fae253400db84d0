package params

import (
	"fmt"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/validation"
)

// Validate performs schema-level checks on a parameter set.
// It checks structural correctness before any simulation is constructed.
func (p Parameters) Validate() *validation.Report {
	r := validation.NewReport()

	if p.RoadLengthKm <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "road length must be greater than 0",
			Field:       "road_length_km",
			ActualValue: p.RoadLengthKm,
			Expected:    "> 0",
		})
	}
	if p.TimeStepS <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "time step must be greater than 0",
			Field:       "time_step_s",
			ActualValue: p.TimeStepS,
			Expected:    "> 0",
		})
	}
	if p.DurationS < p.TimeStepS {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "run duration must cover at least one timestep",
			Field:       "duration_s",
			ActualValue: p.DurationS,
			Expected:    fmt.Sprintf(">= %v", p.TimeStepS),
		})
	}
	if p.LaneCapacity <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "nominal lane capacity must be greater than 0",
			Field:       "lane_capacity",
			ActualValue: p.LaneCapacity,
			Expected:    "> 0",
		})
	}
	if p.SignalCycleS <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "signal cycle must be greater than 0",
			Field:       "signal_cycle_s",
			ActualValue: p.SignalCycleS,
			Expected:    "> 0",
		})
	}

	validateRange(r, "traffic_intensity", p.TrafficIntensity, 0, -1)
	validateRange(r, "diversion_rate", p.DiversionRate, 0, 1)
	if p.GreenDuration.Min > 0 || p.GreenDuration.Max > 0 {
		validateRange(r, "green_duration_s", p.GreenDuration, 0, -1)
	}

	if p.PriorityShare < 0 || p.PriorityShare > 1 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "priority share must be a probability",
			Field:       "priority_share",
			ActualValue: p.PriorityShare,
			Expected:    "0.0 - 1.0",
		})
	}

	// Side roads must branch strictly inside the corridor. A diversion point
	// at the corridor end would be indistinguishable from a normal exit.
	for i, pos := range p.SideRoadPositions {
		if pos <= 0 || pos >= p.RoadLengthKm {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     "side road position must lie strictly inside the corridor",
				Field:       fmt.Sprintf("side_road_positions[%d]", i),
				ActualValue: pos,
				Expected:    fmt.Sprintf("0 < position < %v", p.RoadLengthKm),
			})
		}
	}

	return r
}

func validateRange(r *validation.Report, field string, rng Range, lo, hi float64) {
	if rng.Min > rng.Max {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "range minimum exceeds maximum",
			Field:       field,
			ActualValue: fmt.Sprintf("[%v, %v]", rng.Min, rng.Max),
			Expected:    "min <= max",
		})
	}
	if rng.Min < lo {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "range minimum out of bounds",
			Field:       field + ".min",
			ActualValue: rng.Min,
			Expected:    fmt.Sprintf(">= %v", lo),
		})
	}
	if hi >= 0 && rng.Max > hi {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "range maximum out of bounds",
			Field:       field + ".max",
			ActualValue: rng.Max,
			Expected:    fmt.Sprintf("<= %v", hi),
		})
	}
}
