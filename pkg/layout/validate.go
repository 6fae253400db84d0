package layout

import (
	"fmt"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/validation"
)

// Validate checks a layout against the run parameters. A layout that admits
// no vehicles at all (no regular lanes and no priority lane) is a fatal
// configuration error; a layout that admits only priority vehicles is legal
// here and fails lazily at the first regular-vehicle generation.
func (l RoadLayout) Validate(p params.Parameters) *validation.Report {
	r := validation.NewReport()

	if l.RegularLanes < 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelLayout,
			Message:     "regular lane count cannot be negative",
			Field:       "regular_lanes",
			ActualValue: l.RegularLanes,
			Expected:    ">= 0",
		})
	}

	if l.RegularLanes == 0 && !l.HasPriorityLane {
		r.AddError(validation.Result{
			Level:       validation.LevelLayout,
			Message:     "layout has no lanes: capacity ceiling is zero",
			Field:       "regular_lanes",
			ActualValue: l.RegularLanes,
			Expected:    "at least one regular lane or a priority lane",
			Suggestions: []string{"add a regular lane", "enable the priority lane"},
		})
	}

	if l.RegularLanes == 0 && l.HasPriorityLane {
		r.AddWarning(validation.Result{
			Level:   validation.LevelLayout,
			Message: "priority-lane-only layout: any regular vehicle generated will abort the run",
			Field:   "regular_lanes",
		})
	}

	if l.GreenRatio <= 0 || l.GreenRatio > 1 {
		r.AddError(validation.Result{
			Level:       validation.LevelLayout,
			Message:     "green ratio must be a fraction of the cycle",
			Field:       "green_ratio",
			ActualValue: l.GreenRatio,
			Expected:    "0.0 < ratio <= 1.0",
		})
	}

	if l.CycleOverrideS < 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelLayout,
			Message:     "cycle override cannot be negative",
			Field:       "cycle_override_s",
			ActualValue: l.CycleOverrideS,
			Expected:    ">= 0 (0 uses the parameter default)",
		})
	}

	for i, pos := range l.SignalPositions {
		if pos <= 0 || pos >= p.RoadLengthKm {
			r.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     "signal position must lie strictly inside the corridor",
				Field:       fmt.Sprintf("signal_positions[%d]", i),
				ActualValue: pos,
				Expected:    fmt.Sprintf("0 < position < %v", p.RoadLengthKm),
			})
		}
	}

	return r
}
