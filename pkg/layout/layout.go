package layout

import (
	"fmt"
	"strings"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
)

// RoadLayout is the immutable infrastructure description for one run:
// how many regular lanes the corridor has, whether a dedicated priority
// (bus) lane exists, where the signals stand, and how their timing splits.
type RoadLayout struct {
	RegularLanes    int       `json:"regular_lanes"`
	HasPriorityLane bool      `json:"has_priority_lane"`
	SignalPositions []float64 `json:"signal_positions"`
	GreenRatio      float64   `json:"green_ratio"`
	// CycleOverrideS replaces the parameter default cycle when > 0.
	CycleOverrideS float64 `json:"cycle_override_s,omitempty"`
}

// CycleDuration resolves the signal cycle for this layout: the explicit
// override if set, otherwise the parameter default.
func (l RoadLayout) CycleDuration(p params.Parameters) float64 {
	if l.CycleOverrideS > 0 {
		return l.CycleOverrideS
	}
	return p.SignalCycleS
}

// Description returns the long human-readable configuration summary used in
// reports and exported config records.
func (l RoadLayout) Description(p params.Parameters) string {
	var parts []string

	if l.HasPriorityLane {
		parts = append(parts, fmt.Sprintf("%d regular lanes + priority lane", l.RegularLanes))
	} else {
		parts = append(parts, fmt.Sprintf("%d regular lanes", l.RegularLanes))
	}

	parts = append(parts, fmt.Sprintf("signals at km %v", l.SignalPositions))
	parts = append(parts, fmt.Sprintf("green %.0f%% of cycle", l.GreenRatio*100))
	parts = append(parts, fmt.Sprintf("cycle %.0fs", l.CycleDuration(p)))

	return strings.Join(parts, " | ")
}

// ShortDescription returns the compact label used in comparison tables,
// e.g. "3L+P, 1S" for three regular lanes, a priority lane, and one signal.
func (l RoadLayout) ShortDescription() string {
	if l.HasPriorityLane {
		return fmt.Sprintf("%dL+P, %dS", l.RegularLanes, len(l.SignalPositions))
	}
	return fmt.Sprintf("%dL, %dS", l.RegularLanes, len(l.SignalPositions))
}
