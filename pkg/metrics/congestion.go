// Package metrics derives congestion, efficiency, and utilization figures
// from recorded simulation state. Every function is a pure computation over
// value records; the engine feeds it snapshots and the exporter feeds it the
// accumulated event log.
package metrics

import "sort"

const (
	// SlowTrafficThresholdKmh is the speed below which a vehicle counts as
	// part of a jam.
	SlowTrafficThresholdKmh = 10.0
	// JamGapKm is the largest gap between successive slow vehicles that
	// still merges them into one contiguous jam segment.
	JamGapKm = 0.050
)

// VehicleState is the per-vehicle snapshot congestion measurement works on.
type VehicleState struct {
	PositionKm  float64
	SpeedKmh    float64
	FootprintKm float64
}

// CongestionLength returns the length (km) of the longest contiguous span of
// slow-moving vehicles. Vehicles closer together than JamGapKm merge into one
// segment whose length is the sum of their footprints; the result is the
// longest segment, 0 if no vehicle is slow.
func CongestionLength(states []VehicleState) float64 {
	slow := make([]VehicleState, 0, len(states))
	for _, s := range states {
		if s.SpeedKmh < SlowTrafficThresholdKmh {
			slow = append(slow, s)
		}
	}
	if len(slow) == 0 {
		return 0
	}

	sort.Slice(slow, func(i, j int) bool { return slow[i].PositionKm < slow[j].PositionKm })

	longest := 0.0
	current := 0.0
	for i, s := range slow {
		if i == 0 {
			current = s.FootprintKm
			continue
		}
		gap := s.PositionKm - slow[i-1].PositionKm
		if gap < JamGapKm {
			current += s.FootprintKm
		} else {
			if current > longest {
				longest = current
			}
			current = s.FootprintKm
		}
	}
	if current > longest {
		longest = current
	}
	return longest
}
