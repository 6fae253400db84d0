package metrics

import "strconv"

// UtilizationInput carries the admission counts and capacities the lane
// utilization calculation needs. Counts come from the accumulated admission
// event log, computed once at run end.
type UtilizationInput struct {
	// RegularLaneCounts[i] is the number of admissions onto regular lane i
	// over the whole run (initial admissions and queue releases).
	RegularLaneCounts []int
	// PriorityLaneCount is the number of admissions onto the priority lane.
	PriorityLaneCount int
	HasPriorityLane   bool
	RoadLengthKm      float64
	// LaneCapacity is the nominal per-km capacity of a regular lane.
	LaneCapacity int
	// PriorityLaneCapacity is the derived capacity of the priority lane.
	PriorityLaneCapacity int
}

// LaneUsage is the realized throughput of a single lane.
type LaneUsage struct {
	Lane            string  `json:"lane"`
	Type            string  `json:"type"` // "regular" or "priority"
	VehicleCount    int     `json:"vehicle_count"`
	DensityPerKm    float64 `json:"density_per_km"`
	NominalCapacity int     `json:"nominal_capacity"`
	UtilizationPct  float64 `json:"utilization_pct"`
}

// Utilization is the per-lane table plus the regular-lane aggregate.
type Utilization struct {
	Lanes                    []LaneUsage `json:"lanes"`
	AvgRegularDensityPerKm   float64     `json:"avg_regular_density_per_km"`
	AvgRegularUtilizationPct float64     `json:"avg_regular_utilization_pct"`
}

// LaneUtilization computes realized throughput density per lane (admissions
// over corridor length) and relates it to nominal capacity.
func LaneUtilization(in UtilizationInput) Utilization {
	var out Utilization
	if in.RoadLengthKm <= 0 {
		return out
	}

	regularTotal := 0
	for i, count := range in.RegularLaneCounts {
		density := float64(count) / in.RoadLengthKm
		pct := 0.0
		if in.LaneCapacity > 0 {
			pct = density / float64(in.LaneCapacity) * 100
		}
		out.Lanes = append(out.Lanes, LaneUsage{
			Lane:            laneName(i),
			Type:            "regular",
			VehicleCount:    count,
			DensityPerKm:    density,
			NominalCapacity: in.LaneCapacity,
			UtilizationPct:  pct,
		})
		regularTotal += count
	}

	if in.HasPriorityLane {
		density := float64(in.PriorityLaneCount) / in.RoadLengthKm
		pct := 0.0
		if in.PriorityLaneCapacity > 0 {
			pct = density / float64(in.PriorityLaneCapacity) * 100
		}
		out.Lanes = append(out.Lanes, LaneUsage{
			Lane:            "priority",
			Type:            "priority",
			VehicleCount:    in.PriorityLaneCount,
			DensityPerKm:    density,
			NominalCapacity: in.PriorityLaneCapacity,
			UtilizationPct:  pct,
		})
	}

	if n := len(in.RegularLaneCounts); n > 0 {
		out.AvgRegularDensityPerKm = float64(regularTotal) / float64(n) / in.RoadLengthKm
		if in.LaneCapacity > 0 {
			out.AvgRegularUtilizationPct = out.AvgRegularDensityPerKm / float64(in.LaneCapacity) * 100
		}
	}

	return out
}

func laneName(i int) string {
	return "lane_" + strconv.Itoa(i)
}
