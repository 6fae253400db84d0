package params

// Range is an inclusive [Min, Max] interval sampled during vehicle generation.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Mean returns the midpoint of the range.
func (r Range) Mean() float64 {
	return (r.Min + r.Max) / 2
}

// Parameters holds every per-run input of the simulation. Values are fixed
// for the lifetime of a run; ranges are resampled per generation event.
type Parameters struct {
	// Demand, vehicles per hour arriving at the corridor entrance.
	TrafficIntensity Range `yaml:"traffic_intensity" json:"traffic_intensity"`
	// Probability range that a generated vehicle diverts onto a side road.
	DiversionRate Range `yaml:"diversion_rate" json:"diversion_rate"`
	// Probability that a generated vehicle is priority category (e.g. a bus).
	PriorityShare float64 `yaml:"priority_share" json:"priority_share"`

	// Corridor geometry and nominal capacity.
	RoadLengthKm float64 `yaml:"road_length_km" json:"road_length_km"`
	LaneCapacity int     `yaml:"lane_capacity" json:"lane_capacity"`

	// Signal timing defaults; a layout may override the cycle.
	SignalCycleS  float64 `yaml:"signal_cycle_s" json:"signal_cycle_s"`
	GreenDuration Range   `yaml:"green_duration_s" json:"green_duration_s"`

	// Run duration and step size, both in seconds.
	DurationS float64 `yaml:"duration_s" json:"duration_s"`
	TimeStepS float64 `yaml:"time_step_s" json:"time_step_s"`

	// Positions (km from the corridor start) where side roads branch off.
	// Diverting vehicles exit at one of these, chosen uniformly at random.
	SideRoadPositions []float64 `yaml:"side_road_positions" json:"side_road_positions"`
}

// Default returns the baseline parameter set used by the variant studies.
func Default() Parameters {
	return Parameters{
		TrafficIntensity:  Range{Min: 500, Max: 1500},
		DiversionRate:     Range{Min: 0.05, Max: 0.20},
		PriorityShare:     0.05,
		RoadLengthKm:      1.0,
		LaneCapacity:      75,
		SignalCycleS:      67.5,
		GreenDuration:     Range{Min: 45, Max: 90},
		DurationS:         3600,
		TimeStepS:         1,
		SideRoadPositions: []float64{0.5},
	}
}

// Steps returns the number of whole timesteps in a full run.
func (p Parameters) Steps() int {
	if p.TimeStepS <= 0 {
		return 0
	}
	return int(p.DurationS / p.TimeStepS)
}
