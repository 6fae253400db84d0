package metrics

// Relative weight of travel-time gain versus realized-speed gain in the
// priority-lane efficiency score. Fixed design constants, not configurable.
const (
	efficiencyTimeWeight  = 0.7
	efficiencySpeedWeight = 0.3
)

const secondsPerHour = 3600.0

// Completion is the terminal record of one vehicle, as needed by the
// efficiency and summary calculations.
type Completion struct {
	Priority     bool
	TravelTimeS  float64
	DistanceKm   float64
	WaitingTimeS float64
}

// PriorityLaneEfficiency scores how much the priority lane helps priority
// vehicles, in percent. It is 0 when the layout has no priority lane or when
// completions of either category are missing.
//
// Time efficiency compares mean travel times; speed efficiency compares mean
// realized speeds (distance over travel time). When both are computable the
// score blends them 0.7/0.3; when realized speeds are unavailable the time
// efficiency is returned alone, unweighted.
func PriorityLaneEfficiency(completions []Completion, hasPriorityLane bool) float64 {
	if !hasPriorityLane {
		return 0
	}

	var (
		priorityTimes, regularTimes   []float64
		prioritySpeeds, regularSpeeds []float64
	)
	for _, c := range completions {
		if c.Priority {
			priorityTimes = append(priorityTimes, c.TravelTimeS)
		} else {
			regularTimes = append(regularTimes, c.TravelTimeS)
		}
		if c.TravelTimeS > 0 {
			speed := c.DistanceKm / c.TravelTimeS * secondsPerHour
			if c.Priority {
				prioritySpeeds = append(prioritySpeeds, speed)
			} else {
				regularSpeeds = append(regularSpeeds, speed)
			}
		}
	}

	if len(priorityTimes) == 0 || len(regularTimes) == 0 {
		return 0
	}

	meanPriorityTime := mean(priorityTimes)
	meanRegularTime := mean(regularTimes)
	if meanRegularTime <= 0 {
		return 0
	}
	timeEfficiency := max0((meanRegularTime - meanPriorityTime) / meanRegularTime * 100)

	if len(prioritySpeeds) == 0 || len(regularSpeeds) == 0 {
		return timeEfficiency
	}
	meanRegularSpeed := mean(regularSpeeds)
	if meanRegularSpeed <= 0 {
		return timeEfficiency
	}
	speedEfficiency := max0((mean(prioritySpeeds) - meanRegularSpeed) / meanRegularSpeed * 100)

	return timeEfficiency*efficiencyTimeWeight + speedEfficiency*efficiencySpeedWeight
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
