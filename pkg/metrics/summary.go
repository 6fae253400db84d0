package metrics

// RunStatistics is the end-of-run summary derived from the completed-vehicle
// list and the final active snapshot. Empty inputs yield a zeroed record.
type RunStatistics struct {
	CompletedVehicles      int     `json:"completed_vehicles"`
	MeanTravelTimeS        float64 `json:"mean_travel_time_s"`
	MeanSpeedKmh           float64 `json:"mean_speed_kmh"`
	MeanWaitingTimeS       float64 `json:"mean_waiting_time_s"`
	CongestionLengthKm     float64 `json:"congestion_length_km"`
	PriorityLaneEfficiency float64 `json:"priority_lane_efficiency"`
}

// Summarize computes the final statistics for a run. The congestion length
// reflects the state of the corridor at the moment of the call.
func Summarize(completions []Completion, active []VehicleState, hasPriorityLane bool) RunStatistics {
	stats := RunStatistics{
		CompletedVehicles:      len(completions),
		CongestionLengthKm:     CongestionLength(active),
		PriorityLaneEfficiency: PriorityLaneEfficiency(completions, hasPriorityLane),
	}
	if len(completions) == 0 {
		return stats
	}

	var travelTimes, waitingTimes, speeds []float64
	for _, c := range completions {
		travelTimes = append(travelTimes, c.TravelTimeS)
		waitingTimes = append(waitingTimes, c.WaitingTimeS)
		if c.TravelTimeS > 0 {
			speeds = append(speeds, c.DistanceKm/c.TravelTimeS*secondsPerHour)
		}
	}
	stats.MeanTravelTimeS = mean(travelTimes)
	stats.MeanWaitingTimeS = mean(waitingTimes)
	stats.MeanSpeedKmh = mean(speeds)
	return stats
}
