package sim

// EventAction identifies what happened to a vehicle at an event-log entry.
type EventAction string

const (
	// ActionEntered: admitted directly onto the corridor at generation time.
	ActionEntered EventAction = "entered"
	// ActionQueued: admission failed, vehicle appended to the entry queue.
	ActionQueued EventAction = "queued"
	// ActionEnteredFromQueue: released from the entry queue onto the corridor.
	ActionEnteredFromQueue EventAction = "entered_from_queue"
	// ActionDiverted: completed by exiting onto a side road.
	ActionDiverted EventAction = "diverted"
	// ActionExited: completed by reaching the corridor end.
	ActionExited EventAction = "exited"
)

// VehicleEvent is a full attribute snapshot of one vehicle at the moment of
// an admission, queue, or departure event.
type VehicleEvent struct {
	TimeS     float64
	Action    EventAction
	VehicleID int
	Category  Category
	Lane      Lane

	PositionKm   float64
	SpeedKmh     float64
	TravelTimeS  float64
	WaitingTimeS float64

	WillDivert          bool
	DiversionPositionKm float64
}

// TimeSeries is the per-step telemetry record. All slices share one index:
// entry i describes the corridor at the end of step i.
type TimeSeries struct {
	TimesS                []float64
	ActiveVehicles        []int
	MeanSpeedsKmh         []float64
	CongestionLengthsKm   []float64
	SignalPhases          [][]Phase
	PriorityLaneOccupancy []int
	QueueDepths           []int
}

// Len returns the number of captured steps.
func (ts *TimeSeries) Len() int {
	return len(ts.TimesS)
}
