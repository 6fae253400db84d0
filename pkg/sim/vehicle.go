package sim

// Category distinguishes regular traffic from priority vehicles (buses and
// other transit allowed on the priority lane).
type Category string

const (
	CategoryRegular  Category = "regular"
	CategoryPriority Category = "priority"
)

// Vehicle is a single simulated vehicle. It is created at admission time,
// mutated every step by the motion update, and moved to the completed list
// when it leaves the corridor. IDs are assigned monotonically and never
// reused.
type Vehicle struct {
	ID       int
	Category Category

	// EntryTimeS is the simulation time the vehicle entered the corridor.
	// For a queued vehicle it is reset when the vehicle is released.
	EntryTimeS float64

	PositionKm float64
	SpeedKmh   float64
	Lane       Lane

	// WillDivert is fixed at creation; DiversionPositionKm is meaningful
	// only when WillDivert is true.
	WillDivert          bool
	DiversionPositionKm float64

	WaitingTimeS float64
	// TravelTimeS is set exactly once, at completion.
	TravelTimeS float64
}

// Footprint returns the linear road space the vehicle occupies, in km.
func (v *Vehicle) Footprint() float64 {
	if v.Category == CategoryPriority {
		return BusFootprintKm
	}
	return CarFootprintKm
}
