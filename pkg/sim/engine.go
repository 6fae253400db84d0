// Package sim implements the discrete-time corridor traffic engine.
//
// The simulation advances in fixed timesteps. Each step runs a fixed
// protocol: release queued vehicles in FIFO order, generate new demand from
// a Poisson process, update the signal phase machines, move every active
// vehicle, capture telemetry, and advance the clock. The order is fixed so
// that two runs with the same seed and parameters are bit-for-bit
// reproducible.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/layout"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/metrics"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
)

// ErrNoRegularLane is reported when vehicle generation needs a regular lane
// and the layout has none. It is a configuration error detected lazily, at
// the first generation attempt that cannot be satisfied, and aborts the run.
var ErrNoRegularLane = errors.New("layout has no regular lane for this vehicle")

// Engine owns all live state of one run: the active vehicle collection, the
// entry queue, the signals, and the accumulated telemetry. It is exclusively
// owned by its caller for the run's lifetime; independent engines may run in
// parallel, a single engine may not.
type Engine struct {
	params params.Parameters
	layout layout.RoadLayout
	seed   int64
	rng    *rand.Rand

	nowS   float64
	nextID int

	active    []*Vehicle
	completed []*Vehicle
	queue     []*Vehicle
	signals   []*Signal

	series TimeSeries
	events []VehicleEvent

	priorityCapacity int
	capacityCeiling  int
}

// Summary is the result record of a full run.
type Summary struct {
	CompletedVehicles int           `json:"completed_vehicles"`
	ActiveVehicles    int           `json:"active_vehicles"`
	QueuedVehicles    int           `json:"queued_vehicles"`
	DataPoints        int           `json:"data_points"`
	ExecutionTime     time.Duration `json:"execution_time_ns"`
	Config            string        `json:"config"`
}

// PriorityLaneCapacityFor derives the priority lane's capacity from corridor
// geometry: how many bus footprints fit on the lane, at least 1 when the
// lane exists, 0 otherwise. Never a free parameter.
func PriorityLaneCapacityFor(l layout.RoadLayout, roadLengthKm float64) int {
	if !l.HasPriorityLane {
		return 0
	}
	capacity := int(roadLengthKm / BusFootprintKm)
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// New constructs a ready-to-step engine for the given parameters and layout.
// Construction fails on any schema or layout validation error.
func New(p params.Parameters, l layout.RoadLayout, seed int64) (*Engine, error) {
	report := p.Validate()
	report.Merge(l.Validate(p))
	if err := report.Err(); err != nil {
		return nil, err
	}

	cycle := l.CycleDuration(p)
	signals := make([]*Signal, 0, len(l.SignalPositions))
	for _, pos := range l.SignalPositions {
		signals = append(signals, &Signal{
			PositionKm:     pos,
			CycleDurationS: cycle,
			GreenDurationS: cycle * l.GreenRatio,
			CurrentPhase:   PhaseGreen,
		})
	}

	priorityCapacity := PriorityLaneCapacityFor(l, p.RoadLengthKm)

	return &Engine{
		params:           p,
		layout:           l,
		seed:             seed,
		rng:              rand.New(rand.NewSource(seed)),
		nextID:           1,
		signals:          signals,
		priorityCapacity: priorityCapacity,
		capacityCeiling:  l.RegularLanes*p.LaneCapacity + priorityCapacity,
	}, nil
}

// NewVariant constructs an engine for a named catalog variant.
func NewVariant(variantID string, p params.Parameters, seed int64) (*Engine, error) {
	return New(p, layout.ForVariant(variantID, p), seed)
}

// Step advances the simulation by one timestep. The only possible error is
// the lazy fatal configuration error from vehicle generation.
func (e *Engine) Step() error {
	e.releaseQueue()
	if err := e.generateDemand(); err != nil {
		return fmt.Errorf("at t=%.1fs: %w", e.nowS, err)
	}
	for _, s := range e.signals {
		s.Update(e.nowS)
	}
	e.moveVehicles()
	e.capture()
	e.nowS += e.params.TimeStepS
	return nil
}

// Run executes the given number of steps and returns the run summary.
func (e *Engine) Run(steps int) (Summary, error) {
	start := time.Now()
	progressEvery := steps / 10

	for i := 0; i < steps; i++ {
		if err := e.Step(); err != nil {
			return Summary{}, err
		}
		if progressEvery > 0 && i%progressEvery == 0 {
			log.WithFields(log.Fields{
				"progress": fmt.Sprintf("%.0f%%", float64(i)/float64(steps)*100),
				"active":   len(e.active),
				"queued":   len(e.queue),
			}).Info("simulation progress")
		}
	}

	if len(e.queue) > 0 {
		log.Warnf("%d vehicles never entered the corridor and remain queued", len(e.queue))
	}

	return Summary{
		CompletedVehicles: len(e.completed),
		ActiveVehicles:    len(e.active),
		QueuedVehicles:    len(e.queue),
		DataPoints:        e.series.Len(),
		ExecutionTime:     time.Since(start),
		Config:            e.Description(),
	}, nil
}

// releaseQueue attempts admission for queued vehicles in FIFO order, onto
// each vehicle's already-assigned lane. The first failure stops the scan: a
// stuck head blocks the whole queue, as a physical queue would.
func (e *Engine) releaseQueue() {
	released := 0
	for _, v := range e.queue {
		if len(e.active) >= e.capacityCeiling || !e.canEnter(v) {
			break
		}
		v.EntryTimeS = e.nowS
		e.active = append(e.active, v)
		e.recordEvent(v, ActionEnteredFromQueue)
		released++
	}
	e.queue = e.queue[released:]
}

// generateDemand draws this step's arrival count from the Poisson process
// and admits or enqueues each new vehicle.
func (e *Engine) generateDemand() error {
	lambda := e.params.TrafficIntensity.Mean() / secondsPerHour
	count := e.poisson(lambda)

	for i := 0; i < count; i++ {
		v, err := e.newVehicle()
		if err != nil {
			return err
		}
		if len(e.active) < e.capacityCeiling && e.canEnter(v) {
			e.active = append(e.active, v)
			e.recordEvent(v, ActionEntered)
		} else {
			e.queue = append(e.queue, v)
			e.recordEvent(v, ActionQueued)
		}
	}
	return nil
}

// newVehicle draws one arrival. Draw order is fixed (category, diversion
// rate, diversion flag, diversion position, lane) so that runs with the same
// seed reproduce the exact generation sequence.
func (e *Engine) newVehicle() (*Vehicle, error) {
	category := CategoryRegular
	if e.rng.Float64() < e.params.PriorityShare {
		category = CategoryPriority
	}

	rate := e.params.DiversionRate.Min +
		e.rng.Float64()*(e.params.DiversionRate.Max-e.params.DiversionRate.Min)
	willDivert := e.rng.Float64() < rate
	diversionPos := 0.0
	if willDivert {
		positions := e.params.SideRoadPositions
		if len(positions) == 0 {
			willDivert = false
		} else {
			diversionPos = positions[e.rng.Intn(len(positions))]
		}
	}

	lane, err := e.assignLane(category)
	if err != nil {
		return nil, err
	}

	v := &Vehicle{
		ID:                  e.nextID,
		Category:            category,
		EntryTimeS:          e.nowS,
		Lane:                lane,
		WillDivert:          willDivert,
		DiversionPositionKm: diversionPos,
	}
	e.nextID++
	return v, nil
}

// assignLane places a new vehicle: priority vehicles take the priority lane
// while it has headroom, then fall back to a random regular lane; regular
// vehicles always take a random regular lane.
func (e *Engine) assignLane(category Category) (Lane, error) {
	if category == CategoryPriority && e.layout.HasPriorityLane {
		if e.priorityLaneCount() < e.priorityCapacity {
			return PriorityLane(), nil
		}
		if e.layout.RegularLanes > 0 {
			return RegularLane(e.rng.Intn(e.layout.RegularLanes)), nil
		}
		return Lane{}, fmt.Errorf("priority lane full (%d/%d): %w",
			e.priorityLaneCount(), e.priorityCapacity, ErrNoRegularLane)
	}

	if e.layout.RegularLanes > 0 {
		return RegularLane(e.rng.Intn(e.layout.RegularLanes)), nil
	}
	return Lane{}, fmt.Errorf("%s vehicle cannot use the priority lane: %w",
		category, ErrNoRegularLane)
}

// canEnter checks admission onto the vehicle's assigned lane: the occupied
// space on that lane within the initial segment (corridor start up to the
// nearest signal, or the full corridor without signals) plus the candidate's
// footprint must fit in the segment.
func (e *Engine) canEnter(v *Vehicle) bool {
	segmentEnd := e.params.RoadLengthKm
	for _, s := range e.signals {
		if s.PositionKm < segmentEnd {
			segmentEnd = s.PositionKm
		}
	}

	occupied := 0.0
	for _, other := range e.active {
		if other.Lane == v.Lane && other.PositionKm <= segmentEnd {
			occupied += other.Footprint()
		}
	}
	return occupied+v.Footprint() <= segmentEnd
}

// moveVehicles applies the motion update to every active vehicle and moves
// finished vehicles to the completed list. Diversion takes precedence over
// the corridor-end check; a vehicle completes at most once.
func (e *Engine) moveVehicles() {
	keep := make([]*Vehicle, 0, len(e.active))
	for _, v := range e.active {
		v.SpeedKmh = e.vehicleSpeed(v)
		if v.SpeedKmh == 0 {
			v.WaitingTimeS += e.params.TimeStepS
		}
		v.PositionKm += v.SpeedKmh * (e.params.TimeStepS / secondsPerHour)

		switch {
		case v.WillDivert && v.PositionKm >= v.DiversionPositionKm:
			e.complete(v, ActionDiverted)
		case v.PositionKm >= e.params.RoadLengthKm:
			e.complete(v, ActionExited)
		default:
			keep = append(keep, v)
		}
	}
	e.active = keep
}

// vehicleSpeed computes the current speed: zero when stopped behind a red
// signal, otherwise the free-flow speed scaled down by the density of
// vehicles ahead in the same lane, with the priority lane's interference
// bonus applied last.
func (e *Engine) vehicleSpeed(v *Vehicle) float64 {
	for _, s := range e.signals {
		dist := s.PositionKm - v.PositionKm
		if dist > 0 && dist < signalStoppingDistanceKm && s.CurrentPhase == PhaseRed {
			return 0
		}
	}

	ahead := 0
	for _, other := range e.active {
		if other == v || other.Lane != v.Lane {
			continue
		}
		gap := other.PositionKm - v.PositionKm
		if gap > 0 && gap < detectionDistanceKm {
			ahead++
		}
	}

	factor := 1.0 - float64(ahead)*densityReductionRate
	if factor < minDensityFactor {
		factor = minDensityFactor
	}
	speed := BaseSpeedKmh * factor

	if v.Lane.IsPriority() {
		speed = math.Min(speed*priorityLaneSpeedFactor, BaseSpeedKmh)
	}
	return speed
}

func (e *Engine) complete(v *Vehicle, action EventAction) {
	v.TravelTimeS = e.nowS - v.EntryTimeS
	e.recordEvent(v, action)
	e.completed = append(e.completed, v)
}

// capture appends the current corridor state to the time series.
func (e *Engine) capture() {
	ts := &e.series
	ts.TimesS = append(ts.TimesS, e.nowS)
	ts.ActiveVehicles = append(ts.ActiveVehicles, len(e.active))

	meanSpeed := 0.0
	if len(e.active) > 0 {
		for _, v := range e.active {
			meanSpeed += v.SpeedKmh
		}
		meanSpeed /= float64(len(e.active))
	}
	ts.MeanSpeedsKmh = append(ts.MeanSpeedsKmh, meanSpeed)

	ts.CongestionLengthsKm = append(ts.CongestionLengthsKm, metrics.CongestionLength(e.ActiveStates()))

	phases := make([]Phase, len(e.signals))
	for i, s := range e.signals {
		phases[i] = s.CurrentPhase
	}
	ts.SignalPhases = append(ts.SignalPhases, phases)

	ts.PriorityLaneOccupancy = append(ts.PriorityLaneOccupancy, e.priorityLaneCount())
	ts.QueueDepths = append(ts.QueueDepths, len(e.queue))
}

func (e *Engine) recordEvent(v *Vehicle, action EventAction) {
	e.events = append(e.events, VehicleEvent{
		TimeS:               e.nowS,
		Action:              action,
		VehicleID:           v.ID,
		Category:            v.Category,
		Lane:                v.Lane,
		PositionKm:          v.PositionKm,
		SpeedKmh:            v.SpeedKmh,
		TravelTimeS:         v.TravelTimeS,
		WaitingTimeS:        v.WaitingTimeS,
		WillDivert:          v.WillDivert,
		DiversionPositionKm: v.DiversionPositionKm,
	})
}

func (e *Engine) priorityLaneCount() int {
	count := 0
	for _, v := range e.active {
		if v.Lane.IsPriority() {
			count++
		}
	}
	return count
}

// poisson draws from a Poisson distribution with the given mean using
// Knuth's multiplication method; fine for the small per-second arrival
// rates this engine works with.
func (e *Engine) poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= e.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}
