// Package export is the persistence adapter: it serializes a finished run
// into a set of CSV tables for downstream reporting tools. The write is
// all-or-nothing; a failure leaves no partial output and the in-memory run
// record stays valid.
package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/layout"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/metrics"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/sim"
)

// Run is the complete record of one finished simulation, in the shape the
// adapter persists: per-step time series, per-vehicle event log, resolved
// configuration, and derived lane utilization.
type Run struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Params    params.Parameters   `json:"params"`
	Layout    layout.RoadLayout   `json:"layout"`
	Seed      int64               `json:"seed"`

	PriorityLaneCapacity int    `json:"priority_lane_capacity"`
	Description          string `json:"description"`

	Series      *sim.TimeSeries       `json:"-"`
	Events      []sim.VehicleEvent    `json:"-"`
	Signals     []sim.Signal          `json:"-"`
	Statistics  metrics.RunStatistics `json:"statistics"`
	Utilization metrics.Utilization   `json:"utilization"`
}

// Snapshot collects everything the adapter persists from a finished engine.
// An empty id gets a generated one.
func Snapshot(e *sim.Engine, id string) Run {
	if id == "" {
		id = "simulation_raw_" + uuid.NewString()
	}
	return Run{
		ID:                   id,
		CreatedAt:            time.Now().UTC(),
		Params:               e.Params(),
		Layout:               e.Layout(),
		Seed:                 e.Seed(),
		PriorityLaneCapacity: e.PriorityLaneCapacity(),
		Description:          e.Description(),
		Series:               e.Series(),
		Events:               e.Events(),
		Signals:              e.Signals(),
		Statistics:           e.Statistics(),
		Utilization:          e.Utilization(),
	}
}
