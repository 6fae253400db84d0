package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Write persists the run as a directory of CSV tables under dir and returns
// the final run directory path. Tables are written into a staging directory
// first and renamed into place only after every table succeeds, so a failed
// write leaves nothing behind.
func Write(r Run, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	staging, err := os.MkdirTemp(dir, ".staging-")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}

	tables := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"timeseries.csv", r.writeTimeSeries},
		{"vehicles.csv", r.writeEvents},
		{"config.csv", r.writeConfig},
		{"lane_utilization.csv", r.writeUtilization},
		{"signals.csv", r.writeSignals},
	}

	for _, t := range tables {
		if err := writeTable(filepath.Join(staging, t.name), t.write); err != nil {
			os.RemoveAll(staging)
			return "", fmt.Errorf("writing %s: %w", t.name, err)
		}
	}

	final := filepath.Join(dir, r.ID)
	if err := os.Rename(staging, final); err != nil {
		os.RemoveAll(staging)
		return "", fmt.Errorf("publishing run directory: %w", err)
	}

	log.WithFields(log.Fields{"run": r.ID, "dir": final}).Info("run exported")
	return final, nil
}

func writeTable(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r Run) writeTimeSeries(w *csv.Writer) error {
	if err := w.Write([]string{
		"timestamp", "active_vehicles", "mean_speed_kmh", "congestion_length_km",
		"priority_lane_occupancy", "queue_depth",
	}); err != nil {
		return err
	}
	ts := r.Series
	for i := 0; i < ts.Len(); i++ {
		row := []string{
			ftoa(ts.TimesS[i]),
			strconv.Itoa(ts.ActiveVehicles[i]),
			ftoa(ts.MeanSpeedsKmh[i]),
			ftoa(ts.CongestionLengthsKm[i]),
			strconv.Itoa(ts.PriorityLaneOccupancy[i]),
			strconv.Itoa(ts.QueueDepths[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (r Run) writeEvents(w *csv.Writer) error {
	if err := w.Write([]string{
		"vehicle_id", "timestamp", "action", "category", "lane", "position_km",
		"speed_kmh", "travel_time_s", "waiting_time_s", "will_divert", "diversion_position_km",
	}); err != nil {
		return err
	}
	for _, ev := range r.Events {
		diversion := ""
		if ev.WillDivert {
			diversion = ftoa(ev.DiversionPositionKm)
		}
		row := []string{
			strconv.Itoa(ev.VehicleID),
			ftoa(ev.TimeS),
			string(ev.Action),
			string(ev.Category),
			strconv.Itoa(ev.Lane.ColumnValue()),
			ftoa(ev.PositionKm),
			ftoa(ev.SpeedKmh),
			ftoa(ev.TravelTimeS),
			ftoa(ev.WaitingTimeS),
			strconv.FormatBool(ev.WillDivert),
			diversion,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (r Run) writeConfig(w *csv.Writer) error {
	if err := w.Write([]string{
		"simulation_id", "regular_lanes", "has_priority_lane", "priority_lane_capacity",
		"signal_positions", "green_ratio", "cycle_s", "road_length_km",
		"duration_s", "time_step_s", "intensity_min", "intensity_max",
		"diversion_min", "diversion_max", "priority_share", "lane_capacity",
		"seed", "description", "created_at",
	}); err != nil {
		return err
	}
	return w.Write([]string{
		r.ID,
		strconv.Itoa(r.Layout.RegularLanes),
		strconv.FormatBool(r.Layout.HasPriorityLane),
		strconv.Itoa(r.PriorityLaneCapacity),
		fmt.Sprintf("%v", r.Layout.SignalPositions),
		ftoa(r.Layout.GreenRatio),
		ftoa(r.Layout.CycleDuration(r.Params)),
		ftoa(r.Params.RoadLengthKm),
		ftoa(r.Params.DurationS),
		ftoa(r.Params.TimeStepS),
		ftoa(r.Params.TrafficIntensity.Min),
		ftoa(r.Params.TrafficIntensity.Max),
		ftoa(r.Params.DiversionRate.Min),
		ftoa(r.Params.DiversionRate.Max),
		ftoa(r.Params.PriorityShare),
		strconv.Itoa(r.Params.LaneCapacity),
		strconv.FormatInt(r.Seed, 10),
		r.Description,
		r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
}

func (r Run) writeUtilization(w *csv.Writer) error {
	if err := w.Write([]string{
		"simulation_id", "lane", "type", "vehicle_count", "density_per_km",
		"nominal_capacity", "utilization_pct",
	}); err != nil {
		return err
	}
	for _, lane := range r.Utilization.Lanes {
		row := []string{
			r.ID,
			lane.Lane,
			lane.Type,
			strconv.Itoa(lane.VehicleCount),
			ftoa(lane.DensityPerKm),
			strconv.Itoa(lane.NominalCapacity),
			ftoa(lane.UtilizationPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	// Regular-lane aggregate, same shape as the original summary row.
	return w.Write([]string{
		r.ID,
		"SUMMARY",
		"summary",
		strconv.Itoa(r.Statistics.CompletedVehicles),
		ftoa(r.Utilization.AvgRegularDensityPerKm),
		strconv.Itoa(r.Params.LaneCapacity),
		ftoa(r.Utilization.AvgRegularUtilizationPct),
	})
}

func (r Run) writeSignals(w *csv.Writer) error {
	if err := w.Write([]string{"timestamp", "signal_id", "position_km", "phase"}); err != nil {
		return err
	}
	ts := r.Series
	for i := 0; i < ts.Len(); i++ {
		for j, phase := range ts.SignalPhases[i] {
			position := ""
			if j < len(r.Signals) {
				position = ftoa(r.Signals[j].PositionKm)
			}
			row := []string{
				ftoa(ts.TimesS[i]),
				strconv.Itoa(j),
				position,
				string(phase),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
