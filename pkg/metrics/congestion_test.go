package metrics

import (
	"math"
	"testing"
)

const carFootprint = 0.0050 // 4.5m car + 0.5m gap

func slowVehicle(pos float64) VehicleState {
	return VehicleState{PositionKm: pos, SpeedKmh: 5, FootprintKm: carFootprint}
}

func TestCongestionLengthEmpty(t *testing.T) {
	if got := CongestionLength(nil); got != 0 {
		t.Errorf("CongestionLength(nil) = %v, want 0", got)
	}
}

func TestCongestionLengthNoSlowVehicles(t *testing.T) {
	states := []VehicleState{
		{PositionKm: 0.1, SpeedKmh: 50, FootprintKm: carFootprint},
		{PositionKm: 0.2, SpeedKmh: 30, FootprintKm: carFootprint},
	}
	if got := CongestionLength(states); got != 0 {
		t.Errorf("CongestionLength = %v, want 0 for free-flowing traffic", got)
	}
}

func TestCongestionLengthSingleVehicle(t *testing.T) {
	got := CongestionLength([]VehicleState{slowVehicle(0.3)})
	if math.Abs(got-carFootprint) > 1e-12 {
		t.Errorf("CongestionLength = %v, want exactly one footprint %v", got, carFootprint)
	}
}

func TestCongestionLengthSeparateSegments(t *testing.T) {
	// Two slow vehicles further apart than the jam gap: two segments of one
	// footprint each, and the answer is the longer one, not the sum.
	states := []VehicleState{slowVehicle(0.1), slowVehicle(0.1 + JamGapKm + 0.01)}
	got := CongestionLength(states)
	if math.Abs(got-carFootprint) > 1e-12 {
		t.Errorf("CongestionLength = %v, want %v (one footprint, not the sum)", got, carFootprint)
	}
}

func TestCongestionLengthMergedSegment(t *testing.T) {
	// Three slow vehicles within the jam gap of each other merge into one
	// segment of three footprints.
	states := []VehicleState{slowVehicle(0.100), slowVehicle(0.110), slowVehicle(0.120)}
	got := CongestionLength(states)
	want := 3 * carFootprint
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("CongestionLength = %v, want %v", got, want)
	}
}

func TestCongestionLengthPicksLongestSegment(t *testing.T) {
	// A two-vehicle jam upstream and a three-vehicle jam downstream:
	// the reported length is the downstream segment's.
	states := []VehicleState{
		slowVehicle(0.100), slowVehicle(0.110),
		slowVehicle(0.500), slowVehicle(0.510), slowVehicle(0.520),
	}
	got := CongestionLength(states)
	want := 3 * carFootprint
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("CongestionLength = %v, want %v", got, want)
	}
}

func TestCongestionLengthUnsortedInput(t *testing.T) {
	states := []VehicleState{slowVehicle(0.120), slowVehicle(0.100), slowVehicle(0.110)}
	got := CongestionLength(states)
	want := 3 * carFootprint
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("CongestionLength = %v, want %v for unsorted input", got, want)
	}
}

func TestCongestionLengthMixedFootprints(t *testing.T) {
	bus := VehicleState{PositionKm: 0.105, SpeedKmh: 3, FootprintKm: 0.0125}
	states := []VehicleState{slowVehicle(0.100), bus}
	got := CongestionLength(states)
	want := carFootprint + 0.0125
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("CongestionLength = %v, want %v", got, want)
	}
}
