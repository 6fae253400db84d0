package sim

import "math"

// Phase is the current state of a signal.
type Phase string

const (
	PhaseGreen Phase = "green"
	PhaseRed   Phase = "red"
)

// Signal is a fixed traffic signal on the corridor. The phase alternates
// between green (for GreenDurationS) and red (for the rest of the cycle).
type Signal struct {
	PositionKm      float64
	CycleDurationS  float64
	GreenDurationS  float64
	CurrentPhase    Phase
	PhaseStartTimeS float64
}

// Update advances the signal's phase machine to the given simulation time.
func (s *Signal) Update(nowS float64) {
	elapsed := nowS - s.PhaseStartTimeS

	switch s.CurrentPhase {
	case PhaseGreen:
		if elapsed >= s.GreenDurationS {
			s.CurrentPhase = PhaseRed
			s.PhaseStartTimeS = nowS
		}
	case PhaseRed:
		if elapsed >= s.CycleDurationS-s.GreenDurationS {
			s.CurrentPhase = PhaseGreen
			s.PhaseStartTimeS = nowS
		}
	}
}

// OptimalCycle derives a full cycle duration from a desired green duration:
// green + 3s yellow + a 30s minimum red for pedestrian safety, with a 10%
// margin, rounded to 0.1s.
func OptimalCycle(greenDurationS float64) float64 {
	const (
		yellowDurationS = 3.0
		minRedDurationS = 30.0
	)
	base := greenDurationS + yellowDurationS + minRedDurationS
	return math.Round(base*1.1*10) / 10
}
