package layout

import (
	"strings"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
)

// Catalog variant identifiers. An unrecognised id resolves to the default
// layout rather than failing; the catalog has no error conditions.
const (
	VariantA       = "A" // 3 regular lanes, no priority lane
	VariantB       = "B" // 2 regular lanes + priority lane
	VariantC       = "C" // 3 regular lanes + priority lane
	VariantD       = "D" // 4 regular lanes, no priority lane
	VariantDefault = "DEFAULT"
)

// Variants lists the named catalog entries in presentation order.
func Variants() []string {
	return []string{VariantA, VariantB, VariantC, VariantD}
}

// ForVariant maps a variant id onto a concrete RoadLayout. Signal positions
// default to the configured side-road positions so every junction that can
// receive diverting traffic is signal-controlled.
func ForVariant(id string, p params.Parameters) RoadLayout {
	base := RoadLayout{
		SignalPositions: signalPositions(p),
		GreenRatio:      0.6,
	}

	switch strings.ToUpper(id) {
	case VariantA:
		base.RegularLanes = 3
	case VariantB:
		base.RegularLanes = 2
		base.HasPriorityLane = true
	case VariantC:
		base.RegularLanes = 3
		base.HasPriorityLane = true
	case VariantD:
		base.RegularLanes = 4
	default:
		base.RegularLanes = 2
	}

	return base
}

func signalPositions(p params.Parameters) []float64 {
	if len(p.SideRoadPositions) > 0 {
		positions := make([]float64, len(p.SideRoadPositions))
		copy(positions, p.SideRoadPositions)
		return positions
	}
	return []float64{0.5}
}
