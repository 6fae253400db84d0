package main

import (
	"fmt"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/metrics"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/sim"
)

type compareRow struct {
	Variant string
	Short   string
	Summary sim.Summary
	Stats   metrics.RunStatistics
}

func printSummary(variant string, s sim.Summary, stats metrics.RunStatistics) {
	fmt.Printf("Variant %s\n", variant)
	fmt.Println("=========")
	fmt.Printf("  Config:            %s\n", s.Config)
	fmt.Printf("  Completed:         %d vehicles\n", s.CompletedVehicles)
	fmt.Printf("  Still active:      %d\n", s.ActiveVehicles)
	fmt.Printf("  Still queued:      %d\n", s.QueuedVehicles)
	fmt.Printf("  Data points:       %d\n", s.DataPoints)
	fmt.Printf("  Execution time:    %s\n", s.ExecutionTime)
	fmt.Println()
	fmt.Printf("  Mean travel time:  %.1f s\n", stats.MeanTravelTimeS)
	fmt.Printf("  Mean speed:        %.1f km/h\n", stats.MeanSpeedKmh)
	fmt.Printf("  Mean waiting time: %.1f s\n", stats.MeanWaitingTimeS)
	fmt.Printf("  Congestion length: %.3f km\n", stats.CongestionLengthKm)
	fmt.Printf("  Priority-lane efficiency: %.1f\n", stats.PriorityLaneEfficiency)
}

func printUtilization(u metrics.Utilization) {
	if len(u.Lanes) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("  Lane utilization")
	for _, lane := range u.Lanes {
		fmt.Printf("    %-8s %-8s %5d vehicles  %6.1f /km  %5.1f%% of %d\n",
			lane.Lane, lane.Type, lane.VehicleCount, lane.DensityPerKm,
			lane.UtilizationPct, lane.NominalCapacity)
	}
	fmt.Printf("    regular-lane average: %.1f /km (%.1f%%)\n",
		u.AvgRegularDensityPerKm, u.AvgRegularUtilizationPct)
}

func printComparison(rows []compareRow) {
	fmt.Println("Variant comparison")
	fmt.Println("==================")
	fmt.Printf("%-3s %-8s %10s %8s %8s %12s %10s %12s\n",
		"ID", "Layout", "Completed", "Active", "Queued",
		"TravelTime", "Jam (km)", "Efficiency")
	for _, r := range rows {
		fmt.Printf("%-3s %-8s %10d %8d %8d %11.1fs %10.3f %11.1f%%\n",
			r.Variant, r.Short,
			r.Summary.CompletedVehicles, r.Summary.ActiveVehicles, r.Summary.QueuedVehicles,
			r.Stats.MeanTravelTimeS, r.Stats.CongestionLengthKm, r.Stats.PriorityLaneEfficiency)
	}
}
