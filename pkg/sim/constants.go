package sim

// Road-space geometry, in kilometres.
const (
	carLengthKm      = 0.0045 // ~4.5m passenger car
	busLengthKm      = 0.0120 // ~12m bus
	vehicleSpacingKm = 0.0005 // minimum following gap

	// Footprint = vehicle length + minimum following gap.
	CarFootprintKm = carLengthKm + vehicleSpacingKm
	BusFootprintKm = busLengthKm + vehicleSpacingKm
)

// Motion model constants.
const (
	BaseSpeedKmh = 50.0

	// A vehicle this close behind a red signal stops.
	signalStoppingDistanceKm = 0.1

	// Density slowdown: each vehicle ahead within the detection distance
	// removes densityReductionRate from the speed factor, floored at
	// minDensityFactor.
	detectionDistanceKm  = 0.500
	densityReductionRate = 0.15
	minDensityFactor     = 0.1

	// Reduced interference on the dedicated lane; the resulting speed is
	// still capped at BaseSpeedKmh.
	priorityLaneSpeedFactor = 1.2

	secondsPerHour = 3600.0
)
