package model

import "time"

type FleetSummary struct {
	TotalTrucks   int     `json:"total_trucks"`
	ActiveTrucks  int     `json:"active_trucks"`
	OnTimeTrucks  int     `json:"on_time_trucks"`
	DelayedTrucks int     `json:"delayed_trucks"`
	AverageDelay  float64 `json:"average_delay"`
}

// DemoStatus reports the detected operational state plus the batch metadata
// the verdict came from, so divergent collections can be spotted by hand.
type DemoStatus struct {
	State           DemoState `json:"state"`
	BatchID         string    `json:"batch_id,omitempty"`
	OperationalTime string    `json:"operational_time,omitempty"`
	TruckCount      int64     `json:"truck_count"`
}

// FleetReport is the input for the excel and pdf report generators.
type FleetReport struct {
	GeneratedAt time.Time
	State       DemoState
	Summary     FleetSummary
	Trucks      []Truck
}

// TimeSeriesPoint is one sample of a metric over time for trending charts.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}
