package model

import "time"

// Analytics event types. The metrics map keys depend on the event type.
const (
	EventDailyPerformance    = "daily_performance"
	EventHourlyMetrics       = "hourly_metrics"
	EventRoutePerformance    = "route_performance"
	EventDelayCauseAnalysis  = "delay_cause_analysis"
	EventRegionalPerformance = "regional_performance"
	EventDeliveryStarted     = "delivery_started"
	EventDeliveryCompleted   = "delivery_completed"
	EventDelayReported       = "delay_reported"
)

type AnalyticsEvent struct {
	EventID    string             `bson:"event_id" json:"event_id"`
	EventType  string             `bson:"event_type" json:"event_type"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Region     string             `bson:"region,omitempty" json:"region,omitempty"`
	RouteID    string             `bson:"route_id,omitempty" json:"route_id,omitempty"`
	RouteName  string             `bson:"route_name,omitempty" json:"route_name,omitempty"`
	TruckID    string             `bson:"truck_id,omitempty" json:"truck_id,omitempty"`
	OrderID    string             `bson:"order_id,omitempty" json:"order_id,omitempty"`
	DelayCause string             `bson:"delay_cause,omitempty" json:"delay_cause,omitempty"`
	Metrics    map[string]float64 `bson:"metrics" json:"metrics"`

	BatchEnvelope `bson:",inline"`
}

func (e *AnalyticsEvent) DocID() string { return e.EventID }
