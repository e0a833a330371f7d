package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

// DashboardMetrics is the headline figure set for the dashboard, taken from
// the most recent daily performance event.
type DashboardMetrics struct {
	DeliveryPerformance  float64   `json:"delivery_performance_pct"`
	AverageDelayMinutes  float64   `json:"average_delay_minutes"`
	FleetUtilization     float64   `json:"fleet_utilization_pct"`
	CustomerSatisfaction float64   `json:"customer_satisfaction"`
	TotalDeliveries      int       `json:"total_deliveries"`
	OnTimeDeliveries     int       `json:"on_time_deliveries"`
	AsOf                 time.Time `json:"as_of"`
}

type RoutePerformance struct {
	RouteID         string  `json:"route_id"`
	RouteName       string  `json:"route_name"`
	Performance     float64 `json:"performance_pct"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
	DelayIncidents  int     `json:"delay_incidents"`
	CompletedTrips  int     `json:"completed_trips"`
}

type DelayCause struct {
	Cause           string  `json:"cause"`
	Percentage      float64 `json:"percentage"`
	IncidentCount   int     `json:"incident_count"`
	AvgDelayMinutes float64 `json:"avg_delay_minutes"`
}

type RegionalPerformance struct {
	Region           string  `json:"region"`
	OnTimePercentage float64 `json:"on_time_percentage"`
	TotalDeliveries  int     `json:"total_deliveries"`
	AvgDeliveryTime  float64 `json:"avg_delivery_time"`
	CustomerRating   float64 `json:"customer_rating"`
}

// AnalyticsService aggregates stored analytics events into chart payloads.
// Events arrive denormalized; all shaping happens here at read time.
type AnalyticsService struct {
	store store.Store
	log   zerolog.Logger
}

func NewAnalyticsService(st store.Store, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{store: st, log: log}
}

func (s *AnalyticsService) events(ctx context.Context) ([]model.AnalyticsEvent, error) {
	var events []model.AnalyticsEvent
	if err := s.store.GetAll(ctx, model.CollectionAnalyticsEvents, 5000, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Metrics returns the latest daily performance snapshot. ErrNotFound when no
// daily performance events exist yet.
func (s *AnalyticsService) Metrics(ctx context.Context) (DashboardMetrics, error) {
	events, err := s.events(ctx)
	if err != nil {
		return DashboardMetrics{}, err
	}

	var latest *model.AnalyticsEvent
	for i := range events {
		event := &events[i]
		if event.EventType != model.EventDailyPerformance {
			continue
		}
		if latest == nil || event.Timestamp.After(latest.Timestamp) {
			latest = event
		}
	}
	if latest == nil {
		return DashboardMetrics{}, ErrNotFound
	}

	return DashboardMetrics{
		DeliveryPerformance:  latest.Metrics["delivery_performance_pct"],
		AverageDelayMinutes:  latest.Metrics["average_delay_minutes"],
		FleetUtilization:     latest.Metrics["fleet_utilization_pct"],
		CustomerSatisfaction: latest.Metrics["customer_satisfaction"],
		TotalDeliveries:      int(latest.Metrics["total_deliveries"]),
		OnTimeDeliveries:     int(latest.Metrics["on_time_deliveries"]),
		AsOf:                 latest.Timestamp,
	}, nil
}

// Routes returns the most recent performance figures per route.
func (s *AnalyticsService) Routes(ctx context.Context) ([]RoutePerformance, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	latest := map[string]*model.AnalyticsEvent{}
	for i := range events {
		event := &events[i]
		if event.EventType != model.EventRoutePerformance || event.RouteID == "" {
			continue
		}
		if current, ok := latest[event.RouteID]; !ok || event.Timestamp.After(current.Timestamp) {
			latest[event.RouteID] = event
		}
	}

	routes := make([]RoutePerformance, 0, len(latest))
	for _, event := range latest {
		routes = append(routes, RoutePerformance{
			RouteID:         event.RouteID,
			RouteName:       event.RouteName,
			Performance:     event.Metrics["performance_pct"],
			AvgDeliveryTime: event.Metrics["avg_delivery_time"],
			DelayIncidents:  int(event.Metrics["delay_incidents"]),
			CompletedTrips:  int(event.Metrics["completed_trips"]),
		})
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].RouteID < routes[j].RouteID })
	return routes, nil
}

// DelayCauses returns the latest delay cause breakdown, largest share first.
func (s *AnalyticsService) DelayCauses(ctx context.Context) ([]DelayCause, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	latest := map[string]*model.AnalyticsEvent{}
	for i := range events {
		event := &events[i]
		if event.EventType != model.EventDelayCauseAnalysis || event.DelayCause == "" {
			continue
		}
		if current, ok := latest[event.DelayCause]; !ok || event.Timestamp.After(current.Timestamp) {
			latest[event.DelayCause] = event
		}
	}

	causes := make([]DelayCause, 0, len(latest))
	for _, event := range latest {
		causes = append(causes, DelayCause{
			Cause:           event.DelayCause,
			Percentage:      event.Metrics["percentage"],
			IncidentCount:   int(event.Metrics["incident_count"]),
			AvgDelayMinutes: event.Metrics["avg_delay_minutes"],
		})
	}
	sort.Slice(causes, func(i, j int) bool { return causes[i].Percentage > causes[j].Percentage })
	return causes, nil
}

// Regional returns the latest per-region performance figures.
func (s *AnalyticsService) Regional(ctx context.Context) ([]RegionalPerformance, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	latest := map[string]*model.AnalyticsEvent{}
	for i := range events {
		event := &events[i]
		if event.EventType != model.EventRegionalPerformance || event.Region == "" || event.Region == "All" {
			continue
		}
		if current, ok := latest[event.Region]; !ok || event.Timestamp.After(current.Timestamp) {
			latest[event.Region] = event
		}
	}

	regions := make([]RegionalPerformance, 0, len(latest))
	for _, event := range latest {
		regions = append(regions, RegionalPerformance{
			Region:           event.Region,
			OnTimePercentage: event.Metrics["on_time_percentage"],
			TotalDeliveries:  int(event.Metrics["total_deliveries"]),
			AvgDeliveryTime:  event.Metrics["avg_delivery_time"],
			CustomerRating:   event.Metrics["customer_rating"],
		})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Region < regions[j].Region })
	return regions, nil
}

// TimeSeries returns metric points for the trailing window, oldest first.
// Windows up to 24 hours read hourly events; longer windows read daily ones.
func (s *AnalyticsService) TimeSeries(ctx context.Context, metric string, hours int) ([]model.TimeSeriesPoint, error) {
	if metric == "" {
		metric = "delivery_performance_pct"
	}
	if hours <= 0 {
		hours = 24
	}

	eventType := model.EventHourlyMetrics
	if hours > 24 {
		eventType = model.EventDailyPerformance
	}

	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	points := make([]model.TimeSeriesPoint, 0, len(events))
	for _, event := range events {
		if event.EventType != eventType || event.Timestamp.Before(cutoff) {
			continue
		}
		value, ok := event.Metrics[metric]
		if !ok {
			continue
		}
		points = append(points, model.TimeSeriesPoint{Timestamp: event.Timestamp, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
	return points, nil
}
