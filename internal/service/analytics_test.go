package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

func putEvent(t *testing.T, mem *store.Memory, event *model.AnalyticsEvent) {
	t.Helper()
	require.NoError(t, mem.UpsertOne(context.Background(), model.CollectionAnalyticsEvents, event.EventID, event))
}

func TestMetricsPicksLatestDaily(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now().UTC()

	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "PERF-OLD", EventType: model.EventDailyPerformance,
		Timestamp: now.Add(-48 * time.Hour),
		Metrics:   map[string]float64{"delivery_performance_pct": 70},
	})
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "PERF-NEW", EventType: model.EventDailyPerformance,
		Timestamp: now.Add(-time.Hour),
		Metrics: map[string]float64{
			"delivery_performance_pct": 91.5,
			"total_deliveries":         23,
		},
	})

	svc := NewAnalyticsService(mem, zerolog.Nop())
	metrics, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 91.5, metrics.DeliveryPerformance)
	assert.Equal(t, 23, metrics.TotalDeliveries)
}

func TestMetricsNotFoundWithoutDailyEvents(t *testing.T) {
	mem := store.NewMemory()
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "HOURLY-1", EventType: model.EventHourlyMetrics,
		Timestamp: time.Now().UTC(), Metrics: map[string]float64{},
	})

	svc := NewAnalyticsService(mem, zerolog.Nop())
	_, err := svc.Metrics(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoutesLatestPerRoute(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now().UTC()

	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "R1-OLD", EventType: model.EventRoutePerformance,
		RouteID: "nairobi-mombasa", RouteName: "Nairobi → Mombasa",
		Timestamp: now.Add(-24 * time.Hour),
		Metrics:   map[string]float64{"performance_pct": 60},
	})
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "R1-NEW", EventType: model.EventRoutePerformance,
		RouteID: "nairobi-mombasa", RouteName: "Nairobi → Mombasa",
		Timestamp: now,
		Metrics:   map[string]float64{"performance_pct": 88, "completed_trips": 5},
	})
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "R2", EventType: model.EventRoutePerformance,
		RouteID: "eldoret-nairobi", RouteName: "Eldoret → Nairobi",
		Timestamp: now,
		Metrics:   map[string]float64{"performance_pct": 75},
	})

	svc := NewAnalyticsService(mem, zerolog.Nop())
	routes, err := svc.Routes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 2)

	// Sorted by route id.
	assert.Equal(t, "eldoret-nairobi", routes[0].RouteID)
	assert.Equal(t, "nairobi-mombasa", routes[1].RouteID)
	assert.Equal(t, 88.0, routes[1].Performance)
	assert.Equal(t, 5, routes[1].CompletedTrips)
}

func TestDelayCausesSortedByShare(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now().UTC()

	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "D1", EventType: model.EventDelayCauseAnalysis,
		DelayCause: "Weather Conditions", Timestamp: now,
		Metrics: map[string]float64{"percentage": 28},
	})
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "D2", EventType: model.EventDelayCauseAnalysis,
		DelayCause: "Traffic Congestion", Timestamp: now,
		Metrics: map[string]float64{"percentage": 45},
	})

	svc := NewAnalyticsService(mem, zerolog.Nop())
	causes, err := svc.DelayCauses(context.Background())
	require.NoError(t, err)
	require.Len(t, causes, 2)
	assert.Equal(t, "Traffic Congestion", causes[0].Cause)
	assert.Equal(t, "Weather Conditions", causes[1].Cause)
}

func TestRegionalSkipsAggregateRegion(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now().UTC()

	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "REG-ALL", EventType: model.EventRegionalPerformance,
		Region: "All", Timestamp: now, Metrics: map[string]float64{},
	})
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "REG-NBO", EventType: model.EventRegionalPerformance,
		Region: "Nairobi", Timestamp: now,
		Metrics: map[string]float64{"on_time_percentage": 82},
	})

	svc := NewAnalyticsService(mem, zerolog.Nop())
	regions, err := svc.Regional(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Nairobi", regions[0].Region)
}

func TestTimeSeriesWindowSelectsEventType(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now().UTC()

	for i := 1; i <= 6; i++ {
		putEvent(t, mem, &model.AnalyticsEvent{
			EventID:   "H-" + string(rune('0'+i)),
			EventType: model.EventHourlyMetrics,
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			Metrics:   map[string]float64{"delivery_performance_pct": float64(80 + i)},
		})
	}
	putEvent(t, mem, &model.AnalyticsEvent{
		EventID: "D-1", EventType: model.EventDailyPerformance,
		Timestamp: now.Add(-36 * time.Hour),
		Metrics:   map[string]float64{"delivery_performance_pct": 77},
	})

	svc := NewAnalyticsService(mem, zerolog.Nop())
	ctx := context.Background()

	hourly, err := svc.TimeSeries(ctx, "", 24)
	require.NoError(t, err)
	assert.Len(t, hourly, 6)
	// Oldest first.
	assert.True(t, hourly[0].Timestamp.Before(hourly[len(hourly)-1].Timestamp))

	daily, err := svc.TimeSeries(ctx, "delivery_performance_pct", 72)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 77.0, daily[0].Value)

	// A three-hour window trims older hourly points.
	short, err := svc.TimeSeries(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, short, 2)
}
