package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/model"
)

func TestGenerateDocument(t *testing.T) {
	report := model.FleetReport{
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		State:       model.StateEvening,
		Summary: model.FleetSummary{
			TotalTrucks: 1, ActiveTrucks: 1, OnTimeTrucks: 1,
		},
		Trucks: []model.Truck{
			{
				TruckID: "GI-58A", DriverName: "John Kamau", Status: "on_time",
				CurrentLocation: model.LocationRef{Name: "Kisumu Depot"},
				Destination:     model.LocationRef{Name: "Mombasa Port"},
				Route:           model.Route{Distance: 580},
			},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestGenerateEmptyFleet(t *testing.T) {
	content, err := NewGenerator().Generate(model.FleetReport{
		GeneratedAt: time.Now(),
		State:       model.StateUnknown,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
