package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/batch"
	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

func TestDetectState(t *testing.T) {
	cases := map[string]model.DemoState{
		"afternoon_ops":    model.StateAfternoon,
		"AFTERNOON_v2":     model.StateAfternoon,
		"evening_ops":      model.StateEvening,
		"night_ops":        model.StateNight,
		"late_night_final": model.StateNight,
		"morning_baseline": model.StateMorningBaseline,
		"weekly_rollup":    model.StateMorningBaseline,
		"":                 model.StateMorningBaseline,
	}
	for batchID, want := range cases {
		assert.Equal(t, want, DetectState(batchID), "batch id %q", batchID)
	}
}

func TestCurrentStateUnknownWhenEmpty(t *testing.T) {
	ctx := context.Background()
	sd, _ := newTestSeeder()

	status, err := sd.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StateUnknown, status.State)
	assert.Zero(t, status.TruckCount)
}

func TestCurrentStateFollowsLatestBatch(t *testing.T) {
	ctx := context.Background()

	// Advance the stamping clock per call so batch recency is unambiguous.
	current := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	stamper := batch.NewStamperAt(func() time.Time {
		current = current.Add(time.Hour)
		return current
	})
	sd := New(store.NewMemory(), stamper, zerolog.Nop())

	require.NoError(t, sd.SeedBaseline(ctx, "09:00"))

	status, err := sd.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StateMorningBaseline, status.State)
	assert.Equal(t, BaselineBatchID, status.BatchID)
	assert.Equal(t, "09:00", status.OperationalTime)
	assert.Equal(t, int64(6), status.TruckCount)

	docs := []model.Document{&model.Truck{TruckID: "ZZ-999Z", PlateNumber: "ZZ-999Z", Status: "in_transit"}}
	_, err = sd.UpsertBatch(ctx, model.CollectionTrucks, docs, "evening_ops", "19:00")
	require.NoError(t, err)

	status, err = sd.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StateEvening, status.State)
	assert.Equal(t, "evening_ops", status.BatchID)
	assert.Equal(t, int64(7), status.TruckCount)
}
