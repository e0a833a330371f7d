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

func newTestSeeder() (*Seeder, *store.Memory) {
	mem := store.NewMemory()
	return New(mem, batch.NewStamper(), zerolog.Nop()), mem
}

func TestSeedIfEmptySeedsAllCollections(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	require.NoError(t, sd.SeedIfEmpty(ctx))

	for _, collection := range model.SeedOrder {
		count, err := mem.Count(ctx, collection)
		require.NoError(t, err)
		assert.Positive(t, count, "collection %s", collection)
	}

	trucks, err := mem.Count(ctx, model.CollectionTrucks)
	require.NoError(t, err)
	assert.Equal(t, int64(6), trucks)
}

func TestSeedIfEmptySkipsWhenDataPresent(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	require.NoError(t, sd.SeedIfEmpty(ctx))
	require.NoError(t, mem.DeleteAll(ctx, model.CollectionOrders))

	// Trucks still exist, so the second call must not reseed orders.
	require.NoError(t, sd.SeedIfEmpty(ctx))
	orders, err := mem.Count(ctx, model.CollectionOrders)
	require.NoError(t, err)
	assert.Zero(t, orders)
}

func TestForceReseedBypassesEmptinessCheck(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	require.NoError(t, sd.SeedIfEmpty(ctx))
	require.NoError(t, mem.DeleteAll(ctx, model.CollectionOrders))

	require.NoError(t, sd.ForceReseed(ctx))
	orders, err := mem.Count(ctx, model.CollectionOrders)
	require.NoError(t, err)
	assert.Equal(t, int64(4), orders)
}

func TestClearAllEmptiesEveryCollection(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	require.NoError(t, sd.SeedIfEmpty(ctx))
	require.NoError(t, sd.ClearAll(ctx))

	for _, collection := range model.SeedOrder {
		count, err := mem.Count(ctx, collection)
		require.NoError(t, err)
		assert.Zero(t, count, "collection %s", collection)
	}
}

func TestSeedBaselineStampsV1(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	require.NoError(t, sd.SeedBaseline(ctx, "09:00"))

	var trucks []model.Truck
	require.NoError(t, mem.GetAll(ctx, model.CollectionTrucks, 0, &trucks))
	require.Len(t, trucks, 6)
	for _, truck := range trucks {
		assert.Equal(t, BaselineBatchID, truck.BatchID)
		assert.Equal(t, "09:00", truck.OperationalTime)
		assert.Equal(t, "v1", truck.DataVersion)
		assert.Equal(t, "on_time", truck.Status)
	}
}

func TestSeedBaselineSkipsWhenTrucksExist(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	require.NoError(t, sd.SeedIfEmpty(ctx))
	require.NoError(t, mem.DeleteAll(ctx, model.CollectionOrders))

	require.NoError(t, sd.SeedBaseline(ctx, "09:00"))
	orders, err := mem.Count(ctx, model.CollectionOrders)
	require.NoError(t, err)
	assert.Zero(t, orders)
}

func TestSeedBaselineRejectsInvalidTimeBeforeWriting(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	err := sd.SeedBaseline(ctx, "9am")
	assert.ErrorIs(t, err, batch.ErrInvalidOperationalTime)

	trucks, countErr := mem.Count(ctx, model.CollectionTrucks)
	require.NoError(t, countErr)
	assert.Zero(t, trucks)
}

func TestUpsertBatchStampsAndReplaces(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()
	require.NoError(t, sd.SeedBaseline(ctx, "09:00"))

	docs := []model.Document{
		&model.Truck{TruckID: "GI-58A", PlateNumber: "GI-58A", Status: "delayed"},
		&model.Truck{TruckID: "MO-84A", PlateNumber: "MO-84A", Status: "in_transit"},
	}
	count, err := sd.UpsertBatch(ctx, model.CollectionTrucks, docs, "afternoon_ops", "14:30")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Same identities, so the fleet size is unchanged.
	total, err := mem.Count(ctx, model.CollectionTrucks)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)

	var trucks []model.Truck
	require.NoError(t, mem.GetAll(ctx, model.CollectionTrucks, 0, &trucks))
	byID := map[string]model.Truck{}
	for _, truck := range trucks {
		byID[truck.TruckID] = truck
	}
	assert.Equal(t, "delayed", byID["GI-58A"].Status)
	assert.Equal(t, "afternoon_ops", byID["GI-58A"].BatchID)
	assert.Equal(t, "v3", byID["GI-58A"].DataVersion)
	assert.Equal(t, BaselineBatchID, byID["CE-57A"].BatchID)
}

func TestUpsertBatchRejectsMissingIdentity(t *testing.T) {
	ctx := context.Background()
	sd, mem := newTestSeeder()

	docs := []model.Document{
		&model.Truck{TruckID: "GI-58A"},
		&model.Truck{}, // no identity
	}
	_, err := sd.UpsertBatch(ctx, model.CollectionTrucks, docs, "afternoon_ops", "14:30")
	assert.ErrorIs(t, err, batch.ErrMissingIdentity)

	count, countErr := mem.Count(ctx, model.CollectionTrucks)
	require.NoError(t, countErr)
	assert.Zero(t, count)
}

func TestUpsertBatchRejectsUnknownCollection(t *testing.T) {
	ctx := context.Background()
	sd, _ := newTestSeeder()

	_, err := sd.UpsertBatch(ctx, "drivers", nil, "afternoon_ops", "14:30")
	assert.Error(t, err)
}

func TestDemoBatchTokens(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	for _, token := range []string{"afternoon_ops", "evening_ops", "night_ops", "morning_refresh"} {
		sets, ok := DemoBatch(token, base)
		require.True(t, ok, "token %s", token)
		assert.Len(t, sets[model.CollectionTrucks], 6)
		assert.NotEmpty(t, sets[model.CollectionOrders])
	}

	_, ok := DemoBatch("weekly_rollup", base)
	assert.False(t, ok)
}

func TestDemoBatchProgressionKeepsIdentities(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	morning, _ := DemoBatch("morning_refresh", base)
	night, _ := DemoBatch("night_ops", base)

	morningIDs := map[string]bool{}
	for _, doc := range morning[model.CollectionTrucks] {
		morningIDs[doc.DocID()] = true
	}
	for _, doc := range night[model.CollectionTrucks] {
		assert.True(t, morningIDs[doc.DocID()], "night truck %s must exist in morning set", doc.DocID())
	}

	for _, doc := range night[model.CollectionTrucks] {
		assert.Equal(t, "resting", doc.(*model.Truck).Status)
	}
}

func TestDefaultOperationalTime(t *testing.T) {
	assert.Equal(t, "14:30", DefaultOperationalTime("afternoon_ops"))
	assert.Equal(t, "19:00", DefaultOperationalTime("evening_ops"))
	assert.Equal(t, "23:30", DefaultOperationalTime("night_ops"))
	assert.Equal(t, "09:00", DefaultOperationalTime("morning_baseline"))
	assert.Equal(t, "09:00", DefaultOperationalTime("whatever"))
}
