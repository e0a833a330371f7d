package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/model"
)

func truckDoc(id string, createdAt time.Time) Doc {
	truck := &model.Truck{TruckID: id, PlateNumber: id, DriverName: "Driver " + id, Status: "on_time"}
	truck.CreatedAt = createdAt
	return Doc{ID: id, Body: truck}
}

func TestMemoryUpsertReplacesByIdentity(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	first := &model.Truck{TruckID: "GI-58A", Status: "on_time"}
	require.NoError(t, mem.UpsertOne(ctx, model.CollectionTrucks, "GI-58A", first))

	second := &model.Truck{TruckID: "GI-58A", Status: "delayed"}
	require.NoError(t, mem.UpsertOne(ctx, model.CollectionTrucks, "GI-58A", second))

	count, err := mem.Count(ctx, model.CollectionTrucks)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var trucks []model.Truck
	require.NoError(t, mem.GetAll(ctx, model.CollectionTrucks, 0, &trucks))
	require.Len(t, trucks, 1)
	assert.Equal(t, "delayed", trucks[0].Status)
}

func TestMemoryGetAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	base := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)

	docs := []Doc{
		truckDoc("OLD", base),
		truckDoc("MID", base.Add(time.Hour)),
		truckDoc("NEW", base.Add(2*time.Hour)),
	}
	require.NoError(t, mem.UpsertMany(ctx, model.CollectionTrucks, docs))

	var trucks []model.Truck
	require.NoError(t, mem.GetAll(ctx, model.CollectionTrucks, 0, &trucks))
	require.Len(t, trucks, 3)
	assert.Equal(t, "NEW", trucks[0].TruckID)
	assert.Equal(t, "MID", trucks[1].TruckID)
	assert.Equal(t, "OLD", trucks[2].TruckID)

	var limited []model.Truck
	require.NoError(t, mem.GetAll(ctx, model.CollectionTrucks, 1, &limited))
	require.Len(t, limited, 1)
	assert.Equal(t, "NEW", limited[0].TruckID)
}

func TestMemoryDeleteAll(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	require.NoError(t, mem.UpsertMany(ctx, model.CollectionTrucks, []Doc{
		truckDoc("GI-58A", time.Now()),
		truckDoc("MO-84A", time.Now()),
	}))
	require.NoError(t, mem.DeleteAll(ctx, model.CollectionTrucks))

	count, err := mem.Count(ctx, model.CollectionTrucks)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Deleting an already-empty collection is fine.
	require.NoError(t, mem.DeleteAll(ctx, model.CollectionTrucks))
}

func TestMemoryQueryMatchesFields(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	truck := &model.Truck{
		TruckID:    "GI-58A",
		DriverName: "John Kamau",
		Cargo:      &model.Cargo{Description: "Cement bags and steel rods"},
	}
	other := &model.Truck{TruckID: "MO-84A", DriverName: "Mary Wanjiku"}
	require.NoError(t, mem.UpsertOne(ctx, model.CollectionTrucks, truck.TruckID, truck))
	require.NoError(t, mem.UpsertOne(ctx, model.CollectionTrucks, other.TruckID, other))

	fields := []string{"truck_id", "driver_name", "cargo.description"}

	var hits []model.Truck
	require.NoError(t, mem.Query(ctx, model.CollectionTrucks, "cement", fields, 10, &hits))
	require.Len(t, hits, 1)
	assert.Equal(t, "GI-58A", hits[0].TruckID)

	hits = nil
	require.NoError(t, mem.Query(ctx, model.CollectionTrucks, "KAMAU", fields, 10, &hits))
	require.Len(t, hits, 1)

	hits = nil
	require.NoError(t, mem.Query(ctx, model.CollectionTrucks, "forklift", fields, 10, &hits))
	assert.Empty(t, hits)
}

func TestMemoryDecodeRequiresSlicePointer(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	var wrong model.Truck
	err := mem.GetAll(ctx, model.CollectionTrucks, 0, &wrong)
	assert.Error(t, err)
}
