package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/batch"
	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/seeder"
	"github.com/runsheet/logistics-data/internal/store"
)

func newTestPipeline() (*Pipeline, *store.Memory) {
	mem := store.NewMemory()
	sd := seeder.New(mem, batch.NewStamper(), zerolog.Nop())
	return New(mem, sd, zerolog.Nop()), mem
}

func TestIngestCSVSkipsRowsWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	var rows []string
	rows = append(rows, "item_id,name,category,quantity,unit,location")
	rows = append(rows,
		"INV-001,Diesel Fuel,Fuel,15000,liters,Nairobi Depot",
		"INV-002,Truck Tires,Parts,25,pieces,Mombasa Warehouse",
		"INV-003,Engine Oil,Maintenance,0,bottles,Kisumu Station",
		",Brake Pads,Parts,120,sets,Nairobi Depot", // no identity
		"INV-005,Coolant,Maintenance,8,bottles,Mombasa Warehouse",
		"INV-006,Air Filters,Parts,60,pieces,Nairobi Depot",
		"INV-007,Wiper Blades,Parts,200,pieces,Thika Warehouse",
		"INV-008,Hydraulic Fluid,Maintenance,40,bottles,Eldoret Depot",
		"INV-009,Mud Flaps,Parts,80,pieces,Nakuru Station",
		"INV-010,Grease,Maintenance,55,tubs,Nairobi Depot",
	)

	result, err := pipeline.IngestCSV(ctx, "inventory", strings.NewReader(strings.Join(rows, "\n")), "afternoon_ops", "14:30")
	require.NoError(t, err)
	assert.Equal(t, 9, result.RecordCount)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "afternoon_ops", result.BatchID)
	assert.Equal(t, "v3", result.DataVersion)

	count, err := mem.Count(ctx, model.CollectionInventory)
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)
}

func TestIngestCSVSkipsRowsWithMalformedQuantity(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	var rows []string
	rows = append(rows, "item_id,name,category,quantity,unit,location")
	rows = append(rows,
		"INV-001,Diesel Fuel,Fuel,15000,liters,Nairobi Depot",
		"INV-002,Truck Tires,Parts,25,pieces,Mombasa Warehouse",
		"INV-003,Engine Oil,Maintenance,70,bottles,Kisumu Station",
		"INV-004,Brake Pads,Parts,120,sets,Nairobi Depot",
		"INV-005,Coolant,Maintenance,abc,bottles,Mombasa Warehouse", // garbage quantity
		"INV-006,Air Filters,Parts,60,pieces,Nairobi Depot",
		"INV-007,Wiper Blades,Parts,200,pieces,Thika Warehouse",
		"INV-008,Hydraulic Fluid,Maintenance,40,bottles,Eldoret Depot",
		"INV-009,Mud Flaps,Parts,80,pieces,Nakuru Station",
		"INV-010,Grease,Maintenance,55,tubs,Nairobi Depot",
	)

	result, err := pipeline.IngestCSV(ctx, "inventory", strings.NewReader(strings.Join(rows, "\n")), "morning_refresh", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, result.RecordCount)
	assert.Equal(t, 1, result.Skipped)

	var items []model.InventoryItem
	require.NoError(t, mem.GetAll(ctx, model.CollectionInventory, 0, &items))
	require.Len(t, items, 9)
	for _, item := range items {
		assert.NotEqual(t, "INV-005", item.ItemID)
	}
}

func TestIngestCSVDefaultsEmptyQuantity(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	csv := "item_id,name,quantity\nINV-001,Diesel Fuel,\n"
	result, err := pipeline.IngestCSV(ctx, "inventory", strings.NewReader(csv), "morning_refresh", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordCount)
	assert.Zero(t, result.Skipped)

	var items []model.InventoryItem
	require.NoError(t, mem.GetAll(ctx, model.CollectionInventory, 0, &items))
	require.Len(t, items, 1)
	assert.Zero(t, items[0].Quantity)
	assert.Equal(t, model.StockOutOfStock, items[0].Status)
}

func TestIngestRecordsSkipsMalformedOrderValue(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	records := []map[string]any{
		{"order_id": "ORD-100", "customer": "Good Ltd", "value": "45000"},
		{"order_id": "ORD-101", "customer": "Typo Ltd", "value": "forty-five"},
	}
	result, err := pipeline.IngestRecords(ctx, "orders", records, "afternoon_ops", "14:30")
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordCount)
	assert.Equal(t, 1, result.Skipped)

	var orders []model.Order
	require.NoError(t, mem.GetAll(ctx, model.CollectionOrders, 0, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-100", orders[0].OrderID)
	assert.Equal(t, 45000.0, orders[0].Value)
}

func TestIngestRecordsResolvesTruckLocations(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	// Seed the location catalog first, the way a real upload sequence would.
	sd := seeder.New(mem, batch.NewStamper(), zerolog.Nop())
	require.NoError(t, sd.SeedIfEmpty(ctx))

	records := []map[string]any{
		{"truck_id": "KX-100A", "driver_name": "Test Driver", "current_location": "mombasa-port", "destination": "Nairobi Station"},
		{"truck_id": "KX-101B", "driver_name": "Other Driver", "current_location": "nowhere-special", "destination": ""},
	}
	result, err := pipeline.IngestRecords(ctx, "fleet", records, "evening_ops", "19:00")
	require.NoError(t, err)
	assert.Equal(t, model.CollectionTrucks, result.Collection)
	assert.Equal(t, 2, result.RecordCount)

	var trucks []model.Truck
	require.NoError(t, mem.GetAll(ctx, model.CollectionTrucks, 0, &trucks))
	byID := map[string]model.Truck{}
	for _, truck := range trucks {
		byID[truck.TruckID] = truck
	}

	known := byID["KX-100A"]
	assert.Equal(t, "mombasa-port", known.CurrentLocation.ID)
	assert.Equal(t, "nairobi-station", known.Destination.ID)
	assert.InDelta(t, -4.0435, known.CurrentLocation.Coordinates.Lat, 0.001)

	// Unresolvable references snap to the default hub.
	unknown := byID["KX-101B"]
	assert.Equal(t, "nairobi-station", unknown.CurrentLocation.ID)
	assert.Equal(t, "nairobi-station", unknown.Destination.ID)
}

func TestIngestRecordsRejectsUnknownCollection(t *testing.T) {
	ctx := context.Background()
	pipeline, _ := newTestPipeline()

	_, err := pipeline.IngestRecords(ctx, "drivers", nil, "afternoon_ops", "14:30")
	assert.Error(t, err)
}

func TestIngestRecordsRejectsInvalidOperationalTime(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	records := []map[string]any{{"order_id": "ORD-100"}}
	_, err := pipeline.IngestRecords(ctx, "orders", records, "afternoon_ops", "2pm")
	assert.ErrorIs(t, err, batch.ErrInvalidOperationalTime)

	count, countErr := mem.Count(ctx, model.CollectionOrders)
	require.NoError(t, countErr)
	assert.Zero(t, count)
}

func TestIngestRecordsAllRowsSkipped(t *testing.T) {
	ctx := context.Background()
	pipeline, mem := newTestPipeline()

	records := []map[string]any{{"customer": "No ID Ltd"}}
	result, err := pipeline.IngestRecords(ctx, "orders", records, "afternoon_ops", "14:30")
	require.NoError(t, err)
	assert.Zero(t, result.RecordCount)
	assert.Equal(t, 1, result.Skipped)

	count, countErr := mem.Count(ctx, model.CollectionOrders)
	require.NoError(t, countErr)
	assert.Zero(t, count)
}
