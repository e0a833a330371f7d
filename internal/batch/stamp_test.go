package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsheet/logistics-data/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStampFillsEnvelope(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)
	stamper := NewStamperAt(fixedClock(now))

	docs := []model.Document{
		&model.Truck{TruckID: "GI-58A"},
		&model.Truck{TruckID: "MO-84A"},
	}
	require.NoError(t, stamper.Stamp(docs, "afternoon_ops", "14:30"))

	for _, doc := range docs {
		env := doc.Envelope()
		assert.Equal(t, "afternoon_ops", env.BatchID)
		assert.Equal(t, "14:30", env.OperationalTime)
		assert.Equal(t, now, env.IngestionTimestamp)
		assert.Equal(t, time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC), env.OperationalTimestamp)
		assert.Equal(t, "v3", env.DataVersion)
		assert.Equal(t, now, env.CreatedAt)
		assert.Equal(t, now, env.UpdatedAt)
	}
}

func TestStampSharesIngestionTimestamp(t *testing.T) {
	current := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	stamper := NewStamperAt(func() time.Time {
		current = current.Add(time.Second)
		return current
	})

	docs := []model.Document{
		&model.Order{OrderID: "ORD-001"},
		&model.Order{OrderID: "ORD-002"},
		&model.Order{OrderID: "ORD-003"},
	}
	require.NoError(t, stamper.Stamp(docs, "evening_ops", "19:00"))

	first := docs[0].Envelope().IngestionTimestamp
	for _, doc := range docs {
		assert.Equal(t, first, doc.Envelope().IngestionTimestamp)
	}
}

func TestStampPreservesCreatedAt(t *testing.T) {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	stamper := NewStamperAt(fixedClock(now))

	doc := &model.Order{OrderID: "ORD-001"}
	doc.CreatedAt = created
	require.NoError(t, stamper.Stamp([]model.Document{doc}, "night_ops", "23:30"))

	assert.Equal(t, created, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
}

func TestStampVersionPinsVersion(t *testing.T) {
	stamper := NewStamperAt(fixedClock(time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)))

	doc := &model.Truck{TruckID: "GI-58A"}
	require.NoError(t, stamper.StampVersion([]model.Document{doc}, "morning_baseline", "09:00", "v1"))
	assert.Equal(t, "v1", doc.DataVersion)
}

func TestStampRejectsInvalidOperationalTime(t *testing.T) {
	stamper := NewStamper()
	docs := []model.Document{&model.Truck{TruckID: "GI-58A"}}

	for _, raw := range []string{"", "930", "9:99", "25:00", "aa:bb", "12:34:56"} {
		err := stamper.Stamp(docs, "afternoon_ops", raw)
		assert.ErrorIs(t, err, ErrInvalidOperationalTime, "input %q", raw)
	}
	// Nothing was stamped by the failed calls.
	assert.Empty(t, docs[0].Envelope().BatchID)
}

func TestParseOperationalTime(t *testing.T) {
	hour, minute, err := ParseOperationalTime("09:05")
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 5, minute)

	hour, minute, err = ParseOperationalTime("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, hour)
	assert.Equal(t, 59, minute)
}

func TestDataVersionTokenCount(t *testing.T) {
	assert.Equal(t, "v2", DataVersion("morning"))
	assert.Equal(t, "v3", DataVersion("afternoon_ops"))
	assert.Equal(t, "v4", DataVersion("evening_ops_final"))
	assert.Equal(t, DataVersion("afternoon_ops"), DataVersion("afternoon_ops"))
}
