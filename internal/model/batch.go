package model

import "time"

// BatchEnvelope carries the temporal metadata attached to every stored
// document. OperationalTimestamp is the declared business-clock time projected
// onto the ingestion date; IngestionTimestamp is real wall-clock time.
type BatchEnvelope struct {
	BatchID              string    `bson:"batch_id,omitempty" json:"batch_id,omitempty"`
	OperationalTime      string    `bson:"operational_time,omitempty" json:"operational_time,omitempty"`
	IngestionTimestamp   time.Time `bson:"ingestion_timestamp,omitempty" json:"ingestion_timestamp,omitempty"`
	OperationalTimestamp time.Time `bson:"operational_timestamp,omitempty" json:"operational_timestamp,omitempty"`
	DataVersion          string    `bson:"data_version,omitempty" json:"data_version,omitempty"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}

// Envelope makes any struct embedding BatchEnvelope satisfy Document.
func (e *BatchEnvelope) Envelope() *BatchEnvelope { return e }

// Document is anything the seeding layer can stamp and upsert by identity.
type Document interface {
	DocID() string
	Envelope() *BatchEnvelope
}

// DemoState is the platform's current time-of-day operational state, derived
// from batch metadata on stored trucks.
type DemoState string

const (
	StateMorningBaseline DemoState = "morning_baseline"
	StateAfternoon       DemoState = "afternoon"
	StateEvening         DemoState = "evening"
	StateNight           DemoState = "night"
	StateUnknown         DemoState = "unknown"
)
