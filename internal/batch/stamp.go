package batch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/runsheet/logistics-data/internal/model"
)

// ErrInvalidOperationalTime means the batch's declared clock time is not a
// valid HH:MM. The whole stamping call aborts; a silently defaulted time would
// corrupt the demo's time-of-day narrative.
var ErrInvalidOperationalTime = errors.New("invalid operational time")

// Stamper attaches batch envelopes to documents before write.
type Stamper struct {
	now func() time.Time
}

func NewStamper() *Stamper {
	return &Stamper{now: time.Now}
}

// NewStamperAt fixes the clock, for deterministic tests.
func NewStamperAt(now func() time.Time) *Stamper {
	return &Stamper{now: now}
}

// Stamp fills every document's envelope for one batch. The ingestion
// timestamp is computed once per call so all documents in a batch agree.
// CreatedAt is set only if the record does not already carry one; UpdatedAt
// is always refreshed.
func (s *Stamper) Stamp(docs []model.Document, batchID, operationalTime string) error {
	return s.stamp(docs, batchID, operationalTime, DataVersion(batchID))
}

// StampVersion is Stamp with a pinned data version, used by baseline seeding
// which always writes v1.
func (s *Stamper) StampVersion(docs []model.Document, batchID, operationalTime, version string) error {
	return s.stamp(docs, batchID, operationalTime, version)
}

func (s *Stamper) stamp(docs []model.Document, batchID, operationalTime, version string) error {
	hour, minute, err := ParseOperationalTime(operationalTime)
	if err != nil {
		return err
	}

	ingestedAt := s.now().UTC()
	operationalTS := time.Date(
		ingestedAt.Year(), ingestedAt.Month(), ingestedAt.Day(),
		hour, minute, 0, 0, time.UTC,
	)

	for _, doc := range docs {
		env := doc.Envelope()
		env.BatchID = batchID
		env.OperationalTime = operationalTime
		env.IngestionTimestamp = ingestedAt
		env.OperationalTimestamp = operationalTS
		env.DataVersion = version
		if env.CreatedAt.IsZero() {
			env.CreatedAt = ingestedAt
		}
		env.UpdatedAt = ingestedAt
	}
	return nil
}

// ParseOperationalTime validates a wall-clock string of the form HH:MM.
func ParseOperationalTime(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidOperationalTime, raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %q out of range", ErrInvalidOperationalTime, parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %q out of range", ErrInvalidOperationalTime, parts[1])
	}
	return hour, minute, nil
}

// DataVersion derives the informational version marker from the batch id's
// underscore token count. Stable for the same batch id across calls; never
// used for conflict resolution.
func DataVersion(batchID string) string {
	tokens := strings.Split(batchID, "_")
	return "v" + strconv.Itoa(len(tokens)+1)
}
