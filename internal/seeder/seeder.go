package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/runsheet/logistics-data/internal/batch"
	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

// BaselineBatchID is the batch id every baseline seed writes.
const BaselineBatchID = "morning_baseline"

// Seeder owns every write path into the document store: full resets, default
// seeds, baseline seeds and incremental batch upserts. Operations are
// idempotent individually but must not run concurrently with each other;
// callers serialize.
type Seeder struct {
	store   store.Store
	stamper *batch.Stamper
	log     zerolog.Logger
	now     func() time.Time
}

func New(st store.Store, stamper *batch.Stamper, log zerolog.Logger) *Seeder {
	return &Seeder{store: st, stamper: stamper, log: log, now: time.Now}
}

// ClearAll deletes every document in every collection. Fails fast on the
// first collection that cannot be cleared; a partial clear is recoverable by
// retrying or by ForceReseed.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, collection := range model.SeedOrder {
		if err := s.store.DeleteAll(ctx, collection); err != nil {
			return fmt.Errorf("clear %s: %w", collection, err)
		}
		s.log.Info().Str("collection", collection).Msg("cleared collection")
	}
	return nil
}

// SeedIfEmpty seeds default demo data into all collections, but only when the
// trucks collection is empty. Calling it twice in a row seeds once.
func (s *Seeder) SeedIfEmpty(ctx context.Context) error {
	count, err := s.store.Count(ctx, model.CollectionTrucks)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info().Int64("trucks", count).Msg("data already present, skipping seed")
		return nil
	}
	return s.seedDefaults(ctx)
}

// ForceReseed is ClearAll followed by a seed with the emptiness check
// bypassed. The recovery path for any partial seeding state.
func (s *Seeder) ForceReseed(ctx context.Context) error {
	if err := s.ClearAll(ctx); err != nil {
		return err
	}
	return s.seedDefaults(ctx)
}

// SeedBaseline seeds the morning-baseline demo snapshot, stamping every
// document with the morning_baseline batch at the given operational time.
// Skipped when trucks already exist.
func (s *Seeder) SeedBaseline(ctx context.Context, operationalTime string) error {
	if _, _, err := batch.ParseOperationalTime(operationalTime); err != nil {
		return err
	}

	count, err := s.store.Count(ctx, model.CollectionTrucks)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info().Int64("trucks", count).Msg("baseline data already present, skipping seed")
		return nil
	}

	base := s.now().UTC()
	sets := map[string][]model.Document{
		model.CollectionLocations:       demoLocations(),
		model.CollectionTrucks:          baselineTrucks(base),
		model.CollectionOrders:          baselineOrders(base),
		model.CollectionInventory:       baselineInventory(base),
		model.CollectionSupportTickets:  baselineTickets(base),
		model.CollectionAnalyticsEvents: demoAnalyticsEvents(base),
	}

	for _, collection := range model.SeedOrder {
		docs := sets[collection]
		// Baseline pins the version marker to v1 regardless of token count.
		if err := s.stamper.StampVersion(docs, BaselineBatchID, operationalTime, "v1"); err != nil {
			return err
		}
		if err := s.write(ctx, collection, docs); err != nil {
			return fmt.Errorf("seed baseline %s: %w", collection, err)
		}
	}
	s.log.Info().Str("operational_time", operationalTime).Msg("baseline seeding completed")
	return nil
}

// UpsertBatch stamps the documents with the batch envelope and bulk-upserts
// them into one collection. Existing documents with the same identity are
// fully replaced.
func (s *Seeder) UpsertBatch(ctx context.Context, collection string, docs []model.Document, batchID, operationalTime string) (int, error) {
	if _, ok := model.NaturalKey(collection); !ok {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}
	for _, doc := range docs {
		if doc.DocID() == "" {
			return 0, fmt.Errorf("%w: %s batch contains a document without identity",
				batch.ErrMissingIdentity, collection)
		}
	}

	if err := s.stamper.Stamp(docs, batchID, operationalTime); err != nil {
		return 0, err
	}
	if err := s.write(ctx, collection, docs); err != nil {
		return 0, err
	}

	s.log.Info().
		Str("collection", collection).
		Str("batch_id", batchID).
		Int("documents", len(docs)).
		Msg("batch upserted")
	return len(docs), nil
}

// seedDefaults writes the default demo snapshot in dependency order:
// locations before everything that references them. Fails fast; a partially
// seeded state is left for ForceReseed to recover.
func (s *Seeder) seedDefaults(ctx context.Context) error {
	base := s.now().UTC()
	sets := map[string][]model.Document{
		model.CollectionLocations:       demoLocations(),
		model.CollectionTrucks:          demoTrucks(),
		model.CollectionOrders:          demoOrders(),
		model.CollectionInventory:       demoInventory(),
		model.CollectionSupportTickets:  demoTickets(),
		model.CollectionAnalyticsEvents: demoAnalyticsEvents(base),
	}

	for _, collection := range model.SeedOrder {
		docs := sets[collection]
		s.applyAudit(docs)
		if err := s.write(ctx, collection, docs); err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
		s.log.Info().Str("collection", collection).Int("documents", len(docs)).Msg("seeded collection")
	}
	return nil
}

// applyAudit sets audit timestamps on unstamped seed documents so that
// created_at ordering works without a batch envelope.
func (s *Seeder) applyAudit(docs []model.Document) {
	now := s.now().UTC()
	for _, doc := range docs {
		env := doc.Envelope()
		if env.CreatedAt.IsZero() {
			env.CreatedAt = now
		}
		env.UpdatedAt = now
	}
}

func (s *Seeder) write(ctx context.Context, collection string, docs []model.Document) error {
	payload := make([]store.Doc, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, store.Doc{ID: doc.DocID(), Body: doc})
	}
	return s.store.UpsertMany(ctx, collection, payload)
}
