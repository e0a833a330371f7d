package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/runsheet/logistics-data/internal/config"
	"github.com/runsheet/logistics-data/internal/model"
)

type Mongo struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
	log     zerolog.Logger
}

// NewMongo connects and pings; a dead store is a startup failure, not
// something to discover on the first request.
func NewMongo(ctx context.Context, cfg config.MongoConfig, log zerolog.Logger) (*Mongo, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(cfg.RequestTimeout)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrStoreUnavailable, err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", ErrStoreUnavailable, err)
	}

	log.Info().Str("database", cfg.Database).Msg("connected to document store")
	return &Mongo{
		client:  client,
		db:      client.Database(cfg.Database),
		timeout: cfg.RequestTimeout,
		log:     log,
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureCollections creates missing collections and the unique index on each
// collection's identity field. Safe to call on every boot.
func (m *Mongo) EnsureCollections(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	existing, err := m.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return classify(err)
	}
	known := make(map[string]bool, len(existing))
	for _, name := range existing {
		known[name] = true
	}

	for _, collection := range model.SeedOrder {
		if !known[collection] {
			if err := m.db.CreateCollection(ctx, collection); err != nil {
				return classify(fmt.Errorf("create collection %s: %w", collection, err))
			}
			m.log.Info().Str("collection", collection).Msg("created collection")
		}

		key, _ := model.NaturalKey(collection)
		indexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: key, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "created_at", Value: -1}},
			},
		}
		if _, err := m.db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return classify(fmt.Errorf("ensure indexes on %s: %w", collection, err))
		}
	}
	return nil
}

func (m *Mongo) UpsertOne(ctx context.Context, collection, id string, doc any) error {
	key, ok := model.NaturalKey(collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.db.Collection(collection).ReplaceOne(
		ctx,
		bson.M{key: id},
		doc,
		options.Replace().SetUpsert(true),
	)
	return classify(err)
}

// UpsertMany is a single unordered bulk round-trip. When some writes are
// rejected the successes stay in place and the failure lists the identities
// that were not written.
func (m *Mongo) UpsertMany(ctx context.Context, collection string, docs []Doc) error {
	if len(docs) == 0 {
		return nil
	}
	key, ok := model.NaturalKey(collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", collection)
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{key: doc.ID}).
			SetReplacement(doc.Body).
			SetUpsert(true))
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.db.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return bulkWriteFailure(collection, docs, err)
	}
	return nil
}

// bulkWriteFailure maps per-document driver errors back to the identities
// that were rejected. The unordered bulk write leaves the other documents in
// place, so the caller learns exactly which ids did not land. Errors that are
// not per-document fall through to classify.
func bulkWriteFailure(collection string, docs []Doc, err error) error {
	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) || len(bulkErr.WriteErrors) == 0 {
		return classify(err)
	}
	failed := make([]string, 0, len(bulkErr.WriteErrors))
	for _, writeErr := range bulkErr.WriteErrors {
		if writeErr.Index >= 0 && writeErr.Index < len(docs) {
			failed = append(failed, docs[writeErr.Index].ID)
		}
	}
	return &PartialBulkWriteError{
		Collection: collection,
		Succeeded:  len(docs) - len(failed),
		FailedIDs:  failed,
	}
}

func (m *Mongo) DeleteAll(ctx context.Context, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.db.Collection(collection).DeleteMany(ctx, bson.M{})
	return classify(err)
}

func (m *Mongo) Count(ctx context.Context, collection string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	count, err := m.db.Collection(collection).CountDocuments(ctx, bson.M{})
	return count, classify(err)
}

func (m *Mongo) GetAll(ctx context.Context, collection string, limit int64, out any) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := m.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return classify(err)
	}
	return classify(cursor.All(ctx, out))
}

// Query matches the text case-insensitively against the named fields. Good
// enough for the dashboard; relevance ranking is explicitly not promised.
func (m *Mongo) Query(ctx context.Context, collection, text string, fields []string, limit int64, out any) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	clauses := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: bson.M{
			"$regex": primitive.Regex{Pattern: escapeRegex(text), Options: "i"},
		}})
	}
	filter := bson.M{"$or": clauses}

	opts := options.Find()
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := m.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return classify(err)
	}
	return classify(cursor.All(ctx, out))
}

func escapeRegex(text string) string {
	special := `\.+*?()|[]{}^$`
	escaped := make([]rune, 0, len(text))
	for _, r := range text {
		for _, s := range special {
			if r == s {
				escaped = append(escaped, '\\')
				break
			}
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
