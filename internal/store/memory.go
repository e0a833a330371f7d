package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/runsheet/logistics-data/internal/model"
)

// Memory is an in-process Store with the same upsert-by-identity semantics as
// the Mongo adapter. It backs tests and store-less local runs.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.M
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]bson.M)}
}

func (m *Memory) EnsureCollections(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, collection := range model.SeedOrder {
		if m.collections[collection] == nil {
			m.collections[collection] = make(map[string]bson.M)
		}
	}
	return nil
}

func (m *Memory) UpsertOne(_ context.Context, collection, id string, doc any) error {
	body, err := toBSON(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]bson.M)
	}
	m.collections[collection][id] = body
	return nil
}

func (m *Memory) UpsertMany(ctx context.Context, collection string, docs []Doc) error {
	for _, doc := range docs {
		if err := m.UpsertOne(ctx, collection, doc.ID, doc.Body); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) DeleteAll(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = make(map[string]bson.M)
	return nil
}

func (m *Memory) Count(_ context.Context, collection string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.collections[collection])), nil
}

func (m *Memory) GetAll(_ context.Context, collection string, limit int64, out any) error {
	m.mu.RLock()
	docs := make([]bson.M, 0, len(m.collections[collection]))
	for _, doc := range m.collections[collection] {
		docs = append(docs, doc)
	}
	m.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docTime(docs[i], "created_at").After(docTime(docs[j], "created_at"))
	})
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return decodeAll(docs, out)
}

func (m *Memory) Query(_ context.Context, collection, text string, fields []string, limit int64, out any) error {
	needle := strings.ToLower(text)

	m.mu.RLock()
	matched := make([]bson.M, 0)
	for _, doc := range m.collections[collection] {
		for _, field := range fields {
			value, ok := lookupField(doc, field)
			if ok && strings.Contains(strings.ToLower(value), needle) {
				matched = append(matched, doc)
				break
			}
		}
	}
	m.mu.RUnlock()

	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return decodeAll(matched, out)
}

func toBSON(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var body bson.M
	if err := bson.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// decodeAll unmarshals stored documents into *[]T, whatever T the caller
// asked for, using the same bson codec path as the live driver.
func decodeAll(docs []bson.M, out any) error {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr || outValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("out must be a pointer to a slice, got %T", out)
	}
	sliceValue := outValue.Elem()
	elemType := sliceValue.Type().Elem()

	result := reflect.MakeSlice(sliceValue.Type(), 0, len(docs))
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceValue.Set(result)
	return nil
}

func docTime(doc bson.M, field string) time.Time {
	switch v := doc[field].(type) {
	case primitive.DateTime:
		return v.Time()
	case time.Time:
		return v
	default:
		return time.Time{}
	}
}

// lookupField resolves a dotted path ("cargo.description") into a string.
func lookupField(doc bson.M, path string) (string, bool) {
	parts := strings.Split(path, ".")
	var current any = doc
	for _, part := range parts {
		asMap, ok := current.(bson.M)
		if !ok {
			return "", false
		}
		current, ok = asMap[part]
		if !ok {
			return "", false
		}
	}
	value, ok := current.(string)
	return value, ok
}
