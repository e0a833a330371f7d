package batch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runsheet/logistics-data/internal/model"
)

// ErrMissingIdentity means a record has no resolvable document identity. Such
// records are never written: a store-generated key would orphan the document
// from every later upsert targeting the same entity.
var ErrMissingIdentity = errors.New("missing document identity")

// ResolveIdentity derives the upsert key for a raw record. Each collection has
// exactly one natural key field; trucks may fall back to the plate number when
// the key field itself is absent.
func ResolveIdentity(collection string, record map[string]any) (string, error) {
	key, ok := model.NaturalKey(collection)
	if !ok {
		return "", fmt.Errorf("unknown collection %q", collection)
	}
	if id := stringField(record, key); id != "" {
		return id, nil
	}
	if collection == model.CollectionTrucks {
		if plate := stringField(record, "plate_number"); plate != "" {
			return strings.ToLower(plate), nil
		}
	}
	return "", fmt.Errorf("%w: %s record has no %s", ErrMissingIdentity, collection, key)
}

func stringField(record map[string]any, field string) string {
	value, ok := record[field]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
