package ingest

import (
	"context"
	"strings"

	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

// defaultLocation anchors truck records whose location cannot be resolved. A
// dangling reference would break the map view, so unresolvable locations snap
// to the Nairobi hub.
var defaultLocation = model.LocationRef{
	ID:          "nairobi-station",
	Name:        "Nairobi Station",
	Type:        "station",
	Coordinates: model.Coordinates{Lat: -1.2921, Lon: 36.8219},
	Address:     "Nairobi, Kenya",
}

// locator resolves upload location values against the stored locations
// collection. Loaded once per ingest call; uploads are small enough that a
// full snapshot is cheaper than per-row queries.
type locator struct {
	byID   map[string]model.LocationRef
	byName map[string]model.LocationRef
}

func newLocator(ctx context.Context, st store.Store) (*locator, error) {
	var locations []model.Location
	if err := st.GetAll(ctx, model.CollectionLocations, 0, &locations); err != nil {
		return nil, err
	}
	l := &locator{
		byID:   make(map[string]model.LocationRef, len(locations)),
		byName: make(map[string]model.LocationRef, len(locations)),
	}
	for _, location := range locations {
		ref := location.Ref()
		l.byID[location.LocationID] = ref
		l.byName[strings.ToLower(location.Name)] = ref
	}
	return l, nil
}

// resolve maps an upload value to a location reference. Accepts either a
// nested object or a bare string naming a location. Resolution order: known
// id, known name, inline coordinates, default hub.
func (l *locator) resolve(value any) model.LocationRef {
	switch v := value.(type) {
	case map[string]any:
		if id := asString(field(v, "id")); id != "" {
			if ref, ok := l.byID[id]; ok {
				return ref
			}
		}
		if name := asString(field(v, "name")); name != "" {
			if ref, ok := l.byName[strings.ToLower(name)]; ok {
				return ref
			}
		}
		return l.inlineRef(v)
	case string:
		key := strings.TrimSpace(v)
		if key == "" {
			return defaultLocation
		}
		if ref, ok := l.byID[key]; ok {
			return ref
		}
		if ref, ok := l.byName[strings.ToLower(key)]; ok {
			return ref
		}
		return defaultLocation
	default:
		return defaultLocation
	}
}

// inlineRef builds a reference from the raw object when the catalog has no
// match. Requires coordinates; otherwise the default hub wins.
func (l *locator) inlineRef(raw map[string]any) model.LocationRef {
	coords := subRecord(raw, "coordinates")
	if coords == nil {
		return defaultLocation
	}
	lat, lon := asFloat(field(coords, "lat")), asFloat(field(coords, "lon"))
	if lat == 0 && lon == 0 {
		return defaultLocation
	}
	ref := model.LocationRef{
		ID:          asString(field(raw, "id")),
		Name:        asString(field(raw, "name")),
		Type:        asString(field(raw, "type")),
		Coordinates: model.Coordinates{Lat: lat, Lon: lon},
		Address:     asString(field(raw, "address")),
	}
	if ref.ID == "" {
		ref.ID = strings.ToLower(strings.ReplaceAll(ref.Name, " ", "-"))
	}
	if ref.Name == "" {
		ref.Name = ref.ID
	}
	return ref
}
