package model

// Collection names are fixed; every document collection the platform knows
// about is listed here and nowhere else.
const (
	CollectionTrucks          = "trucks"
	CollectionLocations       = "locations"
	CollectionOrders          = "orders"
	CollectionInventory       = "inventory"
	CollectionSupportTickets  = "support_tickets"
	CollectionAnalyticsEvents = "analytics_events"
)

// SeedOrder is the dependency order for seeding: locations come first because
// trucks embed location references resolved against them.
var SeedOrder = []string{
	CollectionLocations,
	CollectionTrucks,
	CollectionOrders,
	CollectionInventory,
	CollectionSupportTickets,
	CollectionAnalyticsEvents,
}

var naturalKeys = map[string]string{
	CollectionTrucks:          "truck_id",
	CollectionLocations:       "location_id",
	CollectionOrders:          "order_id",
	CollectionInventory:       "item_id",
	CollectionSupportTickets:  "ticket_id",
	CollectionAnalyticsEvents: "event_id",
}

// NaturalKey returns the identity field for a collection.
func NaturalKey(collection string) (string, bool) {
	key, ok := naturalKeys[collection]
	return key, ok
}

// Upload payloads historically use a couple of friendlier names.
var collectionAliases = map[string]string{
	"fleet":   CollectionTrucks,
	"support": CollectionSupportTickets,
	"tickets": CollectionSupportTickets,
}

// ResolveCollection maps an upload data type to a collection name, accepting
// known aliases. Returns false for anything that is not a collection.
func ResolveCollection(name string) (string, bool) {
	if mapped, ok := collectionAliases[name]; ok {
		return mapped, true
	}
	if _, ok := naturalKeys[name]; ok {
		return name, true
	}
	return "", false
}
