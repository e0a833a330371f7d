package model

import "time"

// Stock status thresholds are applied by whoever produces the document; the
// stored status is taken as-is.
const (
	StockInStock    = "in_stock"
	StockLowStock   = "low_stock"
	StockOutOfStock = "out_of_stock"
)

type InventoryItem struct {
	ItemID      string    `bson:"item_id" json:"item_id"`
	Name        string    `bson:"name" json:"name"`
	Category    string    `bson:"category" json:"category"`
	Quantity    int       `bson:"quantity" json:"quantity"`
	Unit        string    `bson:"unit" json:"unit"`
	Location    string    `bson:"location" json:"location"`
	Status      string    `bson:"status" json:"status"`
	LastUpdated time.Time `bson:"last_updated,omitempty" json:"last_updated,omitempty"`

	BatchEnvelope `bson:",inline"`
}

func (i *InventoryItem) DocID() string { return i.ItemID }
