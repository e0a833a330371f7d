package seeder

import (
	"strings"
	"time"

	"github.com/runsheet/logistics-data/internal/model"
)

// Baseline sets describe the fleet at the start of the operational day:
// trucks loading or just departed, orders pending, no delays yet. Times are
// anchored to the seeding instant so the demo looks live.

func baselineTrucks(base time.Time) []model.Document {
	trucks := []*model.Truck{
		{
			TruckID: "GI-58A", PlateNumber: "GI-58A",
			DriverID: "driver-001", DriverName: "John Kamau",
			CurrentLocation: locationRef("kisumu-depot"),
			Destination:     locationRef("mombasa-port"),
			Route:           model.Route{ID: "kisumu-mombasa", Distance: 580, EstimatedDuration: 480},
			Status:          "on_time", EstimatedArrival: base.Add(8 * time.Hour),
			Cargo: &model.Cargo{
				Type: "General Cargo", Weight: 15000, Volume: 45,
				Description: "Mixed goods including electronics and household items",
				Priority:    "medium",
			},
		},
		{
			TruckID: "MO-84A", PlateNumber: "MO-84A",
			DriverID: "driver-002", DriverName: "Mary Wanjiku",
			CurrentLocation: locationRef("nairobi-station"),
			Destination:     locationRef("kinara-warehouse"),
			Route:           model.Route{ID: "nairobi-kinara", Distance: 25, EstimatedDuration: 45},
			Status:          "on_time", EstimatedArrival: base.Add(45 * time.Minute),
			Cargo: &model.Cargo{
				Type: "Perishables", Weight: 8000, Volume: 25,
				Description: "Fresh produce including vegetables and fruits for local markets",
				Priority:    "high",
			},
		},
		{
			TruckID: "CE-57A", PlateNumber: "CE-57A",
			DriverID: "driver-003", DriverName: "Peter Ochieng",
			CurrentLocation: locationRef("kisumu-depot"),
			Destination:     locationRef("mombasa-port"),
			Route:           model.Route{ID: "kisumu-mombasa-2", Distance: 580, EstimatedDuration: 480},
			Status:          "on_time", EstimatedArrival: base.Add(8 * time.Hour),
			Cargo: &model.Cargo{
				Type: "Construction Materials", Weight: 20000, Volume: 60,
				Description: "Cement bags and steel rods for construction projects",
				Priority:    "medium",
			},
		},
		{
			TruckID: "KA-123B", PlateNumber: "KA-123B",
			DriverID: "driver-004", DriverName: "Sarah Njeri",
			CurrentLocation: locationRef("nakuru-station"),
			Destination:     locationRef("nairobi-station"),
			Route:           model.Route{ID: "nakuru-nairobi", Distance: 160, EstimatedDuration: 180},
			Status:          "on_time", EstimatedArrival: base.Add(3 * time.Hour),
			Cargo: &model.Cargo{
				Type: "Electronics", Weight: 5000, Volume: 20,
				Description: "Computer equipment and mobile phones for retail stores",
				Priority:    "high",
			},
		},
		{
			TruckID: "KBZ-456C", PlateNumber: "KBZ-456C",
			DriverID: "driver-005", DriverName: "David Mwangi",
			CurrentLocation: locationRef("eldoret-depot"),
			Destination:     locationRef("kisumu-depot"),
			Route:           model.Route{ID: "eldoret-kisumu", Distance: 120, EstimatedDuration: 150},
			Status:          "on_time", EstimatedArrival: base.Add(150 * time.Minute),
			Cargo: &model.Cargo{
				Type: "Agricultural Products", Weight: 12000, Volume: 35,
				Description: "Maize and wheat grain for distribution centers",
				Priority:    "medium",
			},
		},
		{
			TruckID: "KCD-789D", PlateNumber: "KCD-789D",
			DriverID: "driver-006", DriverName: "Grace Akinyi",
			CurrentLocation: locationRef("thika-warehouse"),
			Destination:     locationRef("mombasa-port"),
			Route:           model.Route{ID: "thika-mombasa", Distance: 520, EstimatedDuration: 420},
			Status:          "on_time", EstimatedArrival: base.Add(7 * time.Hour),
			Cargo: &model.Cargo{
				Type: "Textiles", Weight: 8500, Volume: 40,
				Description: "Clothing and fabric materials for export",
				Priority:    "low",
			},
		},
	}

	docs := make([]model.Document, len(trucks))
	for i, truck := range trucks {
		docs[i] = truck
	}
	return docs
}

func baselineOrders(base time.Time) []model.Document {
	orders := []*model.Order{
		{
			OrderID: "ORD-001", Customer: "Safaricom Ltd", CustomerID: "CUST-001",
			Status: "in_transit", Value: 125000,
			Items:   "Network equipment including routers, switches, and fiber optic cables for telecommunications infrastructure",
			TruckID: "GI-58A", Region: "Nairobi", Priority: "high",
			DeliveryETA: base.Add(8 * time.Hour),
		},
		{
			OrderID: "ORD-002", Customer: "Kenya Power", CustomerID: "CUST-002",
			Status: "pending", Value: 89000,
			Items:  "Electrical transformers and power distribution equipment for grid expansion",
			Region: "Mombasa", Priority: "medium",
			DeliveryETA: base.Add(30 * time.Hour),
		},
		{
			OrderID: "ORD-003", Customer: "Equity Bank", CustomerID: "CUST-003",
			Status: "in_transit", Value: 45000,
			Items:   "ATM machines and security equipment for new branch installations",
			TruckID: "MO-84A", Region: "Kisumu", Priority: "urgent",
			DeliveryETA: base.Add(45 * time.Minute),
		},
		{
			OrderID: "ORD-004", Customer: "Tusker Breweries", CustomerID: "CUST-004",
			Status: "pending", Value: 210000,
			Items:   "Brewing equipment including fermentation tanks and bottling machinery",
			TruckID: "CE-57A", Region: "Nakuru", Priority: "medium",
			DeliveryETA: base.Add(9 * time.Hour),
		},
	}

	docs := make([]model.Document, len(orders))
	for i, order := range orders {
		docs[i] = order
	}
	return docs
}

func baselineInventory(base time.Time) []model.Document {
	items := []*model.InventoryItem{
		{
			ItemID: "INV-001", Name: "Diesel Fuel Premium Grade", Category: "Fuel",
			Quantity: 18000, Unit: "liters", Location: "Nairobi Depot",
			Status: model.StockInStock, LastUpdated: base,
		},
		{
			ItemID: "INV-002", Name: "Heavy Duty Truck Tires", Category: "Parts",
			Quantity: 48, Unit: "pieces", Location: "Mombasa Warehouse",
			Status: model.StockInStock, LastUpdated: base,
		},
		{
			ItemID: "INV-003", Name: "Synthetic Engine Oil 15W-40", Category: "Maintenance",
			Quantity: 60, Unit: "bottles", Location: "Kisumu Station",
			Status: model.StockInStock, LastUpdated: base,
		},
		{
			ItemID: "INV-004", Name: "Ceramic Brake Pads Heavy Duty", Category: "Parts",
			Quantity: 120, Unit: "sets", Location: "Nairobi Depot",
			Status: model.StockInStock, LastUpdated: base,
		},
		{
			ItemID: "INV-005", Name: "Radiator Coolant Fluid", Category: "Maintenance",
			Quantity: 35, Unit: "bottles", Location: "Mombasa Warehouse",
			Status: model.StockInStock, LastUpdated: base,
		},
	}

	docs := make([]model.Document, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}

func baselineTickets(base time.Time) []model.Document {
	resolved := base.Add(-18 * time.Hour)
	tickets := []*model.SupportTicket{
		{
			TicketID: "TKT-003", Customer: "Equity Bank", CustomerID: "CUST-003",
			Issue:       "Invoice discrepancy and billing inquiry",
			Description: "Customer questioning additional fuel surcharge and handling fees on delivery invoice. Requesting detailed breakdown of all charges and justification for extra costs.",
			Priority:    "medium", Status: "resolved", AssignedTo: "Mary Wanjiku", ResolvedAt: &resolved,
		},
		{
			TicketID: "TKT-004", Customer: "Nakumatt Holdings", CustomerID: "CUST-005",
			Issue:       "Missing items from shipment manifest",
			Description: "Partial delivery received with 5 items missing from the original shipment manifest. Customer needs immediate investigation and delivery of missing items.",
			Priority:    "high", Status: "open",
		},
	}

	docs := make([]model.Document, len(tickets))
	for i, ticket := range tickets {
		docs[i] = ticket
	}
	return docs
}

// DemoBatch produces the canned document sets for a time-of-day batch id. The
// batch id is matched on its time token: afternoon, evening and night each get
// a progression of the baseline fleet, a "morning" token returns the baseline
// itself. Anything else yields no sets; callers treat that as nothing to
// upsert, not as a failure. Identity keys stay fixed across periods so each
// batch upserts over the previous one.
func DemoBatch(batchID string, base time.Time) (map[string][]model.Document, bool) {
	lowered := strings.ToLower(batchID)
	switch {
	case strings.Contains(lowered, "afternoon"):
		return periodSets(base, afternoonAdjust), true
	case strings.Contains(lowered, "evening"):
		return periodSets(base, eveningAdjust), true
	case strings.Contains(lowered, "night"):
		return periodSets(base, nightAdjust), true
	case strings.Contains(lowered, "morning"):
		return map[string][]model.Document{
			model.CollectionTrucks:         baselineTrucks(base),
			model.CollectionOrders:         baselineOrders(base),
			model.CollectionInventory:      baselineInventory(base),
			model.CollectionSupportTickets: baselineTickets(base),
		}, true
	default:
		return nil, false
	}
}

// DefaultOperationalTime maps a time-of-day batch token to its conventional
// wall-clock time, for callers that omit one.
func DefaultOperationalTime(batchID string) string {
	lowered := strings.ToLower(batchID)
	switch {
	case strings.Contains(lowered, "afternoon"):
		return "14:30"
	case strings.Contains(lowered, "evening"):
		return "19:00"
	case strings.Contains(lowered, "night"):
		return "23:30"
	default:
		return "09:00"
	}
}

type periodAdjust func(trucks []*model.Truck, orders []*model.Order, items []*model.InventoryItem, tickets []*model.SupportTicket, base time.Time)

func periodSets(base time.Time, adjust periodAdjust) map[string][]model.Document {
	truckDocs := baselineTrucks(base)
	orderDocs := baselineOrders(base)
	itemDocs := baselineInventory(base)
	ticketDocs := baselineTickets(base)

	trucks := make([]*model.Truck, len(truckDocs))
	for i, doc := range truckDocs {
		trucks[i] = doc.(*model.Truck)
	}
	orders := make([]*model.Order, len(orderDocs))
	for i, doc := range orderDocs {
		orders[i] = doc.(*model.Order)
	}
	items := make([]*model.InventoryItem, len(itemDocs))
	for i, doc := range itemDocs {
		items[i] = doc.(*model.InventoryItem)
	}
	tickets := make([]*model.SupportTicket, len(ticketDocs))
	for i, doc := range ticketDocs {
		tickets[i] = doc.(*model.SupportTicket)
	}

	adjust(trucks, orders, items, tickets, base)

	return map[string][]model.Document{
		model.CollectionTrucks:         truckDocs,
		model.CollectionOrders:         orderDocs,
		model.CollectionInventory:      itemDocs,
		model.CollectionSupportTickets: ticketDocs,
	}
}

// Afternoon: the fleet is mid-route, first delays appear, the perishables run
// completes.
func afternoonAdjust(trucks []*model.Truck, orders []*model.Order, items []*model.InventoryItem, tickets []*model.SupportTicket, base time.Time) {
	for _, truck := range trucks {
		truck.Status = "in_transit"
	}
	trucks[1].Status = "delayed" // MO-84A stuck in Nairobi traffic
	trucks[1].EstimatedArrival = base.Add(2 * time.Hour)
	trucks[2].Status = "delayed"
	trucks[2].EstimatedArrival = base.Add(9 * time.Hour)

	delivered := base.Add(-30 * time.Minute)
	orders[2].Status = "delivered"
	orders[2].DeliveredAt = &delivered
	orders[3].Status = "in_transit"

	items[0].Quantity = 15000
	items[2].Quantity = 45
	items[4].Quantity = 20
	for _, item := range items {
		item.LastUpdated = base
	}

	tickets[1].Status = "in_progress"
	tickets[1].AssignedTo = "John Kamau"
}

// Evening: long-haul trucks arrive, short routes are done, low-stock warnings
// start showing.
func eveningAdjust(trucks []*model.Truck, orders []*model.Order, items []*model.InventoryItem, tickets []*model.SupportTicket, base time.Time) {
	trucks[1].Status = "on_time"
	trucks[1].CurrentLocation = locationRef("kinara-warehouse")
	trucks[3].Status = "on_time"
	trucks[3].CurrentLocation = locationRef("nairobi-station")
	trucks[4].Status = "on_time"
	trucks[4].CurrentLocation = locationRef("kisumu-depot")
	trucks[0].Status = "in_transit"
	trucks[2].Status = "delayed"
	trucks[2].EstimatedArrival = base.Add(4 * time.Hour)
	trucks[5].Status = "in_transit"

	deliveredEarly := base.Add(-5 * time.Hour)
	deliveredLate := base.Add(-time.Hour)
	orders[0].Status = "in_transit"
	orders[2].Status = "delivered"
	orders[2].DeliveredAt = &deliveredEarly
	orders[3].Status = "delivered"
	orders[3].DeliveredAt = &deliveredLate

	items[0].Quantity = 9500
	items[1].Quantity = 25
	items[1].Status = model.StockLowStock
	items[2].Quantity = 12
	items[2].Status = model.StockLowStock
	items[4].Quantity = 8
	items[4].Status = model.StockLowStock
	for _, item := range items {
		item.LastUpdated = base
	}

	resolved := base.Add(-2 * time.Hour)
	tickets[1].Status = "resolved"
	tickets[1].AssignedTo = "John Kamau"
	tickets[1].ResolvedAt = &resolved
}

// Night: the fleet is resting, remaining deliveries are done, depleted stock
// is visible.
func nightAdjust(trucks []*model.Truck, orders []*model.Order, items []*model.InventoryItem, tickets []*model.SupportTicket, base time.Time) {
	for _, truck := range trucks {
		truck.Status = "resting"
		truck.Destination = truck.CurrentLocation
	}
	trucks[0].CurrentLocation = locationRef("mombasa-port")
	trucks[2].CurrentLocation = locationRef("mombasa-port")
	trucks[5].CurrentLocation = locationRef("mombasa-port")

	delivered := base.Add(-3 * time.Hour)
	for _, order := range orders {
		if order.Status != "delivered" && order.Status != "pending" {
			order.Status = "delivered"
			order.DeliveredAt = &delivered
		}
	}

	items[0].Quantity = 6000
	items[2].Quantity = 0
	items[2].Status = model.StockOutOfStock
	items[4].Quantity = 3
	items[4].Status = model.StockLowStock
	for _, item := range items {
		item.LastUpdated = base
	}

	resolved := base.Add(-6 * time.Hour)
	for _, ticket := range tickets {
		if ticket.Status == "in_progress" {
			ticket.Status = "resolved"
			ticket.ResolvedAt = &resolved
		}
	}
}
