package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/runsheet/logistics-data/internal/model"
)

// Canned demo documents. The default seed uses fixed timestamps so repeated
// seeds produce identical documents; baseline and period sets are anchored to
// the seeding time for the demo narrative.

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(fmt.Sprintf("bad demo timestamp %q: %v", value, err))
	}
	return t
}

func demoLocations() []model.Document {
	locations := []*model.Location{
		{
			LocationID:  "nairobi-station",
			Name:        "Nairobi Station",
			Type:        "station",
			Coordinates: model.Coordinates{Lat: -1.2921, Lon: 36.8219},
			Address:     "Nairobi, Kenya",
			Region:      "Central",
		},
		{
			LocationID:  "mombasa-port",
			Name:        "Mombasa Port",
			Type:        "port",
			Coordinates: model.Coordinates{Lat: -4.0435, Lon: 39.6682},
			Address:     "Mombasa, Kenya",
			Region:      "Coast",
		},
		{
			LocationID:  "kisumu-depot",
			Name:        "Kisumu Depot",
			Type:        "depot",
			Coordinates: model.Coordinates{Lat: -0.0917, Lon: 34.7680},
			Address:     "Kisumu, Kenya",
			Region:      "Nyanza",
		},
		{
			LocationID:  "kinara-warehouse",
			Name:        "Kinara Warehouse",
			Type:        "warehouse",
			Coordinates: model.Coordinates{Lat: -1.3733, Lon: 36.7516},
			Address:     "Kinara, Kenya",
			Region:      "Central",
		},
		{
			LocationID:  "nakuru-station",
			Name:        "Nakuru Station",
			Type:        "station",
			Coordinates: model.Coordinates{Lat: -0.3031, Lon: 36.0800},
			Address:     "Nakuru, Kenya",
			Region:      "Rift Valley",
		},
		{
			LocationID:  "eldoret-depot",
			Name:        "Eldoret Depot",
			Type:        "depot",
			Coordinates: model.Coordinates{Lat: 0.5143, Lon: 35.2698},
			Address:     "Eldoret, Kenya",
			Region:      "Rift Valley",
		},
		{
			LocationID:  "thika-warehouse",
			Name:        "Thika Warehouse",
			Type:        "warehouse",
			Coordinates: model.Coordinates{Lat: -1.0332, Lon: 37.0692},
			Address:     "Thika, Kenya",
			Region:      "Central",
		},
	}

	docs := make([]model.Document, len(locations))
	for i, location := range locations {
		docs[i] = location
	}
	return docs
}

func locationRef(id string) model.LocationRef {
	for _, doc := range demoLocations() {
		location := doc.(*model.Location)
		if location.LocationID == id {
			return location.Ref()
		}
	}
	return model.LocationRef{ID: id, Name: id}
}

func demoTrucks() []model.Document {
	trucks := []*model.Truck{
		{
			TruckID:         "GI-58A",
			PlateNumber:     "GI-58A",
			DriverID:        "driver-001",
			DriverName:      "John Kamau",
			CurrentLocation: locationRef("kisumu-depot"),
			Destination:     locationRef("mombasa-port"),
			Route:           model.Route{ID: "kisumu-mombasa", Distance: 580, EstimatedDuration: 480},
			Status:          "on_time",
			EstimatedArrival: at("2024-01-15T14:15:00Z"),
			Cargo: &model.Cargo{
				Type: "General Cargo", Weight: 15000, Volume: 45,
				Description: "Mixed goods including electronics and household items",
				Priority:    "medium",
			},
		},
		{
			TruckID:         "MO-84A",
			PlateNumber:     "MO-84A",
			DriverID:        "driver-002",
			DriverName:      "Mary Wanjiku",
			CurrentLocation: locationRef("nairobi-station"),
			Destination:     locationRef("kinara-warehouse"),
			Route:           model.Route{ID: "nairobi-kinara", Distance: 25, EstimatedDuration: 45},
			Status:          "delayed",
			EstimatedArrival: at("2024-01-15T16:25:00Z"),
			Cargo: &model.Cargo{
				Type: "Perishables", Weight: 8000, Volume: 25,
				Description: "Fresh produce including vegetables and fruits for local markets",
				Priority:    "high",
			},
		},
		{
			TruckID:         "CE-57A",
			PlateNumber:     "CE-57A",
			DriverID:        "driver-003",
			DriverName:      "Peter Ochieng",
			CurrentLocation: locationRef("kisumu-depot"),
			Destination:     locationRef("mombasa-port"),
			Route:           model.Route{ID: "kisumu-mombasa-2", Distance: 580, EstimatedDuration: 480},
			Status:          "delayed",
			EstimatedArrival: at("2024-01-15T12:25:00Z"),
			Cargo: &model.Cargo{
				Type: "Construction Materials", Weight: 20000, Volume: 60,
				Description: "Cement bags and steel rods for construction projects",
				Priority:    "medium",
			},
		},
		{
			TruckID:         "KA-123B",
			PlateNumber:     "KA-123B",
			DriverID:        "driver-004",
			DriverName:      "Sarah Njeri",
			CurrentLocation: locationRef("nakuru-station"),
			Destination:     locationRef("nairobi-station"),
			Route:           model.Route{ID: "nakuru-nairobi", Distance: 160, EstimatedDuration: 180},
			Status:          "on_time",
			EstimatedArrival: at("2024-01-15T15:30:00Z"),
			Cargo: &model.Cargo{
				Type: "Electronics", Weight: 5000, Volume: 20,
				Description: "Computer equipment and mobile phones for retail stores",
				Priority:    "high",
			},
		},
		{
			TruckID:         "KBZ-456C",
			PlateNumber:     "KBZ-456C",
			DriverID:        "driver-005",
			DriverName:      "David Mwangi",
			CurrentLocation: locationRef("eldoret-depot"),
			Destination:     locationRef("kisumu-depot"),
			Route:           model.Route{ID: "eldoret-kisumu", Distance: 120, EstimatedDuration: 150},
			Status:          "on_time",
			EstimatedArrival: at("2024-01-15T17:00:00Z"),
			Cargo: &model.Cargo{
				Type: "Agricultural Products", Weight: 12000, Volume: 35,
				Description: "Maize and wheat grain for distribution centers",
				Priority:    "medium",
			},
		},
		{
			TruckID:         "KCD-789D",
			PlateNumber:     "KCD-789D",
			DriverID:        "driver-006",
			DriverName:      "Grace Akinyi",
			CurrentLocation: locationRef("thika-warehouse"),
			Destination:     locationRef("mombasa-port"),
			Route:           model.Route{ID: "thika-mombasa", Distance: 520, EstimatedDuration: 420},
			Status:          "delayed",
			EstimatedArrival: at("2024-01-15T19:45:00Z"),
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

func demoOrders() []model.Document {
	delivered := at("2024-01-14T11:45:00Z")
	orders := []*model.Order{
		{
			OrderID: "ORD-001", Customer: "Safaricom Ltd", CustomerID: "CUST-001",
			Status: "in_transit", Value: 125000,
			Items:   "Network equipment including routers, switches, and fiber optic cables for telecommunications infrastructure",
			TruckID: "GI-58A", Region: "Nairobi", Priority: "high",
			DeliveryETA:   at("2024-01-15T14:00:00Z"),
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-14T08:00:00Z")},
		},
		{
			OrderID: "ORD-002", Customer: "Kenya Power", CustomerID: "CUST-002",
			Status: "pending", Value: 89000,
			Items:  "Electrical transformers and power distribution equipment for grid expansion",
			Region: "Mombasa", Priority: "medium",
			DeliveryETA:   at("2024-01-16T16:00:00Z"),
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-15T09:30:00Z")},
		},
		{
			OrderID: "ORD-003", Customer: "Equity Bank", CustomerID: "CUST-003",
			Status: "delivered", Value: 45000,
			Items:   "ATM machines and security equipment for new branch installations",
			TruckID: "MO-84A", Region: "Kisumu", Priority: "urgent",
			DeliveryETA: at("2024-01-14T12:00:00Z"), DeliveredAt: &delivered,
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-13T10:15:00Z")},
		},
		{
			OrderID: "ORD-004", Customer: "Tusker Breweries", CustomerID: "CUST-004",
			Status: "in_transit", Value: 210000,
			Items:   "Brewing equipment including fermentation tanks and bottling machinery",
			TruckID: "CE-57A", Region: "Nakuru", Priority: "medium",
			DeliveryETA:   at("2024-01-15T18:00:00Z"),
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-14T11:20:00Z")},
		},
	}

	docs := make([]model.Document, len(orders))
	for i, order := range orders {
		docs[i] = order
	}
	return docs
}

func demoInventory() []model.Document {
	items := []*model.InventoryItem{
		{
			ItemID: "INV-001", Name: "Diesel Fuel Premium Grade", Category: "Fuel",
			Quantity: 15000, Unit: "liters", Location: "Nairobi Depot",
			Status: model.StockInStock, LastUpdated: at("2024-01-15T10:30:00Z"),
		},
		{
			ItemID: "INV-002", Name: "Heavy Duty Truck Tires", Category: "Parts",
			Quantity: 25, Unit: "pieces", Location: "Mombasa Warehouse",
			Status: model.StockLowStock, LastUpdated: at("2024-01-15T09:15:00Z"),
		},
		{
			ItemID: "INV-003", Name: "Synthetic Engine Oil 15W-40", Category: "Maintenance",
			Quantity: 0, Unit: "bottles", Location: "Kisumu Station",
			Status: model.StockOutOfStock, LastUpdated: at("2024-01-14T16:45:00Z"),
		},
		{
			ItemID: "INV-004", Name: "Ceramic Brake Pads Heavy Duty", Category: "Parts",
			Quantity: 120, Unit: "sets", Location: "Nairobi Depot",
			Status: model.StockInStock, LastUpdated: at("2024-01-15T08:20:00Z"),
		},
		{
			ItemID: "INV-005", Name: "Radiator Coolant Fluid", Category: "Maintenance",
			Quantity: 8, Unit: "bottles", Location: "Mombasa Warehouse",
			Status: model.StockLowStock, LastUpdated: at("2024-01-15T11:00:00Z"),
		},
	}

	docs := make([]model.Document, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}

func demoTickets() []model.Document {
	resolved := at("2024-01-15T10:30:00Z")
	tickets := []*model.SupportTicket{
		{
			TicketID: "TKT-001", Customer: "Safaricom Ltd", CustomerID: "CUST-001",
			Issue:       "Delivery delay notification and customer communication",
			Description: "Order ORD-001 is running 3 hours behind schedule due to traffic congestion on Nairobi-Mombasa highway. Customer needs urgent update on revised ETA and compensation options.",
			Priority:    "high", Status: "open", RelatedOrder: "ORD-001",
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-15T09:30:00Z")},
		},
		{
			TicketID: "TKT-002", Customer: "Kenya Power", CustomerID: "CUST-002",
			Issue:       "Damaged goods inspection and replacement request",
			Description: "Electrical transformer arrived with visible damage to outer casing and oil leak detected. Customer requesting immediate replacement and investigation into handling procedures.",
			Priority:    "urgent", Status: "in_progress", AssignedTo: "John Kamau", RelatedOrder: "ORD-002",
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-15T11:15:00Z")},
		},
		{
			TicketID: "TKT-003", Customer: "Equity Bank", CustomerID: "CUST-003",
			Issue:       "Invoice discrepancy and billing inquiry",
			Description: "Customer questioning additional fuel surcharge and handling fees on delivery invoice. Requesting detailed breakdown of all charges and justification for extra costs.",
			Priority:    "medium", Status: "resolved", AssignedTo: "Mary Wanjiku", ResolvedAt: &resolved,
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-14T14:20:00Z")},
		},
		{
			TicketID: "TKT-004", Customer: "Nakumatt Holdings", CustomerID: "CUST-005",
			Issue:       "Missing items from shipment manifest",
			Description: "Partial delivery received with 5 items missing from the original shipment manifest. Customer needs immediate investigation and delivery of missing items.",
			Priority:    "high", Status: "open",
			BatchEnvelope: model.BatchEnvelope{CreatedAt: at("2024-01-15T13:45:00Z")},
		},
	}

	docs := make([]model.Document, len(tickets))
	for i, ticket := range tickets {
		docs[i] = ticket
	}
	return docs
}

// demoAnalyticsEvents generates the time-series used by the dashboard charts:
// daily and hourly performance, per-route performance, delay causes, regional
// figures and a few delivery lifecycle events.
func demoAnalyticsEvents(base time.Time) []model.Document {
	events := make([]*model.AnalyticsEvent, 0, 128)

	for daysBack := 14; daysBack > 0; daysBack-- {
		eventTime := base.AddDate(0, 0, -daysBack)
		events = append(events, &model.AnalyticsEvent{
			EventID:   fmt.Sprintf("PERF-%03d", daysBack),
			EventType: model.EventDailyPerformance,
			Timestamp: eventTime,
			Region:    "All",
			Metrics: map[string]float64{
				"delivery_performance_pct": round1(85 + spread(10)),
				"average_delay_minutes":    round1(120 + spread(90)),
				"fleet_utilization_pct":    round1(90 + spread(12)),
				"customer_satisfaction":    round1(4.2 + spread(0.6)),
				"total_deliveries":         float64(15 + rand.Intn(20)),
				"on_time_deliveries":       float64(12 + rand.Intn(18)),
			},
		})
	}

	routes := []struct{ name, id string }{
		{"Nairobi → Mombasa", "nairobi-mombasa"},
		{"Kisumu → Nakuru", "kisumu-nakuru"},
		{"Eldoret → Nairobi", "eldoret-nairobi"},
		{"Mombasa → Kisumu", "mombasa-kisumu"},
	}
	for daysBack := 7; daysBack > 0; daysBack-- {
		eventTime := base.AddDate(0, 0, -daysBack)
		for _, route := range routes {
			events = append(events, &model.AnalyticsEvent{
				EventID:   fmt.Sprintf("ROUTE-%s-%03d", route.id, daysBack),
				EventType: model.EventRoutePerformance,
				Timestamp: eventTime,
				RouteID:   route.id,
				RouteName: route.name,
				Metrics: map[string]float64{
					"performance_pct":   round1(78 + spread(16)),
					"avg_delivery_time": round1(300 + spread(150)),
					"delay_incidents":   float64(rand.Intn(6)),
					"completed_trips":   float64(2 + rand.Intn(7)),
				},
			})
		}
	}

	for hoursBack := 24; hoursBack > 0; hoursBack-- {
		eventTime := base.Add(-time.Duration(hoursBack) * time.Hour)
		events = append(events, &model.AnalyticsEvent{
			EventID:   fmt.Sprintf("HOURLY-%03d", hoursBack),
			EventType: model.EventHourlyMetrics,
			Timestamp: eventTime,
			Region:    "All",
			Metrics: map[string]float64{
				"active_trucks":            float64(4 + rand.Intn(5)),
				"delivery_performance_pct": round1(85 + spread(15)),
				"average_delay_minutes":    round1(90 + spread(80)),
				"fleet_utilization_pct":    round1(88 + spread(16)),
			},
		})
	}

	delayCauses := []struct {
		cause   string
		basePct float64
	}{
		{"Traffic Congestion", 45},
		{"Weather Conditions", 28},
		{"Vehicle Maintenance", 18},
		{"Loading Delays", 9},
	}
	for _, dc := range delayCauses {
		events = append(events, &model.AnalyticsEvent{
			EventID:    "DELAY-" + strings.ReplaceAll(strings.ToLower(dc.cause), " ", "-"),
			EventType:  model.EventDelayCauseAnalysis,
			Timestamp:  base,
			DelayCause: dc.cause,
			Metrics: map[string]float64{
				"percentage":        round1(dc.basePct + spread(4)),
				"incident_count":    float64(5 + rand.Intn(20)),
				"avg_delay_minutes": round1(60 + spread(45)),
			},
		})
	}

	for _, region := range []string{"Nairobi", "Mombasa", "Kisumu", "Eldoret"} {
		events = append(events, &model.AnalyticsEvent{
			EventID:   "REGIONAL-" + strings.ToLower(region),
			EventType: model.EventRegionalPerformance,
			Timestamp: base,
			Region:    region,
			Metrics: map[string]float64{
				"on_time_percentage": round1(80 + spread(14)),
				"total_deliveries":   float64(20 + rand.Intn(30)),
				"avg_delivery_time":  round1(240 + spread(90)),
				"customer_rating":    round1(4.1 + spread(0.6)),
			},
		})
	}

	events = append(events,
		&model.AnalyticsEvent{
			EventID:   "DEL-001",
			EventType: model.EventDeliveryCompleted,
			Timestamp: at("2024-01-14T11:45:00Z"),
			TruckID:   "MO-84A",
			OrderID:   "ORD-003",
			Region:    "Kisumu",
			Metrics: map[string]float64{
				"delivery_time_minutes": 385,
				"delay_minutes":         -15,
				"distance_km":           285.5,
				"fuel_consumed_liters":  45.2,
				"customer_rating":       4.5,
			},
		},
		&model.AnalyticsEvent{
			EventID:   "DEL-002",
			EventType: model.EventDeliveryStarted,
			Timestamp: at("2024-01-15T08:00:00Z"),
			TruckID:   "GI-58A",
			OrderID:   "ORD-001",
			Region:    "Central",
			Metrics: map[string]float64{
				"planned_distance_km":        580,
				"estimated_duration_minutes": 480,
			},
		},
		&model.AnalyticsEvent{
			EventID:    "DEL-003",
			EventType:  model.EventDelayReported,
			Timestamp:  at("2024-01-15T12:00:00Z"),
			TruckID:    "CE-57A",
			Region:     "Nyanza",
			DelayCause: "Traffic Congestion",
			Metrics: map[string]float64{
				"delay_minutes":           180,
				"expected_delay_duration": 120,
			},
		},
	)

	docs := make([]model.Document, len(events))
	for i, event := range events {
		docs[i] = event
	}
	return docs
}

func round1(value float64) float64 {
	return float64(int(value*10+0.5)) / 10
}

func spread(width float64) float64 {
	return (rand.Float64()*2 - 1) * width
}
