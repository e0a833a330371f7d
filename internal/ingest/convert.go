package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/runsheet/logistics-data/internal/model"
)

// Converters turn raw upload records into typed documents. Uploads come from
// spreadsheets and hand-written JSON, so field reads are tolerant: a missing
// or empty value falls back to a zero default. A value that is present but
// garbage in a load-bearing numeric column rejects the row, like a missing
// identity does, so a typo never masquerades as a real zero quantity.

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asInt(value any) int {
	return int(asFloat(value))
}

type malformedFieldError struct {
	field string
	value string
}

func (e *malformedFieldError) Error() string {
	return fmt.Sprintf("malformed %s value %q", e.field, e.value)
}

// numeric distinguishes absent-or-empty (defaults to zero) from present but
// unparsable (row error).
func numeric(record map[string]any, name string) (float64, error) {
	value, ok := record[name]
	if !ok || value == nil {
		return 0, nil
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		raw := strings.TrimSpace(v)
		if raw == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &malformedFieldError{field: name, value: raw}
		}
		return parsed, nil
	default:
		return 0, &malformedFieldError{field: name, value: asString(value)}
	}
}

func asTime(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		raw := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

func field(record map[string]any, name string) any {
	if value, ok := record[name]; ok {
		return value
	}
	return nil
}

func str(record map[string]any, name string) string {
	return asString(field(record, name))
}

func subRecord(record map[string]any, name string) map[string]any {
	if nested, ok := field(record, name).(map[string]any); ok {
		return nested
	}
	return nil
}

func convertTruck(id string, record map[string]any, locate func(any) model.LocationRef) *model.Truck {
	truck := &model.Truck{
		TruckID:          id,
		PlateNumber:      str(record, "plate_number"),
		DriverID:         str(record, "driver_id"),
		DriverName:       str(record, "driver_name"),
		CurrentLocation:  locate(field(record, "current_location")),
		Destination:      locate(field(record, "destination")),
		Status:           str(record, "status"),
		EstimatedArrival: asTime(field(record, "estimated_arrival")),
	}
	if truck.PlateNumber == "" {
		truck.PlateNumber = id
	}
	if truck.Status == "" {
		truck.Status = "on_time"
	}

	if route := subRecord(record, "route"); route != nil {
		truck.Route = model.Route{
			ID:                str(route, "id"),
			Distance:          asFloat(field(route, "distance")),
			EstimatedDuration: asInt(field(route, "estimated_duration")),
		}
	} else {
		truck.Route = model.Route{
			ID:                str(record, "route_id"),
			Distance:          asFloat(field(record, "route_distance")),
			EstimatedDuration: asInt(field(record, "route_estimated_duration")),
		}
	}

	if cargo := subRecord(record, "cargo"); cargo != nil {
		truck.Cargo = &model.Cargo{
			Type:        str(cargo, "type"),
			Weight:      asFloat(field(cargo, "weight")),
			Volume:      asFloat(field(cargo, "volume")),
			Description: str(cargo, "description"),
			Priority:    str(cargo, "priority"),
		}
	} else if cargoType := str(record, "cargo_type"); cargoType != "" {
		truck.Cargo = &model.Cargo{
			Type:        cargoType,
			Weight:      asFloat(field(record, "cargo_weight")),
			Volume:      asFloat(field(record, "cargo_volume")),
			Description: str(record, "cargo_description"),
			Priority:    str(record, "cargo_priority"),
		}
	}
	return truck
}

func convertLocation(id string, record map[string]any) *model.Location {
	location := &model.Location{
		LocationID: id,
		Name:       str(record, "name"),
		Type:       str(record, "type"),
		Address:    str(record, "address"),
		Region:     str(record, "region"),
	}
	if coords := subRecord(record, "coordinates"); coords != nil {
		location.Coordinates = model.Coordinates{
			Lat: asFloat(field(coords, "lat")),
			Lon: asFloat(field(coords, "lon")),
		}
	} else {
		location.Coordinates = model.Coordinates{
			Lat: asFloat(field(record, "lat")),
			Lon: asFloat(field(record, "lon")),
		}
	}
	if location.Name == "" {
		location.Name = id
	}
	return location
}

func convertOrder(id string, record map[string]any) (*model.Order, error) {
	value, err := numeric(record, "value")
	if err != nil {
		return nil, err
	}
	order := &model.Order{
		OrderID:     id,
		Customer:    str(record, "customer"),
		CustomerID:  str(record, "customer_id"),
		Status:      str(record, "status"),
		Value:       value,
		Items:       str(record, "items"),
		TruckID:     str(record, "truck_id"),
		Region:      str(record, "region"),
		Priority:    str(record, "priority"),
		DeliveryETA: asTime(field(record, "delivery_eta")),
	}
	if order.Status == "" {
		order.Status = "pending"
	}
	if delivered := asTime(field(record, "delivered_at")); !delivered.IsZero() {
		order.DeliveredAt = &delivered
	}
	return order, nil
}

func convertInventory(id string, record map[string]any) (*model.InventoryItem, error) {
	quantity, err := numeric(record, "quantity")
	if err != nil {
		return nil, err
	}
	item := &model.InventoryItem{
		ItemID:      id,
		Name:        str(record, "name"),
		Category:    str(record, "category"),
		Quantity:    int(quantity),
		Unit:        str(record, "unit"),
		Location:    str(record, "location"),
		Status:      str(record, "status"),
		LastUpdated: asTime(field(record, "last_updated")),
	}
	if item.Status == "" {
		item.Status = stockStatus(item.Quantity)
	}
	return item, nil
}

// stockStatus derives the status for records that omit it. Ten units is the
// low-stock threshold across all categories.
func stockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return model.StockOutOfStock
	case quantity <= 10:
		return model.StockLowStock
	default:
		return model.StockInStock
	}
}

func convertTicket(id string, record map[string]any) *model.SupportTicket {
	ticket := &model.SupportTicket{
		TicketID:     id,
		Customer:     str(record, "customer"),
		CustomerID:   str(record, "customer_id"),
		Issue:        str(record, "issue"),
		Description:  str(record, "description"),
		Priority:     str(record, "priority"),
		Status:       str(record, "status"),
		AssignedTo:   str(record, "assigned_to"),
		RelatedOrder: str(record, "related_order"),
	}
	if ticket.Status == "" {
		ticket.Status = "open"
	}
	if resolved := asTime(field(record, "resolved_at")); !resolved.IsZero() {
		ticket.ResolvedAt = &resolved
	}
	return ticket
}

func convertAnalyticsEvent(id string, record map[string]any) *model.AnalyticsEvent {
	event := &model.AnalyticsEvent{
		EventID:    id,
		EventType:  str(record, "event_type"),
		Timestamp:  asTime(field(record, "timestamp")),
		Region:     str(record, "region"),
		RouteID:    str(record, "route_id"),
		RouteName:  str(record, "route_name"),
		TruckID:    str(record, "truck_id"),
		OrderID:    str(record, "order_id"),
		DelayCause: str(record, "delay_cause"),
		Metrics:    map[string]float64{},
	}
	if metrics := subRecord(record, "metrics"); metrics != nil {
		for name, value := range metrics {
			event.Metrics[name] = asFloat(value)
		}
	}
	return event
}
