package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

// defaultLimit bounds collection reads. The demo dataset is far below it; it
// only guards against runaway uploads.
const defaultLimit = 1000

// DataService serves the dashboard's read paths over the document store.
type DataService struct {
	store store.Store
	log   zerolog.Logger
}

func NewDataService(st store.Store, log zerolog.Logger) *DataService {
	return &DataService{store: st, log: log}
}

// FleetSummary aggregates the current truck snapshot. The average delay comes
// from the latest daily performance event; zero when analytics are absent.
func (s *DataService) FleetSummary(ctx context.Context) (model.FleetSummary, error) {
	trucks, err := s.Trucks(ctx, "")
	if err != nil {
		return model.FleetSummary{}, err
	}

	summary := model.FleetSummary{TotalTrucks: len(trucks)}
	for _, truck := range trucks {
		switch truck.Status {
		case "delayed":
			summary.DelayedTrucks++
			summary.ActiveTrucks++
		case "on_time", "in_transit":
			summary.OnTimeTrucks++
			summary.ActiveTrucks++
		}
	}

	var events []model.AnalyticsEvent
	if err := s.store.GetAll(ctx, model.CollectionAnalyticsEvents, defaultLimit, &events); err != nil {
		return model.FleetSummary{}, err
	}
	for _, event := range events {
		if event.EventType == model.EventDailyPerformance {
			summary.AverageDelay = event.Metrics["average_delay_minutes"]
			break
		}
	}
	return summary, nil
}

// Trucks lists the fleet, optionally filtered by status.
func (s *DataService) Trucks(ctx context.Context, status string) ([]model.Truck, error) {
	var trucks []model.Truck
	if err := s.store.GetAll(ctx, model.CollectionTrucks, defaultLimit, &trucks); err != nil {
		return nil, err
	}
	if status == "" {
		return trucks, nil
	}
	filtered := trucks[:0]
	for _, truck := range trucks {
		if truck.Status == status {
			filtered = append(filtered, truck)
		}
	}
	return filtered, nil
}

// Truck returns a single truck by id, matching the plate number as well so
// both identifier styles from uploads resolve.
func (s *DataService) Truck(ctx context.Context, id string) (*model.Truck, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	var trucks []model.Truck
	if err := s.store.GetAll(ctx, model.CollectionTrucks, defaultLimit, &trucks); err != nil {
		return nil, err
	}
	for i := range trucks {
		if trucks[i].TruckID == id || strings.EqualFold(trucks[i].PlateNumber, id) {
			return &trucks[i], nil
		}
	}
	return nil, ErrNotFound
}

// Orders lists orders, optionally filtered by status and region.
func (s *DataService) Orders(ctx context.Context, status, region string) ([]model.Order, error) {
	var orders []model.Order
	if err := s.store.GetAll(ctx, model.CollectionOrders, defaultLimit, &orders); err != nil {
		return nil, err
	}
	filtered := orders[:0]
	for _, order := range orders {
		if status != "" && order.Status != status {
			continue
		}
		if region != "" && !strings.EqualFold(order.Region, region) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered, nil
}

// Inventory lists stock, optionally filtered by status.
func (s *DataService) Inventory(ctx context.Context, status string) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	if err := s.store.GetAll(ctx, model.CollectionInventory, defaultLimit, &items); err != nil {
		return nil, err
	}
	if status == "" {
		return items, nil
	}
	filtered := items[:0]
	for _, item := range items {
		if item.Status == status {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Tickets lists support tickets, optionally filtered by status and priority.
func (s *DataService) Tickets(ctx context.Context, status, priority string) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	if err := s.store.GetAll(ctx, model.CollectionSupportTickets, defaultLimit, &tickets); err != nil {
		return nil, err
	}
	filtered := tickets[:0]
	for _, ticket := range tickets {
		if status != "" && ticket.Status != status {
			continue
		}
		if priority != "" && ticket.Priority != priority {
			continue
		}
		filtered = append(filtered, ticket)
	}
	return filtered, nil
}
