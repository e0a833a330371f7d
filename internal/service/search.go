package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/runsheet/logistics-data/internal/model"
	"github.com/runsheet/logistics-data/internal/store"
)

// searchFields routes the free-text query to the fields that matter per
// collection. Identifier fields are included so exact ids hit too.
var searchFields = map[string][]string{
	model.CollectionTrucks:         {"truck_id", "plate_number", "driver_name", "cargo.description"},
	model.CollectionOrders:         {"order_id", "customer", "items"},
	model.CollectionSupportTickets: {"ticket_id", "customer", "issue", "description"},
}

// SearchResults groups hits per collection. Empty collections marshal as
// empty arrays so the frontend can iterate unconditionally.
type SearchResults struct {
	Query   string                `json:"query"`
	Trucks  []model.Truck         `json:"trucks"`
	Orders  []model.Order         `json:"orders"`
	Tickets []model.SupportTicket `json:"support_tickets"`
	Total   int                   `json:"total"`
}

// SearchService answers the dashboard's global search box. Queries go through
// the store's text matching; when the store's query path is unavailable the
// service degrades to scanning and substring-matching the collections.
type SearchService struct {
	store store.Store
	log   zerolog.Logger
}

func NewSearchService(st store.Store, log zerolog.Logger) *SearchService {
	return &SearchService{store: st, log: log}
}

// Search queries the searchable collections. A non-empty index restricts the
// search to that one collection (aliases accepted).
func (s *SearchService) Search(ctx context.Context, query, index string, limit int64) (SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResults{}, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	only := ""
	if index != "" {
		collection, ok := model.ResolveCollection(index)
		if !ok {
			return SearchResults{}, fmt.Errorf("%w: unknown index %q", ErrInvalidInput, index)
		}
		if _, searchable := searchFields[collection]; !searchable {
			return SearchResults{}, fmt.Errorf("%w: index %q is not searchable", ErrInvalidInput, index)
		}
		only = collection
	}

	results := SearchResults{
		Query:   query,
		Trucks:  []model.Truck{},
		Orders:  []model.Order{},
		Tickets: []model.SupportTicket{},
	}

	wanted := func(collection string) bool { return only == "" || only == collection }

	if wanted(model.CollectionTrucks) {
		if err := s.query(ctx, model.CollectionTrucks, query, limit, &results.Trucks); err != nil {
			return SearchResults{}, err
		}
	}
	if wanted(model.CollectionOrders) {
		if err := s.query(ctx, model.CollectionOrders, query, limit, &results.Orders); err != nil {
			return SearchResults{}, err
		}
	}
	if wanted(model.CollectionSupportTickets) {
		if err := s.query(ctx, model.CollectionSupportTickets, query, limit, &results.Tickets); err != nil {
			return SearchResults{}, err
		}
	}

	results.Total = len(results.Trucks) + len(results.Orders) + len(results.Tickets)
	return results, nil
}

func (s *SearchService) query(ctx context.Context, collection, text string, limit int64, out any) error {
	err := s.store.Query(ctx, collection, text, searchFields[collection], limit, out)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrStoreUnavailable) {
		return err
	}
	s.log.Warn().Err(err).Str("collection", collection).Msg("query path unavailable, falling back to scan")
	return s.scan(ctx, collection, text, limit, out)
}

// scan is the degraded path: pull the collection and substring-match in
// process. Matches the query behavior closely enough for demo-sized data.
func (s *SearchService) scan(ctx context.Context, collection, text string, limit int64, out any) error {
	needle := strings.ToLower(text)
	switch collection {
	case model.CollectionTrucks:
		var trucks []model.Truck
		if err := s.store.GetAll(ctx, collection, defaultLimit, &trucks); err != nil {
			return err
		}
		hits := out.(*[]model.Truck)
		for _, truck := range trucks {
			if int64(len(*hits)) >= limit {
				break
			}
			haystack := strings.ToLower(truck.TruckID + " " + truck.PlateNumber + " " + truck.DriverName)
			if truck.Cargo != nil {
				haystack += " " + strings.ToLower(truck.Cargo.Description)
			}
			if strings.Contains(haystack, needle) {
				*hits = append(*hits, truck)
			}
		}
	case model.CollectionOrders:
		var orders []model.Order
		if err := s.store.GetAll(ctx, collection, defaultLimit, &orders); err != nil {
			return err
		}
		hits := out.(*[]model.Order)
		for _, order := range orders {
			if int64(len(*hits)) >= limit {
				break
			}
			haystack := strings.ToLower(order.OrderID + " " + order.Customer + " " + order.Items)
			if strings.Contains(haystack, needle) {
				*hits = append(*hits, order)
			}
		}
	case model.CollectionSupportTickets:
		var tickets []model.SupportTicket
		if err := s.store.GetAll(ctx, collection, defaultLimit, &tickets); err != nil {
			return err
		}
		hits := out.(*[]model.SupportTicket)
		for _, ticket := range tickets {
			if int64(len(*hits)) >= limit {
				break
			}
			haystack := strings.ToLower(ticket.TicketID + " " + ticket.Customer + " " + ticket.Issue + " " + ticket.Description)
			if strings.Contains(haystack, needle) {
				*hits = append(*hits, ticket)
			}
		}
	}
	return nil
}
