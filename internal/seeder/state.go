package seeder

import (
	"context"
	"strings"

	"github.com/runsheet/logistics-data/internal/model"
)

// DetectState maps a batch id onto the time-of-day operational state. A batch
// id conventionally encodes a time-of-day token ("afternoon_ops_v2"); anything
// without a recognized token counts as the morning baseline.
func DetectState(batchID string) model.DemoState {
	lowered := strings.ToLower(batchID)
	switch {
	case strings.Contains(lowered, "afternoon"):
		return model.StateAfternoon
	case strings.Contains(lowered, "evening"):
		return model.StateEvening
	case strings.Contains(lowered, "night"):
		return model.StateNight
	default:
		return model.StateMorningBaseline
	}
}

// CurrentState derives the platform's operational state from the most recent
// truck document's batch metadata. This is a best-effort heuristic over
// denormalized metadata: collections upserted independently can disagree, and
// only trucks are consulted. The returned status carries the batch id the
// verdict came from so divergence can be spotted.
func (s *Seeder) CurrentState(ctx context.Context) (model.DemoStatus, error) {
	count, err := s.store.Count(ctx, model.CollectionTrucks)
	if err != nil {
		return model.DemoStatus{}, err
	}
	if count == 0 {
		return model.DemoStatus{State: model.StateUnknown}, nil
	}

	var trucks []model.Truck
	if err := s.store.GetAll(ctx, model.CollectionTrucks, 1, &trucks); err != nil {
		return model.DemoStatus{}, err
	}
	if len(trucks) == 0 {
		return model.DemoStatus{State: model.StateUnknown}, nil
	}

	latest := trucks[0]
	return model.DemoStatus{
		State:           DetectState(latest.BatchID),
		BatchID:         latest.BatchID,
		OperationalTime: latest.OperationalTime,
		TruckCount:      count,
	}, nil
}
