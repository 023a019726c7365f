package queries

import (
	"context"

	"pod-booking-core/internal/pkg/clock"

	"github.com/google/uuid"
)

type HoldQueries interface {
	// ListBySession returns a session's holds, optionally narrowed to holds
	// that still contend for their room (unconverted, unexpired).
	ListBySession(ctx context.Context, sessionID uuid.UUID, activeOnly bool) ([]*HoldView, error)
}

type holdQueriesImpl struct {
	holds HoldReadStore
	clock clock.Clock
}

func NewHoldQueries(holds HoldReadStore, clk clock.Clock) HoldQueries {
	return &holdQueriesImpl{holds: holds, clock: clk}
}

func (q *holdQueriesImpl) ListBySession(ctx context.Context, sessionID uuid.UUID, activeOnly bool) ([]*HoldView, error) {
	return q.holds.FindBySession(ctx, sessionID, activeOnly, q.clock.Now())
}
