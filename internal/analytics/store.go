package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eduboost/eventpipe/pkg/event"
	"github.com/jackc/pgx/v5/pgxpool"
)

// derivedEventType marks records written by this consumer so they are
// distinguishable from the raw event log.
const derivedEventType = "analytics_task_completed"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InsertAnalyticsRecord stores a denormalized record for a completion
// event. Duplicate inserts of the same event are suppressed by the
// table's uniqueness constraint and never surface as an error.
func (s *Store) InsertAnalyticsRecord(ctx context.Context, e *event.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_events (user_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT DO NOTHING`,
		e.UserID, derivedEventType, data)
	if err != nil {
		return fmt.Errorf("failed to insert analytics record: %w", err)
	}

	return nil
}
