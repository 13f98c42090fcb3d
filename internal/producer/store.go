package producer

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EventStat struct {
	EventType string    `json:"event_type"`
	Count     int64     `json:"count"`
	LastEvent time.Time `json:"last_event"`
}

// Store reads the durable event log.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) EventStats(ctx context.Context) ([]EventStat, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			event_type,
			COUNT(*) AS count,
			MAX(created_at) AS last_event
		FROM user_events
		GROUP BY event_type
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query event stats: %w", err)
	}
	defer rows.Close()

	var stats []EventStat
	for rows.Next() {
		var stat EventStat
		if err := rows.Scan(&stat.EventType, &stat.Count, &stat.LastEvent); err != nil {
			return nil, fmt.Errorf("failed to scan event stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event stats: %w", err)
	}

	return stats, nil
}
