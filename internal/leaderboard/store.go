package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// TopUsers returns the top users ordered by total points descending,
// ties broken by completed-task count descending.
func (s *Store) TopUsers(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			u.id,
			COALESCE(u.username, '') AS username,
			u.email,
			s.total_points,
			s.current_level,
			s.tasks_completed,
			s.current_streak
		FROM users u
		JOIN scores s ON u.id = s.user_id
		ORDER BY s.total_points DESC, s.tasks_completed DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Email, &e.TotalPoints, &e.Level, &e.TasksCompleted, &e.Streak); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard entries: %w", err)
	}

	return entries, nil
}
