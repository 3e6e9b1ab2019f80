package sqlite

import (
	"context"
	"time"
)

type likesRepo struct {
	db dbtx
}

func (r *likesRepo) AddLike(ctx context.Context, toolID, userID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (tool_id, user_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
		toolID, userID, toMillis(at))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *likesRepo) RemoveLike(ctx context.Context, toolID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE tool_id = ? AND user_id = ?`, toolID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *likesRepo) HasLiked(ctx context.Context, toolID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE tool_id = ? AND user_id = ?)`, toolID, userID,
	).Scan(&exists)
	return exists, err
}
