package sqlite

import (
	"context"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
)

type statsRepo struct {
	db dbtx
}

func (r *statsRepo) Overview(ctx context.Context) (domain.Overview, error) {
	o := domain.Overview{
		UsersByStatus: map[domain.UserStatus]int64{},
		UsersByRole:   map[domain.Role]int64{},
		ToolsByStatus: map[domain.ToolStatus]int64{},
	}

	err := r.groupCount(ctx, `SELECT status, COUNT(*) FROM users GROUP BY status`, func(k string, n int64) {
		o.UsersByStatus[domain.UserStatus(k)] = n
		o.TotalUsers += n
	})
	if err != nil {
		return o, err
	}

	err = r.groupCount(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`, func(k string, n int64) {
		o.UsersByRole[domain.Role(k)] = n
	})
	if err != nil {
		return o, err
	}

	err = r.groupCount(ctx, `SELECT status, COUNT(*) FROM tools WHERE deleted_at IS NULL GROUP BY status`, func(k string, n int64) {
		o.ToolsByStatus[domain.ToolStatus(k)] = n
		o.TotalTools += n
	})
	if err != nil {
		return o, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM likes),
			(SELECT COALESCE(SUM(views), 0) FROM tools WHERE deleted_at IS NULL)`,
	).Scan(&o.TotalCategories, &o.TotalReviews, &o.TotalLikes, &o.TotalViews)
	return o, err
}

func (r *statsRepo) groupCount(ctx context.Context, query string, fn func(key string, n int64)) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		fn(key, n)
	}
	return rows.Err()
}
