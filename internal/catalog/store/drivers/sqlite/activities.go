package sqlite

import (
	"context"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

type activitiesRepo struct {
	db dbtx
}

func (r *activitiesRepo) CreateActivity(ctx context.Context, a domain.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (id, actor_id, action, subject_type, subject_id, description,
			before_json, after_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ActorID, a.Action, a.SubjectType, a.SubjectID, a.Description,
		a.Before, a.After, toMillis(a.CreatedAt),
	)
	return err
}

func (r *activitiesRepo) ListActivities(ctx context.Context, f store.ActivityFilter) (domain.Paged[domain.Activity], error) {
	page := f.Page.Normalize()
	out := domain.Paged[domain.Activity]{Page: page.Page, PerPage: page.PerPage}

	var w where
	if f.ActorID != "" {
		w.add("actor_id = ?", f.ActorID)
	}
	if f.SubjectType != "" {
		w.add("subject_type = ?", f.SubjectType)
	}
	if f.SubjectID != "" {
		w.add("subject_id = ?", f.SubjectID)
	}
	if f.Action != "" {
		w.add("action = ?", f.Action)
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`+w.String(), w.args...).Scan(&out.Total); err != nil {
		return out, err
	}

	args := append(append([]any{}, w.args...), page.PerPage, page.Offset())
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, actor_id, action, subject_type, subject_id, description, before_json, after_json, created_at
		FROM activities`+w.String()+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	out.Items = []domain.Activity{}
	for rows.Next() {
		var (
			a         domain.Activity
			createdAt int64
		)
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Action, &a.SubjectType, &a.SubjectID,
			&a.Description, &a.Before, &a.After, &createdAt); err != nil {
			return out, err
		}
		a.CreatedAt = fromMillis(createdAt)
		out.Items = append(out.Items, a)
	}
	return out, rows.Err()
}
