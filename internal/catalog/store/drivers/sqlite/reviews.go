package sqlite

import (
	"context"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
)

type reviewsRepo struct {
	db dbtx
}

const reviewSelect = `
	SELECT r.id, r.tool_id, r.user_id, u.name, r.rating, r.comment, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

func scanReview(row scanner) (domain.Review, error) {
	var (
		rv                 domain.Review
		createdAt, updated int64
	)
	if err := row.Scan(&rv.ID, &rv.ToolID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Comment, &createdAt, &updated); err != nil {
		return domain.Review{}, err
	}
	rv.CreatedAt = fromMillis(createdAt)
	rv.UpdatedAt = fromMillis(updated)
	return rv, nil
}

func (r *reviewsRepo) GetReview(ctx context.Context, id string) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = ?`, id))
	return rv, mapNotFound(err)
}

func (r *reviewsRepo) ListReviews(ctx context.Context, toolID string, p domain.Page) (domain.Paged[domain.Review], error) {
	page := p.Normalize()
	out := domain.Paged[domain.Review]{Page: page.Page, PerPage: page.PerPage}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE tool_id = ?`, toolID).Scan(&out.Total); err != nil {
		return out, err
	}

	rows, err := r.db.QueryContext(ctx,
		reviewSelect+` WHERE r.tool_id = ? ORDER BY r.created_at DESC, r.id DESC LIMIT ? OFFSET ?`,
		toolID, page.PerPage, page.Offset())
	if err != nil {
		return out, err
	}
	defer rows.Close()

	out.Items = []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, rv)
	}
	return out, rows.Err()
}

func (r *reviewsRepo) CreateReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, tool_id, user_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.ToolID, rv.UserID, rv.Rating, rv.Comment, toMillis(rv.CreatedAt), toMillis(rv.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *reviewsRepo) UpdateReview(ctx context.Context, rv domain.Review) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ?, updated_at = ? WHERE id = ?`,
		rv.Rating, rv.Comment, toMillis(rv.UpdatedAt), rv.ID))
}

func (r *reviewsRepo) DeleteReview(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id))
}
