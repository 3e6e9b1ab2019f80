package sqlite

import (
	"context"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
)

type categoriesRepo struct {
	db dbtx
}

// Only visible tools count towards a category.
const categorySelect = `
	SELECT c.id, c.name, c.slug, c.description, c.created_at, c.updated_at,
		(SELECT COUNT(*) FROM tool_categories tc
			JOIN tools t ON t.id = tc.tool_id
			WHERE tc.category_id = c.id AND t.status = 'active' AND t.deleted_at IS NULL)
	FROM categories c`

func scanCategory(row scanner) (domain.Category, error) {
	var (
		c                  domain.Category
		createdAt, updated int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &createdAt, &updated, &c.ToolsCount); err != nil {
		return domain.Category{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, categorySelect+` ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, categorySelect+` WHERE c.id = ?`, id))
	return c, mapNotFound(err)
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, c.Description, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Slug, c.Description, toMillis(c.UpdatedAt), c.ID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id))
}

func (r *categoriesRepo) CountCategories(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE id IN (`+placeholders(len(ids))+`)`, args...,
	).Scan(&n)
	return n, err
}
