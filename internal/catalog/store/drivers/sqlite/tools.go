package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

type toolsRepo struct {
	db dbtx
}

const toolSelect = `
	SELECT t.id, t.name, t.slug, t.description, t.url, t.documentation_url, t.created_by,
		t.status, t.featured, t.likes_count, t.views, t.deleted_at, t.created_at, t.updated_at,
		(SELECT COUNT(*) FROM reviews r WHERE r.tool_id = t.id) AS reviews_count,
		(SELECT COALESCE(AVG(r.rating), 0.0) FROM reviews r WHERE r.tool_id = t.id) AS avg_rating
	FROM tools t`

var toolOrder = map[domain.ToolSort]string{
	domain.SortNewest:  `t.created_at DESC, t.id DESC`,
	domain.SortPopular: `t.likes_count DESC, t.created_at DESC, t.id DESC`,
	domain.SortRating:  `avg_rating DESC, reviews_count DESC, t.created_at DESC, t.id DESC`,
	domain.SortViews:   `t.views DESC, t.created_at DESC, t.id DESC`,
}

func scanTool(row scanner) (domain.Tool, error) {
	var (
		t                  domain.Tool
		status             string
		deletedAt          sql.NullInt64
		createdAt, updated int64
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.URL, &t.DocumentationURL, &t.CreatedBy,
		&status, &t.Featured, &t.LikesCount, &t.Views, &deletedAt, &createdAt, &updated,
		&t.ReviewsCount, &t.AvgRating,
	)
	if err != nil {
		return domain.Tool{}, err
	}
	t.Status = domain.ToolStatus(status)
	t.DeletedAt = fromNullMillis(deletedAt)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updated)
	t.Categories = []domain.Category{}
	return t, nil
}

func (r *toolsRepo) GetTool(ctx context.Context, id string) (domain.Tool, error) {
	t, err := scanTool(r.db.QueryRowContext(ctx, toolSelect+` WHERE t.id = ? AND t.deleted_at IS NULL`, id))
	if err != nil {
		return domain.Tool{}, mapNotFound(err)
	}
	tools := []domain.Tool{t}
	if err := r.attachCategories(ctx, tools); err != nil {
		return domain.Tool{}, err
	}
	return tools[0], nil
}

func (r *toolsRepo) ListTools(ctx context.Context, f store.ToolFilter) (domain.Paged[domain.Tool], error) {
	page := f.Page.Normalize()
	out := domain.Paged[domain.Tool]{Page: page.Page, PerPage: page.PerPage}

	var w where
	w.add("t.deleted_at IS NULL")
	if f.Status != "" {
		w.add("t.status = ?", string(f.Status))
	}
	if f.CategoryID != "" {
		w.add(`EXISTS (SELECT 1 FROM tool_categories tc WHERE tc.tool_id = t.id AND tc.category_id = ?)`, f.CategoryID)
	}
	if f.Featured != nil {
		w.add("t.featured = ?", boolToInt(*f.Featured))
	}
	if f.CreatedBy != "" {
		w.add("t.created_by = ?", f.CreatedBy)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		w.add(`(t.name LIKE ? ESCAPE '\' OR t.description LIKE ? ESCAPE '\')`, p, p)
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tools t`+w.String(), w.args...).Scan(&out.Total); err != nil {
		return out, err
	}

	order, ok := toolOrder[f.Sort]
	if !ok {
		order = toolOrder[domain.SortNewest]
	}

	args := append(append([]any{}, w.args...), page.PerPage, page.Offset())
	rows, err := r.db.QueryContext(ctx, toolSelect+w.String()+` ORDER BY `+order+` LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return out, err
	}

	out.Items = []domain.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			_ = rows.Close()
			return out, err
		}
		out.Items = append(out.Items, t)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return out, err
	}
	// Must be closed before the category query on the single connection.
	if err := rows.Close(); err != nil {
		return out, err
	}

	return out, r.attachCategories(ctx, out.Items)
}

func (r *toolsRepo) attachCategories(ctx context.Context, tools []domain.Tool) error {
	if len(tools) == 0 {
		return nil
	}
	index := make(map[string]int, len(tools))
	args := make([]any, len(tools))
	for i, t := range tools {
		index[t.ID] = i
		args[i] = t.ID
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT tc.tool_id, c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
		FROM tool_categories tc
		JOIN categories c ON c.id = tc.category_id
		WHERE tc.tool_id IN (`+placeholders(len(tools))+`)
		ORDER BY c.name`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			toolID             string
			c                  domain.Category
			createdAt, updated int64
		)
		if err := rows.Scan(&toolID, &c.ID, &c.Name, &c.Slug, &c.Description, &createdAt, &updated); err != nil {
			return err
		}
		c.CreatedAt = fromMillis(createdAt)
		c.UpdatedAt = fromMillis(updated)
		i := index[toolID]
		tools[i].Categories = append(tools[i].Categories, c)
	}
	return rows.Err()
}

func (r *toolsRepo) CreateTool(ctx context.Context, t domain.Tool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tools (id, name, slug, description, url, documentation_url, created_by,
			status, featured, likes_count, views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		t.ID, t.Name, t.Slug, t.Description, t.URL, t.DocumentationURL, t.CreatedBy,
		string(t.Status), t.Featured, toMillis(t.CreatedAt), toMillis(t.UpdatedAt),
	)
	if err != nil {
		return mapConstraint(err)
	}
	return r.linkCategories(ctx, t.ID, t.CategoryIDs())
}

func (r *toolsRepo) UpdateTool(ctx context.Context, t domain.Tool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tools SET name = ?, slug = ?, description = ?, url = ?, documentation_url = ?,
			status = ?, featured = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		t.Name, t.Slug, t.Description, t.URL, t.DocumentationURL,
		string(t.Status), t.Featured, toMillis(t.UpdatedAt), t.ID,
	)
	if err := requireAffected(res, err); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tool_categories WHERE tool_id = ?`, t.ID); err != nil {
		return err
	}
	return r.linkCategories(ctx, t.ID, t.CategoryIDs())
}

func (r *toolsRepo) linkCategories(ctx context.Context, toolID string, categoryIDs []string) error {
	for _, cid := range categoryIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO tool_categories (tool_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			toolID, cid)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *toolsRepo) SoftDeleteTool(ctx context.Context, id string, at time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE tools SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		toMillis(at), toMillis(at), id))
}

func (r *toolsRepo) IncrementViews(ctx context.Context, id string, n int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tools SET views = views + ? WHERE id = ?`, n, id)
	return err
}

func (r *toolsRepo) AdjustLikes(ctx context.Context, id string, delta int64) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE tools SET likes_count = MAX(likes_count + ?, 0) WHERE id = ?`, delta, id))
}
