package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
)

const userColumns = `id, name, email, password_hash, role, status,
	two_factor_type, two_factor_enabled, two_factor_secret, telegram_chat_id, two_factor_verified_at,
	created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row scanner) (domain.User, error) {
	var (
		u                  domain.User
		role, status, tfa  string
		secret, chatID     sql.NullString
		verifiedAt         sql.NullInt64
		createdAt, updated int64
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &status,
		&tfa, &u.TwoFactorEnabled, &secret, &chatID, &verifiedAt,
		&createdAt, &updated,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	u.TwoFactorType = domain.TwoFactorType(tfa)
	u.TwoFactorSecret = secret.String
	u.TelegramChatID = chatID.String
	u.TwoFactorVerifiedAt = fromNullMillis(verifiedAt)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`,
		strings.TrimSpace(email))
	u, err := scanUser(row)
	return u, mapNotFound(err)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	tfa := u.TwoFactorType
	if tfa == "" {
		tfa = domain.TwoFactorNone
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status),
		string(tfa), u.TwoFactorEnabled, toNullString(u.TwoFactorSecret), toNullString(u.TelegramChatID),
		toNullMillis(u.TwoFactorVerifiedAt),
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			name = ?, email = ?, password_hash = ?, role = ?, status = ?,
			two_factor_type = ?, two_factor_enabled = ?, two_factor_secret = ?,
			telegram_chat_id = ?, two_factor_verified_at = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status),
		string(u.TwoFactorType), u.TwoFactorEnabled, toNullString(u.TwoFactorSecret),
		toNullString(u.TelegramChatID), toNullMillis(u.TwoFactorVerifiedAt), toMillis(u.UpdatedAt),
		u.ID,
	)
	return requireAffected(res, mapConstraint(err))
}

func (r *usersRepo) ListUsers(ctx context.Context, f store.UserFilter) (domain.Paged[domain.User], error) {
	page := f.Page.Normalize()
	out := domain.Paged[domain.User]{Page: page.Page, PerPage: page.PerPage}

	var w where
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.Role != "" {
		w.add("role = ?", string(f.Role))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		w.add(`(name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')`, p, p)
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&out.Total); err != nil {
		return out, err
	}

	args := append(append([]any{}, w.args...), page.PerPage, page.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+w.String()+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	out.Items = []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, u)
	}
	return out, rows.Err()
}

// EachUser loads the full list before calling fn so that fn is free to be
// slow (it usually streams to a client) without pinning the connection.
func (r *usersRepo) EachUser(ctx context.Context, fn func(domain.User) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return err
	}

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			_ = rows.Close()
			return err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, u := range users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return nil
}

func (r *usersRepo) CountApprovedOwners(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ? AND status = ?`,
		string(domain.RoleOwner), string(domain.UserApproved),
	).Scan(&n)
	return n, err
}
