package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are exposed as
// methods so a Tx can hand out the same repos bound to the transaction, and
// so nobody opens a transaction inside a transaction by accident.
type Store interface {
	Users() Users
	Sessions() Sessions
	Categories() Categories
	Tools() Tools
	Reviews() Reviews
	Likes() Likes
	Activities() Activities
	Stats() Stats

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	// Only the repos of the Tx handed to fn may be used inside it.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type UserFilter struct {
	Status domain.UserStatus
	Role   domain.Role
	Search string // matches name or email
	domain.Page
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser fails with ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes every mutable column, including the 2FA fields.
	UpdateUser(ctx context.Context, u domain.User) error

	// ListUsers returns a page, newest first.
	ListUsers(ctx context.Context, f UserFilter) (domain.Paged[domain.User], error)

	// EachUser walks every user in creation order.
	EachUser(ctx context.Context, fn func(domain.User) error) error

	CountApprovedOwners(ctx context.Context) (int64, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, id string) (domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error

	// DeleteExpiredSessions is housekeeping. It returns the rows removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Categories interface {
	// ListCategories returns every category by name, with active tool counts.
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)

	// CreateCategory and UpdateCategory fail with ErrAlreadyExists on a
	// duplicate name or slug.
	CreateCategory(ctx context.Context, c domain.Category) error
	UpdateCategory(ctx context.Context, c domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// CountCategories returns how many of ids exist.
	CountCategories(ctx context.Context, ids []string) (int, error)
}

type ToolFilter struct {
	CategoryID string
	Status     domain.ToolStatus // empty means any
	Search     string
	Featured   *bool
	CreatedBy  string
	Sort       domain.ToolSort
	domain.Page
}

type Tools interface {
	// GetTool ignores soft-deleted rows.
	GetTool(ctx context.Context, id string) (domain.Tool, error)
	ListTools(ctx context.Context, f ToolFilter) (domain.Paged[domain.Tool], error)

	// CreateTool inserts the tool and its category links.
	CreateTool(ctx context.Context, t domain.Tool) error

	// UpdateTool writes the editable and moderation columns and replaces the
	// category links.
	UpdateTool(ctx context.Context, t domain.Tool) error

	SoftDeleteTool(ctx context.Context, id string, at time.Time) error

	IncrementViews(ctx context.Context, id string, n int64) error

	// AdjustLikes adds delta to likes_count, never going below zero.
	AdjustLikes(ctx context.Context, id string, delta int64) error
}

type Reviews interface {
	GetReview(ctx context.Context, id string) (domain.Review, error)

	// ListReviews returns a tool's reviews, newest first.
	ListReviews(ctx context.Context, toolID string, p domain.Page) (domain.Paged[domain.Review], error)

	// CreateReview fails with ErrAlreadyExists when the user already reviewed
	// the tool.
	CreateReview(ctx context.Context, r domain.Review) error
	UpdateReview(ctx context.Context, r domain.Review) error
	DeleteReview(ctx context.Context, id string) error
}

type Likes interface {
	// AddLike reports whether a row was inserted.
	AddLike(ctx context.Context, toolID, userID string, at time.Time) (bool, error)

	// RemoveLike reports whether a row was deleted.
	RemoveLike(ctx context.Context, toolID, userID string) (bool, error)

	HasLiked(ctx context.Context, toolID, userID string) (bool, error)
}

type ActivityFilter struct {
	ActorID     string
	SubjectType string
	SubjectID   string
	Action      string
	domain.Page
}

type Activities interface {
	CreateActivity(ctx context.Context, a domain.Activity) error

	// ListActivities returns a page, newest first.
	ListActivities(ctx context.Context, f ActivityFilter) (domain.Paged[domain.Activity], error)
}

type Stats interface {
	Overview(ctx context.Context) (domain.Overview, error)
}
