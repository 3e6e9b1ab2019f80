package catalogapi

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`

	// Set only on a login rejected for its second-factor code.
	RequiresTwoFactor bool   `json:"requires_2fa,omitempty"`
	TwoFactorType     string `json:"two_factor_type,omitempty"`
}

// MessageResponse acknowledges an action that has nothing else to return.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency on /readyz.
type HealthChecks struct {
	Database  string `json:"database"`
	CodeStore string `json:"code_store"`
}

// ============================================================================
// Users and authentication
// ============================================================================

// User is the public view of an account. DisplayRole is what the service
// authorizes against; it is employee until the account is approved.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	DisplayRole      string    `json:"display_role"`
	Status           string    `json:"status"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorType    string    `json:"two_factor_type"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

type LoginRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code,omitempty"`
}

// LoginResponse is either a completed login with User set, or a pending
// second factor with RequiresTwoFactor set. Only the former sets the
// session cookie.
type LoginResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	RequiresTwoFactor bool   `json:"requires_2fa,omitempty"`
	TwoFactorType     string `json:"two_factor_type,omitempty"`
	User              *User  `json:"user,omitempty"`
}

// UserResponse wraps a user after a state change.
type UserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

// ============================================================================
// Two-factor
// ============================================================================

type TwoFactorStatusResponse struct {
	TwoFactorEnabled  bool   `json:"two_factor_enabled"`
	TwoFactorType     string `json:"two_factor_type"`
	HasTelegramChatID bool   `json:"has_telegram_chat_id"`
}

type TwoFactorSetupRequest struct {
	Type           string `json:"type"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
}

// TwoFactorSetupResponse carries the shared secret and provisioning URI for
// google_authenticator, and CodeSent for the server-issued channels.
type TwoFactorSetupResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Secret     string `json:"secret,omitempty"`
	OTPAuthURI string `json:"otpauth_uri,omitempty"`
	CodeSent   bool   `json:"code_sent"`
}

type TwoFactorCodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Administration
// ============================================================================

type UserStatusRequest struct {
	Status string `json:"status"`
}

type UserRoleRequest struct {
	Role string `json:"role"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	Status   string `json:"status,omitempty"`
}

// CreatedUserResponse holds GeneratedPassword only when the request left the
// password empty. It is not retrievable later.
type CreatedUserResponse struct {
	Success           bool   `json:"success"`
	User              User   `json:"user"`
	GeneratedPassword string `json:"generated_password,omitempty"`
}

type UserPage struct {
	Data []User   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Activity is one audit record. Before and After are the JSON snapshots of
// the subject around an update.
type Activity struct {
	ID          string          `json:"id"`
	ActorID     string          `json:"actor_id,omitempty"`
	Action      string          `json:"action"`
	SubjectType string          `json:"subject_type"`
	SubjectID   string          `json:"subject_id"`
	Description string          `json:"description"`
	Before      json.RawMessage `json:"before,omitempty" swaggertype:"object"`
	After       json.RawMessage `json:"after,omitempty" swaggertype:"object"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ActivityPage struct {
	Data []Activity `json:"data"`
	Meta PageMeta   `json:"meta"`
}

type Stats struct {
	UsersByStatus   map[string]int64 `json:"users_by_status"`
	UsersByRole     map[string]int64 `json:"users_by_role"`
	ToolsByStatus   map[string]int64 `json:"tools_by_status"`
	TotalUsers      int64            `json:"total_users"`
	TotalTools      int64            `json:"total_tools"`
	TotalCategories int64            `json:"total_categories"`
	TotalReviews    int64            `json:"total_reviews"`
	TotalLikes      int64            `json:"total_likes"`
	TotalViews      int64            `json:"total_views"`
}

// ============================================================================
// Catalog
// ============================================================================

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ToolsCount  int64     `json:"tools_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryList struct {
	Data []Category `json:"data"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Tool struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	URL              string     `json:"url"`
	DocumentationURL string     `json:"documentation_url,omitempty"`
	CreatedBy        string     `json:"created_by"`
	Status           string     `json:"status"`
	Featured         bool       `json:"featured"`
	Categories       []Category `json:"categories"`
	LikesCount       int64      `json:"likes_count"`
	Views            int64      `json:"views"`
	ReviewsCount     int64      `json:"reviews_count"`
	AvgRating        float64    `json:"avg_rating"`
	LikedByViewer    bool       `json:"liked_by_viewer"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ToolPage struct {
	Data []Tool   `json:"data"`
	Meta PageMeta `json:"meta"`
}

type ToolRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	URL              string   `json:"url"`
	DocumentationURL string   `json:"documentation_url,omitempty"`
	CategoryIDs      []string `json:"category_ids"`
}

// ModerationRequest changes only the fields that are set.
type ModerationRequest struct {
	Status   *string `json:"status,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
}

// ToolQuery filters GET /tools. Zero values are omitted from the query.
type ToolQuery struct {
	CategoryID string
	Status     string
	Search     string
	Featured   *bool
	Sort       string
	Page       int
	PerPage    int
}

type Review struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewPage struct {
	Data []Review `json:"data"`
	Meta PageMeta `json:"meta"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}
