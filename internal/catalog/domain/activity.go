package domain

import "time"

// Activity actions.
const (
	ActionRegistered = "registered"
	ActionLogin      = "login"
	ActionLogout     = "logout"
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionApproved   = "approved"
	ActionRejected   = "rejected"
	ActionTwoFactor  = "two_factor"
)

// Subject types.
const (
	SubjectUser     = "user"
	SubjectTool     = "tool"
	SubjectCategory = "category"
	SubjectReview   = "review"
)

// Activity is one audit record. Before and After hold JSON snapshots for
// updates and are empty otherwise.
type Activity struct {
	ID          string
	ActorID     string // empty for system actions
	Action      string
	SubjectType string
	SubjectID   string
	Description string
	Before      string
	After       string
	CreatedAt   time.Time
}
