package domain

import (
	"slices"
	"time"
)

// Role is the declared function of a user. It only takes effect once the
// user is approved; see User.DisplayRole.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleBackend  Role = "backend"
	RoleFrontend Role = "frontend"
	RoleQA       Role = "qa"
	RolePM       Role = "pm"
	RoleDesigner Role = "designer"
	RoleOwner    Role = "owner"
)

var allRoles = []Role{RoleEmployee, RoleBackend, RoleFrontend, RoleQA, RolePM, RoleDesigner, RoleOwner}

// Roles lists every role in privilege-agnostic display order.
func Roles() []Role { return slices.Clone(allRoles) }

func (r Role) Valid() bool { return slices.Contains(allRoles, r) }

type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
)

var allUserStatuses = []UserStatus{UserPending, UserApproved, UserRejected}

func UserStatuses() []UserStatus { return slices.Clone(allUserStatuses) }

func (s UserStatus) Valid() bool { return slices.Contains(allUserStatuses, s) }

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2id PHC string
	Role         Role
	Status       UserStatus

	TwoFactorType       TwoFactorType
	TwoFactorEnabled    bool
	TwoFactorSecret     string // base32 TOTP secret, only for google_authenticator
	TelegramChatID      string
	TwoFactorVerifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayRole is the role the rest of the system acts on. Unapproved users
// always present as employee, whatever they asked for. It is computed on
// every call and never stored.
func (u User) DisplayRole() Role {
	if u.Status == UserApproved {
		return u.Role
	}
	return RoleEmployee
}

func (u User) IsApproved() bool { return u.Status == UserApproved }

func (u User) IsApprovedOwner() bool { return u.Role == RoleOwner && u.Status == UserApproved }

// ClearTwoFactor resets every 2FA field to the disabled state.
func (u *User) ClearTwoFactor() {
	u.TwoFactorType = TwoFactorNone
	u.TwoFactorEnabled = false
	u.TwoFactorSecret = ""
	u.TelegramChatID = ""
	u.TwoFactorVerifiedAt = nil
}
