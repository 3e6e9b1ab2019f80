package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/cryptox"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// Notifier queues advisory email. It never reports delivery failures back.
type Notifier interface {
	Enqueue(notify.Email) bool
}

// UserAdminService is the owner-facing side of the user lifecycle:
// approvals, role changes, manual accounts and export.
type UserAdminService struct {
	Store    store.Store
	Notifier Notifier
	Now      func() time.Time
}

type CreateUserInput struct {
	Name     string            `json:"name" validate:"required,max=255"`
	Email    string            `json:"email" validate:"required,email,max=255"`
	Password string            `json:"password" validate:"omitempty,min=8,max=255"`
	Role     domain.Role       `json:"role" validate:"required,oneof=employee backend frontend qa pm designer owner"`
	Status   domain.UserStatus `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// CreatedUser holds the generated password when none was supplied. It is
// only ever returned once.
type CreatedUser struct {
	User              domain.User
	GeneratedPassword string
}

func (s *UserAdminService) List(ctx context.Context, actor domain.User, f store.UserFilter) (domain.Paged[domain.User], error) {
	if err := requireOwner(actor); err != nil {
		return domain.Paged[domain.User]{}, err
	}
	if f.Status != "" && !f.Status.Valid() {
		return domain.Paged[domain.User]{}, fieldError("status", "The selected status is invalid.")
	}
	if f.Role != "" && !f.Role.Valid() {
		return domain.Paged[domain.User]{}, fieldError("role", "The selected role is invalid.")
	}
	f.Page = f.Page.Normalize()
	return s.Store.Users().ListUsers(ctx, f)
}

func (s *UserAdminService) Get(ctx context.Context, actor domain.User, id string) (domain.User, error) {
	if err := requireOwner(actor); err != nil {
		return domain.User{}, err
	}
	u, err := s.Store.Users().GetUserByID(ctx, id)
	return u, mapStoreErr(err)
}

// Create makes an account on someone's behalf. It is approved unless a
// status is given.
func (s *UserAdminService) Create(ctx context.Context, actor domain.User, in CreateUserInput) (CreatedUser, error) {
	if err := requireOwner(actor); err != nil {
		return CreatedUser{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return CreatedUser{}, err
	}
	if in.Status == "" {
		in.Status = domain.UserApproved
	}

	var generated string
	if in.Password == "" {
		p, err := cryptox.GeneratePassword()
		if err != nil {
			return CreatedUser{}, fmt.Errorf("generate password: %w", err)
		}
		in.Password, generated = p, p
	}
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return CreatedUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := nowFrom(s.Now)
	u := domain.User{
		ID:            idx.NewAt(now).String(),
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          in.Role,
		Status:        in.Status,
		TwoFactorType: domain.TwoFactorNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      domain.ActionCreated,
			SubjectType: domain.SubjectUser,
			SubjectID:   u.ID,
			Description: fmt.Sprintf("Created user %s (%s)", u.Name, u.Email),
			After:       snapshotUser(u),
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return CreatedUser{}, fieldError("email", "The email has already been taken.")
	}
	if err != nil {
		return CreatedUser{}, fmt.Errorf("create user: %w", err)
	}
	return CreatedUser{User: u, GeneratedPassword: generated}, nil
}

// SetStatus moves a user between pending, approved and rejected. Approval
// and rejection notify the user by email, best effort, after the change
// has been committed.
func (s *UserAdminService) SetStatus(ctx context.Context, actor domain.User, id string, status domain.UserStatus) (domain.User, error) {
	if err := requireOwner(actor); err != nil {
		return domain.User{}, err
	}
	if !status.Valid() {
		return domain.User{}, fieldError("status", "The selected status is invalid.")
	}

	action := domain.ActionUpdated
	switch status {
	case domain.UserApproved:
		action = domain.ActionApproved
	case domain.UserRejected:
		action = domain.ActionRejected
	}

	updated, changed, err := s.transition(ctx, actor, id, action, func(u *domain.User) {
		u.Status = status
	})
	if err != nil || !changed {
		return updated, err
	}

	if action != domain.ActionUpdated {
		s.notifyStatus(ctx, updated)
	}
	return updated, nil
}

// SetRole changes the declared role. It only takes effect while the user is
// approved.
func (s *UserAdminService) SetRole(ctx context.Context, actor domain.User, id string, role domain.Role) (domain.User, error) {
	if err := requireOwner(actor); err != nil {
		return domain.User{}, err
	}
	if !role.Valid() {
		return domain.User{}, fieldError("role", "The selected role is invalid.")
	}
	u, _, err := s.transition(ctx, actor, id, domain.ActionUpdated, func(u *domain.User) {
		u.Role = role
	})
	return u, err
}

// transition applies mutate to the target and writes the audit record in
// the same transaction. Nothing is written when mutate is a no-op.
func (s *UserAdminService) transition(ctx context.Context, actor domain.User, id, action string, mutate func(*domain.User)) (domain.User, bool, error) {
	now := nowFrom(s.Now)

	var (
		after   domain.User
		changed bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		before, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return mapStoreErr(err)
		}

		after = before
		mutate(&after)
		if after.Role == before.Role && after.Status == before.Status {
			return nil
		}

		// Someone has to be left who can approve people.
		if before.IsApprovedOwner() && !after.IsApprovedOwner() {
			n, err := tx.Users().CountApprovedOwners(ctx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return ErrLastOwner
			}
		}

		after.UpdatedAt = now
		if err := tx.Users().UpdateUser(ctx, after); err != nil {
			return mapStoreErr(err)
		}
		changed = true

		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     actor.ID,
			Action:      action,
			SubjectType: domain.SubjectUser,
			SubjectID:   after.ID,
			Description: describeUserChange(action, before, after),
			Before:      snapshotUser(before),
			After:       snapshotUser(after),
		})
	})
	if err != nil {
		return domain.User{}, false, err
	}

	if changed {
		slogx.FromContext(ctx).Info("user updated by owner",
			"target_id", after.ID, "action", action, "status", after.Status, "role", after.Role)
	}
	return after, changed, nil
}

func describeUserChange(action string, before, after domain.User) string {
	switch action {
	case domain.ActionApproved:
		return fmt.Sprintf("Approved user %s (%s)", after.Name, after.Email)
	case domain.ActionRejected:
		return fmt.Sprintf("Rejected user %s (%s)", after.Name, after.Email)
	}
	if before.Role != after.Role {
		return fmt.Sprintf("Changed role of %s from %s to %s", after.Email, before.Role, after.Role)
	}
	return fmt.Sprintf("Changed status of %s from %s to %s", after.Email, before.Status, after.Status)
}

func (s *UserAdminService) notifyStatus(ctx context.Context, u domain.User) {
	if s.Notifier == nil {
		return
	}
	m := notify.Email{To: u.Email}
	switch u.Status {
	case domain.UserApproved:
		m.Subject = "Your account has been approved"
		m.Body = fmt.Sprintf("Hello %s,\n\nYour account has been approved. You now have %s access.\n", u.Name, u.DisplayRole())
	case domain.UserRejected:
		m.Subject = "Your account registration was not approved"
		m.Body = fmt.Sprintf("Hello %s,\n\nYour account registration was not approved. Contact an administrator if you think this is a mistake.\n", u.Name)
	default:
		return
	}
	if !s.Notifier.Enqueue(m) {
		slogx.FromContext(ctx).Warn("status notification dropped", "user_id", u.ID)
	}
}

var exportHeader = []string{"ID", "Name", "Email", "Role", "Status", "CreatedAt", "UpdatedAt"}

// utf8BOM makes spreadsheet apps detect the encoding.
const utf8BOM = "\xEF\xBB\xBF"

// exportBlockSize is how much output is held before it reaches w.
const exportBlockSize = 32 << 10

// ExportCSV streams every user in creation order. Nothing reaches w until
// the first block fills or the export ends, so small exports that fail
// leave w untouched.
func (s *UserAdminService) ExportCSV(ctx context.Context, actor domain.User, w io.Writer) error {
	if err := requireOwner(actor); err != nil {
		return err
	}
	bw := bufio.NewWriterSize(w, exportBlockSize)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(bw)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	err := s.Store.Users().EachUser(ctx, func(u domain.User) error {
		return cw.Write([]string{
			u.ID,
			u.Name,
			u.Email,
			string(u.Role),
			string(u.Status),
			u.CreatedAt.UTC().Format(time.RFC3339),
			u.UpdatedAt.UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		return fmt.Errorf("export users: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
