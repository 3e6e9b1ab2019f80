package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/cryptox"
	"github.com/aussiebroadwan/aicatalog/pkg/idx"
	"github.com/aussiebroadwan/aicatalog/pkg/sessionx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// TokenCodec signs and reads session cookies.
type TokenCodec interface {
	sessionx.Signer
	sessionx.Verifier
}

type AuthService struct {
	Store      store.Store
	TwoFactor  *TwoFactorService
	Tokens     TokenCodec
	Issuer     string
	SessionTTL time.Duration
	Now        func() time.Time
}

type RegisterInput struct {
	Name                 string      `json:"name" validate:"required,max=255"`
	Email                string      `json:"email" validate:"required,email,max=255"`
	Password             string      `json:"password" validate:"required,min=8,max=255"`
	PasswordConfirmation string      `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 domain.Role `json:"role" validate:"required,oneof=employee backend frontend qa pm designer"`
}

type LoginInput struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	TwoFactorCode string `json:"two_factor_code"`
}

// ClientInfo describes where a login came from.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// LoginResult is either a completed login (Session and Token set) or a
// pending second factor (RequiresTwoFactor set, no session).
type LoginResult struct {
	User              domain.User
	Session           domain.Session
	Token             string
	RequiresTwoFactor bool
	TwoFactorType     domain.TwoFactorType
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates a pending account. Owners are only ever made by other
// owners or the startup bootstrap.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, fieldError("email", "The email has already been taken.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := nowFrom(s.Now)
	u := domain.User{
		ID:            idx.NewAt(now).String(),
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          in.Role,
		Status:        domain.UserPending,
		TwoFactorType: domain.TwoFactorNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     u.ID,
			Action:      domain.ActionRegistered,
			SubjectType: domain.SubjectUser,
			SubjectID:   u.ID,
			Description: fmt.Sprintf("%s registered as %s", u.Name, u.Role),
		})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, fieldError("email", "The email has already been taken.")
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Login checks credentials and then, when 2FA is on, the second factor. No
// session row exists until both have passed.
func (s *AuthService) Login(ctx context.Context, in LoginInput, client ClientInfo) (LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return LoginResult{}, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := cryptox.VerifyPassword(in.Password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unusable", "user_id", u.ID, "error", err)
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	if u.TwoFactorEnabled {
		pending := LoginResult{RequiresTwoFactor: true, TwoFactorType: u.TwoFactorType}

		code := strings.TrimSpace(in.TwoFactorCode)
		if code == "" {
			s.TwoFactor.Challenge(ctx, u)
			return pending, nil
		}
		if !cryptox.IsNumericCode(code, CodeDigits) {
			return pending, ErrInvalidCode
		}
		ok, err := s.TwoFactor.check(ctx, u, code)
		if err != nil {
			return LoginResult{}, err
		}
		if !ok {
			return pending, ErrInvalidCode
		}
	}

	return s.openSession(ctx, u, client)
}

func (s *AuthService) openSession(ctx context.Context, u domain.User, client ClientInfo) (LoginResult, error) {
	now := nowFrom(s.Now)
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = sessionx.DefaultSessionTTL
	}

	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    u.ID,
		UserAgent: client.UserAgent,
		IP:        client.IP,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	token, err := s.Tokens.Sign(sessionx.NewClaims(u.ID, sess.ID, s.Issuer, ttl, now))
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign session: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().CreateSession(ctx, sess); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			ActorID:     u.ID,
			Action:      domain.ActionLogin,
			SubjectType: domain.SubjectUser,
			SubjectID:   u.ID,
			Description: fmt.Sprintf("%s logged in", u.Name),
		})
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("open session: %w", err)
	}

	return LoginResult{User: u, Session: sess, Token: token}, nil
}

// Authenticate resolves a cookie to its user. The user is loaded fresh on
// every call so status and role changes apply immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, domain.Session, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return domain.User{}, domain.Session{}, ErrUnauthenticated
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.Session{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	if sess.UserID != claims.Subject || sess.ExpiredAt(nowFrom(s.Now)) {
		return domain.User{}, domain.Session{}, ErrUnauthenticated
	}

	u, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.Session{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return u, sess, nil
}

// Logout ends one session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, actor domain.User, sessionID string) error {
	if err := s.Store.Sessions().DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	if actor.ID == "" {
		return nil
	}
	if err := appendActivity(ctx, s.Store.Activities(), nowFrom(s.Now), domain.Activity{
		ActorID:     actor.ID,
		Action:      domain.ActionLogout,
		SubjectType: domain.SubjectUser,
		SubjectID:   actor.ID,
		Description: fmt.Sprintf("%s logged out", actor.Name),
	}); err != nil {
		slogx.FromContext(ctx).Error("failed to record logout", "error", err)
	}
	return nil
}

type BootstrapOwnerInput struct {
	Name     string
	Email    string
	Password string
}

// BootstrapOwner creates an approved owner when none exists. It reports
// whether a user was created.
func (s *AuthService) BootstrapOwner(ctx context.Context, in BootstrapOwnerInput) (bool, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		return false, nil
	}

	n, err := s.Store.Users().CountApprovedOwners(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, in.Email); err == nil {
		slogx.FromContext(ctx).Warn("bootstrap owner email already registered, skipping", "email", in.Email)
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Owner"
	}

	now := nowFrom(s.Now)
	u := domain.User{
		ID:            idx.NewAt(now).String(),
		Name:          name,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          domain.RoleOwner,
		Status:        domain.UserApproved,
		TwoFactorType: domain.TwoFactorNone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return appendActivity(ctx, tx.Activities(), now, domain.Activity{
			Action:      domain.ActionCreated,
			SubjectType: domain.SubjectUser,
			SubjectID:   u.ID,
			Description: fmt.Sprintf("Bootstrapped owner %s", u.Email),
		})
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap owner: %w", err)
	}

	slogx.FromContext(ctx).Info("bootstrapped owner account", "user_id", u.ID)
	return true, nil
}
