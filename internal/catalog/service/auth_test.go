package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()

	valid := RegisterInput{
		Name:                 "Elena",
		Email:                "elena@example.com",
		Password:             testPassword,
		PasswordConfirmation: testPassword,
		Role:                 domain.RoleFrontend,
	}

	tests := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, "name"},
		{"bad email", func(in *RegisterInput) { in.Email = "elena" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password, in.PasswordConfirmation = "short", "short" }, "password"},
		{"confirmation mismatch", func(in *RegisterInput) { in.PasswordConfirmation = "something-else" }, "password_confirmation"},
		{"owner is not self-service", func(in *RegisterInput) { in.Role = domain.RoleOwner }, "role"},
		{"unknown role", func(in *RegisterInput) { in.Role = "cto" }, "role"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.edit(&in)
			_, err := e.auth.Register(ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tc.field)
		})
	}

	_, err := e.auth.Register(ctx, valid)
	require.NoError(t, err)

	dup := valid
	dup.Email = "  ELENA@example.com "
	_, err = e.auth.Register(ctx, dup)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "The email has already been taken.", verr.Fields["email"])
}

// Registration leaves the user pending and powerless until an owner
// approves them.
func TestRegisterThenApprove(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	owner := e.mkUser(t, "Olga", domain.RoleOwner, domain.UserApproved)

	elena, err := e.auth.Register(ctx, RegisterInput{
		Name:                 "Elena",
		Email:                "Elena@Example.com",
		Password:             testPassword,
		PasswordConfirmation: testPassword,
		Role:                 domain.RoleFrontend,
	})
	require.NoError(t, err)
	require.Equal(t, domain.UserPending, elena.Status)
	require.Equal(t, "elena@example.com", elena.Email)
	require.Equal(t, domain.RoleEmployee, elena.DisplayRole())

	approved, err := e.admin.SetStatus(ctx, owner, elena.ID, domain.UserApproved)
	require.NoError(t, err)
	require.Equal(t, domain.UserApproved, approved.Status)
	require.Equal(t, domain.RoleFrontend, approved.DisplayRole())
	require.Equal(t, domain.RoleFrontend, e.reload(t, elena.ID).DisplayRole())

	acts, err := e.store.Activities().ListActivities(ctx, store.ActivityFilter{SubjectID: elena.ID, Page: domain.Page{PerPage: 10}})
	require.NoError(t, err)
	require.Len(t, acts.Items, 2)
	require.Equal(t, domain.ActionApproved, acts.Items[0].Action)
	require.Equal(t, owner.ID, acts.Items[0].ActorID)
	require.JSONEq(t, `{"role":"frontend","status":"pending"}`, acts.Items[0].Before)
	require.JSONEq(t, `{"role":"frontend","status":"approved"}`, acts.Items[0].After)
	require.Equal(t, domain.ActionRegistered, acts.Items[1].Action)
}

func TestLoginCredentials(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Jon", domain.RoleQA, domain.UserPending)

	_, err := e.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: testPassword}, ClientInfo{})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.auth.Login(ctx, LoginInput{Email: u.Email, Password: "wrong-password"}, ClientInfo{})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.auth.Login(ctx, LoginInput{Email: "", Password: ""}, ClientInfo{})
	require.ErrorIs(t, err, ErrValidation)

	res, err := e.auth.Login(ctx, LoginInput{Email: "JON@example.com", Password: testPassword}, ClientInfo{UserAgent: "test", IP: "10.0.0.1"})
	require.NoError(t, err)
	require.False(t, res.RequiresTwoFactor)
	require.NotEmpty(t, res.Token)
	require.Equal(t, u.ID, res.Session.UserID)
	require.Equal(t, t0.Add(24*time.Hour), res.Session.ExpiresAt)

	got, sess, err := e.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "10.0.0.1", sess.IP)
	require.Equal(t, domain.RoleEmployee, got.DisplayRole(), "pending users log in with the lowest role")
}

// With 2FA on, the password alone never produces a session.
func TestLoginWithTwoFactor(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Kai", domain.RoleBackend, domain.UserApproved)

	_, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	require.NoError(t, err)
	_, err = e.twoFactor.Verify(ctx, u, e.sender.lastCode(t))
	require.NoError(t, err)

	res, err := e.auth.Login(ctx, LoginInput{Email: u.Email, Password: testPassword}, ClientInfo{})
	require.NoError(t, err)
	require.True(t, res.RequiresTwoFactor)
	require.Equal(t, domain.TwoFactorEmail, res.TwoFactorType)
	require.Empty(t, res.Token)
	require.Empty(t, res.Session.ID)

	logins, err := e.store.Activities().ListActivities(ctx, store.ActivityFilter{ActorID: u.ID, Action: domain.ActionLogin})
	require.NoError(t, err)
	require.Zero(t, logins.Total, "no session is opened while the second factor is pending")

	code := e.sender.lastCode(t)

	res, err = e.auth.Login(ctx, LoginInput{Email: u.Email, Password: testPassword, TwoFactorCode: otherCode(code)}, ClientInfo{})
	require.ErrorIs(t, err, ErrInvalidCode)
	require.True(t, res.RequiresTwoFactor)
	require.Empty(t, res.Token)

	res, err = e.auth.Login(ctx, LoginInput{Email: u.Email, Password: "wrong-password", TwoFactorCode: code}, ClientInfo{})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, res.RequiresTwoFactor)

	res, err = e.auth.Login(ctx, LoginInput{Email: u.Email, Password: testPassword, TwoFactorCode: code}, ClientInfo{})
	require.NoError(t, err)
	require.False(t, res.RequiresTwoFactor)
	require.NotEmpty(t, res.Token)

	_, err = e.auth.Login(ctx, LoginInput{Email: u.Email, Password: testPassword, TwoFactorCode: code}, ClientInfo{})
	require.ErrorIs(t, err, ErrInvalidCode, "login codes are single use")
}

func TestAuthenticateRejects(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Lea", domain.RoleQA, domain.UserApproved)

	login := func() LoginResult {
		res, err := e.auth.Login(ctx, LoginInput{Email: u.Email, Password: testPassword}, ClientInfo{})
		require.NoError(t, err)
		return res
	}

	t.Run("garbage", func(t *testing.T) {
		_, _, err := e.auth.Authenticate(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("logged out", func(t *testing.T) {
		res := login()
		require.NoError(t, e.auth.Logout(ctx, u, res.Session.ID))
		_, _, err := e.auth.Authenticate(ctx, res.Token)
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.NoError(t, e.auth.Logout(ctx, u, res.Session.ID), "logout is idempotent")
	})

	t.Run("expired", func(t *testing.T) {
		res := login()
		e.clock.Advance(24 * time.Hour)
		_, _, err := e.auth.Authenticate(ctx, res.Token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestBootstrapOwner(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()

	created, err := e.auth.BootstrapOwner(ctx, BootstrapOwnerInput{})
	require.NoError(t, err)
	require.False(t, created, "nothing configured")

	in := BootstrapOwnerInput{Email: "Root@Example.com", Password: testPassword}
	created, err = e.auth.BootstrapOwner(ctx, in)
	require.NoError(t, err)
	require.True(t, created)

	owner, err := e.store.Users().GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.True(t, owner.IsApprovedOwner())
	require.Equal(t, "Owner", owner.Name)

	created, err = e.auth.BootstrapOwner(ctx, in)
	require.NoError(t, err)
	require.False(t, created, "an owner already exists")
}
