package catalog_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestEmailTwoFactorLogin(t *testing.T) {
	svc := setupCatalog(t)
	ctx := t.Context()
	owner := svc.loginOwner(t)

	const email = "quinn@example.com"
	quinn := svc.registerApproved(t, owner, "Quinn", email, "qa")

	setup, err := quinn.SetupTwoFactor(ctx, catalogapi.TwoFactorSetupRequest{Type: "email"})
	require.NoError(t, err)
	require.True(t, setup.CodeSent)

	_, err = quinn.VerifyTwoFactor(ctx, svc.lastLoggedCode(t, email))
	require.NoError(t, err)
	require.NoError(t, quinn.Logout(ctx))

	fresh := svc.client()
	res, err := fresh.Login(ctx, catalogapi.LoginRequest{Email: email, Password: userPassword})
	require.NoError(t, err)
	require.True(t, res.RequiresTwoFactor)

	_, err = fresh.Me(ctx)
	require.True(t, catalogapi.IsUnauthenticated(err))

	code := svc.lastLoggedCode(t, email)
	res, err = fresh.Login(ctx, catalogapi.LoginRequest{Email: email, Password: userPassword, TwoFactorCode: code})
	require.NoError(t, err)
	require.True(t, res.Success)

	me, err := fresh.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.TwoFactorEnabled)
	require.Equal(t, "email", me.TwoFactorType)
}

func TestAuthenticatorAppTwoFactor(t *testing.T) {
	svc := setupCatalog(t)
	ctx := t.Context()
	owner := svc.loginOwner(t)

	const email = "dana@example.com"
	dana := svc.registerApproved(t, owner, "Dana", email, "designer")

	setup, err := dana.SetupTwoFactor(ctx, catalogapi.TwoFactorSetupRequest{Type: "google_authenticator"})
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)
	require.False(t, setup.CodeSent)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	verified, err := dana.VerifyTwoFactor(ctx, code)
	require.NoError(t, err)
	require.True(t, verified.User.TwoFactorEnabled)

	fresh := svc.client()
	_, err = fresh.Login(ctx, catalogapi.LoginRequest{Email: email, Password: userPassword, TwoFactorCode: "12345"})
	require.True(t, catalogapi.IsTwoFactorRejected(err), "got %v", err)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	res, err := fresh.Login(ctx, catalogapi.LoginRequest{Email: email, Password: userPassword, TwoFactorCode: code})
	require.NoError(t, err)
	require.True(t, res.Success)

	_, err = fresh.ResendTwoFactorCode(ctx)
	require.Error(t, err, "authenticator apps have nothing to resend")

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	off, err := fresh.DisableTwoFactor(ctx, code)
	require.NoError(t, err)
	require.False(t, off.User.TwoFactorEnabled)
}
