package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/codestore"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestEmailSetupAndVerify(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Elena", domain.RoleFrontend, domain.UserApproved)

	setup, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	require.NoError(t, err)
	require.True(t, setup.CodeSent)
	require.Empty(t, setup.Secret)
	require.Equal(t, 1, e.sender.emailCount())
	require.Equal(t, u.Email, e.sender.emails[0].To)

	stored := e.reload(t, u.ID)
	require.Equal(t, domain.TwoFactorEmail, stored.TwoFactorType)
	require.False(t, stored.TwoFactorEnabled)
	require.Nil(t, stored.TwoFactorVerifiedAt)

	code := e.sender.lastCode(t)
	raw, err := e.codes.Get(ctx, codeKey(domain.TwoFactorEmail, u.ID))
	require.NoError(t, err)
	require.Equal(t, code, string(raw))

	e.clock.Advance(time.Minute)
	verified, err := e.twoFactor.Verify(ctx, u, code)
	require.NoError(t, err)
	require.True(t, verified.TwoFactorEnabled)
	require.NotNil(t, verified.TwoFactorVerifiedAt)
	require.Equal(t, t0.Add(time.Minute), *verified.TwoFactorVerifiedAt)

	_, err = e.codes.Get(ctx, codeKey(domain.TwoFactorEmail, u.ID))
	require.ErrorIs(t, err, codestore.ErrMiss, "code is consumed on success")

	_, err = e.twoFactor.Verify(ctx, u, code)
	require.ErrorIs(t, err, ErrInvalidCode, "a code verifies once")
	require.True(t, e.reload(t, u.ID).TwoFactorEnabled)
}

func TestCodeExpiresAtTenMinutes(t *testing.T) {
	t.Run("just before expiry", func(t *testing.T) {
		e := newTestEnv(t)
		u := e.mkUser(t, "Ann", domain.RoleQA, domain.UserApproved)
		_, err := e.twoFactor.Setup(e.ctx(), u, SetupInput{Type: "email"})
		require.NoError(t, err)

		e.clock.Advance(CodeTTL - time.Nanosecond)
		_, err = e.twoFactor.Verify(e.ctx(), u, e.sender.lastCode(t))
		require.NoError(t, err)
	})

	t.Run("at expiry", func(t *testing.T) {
		e := newTestEnv(t)
		u := e.mkUser(t, "Ann", domain.RoleQA, domain.UserApproved)
		_, err := e.twoFactor.Setup(e.ctx(), u, SetupInput{Type: "email"})
		require.NoError(t, err)

		e.clock.Advance(CodeTTL)
		_, err = e.twoFactor.Verify(e.ctx(), u, e.sender.lastCode(t))
		require.ErrorIs(t, err, ErrInvalidCode)
		require.False(t, e.reload(t, u.ID).TwoFactorEnabled)
	})
}

func TestNewCodeReplacesOutstandingOne(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Bob", domain.RoleBackend, domain.UserApproved)

	_, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	require.NoError(t, err)
	first := e.sender.lastCode(t)

	second := first
	for second == first {
		require.NoError(t, e.twoFactor.ResendCode(ctx, u))
		second = e.sender.lastCode(t)
	}

	_, err = e.twoFactor.Verify(ctx, u, first)
	require.ErrorIs(t, err, ErrInvalidCode)

	_, err = e.twoFactor.Verify(ctx, u, second)
	require.NoError(t, err)
}

func TestWrongCodeLeavesStoredCode(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Cleo", domain.RolePM, domain.UserApproved)

	_, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	require.NoError(t, err)
	code := e.sender.lastCode(t)

	_, err = e.twoFactor.Verify(ctx, u, otherCode(code))
	require.ErrorIs(t, err, ErrInvalidCode)

	_, err = e.twoFactor.Verify(ctx, u, "12ab56")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "code")

	_, err = e.twoFactor.Verify(ctx, u, code)
	require.NoError(t, err)
}

func TestTelegramSetup(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Dima", domain.RoleDesigner, domain.UserApproved)

	tests := []struct {
		name  string
		in    SetupInput
		field string
	}{
		{"unknown type", SetupInput{Type: "sms"}, "type"},
		{"none is not a channel", SetupInput{Type: "none"}, "type"},
		{"missing type", SetupInput{}, "type"},
		{"telegram without chat id", SetupInput{Type: "telegram"}, "telegram_chat_id"},
		{"telegram with bad chat id", SetupInput{Type: "telegram", TelegramChatID: "@dima"}, "telegram_chat_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.twoFactor.Setup(ctx, u, tc.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tc.field)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	setup, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "telegram", TelegramChatID: "-100123"})
	require.NoError(t, err)
	require.True(t, setup.CodeSent)
	require.Len(t, e.sender.telegrams, 1)
	require.Equal(t, "-100123", e.sender.telegrams[0].To)

	stored := e.reload(t, u.ID)
	require.Equal(t, "-100123", stored.TelegramChatID)
	require.True(t, e.twoFactor.Status(stored).HasTelegramChatID)

	_, err = e.twoFactor.Verify(ctx, u, e.sender.lastCode(t))
	require.NoError(t, err)
}

func TestSetupDeliveryFailureSavesNothing(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Eve", domain.RoleQA, domain.UserApproved)

	e.sender.setFail(&notify.DeliveryError{Channel: "email", Err: errors.New("connection refused")})

	_, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	var derr *notify.DeliveryError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "email", derr.Channel)

	stored := e.reload(t, u.ID)
	require.Equal(t, domain.TwoFactorNone, stored.TwoFactorType)
	require.Zero(t, e.codes.Len(), "undelivered code is discarded")
}

// overlappingSender fails its first send, but only after a second send has
// gone out through the embedded fakeSender.
type overlappingSender struct {
	*fakeSender
	during func()
	done   bool
}

func (o *overlappingSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if o.done {
		return o.fakeSender.SendEmail(ctx, to, subject, body)
	}
	o.done = true
	o.during()
	return &notify.DeliveryError{Channel: "email", Err: errors.New("timeout")}
}

func TestFailedSendKeepsNewerCode(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Eve", domain.RoleQA, domain.UserApproved)

	_, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	require.NoError(t, err)

	slow := *e.twoFactor
	slow.Sender = &overlappingSender{
		fakeSender: e.sender,
		during: func() {
			require.NoError(t, e.twoFactor.ResendCode(ctx, u))
		},
	}

	err = slow.ResendCode(ctx, u)
	var derr *notify.DeliveryError
	require.ErrorAs(t, err, &derr)

	_, err = e.twoFactor.Verify(ctx, u, e.sender.lastCode(t))
	require.NoError(t, err, "the delivered code survives the failed send's cleanup")
}

func TestTOTPAcceptsOneStepOfSkew(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Fay", domain.RoleBackend, domain.UserApproved)

	setup, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "google_authenticator"})
	require.NoError(t, err)
	require.False(t, setup.CodeSent)
	require.NotEmpty(t, setup.Secret)
	require.Contains(t, setup.OTPAuthURI, "otpauth://totp/")
	require.Zero(t, e.sender.emailCount(), "totp codes are never sent")

	codeAt := func(step int) string {
		c, err := totp.GenerateCodeCustom(setup.Secret, t0.Add(time.Duration(step)*30*time.Second), totp.ValidateOpts{
			Period:    30,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		require.NoError(t, err)
		return c
	}

	accepted := map[string]bool{codeAt(-1): true, codeAt(0): true, codeAt(1): true}
	for _, step := range []int{-2, 2} {
		if c := codeAt(step); !accepted[c] {
			_, err := e.twoFactor.Verify(ctx, u, c)
			require.ErrorIs(t, err, ErrInvalidCode, "step %d", step)
		}
	}
	require.False(t, e.reload(t, u.ID).TwoFactorEnabled)

	for _, step := range []int{-1, 0, 1} {
		_, err := e.twoFactor.Verify(ctx, u, codeAt(step))
		require.NoError(t, err, "step %d", step)
	}
	require.True(t, e.reload(t, u.ID).TwoFactorEnabled)

	require.ErrorIs(t, e.twoFactor.ResendCode(ctx, u), ErrUnsupportedForChannel)
}

func TestDisable(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Gus", domain.RoleQA, domain.UserApproved)

	t.Run("never enabled", func(t *testing.T) {
		_, err := e.twoFactor.Disable(ctx, u, "123456")
		require.ErrorIs(t, err, ErrNotEnabled)
		require.Equal(t, domain.TwoFactorNone, e.reload(t, u.ID).TwoFactorType)
	})

	_, err := e.twoFactor.Setup(ctx, u, SetupInput{Type: "email"})
	require.NoError(t, err)

	t.Run("set up but not verified", func(t *testing.T) {
		_, err := e.twoFactor.Disable(ctx, u, e.sender.lastCode(t))
		require.ErrorIs(t, err, ErrNotEnabled)
	})

	_, err = e.twoFactor.Verify(ctx, u, e.sender.lastCode(t))
	require.NoError(t, err)
	before := e.reload(t, u.ID)

	t.Run("wrong code", func(t *testing.T) {
		require.NoError(t, e.twoFactor.ResendCode(ctx, u))
		code := e.sender.lastCode(t)

		_, err := e.twoFactor.Disable(ctx, u, otherCode(code))
		require.ErrorIs(t, err, ErrInvalidCode)
		_, err = e.twoFactor.Disable(ctx, u, "abc")
		require.ErrorIs(t, err, ErrInvalidCode)
		require.Equal(t, before, e.reload(t, u.ID))
	})

	t.Run("valid code clears everything", func(t *testing.T) {
		require.NoError(t, e.twoFactor.ResendCode(ctx, u))
		got, err := e.twoFactor.Disable(ctx, u, e.sender.lastCode(t))
		require.NoError(t, err)
		require.False(t, got.TwoFactorEnabled)

		stored := e.reload(t, u.ID)
		require.Equal(t, domain.TwoFactorNone, stored.TwoFactorType)
		require.False(t, stored.TwoFactorEnabled)
		require.Empty(t, stored.TwoFactorSecret)
		require.Empty(t, stored.TelegramChatID)
		require.Nil(t, stored.TwoFactorVerifiedAt)
	})
}

func TestUnconfiguredChannel(t *testing.T) {
	e := newTestEnv(t)
	ctx := e.ctx()
	u := e.mkUser(t, "Hal", domain.RoleQA, domain.UserApproved)

	_, err := e.twoFactor.Verify(ctx, u, "123456")
	require.ErrorIs(t, err, ErrNotConfigured)
	require.ErrorIs(t, e.twoFactor.ResendCode(ctx, u), ErrNotConfigured)

	st := e.twoFactor.Status(u)
	require.False(t, st.Enabled)
	require.Equal(t, domain.TwoFactorNone, st.Type)
	require.False(t, st.HasTelegramChatID)

	_, err = e.twoFactor.Setup(ctx, domain.User{}, SetupInput{Type: "email"})
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLoginChallengeSwallowsDeliveryFailure(t *testing.T) {
	e := newTestEnv(t)
	u := e.mkUser(t, "Ivy", domain.RoleQA, domain.UserApproved)
	u.TwoFactorType = domain.TwoFactorEmail
	u.TwoFactorEnabled = true

	e.sender.setFail(&notify.DeliveryError{Channel: "email", Err: errors.New("timeout")})
	e.twoFactor.Challenge(e.ctx(), u)
	require.Zero(t, e.codes.Len())
}
