package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/codestore"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/domain"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/pkg/cryptox"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	CodeDigits = 6
	CodeTTL    = 10 * time.Minute

	totpPeriod = 30
	totpSkew   = 1
)

// TwoFactorService issues and verifies one-time codes and owns the 2FA
// enable/disable lifecycle.
type TwoFactorService struct {
	Store    store.Store
	Codes    codestore.Store
	Sender   notify.MessageSender
	Activity *ActivityService
	Issuer   string // shown in authenticator apps
	Now      func() time.Time
}

type SetupInput struct {
	Type           string `json:"type" validate:"required"`
	TelegramChatID string `json:"telegram_chat_id" validate:"max=64"`
}

type deliverFunc func(s *TwoFactorService, ctx context.Context, u domain.User, code string) error

type checkFunc func(s *TwoFactorService, ctx context.Context, u domain.User, code string) (bool, error)

// deliverers holds the channels whose codes the service generates.
var deliverers = map[domain.TwoFactorType]deliverFunc{
	domain.TwoFactorEmail:    (*TwoFactorService).deliverEmail,
	domain.TwoFactorTelegram: (*TwoFactorService).deliverTelegram,
}

var checkers = map[domain.TwoFactorType]checkFunc{
	domain.TwoFactorEmail:    (*TwoFactorService).checkStored,
	domain.TwoFactorTelegram: (*TwoFactorService).checkStored,
	domain.TwoFactorTOTP:     (*TwoFactorService).checkTOTP,
}

func codeKey(ch domain.TwoFactorType, userID string) string {
	return fmt.Sprintf("2fa:%s:%s", ch, userID)
}

func (s *TwoFactorService) Status(u domain.User) domain.TwoFactorStatus {
	t := u.TwoFactorType
	if t == "" {
		t = domain.TwoFactorNone
	}
	return domain.TwoFactorStatus{
		Enabled:           u.TwoFactorEnabled,
		Type:              t,
		HasTelegramChatID: u.TelegramChatID != "",
	}
}

// Setup switches the user to a channel and leaves 2FA disabled until the
// first successful Verify. Email and Telegram get a code straight away; a
// failed send is returned and nothing is saved.
func (s *TwoFactorService) Setup(ctx context.Context, actor domain.User, in SetupInput) (domain.TwoFactorSetup, error) {
	if err := requireAuthenticated(actor); err != nil {
		return domain.TwoFactorSetup{}, err
	}
	if err := validateInput(in); err != nil {
		return domain.TwoFactorSetup{}, err
	}
	ch, ok := domain.ParseTwoFactorChannel(in.Type)
	if !ok {
		return domain.TwoFactorSetup{}, fieldError("type", "The selected type is invalid.")
	}

	chatID := strings.TrimSpace(in.TelegramChatID)
	if ch == domain.TwoFactorTelegram {
		if chatID == "" {
			return domain.TwoFactorSetup{}, fieldError("telegram_chat_id", "The telegram chat id field is required when type is telegram.")
		}
		if _, err := strconv.ParseInt(chatID, 10, 64); err != nil {
			return domain.TwoFactorSetup{}, fieldError("telegram_chat_id", "The telegram chat id must be a number.")
		}
	}

	u, err := s.Store.Users().GetUserByID(ctx, actor.ID)
	if err != nil {
		return domain.TwoFactorSetup{}, mapStoreErr(err)
	}

	next := u
	next.TwoFactorType = ch
	next.TwoFactorEnabled = false
	next.TwoFactorVerifiedAt = nil
	next.TwoFactorSecret = ""
	if ch == domain.TwoFactorTelegram {
		next.TelegramChatID = chatID
	}
	next.UpdatedAt = nowFrom(s.Now)

	result := domain.TwoFactorSetup{Type: ch}

	if ch == domain.TwoFactorTOTP {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      s.Issuer,
			AccountName: u.Email,
			Period:      totpPeriod,
			Digits:      otp.DigitsSix,
			Algorithm:   otp.AlgorithmSHA1,
		})
		if err != nil {
			return domain.TwoFactorSetup{}, fmt.Errorf("generate totp key: %w", err)
		}
		next.TwoFactorSecret = key.Secret()
		result.Secret = key.Secret()
		result.OTPAuthURI = key.URL()
	} else {
		if err := s.issue(ctx, next); err != nil {
			return domain.TwoFactorSetup{}, err
		}
		result.CodeSent = true
	}

	if err := s.Store.Users().UpdateUser(ctx, next); err != nil {
		return domain.TwoFactorSetup{}, fmt.Errorf("save two-factor setup: %w", err)
	}

	slogx.FromContext(ctx).Info("two-factor setup started", "channel", ch)
	return result, nil
}

// Verify checks code against the user's channel. The first success enables
// 2FA. A failure changes nothing.
func (s *TwoFactorService) Verify(ctx context.Context, actor domain.User, code string) (domain.User, error) {
	if err := requireAuthenticated(actor); err != nil {
		return domain.User{}, err
	}
	u, err := s.Store.Users().GetUserByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	if _, ok := checkers[u.TwoFactorType]; !ok {
		return domain.User{}, ErrNotConfigured
	}
	if !cryptox.IsNumericCode(code, CodeDigits) {
		return domain.User{}, fieldError("code", "The code must be 6 digits.")
	}

	ok, err := s.check(ctx, u, code)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrInvalidCode
	}

	if u.TwoFactorEnabled {
		return u, nil
	}

	now := nowFrom(s.Now)
	u.TwoFactorEnabled = true
	u.TwoFactorVerifiedAt = &now
	u.UpdatedAt = now
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("enable two-factor: %w", err)
	}

	s.Activity.recordBestEffort(ctx, domain.Activity{
		ActorID:     u.ID,
		Action:      domain.ActionTwoFactor,
		SubjectType: domain.SubjectUser,
		SubjectID:   u.ID,
		Description: fmt.Sprintf("Enabled two-factor authentication via %s", u.TwoFactorType),
	})
	return u, nil
}

// Disable needs a fresh valid code from the active channel.
func (s *TwoFactorService) Disable(ctx context.Context, actor domain.User, code string) (domain.User, error) {
	if err := requireAuthenticated(actor); err != nil {
		return domain.User{}, err
	}
	u, err := s.Store.Users().GetUserByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	if !u.TwoFactorEnabled {
		return domain.User{}, ErrNotEnabled
	}
	if !cryptox.IsNumericCode(code, CodeDigits) {
		return domain.User{}, ErrInvalidCode
	}

	ok, err := s.check(ctx, u, code)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrInvalidCode
	}

	channel := u.TwoFactorType
	u.ClearTwoFactor()
	u.UpdatedAt = nowFrom(s.Now)
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, fmt.Errorf("disable two-factor: %w", err)
	}

	s.Activity.recordBestEffort(ctx, domain.Activity{
		ActorID:     u.ID,
		Action:      domain.ActionTwoFactor,
		SubjectType: domain.SubjectUser,
		SubjectID:   u.ID,
		Description: fmt.Sprintf("Disabled two-factor authentication (%s)", channel),
	})
	return u, nil
}

// ResendCode issues a new code, replacing any outstanding one.
func (s *TwoFactorService) ResendCode(ctx context.Context, actor domain.User) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	u, err := s.Store.Users().GetUserByID(ctx, actor.ID)
	if err != nil {
		return mapStoreErr(err)
	}
	switch {
	case u.TwoFactorType == domain.TwoFactorTOTP:
		return ErrUnsupportedForChannel
	case !u.TwoFactorType.ServerIssued():
		return ErrNotConfigured
	}
	return s.issue(ctx, u)
}

// Challenge sends a login code. Delivery failures are logged and swallowed
// so a flaky channel cannot lock the user out; they can ask for a resend.
func (s *TwoFactorService) Challenge(ctx context.Context, u domain.User) {
	if !u.TwoFactorType.ServerIssued() {
		return
	}
	if err := s.issue(ctx, u); err != nil {
		slogx.FromContext(ctx).Warn("failed to send login challenge",
			"user_id", u.ID, "channel", u.TwoFactorType, "error", err)
	}
}

// issue stores a fresh code and sends it. If the send fails the code is
// removed again so it can never be used, unless a newer send has already
// replaced it.
func (s *TwoFactorService) issue(ctx context.Context, u domain.User) error {
	deliver, ok := deliverers[u.TwoFactorType]
	if !ok {
		return ErrUnsupportedForChannel
	}

	code, err := cryptox.GenerateNumericCode(CodeDigits)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	key := codeKey(u.TwoFactorType, u.ID)
	if err := s.Codes.Put(ctx, key, []byte(code), CodeTTL); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	if err := deliver(s, ctx, u, code); err != nil {
		if _, derr := s.Codes.ConsumeIfMatch(ctx, key, code); derr != nil {
			slogx.FromContext(ctx).Warn("failed to discard undelivered code", "error", derr)
		}
		return err
	}
	return nil
}

func (s *TwoFactorService) check(ctx context.Context, u domain.User, code string) (bool, error) {
	fn, ok := checkers[u.TwoFactorType]
	if !ok {
		return false, ErrNotConfigured
	}
	return fn(s, ctx, u, code)
}

// checkStored compares and deletes in one step, so a code verifies once no
// matter how many requests race for it. A wrong guess leaves it in place.
func (s *TwoFactorService) checkStored(ctx context.Context, u domain.User, code string) (bool, error) {
	ok, err := s.Codes.ConsumeIfMatch(ctx, codeKey(u.TwoFactorType, u.ID), code)
	if err != nil {
		return false, fmt.Errorf("consume code: %w", err)
	}
	return ok, nil
}

// checkTOTP accepts the current 30s window and one window either side.
func (s *TwoFactorService) checkTOTP(_ context.Context, u domain.User, code string) (bool, error) {
	if u.TwoFactorSecret == "" {
		return false, nil
	}
	ok, err := totp.ValidateCustom(code, u.TwoFactorSecret, nowFrom(s.Now), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		if errors.Is(err, otp.ErrValidateInputInvalidLength) {
			return false, nil
		}
		return false, fmt.Errorf("validate totp: %w", err)
	}
	return ok, nil
}

func codeMessage(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(CodeTTL/time.Minute))
}

func (s *TwoFactorService) deliverEmail(ctx context.Context, u domain.User, code string) error {
	return s.Sender.SendEmail(ctx, u.Email, "Your verification code", codeMessage(code))
}

func (s *TwoFactorService) deliverTelegram(ctx context.Context, u domain.User, code string) error {
	if u.TelegramChatID == "" {
		return fieldError("telegram_chat_id", "The telegram chat id field is required when type is telegram.")
	}
	return s.Sender.SendTelegramMessage(ctx, u.TelegramChatID, codeMessage(code))
}
