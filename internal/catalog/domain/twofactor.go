package domain

// TwoFactorType is the closed set of second-factor channels.
type TwoFactorType string

const (
	TwoFactorNone     TwoFactorType = "none"
	TwoFactorEmail    TwoFactorType = "email"
	TwoFactorTelegram TwoFactorType = "telegram"
	TwoFactorTOTP     TwoFactorType = "google_authenticator"
)

// ParseTwoFactorChannel accepts only real channels, never none.
func ParseTwoFactorChannel(s string) (TwoFactorType, bool) {
	switch t := TwoFactorType(s); t {
	case TwoFactorEmail, TwoFactorTelegram, TwoFactorTOTP:
		return t, true
	}
	return "", false
}

// ServerIssued reports whether codes for this channel are generated and
// stored by the service, as opposed to derived on the user's device.
func (t TwoFactorType) ServerIssued() bool {
	return t == TwoFactorEmail || t == TwoFactorTelegram
}

// TwoFactorStatus is the public view of a user's 2FA configuration.
type TwoFactorStatus struct {
	Enabled           bool
	Type              TwoFactorType
	HasTelegramChatID bool
}

// TwoFactorSetup is returned by setup. Secret and URI are only set for TOTP.
type TwoFactorSetup struct {
	Type       TwoFactorType
	Secret     string
	OTPAuthURI string
	CodeSent   bool
}
