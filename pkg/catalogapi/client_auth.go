package catalogapi

import (
	"context"
	"net/http"
)

// Register creates a pending account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.call(ctx, http.MethodPost, "/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login submits credentials. When the account has 2FA enabled and no code is
// given, the response has RequiresTwoFactor set and the client stays logged
// out; call Login again with the code.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, "/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Me returns the logged-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.call(ctx, http.MethodGet, "/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TwoFactorStatus(ctx context.Context) (*TwoFactorStatusResponse, error) {
	var out TwoFactorStatusResponse
	if err := c.call(ctx, http.MethodGet, "/2fa/status", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetupTwoFactor(ctx context.Context, req TwoFactorSetupRequest) (*TwoFactorSetupResponse, error) {
	var out TwoFactorSetupResponse
	if err := c.call(ctx, http.MethodPost, "/2fa/setup", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyTwoFactor(ctx context.Context, code string) (*UserResponse, error) {
	var out UserResponse
	if err := c.call(ctx, http.MethodPost, "/2fa/verify", TwoFactorCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DisableTwoFactor(ctx context.Context, code string) (*UserResponse, error) {
	var out UserResponse
	if err := c.call(ctx, http.MethodPost, "/2fa/disable", TwoFactorCodeRequest{Code: code}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendTwoFactorCode(ctx context.Context) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.call(ctx, http.MethodPost, "/2fa/resend-code", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
