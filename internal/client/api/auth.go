package api

import (
	"context"
	"net/http"

	"github.com/forkahq/forka-cli/internal/client/models"
)

// Credentials is the user+tokens payload returned by login and email
// verification.
type Credentials struct {
	User   models.User      `json:"user"`
	Tokens models.TokenPair `json:"tokens"`
}

// RegisterRequest is the registration payload. Password2 must equal Password;
// the server enforces it as well.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Bio       string `json:"bio"`
}

// Login authenticates with username and password. The returned *Error on
// failure may carry AttemptsRemaining, LockedUntil or
// EmailVerificationRequired context.
func (c *Client) Login(ctx context.Context, username, password string) (*Credentials, error) {
	in := map[string]string{"username": username, "password": password}
	var out Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/login/", in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a pending account. The server dispatches a 6-digit
// verification code by email; no session is established yet.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register/", req, nil, http.StatusCreated)
}

// VerifyEmail redeems the emailed code. Success activates the account and
// returns the user record with a fresh token pair.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) (*Credentials, error) {
	in := map[string]string{"email": email, "code": code}
	var out Credentials
	if err := c.do(ctx, http.MethodPost, "/auth/verify-email/", in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendCode asks for a new verification code. The response is generic
// regardless of whether the address is registered.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/resend-code/", in, nil, http.StatusOK)
}

// ForgotPassword requests a password-reset code. Like ResendCode, success is
// reported generically to avoid account enumeration.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password/", in, nil, http.StatusOK)
}

// VerifyResetCode checks a reset code against the email without changing the
// password yet.
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	in := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/auth/verify-reset-code/", in, nil, http.StatusOK)
}

// ResetPassword commits a new password using a previously verified code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword, newPassword2 string) error {
	in := map[string]string{
		"email":         email,
		"code":          code,
		"new_password":  newPassword,
		"new_password2": newPassword2,
	}
	return c.do(ctx, http.MethodPost, "/auth/reset-password/", in, nil, http.StatusOK)
}
