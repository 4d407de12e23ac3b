package api

import (
	"context"
	"net/http"
	"net/url"
)

// User identifies the authenticated account as returned by login.
type User struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}

// LoginRequest carries the pre-auth credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the account-creation body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and establishes the session cookie. A 401 here is a
// wrong credential, not an expired session, and reaches the caller untouched.
func (c *Client) Login(ctx context.Context, req LoginRequest) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, RouteUserLogin, RouteUserLogin, nil, req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// CheckUserID asks whether a username is still available. Duplicate
// rejections reach the caller; classify them with IsDuplicateErr.
func (c *Client) CheckUserID(ctx context.Context, username string) error {
	body := map[string]string{"username": username}
	return c.do(ctx, http.MethodPost, RouteUserIDCheck, RouteUserIDCheck, nil, body, nil)
}

// CheckEmail asks whether an email is still available.
func (c *Client) CheckEmail(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, RouteUserEmailCheck, RouteUserEmailCheck, nil, body, nil)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, RouteUserRegister, RouteUserRegister, nil, req, nil)
}

// Logout terminates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, RouteUserLogout, RouteUserLogout, nil, nil, nil)
}

// DeleteAccount removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, RouteUserDelete, RouteUserDelete, nil, nil, nil)
}

// RequestPasswordReset starts the password-reset flow for an email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, RouteUserResetPassword, RouteUserResetPassword, nil, body, nil)
}

// ValidateResetToken checks a password-reset token.
func (c *Client) ValidateResetToken(ctx context.Context, token string) error {
	query := url.Values{"token": []string{token}}
	return c.do(ctx, http.MethodGet, RouteUserValidateToken, RouteUserValidateToken, query, nil, nil)
}
