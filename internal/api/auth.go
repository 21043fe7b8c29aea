package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token and the authenticated user.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out)
	return out, err
}

// Register creates an account and returns a token plus the new user.
func (c *Client) Register(ctx context.Context, data RegisterData) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", data, &out)
	return out, err
}

// Me validates the installed token and returns the current user. Any failure
// means the token is unusable; callers do not distinguish expiry from other
// errors.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

// UpdateProfile updates the current user's name, email, and optionally
// password, returning the updated user.
func (c *Client) UpdateProfile(ctx context.Context, data UpdateProfileData) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/auth/profile", data, &out)
	return out, err
}
