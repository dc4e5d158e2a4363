package api

import (
	"context"
	"encoding/json"
)

// LoginResult is the union the login endpoint returns: either a full session
// or a password-change challenge for accounts still on a temporary password.
type LoginResult struct {
	User         *User         `json:"user"`
	Organization *Organization `json:"psp"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`

	// IsTemporaryPassword marks a session that must change its password
	// before reaching any other authenticated surface.
	IsTemporaryPassword bool `json:"isTemporaryPassword"`

	RequirePasswordChange bool   `json:"requirePasswordChange"`
	ChangePasswordToken   string `json:"changePasswordToken"`
	Email                 string `json:"email"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.postPublic(ctx, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangePasswordRequest covers both password-change flows: the first-time
// flow authenticates with the challenge token from login, the regular flow
// with the current password.
type ChangePasswordRequest struct {
	Email               string `json:"email"`
	NewPassword         string `json:"newPassword"`
	CurrentPassword     string `json:"currentPassword,omitempty"`
	ChangePasswordToken string `json:"changePasswordToken,omitempty"`
}

// ChangePassword sets a new password and returns a fresh session with the
// temporary-password flag cleared.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.postPublic(ctx, "/auth/change-password", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the session server-side. Best-effort: local state is cleared
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// DashboardSummary fetches the dashboard summary blob. The payload is cached
// verbatim by the session store, so it stays raw here.
func (c *Client) DashboardSummary(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/dashboard/summary", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
