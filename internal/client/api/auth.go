package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atinyakov/HomeDrive/internal/models"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Token, error) {
	var token models.Token
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, pathLogin, req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	req := models.LoginRequest{Username: username, Password: password}
	return c.doJSON(ctx, http.MethodPost, pathRegister, req, nil)
}

// Settings fetches the settings of username.
func (c *Client) Settings(ctx context.Context, username string) (*models.Settings, error) {
	var resp models.SettingsResponse
	if err := c.doJSON(ctx, http.MethodGet, pathSettings+url.PathEscape(username), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

// UpdateSettings stores s for username and returns what the server kept.
func (c *Client) UpdateSettings(ctx context.Context, username string, s models.Settings) (*models.Settings, error) {
	var resp models.SettingsResponse
	req := models.SettingsUpdateRequest{Username: username, Settings: s}
	if err := c.doJSON(ctx, http.MethodPost, pathSettingsUpdate, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Settings, nil
}

// ChangePassword replaces the password of username.
func (c *Client) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	req := models.ChangePasswordRequest{
		Username:    username,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}
	return c.doJSON(ctx, http.MethodPost, pathChangePassword, req, nil)
}

// BlockUser blocks or unblocks target on behalf of username and returns the
// resulting blocked list.
func (c *Client) BlockUser(ctx context.Context, username, target string, action models.BlockAction) ([]string, error) {
	var resp models.BlockUserResponse
	req := models.BlockUserRequest{Username: username, Target: target, Action: action}
	if err := c.doJSON(ctx, http.MethodPost, pathBlockUser, req, &resp); err != nil {
		return nil, err
	}
	return resp.Blocked, nil
}
