// Package models defines the wire types exchanged with the HomeDrive backend.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FileID identifies a workspace file. Servers send it either as a JSON
// number or as a string; both decode to the same text.
type FileID string

// UnmarshalJSON accepts a number or a string.
func (id *FileID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FileID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("file id: %w", err)
	}
	*id = FileID(n.String())
	return nil
}

// MarshalJSON writes integer ids as numbers and anything else as a string.
func (id FileID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// LoginRequest is the body of POST /auth/login and POST /auth/register.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the successful login response.
type Token struct {
	// AccessToken is the opaque bearer credential.
	AccessToken string `json:"access_token"`
	// TokenType is always "bearer".
	TokenType string `json:"token_type,omitempty"`
	// Role is the account role ("normal", "advanced", "admin").
	Role string `json:"role"`
	// Username echoes the authenticated login.
	Username string `json:"username"`
}

// FileRecord describes one file of the shared workspace.
type FileRecord struct {
	ID       FileID `json:"id"`
	Filename string `json:"filename"`
	Owner    string `json:"owner"`
	// CreatedAt is the server timestamp as sent, usually ISO 8601 without
	// a zone. Empty when the server does not know it.
	CreatedAt string `json:"created_at"`
}

// Settings holds the per-user preferences stored by the server.
type Settings struct {
	Theme         string   `json:"theme"`
	Language      string   `json:"language"`
	Notifications bool     `json:"notifications"`
	DefaultPath   string   `json:"default_path"`
	Blocked       []string `json:"blocked,omitempty"`
}

// SettingsResponse wraps Settings in GET /auth/settings/{username} and
// POST /auth/settings/update responses.
type SettingsResponse struct {
	Username string   `json:"username,omitempty"`
	Settings Settings `json:"settings"`
}

// SettingsUpdateRequest is the body of POST /auth/settings/update.
type SettingsUpdateRequest struct {
	Username string   `json:"username"`
	Settings Settings `json:"settings"`
}

// ChangePasswordRequest is the body of POST /auth/change_password.
type ChangePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// BlockAction selects what POST /auth/block_user does with the target.
type BlockAction string

const (
	// Block adds the target to the blocked list.
	Block BlockAction = "block"
	// Unblock removes the target from the blocked list.
	Unblock BlockAction = "unblock"
)

// Valid reports whether a is one of the known actions.
func (a BlockAction) Valid() bool {
	return a == Block || a == Unblock
}

// BlockUserRequest is the body of POST /auth/block_user.
type BlockUserRequest struct {
	Username string      `json:"username"`
	Target   string      `json:"target"`
	Action   BlockAction `json:"action"`
}

// BlockUserResponse carries the authoritative blocked list after a change.
type BlockUserResponse struct {
	Blocked []string `json:"blocked"`
}

// ErrorResponse is the error body returned by the backend.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
