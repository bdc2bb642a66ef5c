package mockbackend

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atinyakov/HomeDrive/internal/models"
)

const (
	detailInvalidCredentials = "Identifiants invalides"
	detailRequiredFields     = "Tous les champs sont obligatoires."
	detailUsernameTaken      = "Nom d’utilisateur déjà utilisé."
	detailUnknownUser        = "Utilisateur introuvable"
	detailUnknownTarget      = "Utilisateur cible introuvable"
	detailWrongPassword      = "Ancien mot de passe incorrect."
	detailInvalidAction      = "Action invalide."
	detailSelfBlock          = "Impossible de se bloquer soi-même."
	detailInvalidRequest     = "Requête invalide."
)

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	b.mu.Lock()
	u, ok := b.users[req.Username]
	if !ok || !u.checkPassword(req.Password) {
		b.mu.Unlock()
		writeDetail(w, http.StatusUnauthorized, detailInvalidCredentials)
		return
	}
	token := "TOKEN-" + uuid.NewString()
	b.tokens[token] = req.Username
	role := u.role
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.Token{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        role,
		Username:    req.Username,
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, detailRequiredFields)
		return
	}

	if err := b.AddUser(req.Username, req.Password, RoleNormal); err != nil {
		if errors.Is(err, ErrUserExists) {
			writeDetail(w, http.StatusBadRequest, detailUsernameTaken)
			return
		}
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"message":  "Compte créé avec succès.",
		"username": req.Username,
	})
}

// settingsOut always carries a non-nil blocked list.
func settingsOut(username string, s models.Settings) models.SettingsResponse {
	if s.Blocked == nil {
		s.Blocked = []string{}
	}
	return models.SettingsResponse{Username: username, Settings: s}
}

func (b *Backend) getSettings(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	s, ok := b.UserSettings(username)
	if !ok {
		writeDetail(w, http.StatusNotFound, detailUnknownUser)
		return
	}
	writeJSON(w, http.StatusOK, settingsOut(username, s))
}

func (b *Backend) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	b.mu.Lock()
	u, ok := b.users[req.Username]
	if !ok {
		b.mu.Unlock()
		writeDetail(w, http.StatusNotFound, detailUnknownUser)
		return
	}
	// the blocked list is only changed through /auth/block_user
	blocked := u.settings.Blocked
	u.settings = req.Settings
	u.settings.Blocked = blocked
	s := u.settings
	s.Blocked = slices.Clone(blocked)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, settingsOut(req.Username, s))
}

func (b *Backend) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}
	if req.NewPassword == "" {
		writeDetail(w, http.StatusBadRequest, detailRequiredFields)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[req.Username]
	if !ok {
		writeDetail(w, http.StatusNotFound, detailUnknownUser)
		return
	}
	if !u.checkPassword(req.OldPassword) {
		writeDetail(w, http.StatusBadRequest, detailWrongPassword)
		return
	}
	u.hash = hashPassword(req.NewPassword, u.salt)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *Backend) blockUser(w http.ResponseWriter, r *http.Request) {
	var req models.BlockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}
	if !req.Action.Valid() {
		writeDetail(w, http.StatusBadRequest, detailInvalidAction)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[req.Username]
	if !ok {
		writeDetail(w, http.StatusNotFound, detailUnknownUser)
		return
	}
	if req.Target == req.Username {
		writeDetail(w, http.StatusBadRequest, detailSelfBlock)
		return
	}
	if _, ok := b.users[req.Target]; !ok {
		writeDetail(w, http.StatusNotFound, detailUnknownTarget)
		return
	}

	switch req.Action {
	case models.Block:
		if !slices.Contains(u.settings.Blocked, req.Target) {
			u.settings.Blocked = append(u.settings.Blocked, req.Target)
		}
	case models.Unblock:
		u.settings.Blocked = slices.DeleteFunc(u.settings.Blocked, func(s string) bool { return s == req.Target })
	}

	blocked := slices.Clone(u.settings.Blocked)
	if blocked == nil {
		blocked = []string{}
	}
	writeJSON(w, http.StatusOK, models.BlockUserResponse{Blocked: blocked})
}
