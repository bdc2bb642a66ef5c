package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/api"
	"github.com/atinyakov/HomeDrive/internal/client/render"
	"github.com/atinyakov/HomeDrive/internal/client/view"
	"github.com/atinyakov/HomeDrive/internal/models"
	"github.com/atinyakov/HomeDrive/internal/validation"
)

// LoadSettings fills the settings form and the blocked list from the server.
func (c *Controller) LoadSettings(ctx context.Context) {
	username := c.sess.Username()
	if username == "" {
		c.setSettingsStatus(MsgSettingsLoginRequired, StatusError)
		return
	}
	c.setSettingsStatus(MsgSettingsLoading, StatusInfo)

	settings, err := c.backend.Settings(ctx, username)
	if err != nil {
		if isStatus(err) {
			c.log.Info("settings rejected", zap.String("username", username), zap.Error(err))
			c.setSettingsStatus(MsgSettingsUnavailable, StatusError)
			return
		}
		c.log.Warn("settings failed", zap.String("username", username), zap.Error(err))
		c.setSettingsStatus(MsgSettingsNetwork, StatusError)
		return
	}
	if settings == nil {
		settings = &models.Settings{}
	}

	form := SettingsForm{
		Theme:         settings.Theme,
		Language:      settings.Language,
		Notifications: settings.Notifications,
		DefaultPath:   settings.DefaultPath,
	}
	if form.Theme == "" {
		form.Theme = defaultTheme
	}
	if form.Language == "" {
		form.Language = defaultLanguage
	}
	blocked := render.Blocked(settings.Blocked)

	c.update(func(s *Screen, _ *view.Navigator) {
		s.Settings = form
		s.Blocked = blocked
		s.SettingsStatus = Status{Text: MsgSettingsLoaded, Kind: StatusSuccess}
	})
}

// EditSettings replaces the form content. Nothing is sent until
// SaveSettings.
func (c *Controller) EditSettings(form SettingsForm) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.Settings = form
	})
}

// SaveSettings sends the whole form.
func (c *Controller) SaveSettings(ctx context.Context) {
	username := c.sess.Username()
	if username == "" {
		c.setSettingsStatus(MsgLoginFirst, StatusError)
		return
	}
	form := c.Screen().Settings
	payload := models.Settings{
		Theme:         form.Theme,
		Language:      form.Language,
		Notifications: form.Notifications,
		DefaultPath:   strings.TrimSpace(form.DefaultPath),
	}
	c.setSettingsStatus(MsgSettingsSaving, StatusInfo)

	saved, err := c.backend.UpdateSettings(ctx, username, payload)
	if err != nil {
		c.log.Info("save settings failed", zap.String("username", username), zap.Error(err))
		c.setSettingsStatus(failureText(err, MsgSettingsSaveFail), StatusError)
		return
	}
	var blocked []string
	if saved != nil {
		blocked = saved.Blocked
	}

	c.update(func(s *Screen, _ *view.Navigator) {
		s.Blocked = render.Blocked(blocked)
		s.SettingsStatus = Status{Text: MsgSettingsSaved, Kind: StatusSuccess}
	})
}

// ChangePassword replaces the password of the logged-in user. The fields are
// cleared only on success.
func (c *Controller) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.Password = PasswordForm{Old: oldPassword, New: newPassword, Confirm: confirm}
	})

	required := validation.New().
		Required("old", oldPassword).
		Required("new", newPassword)
	if required.HasErrors() {
		c.setPasswordStatus(MsgPasswordRequired, StatusError)
		return
	}
	if validation.New().Match("confirm", confirm, newPassword).HasErrors() {
		c.setPasswordStatus(MsgPasswordMismatch, StatusError)
		return
	}
	username := c.sess.Username()
	if username == "" {
		c.setPasswordStatus(MsgLoginFirst, StatusError)
		return
	}
	c.setPasswordStatus(MsgPasswordPending, StatusInfo)

	if err := c.backend.ChangePassword(ctx, username, oldPassword, newPassword); err != nil {
		c.log.Info("change password failed", zap.String("username", username), zap.Error(err))
		c.setPasswordStatus(failureText(err, MsgGenericError), StatusError)
		return
	}

	c.log.Info("password changed", zap.String("username", username))
	c.update(func(s *Screen, _ *view.Navigator) {
		s.Password = PasswordForm{}
		s.PasswordStatus = Status{Text: MsgPasswordChanged, Kind: StatusSuccess}
	})
}

// BlockUser blocks or unblocks target and shows the list the server returns.
func (c *Controller) BlockUser(ctx context.Context, target string, action models.BlockAction) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.BlockTarget = target
	})

	target = strings.TrimSpace(target)
	if target == "" {
		c.alert(AlertTargetRequired)
		return
	}
	username := c.sess.Username()
	if username == "" {
		c.alert(AlertMustLogin)
		return
	}
	if !action.Valid() {
		c.log.Warn("unknown block action", zap.String("action", string(action)))
		c.alert(MsgGenericError)
		return
	}

	blocked, err := c.backend.BlockUser(ctx, username, target, action)
	if err != nil {
		c.log.Info("block user failed", zap.String("target", target), zap.Error(err))
		c.alert(failureText(err, MsgGenericError))
		return
	}

	c.log.Info("block list changed",
		zap.String("username", username),
		zap.String("target", target),
		zap.String("action", string(action)),
	)
	c.update(func(s *Screen, _ *view.Navigator) {
		s.Blocked = render.Blocked(blocked)
		s.BlockTarget = ""
	})
}

// failureText is the server detail, the fallback for a detail-less status,
// or the network message for a transport failure.
func failureText(err error, fallback string) string {
	se, ok := api.AsStatus(err)
	if !ok {
		return MsgNetwork
	}
	if se.Detail != "" {
		return se.Detail
	}
	return fallback
}
