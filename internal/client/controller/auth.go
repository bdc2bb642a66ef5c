package controller

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/api"
	"github.com/atinyakov/HomeDrive/internal/client/session"
	"github.com/atinyakov/HomeDrive/internal/client/view"
	"github.com/atinyakov/HomeDrive/internal/validation"
)

// ShowAuthView switches the overlay form and clears the auth status. An
// unknown view leaves both untouched.
func (c *Controller) ShowAuthView(v view.AuthView) {
	c.update(func(s *Screen, nav *view.Navigator) {
		if nav.ShowAuthView(v) {
			s.AuthStatus = Status{}
		}
	})
}

// Login authenticates and, on success, opens the app and refreshes the
// workspace list. On any failure the session is left untouched.
func (c *Controller) Login(ctx context.Context, username, password string) {
	username = strings.TrimSpace(username)
	if validation.New().Required("username", username).Required("password", password).HasErrors() {
		c.setAuthStatus(MsgLoginRequired, StatusError)
		return
	}
	c.setAuthStatus(MsgLoginPending, StatusInfo)

	tok, err := c.backend.Login(ctx, username, password)
	if err != nil {
		if _, ok := api.AsStatus(err); ok {
			c.log.Info("login rejected", zap.String("username", username), zap.Error(err))
			c.setAuthStatus(MsgLoginInvalid, StatusError)
			return
		}
		c.log.Warn("login failed", zap.String("username", username), zap.Error(err))
		c.setAuthStatus(MsgLoginUnreachable, StatusError)
		return
	}

	var id session.Identity
	if tok != nil {
		id = session.Identity{Username: tok.Username, Role: tok.Role, Token: tok.AccessToken}
	}
	if err := c.sess.Adopt(id); err != nil {
		c.log.Warn("login response rejected", zap.String("username", username), zap.Error(err))
		c.setAuthStatus(MsgLoginUnreachable, StatusError)
		return
	}

	c.log.Info("logged in", zap.String("username", id.Username), zap.String("role", id.Role))
	c.update(func(s *Screen, nav *view.Navigator) {
		nav.Authenticated()
		s.AuthStatus = Status{Text: fmt.Sprintf(msgLoggedInFmt, id.Username, id.Role), Kind: StatusSuccess}
		s.RefreshEnabled = true
	})
	c.RefreshFiles(ctx)
}

// Register creates an account, then goes back to the login form after a
// short delay.
func (c *Controller) Register(ctx context.Context, username, password, confirm string) {
	username = strings.TrimSpace(username)
	required := validation.New().
		Required("username", username).
		Required("password", password)
	if required.HasErrors() {
		c.setAuthStatus(MsgRegisterRequired, StatusError)
		return
	}
	if validation.New().Match("confirm", confirm, password).HasErrors() {
		c.setAuthStatus(MsgRegisterMismatch, StatusError)
		return
	}
	c.setAuthStatus(MsgRegisterPending, StatusInfo)

	if err := c.backend.Register(ctx, username, password); err != nil {
		if se, ok := api.AsStatus(err); ok {
			msg := se.Detail
			if msg == "" {
				msg = MsgRegisterFailed
			}
			c.log.Info("register rejected", zap.String("username", username), zap.Error(err))
			c.setAuthStatus(msg, StatusError)
			return
		}
		c.log.Warn("register failed", zap.String("username", username), zap.Error(err))
		c.setAuthStatus(MsgRegisterUnreachable, StatusError)
		return
	}

	c.log.Info("account created", zap.String("username", username))
	c.setAuthStatus(MsgRegisterDone, StatusSuccess)
	c.schedule(registerRedirectDelay, func() {
		c.ShowAuthView(view.ViewLogin)
	})
}

// ForgotPassword records a reset request locally. Nothing is sent.
func (c *Controller) ForgotPassword(fullname, username, phone string) {
	fullname = strings.TrimSpace(fullname)
	username = strings.TrimSpace(username)
	phone = strings.TrimSpace(phone)
	v := validation.New().
		Required("fullname", fullname).
		Required("username", username).
		Required("phone", phone)
	if v.HasErrors() {
		c.setAuthStatus(MsgForgotRequired, StatusError)
		return
	}
	c.setAuthStatus(fmt.Sprintf(msgForgotDoneFmt, fullname, username, phone), StatusInfo)
}

// Logout drops the session and returns to the startup screen. Data of the
// previous user is cleared with it.
func (c *Controller) Logout() {
	username := c.sess.Username()
	c.sess.Clear()
	c.log.Info("logged out", zap.String("username", username))

	c.update(func(s *Screen, nav *view.Navigator) {
		nav.LoggedOut()
		alerts := s.Alerts
		*s = initialScreen()
		s.Alerts = alerts
	})
}
