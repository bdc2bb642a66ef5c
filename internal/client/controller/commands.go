package controller

import (
	"context"
	"io"

	"github.com/atinyakov/HomeDrive/internal/client/view"
	"github.com/atinyakov/HomeDrive/internal/models"
)

// Command is a user action. Only the types of this package implement it.
type Command interface {
	run(ctx context.Context, c *Controller)
}

// Dispatch runs cmd to completion, backend calls included.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) {
	cmd.run(ctx, c)
}

type (
	ShowAuthView struct{ View view.AuthView }

	Login struct{ Username, Password string }

	Register struct{ Username, Password, Confirm string }

	ForgotPassword struct{ Fullname, Username, Phone string }

	RefreshFiles struct{}

	// UploadFile sends Content under Filename.
	UploadFile struct {
		Filename string
		Content  io.Reader
	}

	ViewFile struct{ ID string }

	// DownloadFile saves file ID locally. An empty Filename saves as
	// "download".
	DownloadFile struct{ ID, Filename string }

	Navigate struct{ Section view.Section }

	ToggleMenu struct{}

	CloseDrawer struct{}

	Logout struct{}

	LoadSettings struct{}

	EditSettings struct{ Form SettingsForm }

	SaveSettings struct{}

	ChangePassword struct{ Old, New, Confirm string }

	BlockUser struct {
		Target string
		Action models.BlockAction
	}
)

func (cmd ShowAuthView) run(_ context.Context, c *Controller) { c.ShowAuthView(cmd.View) }

func (cmd Login) run(ctx context.Context, c *Controller) { c.Login(ctx, cmd.Username, cmd.Password) }

func (cmd Register) run(ctx context.Context, c *Controller) {
	c.Register(ctx, cmd.Username, cmd.Password, cmd.Confirm)
}

func (cmd ForgotPassword) run(_ context.Context, c *Controller) {
	c.ForgotPassword(cmd.Fullname, cmd.Username, cmd.Phone)
}

func (RefreshFiles) run(ctx context.Context, c *Controller) { c.RefreshFiles(ctx) }

func (cmd UploadFile) run(ctx context.Context, c *Controller) {
	c.UploadFile(ctx, cmd.Filename, cmd.Content)
}

func (cmd ViewFile) run(_ context.Context, c *Controller) { c.ViewFile(cmd.ID) }

func (cmd DownloadFile) run(ctx context.Context, c *Controller) {
	c.DownloadFile(ctx, cmd.ID, cmd.Filename)
}

func (cmd Navigate) run(ctx context.Context, c *Controller) { c.Navigate(ctx, cmd.Section) }

func (ToggleMenu) run(_ context.Context, c *Controller) { c.ToggleMenu() }

func (CloseDrawer) run(_ context.Context, c *Controller) { c.CloseDrawer() }

func (Logout) run(_ context.Context, c *Controller) { c.Logout() }

func (LoadSettings) run(ctx context.Context, c *Controller) { c.LoadSettings(ctx) }

func (cmd EditSettings) run(_ context.Context, c *Controller) { c.EditSettings(cmd.Form) }

func (SaveSettings) run(ctx context.Context, c *Controller) { c.SaveSettings(ctx) }

func (cmd ChangePassword) run(ctx context.Context, c *Controller) {
	c.ChangePassword(ctx, cmd.Old, cmd.New, cmd.Confirm)
}

func (cmd BlockUser) run(ctx context.Context, c *Controller) {
	c.BlockUser(ctx, cmd.Target, cmd.Action)
}
