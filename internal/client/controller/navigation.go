package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/view"
)

// Navigate shows a page section and closes the drawer. Opening settings
// while logged in loads them. Refused while the auth overlay is up and for
// unknown sections.
func (c *Controller) Navigate(ctx context.Context, section view.Section) {
	var moved bool
	c.update(func(_ *Screen, nav *view.Navigator) {
		moved = nav.Navigate(section)
	})
	if !moved {
		c.log.Debug("navigation refused", zap.String("section", string(section)))
		return
	}
	if section == view.SectionSettings && c.sess.LoggedIn() {
		c.LoadSettings(ctx)
	}
}

// ToggleMenu opens or closes the drawer once the menu button is shown.
func (c *Controller) ToggleMenu() {
	c.update(func(_ *Screen, nav *view.Navigator) {
		nav.ToggleDrawer()
	})
}

// CloseDrawer closes the drawer, as a click on the backdrop does.
func (c *Controller) CloseDrawer() {
	c.update(func(_ *Screen, nav *view.Navigator) {
		nav.CloseDrawer()
	})
}
