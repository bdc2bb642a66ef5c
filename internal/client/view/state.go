// Package view models which parts of the HomeDrive UI are visible: the auth
// overlay with its login/register/forgot views, the sidebar drawer and the
// main page sections.
package view

import (
	"fmt"
	"slices"
)

// AuthView names one of the forms shown on the auth overlay.
type AuthView string

const (
	ViewLogin    AuthView = "login"
	ViewRegister AuthView = "register"
	ViewForgot   AuthView = "forgot"
)

// AuthViews lists the auth views in tab order.
var AuthViews = []AuthView{ViewLogin, ViewRegister, ViewForgot}

// ParseAuthView validates s as an auth view name.
func ParseAuthView(s string) (AuthView, error) {
	for _, v := range AuthViews {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown auth view %q", s)
}

// Section names one of the mutually exclusive page sections.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionWorkspace Section = "workspace"
	SectionPrivate   Section = "private"
	SectionChat      Section = "chat"
	SectionSettings  Section = "settings"
)

// Sections lists the page sections in sidebar order.
var Sections = []Section{SectionDashboard, SectionWorkspace, SectionPrivate, SectionChat, SectionSettings}

// DefaultSection is shown at startup and after logout.
const DefaultSection = SectionWorkspace

// ParseSection validates s as a section name.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// State is a snapshot of the navigation.
type State struct {
	// Overlay is true while the auth overlay blocks the app.
	Overlay bool
	// AuthView is the visible form on the overlay.
	AuthView AuthView
	// Section is the visible page section; it is also the active sidebar entry.
	Section Section
	// MenuButton is true once the hamburger control is shown.
	MenuButton bool
	// DrawerOpen is true while the sidebar drawer is open.
	DrawerOpen bool
}

// Navigator is the navigation state machine. It is not safe for concurrent
// use; the controller serializes access.
type Navigator struct {
	st State
}

// NewNavigator returns the startup state: overlay on the login view, drawer
// closed, menu hidden, default section selected.
func NewNavigator() *Navigator {
	return &Navigator{st: initial()}
}

func initial() State {
	return State{
		Overlay:  true,
		AuthView: ViewLogin,
		Section:  DefaultSection,
	}
}

// State returns the current snapshot.
func (n *Navigator) State() State {
	return n.st
}

// ShowAuthView switches the overlay form. Unknown views are ignored and
// reported as false.
func (n *Navigator) ShowAuthView(v AuthView) bool {
	if !slices.Contains(AuthViews, v) {
		return false
	}
	n.st.AuthView = v
	return true
}

// Authenticated hides the overlay and reveals the menu button, leaving the
// drawer closed.
func (n *Navigator) Authenticated() {
	n.st.Overlay = false
	n.st.MenuButton = true
	n.st.DrawerOpen = false
}

// Navigate shows section s and closes the drawer. It reports false and does
// nothing while the overlay is visible or when s is not a known section.
func (n *Navigator) Navigate(s Section) bool {
	if n.st.Overlay || !slices.Contains(Sections, s) {
		return false
	}
	n.st.Section = s
	n.st.DrawerOpen = false
	return true
}

// ToggleDrawer opens or closes the drawer and returns the new state. Without
// a visible menu button the drawer stays closed.
func (n *Navigator) ToggleDrawer() bool {
	if !n.st.MenuButton {
		return false
	}
	n.st.DrawerOpen = !n.st.DrawerOpen
	return n.st.DrawerOpen
}

// CloseDrawer forces the drawer closed.
func (n *Navigator) CloseDrawer() {
	n.st.DrawerOpen = false
}

// LoggedOut returns to the startup state.
func (n *Navigator) LoggedOut() {
	n.st = initial()
}
