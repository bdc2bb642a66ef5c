package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNavigator_Initial(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, State{
		Overlay:  true,
		AuthView: ViewLogin,
		Section:  SectionWorkspace,
	}, n.State())
}

func TestParse(t *testing.T) {
	v, err := ParseAuthView("register")
	require.NoError(t, err)
	assert.Equal(t, ViewRegister, v)
	_, err = ParseAuthView("admin")
	assert.Error(t, err)

	s, err := ParseSection("chat")
	require.NoError(t, err)
	assert.Equal(t, SectionChat, s)
	_, err = ParseSection("")
	assert.Error(t, err)
}

func TestShowAuthView(t *testing.T) {
	n := NewNavigator()
	for _, v := range AuthViews {
		assert.True(t, n.ShowAuthView(v))
		assert.Equal(t, v, n.State().AuthView)
		assert.True(t, n.State().Overlay)
	}
}

func TestShowAuthView_UnknownIgnored(t *testing.T) {
	n := NewNavigator()
	require.True(t, n.ShowAuthView(ViewRegister))

	assert.False(t, n.ShowAuthView("admin"))
	assert.False(t, n.ShowAuthView(""))
	assert.Equal(t, ViewRegister, n.State().AuthView)
}

func TestNavigate_RefusedBehindOverlay(t *testing.T) {
	n := NewNavigator()
	assert.False(t, n.Navigate(SectionSettings))
	assert.Equal(t, SectionWorkspace, n.State().Section)
}

func TestNavigate_ClosesDrawer(t *testing.T) {
	n := NewNavigator()
	n.Authenticated()
	require.True(t, n.ToggleDrawer())

	for _, s := range Sections {
		n.ToggleDrawer()
		assert.True(t, n.Navigate(s))
		st := n.State()
		assert.Equal(t, s, st.Section)
		assert.False(t, st.DrawerOpen)
	}
}

func TestNavigate_UnknownSection(t *testing.T) {
	n := NewNavigator()
	n.Authenticated()
	require.True(t, n.Navigate(SectionChat))
	require.True(t, n.ToggleDrawer())

	assert.False(t, n.Navigate("bogus"))
	assert.False(t, n.Navigate(""))
	st := n.State()
	assert.Equal(t, SectionChat, st.Section)
	assert.True(t, st.DrawerOpen, "refused navigation leaves the drawer alone")
}

func TestToggleDrawer(t *testing.T) {
	n := NewNavigator()
	assert.False(t, n.ToggleDrawer(), "menu hidden before login")

	n.Authenticated()
	assert.False(t, n.State().DrawerOpen)
	assert.True(t, n.ToggleDrawer())
	assert.Equal(t, SectionWorkspace, n.State().Section)
	assert.False(t, n.ToggleDrawer())
}

func TestCloseDrawer(t *testing.T) {
	n := NewNavigator()
	n.Authenticated()
	n.ToggleDrawer()
	n.CloseDrawer()
	assert.False(t, n.State().DrawerOpen)
	n.CloseDrawer()
	assert.False(t, n.State().DrawerOpen)
}

func TestLoggedOut_Resets(t *testing.T) {
	n := NewNavigator()
	n.ShowAuthView(ViewForgot)
	n.Authenticated()
	n.Navigate(SectionChat)
	n.ToggleDrawer()

	n.LoggedOut()
	assert.Equal(t, NewNavigator().State(), n.State())
}
