package controller

import (
	"slices"

	"github.com/atinyakov/HomeDrive/internal/client/render"
	"github.com/atinyakov/HomeDrive/internal/client/view"
)

// StatusKind styles a status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusError
	StatusSuccess
)

func (k StatusKind) String() string {
	switch k {
	case StatusInfo:
		return "info"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return ""
	}
}

// Status is a message line under a form.
type Status struct {
	Text string
	Kind StatusKind
}

// Empty reports whether nothing is shown.
func (s Status) Empty() bool {
	return s.Text == ""
}

// CSSClass is the class attribute a web front end puts on the line.
func (s Status) CSSClass() string {
	if s.Kind == StatusNone {
		return "status"
	}
	return "status status-" + s.Kind.String()
}

// SettingsForm holds the editable user preferences.
type SettingsForm struct {
	Theme         string
	Language      string
	Notifications bool
	DefaultPath   string
}

// PasswordForm holds the change password fields.
type PasswordForm struct {
	Old     string
	New     string
	Confirm string
}

// Screen is everything a front end draws. It is a value: callers get a copy
// and never see later mutations.
type Screen struct {
	Nav        view.State
	AuthStatus Status

	// RefreshEnabled turns on once a login succeeded.
	RefreshEnabled bool
	Files          render.FileList
	// LastDownload is the path written by the last successful download.
	LastDownload string

	Settings       SettingsForm
	SettingsStatus Status
	Password       PasswordForm
	PasswordStatus Status
	BlockTarget    string
	Blocked        render.BlockedList

	// Alerts are modal messages not yet acknowledged.
	Alerts []string
}

func (s Screen) clone() Screen {
	s.Files.Rows = slices.Clone(s.Files.Rows)
	s.Blocked.Users = slices.Clone(s.Blocked.Users)
	s.Alerts = slices.Clone(s.Alerts)
	return s
}
