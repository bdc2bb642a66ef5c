// Package controller is the headless HomeDrive front end. It owns the
// session, the navigation state and every form, turns user commands into
// backend calls, and publishes the result as a Screen snapshot.
//
// State changes happen under one mutex while backend calls run outside it,
// so overlapping commands are allowed and the last answer wins.
package controller

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/session"
	"github.com/atinyakov/HomeDrive/internal/client/view"
	"github.com/atinyakov/HomeDrive/internal/models"
)

const (
	defaultTheme    = "light"
	defaultLanguage = "fr"

	// registerRedirectDelay separates the register success message from the
	// switch back to the login form.
	registerRedirectDelay = 800 * time.Millisecond
)

// Backend is the part of the HomeDrive API the controller uses.
// *api.Client implements it.
type Backend interface {
	Login(ctx context.Context, username, password string) (*models.Token, error)
	Register(ctx context.Context, username, password string) error
	Settings(ctx context.Context, username string) (*models.Settings, error)
	UpdateSettings(ctx context.Context, username string, s models.Settings) (*models.Settings, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	BlockUser(ctx context.Context, username, target string, action models.BlockAction) ([]string, error)
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	Upload(ctx context.Context, username, filename string, content io.Reader) error
	DownloadURL(id string) string
	Download(ctx context.Context, id string, w io.Writer) (int64, error)
}

// Opener shows a URL to the user, typically in a browser.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

// Options configures a Controller. Backend is required.
type Options struct {
	Backend Backend
	// Session is shared with the API client as its token source. A new
	// empty session is used when nil.
	Session *session.Session
	// Opener handles ViewFile. Without one the URL is only logged.
	Opener Opener
	// Scheduler defaults to time.AfterFunc.
	Scheduler Scheduler
	// DownloadDir receives downloaded files. Defaults to the working directory.
	DownloadDir string
	// Location is used for naive server timestamps. Defaults to time.Local.
	Location *time.Location
	Logger   *zap.Logger
	// OnChange is called with a fresh snapshot after every state change,
	// outside the controller lock.
	OnChange func(Screen)
}

// Controller is safe for concurrent use.
type Controller struct {
	backend     Backend
	sess        *session.Session
	opener      Opener
	schedule    Scheduler
	downloadDir string
	loc         *time.Location
	log         *zap.Logger
	onChange    func(Screen)

	mu     sync.Mutex
	nav    *view.Navigator
	screen Screen
}

// New creates a controller in the startup state.
func New(opts Options) *Controller {
	if opts.Session == nil {
		opts.Session = session.New()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = "."
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		backend:     opts.Backend,
		sess:        opts.Session,
		opener:      opts.Opener,
		schedule:    opts.Scheduler,
		downloadDir: opts.DownloadDir,
		loc:         opts.Location,
		log:         opts.Logger,
		onChange:    opts.OnChange,
		nav:         view.NewNavigator(),
		screen:      initialScreen(),
	}
}

func initialScreen() Screen {
	return Screen{
		Settings: SettingsForm{Theme: defaultTheme, Language: defaultLanguage},
	}
}

// Session returns the session the controller logs in and out.
func (c *Controller) Session() *session.Session {
	return c.sess
}

// Screen returns a snapshot of the current state.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// DrainAlerts returns the pending alerts and acknowledges them.
func (c *Controller) DrainAlerts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	alerts := c.screen.Alerts
	c.screen.Alerts = nil
	return alerts
}

func (c *Controller) snapshotLocked() Screen {
	s := c.screen.clone()
	s.Nav = c.nav.State()
	return s
}

// update applies fn under the lock, then notifies the observer.
func (c *Controller) update(fn func(s *Screen, nav *view.Navigator)) {
	c.mu.Lock()
	fn(&c.screen, c.nav)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(snap)
	}
}

func (c *Controller) alert(msg string) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.Alerts = append(s.Alerts, msg)
	})
}

func (c *Controller) setAuthStatus(text string, kind StatusKind) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.AuthStatus = Status{Text: text, Kind: kind}
	})
}

func (c *Controller) setSettingsStatus(text string, kind StatusKind) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.SettingsStatus = Status{Text: text, Kind: kind}
	})
}

func (c *Controller) setPasswordStatus(text string, kind StatusKind) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.PasswordStatus = Status{Text: text, Kind: kind}
	})
}
