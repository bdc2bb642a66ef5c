// Package shell is the interactive HomeDrive client. Every line typed at the
// prompt becomes one controller command; what changed on the screen is
// printed afterwards.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/controller"
	"github.com/atinyakov/HomeDrive/internal/client/render"
	"github.com/atinyakov/HomeDrive/internal/client/view"
	"github.com/atinyakov/HomeDrive/internal/models"
)

const prompt = "homedrive> "

const helpText = `Available commands:
  help                   show this help
  tab <login|register|forgot>
  login [user]           log in
  register [user]        create an account
  forgot                 request a password reset
  files                  refresh and show the workspace
  upload <path>          upload a local file
  view <id>              open a file
  download <id> [name]   save a file locally
  nav <section>          dashboard, workspace, private, chat, settings
  menu                   toggle the drawer
  backdrop               close the drawer
  settings               load and show settings
  set <field> <value>    theme, language, notifications, default_path
  save                   save settings
  passwd                 change password
  block <user>           block a user
  unblock <user>         unblock a user
  whoami                 show the session
  ping                   check the server
  screen                 show the whole screen
  logout                 log out
  exit                   quit`

// Pinger checks that the backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Shell is not safe for concurrent use.
type Shell struct {
	ctrl   *controller.Controller
	pinger Pinger
	in     *Prompter
	out    io.Writer
	log    *zap.Logger
	last   controller.Screen
}

// New creates a shell driving ctrl. pinger may be nil.
func New(ctrl *controller.Controller, pinger Pinger, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		ctrl:   ctrl,
		pinger: pinger,
		in:     NewPrompter(in, out),
		out:    out,
		log:    log,
		last:   ctrl.Screen(),
	}
}

// PrintOpener shows URLs by printing them to w.
func PrintOpener(w io.Writer) controller.Opener {
	return controller.OpenerFunc(func(u string) error {
		_, err := fmt.Fprintf(w, "Open: %s\n", u)
		return err
	})
}

// Run reads commands until exit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, ok := s.in.Line(prompt)
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return nil
		}
		s.exec(ctx, args)
		s.report()
	}
}

func (s *Shell) exec(ctx context.Context, args []string) {
	c := s.ctrl
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "tab":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: tab <login|register|forgot>")
			return
		}
		v, err := view.ParseAuthView(args[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		c.Dispatch(ctx, controller.ShowAuthView{View: v})
	case "login":
		username, ok := s.argOrPrompt(args, "Username: ")
		if !ok {
			return
		}
		password, ok := s.in.Password("Password: ")
		if !ok {
			return
		}
		c.Dispatch(ctx, controller.Login{Username: username, Password: password})
	case "register":
		username, ok := s.argOrPrompt(args, "Username: ")
		if !ok {
			return
		}
		password, ok := s.in.Password("Password: ")
		if !ok {
			return
		}
		confirm, ok := s.in.Password("Confirm password: ")
		if !ok {
			return
		}
		c.Dispatch(ctx, controller.Register{Username: username, Password: password, Confirm: confirm})
	case "forgot":
		fullname, ok := s.in.Line("Full name: ")
		if !ok {
			return
		}
		username, ok := s.in.Line("Username: ")
		if !ok {
			return
		}
		phone, ok := s.in.Line("Phone: ")
		if !ok {
			return
		}
		c.Dispatch(ctx, controller.ForgotPassword{Fullname: fullname, Username: username, Phone: phone})
	case "files":
		c.Dispatch(ctx, controller.RefreshFiles{})
		s.printFiles(c.Screen().Files)
		s.last.Files = c.Screen().Files
	case "upload":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: upload <path>")
			return
		}
		s.upload(ctx, strings.Join(args[1:], " "))
	case "view":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: view <id>")
			return
		}
		c.Dispatch(ctx, controller.ViewFile{ID: args[1]})
	case "download":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: download <id> [name]")
			return
		}
		cmd := controller.DownloadFile{ID: args[1]}
		if len(args) > 2 {
			cmd.Filename = strings.Join(args[2:], " ")
		}
		c.Dispatch(ctx, cmd)
	case "nav":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: nav <section>")
			return
		}
		sec, err := view.ParseSection(args[1])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		c.Dispatch(ctx, controller.Navigate{Section: sec})
		if c.Screen().Nav.Overlay {
			fmt.Fprintln(s.out, "Log in first.")
		}
	case "menu":
		c.Dispatch(ctx, controller.ToggleMenu{})
	case "backdrop":
		c.Dispatch(ctx, controller.CloseDrawer{})
	case "settings":
		c.Dispatch(ctx, controller.LoadSettings{})
		s.printSettings(c.Screen())
		s.last.Blocked = c.Screen().Blocked
	case "set":
		s.set(ctx, args)
	case "save":
		c.Dispatch(ctx, controller.SaveSettings{})
	case "passwd":
		oldPassword, ok := s.in.Password("Old password: ")
		if !ok {
			return
		}
		newPassword, ok := s.in.Password("New password: ")
		if !ok {
			return
		}
		confirm, ok := s.in.Password("Confirm new password: ")
		if !ok {
			return
		}
		c.Dispatch(ctx, controller.ChangePassword{Old: oldPassword, New: newPassword, Confirm: confirm})
	case "block", "unblock":
		target := ""
		if len(args) > 1 {
			target = strings.Join(args[1:], " ")
		}
		c.Dispatch(ctx, controller.BlockUser{Target: target, Action: models.BlockAction(args[0])})
	case "whoami":
		id, ok := c.Session().Current()
		if !ok {
			fmt.Fprintln(s.out, "Not logged in")
			return
		}
		fmt.Fprintf(s.out, "%s (%s)\n", id.Username, id.Role)
	case "ping":
		if s.pinger == nil {
			fmt.Fprintln(s.out, "Ping unavailable")
			return
		}
		if err := s.pinger.Ping(ctx); err != nil {
			s.log.Warn("ping failed", zap.Error(err))
			fmt.Fprintf(s.out, "Server unreachable: %v\n", err)
			return
		}
		fmt.Fprintln(s.out, "pong")
	case "screen":
		s.printScreen(c.Screen())
	case "logout":
		c.Dispatch(ctx, controller.Logout{})
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
}

func (s *Shell) argOrPrompt(args []string, label string) (string, bool) {
	if len(args) > 1 {
		return args[1], true
	}
	return s.in.Line(label)
}

func (s *Shell) upload(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to read file %q: %v\n", path, err)
		return
	}
	defer f.Close()
	s.ctrl.Dispatch(ctx, controller.UploadFile{Filename: filepath.Base(path), Content: f})
}

func (s *Shell) set(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "Usage: set <theme|language|notifications|default_path> <value>")
		return
	}
	form := s.ctrl.Screen().Settings
	value := strings.Join(args[2:], " ")
	switch args[1] {
	case "theme":
		form.Theme = value
	case "language":
		form.Language = value
	case "notifications":
		on, err := parseSwitch(value)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		form.Notifications = on
	case "default_path":
		form.DefaultPath = value
	default:
		fmt.Fprintf(s.out, "Unknown setting %q\n", args[1])
		return
	}
	s.ctrl.Dispatch(ctx, controller.EditSettings{Form: form})
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid switch %q: use on or off", v)
	}
	return b, nil
}

// report prints what changed since the previous command, then the alerts.
func (s *Shell) report() {
	cur := s.ctrl.Screen()
	prev := s.last

	if cur.Nav != prev.Nav {
		s.printNav(prev.Nav, cur.Nav)
	}
	printStatus(s.out, cur.AuthStatus, prev.AuthStatus)
	printStatus(s.out, cur.SettingsStatus, prev.SettingsStatus)
	printStatus(s.out, cur.PasswordStatus, prev.PasswordStatus)
	if !reflect.DeepEqual(cur.Files, prev.Files) && cur.Files.State != render.ListIdle {
		s.printFiles(cur.Files)
	}
	if !reflect.DeepEqual(cur.Blocked, prev.Blocked) && (len(cur.Blocked.Users) > 0 || cur.Blocked.Message != "") {
		s.printBlocked(cur.Blocked)
	}
	if cur.LastDownload != prev.LastDownload && cur.LastDownload != "" {
		fmt.Fprintf(s.out, "Saved to %s\n", cur.LastDownload)
	}
	for _, a := range s.ctrl.DrainAlerts() {
		fmt.Fprintf(s.out, "! %s\n", a)
	}

	cur.Alerts = nil
	s.last = cur
}

func printStatus(w io.Writer, cur, prev controller.Status) {
	if cur == prev || cur.Empty() {
		return
	}
	switch cur.Kind {
	case controller.StatusError:
		fmt.Fprintf(w, "[error] %s\n", cur.Text)
	case controller.StatusSuccess:
		fmt.Fprintf(w, "[ok] %s\n", cur.Text)
	default:
		fmt.Fprintln(w, cur.Text)
	}
}

func (s *Shell) printNav(prev, cur view.State) {
	if cur.Overlay != prev.Overlay && cur.Overlay {
		fmt.Fprintln(s.out, "Logged out.")
	}
	if cur.AuthView != prev.AuthView && cur.Overlay {
		fmt.Fprintf(s.out, "Form: %s\n", cur.AuthView)
	}
	if cur.Section != prev.Section {
		fmt.Fprintf(s.out, "Section: %s\n", cur.Section)
	}
	if cur.DrawerOpen != prev.DrawerOpen {
		if cur.DrawerOpen {
			fmt.Fprintln(s.out, "Menu opened.")
		} else {
			fmt.Fprintln(s.out, "Menu closed.")
		}
	}
}

func (s *Shell) printFiles(l render.FileList) {
	if err := render.WriteFilesText(s.out, l); err != nil {
		s.log.Error("render files", zap.Error(err))
	}
}

func (s *Shell) printBlocked(b render.BlockedList) {
	fmt.Fprintln(s.out, "Blocked users:")
	if err := render.WriteBlockedText(s.out, b); err != nil {
		s.log.Error("render blocked users", zap.Error(err))
	}
}

func (s *Shell) printSettings(sc controller.Screen) {
	onOff := "off"
	if sc.Settings.Notifications {
		onOff = "on"
	}
	fmt.Fprintf(s.out, "theme:         %s\n", sc.Settings.Theme)
	fmt.Fprintf(s.out, "language:      %s\n", sc.Settings.Language)
	fmt.Fprintf(s.out, "notifications: %s\n", onOff)
	fmt.Fprintf(s.out, "default_path:  %s\n", sc.Settings.DefaultPath)
	s.printBlocked(sc.Blocked)
}

func (s *Shell) printScreen(sc controller.Screen) {
	fmt.Fprintf(s.out, "overlay: %t (form %s)\n", sc.Nav.Overlay, sc.Nav.AuthView)
	fmt.Fprintf(s.out, "section: %s\n", sc.Nav.Section)
	fmt.Fprintf(s.out, "menu: %t, drawer open: %t\n", sc.Nav.MenuButton, sc.Nav.DrawerOpen)
	if !sc.AuthStatus.Empty() {
		fmt.Fprintf(s.out, "auth: %s\n", sc.AuthStatus.Text)
	}
	fmt.Fprintf(s.out, "files (%s):\n", sc.Files.State)
	s.printFiles(sc.Files)
	s.printSettings(sc)
	if !sc.SettingsStatus.Empty() {
		fmt.Fprintf(s.out, "settings: %s\n", sc.SettingsStatus.Text)
	}
	if !sc.PasswordStatus.Empty() {
		fmt.Fprintf(s.out, "password: %s\n", sc.PasswordStatus.Text)
	}
}
