// Package mockbackend is an in-memory HomeDrive backend. It answers the same
// routes as the real server with the same payloads and error details, keeps
// per-route call counters, and persists nothing. Tests use it through
// NewServer; cmd/mockserver serves it for local use of the shell.
package mockbackend

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"github.com/atinyakov/HomeDrive/internal/models"
)

const (
	pbkdf2Rounds = 29000
	pbkdf2KeyLen = 32
	saltLen      = 16

	// RoleNormal is given to self-registered accounts.
	RoleNormal = "normal"
)

// ErrUserExists is returned by AddUser for a taken username.
var ErrUserExists = errors.New("user already exists")

type user struct {
	salt     []byte
	hash     []byte
	role     string
	settings models.Settings
}

type file struct {
	rec  models.FileRecord
	data []byte
}

// Backend is safe for concurrent use.
type Backend struct {
	mu        sync.Mutex
	users     map[string]*user
	tokens    map[string]string
	files     []*file
	nextID    int64
	calls     map[string]int
	overrides map[string]http.HandlerFunc

	now func() time.Time
	log *zap.Logger
}

// New returns an empty backend. A nil logger disables request logging.
func New(log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{
		users:     make(map[string]*user),
		tokens:    make(map[string]string),
		calls:     make(map[string]int),
		overrides: make(map[string]http.HandlerFunc),
		nextID:    1,
		now:       time.Now,
		log:       log,
	}
}

// NewServer starts an httptest server over a fresh backend.
func NewServer() (*Backend, *httptest.Server) {
	b := New(nil)
	return b, httptest.NewServer(b.Router())
}

func hashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Rounds, pbkdf2KeyLen, sha256.New)
}

func newUser(password, role string) (*user, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return &user{salt: salt, hash: hashPassword(password, salt), role: role}, nil
}

func (u *user) checkPassword(password string) bool {
	return subtle.ConstantTimeCompare(hashPassword(password, u.salt), u.hash) == 1
}

// AddUser creates an account directly.
func (b *Backend) AddUser(username, password, role string) error {
	u, err := newUser(password, role)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[username]; ok {
		return ErrUserExists
	}
	b.users[username] = u
	return nil
}

// AddFile stores a workspace file directly and returns its record.
func (b *Backend) AddFile(owner, filename string, data []byte) models.FileRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addFileLocked(owner, filename, data)
}

func (b *Backend) addFileLocked(owner, filename string, data []byte) models.FileRecord {
	rec := models.FileRecord{
		ID:        models.FileID(strconv.FormatInt(b.nextID, 10)),
		Filename:  filename,
		Owner:     owner,
		CreatedAt: b.now().UTC().Format("2006-01-02T15:04:05.000000"),
	}
	b.nextID++
	b.files = append(b.files, &file{rec: rec, data: slices.Clone(data)})
	return rec
}

// Files returns the stored records in upload order.
func (b *Backend) Files() []models.FileRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.FileRecord, 0, len(b.files))
	for _, f := range b.files {
		out = append(out, f.rec)
	}
	return out
}

// FileData returns the content of file id.
func (b *Backend) FileData(id models.FileID) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range b.files {
		if f.rec.ID == id {
			return slices.Clone(f.data), true
		}
	}
	return nil, false
}

// UserSettings returns the stored settings of username.
func (b *Backend) UserSettings(username string) (models.Settings, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[username]
	if !ok {
		return models.Settings{}, false
	}
	s := u.settings
	s.Blocked = slices.Clone(u.settings.Blocked)
	return s, true
}

// SetSettings replaces the stored settings of username.
func (b *Backend) SetSettings(username string, s models.Settings) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[username]
	if !ok {
		return false
	}
	u.settings = s
	u.settings.Blocked = slices.Clone(s.Blocked)
	return true
}

// CheckPassword reports whether password is the current password of username.
func (b *Backend) CheckPassword(username, password string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[username]
	return ok && u.checkPassword(password)
}

// Override makes every request for "METHOD /path" answer with h instead of
// the regular handler. The call is still counted.
func (b *Backend) Override(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = h
}

func (b *Backend) override(r *http.Request) (http.HandlerFunc, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.overrides[r.Method+" "+r.URL.Path]
	return h, ok
}

// Calls returns how many requests hit route ("POST /auth/login",
// "GET /auth/settings/{username}", ...).
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// TotalCalls returns the number of requests served.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *Backend) count(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[route]++
}
