package api

import (
	"bytes"
	"context"
	"encoding/pem"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/HomeDrive/internal/certgen"
	"github.com/atinyakov/HomeDrive/internal/mockbackend"
	"github.com/atinyakov/HomeDrive/internal/models"
)

// roundTripperFunc lets a test stand in for the network.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(fn roundTripperFunc, tokens TokenSource) *Client {
	return New(Config{
		BaseURL:    "http://example.com/",
		HTTPClient: &http.Client{Transport: fn, Timeout: time.Second},
		Tokens:     tokens,
	})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c := New(Config{BaseURL: "http://example.com//"})
	assert.Equal(t, "http://example.com", c.BaseURL())
	assert.Equal(t, "http://example.com/workspace/download/7", c.DownloadURL("7"))
	assert.Equal(t, "http://example.com/workspace/download/a%2Fb", c.DownloadURL("a/b"))
}

func TestHeaders(t *testing.T) {
	tests := []struct {
		name       string
		tokens     TokenSource
		wantBearer string
	}{
		{name: "no token source", tokens: nil, wantBearer: ""},
		{name: "logged out", tokens: staticToken(""), wantBearer: ""},
		{name: "logged in", tokens: staticToken("TOKEN-1"), wantBearer: "Bearer TOKEN-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *http.Request
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				got = req
				return jsonResponse(http.StatusOK, `[]`), nil
			}, tt.tokens)

			_, err := c.ListFiles(context.Background())
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantBearer, got.Header.Get("Authorization"))
			assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
			assert.Equal(t, "/workspace/files", got.URL.Path)
		})
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "string detail", status: 400, body: `{"detail":"Nom d’utilisateur déjà utilisé."}`, wantDetail: "Nom d’utilisateur déjà utilisé."},
		{name: "validation list", status: 422, body: `{"detail":[{"msg":"field required"}]}`, wantDetail: ""},
		{name: "plain text", status: 500, body: "internal error", wantDetail: ""},
		{name: "empty body", status: 401, body: "", wantDetail: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			}, nil)

			err := c.Register(context.Background(), "alice", "pw")
			require.Error(t, err)
			se, ok := AsStatus(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantDetail, Detail(err))
			assert.Equal(t, tt.status == http.StatusUnauthorized, IsUnauthorized(err))
		})
	}
}

func TestTransportError(t *testing.T) {
	down := errors.New("network down")
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, down
	}, nil)

	_, err := c.Login(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	_, ok := AsStatus(err)
	assert.False(t, ok)
	assert.Empty(t, Detail(err))
}

func TestLogin_MalformedBody(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `not-json`), nil
	}, nil)

	_, err := c.Login(context.Background(), "alice", "pw")
	require.Error(t, err)
	_, ok := AsStatus(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "decode /auth/login response")
}

func TestListFiles_Payloads(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []models.FileRecord
		wantErr bool
	}{
		{name: "object", body: `{"files":[]}`, want: nil},
		{name: "null", body: `null`, want: nil},
		{name: "string", body: `"nope"`, want: nil},
		{name: "empty array", body: `[]`, want: []models.FileRecord{}},
		{name: "invalid json", body: `[{`, wantErr: true},
		{
			name: "records",
			body: `[{"id":1,"filename":"a.txt","owner":"alice","created_at":"2024-01-02T03:04:05"}]`,
			want: []models.FileRecord{{ID: "1", Filename: "a.txt", Owner: "alice", CreatedAt: "2024-01-02T03:04:05"}},
		},
		{
			name: "string ids",
			body: `[{"id":"3f2a","filename":"b.txt","owner":"bob"},{"id":12,"filename":"c.txt","owner":"bob"}]`,
			want: []models.FileRecord{{ID: "3f2a", Filename: "b.txt", Owner: "bob"}, {ID: "12", Filename: "c.txt", Owner: "bob"}},
		},
		{name: "bool id", body: `[{"id":true,"filename":"d.txt"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			}, nil)

			got, err := c.ListFiles(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpload_Multipart(t *testing.T) {
	var (
		username string
		filename string
		content  []byte
	)
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}
		if mediaType != "multipart/form-data" {
			return jsonResponse(http.StatusUnsupportedMediaType, ""), nil
		}
		mr := multipart.NewReader(req.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}
			data, _ := io.ReadAll(part)
			switch part.FormName() {
			case "username":
				username = string(data)
			case "uploaded_file":
				filename = part.FileName()
				content = data
			}
		}
		return jsonResponse(http.StatusOK, `{"message":"ok"}`), nil
	}, staticToken("TOKEN-1"))

	err := c.Upload(context.Background(), "alice", "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, "notes.txt", filename)
	assert.Equal(t, []byte("hello"), content)
}

func TestUpload_Rejected(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		_, _ = io.Copy(io.Discard, req.Body)
		return jsonResponse(http.StatusUnauthorized, `{"detail":"Token manquant"}`), nil
	}, nil)

	err := c.Upload(context.Background(), "alice", "notes.txt", strings.NewReader("hello"))
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestAgainstMockBackend(t *testing.T) {
	b, srv := mockbackend.NewServer()
	defer srv.Close()

	var token string
	c := New(Config{BaseURL: srv.URL, Tokens: tokenFunc(func() string { return token })})
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Register(ctx, "alice", "pw1"))

	tok, err := c.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", tok.Username)
	assert.Equal(t, mockbackend.RoleNormal, tok.Role)
	assert.True(t, strings.HasPrefix(tok.AccessToken, "TOKEN-"))
	token = tok.AccessToken

	require.NoError(t, c.Upload(ctx, "alice", "notes.txt", strings.NewReader("hello")))
	files, err := c.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "notes.txt", files[0].Filename)
	assert.Equal(t, "alice", files[0].Owner)

	var buf bytes.Buffer
	n, err := c.Download(ctx, "1", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "hello", buf.String())

	_, err = c.Download(ctx, "99", &buf)
	assert.Equal(t, "Fichier introuvable en base", Detail(err))

	s, err := c.Settings(ctx, "alice")
	require.NoError(t, err)
	s.Theme = "dark"
	saved, err := c.UpdateSettings(ctx, "alice", *s)
	require.NoError(t, err)
	assert.Equal(t, "dark", saved.Theme)

	require.NoError(t, b.AddUser("bob", "pw", mockbackend.RoleNormal))
	blocked, err := c.BlockUser(ctx, "alice", "bob", models.Block)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, blocked)

	err = c.ChangePassword(ctx, "alice", "wrong", "pw2")
	assert.Equal(t, "Ancien mot de passe incorrect.", Detail(err))
	require.NoError(t, c.ChangePassword(ctx, "alice", "pw1", "pw2"))
	assert.True(t, b.CheckPassword("alice", "pw2"))

	_, err = c.Login(ctx, "alice", "pw1")
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Identifiants invalides", Detail(err))
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func TestNewHTTPClient(t *testing.T) {
	t.Run("no CA", func(t *testing.T) {
		c, err := NewHTTPClient("", 3*time.Second)
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, c.Timeout)
		assert.Nil(t, c.Transport)
	})

	t.Run("missing CA file", func(t *testing.T) {
		_, err := NewHTTPClient(filepath.Join(t.TempDir(), "nope.pem"), 0)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid CA", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a cert"), 0o600))
		_, err := NewHTTPClient(path, 0)
		assert.EqualError(t, err, "failed to parse CA cert")
	})

	t.Run("trusted CA", func(t *testing.T) {
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "ca.pem")
		certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
		require.NoError(t, os.WriteFile(path, certPEM, 0o600))

		httpClient, err := NewHTTPClient(path, time.Second)
		require.NoError(t, err)
		c := New(Config{BaseURL: srv.URL, HTTPClient: httpClient})
		assert.NoError(t, c.Ping(context.Background()))

		untrusted := New(Config{BaseURL: srv.URL})
		assert.Error(t, untrusted.Ping(context.Background()))
	})

	t.Run("generated CA", func(t *testing.T) {
		ca, err := certgen.NewAuthority("HomeDrive test CA")
		require.NoError(t, err)
		tlsConfig, err := ca.ServerTLSConfig("localhost", "127.0.0.1")
		require.NoError(t, err)

		b := mockbackend.New(nil)
		srv := httptest.NewUnstartedServer(b.Router())
		srv.TLS = tlsConfig
		srv.StartTLS()
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, ca.WriteCertPEM(path))
		httpClient, err := NewHTTPClient(path, time.Second)
		require.NoError(t, err)

		c := New(Config{BaseURL: srv.URL, HTTPClient: httpClient})
		require.NoError(t, c.Ping(context.Background()))
		assert.Equal(t, 1, b.Calls("GET /health"))
	})
}
