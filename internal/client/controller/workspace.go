package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/HomeDrive/internal/client/api"
	"github.com/atinyakov/HomeDrive/internal/client/render"
	"github.com/atinyakov/HomeDrive/internal/client/view"
)

const (
	defaultDownloadName = "download"
	maxNameAttempts     = 1000
)

// RefreshFiles reloads the workspace list. The list goes through loading and
// ends in exactly one of empty, error or rows.
func (c *Controller) RefreshFiles(ctx context.Context) {
	c.update(func(s *Screen, _ *view.Navigator) {
		s.Files = render.LoadingFiles()
	})

	records, err := c.backend.ListFiles(ctx)
	var list render.FileList
	switch {
	case err == nil:
		list = render.Files(records, c.loc)
	case isStatus(err):
		c.log.Info("file list rejected", zap.Error(err))
		list = render.FilesError(MsgFilesUnavailable)
	default:
		c.log.Warn("file list failed", zap.Error(err))
		list = render.FilesError(MsgFilesFailed)
	}

	c.update(func(s *Screen, _ *view.Navigator) {
		s.Files = list
	})
}

// UploadFile sends one file on behalf of the logged-in user and refreshes
// the list on success. A call without a name is ignored.
func (c *Controller) UploadFile(ctx context.Context, filename string, content io.Reader) {
	if filename == "" || content == nil {
		return
	}
	username := c.sess.Username()
	if username == "" {
		c.alert(AlertMustLogin)
		return
	}

	if err := c.backend.Upload(ctx, username, filename, content); err != nil {
		if isStatus(err) {
			c.log.Info("upload rejected", zap.String("filename", filename), zap.Error(err))
			c.alert(AlertUploadFailed)
			return
		}
		c.log.Warn("upload failed", zap.String("filename", filename), zap.Error(err))
		c.alert(AlertNetwork)
		return
	}

	c.log.Info("file uploaded", zap.String("filename", filename), zap.String("username", username))
	c.alert(AlertUploadDone)
	c.RefreshFiles(ctx)
}

// ViewFile opens the download URL of a file.
func (c *Controller) ViewFile(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	u := c.backend.DownloadURL(id)
	if c.opener == nil {
		c.log.Info("no opener configured", zap.String("url", u))
		return
	}
	if err := c.opener.Open(u); err != nil {
		c.log.Warn("open file failed", zap.String("url", u), zap.Error(err))
	}
}

// DownloadFile saves a file into the download directory under the base name
// of filename. An existing file is never overwritten: a numbered name is
// picked instead.
func (c *Controller) DownloadFile(ctx context.Context, id, filename string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	f, err := createUnique(c.downloadDir, downloadName(filename))
	if err != nil {
		c.log.Warn("create download file failed", zap.String("id", id), zap.Error(err))
		c.alert(AlertDownloadFailed)
		return
	}
	path := f.Name()

	n, err := c.backend.Download(ctx, id, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		c.log.Warn("download failed", zap.String("id", id), zap.Error(err))
		c.alert(AlertDownloadFailed)
		return
	}

	c.log.Info("file downloaded", zap.String("id", id), zap.String("path", path), zap.Int64("bytes", n))
	c.update(func(s *Screen, _ *view.Navigator) {
		s.LastDownload = path
	})
}

func isStatus(err error) bool {
	_, ok := api.AsStatus(err)
	return ok
}

// downloadName keeps only the last element of name.
func downloadName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return defaultDownloadName
	}
	return name
}

// createUnique creates dir/name, or dir/"stem (n)ext" when taken.
func createUnique(dir, name string) (*os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxNameAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("no free name for %q in %s", name, dir)
}
