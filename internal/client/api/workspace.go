package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/atinyakov/HomeDrive/internal/models"
)

// ListFiles fetches the workspace files. A payload that is not a JSON array
// is treated as an empty workspace.
func (c *Client) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, pathFiles, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}
	var files []models.FileRecord
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", pathFiles, err)
	}
	return files, nil
}

// Upload sends one file as multipart form data with the uploader name.
// The content is streamed.
func (c *Client) Upload(ctx context.Context, username, filename string, content io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if err := mw.WriteField("username", username); err != nil {
				return err
			}
			part, err := mw.CreateFormFile("uploaded_file", filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, content); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	resp, err := c.do(ctx, http.MethodPost, pathUpload, pr, mw.FormDataContentType())
	if err != nil {
		_ = pr.CloseWithError(err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// DownloadURL is the server-rendered URL of a file.
func (c *Client) DownloadURL(id string) string {
	return c.baseURL + pathDownload + url.PathEscape(id)
}

// Download copies the content of file id into w and returns the byte count.
func (c *Client) Download(ctx context.Context, id string, w io.Writer) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, pathDownload+url.PathEscape(id), nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read download %s: %w", id, err)
	}
	return n, nil
}
