package mockbackend

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/HomeDrive/internal/models"
)

const (
	// maxUploadSize matches the 100MB limit of the real server.
	maxUploadSize = 100 << 20

	detailInvalidFilename = "Nom de fichier invalide"
	detailFileNotFound    = "Fichier introuvable en base"
)

func (b *Backend) listFiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, b.Files())
}

func (b *Backend) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}
	username := r.FormValue("username")
	if username == "" {
		writeDetail(w, http.StatusUnprocessableEntity, detailRequiredFields)
		return
	}

	f, hdr, err := r.FormFile("uploaded_file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailRequiredFields)
		return
	}
	defer f.Close()
	if hdr.Filename == "" {
		writeDetail(w, http.StatusBadRequest, detailInvalidFilename)
		return
	}
	data, err := io.ReadAll(f)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidRequest)
		return
	}

	rec := b.AddFile(username, hdr.Filename, data)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Fichier uploadé dans le workspace",
		"file":    rec,
	})
}

func (b *Backend) download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	b.mu.Lock()
	var (
		name  string
		data  []byte
		found bool
	)
	for _, f := range b.files {
		if f.rec.ID == models.FileID(strconv.FormatInt(id, 10)) {
			name, data, found = f.rec.Filename, f.data, true
			break
		}
	}
	b.mu.Unlock()

	if !found {
		writeDetail(w, http.StatusNotFound, detailFileNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
