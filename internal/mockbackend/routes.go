package mockbackend

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atinyakov/HomeDrive/internal/models"
)

// Router returns the HTTP handler serving the HomeDrive API.
//
// Routes:
//
//	GET  /health
//	POST /auth/login
//	POST /auth/register
//	GET  /auth/settings/{username}
//	POST /auth/settings/update
//	POST /auth/change_password
//	POST /auth/block_user
//	GET  /workspace/files          (bearer)
//	POST /workspace/upload         (bearer)
//	GET  /workspace/download/{id}
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(b.countCalls)
	r.Use(WithRequestLogging(b.log))
	r.Use(chiMiddleware.AllowContentType("application/json", "multipart/form-data"))

	r.Get("/health", b.wrap(b.health))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", b.wrap(b.login))
		r.Post("/register", b.wrap(b.register))
		r.Get("/settings/{username}", b.wrap(b.getSettings))
		r.Post("/settings/update", b.wrap(b.updateSettings))
		r.Post("/change_password", b.wrap(b.changePassword))
		r.Post("/block_user", b.wrap(b.blockUser))
	})

	r.Route("/workspace", func(r chi.Router) {
		r.Get("/download/{id}", b.wrap(b.download))

		r.Group(func(r chi.Router) {
			r.Use(b.BearerAuth)
			r.Get("/files", b.wrap(b.listFiles))
			r.Post("/upload", b.wrap(b.upload))
		})
	})

	return r
}

// wrap serves the override registered for the request, if any.
func (b *Backend) wrap(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if o, ok := b.override(r); ok {
			o(w, r)
			return
		}
		h(w, r)
	}
}

func (b *Backend) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "project": "HOME_CONTAINER_DRIVE"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail answers with the {"detail": msg} error body.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Detail: msg})
}
