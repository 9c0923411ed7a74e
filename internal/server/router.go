package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillhaven/botadmin/internal/api"
	"github.com/quillhaven/botadmin/internal/api/handlers"
	"github.com/quillhaven/botadmin/internal/api/middleware"
)

type RouterConfig struct {
	UploadHandler *handlers.UploadHandler
	ConfigHandler *handlers.ConfigHandler
	MemoryHandler *handlers.MemoryHandler
	StatusHandler *handlers.StatusHandler

	// MaxBodyBytes bounds upload size; zero disables the limit.
	MaxBodyBytes int64
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", cfg.UploadHandler.Upload)

		r.Route("/config", func(r chi.Router) {
			r.Get("/", cfg.ConfigHandler.Get)
			r.Post("/", cfg.ConfigHandler.Update)
			r.Get("/status", cfg.ConfigHandler.Status)
		})

		r.Route("/memory", func(r chi.Router) {
			r.Get("/preview", cfg.MemoryHandler.Preview)
			r.Delete("/", cfg.MemoryHandler.Clear)
		})

		r.Get("/bot/status", cfg.StatusHandler.Get)
	})

	return r
}
