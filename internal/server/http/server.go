// Package http exposes the user and file services over a JSON/multipart
// REST API built on fiber.
package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophdrop/internal/logging"
	"github.com/dmitrijs2005/gophdrop/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	users   *services.UserService
	files   *services.FileService
	logger  logging.Logger
	app     *fiber.App
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, fs *services.FileService, maxUploadBytes int64) *HTTPServer {
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		files:   fs,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
		Immutable:             true,
		UnescapePath:          true,
		BodyLimit:             int(maxUploadBytes),
	})
	s.registerRoutes(s.app)

	return s
}

// App returns the underlying fiber application.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) registerRoutes(r fiber.Router) {
	r.Use(s.requestLogger)

	r.Get("/ping", s.ping)
	r.Post("/register", s.register)
	r.Post("/login", s.login)
	r.Post("/auth/refresh", s.refresh)
	r.Post("/logout", s.logout)

	api := r.Group("/api", s.authRequired)
	api.Post("/upload", s.upload)
	api.Get("/files", s.list)
	api.Get("/search", s.search)
	api.Delete("/delete/:filename", s.delete)
	api.Get("/download/:filename", s.download)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
