// Package server exposes an archive session over HTTP: the page with its
// inline connector SVG, and a small JSON API for clicks, hovers and the
// now-playing state.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/view"
)

// Session is the part of view.Controller the server drives.
type Session interface {
	Navigate(r archive.Route) error
	ApplyFilter(q string) error
	ClearFilter() error
	ClickEntry(id string) error
	HoverEntry(id string) error
	LeaveEntry(id string) error
	Autocomplete(q string) []archive.Suggestion
	Snapshot() (view.Snapshot, error)
}

// EntryHref is the link a setlist entry carries inside the served SVG.
func EntryHref(entryID string) string {
	return "/entries/" + url.PathEscape(entryID) + "/click"
}

// TabHref is the link a date tab carries inside the served SVG.
func TabHref(date string) string {
	return "/" + archive.Route{Date: date}.String()
}

// Server handles HTTP requests for one session.
type Server struct {
	session Session
	router  *gin.Engine
	log     *slog.Logger
}

// New creates the server and its routes. A nil logger uses slog.Default.
func New(session Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		session: session,
		router:  gin.New(),
		log:     logger,
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.router.SetHTMLTemplate(pageTemplate)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/", s.page)
	s.router.GET("/scene.svg", s.scene)
	s.router.GET("/entries/:id/click", s.clickRedirect)

	api := s.router.Group("/api")
	{
		api.GET("/autocomplete", s.autocomplete)
		api.GET("/now-playing", s.nowPlaying)
		api.POST("/entries/:id/click", s.click)
		api.POST("/entries/:id/hover", s.hover)
		api.DELETE("/entries/:id/hover", s.leave)
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
