// Package web exposes the query interface: a dashboard page reading the
// current snapshot, a JSON API, and a manual refresh trigger. It only ever
// reads the snapshot store; all writes go through the orchestrator.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"NiftyPulse/internal/refresh"
	"NiftyPulse/internal/snapshot"
)

//go:embed templates
var templateFiles embed.FS

// Server serves the dashboard and the snapshot/refresh API.
type Server struct {
	store     *snapshot.Store
	orch      *refresh.Orchestrator
	staticDir string
	srv       *http.Server
}

// NewServer creates the web server around the snapshot store and the
// refresh orchestrator.
func NewServer(store *snapshot.Store, orch *refresh.Orchestrator, staticDir string) *Server {
	return &Server{store: store, orch: orch, staticDir: staticDir}
}

// routes builds the gin engine with all handlers registered.
func (s *Server) routes() (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.GET("/api/snapshot", s.handleSnapshot)
	router.GET("/api/refresh", s.handleRefresh)
	router.POST("/api/refresh", s.handleRefresh)
	if s.staticDir != "" {
		router.Static("/static", s.staticDir)
	}
	return router, nil
}

// Start runs the HTTP server on the given port. Blocks until shutdown.
func (s *Server) Start(port int) error {
	router, err := s.routes()
	if err != nil {
		return err
	}

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("[INFO] web server listening on :%d", port)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
