package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/config"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/server/handlers"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP server wrapping the gin engine.
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer builds the router and mounts the API and the embedded front end.
func NewServer(cfg *config.AppConfig, log *logrus.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   gin.Default(),
		handlers: handlers.NewHandlers(mode, cfg.MaxUploadBytes(), log),
	}

	s.setupRoutes(cfg.Server.DevMode)
	return s, nil
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	if devMode {
		// Proxy page loads to the front-end dev server.
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "dist")

	s.router.GET("/", func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})

	s.router.NoRoute(func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router the underlying engine (used by tests).
func (s *Server) Router() *gin.Engine {
	return s.router
}
