package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jon4hz/notedeck/api/auth"
	"github.com/jon4hz/notedeck/api/handler"
	"github.com/jon4hz/notedeck/config"
	"github.com/jon4hz/notedeck/database"
	"github.com/samber/lo"
)

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>404 Not Found</title>
</head>
<body>
    <h1>404</h1>
    <p>Sorry, the resource you requested does not exist.</p>
</body>
</html>`

type Server struct {
	cfg          *config.Config
	router       *gin.Engine
	srv          *http.Server
	db           database.DB
	authProvider *auth.Provider
}

func New(cfg *config.Config, db database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CORS == nil || len(cfg.CORS.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("at least one allowed origin is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		router: gin.New(),
		db:     db,
	}

	if cfg.Auth != nil && cfg.Auth.Enabled {
		authProvider, err := auth.New(cfg.Auth, db)
		if err != nil {
			return nil, fmt.Errorf("failed to create auth provider: %w", err)
		}
		s.authProvider = authProvider
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger())
	s.router.Use(strictOrigin(s.cfg.CORS.AllowedOrigins))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	s.router.Static("/static", s.cfg.StaticDir)

	if s.authProvider != nil {
		s.router.POST("/auth", s.authProvider.Login)
		s.router.GET("/auth/refresh", s.authProvider.Refresh)
		s.router.POST("/auth/logout", s.authProvider.Logout)
	}

	h := handler.New(s.db)

	api := s.router.Group("/")
	if s.authProvider != nil {
		api.Use(s.authProvider.RequireAuth())
	}

	api.GET("/users", h.ListUsers)
	api.POST("/users", h.CreateUser)
	api.PATCH("/users", h.UpdateUser)
	api.DELETE("/users", h.DeleteUser)

	api.GET("/notes", h.ListNotes)
	api.POST("/notes", h.CreateNote)
	api.PATCH("/notes", h.UpdateNote)
	api.DELETE("/notes", h.DeleteNote)

	// Unmatched routes first try the static directory at the root, the way a
	// frontend bundle expects to be served. Anything still unmatched answers
	// in whatever format the client asked for.
	s.router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			file := filepath.Join(s.cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
		}
		switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON, gin.MIMEPlain) {
		case gin.MIMEHTML:
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
		case gin.MIMEJSON:
			c.JSON(http.StatusNotFound, gin.H{"message": "404 Not Found"})
		default:
			c.String(http.StatusNotFound, "404 Not Found")
		}
	})
}

// strictOrigin rejects any request whose Origin header is missing or not on
// the allow-list. Non-browser clients without an Origin header are rejected
// too; add the tooling origin to the allow-list instead of relaxing this.
func strictOrigin(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !lo.Contains(allowedOrigins, origin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not allowed by CORS"})
			return
		}
		c.Next()
	}
}

// requestLogger logs every request with a generated request id.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		log.Info("request",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"origin", c.GetHeader("Origin"),
		)
	}
}

// Run blocks serving requests until Shutdown is called or the listener fails.
func (s *Server) Run() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests
// until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
