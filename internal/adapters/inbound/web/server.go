// Package web serves the deployment configuration interface. It
// captures credentials over JSON, validates and hashes them, and
// persists them through the configuration store.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/preflight/preflight/internal/domain"
)

// Server owns the HTTP surface for one project directory.
type Server struct {
	store      domain.ConfigStore
	projectDir string
	log        *zap.Logger
}

func NewServer(store domain.ConfigStore, projectDir string, log *zap.Logger) *Server {
	return &Server{store: store, projectDir: projectDir, log: log}
}

// Router builds the gin engine with recovery and request logging.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/api/healthz", s.handleHealthz)
	r.GET("/api/config", s.handleGetConfig)
	r.POST("/api/config", s.handleSaveConfig)
	r.POST("/api/test-connection", s.handleTestConnection)
	r.GET("/api/status", s.handleStatus)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "endpoint not found")
	})

	return r
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	s.log.Info("configuration interface listening", zap.String("addr", addr))
	return s.Router().Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func respondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
