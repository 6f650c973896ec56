// Package server exposes the collected portfolio over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klimeurt/portfolio-collector/internal/site"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Store          *Store
	Site           *site.Content
	Broker         Checker
	AllowedOrigins []string
	Logger         *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

// BuildRouter wires the API routes.
func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(dep.Logger))
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	healthHandler := NewHealthHandler(dep.ServiceName, dep.Version, dep.Broker, dep.Store)
	healthHandler.RegisterRoutes(r)

	h := &handlers{store: dep.Store, site: dep.Site}
	api := r.Group("/api")
	api.GET("/projects", h.projects)
	api.GET("/profile", h.profile)
	api.GET("/site", h.siteContent)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

type handlers struct {
	store *Store
	site  *site.Content
}

func (h *handlers) projects(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Projects())
}

func (h *handlers) profile(c *gin.Context) {
	profile, ok := h.store.Profile()
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "profile not available"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *handlers) siteContent(c *gin.Context) {
	if h.site == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "site content not configured"})
		return
	}

	profile, _ := h.store.Profile()
	content := *h.site
	content.AvatarURL = site.ResolveAvatar(h.site, profile)
	c.JSON(http.StatusOK, content)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
