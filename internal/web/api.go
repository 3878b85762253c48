package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"bluesphere-studio/internal/portfolio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func (s *Server) apiWallArtHandler(c *gin.Context) {
	view, err := s.configuratorView(c)
	if err != nil {
		s.logger.Error("Failed to build wall art view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) apiPortfolioHandler(c *gin.Context) {
	items := []portfolio.Item{}
	if s.deps.Portfolio != nil {
		items = s.deps.Portfolio.List(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      portfolio.Filter(items, c.Query("category")),
		"categories": portfolio.Categories(items),
	})
}

type seoRequest struct {
	FocusArea string `json:"focusArea"`
	Location  string `json:"location"`
}

func (s *Server) apiSEOHandler(c *gin.Context) {
	var req seoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	advice, status, message := s.generateAdvice(c, req.FocusArea, req.Location)
	if advice == nil {
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(http.StatusOK, advice)
}

func (s *Server) healthHandler(c *gin.Context) {
	checks := make(map[string]string, len(s.deps.Health))
	healthy := true

	for name, dep := range s.deps.Health {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := dep.Ping(ctx)
		cancel()

		if err != nil {
			healthy = false
			checks[name] = err.Error()
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		checks[name] = "ok"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
