// Package api exposes the intent lifecycle over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cashlink-hq/cashlinkd/pkg/logger"
	"github.com/cashlink-hq/cashlinkd/pkg/metrics"
	"github.com/cashlink-hq/cashlinkd/pkg/orchestrator"
	"github.com/cashlink-hq/cashlinkd/pkg/reconciler"
)

// Server serves the intent API
type Server struct {
	recon  *reconciler.Service
	orch   *orchestrator.Orchestrator
	origin string
	logger logger.Logger

	httpServer *http.Server
}

// NewServer creates the API server. origin is the public base URL used when
// composing claim links.
func NewServer(recon *reconciler.Service, orch *orchestrator.Orchestrator, origin, port string, log logger.Logger) *Server {
	s := &Server{
		recon:  recon,
		orch:   orch,
		origin: origin,
		logger: log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/intents", s.handleCreateIntent)
		v1.GET("/intents/:id", s.handleGetIntent)
		v1.POST("/intents/:id/claim", s.handleMarkClaimed)
		v1.GET("/claim/:id", s.handleResolveClaim)
		v1.POST("/claim/:id", s.handleExecuteClaim)
		v1.POST("/send", s.handleSend)
	}

	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	return s
}

// Start begins serving requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.InfoWith(logger.HTTP, "Intent API listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, letting in-flight requests finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// observe records per-route request counts and logs slow or failed requests
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()

		if code >= 500 {
			s.logger.ErrorWith(logger.HTTP, "%s %s -> %d (%s)", c.Request.Method, route, code, time.Since(start))
		} else {
			s.logger.DebugWith(logger.HTTP, "%s %s -> %d (%s)", c.Request.Method, route, code, time.Since(start))
		}
	}
}
