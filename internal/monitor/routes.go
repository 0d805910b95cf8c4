package monitor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/mspctl/internal/protocol/session"
)

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.appeared).String(),
			"component": "mspctl.monitor",
			"version":   "0.0.1",
		})
	})

	router.GET("/api/status", func(c *gin.Context) {
		state := "disconnected"
		if s.sess.State() == session.Connected {
			state = "connected"
		}
		api := ""
		if v := s.sess.ApiVersion(); v != nil {
			api = v.String()
		}
		c.JSON(http.StatusOK, gin.H{
			"link":        state,
			"api_version": api,
		})
	})

	router.GET("/api/telemetry", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Snapshot())
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
