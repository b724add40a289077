// Package api exposes the trading backend over HTTP.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"kalshi-trader/internal/broker"
	"kalshi-trader/internal/config"
	"kalshi-trader/internal/registry"
)

// Server wires the order registry and broker gateway into HTTP handlers.
type Server struct {
	registry *registry.Registry
	gateway  broker.Gateway
	cfg      config.ServerConfig
	logger   zerolog.Logger
}

// NewServer creates a server around the given registry and gateway.
func NewServer(reg *registry.Registry, gw broker.Gateway, cfg config.ServerConfig, logger zerolog.Logger) *Server {
	return &Server{
		registry: reg,
		gateway:  gw,
		cfg:      cfg,
		logger:   logger,
	}
}

// Router builds the gin engine with all middleware and routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(Recovery(s.logger))
	router.Use(RequestLogger(s.logger))
	router.Use(CORS(s.cfg.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/account/balance", s.GetBalance)
		v1.GET("/positions/open", s.GetOpenPositions)
		v1.GET("/orders/open", s.GetOpenOrders)
		v1.POST("/orders", s.PlaceOrder)
		v1.GET("/orders/:order_id", s.GetOrder)
		v1.GET("/trades/stats", s.GetTradeStats)
		v1.POST("/stats/odds", s.GetOddsReport)
	}

	if s.cfg.StaticDir != "" {
		s.mountSPA(router, s.cfg.StaticDir)
	}

	return router
}

// mountSPA serves the built frontend bundle for every route the API does not
// claim, falling back to index.html for client-side routing.
func (s *Server) mountSPA(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		requested := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(index)
	})
}
