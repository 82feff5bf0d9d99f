// Package server exposes the solar planner over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/stanrw/enerwiseuk-sub000/internal/cache"
	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/internal/logging"
	"github.com/stanrw/enerwiseuk-sub000/internal/store"
	"github.com/stanrw/enerwiseuk-sub000/pkg/cost"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
)

const shutdownTimeout = 10 * time.Second

// Store persists installations.
type Store interface {
	Save(ctx context.Context, address string, bi *insights.BuildingInsights, inst *installation.Installation, report *cost.Report) (*store.Record, error)
	Get(ctx context.Context, id string) (*store.Record, error)
	List(ctx context.Context, limit int) ([]store.Summary, error)
	HealthCheck(ctx context.Context) error
}

// Cache holds solve results by input digest.
type Cache interface {
	Get(ctx context.Context, key string) (*cache.Entry, error)
	Set(ctx context.Context, key string, e *cache.Entry) error
}

// Publisher announces stored installations.
type Publisher interface {
	PublishCompleted(id, address string, inst *installation.Installation) error
}

// Deps are the collaborators a Server uses. Store is required; the others
// may be nil, which disables caching, events and location lookups.
type Deps struct {
	Store     Store
	Cache     Cache
	Publisher Publisher
	Source    insights.Source
}

// Server is the HTTP API.
type Server struct {
	cfg    *config.Config
	deps   Deps
	log    *logging.Logger
	engine *gin.Engine
}

// New creates a server and registers its routes.
func New(cfg *config.Config, deps Deps, log *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:  cfg,
		deps: deps,
		log:  log.With("component", "server"),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(s.log))
	engine.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	limiter := newIPRateLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst, s.log)

	api := engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/installations", s.handleList)
	api.GET("/installations/:id", s.handleGet)
	api.GET("/installations/:id/scene", s.handleScene)
	api.GET("/installations/:id/plan", s.handlePlan)

	solve := api.Group("", limiter.rateLimit())
	solve.POST("/solve", s.handleSolve)
	solve.POST("/solve/location", s.handleSolveLocation)
	solve.POST("/validate", s.handleValidate)

	s.engine = engine
	return s
}

// corsConfig allows the given origins, or any origin when none are listed.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.GetReadTimeout(),
		WriteTimeout: s.cfg.GetWriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
