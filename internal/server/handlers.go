package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stanrw/enerwiseuk-sub000/internal/cache"
	"github.com/stanrw/enerwiseuk-sub000/internal/solarapi"
	"github.com/stanrw/enerwiseuk-sub000/internal/store"
	"github.com/stanrw/enerwiseuk-sub000/pkg/cost"
	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
	"github.com/stanrw/enerwiseuk-sub000/pkg/scene"
	"github.com/stanrw/enerwiseuk-sub000/pkg/scene2d"
	"github.com/stanrw/enerwiseuk-sub000/pkg/validation"
)

// overrides are the optional request settings. Fields present in the JSON
// replace the configured defaults; absent fields keep them.
type overrides struct {
	Constraints json.RawMessage `json:"constraints"`
	Panel       json.RawMessage `json:"panel"`
	Tariff      json.RawMessage `json:"tariff"`
}

type solveRequest struct {
	overrides
	Address          string                     `json:"address"`
	BuildingInsights *insights.BuildingInsights `json:"buildingInsights" binding:"required"`
}

type locationRequest struct {
	overrides
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type validateRequest struct {
	overrides
	BuildingInsights *insights.BuildingInsights `json:"buildingInsights"`
}

type solveResponse struct {
	ID           string                     `json:"id"`
	Cached       bool                       `json:"cached"`
	Installation *installation.Installation `json:"installation"`
	Cost         *cost.Report               `json:"cost"`
}

// errBadOverride marks an override object that could not be decoded.
var errBadOverride = errors.New("invalid override")

// invalidInput carries a failed validation report back to the client.
type invalidInput struct {
	report *validation.Report
}

func (e *invalidInput) Error() string {
	return "invalid input: " + e.report.Summary
}

// settings resolves the request overrides against the configured defaults.
func (s *Server) settings(o overrides) (project.Constraints, project.PanelSpec, project.Tariff, error) {
	c := s.cfg.Engine.Constraints
	p := s.cfg.Engine.Panel
	t := s.cfg.Cost

	if err := decodeOver(o.Constraints, &c); err != nil {
		return c, p, t, fmt.Errorf("%w: constraints: %w", errBadOverride, err)
	}
	if err := decodeOver(o.Panel, &p); err != nil {
		return c, p, t, fmt.Errorf("%w: panel: %w", errBadOverride, err)
	}
	if err := decodeOver(o.Tariff, &t); err != nil {
		return c, p, t, fmt.Errorf("%w: tariff: %w", errBadOverride, err)
	}

	report := validation.ValidateConstraints(c)
	report.Merge(validation.ValidatePanel(p))
	report.Merge(validation.ValidateTariff(t))
	if !report.Valid {
		return c, p, t, &invalidInput{report: report}
	}
	return c, p, t, nil
}

// decodeOver unmarshals raw onto dst, leaving dst unchanged when raw is empty.
func decodeOver(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// solve designs, costs and stores an installation, serving repeat inputs
// from the cache when one is configured.
func (s *Server) solve(ctx context.Context, address string, bi *insights.BuildingInsights, o overrides) (*solveResponse, error) {
	c, p, t, err := s.settings(o)
	if err != nil {
		return nil, err
	}
	checked := validation.ValidateInsights(bi)
	if !checked.Valid {
		return nil, &invalidInput{report: checked}
	}

	key := ""
	if s.deps.Cache != nil {
		key, err = cache.Key(bi, c, p)
		if err != nil {
			return nil, err
		}
		entry, err := s.deps.Cache.Get(ctx, key)
		switch {
		case err == nil:
			s.log.Debug("solve served from cache", "id", entry.ID)
			// The key does not cover the tariff, so the cost is always re-estimated.
			return &solveResponse{ID: entry.ID, Cached: true, Installation: entry.Installation, Cost: cost.Estimate(entry.Installation, t)}, nil
		case !errors.Is(err, cache.ErrMiss):
			s.log.Warn("cache lookup failed", "error", err)
		}
	}

	inst := installation.Generate(bi, c, p)
	inst.Validation.Merge(checked)
	report := cost.Estimate(inst, t)

	rec, err := s.deps.Store.Save(ctx, address, bi, inst, report)
	if err != nil {
		return nil, fmt.Errorf("saving installation: %w", err)
	}
	s.log.Info("installation solved",
		"id", rec.ID,
		"panels", inst.Summary.TotalPanels,
		"capacity_kw", inst.Summary.SystemCapacityKw,
	)

	if key != "" {
		entry := &cache.Entry{ID: rec.ID, Installation: inst, Cost: report}
		if err := s.deps.Cache.Set(ctx, key, entry); err != nil {
			s.log.Warn("cache store failed", "id", rec.ID, "error", err)
		}
	}
	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishCompleted(rec.ID, address, inst); err != nil {
			s.log.Warn("publishing completion event failed", "id", rec.ID, "error", err)
		}
	}

	return &solveResponse{ID: rec.ID, Installation: inst, Cost: report}, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.deps.Store.HealthCheck(c.Request.Context()); err != nil {
		s.log.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSolve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	s.respondSolve(c, req.Address, req.BuildingInsights, req.overrides)
}

func (s *Server) handleSolveLocation(c *gin.Context) {
	if s.deps.Source == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no building insights source configured"})
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	loc := geo.LatLng{Latitude: *req.Latitude, Longitude: *req.Longitude}
	bi, err := s.deps.Source.FindClosest(c.Request.Context(), loc)
	if errors.Is(err, insights.ErrNoSolarPotential) {
		// Solves to an installation with no panels.
		if bi == nil {
			bi = &insights.BuildingInsights{}
		}
		err = nil
	}
	if err != nil {
		status := sourceStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("fetching building insights", "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	s.respondSolve(c, req.Address, bi, req.overrides)
}

func (s *Server) respondSolve(c *gin.Context, address string, bi *insights.BuildingInsights, o overrides) {
	resp, err := s.solve(c.Request.Context(), address, bi, o)
	var invalid *invalidInput
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "validation": invalid.report})
		return
	case errors.Is(err, errBadOverride):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.log.Error("solve failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to solve installation"})
		return
	}

	status := http.StatusCreated
	if resp.Cached {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	_, _, _, err := s.settings(req.overrides)
	var invalid *invalidInput
	report := validation.NewReport()
	switch {
	case errors.As(err, &invalid):
		report = invalid.report
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BuildingInsights != nil {
		report.Merge(validation.ValidateInsights(req.BuildingInsights))
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleList(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	list, err := s.deps.Store.List(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("listing installations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list installations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"installations": list})
}

func (s *Server) handleGet(c *gin.Context) {
	rec, ok := s.record(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleScene(c *gin.Context) {
	rec, ok := s.record(c)
	if !ok {
		return
	}
	g := scene.Assemble(rec.Insights, rec.Installation, rec.CreatedAt)
	c.JSON(http.StatusOK, gin.H{"scene": g, "validation": scene.ValidateGraph(g)})
}

func (s *Server) handlePlan(c *gin.Context) {
	rec, ok := s.record(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, scene2d.Assemble2D(rec.Insights, rec.Installation, rec.CreatedAt))
}

// record loads the installation named by the :id parameter, writing the
// error response itself when it cannot.
func (s *Server) record(c *gin.Context) (*store.Record, bool) {
	rec, err := s.deps.Store.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "installation not found"})
		return nil, false
	case err != nil:
		s.log.Error("loading installation", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load installation"})
		return nil, false
	}
	return rec, true
}

// sourceStatus maps a building insights lookup failure to an HTTP status.
func sourceStatus(err error) int {
	switch {
	case errors.Is(err, insights.ErrInvalidLocation), errors.Is(err, solarapi.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, solarapi.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
