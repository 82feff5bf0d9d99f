// Package solarapi fetches building insights from the Google Solar API.
package solarapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/internal/logging"
	"github.com/stanrw/enerwiseuk-sub000/pkg/geo"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
)

// maxBodySize bounds the response read; building payloads are well under it.
const maxBodySize = 8 << 20

// Client is the HTTP client for buildingInsights:findClosest.
// It implements insights.Source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	quality    string
	limiter    *rate.Limiter
	log        *logging.Logger
}

var _ insights.Source = (*Client)(nil)

// New creates a Solar API client.
func New(cfg config.SolarAPIConfig, log *logging.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		quality:    cfg.RequiredQuality,
		log:        log.With("component", "solarapi"),
	}
	if cfg.RatePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return c
}

// FindClosest returns insights for the building nearest to loc.
//
// A building without solar potential is returned together with
// insights.ErrNoSolarPotential, as insights.Parse does.
func (c *Client) FindClosest(ctx context.Context, loc geo.LatLng) (*insights.BuildingInsights, error) {
	if !insights.ValidLocation(loc) {
		return nil, insights.ErrInvalidLocation
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnauthorized)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set("location.latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("location.longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	if c.quality != "" {
		params.Set("requiredQuality", c.quality)
	}
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/buildingInsights:findClosest?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("solar api request failed", "error", err)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// decoded below
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Error("solar api unauthorized", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case http.StatusNotFound:
		c.log.Debug("solar api found no building", "latitude", loc.Latitude, "longitude", loc.Longitude)
		return nil, ErrNotFound
	case http.StatusBadRequest:
		c.log.Warn("solar api bad request", "message", apiMessage(body))
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, apiMessage(body))
	default:
		c.log.Error("solar api upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	bi, err := insights.Parse(body)
	if err != nil && !errors.Is(err, insights.ErrNoSolarPotential) {
		c.log.Error("solar api decode failed", "error", err)
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return bi, err
}

// apiMessage extracts error.message from a Google API error body.
func apiMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error.Message == "" {
		return "invalid parameters"
	}
	return e.Error.Message
}
