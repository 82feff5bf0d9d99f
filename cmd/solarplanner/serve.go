package main

import (
	"context"
	"fmt"

	"github.com/stanrw/enerwiseuk-sub000/internal/cache"
	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/internal/events"
	"github.com/stanrw/enerwiseuk-sub000/internal/logging"
	"github.com/stanrw/enerwiseuk-sub000/internal/server"
	"github.com/stanrw/enerwiseuk-sub000/internal/solarapi"
	"github.com/stanrw/enerwiseuk-sub000/internal/store"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
)

// runServe wires the configured backends and serves the HTTP API until ctx
// is cancelled. Redis and MQTT are optional; when enabled, a failure to
// connect stops startup.
func runServe(ctx context.Context, configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	log := logging.New(cfg.Logging, version)
	log.Info("solarplanner starting", "addr", cfg.Addr())

	st, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database opened", "path", st.Path())

	deps := server.Deps{Store: st, Source: newSource(cfg, log)}

	if cfg.Redis.Enabled {
		c, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer c.Close() //nolint:errcheck // shutdown path
		deps.Cache = c
		log.Info("result cache enabled", "ttl", cfg.CacheTTL())
	}

	if cfg.MQTT.Enabled {
		pub, err := events.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer pub.Close()
		deps.Publisher = pub
		log.Info("mqtt events enabled", "broker", fmt.Sprintf("%s:%d", cfg.MQTT.Host, cfg.MQTT.Port))
	}

	return server.New(cfg, deps, log).Start(ctx)
}

// newSource picks the building insights producer: the Solar API when a key
// is configured, otherwise a directory of cached JSON files, otherwise none.
func newSource(cfg *config.Config, log *logging.Logger) insights.Source {
	switch {
	case cfg.SolarAPI.APIKey != "":
		log.Info("building insights from solar api", "base_url", cfg.SolarAPI.BaseURL)
		return solarapi.New(cfg.SolarAPI, log)
	case cfg.SolarAPI.InsightsDir != "":
		log.Info("building insights from files", "dir", cfg.SolarAPI.InsightsDir)
		return insights.NewFileSource(cfg.SolarAPI.InsightsDir)
	default:
		log.Warn("no building insights source configured; location solves are disabled")
		return nil
	}
}
