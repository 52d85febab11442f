package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/routeboard/cost"
)

// Validate checks the config for out-of-range tuning values, unknown
// enumeration names, and missing required fields. Every violation is
// reported, not just the first.
func Validate(cfg *Config) error {
	var errs []string

	if _, err := cost.ParsePolicy(cfg.Engine.Policy); err != nil {
		errs = append(errs, fmt.Sprintf("engine.policy: unknown policy %q", cfg.Engine.Policy))
	}
	if cfg.Engine.ClampFloor != nil && *cfg.Engine.ClampFloor < 0 {
		errs = append(errs, fmt.Sprintf("engine.clamp_floor: must be non-negative, got %d", *cfg.Engine.ClampFloor))
	}
	if cfg.Engine.ScaleDivisor < 0 {
		errs = append(errs, fmt.Sprintf("engine.scale_divisor: must be positive, got %d", cfg.Engine.ScaleDivisor))
	}
	if cfg.Engine.DefaultArrival != nil && *cfg.Engine.DefaultArrival < 0 {
		errs = append(errs, fmt.Sprintf("engine.default_arrival: must be non-negative, got %d", *cfg.Engine.DefaultArrival))
	}
	if cfg.Engine.MaxCost != nil && *cfg.Engine.MaxCost < 0 {
		errs = append(errs, fmt.Sprintf("engine.max_cost: must be non-negative, got %d", *cfg.Engine.MaxCost))
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if cfg.Store.DSN == "" {
			errs = append(errs, fmt.Sprintf("store.dsn: required for driver %q", cfg.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Sprintf("store.driver: unknown driver %q", cfg.Store.Driver))
	}

	if _, err := parseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}
