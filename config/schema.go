package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/routeboard/cost"
	"github.com/katalvlaran/routeboard/route"
	"github.com/katalvlaran/routeboard/store"
)

// Store driver names accepted by StoreConf.Driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the top-level YAML structure.
type Config struct {
	Engine  EngineConf  `yaml:"engine"`
	Store   StoreConf   `yaml:"store"`
	Metrics MetricsConf `yaml:"metrics"`
	Log     LogConf     `yaml:"log"`
}

// EngineConf tunes the cost model and the search.
//
// ClampFloor, DefaultArrival, and MaxCost are pointers because zero is a
// meaningful setting for each; nil means "use the package default".
type EngineConf struct {
	Policy          string `yaml:"policy"`
	ClampFloor      *int64 `yaml:"clamp_floor"`
	ScaleDivisor    int64  `yaml:"scale_divisor"`
	DefaultArrival  *int64 `yaml:"default_arrival"`
	AutoRecalculate bool   `yaml:"auto_recalculate"`
	MaxCost         *int64 `yaml:"max_cost"`
}

// StoreConf selects the snapshot persistence backend.
type StoreConf struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// MetricsConf configures the Prometheus endpoint. An empty Addr disables it.
type MetricsConf struct {
	Addr string `yaml:"addr"`
}

// LogConf configures diagnostics output.
type LogConf struct {
	Level string `yaml:"level"`
}

// CostOptions renders the tuning fields into cost options, skipping unset
// ones. Callers must have run Validate first: the cost options panic on
// values Validate would have refused.
func (e EngineConf) CostOptions() []cost.Option {
	var opts []cost.Option
	if e.ClampFloor != nil {
		opts = append(opts, cost.WithClampFloor(*e.ClampFloor))
	}
	if e.ScaleDivisor != 0 {
		opts = append(opts, cost.WithScaleDivisor(e.ScaleDivisor))
	}
	if e.DefaultArrival != nil {
		opts = append(opts, cost.WithDefaultArrival(*e.DefaultArrival))
	}

	return opts
}

// SearchOptions renders the search budget into route options. Nil MaxCost
// means unlimited and yields no option.
func (e EngineConf) SearchOptions() []route.Option {
	if e.MaxCost == nil {
		return nil
	}

	return []route.Option{route.WithMaxCost(*e.MaxCost)}
}

// Model builds the configured cost model.
func (e EngineConf) Model() (cost.Model, error) {
	p, err := cost.ParsePolicy(e.Policy)
	if err != nil {
		return nil, err
	}

	return cost.NewModel(p, e.CostOptions()...)
}

// Open builds the configured snapshot store. The sqlite driver treats DSN
// as a file path; postgres treats it as a connection string.
func (s StoreConf) Open(ctx context.Context) (store.Store, error) {
	switch s.Driver {
	case DriverMemory:
		return store.NewMemory(), nil
	case DriverSQLite:
		return store.NewSQLite(s.DSN)
	case DriverPostgres:
		return store.OpenPostgres(ctx, s.DSN)
	default:
		return nil, fmt.Errorf("config: unknown store driver %q", s.Driver)
	}
}

// SlogLevel maps the configured level name to its slog value. Unknown names
// fall back to Info; Validate refuses them up front.
func (l LogConf) SlogLevel() slog.Level {
	lv, err := parseLevel(l.Level)
	if err != nil {
		return slog.LevelInfo
	}

	return lv
}
