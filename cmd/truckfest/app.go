package main

import (
	"fmt"
	"log/slog"

	"github.com/vbonduro/truckfest/internal/config"
	"github.com/vbonduro/truckfest/internal/db"
	"github.com/vbonduro/truckfest/internal/kv"
	"github.com/vbonduro/truckfest/internal/kv/local"
	"github.com/vbonduro/truckfest/internal/kv/memory"
	kvsqlite "github.com/vbonduro/truckfest/internal/kv/sqlite"
	"github.com/vbonduro/truckfest/internal/logging"
	"github.com/vbonduro/truckfest/internal/metrics"
	"github.com/vbonduro/truckfest/internal/record"
	"github.com/vbonduro/truckfest/internal/service"
	"github.com/vbonduro/truckfest/internal/store"
)

// app is the wired planner plus everything that must be released on exit.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	planner *service.Planner
	metrics *metrics.Metrics
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closers: []func(){cleanup}}

	backend, err := a.openBackend()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.metrics = metrics.New()
	opts := []record.Option{
		record.WithLogger(logging.Component(logger, "store")),
		record.WithObserver(a.metrics),
	}
	if cfg.KVBackend == config.BackendLocal {
		opts = append(opts, record.WithCodec(record.IndentedJSONCodec{}))
	}
	a.planner = service.NewPlanner(
		store.NewTruckStore(backend, opts...),
		store.NewEventStore(backend, opts...),
		store.NewInventoryStore(backend, opts...),
		store.NewPlanStore(backend, opts...),
		logging.Component(logger, "planner"),
	)
	a.closers = append(a.closers, a.planner.Close)
	return a, nil
}

func (a *app) openBackend() (kv.Store, error) {
	switch a.cfg.KVBackend {
	case config.BackendMemory:
		a.logger.Warn("using in-memory storage; records are lost on exit")
		return memory.NewMemoryStore(), nil
	case config.BackendLocal:
		a.logger.Info("using file storage", "dir", a.cfg.DataDir)
		fs, err := local.NewFileStore(a.cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		return fs, nil
	default:
		a.logger.Info("using sqlite storage", "path", a.cfg.DBPath)
		database, err := db.Open(a.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := database.Close(); err != nil {
				a.logger.Error("failed to close database", "error", err)
			}
		})
		return kvsqlite.NewKVStore(database), nil
	}
}
