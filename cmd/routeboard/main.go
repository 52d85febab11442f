// Command routeboard drives a board session from the command line. It loads
// a snapshot document, replays it into the engine, reports a synthetic
// layout frame, and prints the cheapest Start-to-Finish path. With -watch it
// keeps re-running that cycle on every write to the snapshot file, so the
// recalculation loop is observable without a canvas.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/routeboard/board"
	"github.com/katalvlaran/routeboard/config"
	"github.com/katalvlaran/routeboard/engine"
	"github.com/katalvlaran/routeboard/event"
	"github.com/katalvlaran/routeboard/route"
	"github.com/katalvlaran/routeboard/snapshot"
	"github.com/katalvlaran/routeboard/store"
)

// Synthetic layout box reported for every node. The CLI has no canvas, so
// each node gets a fixed-size rectangle anchored at its stored position.
const (
	nodeWidth  = 120.0
	nodeHeight = 48.0
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (built-in defaults when empty)")
	snapPath := flag.String("snapshot", "", "snapshot document to load (falls back to the store's latest)")
	watch := flag.Bool("watch", false, "keep running: re-load and re-search on every snapshot write")
	save := flag.Bool("save", false, "persist each successfully loaded document to the configured store")
	flag.Parse()

	if err := run(*cfgPath, *snapPath, *watch, *save); err != nil {
		slog.Error("routeboard failed", "err", err)
		os.Exit(1)
	}
}

func run(cfgPath, snapPath string, watch, save bool) error {
	if watch && snapPath == "" {
		return errors.New("-watch needs -snapshot: only a file can be watched")
	}

	// 1) Load configuration, or fall back to built-in defaults.
	cfg := config.Default()
	var loader *config.Loader
	if cfgPath != "" {
		var err error
		loader, err = config.NewLoader(cfgPath)
		if err != nil {
			return err
		}
		cfg = loader.Config()
	}

	// 2) Logging. The LevelVar lets a config reload adjust verbosity live.
	level := new(slog.LevelVar)
	level.Set(cfg.Log.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// 3) Build the engine from the configured cost model and search budget.
	model, err := cfg.Engine.Model()
	if err != nil {
		return err
	}
	eng := engine.New(
		engine.WithCostModel(model),
		engine.WithEmitter(event.NewLogEmitter(logger)),
		engine.WithLogger(logger),
		engine.WithAutoRecalculate(cfg.Engine.AutoRecalculate),
		engine.WithSearchOptions(cfg.Engine.SearchOptions()...),
	)

	// 4) Open the snapshot store.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := cfg.Store.Open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// 5) Hot-reload the runtime-safe config subset in watch mode. Policy
	//    and store changes need a restart.
	if loader != nil && watch {
		loader.OnChange(func(c *config.Config) {
			level.Set(c.Log.SlogLevel())
			eng.SetAutoRecalculate(c.Engine.AutoRecalculate)
			logger.Info("config reloaded",
				"level", c.Log.Level, "auto_recalculate", c.Engine.AutoRecalculate)
		})
		stopCfg, err := loader.Watch()
		if err != nil {
			logger.Warn("config watcher unavailable", "err", err)
		} else {
			defer stopCfg()
		}
	}

	// 6) Expose Prometheus metrics when configured.
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		msrv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("metrics listening", "addr", cfg.Metrics.Addr)
			if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "err", err)
			}
		}()
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = msrv.Shutdown(shutCtx)
		}()
	}

	// 7) First cycle. In watch mode a failure is not fatal; the next write
	//    to the snapshot file gets another chance.
	if err := cycle(ctx, eng, st, snapPath, save, logger); err != nil {
		if !watch {
			return err
		}
		logger.Warn("initial run failed, watching for changes", "err", err)
	}
	if !watch {
		return nil
	}

	// 8) Watch the snapshot file and re-run the cycle on every write.
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("snapshot watcher: %w", err)
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(snapPath); err != nil {
		return fmt.Errorf("snapshot watcher add %s: %w", snapPath, err)
	}
	logger.Info("watching snapshot", "path", snapPath)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := cycle(ctx, eng, st, snapPath, save, logger); err != nil {
				logger.Warn("reload failed, keeping previous session", "err", err)
			}
		case <-w.Errors:
			// Watcher errors are transient; the next event still arrives.
		case <-quit:
			logger.Info("shutting down")
			return nil
		}
	}
}

// cycle runs one full load, layout, search pass and prints the outcome.
func cycle(ctx context.Context, eng *engine.Engine, st store.Store, snapPath string, save bool, logger *slog.Logger) error {
	doc, label, err := loadDocument(ctx, st, snapPath)
	if err != nil {
		return err
	}
	if err := eng.Restore(doc); err != nil {
		return err
	}
	for _, n := range eng.Nodes() {
		if err := eng.ReportRect(n.ID, board.BoxAt(n.Pos, nodeWidth, nodeHeight)); err != nil {
			return err
		}
	}

	// With auto-recalculate on, completing the frame above already ran the
	// search; otherwise run one against the restored costs.
	res, ok := eng.LastResult()
	if !ok {
		res, err = eng.RunPathSearch()
		if err != nil {
			return fmt.Errorf("search %s: %w", label, err)
		}
	}
	printResult(res)

	if save {
		id, err := st.Save(ctx, label, doc)
		if err != nil {
			return fmt.Errorf("persist %s: %w", label, err)
		}
		logger.Info("snapshot persisted", "id", id, "label", label)
	}

	return nil
}

// loadDocument reads the snapshot file, or falls back to the most recently
// stored document when no file was given.
func loadDocument(ctx context.Context, st store.Store, snapPath string) (*snapshot.Document, string, error) {
	if snapPath == "" {
		doc, err := st.Latest(ctx)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, "", errors.New("no -snapshot given and the store is empty")
			}
			return nil, "", err
		}

		return doc, "latest", nil
	}

	data, err := os.ReadFile(snapPath)
	if err != nil {
		return nil, "", fmt.Errorf("read snapshot %s: %w", snapPath, err)
	}
	doc, err := snapshot.Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode snapshot %s: %w", snapPath, err)
	}

	return doc, filepath.Base(snapPath), nil
}

func printResult(res *route.Result) {
	parts := make([]string, len(res.Path))
	for i, id := range res.Path {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	fmt.Printf("path: %s (total cost %d)\n", strings.Join(parts, " -> "), res.TotalCost)
}
