package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/semextract/analysis"
	"github.com/c360studio/semextract/models"
)

// watchSettleDelay is how long a file must stay quiet before it is
// analyzed, so partially written files are not picked up.
const watchSettleDelay = 500 * time.Millisecond

func watchCmd() *cobra.Command {
	var (
		outputPath string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and analyze new document entity files",
		Long: `Watch monitors a directory for new or changed JSON files, analyzes
each document entity it finds and writes one JSON result per document.
The command runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0], outputPath, publish)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results to file instead of stdout")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish results to the graph ingestion stream")

	return cmd
}

func runWatch(ctx context.Context, dir, outputPath string, publish bool) error {
	logger := slog.Default()

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := models.NewRegistry(cfg, logger)
	analyzer, err := registry.Analyzer(ctx)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var nc *natsclient.Client
	if publish {
		nc, err = connectNATS(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return err
		}
		defer nc.Close(ctx)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Watching for document entity files", "dir", dir)

	w := &watchRunner{
		analyzer: analyzer,
		nc:       nc,
		encoder:  json.NewEncoder(out),
		logger:   logger,
		pending:  make(map[string]*time.Timer),
	}
	defer w.drain()

	for {
		select {
		case <-signalCtx.Done():
			logger.Info("Watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if strings.ToLower(filepath.Ext(event.Name)) != ".json" {
				continue
			}
			w.schedule(signalCtx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}

// watchRunner debounces file events and runs analysis once a file has
// settled.
type watchRunner struct {
	analyzer *analysis.Analyzer
	nc       *natsclient.Client
	encoder  *json.Encoder
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	encMu   sync.Mutex
}

// schedule arms (or re-arms) the settle timer for one file.
func (w *watchRunner) schedule(ctx context.Context, file string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[file]; ok {
		timer.Reset(watchSettleDelay)
		return
	}
	w.pending[file] = time.AfterFunc(watchSettleDelay, func() {
		w.mu.Lock()
		delete(w.pending, file)
		w.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		w.analyze(ctx, file)
	})
}

func (w *watchRunner) analyze(ctx context.Context, file string) {
	w.encMu.Lock()
	defer w.encMu.Unlock()
	n, err := analyzeFile(ctx, w.analyzer, w.nc, w.encoder, file)
	if err != nil {
		w.logger.Warn("Analysis failed", "file", file, "error", err)
		return
	}
	w.logger.Info("File analyzed", "file", file, "documents", n)
}

// drain stops outstanding settle timers.
func (w *watchRunner) drain() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for file, timer := range w.pending {
		timer.Stop()
		delete(w.pending, file)
	}
}
