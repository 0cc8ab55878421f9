package providers

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/heritageatlas/heritage-server/internal/config"
	"github.com/heritageatlas/heritage-server/internal/service"
	"github.com/heritageatlas/heritage-server/internal/watcher"
)

// WatcherHandle wraps the drop-folder watcher with its context for
// lifecycle management. The watcher is nil when no drop folder is
// configured.
type WatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Stop()
}

// ProvideDropFolderWatcher provides the drop-folder auto-ingest watcher.
func ProvideDropFolderWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	if cfg.Dataset.WatchDir == "" {
		return &WatcherHandle{}, nil
	}

	if err := os.MkdirAll(cfg.Dataset.WatchDir, 0o755); err != nil {
		return nil, err
	}

	ingestService := do.MustInvoke[*service.IngestService](i)

	w, err := watcher.New(ingestService, log, watcher.Options{Dir: cfg.Dataset.WatchDir})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("drop folder watcher stopped", "error", err)
		}
	}()

	return &WatcherHandle{Watcher: w, cancel: cancel}, nil
}
