// Package watcher monitors a drop folder for spreadsheet files and feeds
// them to the ingest service automatically.
package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/heritageatlas/heritage-server/internal/domain"
)

// Ingestor replaces the dataset from a workbook stream.
type Ingestor interface {
	ReplaceFromXLSX(ctx context.Context, source string, r io.Reader) (*domain.Revision, error)
}

// Default settle delay before a dropped file is read. Spreadsheet exports
// arrive via multiple writes; waiting lets the writer finish.
const defaultDebounce = 2 * time.Second

// Options configures the drop-folder watcher.
type Options struct {
	// Dir is the folder to watch for .xlsx files.
	Dir string
	// Debounce is how long a file must be quiet before ingestion.
	Debounce time.Duration
}

// Watcher watches a drop folder and ingests spreadsheets dropped into it.
type Watcher struct {
	dir      string
	debounce time.Duration
	ingestor Ingestor
	logger   *slog.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for the given options.
func New(ingestor Ingestor, logger *slog.Logger, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(opts.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", opts.Dir, err)
	}

	return &Watcher{
		dir:      opts.Dir,
		debounce: opts.Debounce,
		ingestor: ingestor,
		logger:   logger,
		fsw:      fsw,
		pending:  map[string]*time.Timer{},
	}, nil
}

// Start blocks processing file system events until the context is
// cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watching drop folder", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Stop releases the underlying file system watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

// handleEvent schedules ingestion for a written spreadsheet, resetting
// the timer while writes keep arriving.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !isSpreadsheet(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(w.debounce)
		return
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingest(ctx, path)
	})
}

func (w *Watcher) ingest(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		w.logger.Error("open dropped file", "path", path, "error", err)
		return
	}
	defer f.Close()

	rev, err := w.ingestor.ReplaceFromXLSX(ctx, "watch:"+filepath.Base(path), f)
	if err != nil {
		w.logger.Error("ingest dropped file", "path", path, "error", err)
		return
	}
	w.logger.Info("ingested dropped file",
		"path", path,
		"revision", rev.ID,
		"site_count", rev.SiteCount,
	)
}

// isSpreadsheet filters events to .xlsx files, skipping the ~$ lock files
// Excel leaves next to open workbooks.
func isSpreadsheet(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".xlsx")
}
