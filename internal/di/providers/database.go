package providers

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/heritageatlas/heritage-server/internal/config"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the dataset store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	if err := os.MkdirAll(filepath.Dir(cfg.Dataset.Path), 0o755); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Dataset.Path, log)
	if err != nil {
		return nil, err
	}

	log.Info("dataset store opened",
		"path", cfg.Dataset.Path,
		"site_count", st.Snapshot().Len(),
	)

	return &StoreHandle{Store: st}, nil
}
