package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/mediastash/mediastash-server/internal/config"
	"github.com/mediastash/mediastash-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the SQLite store at the configured path.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	s, err := sqlite.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}

	log.Info("store opened", "path", cfg.Database.Path)

	return &StoreHandle{Store: s}, nil
}
