package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
)

// SettingsStore caches the per-deployment settings record. There is no
// collection: exactly one instance exists, replaced with last-fetched-wins
// semantics.
type SettingsStore struct {
	mu       sync.Mutex
	settings models.Settings
	loading  bool

	client api.Client
	log    logging.Logger
}

func NewSettingsStore(client api.Client, log logging.Logger) *SettingsStore {
	return &SettingsStore{
		// shown until the first fetch succeeds
		settings: models.Settings{
			StoreName:                "My Store",
			StoreAddress:             "Jakarta, Indonesia",
			DefaultLowStockThreshold: 10,
			PICName:                  "Manager",
		},
		client: client,
		log:    log.With("store", "settings"),
	}
}

// Fetch refreshes the cached record. Failures are only logged; the previous
// (or default) record stays visible.
func (s *SettingsStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	fetched, err := s.client.GetSettings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.log.Error(ctx, "failed to fetch settings", "error", err)
		return
	}
	s.settings = *fetched
}

// Update replaces the record on the server and, on success, caches the
// server's version. It reports success as a bare boolean; this resource
// never surfaces an error value.
func (s *SettingsStore) Update(ctx context.Context, settings models.Settings) bool {
	updated, err := s.client.UpdateSettings(ctx, settings)
	if err != nil {
		s.log.Error(ctx, "failed to update settings", "error", err)
		return false
	}

	s.mu.Lock()
	s.settings = *updated
	s.mu.Unlock()
	return true
}

// Settings returns the cached record.
func (s *SettingsStore) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Loading reports whether a fetch is in flight.
func (s *SettingsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
