package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
)

// AnalyticsStore caches read-only projections computed by the backend. They
// are refreshed wholesale on each fetch and never mutated locally.
type AnalyticsStore struct {
	mu         sync.Mutex
	summary    models.Summary
	dailySales []models.DailySalesPoint

	client api.Client
	log    logging.Logger
}

func NewAnalyticsStore(client api.Client, log logging.Logger) *AnalyticsStore {
	return &AnalyticsStore{client: client, log: log.With("store", "analytics")}
}

// FetchSummary refreshes the aggregate. Failures are only logged.
func (s *AnalyticsStore) FetchSummary(ctx context.Context) {
	summary, err := s.client.GetSummary(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to fetch summary", "error", err)
		return
	}

	s.mu.Lock()
	s.summary = *summary
	s.mu.Unlock()
}

// FetchDailySales refreshes the daily sales series. Failures are only logged.
func (s *AnalyticsStore) FetchDailySales(ctx context.Context) {
	points, err := s.client.GetDailySales(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to fetch daily sales", "error", err)
		return
	}

	s.mu.Lock()
	s.dailySales = points
	s.mu.Unlock()
}

// Summary returns the cached aggregate.
func (s *AnalyticsStore) Summary() models.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// DailySales returns a copy of the cached series.
func (s *AnalyticsStore) DailySales() []models.DailySalesPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DailySalesPoint, len(s.dailySales))
	copy(out, s.dailySales)
	return out
}
