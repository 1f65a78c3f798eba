package application

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/connectcc/auditions/internal/domain"
	"github.com/connectcc/auditions/internal/ports"
)

var resetsPerformed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "resets_total",
	Help: "Total number of bulk evaluation resets performed.",
})

// DashboardService serves the admin aggregates and the public leaderboard,
// and performs the bulk evaluation reset between audition rounds.
type DashboardService struct {
	store ports.ContestantStore
}

// NewDashboardService wires the dashboard to the record store.
func NewDashboardService(store ports.ContestantStore) (*DashboardService, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	return &DashboardService{store: store}, nil
}

// Summary computes the dashboard aggregates over a snapshot of the full
// collection.
func (s *DashboardService) Summary(ctx context.Context) (domain.DashboardSummary, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	return domain.Summarize(records), nil
}

// Contestants returns the full roster with saved scorecards and feedback,
// for the admin review views.
func (s *DashboardService) Contestants(ctx context.Context) ([]domain.Contestant, error) {
	return s.store.GetAll(ctx)
}

// Leaderboard returns the evaluated contestants ranked by score.
func (s *DashboardService) Leaderboard(ctx context.Context) ([]domain.Contestant, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Leaderboard(records), nil
}

// ResetAll clears every saved evaluation in one atomic batch. On failure
// the collection is unchanged; records themselves are never deleted.
func (s *DashboardService) ResetAll(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return err
	}
	resetsPerformed.Inc()
	return nil
}
