package flights

import (
	"context"

	"github.com/Domenick1991/flightdash/internal/domain"
	"github.com/Domenick1991/flightdash/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.FlightRecord, error)
	TestConnection(ctx context.Context) (string, error)
}

// FlightCache is optional; a nil cache means every request goes straight to
// the database.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.FlightRecord, error)
	SetFlights(ctx context.Context, records []domain.FlightRecord) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.FlightRecord, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, records)
	}
	return records, nil
}

// TestConnection makes a single attempt against the database and returns
// the server version string. No retries.
func (s *FlightService) TestConnection(ctx context.Context) (string, error) {
	return s.repo.ServerVersion(ctx)
}

var _ FlightUseCase = (*FlightService)(nil)
