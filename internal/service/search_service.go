package service

import (
	"context"
	"fmt"

	"parcel-api/internal/filter"
	"parcel-api/internal/metrics"
	"parcel-api/internal/models"
)

// SearchService contains the core business logic for filtered parcel search
type SearchService struct {
	repo SearchRepository
}

// SearchRepository interface for dependency injection
type SearchRepository interface {
	SearchParcels(ctx context.Context, f *filter.SearchFilter) ([]models.ParcelRow, int64, error)
}

// NewSearchService creates a new search service
func NewSearchService(repo SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search validates and normalizes the filter, then runs the paginated search.
// The repository derives both the count and the page from one compiled filter,
// so total and rows always reflect the same constraints.
func (s *SearchService) Search(ctx context.Context, f *filter.SearchFilter) (*models.SearchResult, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("service: %w", &ValidationError{Msg: err.Error()})
	}
	f.Normalize()

	metrics.QueriesTotal.WithLabelValues("search").Inc()
	rows, total, err := s.repo.SearchParcels(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search parcels: %w", err)
	}

	return &models.SearchResult{
		Rows:    rows,
		Total:   total,
		HasMore: int64(f.Offset+len(rows)) < total,
	}, nil
}
