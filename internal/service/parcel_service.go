package service

import (
	"context"
	"fmt"

	"parcel-api/internal/models"
)

// ParcelService contains the core business logic for single-parcel lookups
type ParcelService struct {
	repo ParcelRepository
}

// ParcelRepository interface for dependency injection
type ParcelRepository interface {
	GetParcelByID(ctx context.Context, id int64) (*models.ParcelDetail, error)
}

// NewParcelService creates a new parcel service
func NewParcelService(repo ParcelRepository) *ParcelService {
	return &ParcelService{repo: repo}
}

// GetParcel loads the full detail for one parcel.
func (s *ParcelService) GetParcel(ctx context.Context, id int64) (*models.ParcelDetail, error) {
	if id <= 0 {
		return nil, Validationf("invalid parcel id: %d", id)
	}

	detail, err := s.repo.GetParcelByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load parcel: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("service: parcel %d: %w", id, ErrNotFound)
	}

	return detail, nil
}
