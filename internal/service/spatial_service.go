package service

import (
	"context"
	"fmt"

	"parcel-api/internal/metrics"
	"parcel-api/internal/models"
	"parcel-api/internal/simplify"
)

// SpatialService contains the core business logic for viewport and radius queries
type SpatialService struct {
	repo SpatialRepository
}

// SpatialRepository interface for dependency injection
type SpatialRepository interface {
	ParcelsInBBox(ctx context.Context, west, south, east, north, tolerance float64) ([]models.ParcelFeature, error)
	ParcelsInBBoxList(ctx context.Context, west, south, east, north float64) ([]models.ParcelRow, error)
	ParcelsNearPoint(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]models.ParcelDistance, error)
}

// NewSpatialService creates a new spatial service
func NewSpatialService(repo SpatialRepository) *SpatialService {
	return &SpatialService{repo: repo}
}

func validateBounds(north, south, east, west float64) error {
	if north < -90 || north > 90 || south < -90 || south > 90 {
		return fmt.Errorf("service: %w: latitude out of range", ErrInvalidBounds)
	}
	if east < -180 || east > 180 || west < -180 || west > 180 {
		return fmt.Errorf("service: %w: longitude out of range", ErrInvalidBounds)
	}
	if north <= south {
		return fmt.Errorf("service: %w: north must exceed south", ErrInvalidBounds)
	}
	if east <= west {
		return fmt.Errorf("service: %w: east must exceed west", ErrInvalidBounds)
	}
	return nil
}

// BBoxFeatures returns geometry+attribute features for the viewport, with
// polygon detail chosen by zoom. A nil zoom falls back to simplify.DefaultZoom.
func (s *SpatialService) BBoxFeatures(ctx context.Context, north, south, east, west float64, zoom *int) ([]models.ParcelFeature, error) {
	if err := validateBounds(north, south, east, west); err != nil {
		return nil, err
	}

	z := simplify.DefaultZoom
	if zoom != nil {
		z = *zoom
	}
	tolerance := simplify.ToleranceForZoom(z)

	metrics.QueriesTotal.WithLabelValues("bbox_features").Inc()
	features, err := s.repo.ParcelsInBBox(ctx, west, south, east, north, tolerance)
	if err != nil {
		return nil, fmt.Errorf("service: failed to query bbox features: %w", err)
	}

	return features, nil
}

// BBoxList returns the attribute-only rows for the viewport.
func (s *SpatialService) BBoxList(ctx context.Context, north, south, east, west float64) ([]models.ParcelRow, error) {
	if err := validateBounds(north, south, east, west); err != nil {
		return nil, err
	}

	metrics.QueriesTotal.WithLabelValues("bbox_list").Inc()
	parcels, err := s.repo.ParcelsInBBoxList(ctx, west, south, east, north)
	if err != nil {
		return nil, fmt.Errorf("service: failed to query bbox list: %w", err)
	}

	return parcels, nil
}

// NearPoint returns parcels within radiusMeters of the point, nearest first.
func (s *SpatialService) NearPoint(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]models.ParcelDistance, error) {
	if lat < -90 || lat > 90 {
		return nil, Validationf("invalid latitude: %g", lat)
	}
	if lng < -180 || lng > 180 {
		return nil, Validationf("invalid longitude: %g", lng)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("service: %w", ErrInvalidRadius)
	}

	metrics.QueriesTotal.WithLabelValues("near_point").Inc()
	parcels, err := s.repo.ParcelsNearPoint(ctx, lat, lng, radiusMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to query near point: %w", err)
	}

	return parcels, nil
}
