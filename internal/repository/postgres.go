package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"parcel-api/internal/filter"
	"parcel-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxSpatialRows caps bbox and radius result sets. Callers needing more must
// narrow the viewport; this is admission control, not pagination.
const MaxSpatialRows = 500

// Repository implements parcel queries against PostgreSQL/PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// rowColumns is the dense attribute projection shared by list, search, and
// spatial queries: parcel identity and area, read-time centroid, and the
// latest-valuation and land-data joins flattened in.
const rowColumns = `
		p.id,
		p.parcel_number,
		p.area_acres,
		p.area_sqft,
		ST_Y(ST_Centroid(p.geom)) AS centroid_lat,
		ST_X(ST_Centroid(p.geom)) AS centroid_lng,
		p.address,
		p.city,
		p.state,
		p.zip,
		v.estimated_value,
		v.price_per_acre,
		ld.zoning_code,
		ld.soil_type,
		ld.cropland_class,
		ld.water_access,
		ld.road_access`

// rowJoins attaches the latest valuation (max valuation_date) and the optional
// land data to each parcel. Parcels missing either simply carry NULLs.
const rowJoins = `
	FROM parcels p
	LEFT JOIN LATERAL (
		SELECT estimated_value, price_per_acre
		FROM valuations
		WHERE parcel_id = p.id
		ORDER BY valuation_date DESC
		LIMIT 1
	) v ON true
	LEFT JOIN land_data ld ON ld.parcel_id = p.id`

func scanParcelRow(rows pgx.Rows, row *models.ParcelRow, extra ...any) error {
	dest := []any{
		&row.ID,
		&row.ParcelNumber,
		&row.AreaAcres,
		&row.AreaSqft,
		&row.CentroidLat,
		&row.CentroidLng,
		&row.Address,
		&row.City,
		&row.State,
		&row.Zip,
		&row.EstimatedValue,
		&row.PricePerAcre,
		&row.ZoningCode,
		&row.SoilType,
		&row.CroplandClass,
		&row.WaterAccess,
		&row.RoadAccess,
	}
	return rows.Scan(append(dest, extra...)...)
}

// ParcelsInBBox returns geometry+attribute features for parcels intersecting
// the bounding box, with geometry simplified to the given tolerance and
// serialized as GeoJSON. The result is capped at MaxSpatialRows.
func (r *Repository) ParcelsInBBox(ctx context.Context, west, south, east, north, tolerance float64) ([]models.ParcelFeature, error) {
	sql := `
		SELECT` + rowColumns + `,
		ST_AsGeoJSON(ST_SimplifyPreserveTopology(p.geom, $5)) AS geometry` + rowJoins + `
	WHERE p.geom && ST_MakeEnvelope($1, $2, $3, $4, 4326)
	ORDER BY p.id
	LIMIT ` + fmt.Sprint(MaxSpatialRows)

	rows, err := r.db.Query(ctx, sql, west, south, east, north, tolerance)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute bbox query: %w", err)
	}
	defer rows.Close()

	var features []models.ParcelFeature
	for rows.Next() {
		var f models.ParcelFeature
		var geom *string
		if err := scanParcelRow(rows, &f.ParcelRow, &geom); err != nil {
			return nil, fmt.Errorf("repository: failed to scan parcel feature: %w", err)
		}
		if geom != nil {
			f.Geometry = json.RawMessage(*geom)
		}
		features = append(features, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return features, nil
}

// ParcelsInBBoxList is the attribute-only variant of ParcelsInBBox, for callers
// that do not need geometry. Same intersection semantics, same cap.
func (r *Repository) ParcelsInBBoxList(ctx context.Context, west, south, east, north float64) ([]models.ParcelRow, error) {
	sql := `
		SELECT` + rowColumns + rowJoins + `
	WHERE p.geom && ST_MakeEnvelope($1, $2, $3, $4, 4326)
	ORDER BY p.id
	LIMIT ` + fmt.Sprint(MaxSpatialRows)

	rows, err := r.db.Query(ctx, sql, west, south, east, north)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute bbox list query: %w", err)
	}
	defer rows.Close()

	var parcels []models.ParcelRow
	for rows.Next() {
		var row models.ParcelRow
		if err := scanParcelRow(rows, &row); err != nil {
			return nil, fmt.Errorf("repository: failed to scan parcel row: %w", err)
		}
		parcels = append(parcels, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return parcels, nil
}

// ParcelsNearPoint returns parcels within radiusMeters of the point, ordered by
// ascending distance with the distance included in each row.
func (r *Repository) ParcelsNearPoint(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]models.ParcelDistance, error) {
	if limit <= 0 || limit > MaxSpatialRows {
		limit = MaxSpatialRows
	}

	sql := `
		SELECT` + rowColumns + `,
		ST_Distance(p.geom::geography, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography) AS distance_meters` + rowJoins + `
	WHERE ST_DWithin(p.geom::geography, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
	ORDER BY distance_meters ASC, p.id ASC
	LIMIT $4`

	rows, err := r.db.Query(ctx, sql, lat, lng, radiusMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute near-point query: %w", err)
	}
	defer rows.Close()

	var parcels []models.ParcelDistance
	for rows.Next() {
		var row models.ParcelDistance
		if err := scanParcelRow(rows, &row.ParcelRow, &row.DistanceMeters); err != nil {
			return nil, fmt.Errorf("repository: failed to scan parcel distance: %w", err)
		}
		parcels = append(parcels, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return parcels, nil
}

// SearchParcels runs a filtered, paginated attribute search. The filter is
// compiled once and the same fragment list feeds both the count query and the
// page query, so the two can never disagree on the effective WHERE clause.
// Rows are ordered by latest estimated price descending with missing prices
// last, ties broken by id, so pagination is reproducible.
func (r *Repository) SearchParcels(ctx context.Context, f *filter.SearchFilter) ([]models.ParcelRow, int64, error) {
	b := filter.Compile(f)
	where := b.Where()

	countSQL := `
		SELECT COUNT(*)` + rowJoins + where

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to execute count query: %w", err)
	}

	pageSQL := `
		SELECT` + rowColumns + rowJoins + where + `
	ORDER BY v.estimated_value DESC NULLS LAST, p.id ASC
	LIMIT ` + filter.Placeholder(b.Next()) + ` OFFSET ` + filter.Placeholder(b.Next()+1)

	args := append(b.Args(), f.Limit, f.Offset)
	rows, err := r.db.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	var parcels []models.ParcelRow
	for rows.Next() {
		var row models.ParcelRow
		if err := scanParcelRow(rows, &row); err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan parcel row: %w", err)
		}
		parcels = append(parcels, row)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return parcels, total, nil
}

// GetParcelStats aggregates dashboard statistics. The totals query and the
// zoning breakdown run as separate statements with no shared snapshot, so they
// can drift slightly under concurrent ingestion.
func (r *Repository) GetParcelStats(ctx context.Context) (*models.ParcelStats, error) {
	totalsSQL := `
		SELECT
			COUNT(*),
			COALESCE(SUM(p.area_acres), 0),
			COALESCE(AVG(p.area_acres), 0),
			COUNT(v.estimated_value),
			COALESCE(AVG(v.estimated_value), 0),
			COALESCE(MIN(v.estimated_value), 0),
			COALESCE(MAX(v.estimated_value), 0)
		FROM parcels p
		LEFT JOIN LATERAL (
			SELECT estimated_value
			FROM valuations
			WHERE parcel_id = p.id
			ORDER BY valuation_date DESC
			LIMIT 1
		) v ON true`

	var stats models.ParcelStats
	err := r.db.QueryRow(ctx, totalsSQL).Scan(
		&stats.TotalParcels,
		&stats.TotalAreaAcres,
		&stats.AvgAreaAcres,
		&stats.ValuedParcels,
		&stats.AvgPrice,
		&stats.MinPrice,
		&stats.MaxPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute stats query: %w", err)
	}

	breakdownSQL := `
		SELECT ld.zoning_code, COUNT(*)
		FROM land_data ld
		WHERE ld.zoning_code IS NOT NULL
		GROUP BY ld.zoning_code
		ORDER BY COUNT(*) DESC, ld.zoning_code ASC`

	rows, err := r.db.Query(ctx, breakdownSQL)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute zoning breakdown query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var zc models.ZoningCount
		if err := rows.Scan(&zc.ZoningCode, &zc.Count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan zoning count: %w", err)
		}
		stats.ZoningCounts = append(stats.ZoningCounts, zc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return &stats, nil
}

// GetParcelByID loads the full detail for one parcel: the parcel itself plus
// its land data, latest valuation, and owner where present. Returns (nil, nil)
// when no parcel matches.
func (r *Repository) GetParcelByID(ctx context.Context, id int64) (*models.ParcelDetail, error) {
	parcelSQL := `
		SELECT
			p.id,
			p.parcel_number,
			p.area_sqft,
			p.area_acres,
			p.area_sqm,
			ST_Y(ST_Centroid(p.geom)) AS centroid_lat,
			ST_X(ST_Centroid(p.geom)) AS centroid_lng,
			p.address,
			p.city,
			p.state,
			p.zip,
			p.owner_id
		FROM parcels p
		WHERE p.id = $1`

	var d models.ParcelDetail
	err := r.db.QueryRow(ctx, parcelSQL, id).Scan(
		&d.Parcel.ID,
		&d.Parcel.ParcelNumber,
		&d.Parcel.AreaSqft,
		&d.Parcel.AreaAcres,
		&d.Parcel.AreaSqm,
		&d.Parcel.CentroidLat,
		&d.Parcel.CentroidLng,
		&d.Parcel.Address,
		&d.Parcel.City,
		&d.Parcel.State,
		&d.Parcel.Zip,
		&d.Parcel.OwnerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to load parcel: %w", err)
	}

	landSQL := `
		SELECT parcel_id, soil_type, soil_quality_score, cropland_class, zoning_code,
			water_access, road_access, utility_access, water_distance_m, road_distance_m
		FROM land_data
		WHERE parcel_id = $1`

	var ld models.LandData
	err = r.db.QueryRow(ctx, landSQL, id).Scan(
		&ld.ParcelID,
		&ld.SoilType,
		&ld.SoilQualityScore,
		&ld.CroplandClass,
		&ld.ZoningCode,
		&ld.WaterAccess,
		&ld.RoadAccess,
		&ld.UtilityAccess,
		&ld.WaterDistanceM,
		&ld.RoadDistanceM,
	)
	if err == nil {
		d.LandData = &ld
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("repository: failed to load land data: %w", err)
	}

	valuationSQL := `
		SELECT id, parcel_id, estimated_value, assessed_value, market_value,
			price_per_acre, price_per_sqft, last_sale_date, last_sale_price,
			confidence_score, valuation_date, source
		FROM valuations
		WHERE parcel_id = $1
		ORDER BY valuation_date DESC
		LIMIT 1`

	var v models.Valuation
	err = r.db.QueryRow(ctx, valuationSQL, id).Scan(
		&v.ID,
		&v.ParcelID,
		&v.EstimatedValue,
		&v.AssessedValue,
		&v.MarketValue,
		&v.PricePerAcre,
		&v.PricePerSqft,
		&v.LastSaleDate,
		&v.LastSalePrice,
		&v.ConfidenceScore,
		&v.ValuationDate,
		&v.Source,
	)
	if err == nil {
		d.Valuation = &v
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("repository: failed to load valuation: %w", err)
	}

	if d.Parcel.OwnerID != nil {
		ownerSQL := `SELECT id, name, owner_type, phone, email FROM owners WHERE id = $1`

		var o models.Owner
		err = r.db.QueryRow(ctx, ownerSQL, *d.Parcel.OwnerID).Scan(&o.ID, &o.Name, &o.OwnerType, &o.Phone, &o.Email)
		if err == nil {
			d.Owner = &o
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repository: failed to load owner: %w", err)
		}
	}

	return &d, nil
}
