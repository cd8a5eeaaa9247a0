//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"

	"parcel-api/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	// Start PostgreSQL container with PostGIS
	req := testcontainers.ContainerRequest{
		Image:        "postgis/postgis:16-3.4",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	// Connect to database
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	// Create test schema
	_, err = pool.Exec(ctx, `
		CREATE EXTENSION IF NOT EXISTS postgis;

		CREATE TABLE owners (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			owner_type VARCHAR(64),
			phone VARCHAR(32),
			email VARCHAR(255)
		);

		CREATE TABLE parcels (
			id BIGSERIAL PRIMARY KEY,
			parcel_number VARCHAR(64) NOT NULL UNIQUE,
			geom GEOMETRY(MULTIPOLYGON, 4326) NOT NULL,
			area_sqft DOUBLE PRECISION NOT NULL,
			area_acres DOUBLE PRECISION NOT NULL,
			area_sqm DOUBLE PRECISION NOT NULL,
			address VARCHAR(255),
			city VARCHAR(128),
			state VARCHAR(32),
			zip VARCHAR(16),
			owner_id BIGINT REFERENCES owners(id)
		);
		CREATE INDEX parcels_geom_idx ON parcels USING GIST (geom);

		CREATE TABLE land_data (
			parcel_id BIGINT PRIMARY KEY REFERENCES parcels(id),
			soil_type VARCHAR(64),
			soil_quality_score INT,
			cropland_class VARCHAR(64),
			zoning_code VARCHAR(64),
			water_access BOOLEAN,
			road_access BOOLEAN,
			utility_access BOOLEAN,
			water_distance_m DOUBLE PRECISION,
			road_distance_m DOUBLE PRECISION
		);

		CREATE TABLE valuations (
			id BIGSERIAL PRIMARY KEY,
			parcel_id BIGINT NOT NULL REFERENCES parcels(id),
			estimated_value DOUBLE PRECISION NOT NULL,
			assessed_value DOUBLE PRECISION,
			market_value DOUBLE PRECISION,
			price_per_acre DOUBLE PRECISION,
			price_per_sqft DOUBLE PRECISION,
			last_sale_date DATE,
			last_sale_price DOUBLE PRECISION,
			confidence_score DOUBLE PRECISION,
			valuation_date DATE NOT NULL,
			source VARCHAR(64)
		);
		CREATE INDEX valuations_parcel_date_idx ON valuations (parcel_id, valuation_date DESC);
	`)
	require.NoError(t, err)

	seedFixture(t, pool)

	return pool
}

// seedFixture inserts 20 parcels in a row along latitude 32.7: parcels 1-7 are
// AGRICULTURAL with 12..18 acres, parcel 8 is AGRICULTURAL but only 5 acres,
// 9-14 are RESIDENTIAL at 15 acres, 15-20 are COMMERCIAL at 2 acres. Parcels
// 1-17 carry valuations (two for parcel 1, to exercise latest-wins); 18-20
// have none. Parcel 20 also has no land data.
func seedFixture(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()

	for i := 1; i <= 20; i++ {
		lng := -97.3 + float64(i-1)*0.01
		wkt := fmt.Sprintf(
			"SRID=4326;MULTIPOLYGON(((%[1]f 32.700, %[1]f 32.704, %[2]f 32.704, %[2]f 32.700, %[1]f 32.700)))",
			lng, lng+0.004,
		)

		var acres float64
		var zoning string
		switch {
		case i <= 7:
			acres = float64(11 + i) // 12..18
			zoning = "AGRICULTURAL"
		case i == 8:
			acres = 5
			zoning = "AGRICULTURAL"
		case i <= 14:
			acres = 15
			zoning = "RESIDENTIAL"
		default:
			acres = 2
			zoning = "COMMERCIAL"
		}

		sqft := acres * 43560

		var parcelID int64
		err := pool.QueryRow(ctx, `
			INSERT INTO parcels (parcel_number, geom, area_sqft, area_acres, area_sqm, city, state)
			VALUES ($1, ST_GeomFromEWKT($2), $3, $4, $5, 'Fort Worth', 'TX')
			RETURNING id`,
			fmt.Sprintf("P-%03d", i), wkt, sqft, acres, sqft*0.092903,
		).Scan(&parcelID)
		require.NoError(t, err)

		if i != 20 {
			_, err = pool.Exec(ctx, `
				INSERT INTO land_data (parcel_id, soil_type, zoning_code, water_access, road_access)
				VALUES ($1, 'LOAM', $2, $3, true)`,
				parcelID, zoning, i%2 == 0,
			)
			require.NoError(t, err)
		}

		if i <= 17 {
			_, err = pool.Exec(ctx, `
				INSERT INTO valuations (parcel_id, estimated_value, valuation_date, source)
				VALUES ($1, $2, '2024-06-01', 'test')`,
				parcelID, float64(100000+i*10000),
			)
			require.NoError(t, err)
		}
		if i == 1 {
			// Older, much higher valuation that latest-wins must ignore.
			_, err = pool.Exec(ctx, `
				INSERT INTO valuations (parcel_id, estimated_value, valuation_date, source)
				VALUES ($1, 9999999, '2020-01-01', 'test')`,
				parcelID,
			)
			require.NoError(t, err)
		}
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestRepository_SearchParcels(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	t.Run("agricultural scenario", func(t *testing.T) {
		f := &filter.SearchFilter{
			MinAreaAcres: floatPtr(10),
			ZoningCodes:  []string{"AGRICULTURAL"},
			Limit:        5,
			Offset:       0,
		}

		rows, total, err := repo.SearchParcels(ctx, f)
		require.NoError(t, err)

		assert.Equal(t, int64(7), total)
		assert.Len(t, rows, 5)

		// Ordered by latest estimated price descending.
		for i := 1; i < len(rows); i++ {
			require.NotNil(t, rows[i].EstimatedValue)
			assert.GreaterOrEqual(t, *rows[i-1].EstimatedValue, *rows[i].EstimatedValue)
		}

		// The remaining page.
		f.Offset = 5
		rest, total2, err := repo.SearchParcels(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(7), total2)
		assert.Len(t, rest, 2)
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		f := &filter.SearchFilter{ZoningCodes: []string{}, Limit: 500}

		rows, total, err := repo.SearchParcels(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, rows, 20)

		// Valuation-less parcels sort last, ties broken by id.
		last := rows[len(rows)-1]
		assert.Nil(t, last.EstimatedValue)
	})

	t.Run("latest valuation wins", func(t *testing.T) {
		f := &filter.SearchFilter{MinPrice: floatPtr(9000000), Limit: 10}

		_, total, err := repo.SearchParcels(ctx, f)
		require.NoError(t, err)
		// The 9999999 valuation on parcel 1 is stale and must not match.
		assert.Equal(t, int64(0), total)
	})

	t.Run("stable ordering across invocations", func(t *testing.T) {
		f := &filter.SearchFilter{Limit: 500}

		first, _, err := repo.SearchParcels(ctx, f)
		require.NoError(t, err)
		second, _, err := repo.SearchParcels(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRepository_ParcelsInBBox(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	// Envelope over the first three parcels only.
	features, err := repo.ParcelsInBBox(ctx, -97.301, 32.699, -97.275, 32.705, 0.0001)
	require.NoError(t, err)

	assert.Len(t, features, 3)
	assert.LessOrEqual(t, len(features), MaxSpatialRows)
	for _, f := range features {
		assert.NotNil(t, f.Geometry, "parcel %d should carry geometry", f.ID)
		assert.Contains(t, string(f.Geometry), "MultiPolygon")
	}

	rows, err := repo.ParcelsInBBoxList(ctx, -97.301, 32.699, -97.275, 32.705)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	// A viewport over open water matches nothing.
	empty, err := repo.ParcelsInBBoxList(ctx, 10, 10, 11, 11)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_ParcelsNearPoint(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	parcels, err := repo.ParcelsNearPoint(ctx, 32.702, -97.298, 5000, 10)
	require.NoError(t, err)
	require.NotEmpty(t, parcels)

	for i := 1; i < len(parcels); i++ {
		assert.GreaterOrEqual(t, parcels[i].DistanceMeters, parcels[i-1].DistanceMeters)
	}
}

func TestRepository_GetParcelStats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	stats, err := repo.GetParcelStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(20), stats.TotalParcels)
	assert.Equal(t, int64(17), stats.ValuedParcels)
	assert.GreaterOrEqual(t, stats.TotalParcels, stats.ValuedParcels)
	assert.Greater(t, stats.TotalAreaAcres, 0.0)
	assert.Greater(t, stats.AvgPrice, 0.0)
	assert.LessOrEqual(t, stats.MinPrice, stats.AvgPrice)
	assert.LessOrEqual(t, stats.AvgPrice, stats.MaxPrice)

	// Breakdown is ordered by descending count; parcel 20 has no land data so
	// only 19 rows contribute.
	require.NotEmpty(t, stats.ZoningCounts)
	var breakdownTotal int64
	for i, zc := range stats.ZoningCounts {
		breakdownTotal += zc.Count
		if i > 0 {
			assert.GreaterOrEqual(t, stats.ZoningCounts[i-1].Count, zc.Count)
		}
	}
	assert.Equal(t, int64(19), breakdownTotal)
}

func TestRepository_GetParcelStats_EmptySet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	_, err := pool.Exec(context.Background(), `
		DELETE FROM valuations; DELETE FROM land_data; DELETE FROM parcels; DELETE FROM owners;`)
	require.NoError(t, err)

	repo := NewRepository(pool)
	stats, err := repo.GetParcelStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalParcels)
	assert.Equal(t, 0.0, stats.AvgPrice)
	assert.Equal(t, 0.0, stats.MinPrice)
	assert.Equal(t, 0.0, stats.MaxPrice)
	assert.Empty(t, stats.ZoningCounts)
}

func TestRepository_GetParcelByID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	detail, err := repo.GetParcelByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "P-001", detail.Parcel.ParcelNumber)
	assert.InEpsilon(t, detail.Parcel.AreaSqft/43560, detail.Parcel.AreaAcres, 1e-3)
	require.NotNil(t, detail.LandData)
	assert.Equal(t, "AGRICULTURAL", *detail.LandData.ZoningCode)
	require.NotNil(t, detail.Valuation)
	// Latest valuation, not the stale 2020 one.
	assert.Equal(t, float64(110000), detail.Valuation.EstimatedValue)

	// Centroid falls inside the parcel square.
	assert.InDelta(t, 32.702, detail.Parcel.CentroidLat, 0.01)
	assert.InDelta(t, -97.298, detail.Parcel.CentroidLng, 0.01)

	// Parcel 20 has neither land data nor valuation, which is not an error.
	bare, err := repo.GetParcelByID(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, bare)
	assert.Nil(t, bare.LandData)
	assert.Nil(t, bare.Valuation)

	// Missing parcel yields (nil, nil).
	missing, err := repo.GetParcelByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
