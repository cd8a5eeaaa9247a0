package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"parcel-api/internal/config"
	"parcel-api/internal/models"

	"github.com/jackc/pgx/v5"
)

// ParcelRecord is one row of the seed CSV: parcel attributes, land data, an
// initial valuation, an optional owner name, and the boundary as WKT.
type ParcelRecord struct {
	ParcelNumber     string
	Address          string
	City             string
	State            string
	Zip              string
	AreaSqft         float64
	ZoningCode       string
	SoilType         string
	SoilQualityScore int
	CroplandClass    string
	WaterAccess      bool
	RoadAccess       bool
	EstimatedValue   float64
	ValuationDate    string
	OwnerName        string
	WKT              string
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure schema exists
	err = createSchemaIfNotExists(conn)
	if err != nil {
		fmt.Printf("Error creating schema: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	err = insertRecords(conn, records)
	if err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	err = verifyImport(conn, len(records))
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
}

func parseCSV(filePath string) ([]ParcelRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []ParcelRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 16 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 16 columns", len(record))
		}

		areaSqft, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid area_sqft: %s", record[5])
		}

		soilQuality, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, fmt.Errorf("invalid soil_quality_score: %s", record[8])
		}

		estimatedValue, err := strconv.ParseFloat(record[12], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid estimated_value: %s", record[12])
		}

		parcel := ParcelRecord{
			ParcelNumber:     record[0],
			Address:          record[1],
			City:             record[2],
			State:            record[3],
			Zip:              record[4],
			AreaSqft:         areaSqft,
			ZoningCode:       record[6],
			SoilType:         record[7],
			SoilQualityScore: soilQuality,
			CroplandClass:    record[9],
			WaterAccess:      strings.EqualFold(record[10], "true"),
			RoadAccess:       strings.EqualFold(record[11], "true"),
			EstimatedValue:   estimatedValue,
			ValuationDate:    record[13],
			OwnerName:        record[14],
			WKT:              record[15],
		}

		records = append(records, parcel)
	}

	return records, nil
}

func createSchemaIfNotExists(conn *pgx.Conn) error {
	query := `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS owners (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		owner_type VARCHAR(64),
		phone VARCHAR(32),
		email VARCHAR(255)
	);

	CREATE TABLE IF NOT EXISTS parcels (
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
	CREATE INDEX IF NOT EXISTS parcels_geom_idx ON parcels USING GIST (geom);
	CREATE INDEX IF NOT EXISTS parcels_city_idx ON parcels (city);

	CREATE TABLE IF NOT EXISTS land_data (
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
	CREATE INDEX IF NOT EXISTS land_data_zoning_idx ON land_data (zoning_code);

	CREATE TABLE IF NOT EXISTS valuations (
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
	CREATE INDEX IF NOT EXISTS valuations_parcel_date_idx ON valuations (parcel_id, valuation_date DESC);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func insertRecords(conn *pgx.Conn, records []ParcelRecord) error {
	ctx := context.Background()
	ownerIDs := make(map[string]int64)

	for _, r := range records {
		var ownerID *int64
		if r.OwnerName != "" {
			id, seen := ownerIDs[r.OwnerName]
			if !seen {
				err := conn.QueryRow(ctx, `
					INSERT INTO owners (name) VALUES ($1)
					ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
					RETURNING id`, r.OwnerName).Scan(&id)
				if err != nil {
					return fmt.Errorf("failed to upsert owner %q: %w", r.OwnerName, err)
				}
				ownerIDs[r.OwnerName] = id
			}
			ownerID = &id
		}

		geom := "SRID=4326;" + r.WKT
		var parcelID int64
		err := conn.QueryRow(ctx, `
			INSERT INTO parcels (parcel_number, geom, area_sqft, area_acres, area_sqm, address, city, state, zip, owner_id)
			VALUES ($1, ST_Multi(ST_GeomFromEWKT($2)), $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			r.ParcelNumber, geom, r.AreaSqft,
			models.AcresFromSqft(r.AreaSqft), models.SqmFromSqft(r.AreaSqft),
			r.Address, r.City, r.State, r.Zip, ownerID,
		).Scan(&parcelID)
		if err != nil {
			return fmt.Errorf("failed to insert parcel %q: %w", r.ParcelNumber, err)
		}

		_, err = conn.Exec(ctx, `
			INSERT INTO land_data (parcel_id, soil_type, soil_quality_score, cropland_class, zoning_code, water_access, road_access)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			parcelID, r.SoilType, r.SoilQualityScore, r.CroplandClass, r.ZoningCode, r.WaterAccess, r.RoadAccess,
		)
		if err != nil {
			return fmt.Errorf("failed to insert land data for %q: %w", r.ParcelNumber, err)
		}

		acres := models.AcresFromSqft(r.AreaSqft)
		var pricePerAcre *float64
		if acres > 0 {
			ppa := r.EstimatedValue / acres
			pricePerAcre = &ppa
		}
		_, err = conn.Exec(ctx, `
			INSERT INTO valuations (parcel_id, estimated_value, price_per_acre, valuation_date, source)
			VALUES ($1, $2, $3, $4, 'seed')`,
			parcelID, r.EstimatedValue, pricePerAcre, r.ValuationDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert valuation for %q: %w", r.ParcelNumber, err)
		}
	}

	return nil
}

func verifyImport(conn *pgx.Conn, expectedCount int) error {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM parcels").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom string
	err = conn.QueryRow(context.Background(), "SELECT ST_AsText(ST_Centroid(geom)) FROM parcels LIMIT 1").Scan(&geom)
	if err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	fmt.Printf("Sample centroid: %s\n", geom)
	return nil
}
