package models

import (
	"encoding/json"
	"time"
)

// Conversion factors between the redundant area units. Acres and square meters
// are always derived from square feet.
const (
	SqftPerAcre = 43560.0
	SqmPerSqft  = 0.092903
)

// AcresFromSqft converts an area in square feet to acres.
func AcresFromSqft(sqft float64) float64 {
	return sqft / SqftPerAcre
}

// SqmFromSqft converts an area in square feet to square meters.
func SqmFromSqft(sqft float64) float64 {
	return sqft * SqmPerSqft
}

// Parcel represents a single land parcel: its identifying numbers, redundant area
// measurements, derived centroid, and optional situs address.
type Parcel struct {
	ID           int64    `json:"id"`
	ParcelNumber string   `json:"parcel_number"`
	AreaSqft     float64  `json:"area_sqft"`
	AreaAcres    float64  `json:"area_acres"`
	AreaSqm      float64  `json:"area_sqm"`
	CentroidLat  float64  `json:"centroid_lat"`
	CentroidLng  float64  `json:"centroid_lng"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Zip          *string  `json:"zip,omitempty"`
	OwnerID      *int64   `json:"owner_id,omitempty"`
}

// LandData holds the agricultural and zoning attributes of a parcel. At most one
// record exists per parcel; parcels without one simply have no land attributes.
type LandData struct {
	ParcelID         int64    `json:"parcel_id"`
	SoilType         *string  `json:"soil_type,omitempty"`
	SoilQualityScore *int     `json:"soil_quality_score,omitempty"`
	CroplandClass    *string  `json:"cropland_class,omitempty"`
	ZoningCode       *string  `json:"zoning_code,omitempty"`
	WaterAccess      *bool    `json:"water_access,omitempty"`
	RoadAccess       *bool    `json:"road_access,omitempty"`
	UtilityAccess    *bool    `json:"utility_access,omitempty"`
	WaterDistanceM   *float64 `json:"water_distance_m,omitempty"`
	RoadDistanceM    *float64 `json:"road_distance_m,omitempty"`
}

// Valuation is one appraisal of a parcel at a point in time. A parcel may carry
// many; the one with the latest ValuationDate is the canonical current price.
type Valuation struct {
	ID              int64      `json:"id"`
	ParcelID        int64      `json:"parcel_id"`
	EstimatedValue  float64    `json:"estimated_value"`
	AssessedValue   *float64   `json:"assessed_value,omitempty"`
	MarketValue     *float64   `json:"market_value,omitempty"`
	PricePerAcre    *float64   `json:"price_per_acre,omitempty"`
	PricePerSqft    *float64   `json:"price_per_sqft,omitempty"`
	LastSaleDate    *time.Time `json:"last_sale_date,omitempty"`
	LastSalePrice   *float64   `json:"last_sale_price,omitempty"`
	ConfidenceScore *float64   `json:"confidence_score,omitempty"`
	ValuationDate   time.Time  `json:"valuation_date"`
	Source          *string    `json:"source,omitempty"`
}

// Owner is a party holding one or more parcels.
type Owner struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	OwnerType *string `json:"owner_type,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ParcelRow is the dense attribute shape returned by list and search queries:
// parcel identity and area plus the latest valuation and land attributes flattened
// in. Parcels with no valuation or land data keep the corresponding fields nil.
type ParcelRow struct {
	ID             int64    `json:"id"`
	ParcelNumber   string   `json:"parcel_number"`
	AreaAcres      float64  `json:"area_acres"`
	AreaSqft       float64  `json:"area_sqft"`
	CentroidLat    float64  `json:"centroid_lat"`
	CentroidLng    float64  `json:"centroid_lng"`
	Address        *string  `json:"address,omitempty"`
	City           *string  `json:"city,omitempty"`
	State          *string  `json:"state,omitempty"`
	Zip            *string  `json:"zip,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	PricePerAcre   *float64 `json:"price_per_acre,omitempty"`
	ZoningCode     *string  `json:"zoning_code,omitempty"`
	SoilType       *string  `json:"soil_type,omitempty"`
	CroplandClass  *string  `json:"cropland_class,omitempty"`
	WaterAccess    *bool    `json:"water_access,omitempty"`
	RoadAccess     *bool    `json:"road_access,omitempty"`
}

// ParcelFeature pairs a ParcelRow with the parcel geometry as GeoJSON, simplified
// to suit the requesting zoom level. Geometry is nil when simplification collapses
// the polygon entirely.
type ParcelFeature struct {
	ParcelRow
	Geometry json.RawMessage `json:"geometry"`
}

// ParcelDistance is a ParcelRow annotated with the distance in meters from a query
// point, as returned by near-point lookups.
type ParcelDistance struct {
	ParcelRow
	DistanceMeters float64 `json:"distance_meters"`
}

// ParcelDetail is the full single-parcel shape: the parcel joined with its land
// data, latest valuation, and owner where present.
type ParcelDetail struct {
	Parcel    Parcel     `json:"parcel"`
	LandData  *LandData  `json:"land_data,omitempty"`
	Valuation *Valuation `json:"valuation,omitempty"`
	Owner     *Owner     `json:"owner,omitempty"`
}

// SearchResult is one page of filtered search output together with the pagination
// bookkeeping callers need.
type SearchResult struct {
	Rows    []ParcelRow `json:"rows"`
	Total   int64       `json:"total"`
	HasMore bool        `json:"has_more"`
}

// ZoningCount is one bucket of the zoning breakdown.
type ZoningCount struct {
	ZoningCode string `json:"zoning_code"`
	Count      int64  `json:"count"`
}

// ParcelStats is the dashboard aggregate over the whole parcel set. Price fields
// cover only parcels that have at least one valuation and are zero when none do.
type ParcelStats struct {
	TotalParcels   int64         `json:"total_parcels"`
	TotalAreaAcres float64       `json:"total_area_acres"`
	AvgAreaAcres   float64       `json:"avg_area_acres"`
	AvgPrice       float64       `json:"avg_price"`
	MinPrice       float64       `json:"min_price"`
	MaxPrice       float64       `json:"max_price"`
	ValuedParcels  int64         `json:"valued_parcels"`
	ZoningCounts   []ZoningCount `json:"zoning_breakdown"`
}
