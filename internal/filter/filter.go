// Package filter compiles structured parcel search filters into parameterized
// SQL condition fragments with sequential placeholder indices.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxLimit caps a single search page.
	MaxLimit = 500
	// DefaultLimit is used when a caller supplies no limit.
	DefaultLimit = 100
)

// SearchFilter is the full set of optional search constraints. Nil pointer
// fields and empty slices emit no condition at all; in particular an empty
// set field means "no constraint", not "match nothing".
type SearchFilter struct {
	MinAreaAcres    *float64 `form:"min_area_acres" json:"min_area_acres,omitempty"`
	MaxAreaAcres    *float64 `form:"max_area_acres" json:"max_area_acres,omitempty"`
	MinPrice        *float64 `form:"min_price" json:"min_price,omitempty"`
	MaxPrice        *float64 `form:"max_price" json:"max_price,omitempty"`
	ZoningCodes     []string `form:"zoning_codes" json:"zoning_codes,omitempty"`
	SoilTypes       []string `form:"soil_types" json:"soil_types,omitempty"`
	CroplandClasses []string `form:"cropland_classes" json:"cropland_classes,omitempty"`
	WaterAccess     *bool    `form:"water_access" json:"water_access,omitempty"`
	RoadAccess      *bool    `form:"road_access" json:"road_access,omitempty"`
	City            *string  `form:"city" json:"city,omitempty"`
	Limit           int      `form:"limit" json:"limit"`
	Offset          int      `form:"offset" json:"offset"`
}

// Validate checks range coherence. It does not mutate the filter; callers run
// Normalize afterwards to apply limit/offset defaults.
func (f *SearchFilter) Validate() error {
	if f.MinAreaAcres != nil && *f.MinAreaAcres < 0 {
		return fmt.Errorf("min_area_acres must be non-negative")
	}
	if f.MinAreaAcres != nil && f.MaxAreaAcres != nil && *f.MinAreaAcres > *f.MaxAreaAcres {
		return fmt.Errorf("min_area_acres exceeds max_area_acres")
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("min_price must be non-negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("min_price exceeds max_price")
	}
	if f.Limit < 0 || f.Limit > MaxLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}
	return nil
}

// Normalize applies pagination defaults: a zero limit becomes DefaultLimit.
func (f *SearchFilter) Normalize() {
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
}

// Builder accumulates WHERE-clause fragments and their bound values, assigning
// placeholder indices sequentially from 1. A fragment and its values are always
// appended together, so len(fragments) growth tracks len(args) growth and
// indices never drift.
type Builder struct {
	fragments []string
	args      []any
	next      int
}

// NewBuilder returns a Builder whose first placeholder is $1.
func NewBuilder() *Builder {
	return &Builder{next: 1}
}

// add appends one fragment bound to exactly one value.
func (b *Builder) add(template string, value any) {
	b.fragments = append(b.fragments, strings.ReplaceAll(template, "?", "$"+strconv.Itoa(b.next)))
	b.args = append(b.args, value)
	b.next++
}

// addSet appends an "= ANY(?)" membership fragment bound to a string slice.
func (b *Builder) addSet(column string, values []string) {
	b.add(column+" = ANY(?)", values)
}

// Compile turns a filter into its ordered fragment list. The filter must
// already be validated; Compile never fails, it only emits conditions for
// fields that are present.
func Compile(f *SearchFilter) *Builder {
	b := NewBuilder()
	if f.MinAreaAcres != nil {
		b.add("p.area_acres >= ?", *f.MinAreaAcres)
	}
	if f.MaxAreaAcres != nil {
		b.add("p.area_acres <= ?", *f.MaxAreaAcres)
	}
	if f.MinPrice != nil {
		b.add("v.estimated_value >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.add("v.estimated_value <= ?", *f.MaxPrice)
	}
	if len(f.ZoningCodes) > 0 {
		b.addSet("ld.zoning_code", f.ZoningCodes)
	}
	if len(f.SoilTypes) > 0 {
		b.addSet("ld.soil_type", f.SoilTypes)
	}
	if len(f.CroplandClasses) > 0 {
		b.addSet("ld.cropland_class", f.CroplandClasses)
	}
	if f.WaterAccess != nil {
		b.add("ld.water_access = ?", *f.WaterAccess)
	}
	if f.RoadAccess != nil {
		b.add("ld.road_access = ?", *f.RoadAccess)
	}
	if f.City != nil && *f.City != "" {
		b.add("p.city ILIKE ?", "%"+*f.City+"%")
	}
	return b
}

// Where renders the accumulated fragments as an AND-joined WHERE clause, or an
// empty string when no conditions were emitted.
func (b *Builder) Where() string {
	if len(b.fragments) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.fragments, " AND ")
}

// Args returns the bound values in fragment order.
func (b *Builder) Args() []any {
	return b.args
}

// Fragments returns the rendered condition fragments in order.
func (b *Builder) Fragments() []string {
	return b.fragments
}

// Next returns the next unused placeholder index, for callers appending their
// own LIMIT/OFFSET placeholders after the compiled conditions.
func (b *Builder) Next() int {
	return b.next
}

// Placeholder renders $n for an index handed out by Next.
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
