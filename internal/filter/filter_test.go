package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// placeholderIndices extracts every $n from the rendered fragments in order.
func placeholderIndices(b *Builder) []int {
	var indices []int
	for _, frag := range b.Fragments() {
		for _, m := range placeholderRe.FindAllStringSubmatch(frag, -1) {
			n, _ := strconv.Atoi(m[1])
			indices = append(indices, n)
		}
	}
	return indices
}

func TestCompile_EmptyFilter(t *testing.T) {
	b := Compile(&SearchFilter{})

	assert.Empty(t, b.Fragments())
	assert.Empty(t, b.Args())
	assert.Equal(t, "", b.Where())
	assert.Equal(t, 1, b.Next())
}

func TestCompile_AllFields(t *testing.T) {
	f := &SearchFilter{
		MinAreaAcres:    floatPtr(10),
		MaxAreaAcres:    floatPtr(100),
		MinPrice:        floatPtr(50000),
		MaxPrice:        floatPtr(500000),
		ZoningCodes:     []string{"AGRICULTURAL", "RESIDENTIAL"},
		SoilTypes:       []string{"LOAM"},
		CroplandClasses: []string{"PRIME"},
		WaterAccess:     boolPtr(true),
		RoadAccess:      boolPtr(false),
		City:            strPtr("Fort Worth"),
	}

	b := Compile(f)

	require.Len(t, b.Fragments(), 10)
	require.Len(t, b.Args(), 10)
	assert.Equal(t, 11, b.Next())

	// Placeholder indices must be exactly 1..N with no gaps or repeats.
	indices := placeholderIndices(b)
	require.Len(t, indices, 10)
	for i, n := range indices {
		assert.Equal(t, i+1, n)
	}

	// Values land in fragment order.
	assert.Equal(t, 10.0, b.Args()[0])
	assert.Equal(t, 100.0, b.Args()[1])
	assert.Equal(t, []string{"AGRICULTURAL", "RESIDENTIAL"}, b.Args()[4])
	assert.Equal(t, true, b.Args()[7])
	assert.Equal(t, "%Fort Worth%", b.Args()[9])
}

func TestCompile_IndicesSequentialForAnySubset(t *testing.T) {
	// Sparse filters must still produce dense 1..N indices.
	tests := []struct {
		name string
		f    SearchFilter
		want int
	}{
		{name: "single range bound", f: SearchFilter{MaxPrice: floatPtr(100)}, want: 1},
		{name: "range plus set", f: SearchFilter{MinAreaAcres: floatPtr(1), SoilTypes: []string{"CLAY"}}, want: 2},
		{name: "flags only", f: SearchFilter{WaterAccess: boolPtr(true), RoadAccess: boolPtr(true)}, want: 2},
		{name: "city only", f: SearchFilter{City: strPtr("austin")}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Compile(&tt.f)
			require.Len(t, b.Fragments(), tt.want)
			require.Len(t, b.Args(), tt.want)
			assert.Equal(t, tt.want+1, b.Next())

			indices := placeholderIndices(b)
			for i, n := range indices {
				assert.Equal(t, i+1, n)
			}
		})
	}
}

func TestCompile_EmptySetsAndEmptyCityOmitted(t *testing.T) {
	// An explicitly empty set means "no constraint", not "match nothing".
	f := &SearchFilter{
		ZoningCodes:     []string{},
		SoilTypes:       []string{},
		CroplandClasses: []string{},
		City:            strPtr(""),
	}

	b := Compile(f)

	assert.Empty(t, b.Fragments())
	assert.Equal(t, "", b.Where())
}

func TestCompile_WhereRendering(t *testing.T) {
	f := &SearchFilter{
		MinAreaAcres: floatPtr(10),
		ZoningCodes:  []string{"AGRICULTURAL"},
	}

	b := Compile(f)

	assert.Equal(t, " WHERE p.area_acres >= $1 AND ld.zoning_code = ANY($2)", b.Where())
	assert.Equal(t, []any{10.0, []string{"AGRICULTURAL"}}, b.Args())
}

func TestCompile_Deterministic(t *testing.T) {
	f := &SearchFilter{
		MinPrice:    floatPtr(1000),
		ZoningCodes: []string{"COMMERCIAL"},
		City:        strPtr("dallas"),
	}

	first := fmt.Sprintf("%v|%v", Compile(f).Fragments(), Compile(f).Args())
	second := fmt.Sprintf("%v|%v", Compile(f).Fragments(), Compile(f).Args())
	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		f           SearchFilter
		expectError bool
	}{
		{name: "empty filter", f: SearchFilter{}, expectError: false},
		{name: "coherent ranges", f: SearchFilter{MinAreaAcres: floatPtr(1), MaxAreaAcres: floatPtr(10), MinPrice: floatPtr(100), MaxPrice: floatPtr(200)}, expectError: false},
		{name: "min area exceeds max", f: SearchFilter{MinAreaAcres: floatPtr(10), MaxAreaAcres: floatPtr(1)}, expectError: true},
		{name: "min price exceeds max", f: SearchFilter{MinPrice: floatPtr(200), MaxPrice: floatPtr(100)}, expectError: true},
		{name: "negative min area", f: SearchFilter{MinAreaAcres: floatPtr(-1)}, expectError: true},
		{name: "negative min price", f: SearchFilter{MinPrice: floatPtr(-1)}, expectError: true},
		{name: "limit at cap", f: SearchFilter{Limit: MaxLimit}, expectError: false},
		{name: "limit over cap", f: SearchFilter{Limit: MaxLimit + 1}, expectError: true},
		{name: "negative limit", f: SearchFilter{Limit: -1}, expectError: true},
		{name: "negative offset", f: SearchFilter{Offset: -1}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	f := SearchFilter{}
	f.Normalize()
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)

	f = SearchFilter{Limit: 25, Offset: 50}
	f.Normalize()
	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 50, f.Offset)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$1", Placeholder(1))
	assert.Equal(t, "$12", Placeholder(12))
}
