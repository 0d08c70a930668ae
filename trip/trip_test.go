package trip

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tripmesh/tool"
)

// -------------------- get_route --------------------

func TestGetRoute_KnownRoutes(t *testing.T) {
	tests := []struct {
		start, end    string
		distanceKM    float64
		waypoints     []string
		estimatedDays int // with the default 80 km/day
	}{
		{"Amsterdam", "Copenhagen", 680, []string{"Amsterdam", "Bremen", "Hamburg", "Lübeck", "Copenhagen"}, 8},
		{"Amsterdam", "Bruges", 230, []string{"Amsterdam", "Rotterdam", "Antwerp", "Bruges"}, 2},
		{"Paris", "Amsterdam", 520, []string{"Paris", "Amiens", "Lille", "Brussels", "Antwerp", "Amsterdam"}, 6},
	}

	for _, tt := range tests {
		route := GetRoute(tt.start, tt.end, 80)
		assert.Equal(t, tt.distanceKM, route.DistanceKM, "%s-%s", tt.start, tt.end)
		assert.Equal(t, tt.waypoints, route.Waypoints)
		assert.Equal(t, tt.estimatedDays, route.EstimatedDays)
	}
}

func TestGetRoute_CaseInsensitiveLookup(t *testing.T) {
	route := GetRoute("AMSTERDAM", "copenhagen", 80)
	assert.Equal(t, 680.0, route.DistanceKM)
}

func TestGetRoute_EstimatedDaysFormula(t *testing.T) {
	// floor(680 / 100) == 6
	assert.Equal(t, 6, GetRoute("Amsterdam", "Copenhagen", 100).EstimatedDays)
	// Never below one day, even for absurd daily distances.
	assert.Equal(t, 1, GetRoute("Amsterdam", "Bruges", 1000).EstimatedDays)
}

func TestGetRoute_UnknownFallbackDeterministic(t *testing.T) {
	a := GetRoute("Oslo", "Helsinki", 80)
	b := GetRoute("Oslo", "Helsinki", 80)
	assert.Equal(t, a, b)

	wantDistance := float64(400 + (utf8.RuneCountInString("Oslo")+utf8.RuneCountInString("Helsinki"))*10)
	assert.Equal(t, wantDistance, a.DistanceKM)
	assert.Equal(t, []string{"Oslo", "Mid-point near Oslo", "Helsinki"}, a.Waypoints)
	assert.Contains(t, a.Description, "Oslo")
	assert.Contains(t, a.Description, "Helsinki")
}

// -------------------- find_accommodation --------------------

func TestFindAccommodation_KnownLocation(t *testing.T) {
	results := FindAccommodation("Bremen", "any", 5)
	require.Len(t, results, 2)
	assert.Equal(t, "Bremen City Camping", results[0].Name)
	assert.Equal(t, "Bremen", results[0].Location)
	assert.Equal(t, 1.5, results[0].DistanceFromRouteKM)
}

func TestFindAccommodation_TypeFilter(t *testing.T) {
	results := FindAccommodation("Bremen", "hostel", 5)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "hostel", r.Type)
	}
}

func TestFindAccommodation_UnknownLocationFallback(t *testing.T) {
	results := FindAccommodation("Atlantis", "any", 5)
	require.GreaterOrEqual(t, len(results), 1)
	assert.Contains(t, results[0].Name, "Atlantis")
}

func TestFindAccommodation_FilterWithNoMatchesFallsBack(t *testing.T) {
	// Bremen has no hotels in the table; the synthesized fallback kicks in
	// rather than returning an empty list.
	results := FindAccommodation("Bremen", "hotel", 5)
	assert.NotEmpty(t, results)
}

// -------------------- get_weather --------------------

func TestGetWeather_KnownLocation(t *testing.T) {
	w := GetWeather("Amsterdam", "June")
	assert.Equal(t, 20.0, w.AvgTempHigh)
	assert.Equal(t, 12.0, w.AvgTempLow)
	assert.Equal(t, 68.0, w.PrecipitationMM)
	assert.Equal(t, "Mild with occasional rain", w.Conditions)
	assert.Equal(t, "Good - mild temperatures ideal for cycling", w.CyclingSuitability)
}

func TestGetWeather_UnknownFallbackDeterministic(t *testing.T) {
	a := GetWeather("Reykjavik", "March")
	b := GetWeather("Reykjavik", "March")
	assert.Equal(t, a, b)
	assert.Equal(t, "Generally pleasant cycling weather", a.Conditions)
	assert.NotEmpty(t, a.CyclingSuitability)
}

func TestGetWeather_RainGearSuitability(t *testing.T) {
	// An 11-rune location yields fallback precipitation 50+33 = 83 mm,
	// crossing the rain-gear threshold.
	w := GetWeather("Fredrikstad", "March")
	assert.Equal(t, 83.0, w.PrecipitationMM)
	assert.Equal(t, "Good but bring rain gear - expect wet days", w.CyclingSuitability)
}

// -------------------- get_elevation_profile --------------------

func TestGetElevationProfile_KnownSegment(t *testing.T) {
	p := GetElevationProfile("Hamburg", "Lübeck")
	assert.Equal(t, 240.0, p.TotalElevationGainM)
	assert.Equal(t, 230.0, p.TotalElevationLossM)
	assert.Equal(t, 82.0, p.MaxElevationM)
	assert.Equal(t, "moderate", p.DifficultyRating)
	assert.Equal(t, difficultyDescriptions["moderate"], p.Description)
	assert.Equal(t, "Hamburg to Lübeck", p.Location)
}

func TestGetElevationProfile_UnknownFallback(t *testing.T) {
	a := GetElevationProfile("Oslo", "Bergen")
	b := GetElevationProfile("Oslo", "Bergen")
	assert.Equal(t, a, b)

	baseGain := float64(150 + (utf8.RuneCountInString("Oslo")+utf8.RuneCountInString("Bergen"))*5)
	assert.Equal(t, baseGain, a.TotalElevationGainM)
	assert.Equal(t, baseGain-20, a.TotalElevationLossM)
	assert.Equal(t, "moderate", a.DifficultyRating)
}

// -------------------- get_points_of_interest --------------------

func TestGetPointsOfInterest_All(t *testing.T) {
	pois := GetPointsOfInterest("Bremen", "any")
	require.Len(t, pois, 3)
	for _, p := range pois {
		assert.Equal(t, "Bremen", p.Location)
	}
}

func TestGetPointsOfInterest_TypeFilter(t *testing.T) {
	pois := GetPointsOfInterest("Bremen", "scenic")
	require.Len(t, pois, 1)
	assert.Equal(t, "scenic", pois[0].Type)

	assert.Empty(t, GetPointsOfInterest("Bremen", "cultural"))
}

// -------------------- catalog / config --------------------

func TestToolRegistry_CatalogOrder(t *testing.T) {
	reg := NewToolRegistry()
	defs := reg.Definitions()
	require.Len(t, defs, 5)

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{
		ToolGetRoute,
		ToolFindAccommodation,
		ToolGetWeather,
		ToolGetElevationProfile,
		ToolGetPointsOfInterest,
	}, names)

	for _, d := range defs {
		assert.NotEmpty(t, d.Description)
		assert.Equal(t, "object", d.Parameters["type"])
	}
}

func TestPlannerConfig_ExecuteTool(t *testing.T) {
	cfg := NewPlannerConfig()

	result, err := cfg.ExecuteTool(context.Background(), ToolGetRoute, map[string]any{
		"start": "Amsterdam",
		"end":   "Copenhagen",
	})
	require.NoError(t, err)

	route, ok := result.(Route)
	require.True(t, ok)
	assert.Equal(t, 680.0, route.DistanceKM)
	assert.Equal(t, 8, route.EstimatedDays) // default daily distance applied
}

func TestPlannerConfig_ExecuteUnknownTool(t *testing.T) {
	cfg := NewPlannerConfig()

	_, err := cfg.ExecuteTool(context.Background(), "teleport", map[string]any{})
	assert.ErrorIs(t, err, tool.ErrUnknownTool)
}

func TestPlannerConfig_ValidationErrorSurfaced(t *testing.T) {
	cfg := NewPlannerConfig()

	_, err := cfg.ExecuteTool(context.Background(), ToolGetRoute, map[string]any{"start": "Amsterdam"})
	require.Error(t, err)
	toolErr, ok := err.(*tool.ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestPlannerConfig_EnumRejected(t *testing.T) {
	cfg := NewPlannerConfig()

	_, err := cfg.ExecuteTool(context.Background(), ToolFindAccommodation, map[string]any{
		"location": "Bremen",
		"type":     "igloo",
	})
	require.Error(t, err)
	toolErr, ok := err.(*tool.ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}
