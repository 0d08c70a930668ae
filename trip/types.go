package trip

// Route is the result of a get_route lookup.
type Route struct {
	Start         string   `json:"start"`
	End           string   `json:"end"`
	DistanceKM    float64  `json:"distance_km"`
	EstimatedDays int      `json:"estimated_days"`
	Waypoints     []string `json:"waypoints"`
	Description   string   `json:"description"`
}

// Accommodation is a single lodging option returned by find_accommodation.
type Accommodation struct {
	Name                string   `json:"name"`
	Type                string   `json:"type"` // camping, hostel, hotel
	Location            string   `json:"location"`
	PricePerNight       float64  `json:"price_per_night"`
	DistanceFromRouteKM float64  `json:"distance_from_route_km"`
	Amenities           []string `json:"amenities"`
	Rating              float64  `json:"rating,omitempty"`
}

// Weather is the result of a get_weather lookup.
type Weather struct {
	Location           string  `json:"location"`
	Month              string  `json:"month"`
	AvgTempHigh        float64 `json:"avg_temp_high"`
	AvgTempLow         float64 `json:"avg_temp_low"`
	PrecipitationMM    float64 `json:"precipitation_mm"`
	Conditions         string  `json:"conditions"`
	CyclingSuitability string  `json:"cycling_suitability"`
}

// ElevationProfile is the result of a get_elevation_profile lookup.
type ElevationProfile struct {
	Location              string  `json:"location"`
	TotalElevationGainM   float64 `json:"total_elevation_gain_m"`
	TotalElevationLossM   float64 `json:"total_elevation_loss_m"`
	MaxElevationM         float64 `json:"max_elevation_m"`
	DifficultyRating      string  `json:"difficulty_rating"` // easy, moderate, challenging, difficult
	Description           string  `json:"description"`
}

// PointOfInterest is a single entry returned by get_points_of_interest.
type PointOfInterest struct {
	Name                string  `json:"name"`
	Type                string  `json:"type"` // historical, scenic, cultural, food
	Location            string  `json:"location"`
	Description         string  `json:"description"`
	DistanceFromRouteKM float64 `json:"distance_from_route_km"`
}
