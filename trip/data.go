package trip

// Static lookup tables for a handful of well-known European cycling routes.
// Keys are lowercased; lookups normalize their inputs the same way.

type routeKey struct{ start, end string }

type routeEntry struct {
	distanceKM  float64
	waypoints   []string
	description string
}

var routeData = map[routeKey]routeEntry{
	{"amsterdam", "copenhagen"}: {
		distanceKM:  680,
		waypoints:   []string{"Amsterdam", "Bremen", "Hamburg", "Lübeck", "Copenhagen"},
		description: "Classic North Sea route through Netherlands and Germany",
	},
	{"amsterdam", "bruges"}: {
		distanceKM:  230,
		waypoints:   []string{"Amsterdam", "Rotterdam", "Antwerp", "Bruges"},
		description: "Flat coastal route through Netherlands and Belgium",
	},
	{"paris", "amsterdam"}: {
		distanceKM:  520,
		waypoints:   []string{"Paris", "Amiens", "Lille", "Brussels", "Antwerp", "Amsterdam"},
		description: "Route through northern France, Belgium, and Netherlands",
	},
}

type lodgingEntry struct {
	name      string
	kind      string
	price     float64
	amenities []string
	rating    float64
}

var accommodationData = map[string][]lodgingEntry{
	"bremen": {
		{name: "Bremen City Camping", kind: "camping", price: 15, amenities: []string{"showers", "wifi", "bike_storage"}, rating: 4.2},
		{name: "Bremen Backpackers Hostel", kind: "hostel", price: 28, amenities: []string{"wifi", "kitchen", "bike_storage"}, rating: 4.5},
	},
	"hamburg": {
		{name: "Hamburg Beach Camp", kind: "camping", price: 18, amenities: []string{"showers", "wifi", "laundry"}, rating: 4.0},
		{name: "St. Pauli Hostel", kind: "hostel", price: 32, amenities: []string{"wifi", "bar", "bike_storage"}, rating: 4.6},
	},
	"lübeck": {
		{name: "Lübeck Campsite", kind: "camping", price: 16, amenities: []string{"showers", "bike_storage"}, rating: 3.9},
		{name: "Altstadt Hostel", kind: "hostel", price: 30, amenities: []string{"wifi", "kitchen", "bike_rental"}, rating: 4.4},
	},
}

type weatherKey struct{ month, location string }

type weatherEntry struct {
	high, low, precip float64
	conditions        string
}

var weatherData = map[weatherKey]weatherEntry{
	{"june", "amsterdam"}:  {high: 20, low: 12, precip: 68, conditions: "Mild with occasional rain"},
	{"june", "copenhagen"}: {high: 20, low: 11, precip: 51, conditions: "Pleasant with light winds"},
	{"june", "hamburg"}:    {high: 21, low: 12, precip: 72, conditions: "Warm with occasional showers"},
}

type elevationEntry struct {
	gain, loss, max float64
	difficulty      string
}

var elevationData = map[string]elevationEntry{
	"amsterdam-bremen": {gain: 120, loss: 110, max: 45, difficulty: "easy"},
	"bremen-hamburg":   {gain: 180, loss: 170, max: 65, difficulty: "easy"},
	"hamburg-lübeck":   {gain: 240, loss: 230, max: 82, difficulty: "moderate"},
	"lübeck-copenhagen": {gain: 350, loss: 340, max: 125, difficulty: "moderate"},
}

var difficultyDescriptions = map[string]string{
	"easy":        "Mostly flat terrain with gentle rolling hills",
	"moderate":    "Some hills with moderate climbs, manageable for most cyclists",
	"challenging": "Significant elevation changes with steep sections",
	"difficult":   "Very hilly terrain with long, steep climbs",
}
