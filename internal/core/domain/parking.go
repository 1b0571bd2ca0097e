package domain

// SpotStatus is the occupancy of a parking spot.
type SpotStatus string

const (
	SpotOccupied  SpotStatus = "OCCUPIED"
	SpotAvailable SpotStatus = "AVAILABLE"
	SpotAssigned  SpotStatus = "ASSIGNED"
)

// SpotType is who a parking spot is reserved for.
type SpotType string

const (
	SpotResident SpotType = "RESIDENT"
	SpotGuest    SpotType = "GUEST"
	SpotEV       SpotType = "EV"
)

// ParkingSpot is one bay on a parking level.
type ParkingSpot struct {
	ID     string     `json:"id"`
	Level  string     `json:"level"`
	Number string     `json:"number"`
	Status SpotStatus `json:"status"`
	Type   SpotType   `json:"type"`
}

// SeedSpots returns the level L1 layout. Spot 105 is the one visitors are
// guided to.
func SeedSpots() []ParkingSpot {
	return []ParkingSpot{
		{ID: "A1", Level: "L1", Number: "101", Status: SpotOccupied, Type: SpotResident},
		{ID: "A2", Level: "L1", Number: "102", Status: SpotOccupied, Type: SpotResident},
		{ID: "A3", Level: "L1", Number: "103", Status: SpotAvailable, Type: SpotResident},
		{ID: "A4", Level: "L1", Number: "104", Status: SpotOccupied, Type: SpotEV},
		{ID: "A5", Level: "L1", Number: "105", Status: SpotAssigned, Type: SpotGuest},
		{ID: "A6", Level: "L1", Number: "106", Status: SpotAvailable, Type: SpotGuest},
		{ID: "A7", Level: "L1", Number: "107", Status: SpotOccupied, Type: SpotResident},
		{ID: "A8", Level: "L1", Number: "108", Status: SpotAvailable, Type: SpotResident},
	}
}
