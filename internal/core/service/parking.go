package service

import "github.com/emarabot/plaza-os/internal/core/domain"

const visitorDirections = "Directions to Unit 404: please park in your assigned spot below. Use Elevator Bank B to the 4th Floor."

// ParkingView is the guidance map for one role.
type ParkingView struct {
	Level        string               `json:"level"`
	Visitor      bool                 `json:"visitor"`
	Spots        []domain.ParkingSpot `json:"spots"`
	AssignedSpot string               `json:"assigned_spot,omitempty"`
	Guiding      bool                 `json:"guiding"`
	Directions   string               `json:"directions,omitempty"`
}

// ParkingGuide renders the static level layout. Visitors are guided to the
// assigned guest spot.
type ParkingGuide struct {
	spots     []domain.ParkingSpot
	guestSpot string
}

func NewParkingGuide(spots []domain.ParkingSpot, guestSpot string) *ParkingGuide {
	return &ParkingGuide{spots: spots, guestSpot: guestSpot}
}

func (g *ParkingGuide) View(role domain.Role) ParkingView {
	spots := make([]domain.ParkingSpot, len(g.spots))
	copy(spots, g.spots)

	v := ParkingView{Level: "B1", Spots: spots}
	if len(spots) > 0 {
		v.Level = spots[0].Level
	}
	if role == domain.RoleGuest {
		v.Visitor = true
		v.AssignedSpot = g.guestSpot
		v.Guiding = g.guestSpot != ""
		v.Directions = visitorDirections
	}
	return v
}
