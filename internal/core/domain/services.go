package domain

// ServiceAction is what happens when a resident opens a service card.
type ServiceAction string

const (
	ActionModal       ServiceAction = "MODAL"
	ActionVisitorPass ServiceAction = "VISITOR_PASS"
	ActionOpenLens    ServiceAction = "OPEN_LENS"
)

// ServiceCard is one entry of the resident services hub.
type ServiceCard struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Action      ServiceAction `json:"action"`
}

func SeedServices() []ServiceCard {
	return []ServiceCard{
		{ID: "RENT", Title: "Pay Rent", Description: "Balance: $4,200.00 due", Action: ActionModal},
		{ID: "POOL", Title: "Book Pool", Description: "Reserve a cabana or lane", Action: ActionModal},
		{ID: "TENNIS", Title: "Tennis Court", Description: "Check court availability", Action: ActionModal},
		{ID: "GUEST", Title: "Visitor Pass", Description: "Generate entry codes", Action: ActionVisitorPass},
		{ID: "MAINTENANCE", Title: "Maintenance", Description: "Report issues via Lens", Action: ActionOpenLens},
	}
}
