package domain

// TicketStatus is the progress of a maintenance ticket.
type TicketStatus string

const (
	TicketPending    TicketStatus = "PENDING"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
)

// Ticket is a maintenance job shown on the manager dashboard.
type Ticket struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Severity Severity     `json:"severity"`
	Status   TicketStatus `json:"status"`
	Area     string       `json:"area"`
}

func SeedTickets() []Ticket {
	return []Ticket{
		{ID: "T-101", Title: "HVAC Noise", Severity: SeverityMedium, Status: TicketInProgress, Area: "Penthouse B"},
		{ID: "T-102", Title: "Lobby Spill", Severity: SeverityLow, Status: TicketResolved, Area: "Main Entrance"},
		{ID: "T-103", Title: "Elevator 3 Jam", Severity: SeverityCritical, Status: TicketPending, Area: "Service Core"},
	}
}
