package domain

// Tab is a resident sub-screen. It has no meaning for other roles.
type Tab string

const (
	TabServices  Tab = "SERVICES"
	TabConcierge Tab = "CONCIERGE"
	TabCommunity Tab = "COMMUNITY"
	TabParking   Tab = "PARKING"
	TabLens      Tab = "LENS"
)

// Valid reports whether t is one of the known resident tabs.
func (t Tab) Valid() bool {
	switch t {
	case TabServices, TabConcierge, TabCommunity, TabParking, TabLens:
		return true
	}
	return false
}

// Screen is the top-level view a session renders.
type Screen string

const (
	ScreenLoading   Screen = "LOADING"
	ScreenLoggedOut Screen = "LOGGED_OUT"
	ScreenGuest     Screen = "GUEST"
	ScreenResident  Screen = "RESIDENT"
	ScreenManager   Screen = "MANAGER"
)

// ScreenFor maps an authenticated role to its home screen.
func ScreenFor(role Role) Screen {
	switch role {
	case RoleResident:
		return ScreenResident
	case RoleManager:
		return ScreenManager
	case RoleGuest:
		return ScreenGuest
	default:
		return ScreenLoggedOut
	}
}

// ViewState is what the client should render right now.
//
// State is the settled router state; Screen is what is displayed, which is
// LOADING while the session boots or while a login attempt is pending on a
// logged-out session. Tab is only set for residents.
type ViewState struct {
	Role    Role   `json:"role"`
	State   Screen `json:"state"`
	Screen  Screen `json:"screen"`
	Tab     Tab    `json:"tab,omitempty"`
	Pending bool   `json:"pending"`
}
