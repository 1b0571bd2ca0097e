package service

import "github.com/emarabot/plaza-os/internal/core/domain"

// ViewRouter is the session's view state machine:
//
//	LOADING ─boot→ LOGGED_OUT ─login→ GUEST | RESIDENT(SERVICES) | MANAGER
//	RESIDENT(tab) ─select→ RESIDENT(tab')
//	any authenticated ─logout→ LOGGED_OUT
//
// A pending login is a flag on LOGGED_OUT, not a state of its own.
// ViewRouter is not safe for concurrent use; SessionStore serialises it.
type ViewRouter struct {
	booted  bool
	role    domain.Role
	tab     domain.Tab
	pending bool
}

func NewViewRouter() *ViewRouter {
	return &ViewRouter{role: domain.RoleNone, tab: domain.TabServices}
}

// Boot leaves LOADING. It reports false when already booted.
func (r *ViewRouter) Boot() bool {
	if r.booted {
		return false
	}
	r.booted = true
	return true
}

// BeginLogin raises the pending flag. Logins are only accepted on a booted,
// logged-out session with no other attempt in flight.
func (r *ViewRouter) BeginLogin() error {
	switch {
	case !r.booted:
		return domain.ErrSessionBooting
	case r.role != domain.RoleNone:
		return domain.ErrAlreadyAuthenticated
	case r.pending:
		return domain.ErrRequestPending
	}
	r.pending = true
	return nil
}

// EndLogin resolves a pending attempt. RoleNone means the attempt failed and
// the session stays logged out.
func (r *ViewRouter) EndLogin(role domain.Role) {
	r.pending = false
	if role == domain.RoleNone || role == "" {
		return
	}
	r.role = role
	r.tab = domain.TabServices
}

// SelectTab switches the resident sub-screen. For any other role it is a
// no-op and reports false.
func (r *ViewRouter) SelectTab(tab domain.Tab) bool {
	if r.role != domain.RoleResident || !tab.Valid() {
		return false
	}
	r.tab = tab
	return true
}

// Logout returns to LOGGED_OUT with the tab reset. Calling it again changes
// nothing.
func (r *ViewRouter) Logout() {
	r.role = domain.RoleNone
	r.tab = domain.TabServices
}

func (r *ViewRouter) State() domain.Screen {
	if !r.booted {
		return domain.ScreenLoading
	}
	return domain.ScreenFor(r.role)
}

func (r *ViewRouter) View() domain.ViewState {
	state := r.State()
	v := domain.ViewState{
		Role:    r.role,
		State:   state,
		Screen:  state,
		Pending: r.pending,
	}
	if r.pending && state == domain.ScreenLoggedOut {
		v.Screen = domain.ScreenLoading
	}
	if r.role == domain.RoleResident {
		v.Tab = r.tab
	}
	return v
}
