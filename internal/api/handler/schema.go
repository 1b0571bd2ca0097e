package handler

import (
	"github.com/emarabot/plaza-os/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Session ---

type createSessionResponse struct {
	Token     string           `json:"token"`
	SessionID string           `json:"session_id"`
	View      domain.ViewState `json:"view"`
}

type sessionResponse struct {
	SessionID string           `json:"session_id"`
	Identity  domain.Identity  `json:"identity"`
	View      domain.ViewState `json:"view"`
}

type loginRequest struct {
	Kind       string `json:"kind"        validate:"required,oneof=RESIDENT ADMIN GUEST"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	AccessCode string `json:"access_code"`
}

type selectTabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=SERVICES CONCIERGE COMMUNITY PARKING LENS"`
}

type selectTabResponse struct {
	View    domain.ViewState `json:"view"`
	Applied bool             `json:"applied"`
}

// --- Services ---

type guestKeyResponse struct {
	Key domain.GuestKey `json:"key"`
}

// --- Concierge ---

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// --- Lens ---

type lensModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=ANALYZE EDIT"`
}

type lensProcessRequest struct {
	Instruction string `json:"instruction" validate:"max=500"`
}

// --- Community ---

type draftRequest struct {
	Item    string `json:"item"    validate:"required,max=200"`
	Details string `json:"details" validate:"max=2000"`
}

type draftResponse struct {
	Draft string `json:"draft"`
}

type publishRequest struct {
	Item    string `json:"item"    validate:"required,max=200"`
	Price   string `json:"price"   validate:"max=50"`
	Details string `json:"details" validate:"max=2000"`
}

// --- Dashboard ---

type polishRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type polishResponse struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}
