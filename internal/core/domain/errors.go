package domain

import "errors"

// AI gateway failure classes. Gateway errors wrap exactly one of these.
var (
	ErrConfiguration     = errors.New("ai service not configured")
	ErrTransport         = errors.New("ai service unavailable")
	ErrMalformedResponse = errors.New("malformed ai response")
)

var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionLimit         = errors.New("too many open sessions")
	ErrSessionBooting       = errors.New("session is still loading")
	ErrAlreadyAuthenticated = errors.New("session already authenticated")
	ErrNotAuthenticated     = errors.New("session not authenticated")
	ErrRequestPending       = errors.New("request already in progress")
	ErrForbidden            = errors.New("access forbidden")
)

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrNoImage          = errors.New("no image loaded")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrEmptyItem        = errors.New("item is required")
	ErrPostNotFound     = errors.New("post not found")
)
