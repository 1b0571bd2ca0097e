package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/emarabot/plaza-os/internal/core/service"
)

// Context keys set by Session.
const (
	SessionKey   = "session"
	SessionIDKey = "session_id"
)

// SessionLookup resolves a session id to a live session.
type SessionLookup interface {
	Get(id string) (*service.Session, error)
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token for session id sid.
func IssueToken(secret, sid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Session validates the bearer token and injects the session it names.
// The token carries no role; handlers read it from the session.
func Session(jwtSecret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims sessionClaims
			tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (any, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid || claims.SessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sess, err := sessions.Get(claims.SessionID)
			if err != nil {
				return err
			}

			sess.Touch()
			c.Set(SessionKey, sess)
			c.Set(SessionIDKey, sess.ID)
			return next(c)
		}
	}
}

var errNoSession = errors.New("middleware: no session in context")

// SessionFrom returns the session injected by Session.
func SessionFrom(c echo.Context) (*service.Session, error) {
	sess, ok := c.Get(SessionKey).(*service.Session)
	if !ok || sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}
