package domain

import (
	"fmt"
	"regexp"
)

// GuestKeyPattern is the shape of every issued visitor pass, e.g. G-8821-X.
var GuestKeyPattern = regexp.MustCompile(`^G-\d{4}-[A-Z]$`)

// GuestKey is an opaque visitor access token.
type GuestKey string

// NewGuestKey formats a key from a 4-digit number and an uppercase letter.
func NewGuestKey(number int, letter rune) GuestKey {
	return GuestKey(fmt.Sprintf("G-%04d-%c", number, letter))
}

func (k GuestKey) String() string { return string(k) }
