package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/emarabot/plaza-os/internal/core/domain"
	"github.com/emarabot/plaza-os/internal/core/ports"
)

// CredentialRules is the static part of what a login is checked against.
type CredentialRules struct {
	AdminUsername string
	Residents     []string
	// Passphrase is shared by residents and the administrator. Only its bcrypt
	// hash is retained.
	Passphrase string
	// HashCost is the bcrypt cost; zero selects bcrypt.DefaultCost.
	HashCost int
}

// CredentialChecker maps a login attempt to an identity.
type CredentialChecker interface {
	Validate(kind domain.LoginKind, creds domain.Credentials) (domain.Identity, error)
}

// CredentialValidator accepts the administrator and allow-listed residents
// holding the shared passphrase, and guests holding any issued access key.
// It never mutates state and is safe for concurrent use.
type CredentialValidator struct {
	adminUsername  string
	residents      map[string]struct{}
	passphraseHash []byte
	keys           ports.GuestKeyStore
}

func NewCredentialValidator(rules CredentialRules, keys ports.GuestKeyStore) (*CredentialValidator, error) {
	if rules.Passphrase == "" {
		return nil, errors.New("credential validator: passphrase is required")
	}
	cost := rules.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rules.Passphrase), cost)
	if err != nil {
		return nil, err
	}

	residents := make(map[string]struct{}, len(rules.Residents))
	for _, name := range rules.Residents {
		if name != "" {
			residents[name] = struct{}{}
		}
	}

	return &CredentialValidator{
		adminUsername:  rules.AdminUsername,
		residents:      residents,
		passphraseHash: hash,
		keys:           keys,
	}, nil
}

// Validate returns the identity the credentials authenticate, or
// domain.ErrInvalidCredentials. Empty fields are ordinary rejections.
// Guest access codes are compared exactly; callers normalise case.
func (v *CredentialValidator) Validate(kind domain.LoginKind, creds domain.Credentials) (domain.Identity, error) {
	switch kind {
	case domain.LoginAdmin:
		if creds.Username != "" && creds.Username == v.adminUsername && v.passphraseMatches(creds.Password) {
			return domain.Identity{Name: domain.AdministratorName, Role: domain.RoleManager}, nil
		}
	case domain.LoginResident:
		if _, ok := v.residents[creds.Username]; ok && v.passphraseMatches(creds.Password) {
			return domain.Identity{Name: creds.Username, Role: domain.RoleResident}, nil
		}
	case domain.LoginGuest:
		if creds.AccessCode != "" && v.keys.Contains(domain.GuestKey(creds.AccessCode)) {
			return domain.Identity{Name: domain.VisitorName, Role: domain.RoleGuest}, nil
		}
	}
	return domain.Anonymous(), domain.ErrInvalidCredentials
}

func (v *CredentialValidator) passphraseMatches(password string) bool {
	if password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.passphraseHash, []byte(password)) == nil
}
