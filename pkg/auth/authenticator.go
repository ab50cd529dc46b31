package auth

import (
	"errors"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator admits an email from a fixed allow-list when the password
// matches the single hash shared by every allowed address.
type Authenticator struct {
	allowed      map[string]struct{}
	passwordHash string
}

func NewAuthenticator(allowedEmails []string, passwordHash string) *Authenticator {
	allowed := make(map[string]struct{}, len(allowedEmails))
	for _, email := range allowedEmails {
		email = strings.TrimSpace(email)
		if email != "" {
			allowed[email] = struct{}{}
		}
	}

	return &Authenticator{
		allowed:      allowed,
		passwordHash: passwordHash,
	}
}

// Authenticate returns ErrInvalidCredentials for an unknown email and for a
// wrong password alike. The hash is verified in both cases.
func (a *Authenticator) Authenticate(email, password string) error {
	_, listed := a.allowed[email]
	matches := VerifyPassword(a.passwordHash, password)

	if !listed || !matches {
		return ErrInvalidCredentials
	}
	return nil
}

// Allows adapts Authenticate to fiber's basicauth Authorizer signature.
func (a *Authenticator) Allows(email, password string) bool {
	return a.Authenticate(email, password) == nil
}
