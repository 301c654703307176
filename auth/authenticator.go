package auth

import (
	"crypto/subtle"
	"ledger-lab/errors"
	"time"
)

// Authenticator exchanges the operator credentials for an access token.
// The ledger knows a single operator, configured with an Argon2id hash.
type Authenticator struct {
	operator     string
	passwordHash string
	issuer       *TokenIssuer
}

func NewAuthenticator(operator, passwordHash string, issuer *TokenIssuer) *Authenticator {
	return &Authenticator{operator: operator, passwordHash: passwordHash, issuer: issuer}
}

func (a *Authenticator) Login(operator, password string) (string, time.Time, error) {
	sameOperator := subtle.ConstantTimeCompare([]byte(operator), []byte(a.operator)) == 1
	ok, err := ComparePassword(password, a.passwordHash)
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok || !sameOperator {
		return "", time.Time{}, errors.ErrInvalidCredentials
	}
	return a.issuer.Issue(a.operator)
}

func (a *Authenticator) Issuer() *TokenIssuer {
	return a.issuer
}
