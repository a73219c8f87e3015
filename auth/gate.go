// Package auth implements the single shared-secret admin gate.
//
// There is no per-user identity: a Credential is authorized when it equals the configured
// AdminSecret. The bearer token handed out on login is the secret itself, so it stays valid
// until the operator changes the configured value.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrEmptySecret        = errors.New("admin secret must not be empty")
	ErrPasswordRequired   = errors.New("password required")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrMissingCredential  = errors.New("missing bearer token")
	ErrForbidden          = errors.New("bearer token rejected")
)

const bearerPrefix = "Bearer "

// Credential is the token a client presents.
type Credential string

// AdminSecret is the configured shared secret.
type AdminSecret string

type Gate struct {
	secret AdminSecret
}

func NewGate(secret AdminSecret) (*Gate, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Gate{secret: secret}, nil
}

// IsAuthorized compares in constant time.
func (g *Gate) IsAuthorized(c Credential) bool {
	return subtle.ConstantTimeCompare([]byte(c), []byte(g.secret)) == 1
}

// Login exchanges a password for the bearer token.
func (g *Gate) Login(password string) (Credential, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	if !g.IsAuthorized(Credential(password)) {
		return "", ErrInvalidCredentials
	}
	return Credential(g.secret), nil
}

// Check validates an Authorization header value. It returns ErrMissingCredential when the
// header is absent or not a bearer token and ErrForbidden when the token does not match.
func (g *Gate) Check(header string) error {
	credential, err := CredentialFromHeader(header)
	if err != nil {
		return err
	}
	if !g.IsAuthorized(credential) {
		return ErrForbidden
	}
	return nil
}

// CredentialFromHeader extracts the token from "Bearer <token>".
func CredentialFromHeader(header string) (Credential, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingCredential
	}
	return Credential(strings.TrimPrefix(header, bearerPrefix)), nil
}

// Header formats a credential for the Authorization header.
func (c Credential) Header() string {
	return bearerPrefix + string(c)
}
