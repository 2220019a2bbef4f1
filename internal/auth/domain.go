package auth

import (
	"fmt"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

// Credential is the single operator account the backend serves. It is
// injected from configuration at process start; there is no user store.
type Credential struct {
	Username     string
	PasswordHash string
}

// Principal identifies the authenticated operator behind a token.
type Principal struct {
	Username string `json:"username"`
}

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", httpx.ErrUnauthorized)
	// ErrInvalidToken indicates an expired, revoked, or tampered token.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", httpx.ErrUnauthorized)
)
