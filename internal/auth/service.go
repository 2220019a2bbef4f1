package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// Service wraps authentication business rules.
type Service struct {
	cred   Credential
	tokens *TokenManager
}

// NewService constructs a new Service.
func NewService(cred Credential, tokens *TokenManager) *Service {
	return &Service{cred: cred, tokens: tokens}
}

// Login validates the credentials and issues a bearer token. Unknown
// usernames and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.cred.Username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(ctx, Principal{Username: username})
}

// Validate resolves a bearer token to its principal.
func (s *Service) Validate(ctx context.Context, token string) (*Principal, error) {
	return s.tokens.Validate(ctx, token)
}

// Logout revokes the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// TokenTTL exposes the token lifetime for response metadata.
func (s *Service) TokenTTL() int64 {
	return int64(s.tokens.TTL().Seconds())
}
