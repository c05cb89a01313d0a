// Package service holds the logic shared by handlers and middleware: the
// credential and token service, and domain event publishing.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/household-market/internal/model"
	"github.com/iliyamo/household-market/internal/repository"
	"github.com/iliyamo/household-market/internal/utils"
)

var (
	ErrTokenRequired = errors.New("token required")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenInvalid  = utils.ErrTokenInvalid
	ErrTokenExpired  = utils.ErrTokenExpired
)

// TokenService hashes and verifies passwords, issues and verifies bearer
// tokens and maintains the revocation set.
type TokenService struct {
	secret    string
	ttl       time.Duration
	cost      int
	blacklist repository.TokenBlacklist
}

// NewTokenService panics on an empty secret: tokens signed with an empty key
// would be forgeable.
func NewTokenService(secret string, ttl time.Duration, cost int, blacklist repository.TokenBlacklist) *TokenService {
	if secret == "" {
		panic("empty JWT secret passed to NewTokenService")
	}
	if blacklist == nil {
		blacklist = repository.NewMemoryBlacklist()
	}
	return &TokenService{secret: secret, ttl: ttl, cost: cost, blacklist: blacklist}
}

func (s *TokenService) HashPassword(plain string) (string, error) {
	return utils.HashPassword(plain, s.cost)
}

func (s *TokenService) VerifyPassword(hash, plain string) bool {
	return utils.VerifyPassword(hash, plain)
}

// Issue signs a token for u with the service TTL.
func (s *TokenService) Issue(u model.User) (utils.AccessToken, error) {
	return utils.NewAccessToken(s.secret, u.ID, u.Role, u.Email, s.ttl)
}

// Parse verifies signature and expiry without consulting the revocation set.
func (s *TokenService) Parse(raw string) (*utils.Claims, error) {
	return utils.ParseAccessToken(s.secret, raw)
}

// Revoke blacklists raw until the expiry carried in claims.
func (s *TokenService) Revoke(ctx context.Context, raw string, claims *utils.Claims) error {
	exp := time.Now().Add(s.ttl)
	if claims != nil && claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return s.blacklist.Revoke(ctx, raw, exp)
}

func (s *TokenService) IsRevoked(ctx context.Context, raw string) (bool, error) {
	return s.blacklist.IsRevoked(ctx, raw)
}

// Authenticate runs the full check on a bearer token: presence, signature
// and expiry, then revocation.  Signature problems are reported before the
// revocation set is consulted.
func (s *TokenService) Authenticate(ctx context.Context, raw string) (*utils.Claims, error) {
	if raw == "" {
		return nil, ErrTokenRequired
	}
	claims, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	revoked, err := s.IsRevoked(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
