// Package auth issues, validates and revokes the bearer tokens handed to
// API clients, and hashes user passwords.
//
// A token is an HS256 JWT whose jti is the id of a row in the tokens
// table. Validation checks the signature and expiry, then requires that
// row to still exist, so deleting the row revokes the token.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/tokens"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token is accepted.
const TokenValidity = 10 * time.Minute

// TokenService is stateless; every token it knows about lives in the
// repository.
type TokenService struct {
	key    []byte
	tokens tokens.Repository
	now    func() time.Time
}

// NewTokenService returns a service signing with key. now is the clock used
// both to stamp and to check tokens; nil means time.Now.
func NewTokenService(key []byte, repo tokens.Repository, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{key: key, tokens: repo, now: now}
}

// Issue persists a token row for userID and returns the signed token that
// refers to it. Issue is not idempotent: each call mints a new token.
func (s *TokenService) Issue(ctx context.Context, userID int64) (string, error) {
	now := s.now()

	t := models.NewToken(userID)
	t.CreatedAt = now.UTC()
	if _, err := s.tokens.Save(ctx, t); err != nil {
		return "", fmt.Errorf("saving token: %w", err)
	}
	id, _ := t.ID()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        strconv.FormatInt(id, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
	}).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// UserIDFromToken returns the user the token was issued for. It fails with
// common.ErrInvalidToken when the token is malformed, badly signed or
// expired, and with common.ErrTokenNotFound once the token was revoked.
func (s *TokenService) UserIDFromToken(ctx context.Context, tokenString string) (int64, error) {
	c, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}
	if _, err := s.lookup(ctx, c.tokenID); err != nil {
		return 0, err
	}
	return c.userID, nil
}

// Revoke deletes the row behind the token and reports whether a row was
// removed. It fails like UserIDFromToken when the token is not live.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) (bool, error) {
	c, err := s.parse(tokenString)
	if err != nil {
		return false, err
	}
	t, err := s.lookup(ctx, c.tokenID)
	if err != nil {
		return false, err
	}

	ok, err := s.tokens.Delete(ctx, t)
	if err != nil {
		return false, fmt.Errorf("deleting token: %w", err)
	}
	return ok, nil
}

type claims struct {
	userID  int64
	tokenID int64
}

func (s *TokenService) parse(tokenString string) (claims, error) {
	rc := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, rc,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return claims{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil {
		return claims{}, fmt.Errorf("%w: bad subject %q", common.ErrInvalidToken, rc.Subject)
	}
	tokenID, err := strconv.ParseInt(rc.ID, 10, 64)
	if err != nil {
		return claims{}, fmt.Errorf("%w: bad token id %q", common.ErrInvalidToken, rc.ID)
	}
	return claims{userID: userID, tokenID: tokenID}, nil
}

func (s *TokenService) lookup(ctx context.Context, id int64) (*models.Token, error) {
	t, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding token: %w", err)
	}
	if t == nil {
		return nil, common.ErrTokenNotFound
	}
	return t, nil
}
