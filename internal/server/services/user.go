// Package services contains server-side business logic. UserService logs
// users in and out and resolves bearer tokens to users; StudentService lists
// the students owned by a user.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/criteria"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// Tokens is the part of auth.TokenService used by UserService.
type Tokens interface {
	Issue(ctx context.Context, userID int64) (string, error)
	UserIDFromToken(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) (bool, error)
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      Tokens
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens Tokens) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

// Register creates a user with a bcrypt hash of password.
func (s *UserService) Register(ctx context.Context, email, userName, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Save(ctx, &models.User{Email: email, UserName: userName, Password: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords both fail with common.ErrWrongCredentials.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	found, err := s.repomanager.Users(s.db).FindByCriteria(ctx,
		criteria.New(criteria.Equals("username", userName), criteria.None(), criteria.WithLimit(1)))
	if err != nil {
		return "", fmt.Errorf("error searching user: %w", err)
	}
	if len(found) == 0 || !auth.CheckPassword(found[0].Password, password) {
		return "", common.ErrWrongCredentials
	}

	token, err := s.tokens.Issue(ctx, found[0].ID)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user. Token errors pass
// through unchanged; a token whose user no longer exists fails with
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.UserIDFromToken(ctx, token)
	if err != nil {
		return nil, err
	}

	u, err := s.repomanager.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// Logout revokes token.
func (s *UserService) Logout(ctx context.Context, token string) (bool, error) {
	return s.tokens.Revoke(ctx, token)
}
