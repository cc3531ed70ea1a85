// Package service implements the authentication core: credential checks,
// token issuance and token-to-identity resolution.  It talks to the identity
// store through the UserStore interface so it can be exercised without a
// database.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lortega/product-catalog-api/internal/model"
	"github.com/lortega/product-catalog-api/internal/repository"
	"github.com/lortega/product-catalog-api/internal/utils"
)

const minSecretLen = 6

// UserStore is the subset of the identity store the auth service needs.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService orchestrates login, registration and token verification.
type AuthService struct {
	users  UserStore
	issuer *utils.TokenIssuer
	cost   int
}

func NewAuthService(users UserStore, issuer *utils.TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, issuer: issuer, cost: bcryptCost}
}

// Authenticate verifies an email/password pair and issues an access token.
// It returns the public view of the user, the signed token and the token
// lifetime.  Unknown email and wrong password produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, secret string) (model.PublicUser, string, time.Duration, error) {
	email = normalizeEmail(email)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.PublicUser{}, "", 0, ErrInvalidCredentials
		}
		return model.PublicUser{}, "", 0, err
	}
	if !u.Active {
		return model.PublicUser{}, "", 0, ErrAccountDisabled
	}
	if !utils.VerifyPassword(u.PasswordHash, secret) {
		return model.PublicUser{}, "", 0, ErrInvalidCredentials
	}

	token, _, err := s.issuer.Issue(u.ID.Hex(), u.Email, u.Role)
	if err != nil {
		return model.PublicUser{}, "", 0, err
	}
	return u.Public(), token, s.issuer.TTL(), nil
}

// Register creates a new active account with the default role.  The email
// uniqueness check happens twice: once here for the common case, and again
// via the store's unique index for the concurrent one.
func (s *AuthService) Register(ctx context.Context, name, email, secret string) (model.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if len(secret) < minSecretLen {
		return model.PublicUser{}, ErrSecretTooShort
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.PublicUser{}, repository.ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.PublicUser{}, err
	}

	hash, err := utils.HashPassword(secret, s.cost)
	if err != nil {
		return model.PublicUser{}, err
	}
	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.PublicUser{}, err
	}
	return created.Public(), nil
}

// ResolveAndVerify validates a serialized token and confirms its subject
// still resolves to an active account.  A deleted or deactivated subject is
// reported exactly like a bad token.
func (s *AuthService) ResolveAndVerify(ctx context.Context, raw string) (*utils.Claims, error) {
	claims, err := s.issuer.Verify(raw)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}
	u, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrInvalidToken
		}
		return nil, err
	}
	if !u.Active {
		return nil, utils.ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
