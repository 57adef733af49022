// Package services holds the business rules between controllers and the
// document store: token issuance, the order lifecycle, and payment intents.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/pkg/auth"
)

// AuthService upserts accounts and issues their access tokens.
type AuthService struct {
	users repositories.UserStore
}

func NewAuthService(users repositories.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Login upserts the account for email and returns a freshly signed one-hour
// token. Idempotent: repeated calls refresh the token, never duplicate the
// account.
func (s *AuthService) Login(ctx context.Context, email string, u models.User) (string, error) {
	if err := s.users.Upsert(ctx, email, u); err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(email)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// IsAdmin reports whether the account for email carries the admin role.
// An unknown email is simply not an admin.
func (s *AuthService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
