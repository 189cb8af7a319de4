package service

import (
	"context"
	"errors"

	"github.com/atik94/mobile-resale-market-server/internal/model"
	"github.com/atik94/mobile-resale-market-server/internal/repository"
)

type UserLookup interface {
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type AuthService struct {
	users  UserLookup
	issuer TokenIssuer
}

func NewAuthService(users UserLookup, issuer TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// IssueToken returns a signed access token for a registered email, or
// ErrUnknownUser.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrUnknownUser
	}
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", err
	}
	return s.issuer.Issue(u.Email)
}
