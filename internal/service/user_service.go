package service

import (
	"context"
	"errors"

	"github.com/atik94/mobile-resale-market-server/internal/model"
	"github.com/atik94/mobile-resale-market-server/internal/repository"

	"github.com/google/uuid"
)

var ErrUnknownUser = errors.New("unknown user")

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SellerStatus) (int64, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) CreateUser(ctx context.Context, u *model.User) (model.InsertResult, error) {
	if err := s.repo.Create(ctx, u); err != nil {
		return model.InsertResult{}, err
	}
	return model.Inserted(u.ID), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return s.repo.ListByRole(ctx, role)
}

// HasRole reports whether the user with email holds role. An unknown email
// is not an error: it simply has no role.
func (s *UserService) HasRole(ctx context.Context, email string, role model.Role) (bool, error) {
	u, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.Role == role, nil
}

// DeleteUser never fails for an unknown id; the result reports zero deletions.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (model.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}
	return model.Deleted(n), nil
}

func (s *UserService) UpdateSellerStatus(ctx context.Context, id uuid.UUID, status model.SellerStatus) (model.UpdateResult, error) {
	n, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.UpdateResult{}, err
	}
	return model.Updated(n), nil
}
