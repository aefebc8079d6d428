// internal/service/user_service.go
package service

import (
	"context"
	"fmt"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListUsersPage(ctx context.Context, pageNumber, pageSize int) ([]domain.User, error)
	ChangeEmail(ctx context.Context, id int64, email string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	user := domain.NewUser(name, email)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) ListUsersPage(ctx context.Context, pageNumber, pageSize int) ([]domain.User, error) {
	return s.userRepo.FindPage(ctx, pageNumber, pageSize)
}

// ChangeEmail updates only the email of an existing user and returns the
// refreshed user.
func (s *userService) ChangeEmail(ctx context.Context, id int64, email string) (*domain.User, error) {
	if err := s.userRepo.UpdateEmail(ctx, id, email); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", util.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("change email: %w", err)
	}
	return s.GetUser(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("%w: id %d", util.ErrUserNotFound, id)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
