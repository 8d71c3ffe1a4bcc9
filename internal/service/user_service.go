package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
	"alemsite/internal/repository"
)

// UserService handles user administration. Role updates take effect in
// storage immediately, but outstanding session tokens keep their issued role
// until the holder logs in again.
type UserService interface {
	List(ctx context.Context, role model.Role, phoneSearch string) ([]model.User, error)
	Create(ctx context.Context, phone, name, password string, role model.Role) (*model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user administration service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, role model.Role, phoneSearch string) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, role, phoneSearch)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create adds a user manually from the dashboard.
func (s *userService) Create(ctx context.Context, phone, name, password string, role model.Role) (*model.User, error) {
	existing, err := s.userRepo.FindByPhone(ctx, phone)
	if err == nil && existing != nil {
		return nil, apperrors.ErrPhoneExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	switch role {
	case model.RoleAdmin, model.RoleModerator, model.RoleUser:
	default:
		role = model.RoleUser
	}

	user := &model.User{
		Phone:        phone,
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	switch role {
	case model.RoleAdmin, model.RoleModerator, model.RoleUser:
	default:
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	user, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
