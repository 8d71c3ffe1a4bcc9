package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"alemsite/internal/auth"
	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
	"alemsite/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login. Both paths end with a freshly
// issued session token; the token embeds the role at issuance time and is
// not refreshed server-side when the stored role later changes.
type AuthService interface {
	Register(ctx context.Context, phone, name, password string, role model.Role) (token string, user *model.User, err error)
	Login(ctx context.Context, phone, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user with a hashed password and logs them in.
func (s *authService) Register(ctx context.Context, phone, name, password string, role model.Role) (string, *model.User, error) {
	existing, err := s.userRepo.FindByPhone(ctx, phone)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrPhoneExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
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
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Login authenticates a user by phone and password and issues a session token.
func (s *authService) Login(ctx context.Context, phone, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
