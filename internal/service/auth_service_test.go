package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"alemsite/internal/auth"
	apperrors "alemsite/internal/errors"
	"alemsite/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		phone         string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedRole  model.Role
	}{
		{
			name:     "successful registration",
			phone:    "01712345678",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01712345678").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "explicit moderator role",
			phone:    "01712345679",
			password: "password123",
			role:     model.RoleModerator,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01712345679").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleModerator,
		},
		{
			name:     "unknown role falls back to user",
			phone:    "01712345680",
			password: "password123",
			role:     model.Role("superadmin"),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01712345680").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "phone already exists",
			phone:    "01700000000",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01700000000").Return(&model.User{Phone: "01700000000"}, nil)
			},
			expectedError: apperrors.ErrPhoneExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))
			token, user, err := svc.Register(context.Background(), tt.phone, "Test User", tt.password, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.phone, user.Phone)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		phone         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			phone:    "01712345678",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01712345678").Return(&model.User{
					Phone:        "01712345678",
					PasswordHash: string(hashed),
					Role:         model.RoleUser,
				}, nil)
			},
		},
		{
			name:     "unknown phone",
			phone:    "01799999999",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01799999999").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			phone:    "01712345678",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPhone", mock.Anything, "01712345678").Return(&model.User{
					Phone:        "01712345678",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewTokenService("test-secret"))
			token, user, err := svc.Login(context.Background(), tt.phone, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_TokenCarriesRoleAtIssuance(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	tokens := auth.NewTokenService("test-secret")

	user := &model.User{Phone: "01712345678", PasswordHash: string(hashed), Role: model.RoleUser}
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByPhone", mock.Anything, "01712345678").Return(user, nil)

	svc := NewAuthService(mockRepo, tokens)
	token, _, err := svc.Login(context.Background(), "01712345678", "password123")
	assert.NoError(t, err)

	// Promote the user in storage after the token was issued.
	user.Role = model.RoleAdmin

	// The outstanding token still resolves to the role it was issued with.
	claims, err := tokens.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, claims.Role)
}
