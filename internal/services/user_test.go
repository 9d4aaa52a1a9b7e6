package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ltsmerch/storefront/internal/config"
	appErrors "github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	"github.com/ltsmerch/storefront/internal/repositories/mocks"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testSecurity = &config.Security{JWTKey: "test-signing-key", TokenTTL: time.Hour}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - email normalized, password hashed", func(t *testing.T) {
		// Arrange
		userRepo := &mocks.UserRepository{}
		users := service.NewUserService(userRepo, nil, testSecurity)
		userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			hashOK := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")) == nil

			return u.Email == "fan@example.com" && u.Name == "Ada" && hashOK
		})).Return(nil).Once()

		// Act
		user, err := users.Register(ctx, &models.RegisterRequest{
			Name:     "  Ada  ",
			Email:    " Fan@Example.COM ",
			Password: "hunter2hunter2",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "fan@example.com", user.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - duplicate email", func(t *testing.T) {
		userRepo := &mocks.UserRepository{}
		users := service.NewUserService(userRepo, nil, testSecurity)
		userRepo.On("CreateUser", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		user, err := users.Register(ctx, &models.RegisterRequest{
			Name:     "Ada",
			Email:    "fan@example.com",
			Password: "hunter2hunter2",
		})

		assert.Error(t, err)
		assert.Nil(t, user)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	assert.NoError(t, err)

	storedUser := &models.User{
		ID:           9,
		Name:         "Ada",
		Email:        "fan@example.com",
		PasswordHash: string(hash),
	}

	t.Run("Success - issues a verifiable token", func(t *testing.T) {
		// Arrange
		userRepo := &mocks.UserRepository{}
		users := service.NewUserService(userRepo, nil, testSecurity)
		userRepo.On("GetUserByEmail", ctx, "fan@example.com").Return(storedUser, nil).Once()

		// Act
		resp, err := users.Login(ctx, &models.LoginRequest{Email: "Fan@Example.com", Password: "hunter2hunter2"})

		// Assert
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, storedUser, resp.User)

		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecurity.JWTKey), nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, int64(9), claims.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - wrong password", func(t *testing.T) {
		userRepo := &mocks.UserRepository{}
		users := service.NewUserService(userRepo, nil, testSecurity)
		userRepo.On("GetUserByEmail", ctx, "fan@example.com").Return(storedUser, nil).Once()

		resp, err := users.Login(ctx, &models.LoginRequest{Email: "fan@example.com", Password: "wrong"})

		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - unknown email gives the same error", func(t *testing.T) {
		userRepo := &mocks.UserRepository{}
		users := service.NewUserService(userRepo, nil, testSecurity)
		userRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

		resp, err := users.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "hunter2hunter2"})

		assert.Error(t, err)
		assert.Nil(t, resp)

		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - unknown user", func(t *testing.T) {
		userRepo := &mocks.UserRepository{}
		users := service.NewUserService(userRepo, nil, testSecurity)
		userRepo.On("GetUserByID", ctx, int64(404)).Return(nil, sql.ErrNoRows).Once()

		user, err := users.Profile(ctx, 404)

		assert.Error(t, err)
		assert.Nil(t, user)

		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
