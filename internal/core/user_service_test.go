package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jumacaq/Megamoda-store/internal/db"
	"github.com/jumacaq/Megamoda-store/internal/models"
)

func TestUserService_FindOrCreateFromProfile_FirstLoginCreates(t *testing.T) {
	userRepo := new(UserRepoMock)
	svc := NewUserService(userRepo)

	profile := &GoogleProfile{
		ID:            "google-123",
		Email:         "ana@example.com",
		Name:          "Ana García (anag)",
		Picture:       "https://lh3.example/photo.jpg",
		VerifiedEmail: true,
	}

	userRepo.On("GetByID", mock.Anything, "google-123").Return(nil, db.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.UID == "google-123" && u.Email == "ana@example.com" &&
			u.Nombre == "Ana García" && u.Locale == "en"
	})).Return(nil)

	user, created, err := svc.FindOrCreateFromProfile(context.Background(), profile)
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ana García", user.Nombre)

	userRepo.AssertExpectations(t)
}

func TestUserService_FindOrCreateFromProfile_ReturningUserStampsLastLogin(t *testing.T) {
	userRepo := new(UserRepoMock)
	svc := NewUserService(userRepo)

	existing := &models.User{UID: "google-123", Email: "ana@example.com", Nombre: "Ana García"}
	userRepo.On("GetByID", mock.Anything, "google-123").Return(existing, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, "google-123", mock.AnythingOfType("time.Time")).Return(nil)

	user, created, err := svc.FindOrCreateFromProfile(context.Background(), &GoogleProfile{ID: "google-123"})
	assert.NoError(t, err)
	assert.False(t, created)
	assert.False(t, user.LastLogin.IsZero())

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_FindOrCreateFromProfile_NilProfile(t *testing.T) {
	svc := NewUserService(new(UserRepoMock))

	_, _, err := svc.FindOrCreateFromProfile(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	userRepo := new(UserRepoMock)
	svc := NewUserService(userRepo)

	userRepo.On("GetByID", mock.Anything, "missing").Return(nil, db.ErrNotFound)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetByID_RepoError(t *testing.T) {
	userRepo := new(UserRepoMock)
	svc := NewUserService(userRepo)

	userRepo.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("firestore unavailable"))

	_, err := svc.GetByID(context.Background(), "u1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestCleanDisplayName(t *testing.T) {
	assert.Equal(t, "Ana García", CleanDisplayName("Ana García (anag)"))
	assert.Equal(t, "Ana García", CleanDisplayName("  Ana García  "))
	assert.Equal(t, "Ana", CleanDisplayName("Ana"))
	assert.Equal(t, "", CleanDisplayName(""))
}
