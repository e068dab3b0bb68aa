package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jumacaq/Megamoda-store/internal/db"
	"github.com/jumacaq/Megamoda-store/internal/models"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// parentheticalRe matches trailing parenthetical suffixes Google sometimes
// appends to display names, e.g. "Jane Doe (janed)".
var parentheticalRe = regexp.MustCompile(`\s*\(.*?\)`)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// FindOrCreateFromProfile resolves a freshly-fetched Google profile to a user
// record. First login creates the document; every later login only stamps
// last_login, so profile edits made elsewhere are not clobbered.
func (s *userService) FindOrCreateFromProfile(ctx context.Context, profile *GoogleProfile) (*models.User, bool, error) {
	if profile == nil || profile.ID == "" {
		return nil, false, errors.New("a profile with a subject id is required")
	}

	now := time.Now()

	user, err := s.userRepo.GetByID(ctx, profile.ID)
	if err == nil {
		if updateErr := s.userRepo.UpdateLastLogin(ctx, profile.ID, now); updateErr != nil {
			return nil, false, fmt.Errorf("failed to update last_login for user '%s': %w", profile.ID, updateErr)
		}
		user.LastLogin = now
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", profile.ID, err)
	}

	locale := profile.Locale
	if locale == "" {
		locale = "en"
	}
	newUser := &models.User{
		UID:           profile.ID,
		Email:         profile.Email,
		Nombre:        CleanDisplayName(profile.Name),
		Foto:          profile.Picture,
		VerifiedEmail: profile.VerifiedEmail,
		Locale:        locale,
		CreatedAt:     now,
		LastLogin:     now,
	}
	if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
		return nil, false, fmt.Errorf("failed to create user (id: %s) after not found: %w", profile.ID, createErr)
	}
	return newUser, true, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", uid, err)
	}
	return user, nil
}

// CleanDisplayName strips parenthetical suffixes and surrounding whitespace
// from a provider display name.
func CleanDisplayName(name string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(name, ""))
}
