// Package auth implements the mock authentication of the storefront: a
// persisted registry of users, the single session user, and bearer tokens.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
)

const minPasswordLength = 6

// RegisterInput is what the sign-up form submits.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Registry is the ordered list of registered users, persisted as a whole.
type Registry struct {
	mu     sync.Mutex
	users  []models.User
	kv     storage.KV
	logger *zap.Logger
	cost   int
}

// NewRegistry loads the registry from kv. A missing or malformed registry
// starts empty. cost is the bcrypt cost; 0 selects bcrypt.DefaultCost.
func NewRegistry(ctx context.Context, kv storage.KV, logger *zap.Logger, cost int) *Registry {
	r := &Registry{kv: kv, logger: logger, cost: cost}

	var users []models.User
	found, err := storage.LoadJSON(ctx, kv, storage.UsersKey, &users)
	switch {
	case err != nil:
		logger.Warn("discarding unreadable user registry", zap.Error(err))
	case found && !validUsers(users):
		logger.Warn("discarding malformed user registry", zap.Int("users", len(users)))
	case found:
		r.users = users
	}
	return r
}

func validUsers(users []models.User) bool {
	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if u.Email == "" || u.PasswordHash == "" || seen[u.Email] {
			return false
		}
		seen[u.Email] = true
	}
	return true
}

// Register validates in and appends the new user. Emails are compared
// exactly, so "A@b.com" and "a@b.com" are different accounts.
func (r *Registry) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if err := validateRegistration(in); err != nil {
		return models.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(in.Email) >= 0 {
		return models.User{}, models.NewValidationError("email", "Email already registered")
	}

	password := models.Password{Cost: r.cost}
	if err := password.Set(in.Password); err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, models.NewValidationError("password", "Password must be at most 72 bytes long")
		}
		return models.User{}, err
	}

	user := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: password.Hash,
	}
	r.users = append(r.users, user)

	if err := storage.SaveJSON(ctx, r.kv, storage.UsersKey, r.users); err != nil {
		r.logger.Error("failed to persist user registry", zap.Error(err))
	}
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	if in.Email == "" {
		return models.NewValidationError("email", "Email is required")
	}
	if !strings.Contains(in.Email, "@") || !strings.Contains(in.Email, ".") {
		return models.NewValidationError("email", "Invalid email format")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return models.NewValidationError("password", "Password must be at least 6 characters long")
	}
	if in.Password != in.ConfirmPassword {
		return models.NewValidationError("confirmPassword", "Passwords do not match")
	}
	return nil
}

// Authenticate returns the user with exactly this email and password.
// Unknown emails and wrong passwords both yield models.ErrInvalidCredentials.
func (r *Registry) Authenticate(email, password string) (models.User, error) {
	r.mu.Lock()
	i := r.find(email)
	var user models.User
	if i >= 0 {
		user = r.users[i]
	}
	r.mu.Unlock()

	if i < 0 {
		return models.User{}, models.ErrInvalidCredentials
	}

	ok, err := (&models.Password{Hash: user.PasswordHash}).Matches(password)
	if err != nil {
		r.logger.Warn("stored password hash is unusable", zap.String("email", email), zap.Error(err))
		return models.User{}, models.ErrInvalidCredentials
	}
	if !ok {
		return models.User{}, models.ErrInvalidCredentials
	}
	return user, nil
}

// Users returns a copy of the registry.
func (r *Registry) Users() []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.User{}, r.users...)
}

func (r *Registry) find(email string) int {
	for i, u := range r.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
