package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
)

// Session holds at most one logged-in user, persisted under "user".
type Session struct {
	mu     sync.Mutex
	user   *models.User
	kv     storage.KV
	logger *zap.Logger
}

// NewSession restores the session user from kv. Anything unreadable means
// nobody is logged in.
func NewSession(ctx context.Context, kv storage.KV, logger *zap.Logger) *Session {
	s := &Session{kv: kv, logger: logger}

	var user *models.User
	found, err := storage.LoadJSON(ctx, kv, storage.UserKey, &user)
	switch {
	case err != nil:
		logger.Warn("discarding unreadable session", zap.Error(err))
	case found && user != nil && user.Email != "":
		s.user = user
	}
	return s
}

// Current returns the session user, if any.
func (s *Session) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Set makes user the session user.
func (s *Session) Set(ctx context.Context, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	if err := storage.SaveJSON(ctx, s.kv, storage.UserKey, user); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
	}
}

// Clear logs the session user out.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	if err := storage.DeleteKey(ctx, s.kv, storage.UserKey); err != nil {
		s.logger.Error("failed to erase session", zap.Error(err))
	}
}
