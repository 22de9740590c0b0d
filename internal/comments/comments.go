// Package comments stores the free-text comments shoppers leave on a
// product page, one persisted list per product.
package comments

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *zap.Logger
}

func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// List returns the comments on productID in the order they were added.
func (s *Store) List(ctx context.Context, productID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, productID)
}

// Add appends text as typed. Blank text is rejected.
func (s *Store) Add(ctx context.Context, productID int64, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("comment", "Comment cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.load(ctx, productID), text)
	s.save(ctx, productID, list)
	return list, nil
}

// Remove deletes the comment at index. An index out of range changes nothing.
func (s *Store) Remove(ctx context.Context, productID int64, index int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx, productID)
	if index < 0 || index >= len(list) {
		return list
	}
	list = append(list[:index], list[index+1:]...)
	s.save(ctx, productID, list)
	return list
}

func (s *Store) load(ctx context.Context, productID int64) []string {
	list := []string{}
	key := storage.CommentsKey(productID)
	if _, err := storage.LoadJSON(ctx, s.kv, key, &list); err != nil {
		s.logger.Warn("discarding unreadable comments", zap.String("key", key), zap.Error(err))
		return []string{}
	}
	if list == nil {
		return []string{}
	}
	return list
}

func (s *Store) save(ctx context.Context, productID int64, list []string) {
	if err := storage.SaveJSON(ctx, s.kv, storage.CommentsKey(productID), list); err != nil {
		s.logger.Error("failed to persist comments", zap.Int64("product_id", productID), zap.Error(err))
	}
}
