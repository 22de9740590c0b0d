// Package storage is the string-keyed key-value store the storefront
// persists its state to, with memory, SQL and Redis backends.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Persisted keys.
const (
	CartKey  = "cart"
	UserKey  = "user"
	UsersKey = "users"
)

// CommentsKey is the key holding the comments of one product.
func CommentsKey(productID int64) string {
	return fmt.Sprintf("comments-%d", productID)
}

// KV is a string-keyed store of string values.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// LoadJSON decodes the value at key into dst. It reports false when the key
// is absent. A malformed value is returned as a *models.StorageError and dst
// is left in an unspecified state; callers fall back to their defaults.
func LoadJSON(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, &models.StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, &models.StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// SaveJSON encodes v and stores it at key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &models.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return &models.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// DeleteKey removes key, wrapping failures as a *models.StorageError.
func DeleteKey(ctx context.Context, kv KV, key string) error {
	if err := kv.Delete(ctx, key); err != nil {
		return &models.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
