// Package snapshot keeps the last known copy of the store's collections so the
// storefront can start without the remote store and resume a signed-in session.
//
// Every slot holds a whole collection encoded as JSON. Reads never fail: absent
// or malformed data yields the caller's default. Writes never fail the caller
// either; errors are logged and the previous snapshot stays in place.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/logging"
	"aurelialuxe.com/boutique/pkg/models"
)

// Key names a snapshot slot
type Key string

const (
	KeyProducts    Key = "products"
	KeyCart        Key = "cart"
	KeyUsers       Key = "users"
	KeySiteContent Key = "site_content"
	// KeySession remembers the signed-in user's id, never the password
	KeySession Key = "session"
)

// ErrMissing is returned by a Backend when a key holds no value
var ErrMissing = errors.New("snapshot: key not found")

// Backend is the raw byte storage behind a Cache
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Cache struct {
	backend Backend
	logger  *zap.Logger
}

// New wraps a backend. A nil logger discards output.
func New(backend Backend, logger *zap.Logger) *Cache {
	return &Cache{
		backend: backend,
		logger:  logging.OrNop(logger).Named("snapshot"),
	}
}

// Load decodes the slot into a T, returning def when the slot is empty or unreadable
func Load[T any](c *Cache, key Key, def T) T {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	raw, err := c.backend.Get(ctx, string(key))
	if err != nil {
		if !errors.Is(err, ErrMissing) {
			c.logger.Warn("failed to read snapshot", zap.String("key", string(key)), zap.Error(err))
		}
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		c.logger.Warn("discarding malformed snapshot", zap.String("key", string(key)), zap.Error(err))
		return def
	}
	return value
}

// Save stores the whole value under key. Failures are logged, not returned.
func (c *Cache) Save(key Key, value any) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode snapshot", zap.String("key", string(key)), zap.Error(err))
		return
	}
	if err := c.backend.Set(ctx, string(key), raw); err != nil {
		c.logger.Warn("failed to write snapshot", zap.String("key", string(key)), zap.Error(err))
	}
}

// Remove clears a slot
func (c *Cache) Remove(key Key) {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	if err := c.backend.Delete(ctx, string(key)); err != nil && !errors.Is(err, ErrMissing) {
		c.logger.Warn("failed to remove snapshot", zap.String("key", string(key)), zap.Error(err))
	}
}

// storedUser keeps the password hash that models.User hides from JSON
type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

// SaveUsers stores the member list including password hashes
func (c *Cache) SaveUsers(users []models.User) {
	stored := make([]storedUser, len(users))
	for i, u := range users {
		stored[i] = storedUser{User: u, PasswordHash: u.PasswordHash}
	}
	c.Save(KeyUsers, stored)
}

// LoadUsers returns the stored member list. When the slot is empty or does not
// hold a list, the built-in administrator is returned so the suite stays reachable.
func (c *Cache) LoadUsers(admin models.User) []models.User {
	stored := Load[[]storedUser](c, KeyUsers, nil)
	if len(stored) == 0 {
		return []models.User{admin}
	}
	users := make([]models.User, len(stored))
	for i, s := range stored {
		users[i] = s.User
		users[i].PasswordHash = s.PasswordHash
	}
	return users
}

// Close releases the backend
func (c *Cache) Close() error {
	return c.backend.Close()
}
