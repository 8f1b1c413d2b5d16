package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/auth"
	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/snapshot"
)

// Register adds a self-registered member. The account starts unapproved and
// cannot sign in until a curator approves it.
func (m *Manager) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return m.addUser(ctx, models.User{
		Name:       strings.TrimSpace(name),
		Email:      email,
		IsApproved: false,
	}, password)
}

// addUser hashes the password, stores the account remotely when backed and
// appends it to the registry
func (m *Manager) addUser(ctx context.Context, user models.User, password string) (models.User, error) {
	user.ID = uuid.NewString()
	user.Email = models.NormalizeEmail(user.Email)
	user.Wishlist = []string{}
	user.OrderHistory = []models.Order{}
	if err := models.Validate(user); err != nil {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = hash

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	taken := m.userByEmail(user.Email) >= 0
	m.mu.RUnlock()
	if taken {
		return models.User{}, ErrEmailTaken
	}

	if m.gateway != nil {
		if err := m.gateway.InsertUser(ctx, user); err != nil {
			return models.User{}, translate("register", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userIndex(user.ID) < 0 {
		m.users = append(m.users, user.Clone())
	}
	m.saveUsers()

	m.logger.Info("member registered", zap.String("user_id", user.ID), zap.Bool("approved", user.IsApproved))
	return user.Clone(), nil
}

// Login signs a member in. An unknown email and a wrong password both give
// ErrInvalidCredentials; correct credentials on an unapproved account give
// ErrPendingApproval.
func (m *Manager) Login(email, password string) (models.User, error) {
	m.mu.RLock()
	var user models.User
	i := m.userByEmail(email)
	if i >= 0 {
		user = m.users[i].Clone()
	}
	m.mu.RUnlock()

	if i < 0 {
		_ = auth.VerifyUnknown(password)
		return models.User{}, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrMismatch) {
			m.logger.Warn("password verification failed", zap.String("user_id", user.ID), zap.Error(err))
		}
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsApproved {
		return models.User{}, ErrPendingApproval
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUserID = user.ID
	m.cache.Save(snapshot.KeySession, user.ID)
	return user, nil
}

func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUserID = ""
	m.cache.Remove(snapshot.KeySession)
}

// CurrentUser returns the signed-in member, if any
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.currentUser()
	if !ok {
		return models.User{}, false
	}
	return u.Clone(), true
}

// UpdateProfile changes the signed-in member's display name and newsletter subscription
func (m *Manager) UpdateProfile(ctx context.Context, name string, subscribed bool) (models.User, error) {
	m.mu.RLock()
	user, ok := m.currentUser()
	m.mu.RUnlock()
	if !ok {
		return models.User{}, ErrNotSignedIn
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = user.Name
	}
	return m.patchUser(ctx, user.ID, gateway.UserPatch{Name: &name, IsSubscribed: &subscribed})
}

// ToggleWishlist adds the product to the signed-in member's wishlist, or
// removes it when already there. Without a signed-in member it does nothing.
func (m *Manager) ToggleWishlist(ctx context.Context, productID string) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	user, ok := m.currentUser()
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	wishlist := make([]string, 0, len(user.Wishlist)+1)
	found := false
	for _, id := range user.Wishlist {
		if id == productID {
			found = true
			continue
		}
		wishlist = append(wishlist, id)
	}
	if !found {
		wishlist = append(wishlist, productID)
	}

	_, err := m.applyPatch(ctx, user.ID, gateway.UserPatch{Wishlist: &wishlist})
	return err
}

// patchUser persists a patch and applies it to the registry
func (m *Manager) patchUser(ctx context.Context, id string, patch gateway.UserPatch) (models.User, error) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.applyPatch(ctx, id, patch)
}

// applyPatch must be called with writeMu held
func (m *Manager) applyPatch(ctx context.Context, id string, patch gateway.UserPatch) (models.User, error) {
	m.mu.RLock()
	known := m.userIndex(id) >= 0
	m.mu.RUnlock()
	if !known {
		return models.User{}, ErrNotFound
	}

	if m.gateway != nil {
		if err := m.gateway.UpdateUser(ctx, id, patch); err != nil {
			return models.User{}, translate("update member", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.userIndex(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	applyUserPatch(&m.users[i], patch)
	m.saveUsers()
	return m.users[i].Clone(), nil
}

func applyUserPatch(u *models.User, p gateway.UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	if p.IsApproved != nil {
		u.IsApproved = *p.IsApproved
	}
	if p.IsSubscribed != nil {
		u.IsSubscribed = *p.IsSubscribed
	}
	if p.Wishlist != nil {
		u.Wishlist = append([]string{}, (*p.Wishlist)...)
	}
	if p.OrderHistory != nil {
		history := make([]models.Order, len(*p.OrderHistory))
		for i, o := range *p.OrderHistory {
			history[i] = o.Clone()
		}
		u.OrderHistory = history
	}
}

// userByEmail must be called with mu held
func (m *Manager) userByEmail(email string) int {
	for i := range m.users {
		if m.users[i].EmailMatches(email) {
			return i
		}
	}
	return -1
}
