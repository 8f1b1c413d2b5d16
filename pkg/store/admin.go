package store

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/auth"
	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/models"
)

// Users lists the member registry for the curator's suite
func (m *Manager) Users() ([]models.User, error) {
	if _, err := m.requireAdmin(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, len(m.users))
	for i, u := range m.users {
		out[i] = u.Clone()
	}
	return out, nil
}

// CreateUser adds an account from the curator's suite. Such accounts start approved.
func (m *Manager) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	if _, err := m.requireAdmin(); err != nil {
		return models.User{}, err
	}
	return m.addUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		IsAdmin:      req.IsAdmin,
		IsApproved:   true,
		IsSubscribed: req.IsSubscribed,
	}, req.Password)
}

// ApproveUser lets a self-registered member sign in
func (m *Manager) ApproveUser(ctx context.Context, id string) (models.User, error) {
	if _, err := m.requireAdmin(); err != nil {
		return models.User{}, err
	}
	approved := true
	user, err := m.patchUser(ctx, id, gateway.UserPatch{IsApproved: &approved})
	if err != nil {
		return models.User{}, err
	}
	m.logger.Info("member approved", zap.String("user_id", id))
	return user, nil
}

// UpdateUser applies the curator's edits. A new password is hashed before it is stored.
func (m *Manager) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	if _, err := m.requireAdmin(); err != nil {
		return models.User{}, err
	}

	patch := gateway.UserPatch{
		Name:         req.Name,
		IsAdmin:      req.IsAdmin,
		IsApproved:   req.IsApproved,
		IsSubscribed: req.IsSubscribed,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return models.User{}, err
		}
		patch.PasswordHash = &hash
	}
	if patch.Empty() {
		m.mu.RLock()
		defer m.mu.RUnlock()
		if i := m.userIndex(id); i >= 0 {
			return m.users[i].Clone(), nil
		}
		return models.User{}, ErrNotFound
	}
	return m.patchUser(ctx, id, patch)
}

// DeleteUser removes an account. The signed-in curator cannot remove their
// own account; that request never reaches the remote store.
func (m *Manager) DeleteUser(ctx context.Context, id string) error {
	adminID, err := m.requireAdmin()
	if err != nil {
		return err
	}
	if id == adminID {
		m.logger.Warn("refusing to delete the signed-in curator", zap.String("user_id", id))
		return ErrSelfDeletion
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	known := m.userIndex(id) >= 0
	m.mu.RUnlock()
	if !known {
		return ErrNotFound
	}

	if m.gateway != nil {
		if err := m.gateway.DeleteUser(ctx, id); err != nil {
			return translate("delete member", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.userIndex(id); i >= 0 {
		m.users = slices.Delete(slices.Clone(m.users), i, i+1)
	}
	m.saveUsers()

	m.logger.Info("member deleted", zap.String("user_id", id))
	return nil
}
