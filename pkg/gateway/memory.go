package gateway

import (
	"context"
	"fmt"
	"sync"

	"aurelialuxe.com/boutique/pkg/models"
)

// Memory is an in-process Gateway. Records are kept in their remote shape so
// the mapping layer is exercised exactly as with a real store. Change
// notifications are delivered synchronously after the write completes.
type Memory struct {
	mu          sync.RWMutex
	products    []ProductRecord
	users       []UserRecord
	siteContent *SiteContentRecord
	offline     bool

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[Resource]map[int]func()
}

var _ Gateway = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{subscribers: make(map[Resource]map[int]func())}
}

// Seed replaces the stored data without notifying subscribers
func (m *Memory) Seed(products []models.Product, users []models.User, content *models.SiteContent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make([]ProductRecord, len(products))
	for i, p := range products {
		m.products[i] = ToProductRecord(p)
	}
	m.users = make([]UserRecord, len(users))
	for i, u := range users {
		m.users[i] = ToUserRecord(u)
	}
	m.siteContent = nil
	if content != nil {
		rec := ToSiteContentRecord(*content)
		m.siteContent = &rec
	}
}

// SetOffline makes every call behave as if the store could not be reached
func (m *Memory) SetOffline(offline bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offline = offline
}

func (m *Memory) FetchAll(_ context.Context) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.offline {
		return Snapshot{}
	}

	var snap Snapshot
	if m.products != nil {
		snap.Products = make([]models.Product, len(m.products))
		for i, rec := range m.products {
			snap.Products[i] = FromProductRecord(rec)
		}
	}
	if m.users != nil {
		snap.Users = make([]models.User, len(m.users))
		for i, rec := range m.users {
			snap.Users[i] = FromUserRecord(rec)
		}
	}
	if m.siteContent != nil {
		content := FromSiteContentRecord(*m.siteContent)
		snap.SiteContent = &content
	}
	return snap
}

func (m *Memory) UpsertProduct(_ context.Context, product models.Product) error {
	if err := m.write(func() error {
		rec := ToProductRecord(product)
		for i := range m.products {
			if m.products[i].SKU == rec.SKU && m.products[i].ID != rec.ID {
				return ErrDuplicateSKU
			}
		}
		for i := range m.products {
			if m.products[i].ID == rec.ID {
				m.products[i] = rec
				return nil
			}
		}
		m.products = append(m.products, rec)
		return nil
	}); err != nil {
		return err
	}
	m.notify(ResourceProducts)
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	if err := m.write(func() error {
		for i := range m.products {
			if m.products[i].ID == id {
				m.products = append(m.products[:i], m.products[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}); err != nil {
		return err
	}
	m.notify(ResourceProducts)
	return nil
}

func (m *Memory) InsertUser(_ context.Context, user models.User) error {
	if err := m.write(func() error {
		rec := ToUserRecord(user)
		for _, existing := range m.users {
			if existing.Email == rec.Email {
				return ErrDuplicateEmail
			}
		}
		m.users = append(m.users, rec)
		return nil
	}); err != nil {
		return err
	}
	m.notify(ResourceUsers)
	return nil
}

func (m *Memory) UpdateUser(_ context.Context, id string, patch UserPatch) error {
	if err := m.write(func() error {
		for i := range m.users {
			if m.users[i].ID == id {
				patch.Apply(&m.users[i])
				return nil
			}
		}
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}); err != nil {
		return err
	}
	m.notify(ResourceUsers)
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id string) error {
	if err := m.write(func() error {
		for i := range m.users {
			if m.users[i].ID == id {
				m.users = append(m.users[:i], m.users[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}); err != nil {
		return err
	}
	m.notify(ResourceUsers)
	return nil
}

func (m *Memory) UpsertSiteContent(_ context.Context, content models.SiteContent) error {
	if err := m.write(func() error {
		rec := ToSiteContentRecord(content)
		m.siteContent = &rec
		return nil
	}); err != nil {
		return err
	}
	m.notify(ResourceSiteContent)
	return nil
}

func (m *Memory) Subscribe(_ context.Context, resource Resource, onChange func()) (func(), error) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if m.subscribers[resource] == nil {
		m.subscribers[resource] = make(map[int]func())
	}
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[resource][id] = onChange

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			delete(m.subscribers[resource], id)
		})
	}, nil
}

// Subscribers returns how many callbacks are registered for resource
func (m *Memory) Subscribers(resource Resource) int {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	return len(m.subscribers[resource])
}

func (m *Memory) write(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return ErrUnavailable
	}
	return fn()
}

// notify runs outside the data lock so callbacks may call FetchAll
func (m *Memory) notify(resource Resource) {
	m.subMu.Lock()
	callbacks := make([]func(), 0, len(m.subscribers[resource]))
	for _, fn := range m.subscribers[resource] {
		callbacks = append(callbacks, fn)
	}
	m.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
