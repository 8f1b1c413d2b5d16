// Package store holds the storefront's authoritative in-memory state: the
// catalog, the bag, the member registry, the signed-in member and the site
// copy. Every mutation goes through a Manager operation.
//
// A Manager is either remote-backed (a gateway.Gateway is supplied and is the
// source of truth) or local-only (the snapshot cache is the only persistence).
// In both modes the snapshot cache keeps the last known copy of each
// collection so the storefront can start while the remote store is down.
package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/logging"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/pricing"
	"aurelialuxe.com/boutique/pkg/snapshot"
)

// Status is the load state of one resource
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusReady         Status = "ready"
)

var resources = []gateway.Resource{
	gateway.ResourceProducts,
	gateway.ResourceUsers,
	gateway.ResourceSiteContent,
}

type Options struct {
	// Gateway is the remote store. Nil selects local-only mode.
	Gateway gateway.Gateway
	// Cache is required
	Cache  *snapshot.Cache
	Logger *zap.Logger
	// Rules defaults to pricing.DefaultRules
	Rules *pricing.Rules
	// Admin is the built-in curator account used when no members are stored
	Admin models.User
}

type Manager struct {
	gateway gateway.Gateway
	cache   *snapshot.Cache
	rules   pricing.Rules
	admin   models.User
	logger  *zap.Logger

	mu            sync.RWMutex
	products      []models.Product
	cart          []models.CartItem
	users         []models.User
	currentUserID string
	siteContent   models.SiteContent
	status        map[gateway.Resource]Status
	refreshSeq    uint64
	appliedSeq    uint64

	// writeMu orders mutations that persist to the gateway before touching memory.
	// Bag edits take it too so a submission never drops a line added mid-flight.
	writeMu sync.Mutex

	subMu        sync.Mutex
	unsubscribes []func()
	closed       bool
}

// New builds a Manager from the snapshot cache. Nothing is fetched until Start or Refresh.
func New(opts Options) *Manager {
	logger := logging.OrNop(opts.Logger).Named("store")
	cache := opts.Cache
	if cache == nil {
		cache = snapshot.New(snapshot.NewMemoryBackend(), logger)
	}
	rules := pricing.DefaultRules
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	admin := opts.Admin
	if admin.ID == "" {
		admin = models.SeedAdmin("", "")
	}

	m := &Manager{
		gateway: opts.Gateway,
		cache:   cache,
		rules:   rules,
		admin:   admin,
		logger:  logger,
		status:  make(map[gateway.Resource]Status, len(resources)),
	}
	for _, r := range resources {
		m.status[r] = StatusUninitialized
	}

	m.products = snapshot.Load(cache, snapshot.KeyProducts, []models.Product(nil))
	if len(m.products) == 0 {
		m.products = models.SeedProducts()
	}
	m.cart = snapshot.Load(cache, snapshot.KeyCart, []models.CartItem{})
	if m.cart == nil {
		m.cart = []models.CartItem{}
	}
	m.users = cache.LoadUsers(admin)
	m.siteContent = snapshot.Load(cache, snapshot.KeySiteContent, models.SeedSiteContent())
	m.currentUserID = m.rememberedSession()

	return m
}

// Remote reports whether the manager is backed by a remote gateway
func (m *Manager) Remote() bool {
	return m.gateway != nil
}

// Status returns the load state of a resource
func (m *Manager) Status(resource gateway.Resource) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.status[resource]; ok {
		return s
	}
	return StatusUninitialized
}

// Start runs the initial refresh and subscribes to remote changes.
// Each change notification re-runs the full refresh.
func (m *Manager) Start(ctx context.Context) {
	m.Refresh(ctx)
	if m.gateway == nil {
		return
	}

	for _, resource := range resources {
		unsubscribe, err := m.gateway.Subscribe(ctx, resource, func() {
			m.logger.Debug("remote change received", zap.String("resource", string(resource)))
			refreshCtx, cancel := global.GetDefaultTimer()
			defer cancel()
			m.Refresh(refreshCtx)
		})
		if err != nil {
			m.logger.Warn("failed to subscribe to remote changes", zap.String("resource", string(resource)), zap.Error(err))
			continue
		}

		m.subMu.Lock()
		if m.closed {
			m.subMu.Unlock()
			unsubscribe()
			return
		}
		m.unsubscribes = append(m.unsubscribes, unsubscribe)
		m.subMu.Unlock()
	}
}

// Close releases the gateway subscriptions. In-flight refreshes still complete.
func (m *Manager) Close() {
	m.subMu.Lock()
	unsubscribes := m.unsubscribes
	m.unsubscribes = nil
	m.closed = true
	m.subMu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

// Refresh reloads products, users and site content from the gateway.
// Resources the gateway cannot provide keep their current data; an empty
// remote catalog or registry falls back to the built-in seed. The remembered
// session is restored only if that member still exists and is approved.
// Every resource ends Ready whatever happened. A fetch that completes after a
// newer one has been applied is discarded.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	m.refreshSeq++
	seq := m.refreshSeq
	for _, r := range resources {
		m.status[r] = StatusLoading
	}
	m.mu.Unlock()

	var snap gateway.Snapshot
	if m.gateway != nil {
		snap = m.gateway.FetchAll(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq < m.appliedSeq {
		m.logger.Debug("discarding stale refresh", zap.Uint64("seq", seq), zap.Uint64("applied", m.appliedSeq))
		return
	}
	m.appliedSeq = seq

	if m.gateway != nil {
		m.applySnapshot(snap)
	}

	m.currentUserID = m.rememberedSession()

	for _, r := range resources {
		m.status[r] = StatusReady
	}
}

// applySnapshot must be called with mu held
func (m *Manager) applySnapshot(snap gateway.Snapshot) {
	switch {
	case snap.Products == nil:
		m.logger.Warn("products unavailable from remote store, keeping local copy")
	case len(snap.Products) == 0:
		m.products = models.SeedProducts()
	default:
		m.products = snap.Products
	}

	switch {
	case snap.Users == nil:
		m.logger.Warn("members unavailable from remote store, keeping local copy")
	case len(snap.Users) == 0:
		m.users = []models.User{m.admin.Clone()}
	default:
		m.users = snap.Users
	}

	if snap.SiteContent == nil {
		m.logger.Warn("site content unavailable from remote store, keeping local copy")
	} else {
		m.siteContent = *snap.SiteContent
	}

	m.cache.Save(snapshot.KeyProducts, m.products)
	m.cache.SaveUsers(m.users)
	m.cache.Save(snapshot.KeySiteContent, m.siteContent)
}

// rememberedSession returns the stored session's member id if that member
// exists and is approved. A stale session is dropped. Must be called with mu held
// or before the manager is shared.
func (m *Manager) rememberedSession() string {
	id := snapshot.Load(m.cache, snapshot.KeySession, "")
	if id == "" {
		return ""
	}
	i := m.userIndex(id)
	if i < 0 || !m.users[i].IsApproved {
		m.logger.Info("discarding remembered session", zap.String("user_id", id))
		m.cache.Remove(snapshot.KeySession)
		return ""
	}
	return id
}

// userIndex must be called with mu held
func (m *Manager) userIndex(id string) int {
	for i := range m.users {
		if m.users[i].ID == id {
			return i
		}
	}
	return -1
}

// productIndex must be called with mu held
func (m *Manager) productIndex(id string) int {
	for i := range m.products {
		if m.products[i].ID == id {
			return i
		}
	}
	return -1
}

// skuTaken reports whether a piece other than id carries sku. Must be called with mu held.
func (m *Manager) skuTaken(sku, id string) bool {
	for i := range m.products {
		if m.products[i].ID != id && strings.EqualFold(m.products[i].SKU, sku) {
			return true
		}
	}
	return false
}

// currentUser must be called with mu held
func (m *Manager) currentUser() (models.User, bool) {
	if m.currentUserID == "" {
		return models.User{}, false
	}
	i := m.userIndex(m.currentUserID)
	if i < 0 {
		return models.User{}, false
	}
	return m.users[i], true
}

// requireAdmin returns the signed-in curator's id
func (m *Manager) requireAdmin() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.currentUser()
	if !ok || !u.IsAdmin {
		return "", ErrForbidden
	}
	return u.ID, nil
}

// saveUsers must be called with mu held
func (m *Manager) saveUsers() {
	m.cache.SaveUsers(m.users)
}
