package store

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"aurelialuxe.com/boutique/pkg/auth"
	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/snapshot"
)

const adminPassword = "aurelia"

func init() {
	auth.Cost = bcrypt.MinCost
}

func seedAdmin(t *testing.T) models.User {
	t.Helper()
	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)
	return models.SeedAdmin("", hash)
}

func newCache(t *testing.T) *snapshot.Cache {
	return snapshot.New(snapshot.NewMemoryBackend(), zaptest.NewLogger(t))
}

func newLocal(t *testing.T, cache *snapshot.Cache) *Manager {
	t.Helper()
	if cache == nil {
		cache = newCache(t)
	}
	m := New(Options{Cache: cache, Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})
	m.Start(context.Background())
	return m
}

func newRemote(t *testing.T, gw gateway.Gateway) *Manager {
	t.Helper()
	m := New(Options{Gateway: gw, Cache: newCache(t), Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})
	m.Start(context.Background())
	t.Cleanup(m.Close)
	return m
}

func seededMemory(t *testing.T) *gateway.Memory {
	t.Helper()
	mem := gateway.NewMemory()
	content := models.SeedSiteContent()
	mem.Seed(models.SeedProducts(), []models.User{seedAdmin(t)}, &content)
	return mem
}

func loginAdmin(t *testing.T, m *Manager) models.User {
	t.Helper()
	u, err := m.Login(models.DefaultAdminEmail, adminPassword)
	require.NoError(t, err)
	return u
}

func TestNewStartsUninitialized(t *testing.T) {
	m := New(Options{Logger: zaptest.NewLogger(t)})
	for _, r := range resources {
		assert.Equal(t, StatusUninitialized, m.Status(r))
	}
	assert.Len(t, m.Products(), len(models.SeedProducts()))

	m.Refresh(context.Background())
	for _, r := range resources {
		assert.Equal(t, StatusReady, m.Status(r))
	}
}

func TestAddToCartAppendsDistinctLines(t *testing.T) {
	m := newLocal(t, nil)
	p := models.SeedProducts()[0]

	m.AddToCart(p, "", "")
	m.AddToCart(p, "", "")

	cart := m.Cart()
	require.Len(t, cart, 2)
	for _, item := range cart {
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, p.MetalPurity, item.SelectedMetal)
		assert.Equal(t, p.StoneType, item.SelectedStone)
	}
}

func TestAddToCartFreezesFinalPrice(t *testing.T) {
	m := newLocal(t, nil)
	p := models.Product{ID: "p1", BasePrice: 1000, Discount: models.IntPtr(10), MetalPurity: models.Metal14kGold, StoneType: models.StoneNone}

	item := m.AddToCart(p, models.MetalPlatinum, models.StoneRuby)

	assert.Equal(t, models.MetalPlatinum, item.SelectedMetal)
	assert.Equal(t, models.StoneRuby, item.SelectedStone)
	assert.InDelta(t, (1000.0+7500+4500)*0.9, item.FinalPrice, 0.001)
	assert.InDelta(t, item.FinalPrice, m.CartTotal(), 0.001)
}

func TestRemoveFromCart(t *testing.T) {
	m := newLocal(t, nil)
	products := models.SeedProducts()
	m.AddToCart(products[0], "", "")
	m.AddToCart(products[1], "", "")

	m.RemoveFromCart(5)
	m.RemoveFromCart(-1)
	require.Len(t, m.Cart(), 2)

	m.RemoveFromCart(0)
	cart := m.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, products[1].ID, cart[0].ID)
}

func TestClearCart(t *testing.T) {
	m := newLocal(t, nil)
	for _, p := range models.SeedProducts()[:3] {
		m.AddToCart(p, "", "")
	}
	m.ClearCart()
	assert.Empty(t, m.Cart())
	assert.Zero(t, m.CartTotal())
}

func TestCartSurvivesRestart(t *testing.T) {
	cache := newCache(t)
	m := newLocal(t, cache)
	m.AddToCart(models.SeedProducts()[2], "", "")

	restarted := newLocal(t, cache)
	assert.Len(t, restarted.Cart(), 1)
}

func TestToggleWishlistIsItsOwnInverse(t *testing.T) {
	for name, m := range map[string]*Manager{
		"local":  newLocal(t, nil),
		"remote": newRemote(t, seededMemory(t)),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			loginAdmin(t, m)
			productID := models.SeedProducts()[3].ID

			require.NoError(t, m.ToggleWishlist(ctx, productID))
			u, _ := m.CurrentUser()
			assert.Contains(t, u.Wishlist, productID)
			assert.Len(t, m.WishlistProducts(), 1)

			users, err := m.Users()
			require.NoError(t, err)
			for _, member := range users {
				if member.ID == u.ID {
					assert.Equal(t, u.Wishlist, member.Wishlist)
				}
			}

			require.NoError(t, m.ToggleWishlist(ctx, productID))
			u, _ = m.CurrentUser()
			assert.NotContains(t, u.Wishlist, productID)
		})
	}
}

func TestToggleWishlistWithoutMemberIsNoop(t *testing.T) {
	m := newLocal(t, nil)
	m.AddToCart(models.SeedProducts()[0], "", "")
	before := m.users

	require.NoError(t, m.ToggleWishlist(context.Background(), "p1"))

	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Len(t, m.Cart(), 1)
	assert.Equal(t, before, m.users)
}

func TestLoginCredentialErrors(t *testing.T) {
	ctx := context.Background()
	m := newLocal(t, nil)
	_, err := m.Register(ctx, "Isla", "isla@example.com", "secret-1")
	require.NoError(t, err)

	_, err = m.Login("nobody@example.com", "secret-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Login("isla@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Login(models.DefaultAdminEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = m.Login("ISLA@example.com", "secret-1")
	assert.ErrorIs(t, err, ErrPendingApproval)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailSpendsHashWork(t *testing.T) {
	prev := auth.Cost
	auth.Cost = 10
	t.Cleanup(func() { auth.Cost = prev })

	m := newLocal(t, nil)
	_, _ = m.Login("warmup@example.com", "wrong")

	start := time.Now()
	_, err := m.Login(models.DefaultAdminEmail, "wrong")
	known := time.Since(start)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	start = time.Now()
	_, err = m.Login("ghost@example.com", "wrong")
	unknown := time.Since(start)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Greater(t, unknown, known/4, "known=%s unknown=%s", known, unknown)
}

func TestRegisterApproveLogin(t *testing.T) {
	for name, m := range map[string]*Manager{
		"local":  newLocal(t, nil),
		"remote": newRemote(t, seededMemory(t)),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			member, err := m.Register(ctx, "Noor", "noor@example.com", "velvet-9")
			require.NoError(t, err)
			assert.False(t, member.IsApproved)
			assert.NotEmpty(t, member.PasswordHash)

			_, err = m.Login("noor@example.com", "velvet-9")
			require.ErrorIs(t, err, ErrPendingApproval)

			loginAdmin(t, m)
			_, err = m.ApproveUser(ctx, member.ID)
			require.NoError(t, err)
			m.Logout()

			u, err := m.Login("noor@example.com", "velvet-9")
			require.NoError(t, err)
			assert.Equal(t, member.ID, u.ID)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m := newRemote(t, seededMemory(t))

	_, err := m.Register(ctx, "Isla", "isla@example.com", "secret-1")
	require.NoError(t, err)
	_, err = m.Register(ctx, "Isla Again", " Isla@Example.com ", "secret-2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidates(t *testing.T) {
	_, err := newLocal(t, nil).Register(context.Background(), "Isla", "not-an-email", "secret-1")
	var verrs models.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAdminCreatedUsersStartApproved(t *testing.T) {
	ctx := context.Background()
	m := newLocal(t, nil)
	loginAdmin(t, m)

	u, err := m.CreateUser(ctx, models.CreateUserRequest{Name: "Mira", Email: "mira@example.com", Password: "secret-1"})
	require.NoError(t, err)
	assert.True(t, u.IsApproved)

	m.Logout()
	_, err = m.Login("mira@example.com", "secret-1")
	assert.NoError(t, err)
}

func TestAdminOperationsRequireCurator(t *testing.T) {
	ctx := context.Background()
	m := newLocal(t, nil)

	_, err := m.Users()
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = m.SaveProduct(ctx, models.SeedProducts()[0])
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, m.DeleteProduct(ctx, "x"), ErrForbidden)
	assert.ErrorIs(t, m.DeleteUser(ctx, "x"), ErrForbidden)
	assert.ErrorIs(t, m.UpdateSiteContent(ctx, models.SiteContent{}), ErrForbidden)

	loginAdmin(t, m)
	u, err := m.CreateUser(ctx, models.CreateUserRequest{Name: "Mira", Email: "mira@example.com", Password: "secret-1"})
	require.NoError(t, err)
	m.Logout()
	_, err = m.Login(u.Email, "secret-1")
	require.NoError(t, err)

	_, err = m.Users()
	assert.ErrorIs(t, err, ErrForbidden)
}

type recordingGateway struct {
	*gateway.Memory
	mu      sync.Mutex
	deleted []string
}

func (g *recordingGateway) DeleteUser(ctx context.Context, id string) error {
	g.mu.Lock()
	g.deleted = append(g.deleted, id)
	g.mu.Unlock()
	return g.Memory.DeleteUser(ctx, id)
}

func TestDeleteSelfIsRejectedBeforeGateway(t *testing.T) {
	ctx := context.Background()
	gw := &recordingGateway{Memory: seededMemory(t)}
	m := newRemote(t, gw)
	admin := loginAdmin(t, m)

	assert.ErrorIs(t, m.DeleteUser(ctx, admin.ID), ErrSelfDeletion)
	assert.Empty(t, gw.deleted)

	member, err := m.CreateUser(ctx, models.CreateUserRequest{Name: "Mira", Email: "mira@example.com", Password: "secret-1"})
	require.NoError(t, err)
	assert.ErrorIs(t, m.DeleteUser(ctx, admin.ID), ErrSelfDeletion)

	require.NoError(t, m.DeleteUser(ctx, member.ID))
	assert.Equal(t, []string{member.ID}, gw.deleted)
	users, err := m.Users()
	require.NoError(t, err)
	assert.Len(t, users, 1)

	assert.ErrorIs(t, m.DeleteUser(ctx, "missing"), ErrNotFound)
}

func TestUpdateSiteContentFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	mem := seededMemory(t)
	m := newRemote(t, mem)
	loginAdmin(t, m)
	before := m.SiteContent()

	mem.SetOffline(true)
	content := before
	content.Hero.Title = "Winter Atelier"
	err := m.UpdateSiteContent(ctx, content)
	require.ErrorIs(t, err, gateway.ErrUnavailable)
	assert.Equal(t, before, m.SiteContent())

	mem.SetOffline(false)
	require.NoError(t, m.UpdateSiteContent(ctx, content))
	assert.Equal(t, "Winter Atelier", m.SiteContent().Hero.Title)
}

func TestRefreshAppliesRemoteData(t *testing.T) {
	mem := seededMemory(t)
	m := newRemote(t, mem)
	assert.Len(t, m.Products(), len(models.SeedProducts()))

	mem.Seed(models.SeedProducts()[:4], []models.User{seedAdmin(t)}, nil)
	m.Refresh(context.Background())
	assert.Len(t, m.Products(), 4)
	assert.Equal(t, models.SeedSiteContent(), m.SiteContent())
}

func TestRefreshSeedsEmptyRemoteCollections(t *testing.T) {
	mem := gateway.NewMemory()
	mem.Seed([]models.Product{}, []models.User{}, nil)
	m := newRemote(t, mem)

	assert.Len(t, m.Products(), len(models.SeedProducts()))
	loginAdmin(t, m)
}

func TestRefreshFallsBackWhenOffline(t *testing.T) {
	mem := seededMemory(t)
	mem.SetOffline(true)
	m := newRemote(t, mem)

	for _, r := range resources {
		assert.Equal(t, StatusReady, m.Status(r))
	}
	assert.Len(t, m.Products(), len(models.SeedProducts()))
	loginAdmin(t, m)
}

type slowGateway struct {
	*gateway.Memory
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (g *slowGateway) FetchAll(ctx context.Context) gateway.Snapshot {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()

	snap := g.Memory.FetchAll(ctx)
	if n == 1 {
		close(g.started)
		<-g.release
	}
	return snap
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	ctx := context.Background()
	mem := seededMemory(t)
	mem.Seed(models.SeedProducts()[:2], []models.User{seedAdmin(t)}, nil)
	gw := &slowGateway{Memory: mem, started: make(chan struct{}), release: make(chan struct{})}
	m := New(Options{Gateway: gw, Cache: newCache(t), Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})

	done := make(chan struct{})
	go func() {
		m.Refresh(ctx)
		close(done)
	}()
	<-gw.started

	mem.Seed(models.SeedProducts()[:5], []models.User{seedAdmin(t)}, nil)
	m.Refresh(ctx)
	require.Len(t, m.Products(), 5)

	close(gw.release)
	<-done
	assert.Len(t, m.Products(), 5)
	assert.Equal(t, StatusReady, m.Status(gateway.ResourceProducts))
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	cache := newCache(t)
	mem := seededMemory(t)

	first := New(Options{Gateway: mem, Cache: cache, Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})
	first.Refresh(ctx)
	admin := loginAdmin(t, first)
	member, err := first.CreateUser(ctx, models.CreateUserRequest{Name: "Mira", Email: "mira@example.com", Password: "secret-1"})
	require.NoError(t, err)

	second := New(Options{Gateway: mem, Cache: cache, Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})
	second.Refresh(ctx)
	u, ok := second.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, admin.ID, u.ID)

	first.Logout()
	_, err = first.Login(member.Email, "secret-1")
	require.NoError(t, err)
	revoked := false
	require.NoError(t, mem.UpdateUser(ctx, member.ID, gateway.UserPatch{IsApproved: &revoked}))

	third := New(Options{Gateway: mem, Cache: cache, Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})
	third.Refresh(ctx)
	_, ok = third.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, "", snapshot.Load(cache, snapshot.KeySession, ""))
}

func TestStartSubscribesAndCloseReleases(t *testing.T) {
	ctx := context.Background()
	mem := seededMemory(t)
	m := New(Options{Gateway: mem, Cache: newCache(t), Logger: zaptest.NewLogger(t), Admin: seedAdmin(t)})
	m.Start(ctx)

	for _, r := range resources {
		assert.Equal(t, 1, mem.Subscribers(r))
	}

	added := models.SeedProducts()[0]
	added.ID = "remote-piece"
	added.SKU = "AUR-RM-1"
	require.NoError(t, mem.UpsertProduct(ctx, added))
	_, err := m.Product("remote-piece")
	assert.NoError(t, err)

	m.Close()
	m.Close()
	for _, r := range resources {
		assert.Equal(t, 0, mem.Subscribers(r))
	}
}

func TestSubmitConsultation(t *testing.T) {
	ctx := context.Background()
	contact := models.Contact{Name: "Isla", Email: "isla@example.com", Message: "Bridal set"}

	for name, m := range map[string]*Manager{
		"local":  newLocal(t, nil),
		"remote": newRemote(t, seededMemory(t)),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.SubmitConsultation(ctx, contact)
			require.ErrorIs(t, err, ErrEmptyBag)

			loginAdmin(t, m)
			m.AddToCart(models.SeedProducts()[0], "", "")
			m.AddToCart(models.SeedProducts()[1], "", "")
			total := m.CartTotal()

			order, err := m.SubmitConsultation(ctx, contact)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(order.RefNumber, "ALX-"))
			assert.Len(t, order.RefNumber, len("ALX-")+7)
			assert.Equal(t, models.OrderPending, order.Status)
			assert.Len(t, order.Items, 2)
			assert.InDelta(t, total, order.Total, 0.001)
			assert.Empty(t, m.Cart())

			u, _ := m.CurrentUser()
			require.Len(t, u.OrderHistory, 1)
			assert.Equal(t, order.RefNumber, u.OrderHistory[0].RefNumber)
		})
	}
}

func TestGuestConsultation(t *testing.T) {
	m := newLocal(t, nil)
	m.AddToCart(models.SeedProducts()[0], "", "")
	order, err := m.SubmitConsultation(context.Background(), models.Contact{Name: "Guest", Email: "guest@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Guest", order.Contact.Name)
	assert.Empty(t, m.Cart())
}

type heldUpdateGateway struct {
	*gateway.Memory
	started chan struct{}
	release chan struct{}
}

func (g *heldUpdateGateway) UpdateUser(ctx context.Context, id string, patch gateway.UserPatch) error {
	close(g.started)
	<-g.release
	return g.Memory.UpdateUser(ctx, id, patch)
}

func TestConsultationKeepsLineAddedDuringSubmit(t *testing.T) {
	ctx := context.Background()
	gw := &heldUpdateGateway{Memory: seededMemory(t), started: make(chan struct{}), release: make(chan struct{})}
	m := newRemote(t, gw)
	loginAdmin(t, m)
	m.AddToCart(models.SeedProducts()[0], "", "")

	type result struct {
		order models.Order
		err   error
	}
	submitted := make(chan result, 1)
	go func() {
		order, err := m.SubmitConsultation(ctx, models.Contact{Name: "Isla", Email: "isla@example.com"})
		submitted <- result{order, err}
	}()
	<-gw.started

	added := make(chan struct{})
	go func() {
		m.AddToCart(models.SeedProducts()[1], "", "")
		close(added)
	}()

	close(gw.release)
	res := <-submitted
	<-added

	require.NoError(t, res.err)
	require.Len(t, res.order.Items, 1)
	assert.Equal(t, models.SeedProducts()[0].ID, res.order.Items[0].ID)

	cart := m.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, models.SeedProducts()[1].ID, cart[0].ID)
}

func TestFilterProducts(t *testing.T) {
	m := newLocal(t, nil)

	rings := m.FilterProducts(Filter{Category: "Rings"})
	require.NotEmpty(t, rings)
	for _, p := range rings {
		assert.Equal(t, "Rings", p.Category)
	}

	all := m.FilterProducts(Filter{Category: AllFilter, Metal: AllFilter, Stone: AllFilter})
	assert.Len(t, all, len(models.SeedProducts()))

	pearls := m.FilterProducts(Filter{Stone: models.StonePearl})
	for _, p := range pearls {
		assert.Equal(t, models.StonePearl, p.StoneType)
	}

	asc := m.FilterProducts(Filter{Sort: SortPriceAsc})
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].BasePrice, asc[i].BasePrice)
	}
	desc := m.FilterProducts(Filter{Sort: SortPriceDesc})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].BasePrice, desc[i].BasePrice)
	}

	assert.Empty(t, m.FilterProducts(Filter{Metal: models.MetalPlatinum}))
	assert.Equal(t, []string{"Rings", "Necklaces", "Earrings", "Bracelets"}, m.Categories())
}

func TestQuote(t *testing.T) {
	m := newLocal(t, nil)
	p := models.SeedProducts()[0]

	own, err := m.Quote(p.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, m.AddToCart(p, "", "").FinalPrice, own.Final)

	_, err = m.Quote("missing", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	for name, m := range map[string]*Manager{
		"local":  newLocal(t, nil),
		"remote": newRemote(t, seededMemory(t)),
	} {
		t.Run(name, func(t *testing.T) {
			loginAdmin(t, m)

			created, err := m.SaveProduct(ctx, models.Product{
				Name:        "Moonlit Choker",
				BasePrice:   2400,
				Category:    "Necklaces",
				MetalPurity: models.Metal18kGold,
				StoneType:   models.StonePearl,
				StockStatus: models.MadeToOrder,
			})
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.True(t, strings.HasPrefix(created.SKU, "AUR-NE-"))

			bySKU, err := m.ProductBySKU(created.SKU)
			require.NoError(t, err)
			assert.Equal(t, created.ID, bySKU.ID)

			created.BasePrice = 2600
			_, err = m.SaveProduct(ctx, created)
			require.NoError(t, err)
			got, err := m.Product(created.ID)
			require.NoError(t, err)
			assert.Equal(t, 2600, got.BasePrice)
			assert.Len(t, m.Products(), len(models.SeedProducts())+1)

			require.NoError(t, m.DeleteProduct(ctx, created.ID))
			_, err = m.Product(created.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, m.DeleteProduct(ctx, created.ID), ErrNotFound)
		})
	}
}

func TestSaveProductRejectsTakenSKU(t *testing.T) {
	ctx := context.Background()
	taken := models.SeedProducts()[0].SKU

	t.Run("local", func(t *testing.T) {
		m := newLocal(t, nil)
		loginAdmin(t, m)
		p := models.SeedProducts()[1]
		p.SKU = taken
		_, err := m.SaveProduct(ctx, p)
		assert.ErrorIs(t, err, ErrSKUTaken)

		got, err := m.Product(p.ID)
		require.NoError(t, err)
		assert.NotEqual(t, taken, got.SKU)
	})

	t.Run("remote", func(t *testing.T) {
		mem := seededMemory(t)
		m := newRemote(t, mem)
		loginAdmin(t, m)

		// Seed does not notify, so the manager has not seen this piece
		hidden := models.SeedProducts()[1]
		hidden.ID = "remote-only"
		hidden.SKU = "AUR-RI-REMOTE"
		mem.Seed(append(models.SeedProducts(), hidden), []models.User{seedAdmin(t)}, nil)

		p := models.SeedProducts()[2]
		p.SKU = hidden.SKU
		require.Len(t, m.Products(), len(models.SeedProducts()))

		_, err := m.SaveProduct(ctx, p)
		assert.ErrorIs(t, err, ErrSKUTaken)
	})
}

func TestSaveProductValidates(t *testing.T) {
	m := newLocal(t, nil)
	loginAdmin(t, m)

	_, err := m.SaveProduct(context.Background(), models.Product{
		Name:        "Odd",
		Category:    "Rings",
		MetalPurity: "Bronze",
		StoneType:   models.StoneNone,
		StockStatus: models.InStock,
	})
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestUpdateProfileAndUser(t *testing.T) {
	ctx := context.Background()
	m := newLocal(t, nil)

	_, err := m.UpdateProfile(ctx, "Someone", true)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	loginAdmin(t, m)
	u, err := m.UpdateProfile(ctx, "Head Curator", false)
	require.NoError(t, err)
	assert.Equal(t, "Head Curator", u.Name)
	assert.False(t, u.IsSubscribed)

	member, err := m.CreateUser(ctx, models.CreateUserRequest{Name: "Mira", Email: "mira@example.com", Password: "secret-1"})
	require.NoError(t, err)

	promoted := true
	updated, err := m.UpdateUser(ctx, member.ID, models.UpdateUserRequest{IsAdmin: &promoted, Password: "new-secret"})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)

	m.Logout()
	_, err = m.Login("mira@example.com", "secret-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Login("mira@example.com", "new-secret")
	assert.NoError(t, err)

	_, err = m.UpdateUser(ctx, "missing", models.UpdateUserRequest{IsAdmin: &promoted})
	assert.ErrorIs(t, err, ErrNotFound)
}
