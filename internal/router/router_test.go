package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"aurelialuxe.com/boutique/pkg/ai"
	"aurelialuxe.com/boutique/pkg/auth"
	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/pricing"
	"aurelialuxe.com/boutique/pkg/store"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.Cost = bcrypt.MinCost
}

type envelope struct {
	Success bool                     `json:"success"`
	Data    json.RawMessage          `json:"data"`
	Message string                   `json:"message"`
	Errors  []global.ValidationError `json:"errors"`
}

type fakeCompleter struct {
	reply string
}

func (f fakeCompleter) Complete(context.Context, ai.CompletionRequest) (string, error) {
	return f.reply, nil
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *store.Manager
}

func newTestServer(t *testing.T, completer ai.Completer) *testServer {
	t.Helper()
	hash, err := auth.HashPassword("aurelia")
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	m := store.New(store.Options{Logger: logger, Admin: models.SeedAdmin("", hash)})
	m.Start(context.Background())

	engine := New(Options{
		Store:        m,
		Concierge:    ai.NewConcierge(completer, logger),
		StyleMatcher: ai.NewStyleMatcher(completer, logger),
		Logger:       logger,
	})
	return &testServer{t: t, engine: engine, store: m}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) loginAdmin() {
	s.t.Helper()
	w, _ := s.do(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: models.DefaultAdminEmail, Password: "aurelia"})
	require.Equal(s.t, http.StatusOK, w.Code)
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)
	w, env := s.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decode[map[string]string](t, env)
	assert.Equal(t, "local", data["backend"])
	assert.Equal(t, string(store.StatusReady), data["products"])
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthCheckPingsDatabase(t *testing.T) {
	s := newTestServer(t, nil)
	logger := zaptest.NewLogger(t)

	s.engine = New(Options{Store: s.store, Database: fakePinger{}, Logger: logger})
	w, env := s.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Connected", decode[map[string]string](t, env)["database"])

	s.engine = New(Options{Store: s.store, Database: fakePinger{err: errors.New("server selection timeout")}, Logger: logger})
	w, env = s.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "unavailable", env.Errors[0].Code)
}

func TestProductDetailCarriesReviewSummary(t *testing.T) {
	s := newTestServer(t, nil)
	s.loginAdmin()

	p := models.SeedProducts()[3]
	p.Reviews = []models.Review{
		{ID: "r1", UserName: "Isla", Rating: 5, Comment: "Stunning"},
		{ID: "r2", UserName: "Mira", Rating: 3},
	}
	w, _ := s.do(http.MethodPut, "/api/admin/products/"+p.ID, p)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/products/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[productDetail](t, env)
	assert.Equal(t, p.ID, detail.ID)
	assert.InDelta(t, 4.0, detail.AverageRating, 0.001)
	assert.Equal(t, 1, detail.PositiveReviews)

	w, env = s.do(http.MethodGet, "/api/products?sort=rating", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, p.ID, decode[[]models.Product](t, env)[0].ID)
}

func TestCreateProductWithTakenSKU(t *testing.T) {
	s := newTestServer(t, nil)
	s.loginAdmin()

	w, env := s.do(http.MethodPost, "/api/admin/products", models.Product{
		SKU:         models.SeedProducts()[0].SKU,
		Name:        "Twin Band",
		BasePrice:   900,
		Category:    "Rings",
		MetalPurity: models.Metal14kGold,
		StoneType:   models.StoneNone,
		StockStatus: models.InStock,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "sku_taken", env.Errors[0].Code)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(http.MethodGet, "/api/products?category=Rings&sort=price_desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rings := decode[[]models.Product](t, env)
	require.NotEmpty(t, rings)
	assert.Equal(t, w.Header().Get("X-Total-Count"), strconv.Itoa(len(rings)))
	for i, p := range rings {
		assert.Equal(t, "Rings", p.Category)
		if i > 0 {
			assert.GreaterOrEqual(t, rings[i-1].BasePrice, p.BasePrice)
		}
	}

	w, env = s.do(http.MethodGet, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Errors[0].Code)

	p := models.SeedProducts()[0]
	w, env = s.do(http.MethodGet, "/api/products/"+p.ID+"/price?metal=Platinum&stone=Diamond", nil)
	require.Equal(t, http.StatusOK, w.Code)
	price := decode[pricing.Price](t, env)
	assert.Equal(t, pricing.CalculatePrice(p, models.MetalPlatinum, models.StoneDiamond), price)

	w, env = s.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[[]string](t, env), "Bracelets")

	w, env = s.do(http.MethodGet, "/api/site-content", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.SeedSiteContent(), decode[models.SiteContent](t, env))
}

func TestBagRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	p := models.SeedProducts()[1]

	w, env := s.do(http.MethodPost, "/api/consultations", models.Contact{Name: "Isla", Email: "isla@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_bag", env.Errors[0].Code)

	w, _ = s.do(http.MethodPost, "/api/cart/items", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/api/cart/items", models.AddToCartRequest{ProductID: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	for range 2 {
		w, _ = s.do(http.MethodPost, "/api/cart/items", models.AddToCartRequest{ProductID: p.ID})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w, env = s.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode[cartResponse](t, env)
	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 2*pricing.CalculatePrice(p, p.MetalPurity, p.StoneType).Final, cart.Total, 0.001)

	w, _ = s.do(http.MethodDelete, "/api/cart/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, env = s.do(http.MethodDelete, "/api/cart/items/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[cartResponse](t, env).Items, 1)

	w, env = s.do(http.MethodPost, "/api/consultations", models.Contact{Name: "Isla", Email: "isla@example.com", Message: "Bridal"})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[models.Order](t, env)
	assert.Regexp(t, `^ALX-[0-9A-Z]{7}$`, order.RefNumber)
	assert.Empty(t, s.store.Cart())

	s.do(http.MethodPost, "/api/cart/items", models.AddToCartRequest{ProductID: p.ID})
	w, env = s.do(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[cartResponse](t, env).Items)
}

func TestMembershipFlow(t *testing.T) {
	s := newTestServer(t, nil)
	register := models.RegisterRequest{Name: "Noor", Email: "noor@example.com", Password: "velvet-9"}

	w, env := s.do(http.MethodPost, "/api/auth/register", register)
	require.Equal(t, http.StatusCreated, w.Code)
	member := decode[models.User](t, env)
	assert.False(t, member.IsApproved)
	assert.NotContains(t, string(env.Data), "password")

	w, env = s.do(http.MethodPost, "/api/auth/register", register)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", env.Errors[0].Code)

	login := models.LoginRequest{Email: register.Email, Password: register.Password}
	w, env = s.do(http.MethodPost, "/api/auth/login", login)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "pending_approval", env.Errors[0].Code)

	w, env = s.do(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: register.Email, Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", env.Errors[0].Code)

	w, env = s.do(http.MethodPost, "/api/auth/login", models.LoginRequest{Email: "ghost@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", env.Errors[0].Code)

	w, _ = s.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.loginAdmin()
	w, _ = s.do(http.MethodPost, "/api/admin/users/"+member.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	s.do(http.MethodPost, "/api/auth/logout", nil)

	w, _ = s.do(http.MethodPost, "/api/auth/login", login)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, member.ID, decode[models.User](t, env).ID)

	w, env = s.do(http.MethodPut, "/api/profile", models.UpdateProfileRequest{Name: "Noor A.", IsSubscribed: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Noor A.", decode[models.User](t, env).Name)

	p := models.SeedProducts()[4]
	w, env = s.do(http.MethodPost, "/api/wishlist/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Product](t, env), 1)
	w, env = s.do(http.MethodGet, "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, p.ID, decode[[]models.Product](t, env)[0].ID)

	w, _ = s.do(http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", env.Errors[0].Code)

	s.loginAdmin()
	admin, _ := s.store.CurrentUser()

	w, env = s.do(http.MethodDelete, "/api/admin/users/"+admin.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "self_deletion", env.Errors[0].Code)

	w, env = s.do(http.MethodPost, "/api/admin/users", models.CreateUserRequest{Name: "Mira", Email: "mira@example.com", Password: "secret-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	mira := decode[models.User](t, env)
	assert.True(t, mira.IsApproved)

	name := "Mira L."
	w, env = s.do(http.MethodPut, "/api/admin/users/"+mira.ID, models.UpdateUserRequest{Name: &name})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, name, decode[models.User](t, env).Name)

	w, env = s.do(http.MethodGet, "/api/admin/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, env), 2)

	w, _ = s.do(http.MethodDelete, "/api/admin/users/"+mira.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/admin/users/"+mira.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodPost, "/api/admin/products", models.Product{
		Name:        "Moonlit Choker",
		BasePrice:   2400,
		Category:    "Necklaces",
		MetalPurity: models.Metal18kGold,
		StoneType:   models.StonePearl,
		StockStatus: models.MadeToOrder,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Product](t, env)
	assert.NotEmpty(t, created.ID)

	created.Discount = models.IntPtr(150)
	w, env = s.do(http.MethodPut, "/api/admin/products/"+created.ID, created)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Discount", env.Errors[0].Field)

	created.Discount = models.IntPtr(10)
	w, _ = s.do(http.MethodPut, "/api/admin/products/"+created.ID, created)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPut, "/api/admin/products/missing", created)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/admin/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	content := models.SeedSiteContent()
	content.Hero.Title = "Winter Atelier"
	w, env = s.do(http.MethodPut, "/api/admin/site-content", content)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Winter Atelier", decode[models.SiteContent](t, env).Hero.Title)
}

func TestConciergeRoute(t *testing.T) {
	s := newTestServer(t, fakeCompleter{reply: "An emerald pendant would be timeless."})

	w, _ := s.do(http.MethodPost, "/api/concierge", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.do(http.MethodPost, "/api/concierge", conciergeRequest{
		History: []ai.Turn{{Role: ai.RoleAssistant, Text: ai.ConciergeGreeting}},
		Message: "A gift for my mother?",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "An emerald pendant would be timeless.", decode[map[string]string](t, env)["reply"])

	disabled := newTestServer(t, nil)
	_, env = disabled.do(http.MethodPost, "/api/concierge", conciergeRequest{Message: "Hello"})
	assert.Equal(t, ai.ConciergeFallback, decode[map[string]string](t, env)["reply"])
}

func styleMatchRequest(t *testing.T) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "outfit.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/style-match", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestStyleMatchRoute(t *testing.T) {
	sku := models.SeedProducts()[0].SKU
	s := newTestServer(t, fakeCompleter{reply: `{"analysis":"Soft ivory linen.","matches":[{"sku":"` + sku + `","reason":"Warm gold against ivory."}]}`})

	w, env := s.serve(styleMatchRequest(t))
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[ai.StyleMatch](t, env)
	assert.Equal(t, "Soft ivory linen.", result.Analysis)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, sku, result.Matches[0].SKU)

	w, _ = s.do(http.MethodPost, "/api/style-match", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	disabled := newTestServer(t, nil)
	w, _ = disabled.serve(styleMatchRequest(t))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
