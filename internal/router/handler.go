package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/ai"
	"aurelialuxe.com/boutique/pkg/gateway"
	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/models"
	"aurelialuxe.com/boutique/pkg/store"
)

// maxImageBytes bounds style match uploads
const maxImageBytes = 8 << 20

const healthPingTimeout = 2 * time.Second

type Handler struct {
	store     *store.Manager
	database  Pinger
	concierge *ai.Concierge
	matcher   *ai.StyleMatcher
	logger    *zap.Logger
}

func (h *Handler) HealthCheck(c *gin.Context) {
	backend := "local"
	if h.store.Remote() {
		backend = "remote"
	}
	health := map[string]string{
		"status":   "OK",
		"backend":  backend,
		"products": string(h.store.Status(gateway.ResourceProducts)),
		"users":    string(h.store.Status(gateway.ResourceUsers)),
	}
	if h.database == nil {
		c.JSON(http.StatusOK, global.SuccessResponse(health))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.database.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Database connection failed",
			[]global.ValidationError{{Message: "database unreachable", Code: "unavailable"}}))
		return
	}
	health["database"] = "Connected"
	c.JSON(http.StatusOK, global.SuccessResponse(health))
}

// Catalog

func (h *Handler) GetProducts(c *gin.Context) {
	products := h.store.FilterProducts(store.Filter{
		Category: c.Query("category"),
		Metal:    models.MetalPurity(c.Query("metal")),
		Stone:    models.StoneType(c.Query("stone")),
		Sort:     store.Sort(c.Query("sort")),
	})
	c.Header("X-Total-Count", strconv.Itoa(len(products)))
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// productDetail is a catalog piece with its review summary
type productDetail struct {
	models.Product
	AverageRating   float64 `json:"averageRating"`
	PositiveReviews int     `json:"positiveReviews"`
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.store.Product(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(productDetail{
		Product:         product,
		AverageRating:   product.AverageRating(),
		PositiveReviews: product.PositiveReviews(),
	}))
}

// GetProductPrice quotes a piece for the metal and stone query selection
func (h *Handler) GetProductPrice(c *gin.Context) {
	price, err := h.store.Quote(c.Param("id"), models.MetalPurity(c.Query("metal")), models.StoneType(c.Query("stone")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(price))
}

func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(h.store.Categories()))
}

func (h *Handler) GetSiteContent(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(h.store.SiteContent()))
}

// Bag

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (h *Handler) cart() cartResponse {
	return cartResponse{Items: h.store.Cart(), Total: h.store.CartTotal()}
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(h.cart()))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if !h.bind(c, &req) {
		return
	}
	if _, err := h.store.AddProductToCart(req.ProductID, req.Metal, req.Stone); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(h.cart()))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.store.RemoveFromCart(c.GetInt("index"))
	c.JSON(http.StatusOK, global.SuccessResponse(h.cart()))
}

func (h *Handler) ClearCart(c *gin.Context) {
	h.store.ClearCart()
	c.JSON(http.StatusOK, global.SuccessResponse(h.cart()))
}

func (h *Handler) SubmitConsultation(c *gin.Context) {
	var contact models.Contact
	if !h.bind(c, &contact) {
		return
	}
	order, err := h.store.SubmitConsultation(c.Request.Context(), contact)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}

// Membership

func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.store.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := global.SuccessResponse(user)
	resp.Message = "Your membership request is pending curator review"
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.store.Login(req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) Logout(c *gin.Context) {
	h.store.Logout()
	c.JSON(http.StatusOK, global.SuccessResponse(nil))
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := h.store.CurrentUser()
	if !ok {
		h.fail(c, store.ErrNotSignedIn)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.store.UpdateProfile(c.Request.Context(), req.Name, req.IsSubscribed)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) GetWishlist(c *gin.Context) {
	if _, ok := h.store.CurrentUser(); !ok {
		h.fail(c, store.ErrNotSignedIn)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(h.store.WishlistProducts()))
}

func (h *Handler) ToggleWishlist(c *gin.Context) {
	if _, ok := h.store.CurrentUser(); !ok {
		h.fail(c, store.ErrNotSignedIn)
		return
	}
	if err := h.store.ToggleWishlist(c.Request.Context(), c.Param("productId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(h.store.WishlistProducts()))
}

// AI advisory

type conciergeRequest struct {
	History []ai.Turn `json:"history"`
	Message string    `json:"message" binding:"required"`
}

func (h *Handler) Concierge(c *gin.Context) {
	var req conciergeRequest
	if !h.bind(c, &req) {
		return
	}
	reply := h.concierge.Reply(c.Request.Context(), req.History, req.Message)
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"reply": reply}))
}

// StyleMatch takes a multipart "image" upload and recommends catalog pieces
func (h *Handler) StyleMatch(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("An outfit image is required", []global.ValidationError{
			{Field: "image", Message: "image file is required", Code: "required"},
		}))
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Image is too large", []global.ValidationError{
			{Field: "image", Message: "image must be at most 8MB", Code: "too_large"},
		}))
		return
	}

	f, err := file.Open()
	if err != nil {
		h.logger.Warn("failed to open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Unreadable image", nil))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		h.logger.Warn("failed to read upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Unreadable image", nil))
		return
	}

	image := ai.ImageDataURL(file.Header.Get("Content-Type"), data)
	result := h.matcher.Match(c.Request.Context(), image, ai.CatalogSummary(h.store.Products()))
	if result == nil {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Our curator is momentarily unavailable. Please try again shortly.", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

// Curator's suite

func (h *Handler) CreateProduct(c *gin.Context) {
	var product models.Product
	if !h.bind(c, &product) {
		return
	}
	product.ID = ""
	saved, err := h.store.SaveProduct(c.Request.Context(), product)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(saved))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.Product(id); err != nil {
		h.fail(c, err)
		return
	}
	var product models.Product
	if !h.bind(c, &product) {
		return
	}
	product.ID = id
	saved, err := h.store.SaveProduct(c.Request.Context(), product)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(saved))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(nil))
}

func (h *Handler) UpdateSiteContent(c *gin.Context) {
	var content models.SiteContent
	if !h.bind(c, &content) {
		return
	}
	if err := h.store.UpdateSiteContent(c.Request.Context(), content); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(h.store.SiteContent()))
}

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.store.Users()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(len(users)))
	c.JSON(http.StatusOK, global.SuccessResponse(users))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.store.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(user))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if !h.bind(c, &req) {
		return
	}
	user, err := h.store.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) ApproveUser(c *gin.Context) {
	user, err := h.store.ApproveUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.store.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(nil))
}

// bind decodes the JSON body and writes a 400 when it is malformed or fails its binding rules
func (h *Handler) bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]global.ValidationError, len(verrs))
		for i, fe := range verrs {
			details[i] = global.ValidationError{Field: fe.Field(), Message: fe.Error(), Code: fe.Tag()}
		}
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Validation failed", details))
		return false
	}

	c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
		{Field: "body", Message: err.Error(), Code: "json_parse_error"},
	}))
	return false
}

// fail maps store errors onto HTTP statuses
func (h *Handler) fail(c *gin.Context, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]global.ValidationError, len(verrs))
		for i, fe := range verrs {
			details[i] = global.ValidationError{Field: fe.Field, Message: fe.Field + " failed " + fe.Rule, Code: fe.Rule}
		}
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Validation failed", details))
		return
	}

	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, store.ErrNotSignedIn):
		status, code = http.StatusUnauthorized, "not_signed_in"
	case errors.Is(err, store.ErrPendingApproval):
		status, code = http.StatusForbidden, "pending_approval"
	case errors.Is(err, store.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, store.ErrEmailTaken):
		status, code = http.StatusConflict, "email_taken"
	case errors.Is(err, store.ErrSKUTaken):
		status, code = http.StatusConflict, "sku_taken"
	case errors.Is(err, store.ErrSelfDeletion):
		status, code = http.StatusConflict, "self_deletion"
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrEmptyBag):
		status, code = http.StatusBadRequest, "empty_bag"
	case errors.Is(err, gateway.ErrUnavailable):
		status, code = http.StatusServiceUnavailable, "unavailable"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		message = "Something went wrong"
	}
	c.JSON(status, global.ErrorResponse(message, []global.ValidationError{{Message: message, Code: code}}))
}
