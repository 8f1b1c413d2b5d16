package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/ai"
	"aurelialuxe.com/boutique/pkg/logging"
	"aurelialuxe.com/boutique/pkg/store"
)

// Pinger reports whether a backing database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Store        *store.Manager
	Database     Pinger
	Concierge    *ai.Concierge
	StyleMatcher *ai.StyleMatcher
	Logger       *zap.Logger

	AllowedOrigins []string
	Production     bool
}

// New builds the gin engine with middleware and every route registered
func New(opts Options) *gin.Engine {
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logging.OrNop(opts.Logger).Named("http")

	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := &Handler{
		store:     opts.Store,
		database:  opts.Database,
		concierge: opts.Concierge,
		matcher:   opts.StyleMatcher,
		logger:    logger,
	}
	if h.concierge == nil {
		h.concierge = ai.NewConcierge(nil, logger)
	}
	if h.matcher == nil {
		h.matcher = ai.NewStyleMatcher(nil, logger)
	}
	h.register(router)
	return router
}

func (h *Handler) register(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/categories", h.GetCategories)
		api.GET("/site-content", h.GetSiteContent)

		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.GET("/:id", h.GetProduct)
			products.GET("/:id/price", h.GetProductPrice)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.POST("/items", h.AddToCart)
			cart.DELETE("/items/:index", ParseIndex("index"), h.RemoveFromCart)
			cart.DELETE("", h.ClearCart)
		}

		api.POST("/consultations", h.SubmitConsultation)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.Logout)
			auth.GET("/me", h.Me)
		}

		api.PUT("/profile", h.UpdateProfile)

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("", h.GetWishlist)
			wishlist.POST("/:productId", h.ToggleWishlist)
		}

		api.POST("/concierge", h.Concierge)
		api.POST("/style-match", h.StyleMatch)

		admin := api.Group("/admin")
		admin.Use(RequireAdmin(h.store))
		{
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.PUT("/site-content", h.UpdateSiteContent)
			admin.GET("/users", h.GetUsers)
			admin.POST("/users", h.CreateUser)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.POST("/users/:id/approve", h.ApproveUser)
			admin.DELETE("/users/:id", h.DeleteUser)
		}
	}
}
