package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/config"
	"github.com/jumacaq/Megamoda-store/internal/core"
	"github.com/jumacaq/Megamoda-store/internal/middleware"
	"github.com/jumacaq/Megamoda-store/internal/recommend"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) is expected to be
// applied to the `router` instance *before* this function is called,
// typically in `main.go`.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	sessions *middleware.SessionManager,
	authService core.AuthService,
	userService core.UserService,
	catalogService core.CatalogService,
	cartService core.CartService,
	checkoutService core.CheckoutService,
	recommender recommend.Recommender,
) {
	// --- Initialize Handlers ---
	authHandler := NewAuthHandler(authService, userService, sessions, logger, appConfig.ClientURL)
	callbackHandler := NewCallbackHandler(authHandler, checkoutService, sessions, logger)
	userHandler := NewUserHandler(userService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)
	cartHandler := NewCartHandler(cartService, catalogService, recommender, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)

	// --- Base URL ---
	// Both external providers redirect back to the bare base URL with query
	// parameters only, so GET / must multiplex between the OAuth return, the
	// PayPal return, the PayPal cancel and an ordinary visit.
	router.GET("/", callbackHandler.HandleRoot)

	// --- Define API Route Groups ---
	apiV1 := router.Group("/api/v1")
	{
		// --- Authentication Endpoints ---
		authGroup := apiV1.Group("/auth")
		{
			// GET /api/v1/auth/login - redirects the browser to Google.
			authGroup.GET("/login", authHandler.Login)

			// POST /api/v1/auth/logout - requires a session to have one to clear.
			authGroup.POST("/logout", sessions.RequireSession(), authHandler.Logout)
		}

		// --- User Endpoints ---
		usersGroup := apiV1.Group("/users", sessions.RequireSession())
		{
			// GET /api/v1/users/me - the stored profile of the session's user.
			usersGroup.GET("/me", userHandler.GetMe)
		}

		// --- Catalog Endpoints (public, browsing needs no session) ---
		productsGroup := apiV1.Group("/products")
		{
			productsGroup.GET("", catalogHandler.ListProducts)
			productsGroup.GET("/:id", catalogHandler.GetProduct)
		}

		// --- Cart Endpoints ---
		// Every cart operation acts on the session user's cart.
		cartGroup := apiV1.Group("/cart", sessions.RequireSession())
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.DELETE("/items/:productId", cartHandler.RemoveItem)
		}

		// --- Checkout Endpoint ---
		// Starting a checkout requires a session; completing it does not,
		// because PayPal's redirect carries no cookie and the buyer is
		// re-identified from the stored payment intent instead.
		apiV1.POST("/checkout", sessions.RequireSession(), checkoutHandler.BeginCheckout)
	}

	// --- General Health Check Endpoint ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Megamoda backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
