package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/api"
	"github.com/jumacaq/Megamoda-store/internal/config"
	"github.com/jumacaq/Megamoda-store/internal/core"
	"github.com/jumacaq/Megamoda-store/internal/db"
	"github.com/jumacaq/Megamoda-store/internal/middleware"
	"github.com/jumacaq/Megamoda-store/internal/paypal"
	"github.com/jumacaq/Megamoda-store/internal/recommend"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	// Development logger for human-readable local output; production gets the
	// JSON encoder.
	var zapLogger *zap.Logger
	var err error
	if strings.ToLower(os.Getenv("GIN_MODE")) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore client) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore", zap.Error(err))
	}
	firestoreClient := db.GetFirestoreClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	zapLogger.Info("Firestore client initialized successfully.")

	// --- 4. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	productRepo := db.NewFirestoreProductRepository(firestoreClient)
	cartRepo := db.NewFirestoreCartRepository(firestoreClient)
	orderRepo := db.NewFirestoreOrderRepository(firestoreClient)
	paymentRepo := db.NewFirestorePaymentIntentRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Initialize External Clients ---
	// Both return targets are the bare base URL; the callback handler tells
	// success and cancel apart by query parameters.
	paypalClient := paypal.NewClient(paypal.Config{
		BaseAPIURL:   appConfig.PaypalBaseAPIURL,
		ClientID:     appConfig.PaypalClientID,
		ClientSecret: appConfig.PaypalClientSecret,
		ReturnURL:    appConfig.BaseURL + "?payment=success",
		CancelURL:    appConfig.BaseURL + "?payment=cancelled",
	})

	var recommender recommend.Recommender
	if appConfig.OpenAIAPIKey != "" {
		recommender = recommend.NewOpenAIRecommender(appConfig.OpenAIAPIKey, "")
		zapLogger.Info("OpenAI recommender enabled.")
	} else {
		recommender = recommend.NoopRecommender{}
		zapLogger.Warn("OPENAI_API_KEY not set; outfit recommendations are disabled.")
	}

	// --- 6. Initialize Services ---
	authService := core.NewGoogleAuthService(appConfig.GoogleClientID, appConfig.GoogleClientSecret, appConfig.BaseURL)
	userService := core.NewUserService(userRepo)
	catalogService := core.NewCatalogService(productRepo, zapLogger)
	cartService := core.NewCartService(cartRepo, productRepo)
	checkoutService := core.NewCheckoutService(paypalClient, userRepo, cartRepo, productRepo, orderRepo, paymentRepo, zapLogger)
	sessions := middleware.NewSessionManager(appConfig.SessionSigningKey, appConfig.BaseURL, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 7. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 8. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 9. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		sessions,
		authService,
		userService,
		catalogService,
		cartService,
		checkoutService,
		recommender,
	)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
