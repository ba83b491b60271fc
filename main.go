package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Println("🚀 Starting Storefront API Server...")
	log.Printf("📍 Environment: %s", cfg.Env)

	// Connect to database
	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDB()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productRepo)
	pricingHandler := handler.NewPricingHandler()
	cartHandler := handler.NewCartHandler(cartRepo, productRepo)
	authHandler := handler.NewAuthHandler(cfg, userRepo)

	// Middleware helpers
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)

	// Setup router
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ==========================================
	// PUBLIC ROUTES (No auth required)
	// ==========================================

	// Catalog endpoints
	mux.HandleFunc("GET /api/v1/products", productHandler.GetProducts)
	mux.HandleFunc("GET /api/v1/products/{slug}", productHandler.GetProductBySlug)
	mux.HandleFunc("GET /api/v1/categories", productHandler.GetCategories)

	// Pricing quote (rate limited)
	mux.HandleFunc("POST /api/v1/pricing/quote", rateLimiter.Limit(pricingHandler.Quote))

	// Auth endpoints (rate limited)
	mux.HandleFunc("POST /api/v1/auth/login", rateLimiter.Limit(authHandler.Login))
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", authMiddleware.MemberAuth(authHandler.GetProfile))

	// ==========================================
	// MEMBER ROUTES (JWT required)
	// ==========================================
	mux.HandleFunc("GET /api/v1/cart", authMiddleware.MemberAuth(cartHandler.GetCart))
	mux.HandleFunc("POST /api/v1/cart/items", authMiddleware.MemberAuth(cartHandler.AddItem))
	mux.HandleFunc("PUT /api/v1/cart/items/{id}", authMiddleware.MemberAuth(cartHandler.UpdateItem))
	mux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.MemberAuth(cartHandler.RemoveItem))

	// Apply middleware to API routes
	var apiHandler http.Handler = mux
	apiHandler = middleware.ContentTypeJSON(apiHandler)
	apiHandler = middleware.Logger(apiHandler)
	apiHandler = middleware.CORS(apiHandler)
	apiHandler = middleware.Recoverer(apiHandler)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      apiHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
		log.Println("📋 API Endpoints:")
		log.Println("   GET    /health                   - Health check")
		log.Println("   GET    /api/v1/products          - List products (priced)")
		log.Println("   GET    /api/v1/products/{slug}   - Product detail (priced)")
		log.Println("   GET    /api/v1/categories        - List categories")
		log.Println("   POST   /api/v1/pricing/quote     - Price a product payload")
		log.Println("   POST   /api/v1/auth/login        - Member login")
		log.Println("   GET    /api/v1/auth/me           - Member profile")
		log.Println("   GET    /api/v1/cart              - Cart (repriced)")
		log.Println("   POST   /api/v1/cart/items        - Add cart item")
		log.Println("   PUT    /api/v1/cart/items/{id}   - Update cart item")
		log.Println("   DELETE /api/v1/cart/items/{id}   - Remove cart item")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⏳ Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server exited")
}
