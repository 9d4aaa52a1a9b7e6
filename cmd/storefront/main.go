// Storefront is the merch shop backend: catalog with color/size variants,
// per-user carts, checkout with flat shipping fees and manual voucher-based
// payment intake.
//
//	@title			Storefront API
//	@version		1.0
//	@description	Merch storefront: catalog, cart, checkout and manual payment intake.
//	@BasePath		/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ltsmerch/storefront/docs"
	"github.com/ltsmerch/storefront/internal/api/handlers"
	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/cache"
	"github.com/ltsmerch/storefront/internal/config"
	"github.com/ltsmerch/storefront/internal/health"
	"github.com/ltsmerch/storefront/internal/metrics"
	repository "github.com/ltsmerch/storefront/internal/repositories"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/ltsmerch/storefront/internal/storage"
	"github.com/ltsmerch/storefront/internal/telemetry"
	"github.com/ltsmerch/storefront/pkg/email"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.Setup(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("Failed to set up tracing", "error", err.Error())
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Error("Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := repository.NewRateLimiter(redisClient, &cfg.RateConfig)

	files, err := storage.New(&cfg.Storage)
	if err != nil {
		slog.Error("Error initializing file storage", "error", err.Error())
		os.Exit(1)
	}

	var mailer email.Sender
	if cfg.SendGrid.APIKey != "" {
		mailer = email.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	userService := service.NewUserService(repos.User, rateLimiter, &cfg.Security)
	catalogService := service.NewCatalogService(repos.Product, productCache, files)
	cartService := service.NewCartService(repos.Cart, catalogService)
	pricingService := service.NewPricingService(repos.Cart)
	checkoutService := service.NewCheckoutService(repos.Order, cartService, pricingService)
	paymentService := service.NewPaymentService(repos.Payment, repos.Order, repos.User, files, mailer)

	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error initializing health checks", "error", err.Error())
		os.Exit(1)
	}

	auth := middleware.Auth(cfg.Security.JWTKey)
	admin := func(h http.Handler) http.Handler { return auth(middleware.RequireAdmin(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	mux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	mux.Handle("GET /api/v1/users/me", auth(userHandler.Profile()))

	mux.HandleFunc("GET /api/v1/products", productHandler.List())
	mux.HandleFunc("GET /api/v1/products/{id}", productHandler.Get())
	mux.HandleFunc("GET /api/v1/products/{id}/variants", productHandler.ListVariants())
	mux.Handle("POST /api/v1/products", admin(productHandler.Create()))
	mux.Handle("PUT /api/v1/products/{id}", admin(productHandler.Update()))
	mux.Handle("DELETE /api/v1/products/{id}", admin(productHandler.Delete()))
	mux.Handle("POST /api/v1/products/{id}/variants", admin(productHandler.CreateVariant()))

	mux.Handle("GET /api/v1/cart", auth(cartHandler.Get()))
	mux.Handle("POST /api/v1/cart/items", auth(cartHandler.AddItem()))
	mux.Handle("PUT /api/v1/cart/items", auth(cartHandler.UpdateItem()))
	mux.Handle("DELETE /api/v1/cart/items/{itemID}", auth(cartHandler.RemoveItem()))

	mux.Handle("GET /api/v1/checkout", auth(checkoutHandler.Begin()))
	mux.Handle("POST /api/v1/checkout", auth(checkoutHandler.SubmitShipping()))
	mux.Handle("GET /api/v1/orders", auth(checkoutHandler.ListOrders()))
	mux.Handle("GET /api/v1/orders/{id}", auth(checkoutHandler.GetOrder()))

	mux.Handle("POST /api/v1/payments", auth(paymentHandler.Submit()))

	mux.Handle("GET /api/v1/admin/orders", admin(checkoutHandler.ListAllOrders()))
	mux.Handle("PUT /api/v1/admin/orders/{id}/status", admin(checkoutHandler.UpdateOrderStatus()))
	mux.Handle("DELETE /api/v1/admin/orders/{id}", admin(checkoutHandler.DeleteOrder()))
	mux.Handle("GET /api/v1/admin/orders/{id}/payments", admin(paymentHandler.ListByOrder()))
	mux.Handle("POST /api/v1/admin/payments/{id}/review", admin(paymentHandler.Review()))

	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /health", healthHandler.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr), slog.String("env", cfg.Env))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Info("Shutdown signal received, stopping the server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(ctx); err != nil {
		slog.Error("Tracing shutdown failed", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("Redis shutdown failed", slog.String("error", err.Error()))
	}

	slog.Info("Server stopped")
}
