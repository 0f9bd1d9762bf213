package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkFlame/app/echo-server/router"
	"linkFlame/business/billing"
	"linkFlame/business/cart"
	"linkFlame/business/catalog"
	"linkFlame/business/category"
	"linkFlame/business/impact"
	"linkFlame/business/loyalty"
	"linkFlame/business/orders"
	"linkFlame/business/quiz"
	"linkFlame/business/referral"
	userService "linkFlame/business/user"
	"linkFlame/business/wishlist"
	"linkFlame/internal/middleware"
	"linkFlame/internal/repository/notification"
	psqlRepo "linkFlame/internal/repository/postgres"
	"linkFlame/internal/repository/stripe"
	"linkFlame/internal/rest"
	"linkFlame/pkg/config"
	"linkFlame/pkg/database"
	redisdb "linkFlame/pkg/database/redis"
	"linkFlame/pkg/logger"
	"linkFlame/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Link Flame", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	metrics.Init()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			BaseURL:           cfg.Mailjet.MailjetBaseUrl,
			BasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			BasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			SenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			SenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	stripeRepo := stripe.NewStripeRepository(
		stripe.StripeConfig{
			SecretKey:       cfg.Stripe.SecretKey,
			APIBaseUrl:      cfg.Stripe.APIBaseUrl,
			SuccessUrl:      cfg.Stripe.SuccessUrl,
			CancelUrl:       cfg.Stripe.CancelUrl,
			PortalReturnUrl: cfg.Stripe.PortalReturnUrl,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	wishlistRepo := psqlRepo.NewWishlistRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	billingRepo := psqlRepo.NewBillingRepository(db)
	referralRepo := psqlRepo.NewReferralRepository(db)
	loyaltyRepo := psqlRepo.NewLoyaltyRepository(db)
	quizRepo := psqlRepo.NewQuizRepository(db)
	impactRepo := psqlRepo.NewImpactRepository(db)
	orgRepo := psqlRepo.NewOrganizationRepository(db)

	// Init service
	referralService := referral.NewReferralService(referralRepo, userRepo)
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, referralService, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl, cfg.JWT.SecretKey)
	catalogService := catalog.NewCatalogService(productRepo, reviewRepo)
	categoryService := category.NewCategoryService(categoryRepo)
	cartService := cart.NewCartService(cartRepo, productRepo)
	wishlistService := wishlist.NewWishlistService(wishlistRepo, productRepo)
	ordersService := orders.NewOrdersService(ordersRepo)
	loyaltyService := loyalty.NewLoyaltyService(loyaltyRepo)
	quizService := quiz.NewQuizService(quizRepo, productRepo)
	impactService := impact.NewImpactService(impactRepo)

	enricher := billing.NewOrderEnricher(loyaltyRepo, impactRepo, referralRepo, mailjetEmail, userRepo, productRepo)
	billingService := billing.NewBillingService(ordersRepo, billingRepo, cartRepo, productRepo, userRepo, orgRepo, stripeRepo, enricher)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	catalogHandler := rest.NewCatalogHandler(catalogService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	cartHandler := rest.NewCartHandler(cartService)
	wishlistHandler := rest.NewWishlistHandler(wishlistService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	billingHandler := rest.NewBillingHandler(billingService)
	webhookHandler := rest.NewWebhookHandler(billingService, cfg.Stripe.WebhookSecret)
	referralHandler := rest.NewReferralHandler(referralService)
	loyaltyHandler := rest.NewLoyaltyHandler(loyaltyService)
	quizHandler := rest.NewQuizHandler(quizService)
	impactHandler := rest.NewImpactHandler(impactService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	rateLimiter := middleware.NewRateLimiter(
		redisClient,
		int64(cfg.RateLimit.RequestsPerWindow),
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)

	// Setup routes. The Stripe webhook lives outside the rate-limited
	// group, deliveries come from Stripe and must not be throttled.
	api := e.Group("/api/v1", rateLimiter.Limit("api"))
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupCatalogRoutes(api, catalogHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupCartRoutes(api, cartHandler, authRequired)
	router.SetupWishlistRoutes(api, wishlistHandler, authRequired)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired)
	router.SetupBillingRoutes(api, billingHandler, authRequired, adminOnly)
	router.SetupReferralRoutes(api, referralHandler, authRequired)
	router.SetupLoyaltyRoutes(api, loyaltyHandler, authRequired)
	router.SetupQuizRoutes(api, quizHandler, authRequired)
	router.SetupImpactRoutes(api, impactHandler, authRequired)

	webhooks := e.Group("/api/v1")
	router.SetupWebhookRoutes(webhooks, webhookHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
