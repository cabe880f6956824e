package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	rediscache "backoffice/internal/cache/redis"
	"backoffice/internal/config"
	"backoffice/internal/email/noop"
	"backoffice/internal/email/ses"
	"backoffice/internal/handler"
	"backoffice/internal/logger"
	"backoffice/internal/metrics"
	"backoffice/internal/port"
	"backoffice/internal/pricing"
	"backoffice/internal/repository/postgres"
	"backoffice/internal/router"
	"backoffice/internal/service"
	s3storage "backoffice/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg := logger.New(cfg.Log)
	defer func() { _ = logg.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	brandRepo := postgres.NewBrandRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	campaignRepo := postgres.NewCampaignRepo(db)
	productRepo := postgres.NewProductRepo(db)
	imageRepo := postgres.NewImageRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	purchaseRepo := postgres.NewPurchaseRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Product lookup cache is optional
	var (
		redisClient  *goredis.Client
		productCache port.ProductCache
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = rediscache.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		productCache = rediscache.NewProductCache(redisClient, cfg.Redis.TTL)
	} else {
		logg.Info("redis not configured, product lookups are not cached")
	}

	// Initialize storage
	imageStore, err := s3storage.NewImageStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	mailer, err := newMailer(ctx, cfg, logg)
	if err != nil {
		return err
	}

	prices := service.Pricing{
		Resolver:       pricing.NewResolver(cfg.Pricing.DomesticJurisdictions...),
		DefaultVATRate: cfg.Pricing.DefaultVATRate,
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT, logg.Named("auth"))
	userSvc := service.NewUserService(userRepo, logg.Named("users"))
	brandSvc := service.NewBrandService(brandRepo, logg.Named("brands"))
	categorySvc := service.NewCategoryService(categoryRepo, logg.Named("categories"))
	campaignSvc := service.NewCampaignService(campaignRepo, logg.Named("campaigns"))
	productSvc := service.NewProductService(productRepo, productCache, logg.Named("products"))
	imageSvc := service.NewImageService(imageRepo, imageStore, &cfg.S3, logg.Named("images"))
	supplierSvc := service.NewSupplierService(supplierRepo, productRepo, purchaseRepo, prices, logg.Named("suppliers"))
	purchaseSvc := service.NewPurchaseService(
		purchaseRepo, supplierRepo, productRepo, productSvc, mailer, prices,
		cfg.Email.FromName, logg.Named("purchases"),
	)
	statsSvc := service.NewStatsService(statsRepo)

	opts := router.Options{
		Log:            logg,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metrics.NewHTTPMetrics("backoffice", prometheus.NewRegistry())
		opts.MetricsPath = cfg.Metrics.Path
	}

	r := router.Setup(authSvc, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, userSvc),
		User:     handler.NewUserHandler(userSvc),
		Brand:    handler.NewBrandHandler(brandSvc),
		Category: handler.NewCategoryHandler(categorySvc),
		Campaign: handler.NewCampaignHandler(campaignSvc),
		Product:  handler.NewProductHandler(productSvc),
		Image:    handler.NewImageHandler(imageSvc),
		Supplier: handler.NewSupplierHandler(supplierSvc),
		Purchase: handler.NewPurchaseHandler(purchaseSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
		Health:   handler.NewHealthHandler(db, redisClient),
	}, opts)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logg.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logg.Info("server exited")
	return nil
}

func newMailer(ctx context.Context, cfg *config.Config, logg *zap.Logger) (port.PurchaseMailer, error) {
	switch cfg.Email.Provider {
	case "ses":
		mailer, err := ses.NewSESMailer(ctx, &cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES mailer: %w", err)
		}
		return mailer, nil
	case "", "noop":
		return noop.NewNoopMailer(logg.Named("mailer")), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
