package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Manu2954/Buildora-sub000/internal/auth"
	"github.com/Manu2954/Buildora-sub000/internal/cache"
	"github.com/Manu2954/Buildora-sub000/internal/config"
	"github.com/Manu2954/Buildora-sub000/internal/events"
	"github.com/Manu2954/Buildora-sub000/internal/http"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
	"github.com/Manu2954/Buildora-sub000/internal/service"
	"github.com/Manu2954/Buildora-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New("buildora-api", cfg.PrettyLogs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := repository.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDBName)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()
	log.Info().Str("database", cfg.MongoDBName).Msg("connected to MongoDB")

	indexCtx, indexCancel := context.WithTimeout(ctx, 30*time.Second)
	err = repository.EnsureIndexes(indexCtx, db)
	indexCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	err = redisClient.Ping(pingCtx).Err()
	pingCancel()
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

	// Repositories
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	adRepo := repository.NewAdvertisementRepository(db)
	imageRepo := repository.NewImageRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	redisCache := cache.NewRedisCache(redisClient)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Services
	cartService := service.NewCartService(cartRepo, productRepo, redisCache, log)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, outboxRepo, redisCache, log)
	authService := service.NewAuthService(userRepo, tokens, log)
	catalogService := service.NewCatalogService(productRepo, redisCache, log)
	bulkService := service.NewBulkUploadService(productRepo, companyRepo, log)

	// Handlers
	timeout := cfg.RequestTimeout
	router := http.NewRouter(http.RouterConfig{
		Tokens:         tokens,
		RequestTimeout: timeout,

		Auth:          http.NewAuthHandler(authService, timeout),
		Cart:          http.NewCartHandler(cartService, timeout),
		Checkout:      http.NewCheckoutHandler(checkoutService, orderRepo, timeout),
		Products:      http.NewProductHandler(catalogService, authService, timeout),
		Leads:         http.NewLeadHandler(leadRepo, timeout),
		Ads:           http.NewAdvertisementHandler(adRepo, timeout),
		Companies:     http.NewCompanyHandler(companyRepo, timeout),
		AdminProducts: http.NewAdminProductHandler(catalogService, bulkService, timeout, cfg.MaxBodySize),
		AdminUsers:    http.NewAdminUserHandler(userRepo, timeout),
		AdminOrders:   http.NewAdminOrderHandler(orderRepo, timeout),
		AdminImages:   http.NewAdminImageHandler(imageRepo, timeout),
	})

	srv := &stdhttp.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "buildora-api"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewPublisher(outboxRepo, log, cfg.KafkaBrokers...)
		defer publisher.Close()
		go publisher.Run(ctx)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("outbox publisher started")
	} else {
		log.Warn().Msg("no Kafka brokers configured, outbox publisher disabled")
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
