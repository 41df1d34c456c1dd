package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/xivmarket/marketboard/internal/adapter"
	"github.com/xivmarket/marketboard/internal/api/rest"
	"github.com/xivmarket/marketboard/internal/api/server"
	"github.com/xivmarket/marketboard/internal/api/ws"
	"github.com/xivmarket/marketboard/internal/cache"
	"github.com/xivmarket/marketboard/internal/config"
	"github.com/xivmarket/marketboard/internal/dispatch"
	"github.com/xivmarket/marketboard/internal/gamedata"
	"github.com/xivmarket/marketboard/internal/history"
	"github.com/xivmarket/marketboard/internal/logger"
	"github.com/xivmarket/marketboard/internal/providers/jetstream"
	"github.com/xivmarket/marketboard/internal/ratelimit"
	"github.com/xivmarket/marketboard/internal/store"
	"github.com/xivmarket/marketboard/internal/upload"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "marketboard-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting market board API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Connect to the cache tier
	cacheTier, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}
	defer cacheTier.Close()
	logger.InfoCtx(ctx, "Connected to redis", zap.String("addr", cfg.Redis.Addr))

	// Initialize store with the cache in front of Postgres
	dataStore := store.NewCachedStore(store.NewPGStore(db), cacheTier, cfg.Redis.TTL)

	// Load the reference catalog
	gameData, err := gamedata.NewCSVProvider(gamedata.Config{
		WorldsPath:      cfg.GameData.WorldsCSV,
		ItemsPath:       cfg.GameData.ItemsCSV,
		DataCentersPath: cfg.GameData.DataCentersCSV,
	})
	if err != nil {
		logger.Fatal("Failed to load game data", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded reference catalog",
		zap.Int("worlds", len(gameData.AvailableWorlds())),
		zap.Int("data_centers", len(gameData.DataCenters())),
	)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	natsJS := adapter.NewNatsJetStream()

	// Connect the event publisher
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, natsJS, jsonAdapter)
	if err != nil {
		logger.Fatal("Failed to connect event publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Worker pool for the ingestion pipeline's effect behaviors
	pool := pond.NewPool(
		cfg.Upload.WorkerPoolSize,
		pond.WithQueueSize(cfg.Upload.WorkerPoolSize*16),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	// Behavior registry, validators first
	behaviors := []upload.Behavior{
		upload.NewWorldValidator(gameData),
		upload.NewItemValidator(gameData),
		upload.NewSalesEffect(dataStore, publisher, clock),
		upload.NewListingsEffect(dataStore, cacheTier, publisher, clock),
		upload.NewRecencyEffect(cacheTier, clock),
	}

	pipeline := upload.NewPipeline(dataStore, behaviors, pool, cfg.Upload.Budget)
	engine := history.NewEngine(dataStore, gameData, clock)

	// Real-time dispatch, gated by the feature flag
	hub := dispatch.NewHub()
	var wsHandler *ws.Handler
	if cfg.Dispatch.Enabled {
		consumer, err := dispatch.NewConsumer(dispatch.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			ConsumerName:   cfg.NATS.ConsumerName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWaitTimeout: cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
		}, natsJS, hub, jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to create dispatch consumer", zap.Error(err))
		}
		defer consumer.Close()

		go func() {
			if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
				logger.ErrorCtx(ctx, err, zap.String("component", "dispatch-consumer"))
			}
		}()

		wsHandler = ws.NewHandler(hub)
	} else {
		logger.InfoCtx(ctx, "Dispatch disabled, instance will ingest without rebroadcasting")
	}

	restHandler := rest.NewHandler(pipeline, engine, gameData, cacheTier, clock)

	// Per-client request throttling, shared across instances via Redis
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		limiter, err = ratelimit.NewLimiter(cfg.RateLimit, redisClient, clock)
		if err != nil {
			logger.Fatal("Failed to initialize rate limiter", zap.Error(err))
		}
		defer limiter.Close()
	} else {
		logger.InfoCtx(ctx, "Rate limiting disabled")
	}

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	srv := server.New(serverConfig, restHandler, wsHandler, limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
