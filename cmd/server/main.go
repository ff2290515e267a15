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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/booking"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/config"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/database"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/di"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/handler"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/logger"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/metrics"
	internalredis "github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/redis"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/store"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if _, err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.Log.Development,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting bus booking service",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("store_backend", cfg.Store.Backend))

	ctx := context.Background()

	// Tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		appLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			appLog.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	if err := metrics.Init(); err != nil {
		appLog.Warn("Failed to initialize metrics", zap.Error(err))
	}

	// Durable store
	st, err := buildStore(ctx, cfg)
	if err != nil {
		appLog.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()
	appLog.Info("Store initialized", zap.String("backend", cfg.Store.Backend))

	// Event publisher
	var publisher booking.EventPublisher
	if cfg.Kafka.Enabled {
		publisher, err = booking.NewKafkaEventPublisher(ctx, &booking.EventPublisherConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			ClientID: cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Warn("Kafka connection failed, using no-op publisher", zap.Error(err))
			publisher = booking.NewNoOpEventPublisher()
		} else {
			appLog.Info("Kafka event publisher connected")
		}
	} else {
		publisher = booking.NewNoOpEventPublisher()
	}
	defer publisher.Close()

	// Booking engine
	engine, err := booking.New(ctx, st, publisher, appLog)
	if err != nil {
		appLog.Fatal("Failed to initialize booking engine", zap.Error(err))
	}

	// Seed the demo catalog into an empty store
	if cfg.Store.SeedDemo {
		buses, err := engine.ListBuses(ctx)
		if err != nil {
			appLog.Fatal("Failed to inspect catalog", zap.Error(err))
		}
		if len(buses) == 0 {
			if err := engine.Seed(ctx, booking.DefaultCatalog()); err != nil {
				appLog.Fatal("Failed to seed demo catalog", zap.Error(err))
			}
		}
	}

	container := di.NewContainer(&di.ContainerConfig{
		Store:          st,
		EventPublisher: publisher,
		BookingService: engine,
	})

	router := buildRouter(cfg, container)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLog.Info("Server stopped")
}

// buildStore selects the durable store backend from configuration.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return store.NewFileStore(cfg.Store.FilePath)

	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, &database.PostgresConfig{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxConns:        int32(cfg.Database.MaxOpenConns),
			MinConns:        int32(cfg.Database.MinIdleConns),
			MaxConnLifetime: cfg.Database.ConnLifetime,
			MaxConnIdleTime: cfg.Database.ConnIdleTime,
			ConnectTimeout:  10 * time.Second,
			MaxRetries:      3,
			RetryInterval:   2 * time.Second,
			EnableTracing:   cfg.OTel.Enabled,
		})
		if err != nil {
			return nil, err
		}
		pg := store.NewPostgresStore(db.Pool())
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return pg, nil

	case config.BackendRedis:
		client, err := internalredis.NewClient(ctx, &internalredis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client, cfg.Redis.Namespace), nil

	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

// buildRouter wires middleware and routes.
func buildRouter(cfg *config.Config, container *di.Container) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger.Get()))
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"version": cfg.App.Version,
				"service": cfg.App.Name,
			})
		})

		registerBookingRoutes(v1, container.BookingHandler)
	}

	return router
}

func registerBookingRoutes(v1 *gin.RouterGroup, h *handler.BookingHandler) {
	buses := v1.Group("/buses")
	{
		buses.GET("", h.ListBuses)
		buses.GET("/available", h.ListAvailableBuses)
		buses.GET("/search", h.SearchBuses)
		buses.GET("/:name", h.GetBus)
	}

	tickets := v1.Group("/tickets")
	{
		tickets.GET("", h.ListTickets)
		tickets.POST("", h.BookTicket)
		tickets.GET("/:id", h.GetTicket)
		tickets.DELETE("/:id", h.CancelTicket)
	}
}

// requestLogger logs each request with latency and status.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		metrics.RecordRequestDuration(c.Request.Context(), c.FullPath(), latency.Seconds())
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()))
	}
}
