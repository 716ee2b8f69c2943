package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ThabangMark/Brew-Bean/internal/cart"
	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/ThabangMark/Brew-Bean/internal/handler"
	"github.com/ThabangMark/Brew-Bean/internal/storage"
	"github.com/ThabangMark/Brew-Bean/internal/submit"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	HTTPPort        string
	StorageBackend  string
	RedisAddr       string
	RedisPassword   string
	SQLitePath      string
	KafkaBrokers    []string
	SubmitDelay     time.Duration
	TaxRate         float64
	DeliveryFee     float64
	CartKey         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "brewbean.db"),
		SubmitDelay:     getEnvDuration("SUBMIT_DELAY", submit.DefaultDelay),
		TaxRate:         getEnvFloat("TAX_RATE", cart.DefaultTaxRate),
		DeliveryFee:     getEnvFloat("DELIVERY_FEE", cart.DefaultDeliveryFee),
		CartKey:         getEnv("CART_KEY", cart.DefaultStorageKey),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up storage: %v", err)
	}
	defer cleanup()

	store.Restore(ctx)
	log.Printf("Cart restored with %d item(s)", store.Count())

	var submitter submit.Submitter
	if len(cfg.KafkaBrokers) > 0 {
		k := submit.NewKafka(cfg.KafkaBrokers...)
		defer k.Close()
		submitter = k
		log.Printf("Publishing orders to kafka at %v", cfg.KafkaBrokers)
	} else {
		submitter = submit.NewSimulated(cfg.SubmitDelay)
		log.Printf("Using simulated order submission with %s delay", cfg.SubmitDelay)
	}

	router := handler.NewRouter(
		handler.NewCartHandler(store),
		handler.NewCheckoutHandler(store, submitter),
		cfg.RequestTimeout,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		log.Printf("Cart service listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down cart service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Cart service stopped")
}

func buildStore(ctx context.Context, cfg *Config) (*cart.Store, func(), error) {
	var (
		st      storage.Storage
		cleanup = func() {}
	)

	switch cfg.StorageBackend {
	case "memory":
		st = storage.NewMemory()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Printf("Connected to redis at %s", cfg.RedisAddr)
		st = storage.NewRedis(client)
		cleanup = func() { client.Close() }
	case "sqlite":
		db, err := storage.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Opened sqlite database at %s", cfg.SQLitePath)
		st = db
		cleanup = func() { db.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	store := cart.New(st,
		cart.WithStorageKey(cfg.CartKey),
		cart.WithTaxRate(cfg.TaxRate),
		cart.WithDeliveryFee(cfg.DeliveryFee),
		cart.WithRender(func(items []domain.LineItem, totals domain.Totals) {
			log.Printf("cart updated: %d line(s), subtotal %.2f", len(items), totals.Subtotal)
		}),
	)
	return store, cleanup, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
