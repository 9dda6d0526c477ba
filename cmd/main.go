/**
 * @description
 * This is the main entry point for the treasury-service. It is responsible
 * for initializing all components of the service, including configuration,
 * the backing store (in-memory by default, PostgreSQL when configured), the
 * message broker producer, the core application service, and the HTTP server.
 * It wires everything together and starts the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - internal/api, internal/app, internal/config, internal/fx, internal/store: Internal packages for the service.
 * - pkg/rabbitmq: Client for RabbitMQ.
 */

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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/treasura/treasury-service/internal/api"
	"github.com/treasura/treasury-service/internal/app"
	"github.com/treasura/treasury-service/internal/config"
	"github.com/treasura/treasury-service/internal/fx"
	"github.com/treasura/treasury-service/internal/store"
	"github.com/treasura/treasury-service/pkg/rabbitmq"
)

func main() {
	// Load application configuration from environment variables.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}

	log.Printf("level=info component=bootstrap msg=\"starting treasury-service\" port=%s base_currency=%s", cfg.ServerPort, cfg.BaseCurrency)

	// Choose the backing store. The in-memory store is the default; a
	// configured DATABASE_URL substitutes the PostgreSQL implementation
	// without touching the transfer engine.
	var repository store.Repository
	seedAccounts := store.SeedAccounts()

	if cfg.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
		}
		poolConfig.MaxConns = 10
		poolConfig.MaxConnLifetime = 30 * time.Minute
		poolConfig.MaxConnIdleTime = 5 * time.Minute

		dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
		}
		defer dbpool.Close()
		log.Println("level=info component=bootstrap msg=\"database connected\"")

		pgRepo := store.NewPostgresRepository(dbpool)
		if err := pgRepo.SeedAccounts(context.Background(), seedAccounts); err != nil {
			log.Fatalf("level=fatal component=bootstrap msg=\"account seeding failed\" err=%v", err)
		}
		repository = pgRepo
	} else {
		log.Println("level=info component=bootstrap msg=\"no database url configured; using in-memory store\"")
		repository = store.NewMemoryRepository(seedAccounts)
	}

	// Initialize the RabbitMQ producer to publish transfer events. The
	// service only publishes, so a producer is all it needs; when the broker
	// is unreachable a no-op fallback keeps transfers working.
	var producer rabbitmq.Publisher
	if cfg.RabbitMQURL != "" {
		eventProducer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", err)
			producer = &rabbitmq.EventProducerFallback{}
		} else {
			defer eventProducer.Close()
			log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
			producer = eventProducer
		}
	} else {
		producer = &rabbitmq.EventProducerFallback{}
	}

	// Initialize the core application service with its dependencies.
	treasuryService := app.NewService(
		repository,
		fx.DefaultRates(),
		producer,
		cfg.TransferEventExchange,
		cfg.BaseCurrency,
	)

	// Initialize the API handlers and router.
	treasuryHandlers := api.NewTreasuryHandlers(treasuryService)
	router := api.TreasuryRoutes(treasuryHandlers)

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
