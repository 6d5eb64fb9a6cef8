package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/lunopay/payment-ledger-service/internal/app/setup"
	"github.com/lunopay/payment-ledger-service/internal/config"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/kafka"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/metrics"
	"github.com/lunopay/payment-ledger-service/internal/infrastructure/postgres"
	"github.com/lunopay/payment-ledger-service/internal/initializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	transactionPublisher := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.Topic)
	defer transactionPublisher.Close()

	// Init storage gateway and initializer chain
	gateway := postgres.NewGateway()
	chain := initializer.NewChain()

	builder := setup.NewBuilder(gateway, chain).
		WithPublisher(transactionPublisher).
		WithMetrics(metrics.NewLedgerMetrics())

	if err := builder.ConfigureStorage(func(opts *postgres.Options) {
		opts.Driver = cfg.LedgerDB.Driver
		opts.Dsn = cfg.LedgerDB.Dsn
		opts.MigrationsPath = cfg.LedgerDB.MigrationsPath
	}); err != nil {
		log.Fatalf("failed to configure storage: %v\n", err)
	}

	steps := []initializer.Step{
		{Name: "create-schema", Kind: initializer.CreateIfMissing},
		{Name: "apply-migrations", Kind: initializer.MigrateToLatest},
		{Name: "seed-currencies", Kind: initializer.Seed},
	}
	for _, step := range steps {
		if err := builder.RegisterStep(step); err != nil {
			log.Fatalf("failed to register initializer step %q: %v\n", step.Name, err)
		}
	}

	// Startup blocks until every initializer step has completed
	ledgerUsecase, err := builder.Startup(context.Background())
	if err != nil {
		log.Fatalf("startup failed: %v\n", err)
	}

	counts, err := ledgerUsecase.CountByStatus(context.Background())
	if err != nil {
		log.Fatalf("failed to read ledger state: %v\n", err)
	}
	slog.Info("ledger ready", "transactions_by_status", counts)

	// Expose prometheus metrics
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
	log.Printf("metrics server started on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
