package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/config"
	"github.com/CosmiCloud/othub-processor/internal/delivery/consumer"
	"github.com/CosmiCloud/othub-processor/internal/domain"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/dkg"
	publisher "github.com/CosmiCloud/othub-processor/internal/infrastructure/kafka"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/logger"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/metrics"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/postgres"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/postgres/repository"
	"github.com/CosmiCloud/othub-processor/internal/usecase"
	"github.com/CosmiCloud/othub-processor/internal/wallet"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	// Init wallet registry
	identities := make([]domain.WalletIdentity, len(cfg.Wallets))
	for i, w := range cfg.Wallets {
		identities[i] = domain.WalletIdentity{
			Name:       w.Name,
			PublicKey:  w.PublicKey,
			PrivateKey: w.PrivateKey,
		}
	}
	registry, err := wallet.NewRegistry(identities)
	if err != nil {
		log.Fatalf("failed to init wallet registry: %v", err)
	}

	// Init txn repo
	txnRepo := repository.NewDefaultTxnRepository(db)

	// Init node clients, one per environment
	testnetNode := dkg.NewHTTPNodeClient(cfg.OTNode.Hostname, cfg.OTNode.TestnetPort, cfg.OTNode.UseSSL)
	mainnetNode := dkg.NewHTTPNodeClient(cfg.OTNode.Hostname, cfg.OTNode.MainnetPort, cfg.OTNode.UseSSL)

	// Init kafka
	brokers := []string{fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)}
	sub := publisher.NewDefaultKafkaSubscriber(brokers)
	outcomePublisher := publisher.NewKafkaPublisher(brokers, cfg.Kafka.EventsTopic)
	requestPublisher := publisher.NewKafkaPublisher(brokers, cfg.Kafka.RequestTopic)

	txnMetrics := metrics.NewTxnMetrics()

	// Init recovery handler
	recovery := usecase.NewDefaultRecoveryHandler(txnRepo, cfg.Recovery.RequeueDelay, cfg.Recovery.TransferRetryDelay)

	// Init txn processor
	processor := usecase.NewDefaultTxnProcessor(
		txnRepo,
		registry,
		testnetNode,
		mainnetNode,
		recovery,
		txnMetrics,
		cfg.MasterKey,
	)

	eventLogger := logger.NewPGTxnEventLogger(db)

	txnConsumer := consumer.NewTxnConsumer(sub, processor, outcomePublisher, eventLogger, cfg.Kafka.RequestTopic, cfg.Kafka.GroupID)
	pendingWorker := usecase.NewPendingRequeueWorker(txnRepo, registry, requestPublisher, 30*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Consumer loop
	go func() {
		if err := txnConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("consumer stopped: %v", err)
		}
	}()

	// Pending dispatch loop
	go pendingWorker.Start(ctx)

	// Metrics endpoint
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.Metrics.Addr, nil); err != nil {
			slog.Error("metrics endpoint failed", "error", err.Error())
		}
	}()

	log.Printf("othub-processor started, consuming %s\n", cfg.Kafka.RequestTopic)
	<-ctx.Done()

	// Teardown
	outcomePublisher.Close()
	requestPublisher.Close()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("othub-processor stopped")
}
