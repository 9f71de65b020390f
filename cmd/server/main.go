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

	"github.com/iamblessed-asd/order-api/config"
	"github.com/iamblessed-asd/order-api/internal/api"
	"github.com/iamblessed-asd/order-api/internal/broker"
	"github.com/iamblessed-asd/order-api/internal/redisclient"
	"github.com/iamblessed-asd/order-api/internal/service"
	"github.com/iamblessed-asd/order-api/internal/store"
	"github.com/iamblessed-asd/order-api/internal/util"
	"github.com/iamblessed-asd/order-api/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting order API")

	tp, err := util.InitTracer("order-api", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	// The popular-items cache is an optimization; run without it if
	// Redis is unreachable.
	var cache *redisclient.Client
	if cfg.Redis.Addr != "" {
		cache, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, running without cache: %v", err)
			cache = nil
		} else {
			defer cache.Close()
			log.Println("Redis connected")
		}
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicItems)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	orderService := service.NewOrderService(db, cache, eventPublisher, cfg.Business)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	alertConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicItems, cfg.Kafka.ConsumerGroup)
	alertWorker := worker.NewStockAlertWorker(alertConsumer, cfg.Business.LowStockThreshold)
	go func() {
		if err := alertWorker.Start(workerCtx); err != nil {
			log.Printf("Stock alert worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(orderService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	alertWorker.Stop()

	log.Println("Server exited")
}
