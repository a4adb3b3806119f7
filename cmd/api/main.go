package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/gym/internal/api"
	"example.com/gym/internal/auth"
	"example.com/gym/internal/config"
	"example.com/gym/internal/domain"
	"example.com/gym/internal/events"
	"example.com/gym/internal/persistence/jsonfile"
	httptransport "example.com/gym/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := domain.NewRegistry(cfg.GymName)
	store := jsonfile.NewStore(cfg.SnapshotPath)

	producer := events.NewKafkaProducer(cfg.KafkaBrokers)
	defer producer.Close()
	publisher := events.NewPublisher(producer, cfg.MemberTopic, cfg.WorkoutTopic)

	service := domain.NewService(registry, store, domain.WithEventSink(publisher))

	// A missing snapshot is a fresh start, anything else is logged and the
	// service runs on the empty registry.
	service.LoadSnapshot()

	go periodicSave(ctx, service, cfg.SnapshotInterval)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	authMiddleware := auth.NewMiddleware(
		auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer},
		func(r *http.Request) bool {
			return r.URL.Path == "/healthz" || r.URL.Path == "/metrics"
		},
	)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, authMiddleware.Wrap(logger(mux)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("gym-api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	// Final snapshot so restarts pick up where we left off.
	service.SaveSnapshot()
}

func periodicSave(ctx context.Context, service *domain.Service, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			service.SaveSnapshot()
		}
	}
}
