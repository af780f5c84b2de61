package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/approval/memory"
	"github.com/marcelsud/approval-bridge/approval/postgres"
	"github.com/marcelsud/approval-bridge/approval/redis"
	"github.com/marcelsud/approval-bridge/config"
	"github.com/marcelsud/approval-bridge/internal/http/chi"
	"github.com/marcelsud/approval-bridge/messaging/slack"
	"github.com/marcelsud/approval-bridge/metrics"
	"github.com/marcelsud/approval-bridge/secrets"
	"github.com/marcelsud/approval-bridge/workflow"
	"golang.org/x/time/rate"
)

const TIMEOUT = 30 * time.Second

/* main.go is where every package gets wired together.
 * Imports only flow downwards: the application imports the business layer,
 * which imports the storage layer.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := httplog.NewLogger("approval-bridge", httplog.Options{
		JSON:     cfg.LogJSON,
		LogLevel: cfg.LogLevel,
	})

	provider, closeProvider, err := secrets.Open(ctx, secrets.Options{
		Backend:   cfg.SecretsBackend,
		File:      cfg.SecretsFile,
		EnvPrefix: cfg.SecretsEnvPrefix,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer closeProvider()
	cache := secrets.NewCache(provider, cfg.GCPProject)

	store, collector, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer store.Close(ctx)

	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	client := &http.Client{Timeout: cfg.HTTPClientTimeout}
	dispatcher := slack.NewDispatcher(cache, client, cfg.SlackAPIURL)
	issuer := approval.NewIssuer(store, dispatcher, cache, logger)
	processor := approval.NewProcessor(store, slack.Decoder{}, workflow.NewClient(cache, client), dispatcher, cache, logger)

	var limiter *rate.Limiter
	if cfg.IssueRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.IssueRateLimit), cfg.IssueRateBurst)
	}

	r := chi.Handlers(ctx, issuer, processor, chi.Options{
		Logger:       &logger,
		Recorder:     exporter,
		Pending:      collector,
		Metrics:      exporter.ServeHTTP(),
		IssueLimiter: limiter,
	})
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().
		Str("port", cfg.Port).
		Str("store", cfg.StoreBackend).
		Str("secrets", cfg.SecretsBackend).
		Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

// openStore picks the pending request backend and the collector that feeds the pending gauge
func openStore(ctx context.Context, cfg *config.Config) (approval.Store, metrics.Collector, error) {
	switch cfg.StoreBackend {
	case "memory", "":
		s := memory.NewStore()
		return s, s, nil
	case "redis":
		s, err := redis.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.PendingTTL())
		if err != nil {
			return nil, nil, err
		}
		return s, metrics.NewRedisCollector(s.GetClient(), redis.KeyPattern), nil
	case "postgres":
		s, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
