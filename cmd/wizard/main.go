package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanloistore/backoffice-wizard/internal/clients"
	"github.com/vanloistore/backoffice-wizard/internal/config"
	"github.com/vanloistore/backoffice-wizard/internal/httpx"
	kafkax "github.com/vanloistore/backoffice-wizard/internal/kafka"
	"github.com/vanloistore/backoffice-wizard/internal/logx"
	"github.com/vanloistore/backoffice-wizard/internal/metrics"
	"github.com/vanloistore/backoffice-wizard/internal/orders"
	"github.com/vanloistore/backoffice-wizard/internal/postgres"
	"github.com/vanloistore/backoffice-wizard/internal/redisx"
	"github.com/vanloistore/backoffice-wizard/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logx.New(logx.Options{Service: cfg.ServiceName, Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Draft store backend
	var kv wizard.KV
	switch cfg.DraftBackend {
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer db.Close()
		store := postgres.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("db schema: %v", err)
		}
		kv = store
	default:
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		kv = redisx.NewStore(rdb)
	}

	// Back-office API clients
	api := clients.New(cfg.APIBaseURL)

	// Submission events (optional, enabled when brokers are configured)
	var sink wizard.EventSink
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicManualOrderSubmitted, 256)
		prod.Start(ctx)
		sink = &kafkax.SubmissionPublisher{Producer: prod, Service: cfg.ServiceName}
	}

	nav := &httpx.Navigator{Log: logger}
	manager := wizard.NewManager(func(ctx context.Context, owner string) *wizard.Wizard {
		return wizard.New(ctx, wizard.Deps{
			Store:     wizard.NewDraftStore(kv, owner),
			Directory: api,
			Catalog:   api,
			Orders:    api,
			Events:    sink,
			Nav:       nav,
			Log:       logger,
		})
	})

	router := httpx.NewRouter()
	h := &httpx.WizardHandler{
		Manager: manager,
		Metrics: metrics.NewWizardMetrics("wizard"),
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// Flush active drafts before discarding in-memory state.
	manager.CloseAll(ctx2)

	if prod != nil {
		prod.Close()
		cancel()
		prod.WaitClosed()
	}
}
