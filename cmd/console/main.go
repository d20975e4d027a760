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

	appbatch "github.com/bryanwahyu/cyberlens-console/internal/application/batch"
	appbrief "github.com/bryanwahyu/cyberlens-console/internal/application/brief"
	appcases "github.com/bryanwahyu/cyberlens-console/internal/application/cases"
	appfraud "github.com/bryanwahyu/cyberlens-console/internal/application/fraud"
	apphub "github.com/bryanwahyu/cyberlens-console/internal/application/hub"
	"github.com/bryanwahyu/cyberlens-console/internal/config"
	domai "github.com/bryanwahyu/cyberlens-console/internal/domain/ai"
	dombatch "github.com/bryanwahyu/cyberlens-console/internal/domain/batch"
	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	aiclient "github.com/bryanwahyu/cyberlens-console/internal/infra/ai/openai"
	"github.com/bryanwahyu/cyberlens-console/internal/infra/backend"
	mysqlp "github.com/bryanwahyu/cyberlens-console/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/cyberlens-console/internal/infra/db/postgres"
	"github.com/bryanwahyu/cyberlens-console/internal/infra/httpserver"
	"github.com/bryanwahyu/cyberlens-console/internal/infra/statefile"
	minioStore "github.com/bryanwahyu/cyberlens-console/internal/infra/storage"
	"github.com/bryanwahyu/cyberlens-console/internal/middleware"
	"github.com/bryanwahyu/cyberlens-console/internal/scheduler"
	ws "github.com/bryanwahyu/cyberlens-console/internal/websocket"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// init state store sesuai driver
	healthCheckers := map[string]middleware.HealthChecker{
		"backend": &middleware.BackendHealthChecker{BaseURL: cfg.Backend.BaseURL},
	}

	var stateStore domain.StateStore
	switch cfg.State.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.State.DSN)
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		stateStore = mysqlp.NewStateRepository(db)
		healthCheckers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.State.DSN)
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		stateStore = postgresp.NewStateRepository(db)
		healthCheckers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	default:
		fs, err := statefile.New(cfg.State.Path)
		if err != nil {
			log.Fatalf("state file init error: %v", err)
		}
		stateStore = fs
	}

	// init backend client
	api, err := backend.New(backend.Config{
		BaseURL:       cfg.Backend.BaseURL,
		StaticBaseURL: cfg.Backend.StaticBaseURL,
		Timeout:       cfg.BackendTimeout(),
	})
	if err != nil {
		log.Fatalf("backend client error: %v", err)
	}

	// notification hub untuk push ke dashboard
	notifHub := ws.NewHub()
	go notifHub.Run()

	// init cache store + rehydrate snapshot session terakhir
	store := appcases.NewStore(stateStore, appcases.StoreConfig{
		OnNotification: notifHub.Notify,
	})
	if err := store.Hydrate(ctx); err != nil {
		log.Printf("state hydrate warning: %v", err)
	} else if n := store.Len(); n > 0 {
		log.Printf("restored %d cached case(s) from previous session", n)
	}

	// init report archive (optional)
	var archive dombatch.ReportArchive
	if cfg.Archive.Enabled {
		st, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = st
	}

	// init AI brief client (optional)
	var brief domai.Client
	if cfg.OpenAI.APIKey != "" {
		brief = aiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	// init services
	casesSvc := appcases.NewService(store, api)
	hubSvc := apphub.NewService(api)
	batchSvc := appbatch.NewService(api, archive)
	fraudSvc := appfraud.NewService(api)
	briefSvc := appbrief.NewService(brief, store)

	// scheduler: refresh overview threat hub
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(hubSvc, cfg.Scheduler.RefreshCronSpec)
		if err != nil {
			log.Fatalf("scheduler init error: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// init router
	handler := httpserver.NewRouter(
		store,
		casesSvc,
		hubSvc,
		batchSvc,
		fraudSvc,
		briefSvc,
		notifHub,
		cfg.Server.CORSOrigins,
		healthCheckers,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: koneksi websocket notifikasi long-lived
		IdleTimeout: 60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("console listening on %s (backend: %s)", addr, cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down console...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
