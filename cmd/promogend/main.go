package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/elephantfactory/promogen/internal/archive"
	"github.com/elephantfactory/promogen/internal/chat"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/ingest"
	"github.com/elephantfactory/promogen/internal/pipeline"
	"github.com/elephantfactory/promogen/internal/repository"
	"github.com/elephantfactory/promogen/internal/server"
	"github.com/elephantfactory/promogen/internal/theme"
	"github.com/elephantfactory/promogen/internal/translate"
	"github.com/elephantfactory/promogen/pkg/logger"
)

func main() {
	// Logger
	zlog, _ := zap.NewProduction()
	defer zlog.Sync()
	log := zlog.Sugar()

	var (
		configPath = flag.String("config", "", "path to YAML config file (optional)")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFormat  = flag.String("log-format", "json", "log format: json, text")
	)
	flag.Parse()

	logger.Init(&logger.Config{Level: *logLevel, Format: *logFormat})

	// Config
	cfg := common.LoadConfig()
	if *configPath != "" {
		loaded, err := common.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("loading config file: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := repository.Open(ctx, cfg.Database.Path, nil)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer repository.Close(db, nil)

	if err := repository.HealthCheck(ctx, db, 3*time.Second, nil); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK", "path", cfg.Database.Path)

	// Brand kit
	th := theme.Default()
	if cfg.Theme.Path != "" {
		th, err = theme.Load(cfg.Theme.Path)
		if err != nil {
			log.Fatalf("loading theme: %v", err)
		}
	}
	if cfg.Theme.LogoPath != "" {
		if err := th.AttachLogoFile(cfg.Theme.LogoPath); err != nil {
			log.Warnf("attaching logo: %v", err)
		}
	}

	// Wiring
	docs := repository.NewDocumentRepository(db, nil)
	jobs := repository.NewJobRepository(db, nil)
	ingestUC := ingest.NewUsecase(docs, nil)
	translator := translate.NewClient(cfg.Translate, nil)
	chatClient := chat.NewClient(cfg.Chat, nil)
	bundler := archive.NewBuilder(nil)
	pipe := pipeline.NewService(docs, jobs, translator, chatClient, bundler, th, cfg.Server.BundleDir, nil)
	srv := server.New(db, docs, jobs, ingestUC, pipe, nil)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Info("stopped.")
}
