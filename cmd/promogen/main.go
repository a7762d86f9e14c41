package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/archive"
	"github.com/elephantfactory/promogen/internal/chat"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/ingest"
	"github.com/elephantfactory/promogen/internal/pipeline"
	"github.com/elephantfactory/promogen/internal/repository"
	"github.com/elephantfactory/promogen/internal/theme"
	"github.com/elephantfactory/promogen/internal/translate"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		inmem    = flag.Bool("inmem", false, "use an in-memory database")
		file     = flag.String("file", "", "document to process (required)")
		out      = flag.String("out", "", "bundle output directory (optional, defaults to the document's directory)")
		langsStr = flag.String("langs", "", "comma-separated target language codes (optional, defaults to all)")
		profsStr = flag.String("profiles", "", "comma-separated canvas profiles (optional, defaults to social)")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Dir(*file)
	}

	opts := pipeline.Options{
		Languages: pipeline.ParseLanguages(*langsStr),
		Profiles:  pipeline.ParseProfiles(*profsStr),
	}

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	dbPath := cfg.Database.Path
	if *inmem {
		dbPath = ":memory:"
	}

	db, err := repository.Open(ctx, dbPath, logger)
	if err != nil {
		printError("Error: opening database: %v\n", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	th := theme.Default()
	if cfg.Theme.Path != "" {
		th, err = theme.Load(cfg.Theme.Path)
		if err != nil {
			printError("Error: loading theme: %v\n", err)
			os.Exit(1)
		}
	}
	if cfg.Theme.LogoPath != "" {
		if err := th.AttachLogoFile(cfg.Theme.LogoPath); err != nil {
			logger.Warn("attaching logo failed", "error", err)
		}
	}

	docs := repository.NewDocumentRepository(db, logger)
	jobs := repository.NewJobRepository(db, logger)
	ingestUC := ingest.NewUsecase(docs, logger)
	translator := translate.NewClient(cfg.Translate, logger)
	chatClient := chat.NewClient(cfg.Chat, logger)
	bundler := archive.NewBuilder(logger)
	pipe := pipeline.NewService(docs, jobs, translator, chatClient, bundler, th, *out, logger)

	data, err := os.ReadFile(*file)
	if err != nil {
		printError("Error: reading %s: %v\n", *file, err)
		os.Exit(1)
	}
	doc, dedup, err := ingestUC.IngestBytes(ctx, filepath.Base(*file), data)
	if err != nil {
		printError("Error: ingesting %s: %v\n", *file, err)
		os.Exit(1)
	}
	if dedup {
		logger.Info("document already ingested", "id", doc.ID)
	}

	job, err := pipe.Run(ctx, doc.ID, opts)
	if err != nil {
		printError("Error: generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("document: %s\n", doc.ID)
	fmt.Printf("job:      %s (%s)\n", job.ID, job.Status)
	if job.BundlePath != nil {
		fmt.Printf("bundle:   %s\n", *job.BundlePath)
	}
	fmt.Printf("languages: %s\n", prettyLangs(job.Languages))
}

func prettyLangs(joined string) string {
	codes := pipeline.ParseLanguages(joined)
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = fmt.Sprintf("%s(%s)", constants.LanguageName(c), c)
	}
	return strings.Join(names, ", ")
}
