// Package server exposes the generation pipeline over HTTP.
package server

import (
	"database/sql"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/elephantfactory/promogen/internal/ingest"
	"github.com/elephantfactory/promogen/internal/middleware"
	"github.com/elephantfactory/promogen/internal/pipeline"
	"github.com/elephantfactory/promogen/internal/repository"
)

// Server wires the HTTP surface to the pipeline and stores.
type Server struct {
	db     *sql.DB
	docs   repository.DocumentRepository
	jobs   repository.JobRepository
	ingest *ingest.Usecase
	pipe   *pipeline.Service
	log    *slog.Logger
}

func New(
	db *sql.DB,
	docs repository.DocumentRepository,
	jobs repository.JobRepository,
	ingestUC *ingest.Usecase,
	pipe *pipeline.Service,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		db:     db,
		docs:   docs,
		jobs:   jobs,
		ingest: ingestUC,
		pipe:   pipe,
		log:    logger,
	}
}

// Router builds the gin engine with the middleware chain and all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())

	r.GET("/healthz", s.handleHealthz)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/documents", s.handleUploadDocument)
		v1.GET("/documents/:id", s.handleGetDocument)
		v1.POST("/documents/:id/generate", s.handleGenerate)
		v1.GET("/jobs/:id", s.handleGetJob)
		v1.GET("/jobs/:id/bundle", s.handleDownloadBundle)
	}
	return r
}
