package server

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/ingest"
	"github.com/elephantfactory/promogen/internal/middleware"
	"github.com/elephantfactory/promogen/internal/pipeline"
	"github.com/elephantfactory/promogen/internal/repository"
	"github.com/elephantfactory/promogen/pkg/logger"
)

const maxUploadBytes = 20 << 20

func (s *Server) handleHealthz(c *gin.Context) {
	if err := repository.HealthCheck(c.Request.Context(), s.db, 2*time.Second, s.log); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleUploadDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: missing multipart field %q", common.ErrInvalidInput, "file"))
		return
	}
	if fh.Size > maxUploadBytes {
		s.abortWithError(c, fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, maxUploadBytes))
		return
	}
	if !ingest.Allowed(fh.Filename) {
		s.abortWithError(c, fmt.Errorf("%w: extension %q (supported: %s)",
			common.ErrUnsupportedFormat, ingest.Ext(fh.Filename), strings.Join(constants.FileFormats, ", ")))
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrUnreadableUpload, err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrUnreadableUpload, err))
		return
	}

	doc, dedup, err := s.ingest.IngestBytes(c.Request.Context(), fh.Filename, data)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if dedup {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"id":           doc.ID,
		"filename":     doc.Filename,
		"file_ext":     doc.FileExt,
		"format":       constants.MapExtToFormat(doc.FileExt),
		"file_size":    doc.FileSize,
		"content_hash": hex.EncodeToString(doc.ContentHash),
		"text_length":  len(doc.Text),
		"uploaded_at":  doc.UploadedAt,
		"deduplicated": dedup,
	})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: document id", common.ErrInvalidInput))
		return
	}
	doc, err := s.docs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          doc.ID,
		"filename":    doc.Filename,
		"file_ext":    doc.FileExt,
		"format":      constants.MapExtToFormat(doc.FileExt),
		"file_size":   doc.FileSize,
		"text_length": len(doc.Text),
		"uploaded_at": doc.UploadedAt,
	})
}

type generateRequest struct {
	Languages []string `json:"languages"`
	Profiles  []string `json:"profiles"`
	Images    *bool    `json:"images"`
	Decks     *bool    `json:"decks"`
	Cards     *bool    `json:"cards"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: document id", common.ErrInvalidInput))
		return
	}

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.abortWithError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
			return
		}
	}

	opts := pipeline.Options{}
	for _, l := range req.Languages {
		opts.Languages = append(opts.Languages, constants.Language(l))
	}
	for _, p := range req.Profiles {
		opts.Profiles = append(opts.Profiles, constants.Profile(p))
	}
	// Unset artifact toggles mean "everything".
	if req.Images != nil || req.Decks != nil || req.Cards != nil {
		opts.Images = req.Images != nil && *req.Images
		opts.Decks = req.Decks != nil && *req.Decks
		opts.Cards = req.Cards != nil && *req.Cards
	}

	job, err := s.pipe.Begin(c.Request.Context(), id, opts)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	// The run continues past this request. The context must be captured
	// before the handler returns: gin pools contexts, so reading
	// c.Request from the goroutine would race with the next request.
	ctx := context.WithoutCancel(c.Request.Context())
	ctx = context.WithValue(ctx, logger.DocumentIDKey, id.String())
	go func() {
		if err := s.pipe.Execute(ctx, job, opts); err != nil {
			logger.WithContext(ctx).Error("generate.run_failed", "job_id", job.ID, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":      job.ID,
		"document_id": job.DocumentID,
		"status":      job.Status,
		"languages":   job.Languages,
		"profiles":    job.Profiles,
	})
}

func (s *Server) handleGetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: job id", common.ErrInvalidInput))
		return
	}
	job, err := s.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleDownloadBundle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("%w: job id", common.ErrInvalidInput))
		return
	}
	job, err := s.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if job.Status != string(constants.JobStatusDone) || job.BundlePath == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "bundle not ready",
			"status": job.Status,
		})
		return
	}
	c.FileAttachment(*job.BundlePath, fmt.Sprintf("promo_%s.zip", job.ID))
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err, "request_id", middleware.GetRequestID(c))
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(c),
	})
}
