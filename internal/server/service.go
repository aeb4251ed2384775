package server

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juanfranbrv/automatservicios/constants"
	"github.com/juanfranbrv/automatservicios/internal/export"
	"github.com/juanfranbrv/automatservicios/internal/pipeline"
	"github.com/juanfranbrv/automatservicios/internal/results"
)

const sessionCookie = "session_id"

// Service wires the HTTP surface: upload/process, results, export, session
// lifecycle. All state is session-scoped; the cookie only carries the ID.
type Service struct {
	logger         *slog.Logger
	processor      *pipeline.Processor
	results        *results.Service
	export         *export.Service
	maxUploadBytes int64
}

func NewService(logger *slog.Logger, proc *pipeline.Processor, res *results.Service, exp *export.Service, maxUploadMB int64) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &Service{
		logger:         logger,
		processor:      proc,
		results:        res,
		export:         exp,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Service) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = s.maxUploadBytes

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "automatservicios",
			"categories": constants.AsStringSlice(),
		})
	})

	api := router.Group("/api/v1")
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("/process", s.processInvoices)
			invoices.GET("", s.listResults)
			invoices.GET("/export", s.exportResults)
			invoices.DELETE("", s.clearResults)
		}
	}
	return router
}

type recordJSON struct {
	Category  string `json:"category"`
	Label     string `json:"label"`
	Amount    string `json:"amount"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type resultsResponse struct {
	Results []recordJSON `json:"results"`
	Total   string       `json:"total"`
}

type processResponse struct {
	Outcomes []pipeline.CategoryOutcome `json:"outcomes"`
	resultsResponse
}

// processInvoices accepts one optional PDF per category field (luz, agua,
// internet, gas, plus recognized synonyms) and runs the batch. Per-category
// failures come back inline as outcomes; the request itself only fails on
// malformed input.
func (s *Service) processInvoices(c *gin.Context) {
	sessionID := s.sessionID(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required: " + err.Error()})
		return
	}

	uploads := make(map[constants.Category][]byte, 4)
	for field, files := range form.File {
		cat, ok := constants.Canonicalize(field)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("unknown category field %q", field),
			})
			return
		}
		if len(files) == 0 {
			continue
		}
		data, err := s.readUpload(files[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("read %s upload: %v", cat.FormField(), err),
			})
			return
		}
		uploads[cat] = data
	}

	outcomes := s.processor.ProcessBatch(c.Request.Context(), sessionID, uploads)

	state, err := s.currentState(c, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load results failed"})
		return
	}
	c.JSON(http.StatusOK, processResponse{Outcomes: outcomes, resultsResponse: state})
}

func (s *Service) listResults(c *gin.Context) {
	sessionID := s.sessionID(c)
	state, err := s.currentState(c, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load results failed"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// exportResults streams the XLSX report with the fixed filename.
func (s *Service) exportResults(c *gin.Context) {
	sessionID := s.sessionID(c)

	xlsx, err := s.export.ExportXLSX(c.Request.Context(), sessionID)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "session_id", sessionID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.ExportFilename))
	c.Data(http.StatusOK, constants.XLSXContentType, xlsx)
}

func (s *Service) clearResults(c *gin.Context) {
	sessionID := s.sessionID(c)
	if err := s.results.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "clear failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) currentState(c *gin.Context, sessionID uuid.UUID) (resultsResponse, error) {
	recs, err := s.results.List(c.Request.Context(), sessionID)
	if err != nil {
		return resultsResponse{}, err
	}
	out := resultsResponse{Results: make([]recordJSON, 0, len(recs))}
	for _, rec := range recs {
		out.Results = append(out.Results, recordJSON{
			Category:  string(rec.Category),
			Label:     rec.Category.Label(),
			Amount:    rec.Fields.Amount,
			StartDate: rec.Fields.StartDate,
			EndDate:   rec.Fields.EndDate,
		})
	}
	out.Total = results.SumAmounts(recs, s.logger)
	return out, nil
}

// sessionID returns the caller's session ID, minting a cookie on first touch.
func (s *Service) sessionID(c *gin.Context) uuid.UUID {
	if v, err := c.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	id := uuid.New()
	c.SetCookie(sessionCookie, id.String(), 0, "/", "", false, true)
	return id
}

func (s *Service) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > s.maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d MB limit", s.maxUploadBytes>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("upload close error", "error", cerr)
		}
	}()
	return io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
}
