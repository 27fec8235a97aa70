package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foliocms/foliocms/internal/portfolio"
	"github.com/foliocms/foliocms/internal/portfolio/repository"
	"github.com/foliocms/foliocms/internal/portfolio/service"
	"github.com/foliocms/foliocms/pkg/logger"
	"github.com/foliocms/foliocms/pkg/metrics"
)

// maxUploadBytes caps multipart image uploads.
const maxUploadBytes = 10 << 20

// Uploader stores one uploaded image and returns its public URL. Satisfied
// by *storage.MinIOStorage and by test fakes.
type Uploader interface {
	Upload(ctx context.Context, section, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// PortfolioHandler serves the public content API and the gated write API.
type PortfolioHandler struct {
	svc      *service.Service
	uploader Uploader
}

func NewPortfolioHandler(svc *service.Service, uploader Uploader) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, uploader: uploader}
}

// Register routes under /api. Reads are public; writes and uploads sit
// behind the session gate.
func (h *PortfolioHandler) Register(rg *gin.RouterGroup, requireSession gin.HandlerFunc) {
	api := rg.Group("/api")
	api.GET("/portfolio", h.GetAll)
	api.GET("/portfolio/:section", h.GetSection)
	api.PUT("/portfolio/:section", requireSession, h.PutSection)
	api.POST("/uploads/:section", requireSession, h.Upload)
}

// GetAll returns the composed aggregate of every present section.
func (h *PortfolioHandler) GetAll(c *gin.Context) {
	data, err := h.svc.Load(c.Request.Context())
	if err != nil {
		logger.Errorf("failed to load portfolio: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load portfolio"})
		return
	}
	metrics.SectionReads.WithLabelValues("all").Inc()
	c.JSON(http.StatusOK, data)
}

// GetSection returns one section's typed value.
func (h *PortfolioHandler) GetSection(c *gin.Context) {
	section, err := portfolio.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	value, err := h.svc.LoadSection(c.Request.Context(), section)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
			return
		}
		logger.Errorf("failed to load %s: %v", section, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load section"})
		return
	}
	metrics.SectionReads.WithLabelValues(string(section)).Inc()
	c.JSON(http.StatusOK, value)
}

// PutSection validates and replaces one section document.
func (h *PortfolioHandler) PutSection(c *gin.Context) {
	section, err := portfolio.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if err := h.svc.SaveSection(c.Request.Context(), section, raw); err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("failed to save %s: %v", section, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save section"})
		return
	}
	metrics.SectionWrites.WithLabelValues(string(section)).Inc()
	c.JSON(http.StatusOK, gin.H{"section": section, "saved": true})
}

// Upload stores a multipart image for the section and returns its public
// URL. The URL is not written into the section document; the editor places
// it in the field being edited and persists on submit.
func (h *PortfolioHandler) Upload(c *gin.Context) {
	section, err := portfolio.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not configured"})
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	url, err := h.uploader.Upload(c.Request.Context(), string(section), fh.Filename, f, fh.Size, contentType)
	if err != nil {
		metrics.UploadErrors.WithLabelValues(string(section)).Inc()
		logger.Errorf("upload for %s failed: %v", section, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	metrics.Uploads.WithLabelValues(string(section)).Inc()
	c.JSON(http.StatusOK, gin.H{"url": url})
}
