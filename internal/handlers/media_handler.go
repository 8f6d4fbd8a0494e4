package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/primefit-labs/training-scheduler/internal/media"
)

// ======================================================
// HANDLER
// ======================================================

type MediaHandler struct {
	storage *media.Storage
}

func NewMediaHandler(storage *media.Storage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// ======================================================
// GALLERY
// ======================================================

func (h *MediaHandler) Gallery(c *gin.Context) {
	prefix := strings.TrimSpace(c.Query("prefix"))
	if prefix == "" {
		prefix = "gallery/"
	}

	objects, err := h.storage.List(c.Request.Context(), prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_media"})
		return
	}

	c.JSON(http.StatusOK, objects)
}

// ======================================================
// UPLOAD
// ======================================================

// Upload normalizes the incoming image to WebP and stores it under a
// random key. The original bytes are discarded.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
		return
	}

	if file.Size > media.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_file"})
		return
	}
	if len(data) > media.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large"})
		return
	}

	encoded, err := media.TranscodeWebP(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "unsupported_image",
			"details": err.Error(),
		})
		return
	}

	key := fmt.Sprintf("gallery/%s.webp", uuid.New().String())

	publicURL, err := h.storage.Upload(c.Request.Context(), key, "image/webp", encoded)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": publicURL,
	})
}

// ======================================================
// PROXY
// ======================================================

var proxyClient = &http.Client{Timeout: 10 * time.Second}

// ProxyImage fetches a remote image and returns it alongside its dominant
// color, so clients can theme cards before the image renders.
func (h *MediaHandler) ProxyImage(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("url"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_url"})
		return
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_url"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, raw, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_url"})
		return
	}

	resp, err := proxyClient.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch_failed"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch_failed"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, media.MaxUploadBytes+1))
	if err != nil || len(data) > media.MaxUploadBytes {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fetch_failed"})
		return
	}

	img, contentType, err := media.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_image"})
		return
	}

	c.Header("X-Dominant-Color", media.DominantColor(img))
	c.Data(http.StatusOK, contentType, data)
}
