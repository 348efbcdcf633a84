package appServer

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/adstudio/config"
	"github.com/ds124wfegd/adstudio/internal/pkg/generator"
	"github.com/ds124wfegd/adstudio/internal/pkg/imageio"
	"github.com/ds124wfegd/adstudio/internal/pkg/kafka"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type nopGenerator struct{}

func (nopGenerator) Generate(ctx context.Context, req generator.Request) ([]image.Image, error) {
	return []image.Image{req.Image}, nil
}

func TestNewHandlerWiresRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{MaxUploadMB: 8},
		Fonts:   config.FontsConfig{Path: filepath.Join(t.TempDir(), "missing.otf"), HeadlineSize: 40, LabelSize: 20},
		Storage: config.StorageConfig{BasePath: t.TempDir(), Archive: false},
	}

	h := NewHandler(cfg, nopGenerator{}, kafka.NewLogProducer())
	assert.Equal(t, int64(imageio.DefaultMaxPixels), imageio.MaxPixels())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/6f1c1c1e-8f9e-4a55-9d53-3c4d2b1f0a11", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHandlerAppliesImageLimits(t *testing.T) {
	t.Cleanup(func() { imageio.SetMaxPixels(0) })
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{MaxUploadMB: 1, MaxPixels: 1000},
		Fonts:   config.FontsConfig{Path: filepath.Join(t.TempDir(), "missing.otf"), HeadlineSize: 40, LabelSize: 20},
		Storage: config.StorageConfig{BasePath: t.TempDir()},
	}

	h := NewHandler(cfg, nopGenerator{}, kafka.NewLogProducer())
	assert.Equal(t, int64(1000), imageio.MaxPixels())

	req := httptest.NewRequest(http.MethodPost, "/generate-image/", bytes.NewReader(make([]byte, 2<<20)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
