package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const renderIDHeader = "X-Render-ID"

func (h *AdHandler) GenerateImage(c *gin.Context) {
	if err := parseForm(c); err != nil {
		h.fail(c, err)
		return
	}
	prompt, ok := c.GetPostForm("prompt")
	if !ok {
		h.fail(c, fmt.Errorf("%w: prompt", entity.ErrMissingField))
		return
	}
	base, err := readFormFile(c, "base_image")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.service.GenerateImage(c.Request.Context(), entity.GenerateImageRequest{
		Prompt:    prompt,
		BaseImage: base,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header(renderIDHeader, result.ID)
	c.Data(http.StatusOK, "image/png", result.PNG)
}

func (h *AdHandler) CreateAd(c *gin.Context) {
	if err := parseForm(c); err != nil {
		h.fail(c, err)
		return
	}
	fields := map[string]string{}
	for _, name := range []string{"prompt", "color_hex", "punchline", "button_text"} {
		value, ok := c.GetPostForm(name)
		if !ok {
			h.fail(c, fmt.Errorf("%w: %s", entity.ErrMissingField, name))
			return
		}
		fields[name] = value
	}

	base, err := readFormFile(c, "base_image")
	if err != nil {
		h.fail(c, err)
		return
	}
	logo, err := readFormFile(c, "logo")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.service.CreateAd(c.Request.Context(), entity.CreateAdRequest{
		Prompt:    fields["prompt"],
		BaseImage: base,
		Logo:      logo,
		Layout: entity.AdLayout{
			Punchline:  fields["punchline"],
			ButtonText: fields["button_text"],
			ColorHex:   fields["color_hex"],
		},
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header(renderIDHeader, result.ID)
	c.Data(http.StatusOK, "image/png", result.PNG)
}

func (h *AdHandler) GetImage(c *gin.Context) {
	id := c.Param("id")

	_, rc, err := h.service.GetRender(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header(renderIDHeader, id)
	c.Data(http.StatusOK, "image/png", data)
}

func (h *AdHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteRender(id); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

func (h *AdHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(requestIDKey),
		}).WithError(err).Error("Render failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidForm),
		errors.Is(err, entity.ErrDecode),
		errors.Is(err, entity.ErrInvalidColor):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrRenderNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrGenerator),
		errors.Is(err, entity.ErrEmptyGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseForm reads the whole multipart body up front so an oversized upload is reported
// as such instead of as a missing field.
func parseForm(c *gin.Context) error {
	if _, err := c.MultipartForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", entity.ErrTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", entity.ErrInvalidForm, err)
	}
	return nil
}

func readFormFile(c *gin.Context, name string) ([]byte, error) {
	file, err := c.FormFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingField, name)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
