package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/ds124wfegd/adstudio/internal/pkg/imageio"
	"github.com/sirupsen/logrus"
)

type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type httpGenerator struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewHTTPGenerator(opts Options) Generator {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &httpGenerator{
		httpClient: client,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      strings.TrimSpace(opts.APIKey),
	}
}

type img2imgRequest struct {
	Prompt        string  `json:"prompt"`
	Image         string  `json:"image"`
	Strength      float64 `json:"strength"`
	GuidanceScale float64 `json:"guidance_scale"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
}

type img2imgResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error,omitempty"`
}

func (g *httpGenerator) Generate(ctx context.Context, req Request) ([]image.Image, error) {
	if g.baseURL == "" {
		return nil, fmt.Errorf("%w: base url is not configured", entity.ErrGenerator)
	}

	src, err := imageio.EncodePNG(req.Image)
	if err != nil {
		return nil, err
	}
	bounds := req.Image.Bounds()
	body, err := json.Marshal(img2imgRequest{
		Prompt:        req.Prompt,
		Image:         base64.StdEncoding.EncodeToString(src),
		Strength:      req.Strength,
		GuidanceScale: req.GuidanceScale,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/img2img", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.token)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGenerator, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("Generator responded")

	var out img2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("%w: http %d", entity.ErrGenerator, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: decode response: %v", entity.ErrGenerator, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if out.Error != "" {
			return nil, fmt.Errorf("%w: %s (http %d)", entity.ErrGenerator, out.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: http %d", entity.ErrGenerator, resp.StatusCode)
	}
	if len(out.Images) == 0 {
		return nil, entity.ErrEmptyGeneration
	}

	images := make([]image.Image, 0, len(out.Images))
	for i, encoded := range out.Images {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", entity.ErrGenerator, i, err)
		}
		img, err := imageio.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", entity.ErrGenerator, i, err)
		}
		images = append(images, img)
	}
	return images, nil
}
