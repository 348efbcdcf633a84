// Package generator talks to the external image-to-image model.
package generator

import (
	"context"
	"image"
)

// Fixed model controls. Strength bounds how far the output may drift from the
// source image, GuidanceScale how closely it follows the prompt.
const (
	Strength      = 0.75
	GuidanceScale = 7.5
)

type Request struct {
	Prompt        string
	Image         image.Image
	Strength      float64
	GuidanceScale float64
}

// NewRequest fills in the fixed controls.
func NewRequest(prompt string, img image.Image) Request {
	return Request{
		Prompt:        prompt,
		Image:         img,
		Strength:      Strength,
		GuidanceScale: GuidanceScale,
	}
}

// Generator returns one or more images for a request. Latency and determinism are up to
// the implementation.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]image.Image, error)
}
