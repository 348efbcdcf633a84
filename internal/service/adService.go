package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/ds124wfegd/adstudio/internal/pkg/compositor"
	"github.com/ds124wfegd/adstudio/internal/pkg/generator"
	"github.com/ds124wfegd/adstudio/internal/pkg/imageio"
	"github.com/ds124wfegd/adstudio/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (s *adService) GenerateImage(ctx context.Context, req entity.GenerateImageRequest) (result *entity.RenderResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRender(entity.KindGenerated, start, err) }()

	if len(req.BaseImage) == 0 {
		return nil, fmt.Errorf("%w: base_image", entity.ErrMissingField)
	}
	base, err := imageio.PrepareBase(req.BaseImage)
	if err != nil {
		return nil, err
	}

	generated, err := s.generate(ctx, req.Prompt, base)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, entity.KindGenerated, req.Prompt, generated, start)
}

func (s *adService) CreateAd(ctx context.Context, req entity.CreateAdRequest) (result *entity.RenderResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveRender(entity.KindAd, start, err) }()

	switch {
	case len(req.BaseImage) == 0:
		return nil, fmt.Errorf("%w: base_image", entity.ErrMissingField)
	case len(req.Logo) == 0:
		return nil, fmt.Errorf("%w: logo", entity.ErrMissingField)
	}

	// every client error surfaces before the model is invoked
	if _, err := compositor.ParseHex(req.Layout.ColorHex); err != nil {
		return nil, err
	}
	base, err := imageio.PrepareBase(req.BaseImage)
	if err != nil {
		return nil, err
	}
	logo, err := imageio.Decode(req.Logo)
	if err != nil {
		return nil, err
	}

	product, err := s.generate(ctx, req.Prompt, base)
	if err != nil {
		return nil, err
	}

	ad, err := s.compositor.Compose(product, logo, req.Layout)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, entity.KindAd, req.Prompt, ad, start)
}

func (s *adService) GetRender(id string) (*entity.RenderRecord, io.ReadCloser, error) {
	if s.repo == nil {
		return nil, nil, entity.ErrRenderNotFound
	}
	record, err := s.repo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.repo.Open(id)
	if err != nil {
		return nil, nil, err
	}
	return record, rc, nil
}

func (s *adService) DeleteRender(id string) error {
	if s.repo == nil {
		return entity.ErrRenderNotFound
	}
	return s.repo.Delete(id)
}

// generate returns the first image the model produced.
func (s *adService) generate(ctx context.Context, prompt string, base image.Image) (image.Image, error) {
	start := time.Now()
	images, err := s.generator.Generate(ctx, generator.NewRequest(prompt, base))
	metrics.ObserveGenerator(start)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if len(images) == 0 || images[0] == nil {
		return nil, entity.ErrEmptyGeneration
	}
	return images[0], nil
}

// finish encodes the render, then archives and announces it. Archive and event failures
// are logged and never fail the request.
func (s *adService) finish(ctx context.Context, kind, prompt string, img image.Image, start time.Time) (*entity.RenderResult, error) {
	data, err := imageio.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &entity.RenderResult{
		ID:     uuid.New().String(),
		Kind:   kind,
		PNG:    data,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	log := logrus.WithFields(logrus.Fields{"id": result.ID, "kind": kind})

	if s.repo != nil {
		record := &entity.RenderRecord{
			ID:        result.ID,
			Kind:      kind,
			Prompt:    prompt,
			Width:     result.Width,
			Height:    result.Height,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.Save(record, data); err != nil {
			log.WithError(err).Error("Failed to archive render")
		}
	}

	event := entity.RenderEvent{
		ID:         result.ID,
		Kind:       kind,
		Prompt:     prompt,
		Width:      result.Width,
		Height:     result.Height,
		DurationMs: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, result.ID, event); err != nil {
		log.WithError(err).Error("Failed to publish render event")
	}

	log.WithField("duration", time.Since(start)).Info("Render completed")
	return result, nil
}
