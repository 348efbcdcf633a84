package service

import (
	"context"
	"io"

	"github.com/ds124wfegd/adstudio/internal/database"
	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/ds124wfegd/adstudio/internal/pkg/compositor"
	"github.com/ds124wfegd/adstudio/internal/pkg/generator"
	"github.com/ds124wfegd/adstudio/internal/pkg/kafka"
)

type AdService interface {
	GenerateImage(ctx context.Context, req entity.GenerateImageRequest) (*entity.RenderResult, error)
	CreateAd(ctx context.Context, req entity.CreateAdRequest) (*entity.RenderResult, error)
	GetRender(id string) (*entity.RenderRecord, io.ReadCloser, error)
	DeleteRender(id string) error
}

type adService struct {
	generator  generator.Generator
	compositor compositor.Compositor
	repo       database.RenderRepository
	producer   kafka.Producer
}

// NewAdService wires the render pipeline. repo may be nil to disable the archive.
func NewAdService(gen generator.Generator, comp compositor.Compositor, repo database.RenderRepository, producer kafka.Producer) AdService {
	if producer == nil {
		producer = kafka.NewLogProducer()
	}
	return &adService{
		generator:  gen,
		compositor: comp,
		repo:       repo,
		producer:   producer,
	}
}
