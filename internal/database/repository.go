package database

import (
	"io"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/ds124wfegd/adstudio/internal/pkg/storage"
)

// RenderRepository archives finished renders: PNG bytes plus JSON metadata.
type RenderRepository interface {
	Save(record *entity.RenderRecord, png []byte) error
	FindByID(id string) (*entity.RenderRecord, error)
	Open(id string) (io.ReadCloser, error)
	Delete(id string) error
}

type fileRenderRepository struct {
	storage storage.FileStorage
}
