package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/ds124wfegd/adstudio/internal/pkg/storage"
	"github.com/google/uuid"
)

func NewRenderRepository(storage storage.FileStorage) RenderRepository {
	return &fileRenderRepository{storage: storage}
}

func (r *fileRenderRepository) Save(record *entity.RenderRecord, png []byte) error {
	if _, err := uuid.Parse(record.ID); err != nil {
		return err
	}

	if err := r.storage.Save(r.renderPath(record.ID), bytes.NewReader(png)); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	// metadata last: a render is visible only once its PNG is in place
	return r.storage.Save(r.metadataPath(record.ID), bytes.NewReader(data))
}

func (r *fileRenderRepository) FindByID(id string) (*entity.RenderRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrRenderNotFound
	}

	reader, err := r.storage.Get(r.metadataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrRenderNotFound
		}
		return nil, err
	}
	defer reader.Close()

	var record entity.RenderRecord
	if err := json.NewDecoder(reader).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *fileRenderRepository) Open(id string) (io.ReadCloser, error) {
	if _, err := r.FindByID(id); err != nil {
		return nil, err
	}

	reader, err := r.storage.Get(r.renderPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrRenderNotFound
		}
		return nil, err
	}
	return reader, nil
}

func (r *fileRenderRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return entity.ErrRenderNotFound
	}

	if !r.storage.Exists(r.metadataPath(id)) {
		return entity.ErrRenderNotFound
	}
	if err := r.storage.Delete(r.metadataPath(id)); err != nil {
		return err
	}

	if err := r.storage.Delete(r.renderPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (r *fileRenderRepository) renderPath(id string) string {
	return filepath.Join("renders", id+".png")
}

func (r *fileRenderRepository) metadataPath(id string) string {
	return filepath.Join("metadata", id+".json")
}
