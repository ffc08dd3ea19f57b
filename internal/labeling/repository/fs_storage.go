package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
)

type fsStorage struct {
	dir string
}

// NewFSStorage stores video objects as plain files under dir.
func NewFSStorage(dir string) (labeling.ObjectRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create video dir: %w", err)
	}
	return &fsStorage{dir: dir}, nil
}

func (s *fsStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid object key %q: %w", key, httpErrors.ErrBadRequest)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *fsStorage) PutObject(ctx context.Context, input models.UploadInput) error {
	path, err := s.path(input.Key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = io.Copy(tmp, input.File); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to upload file : %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to upload file : %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to store file : %w", err)
	}
	return nil
}

func (s *fsStorage) GetObject(ctx context.Context, key string) (*models.Object, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s: %w", key, httpErrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open file : %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file : %w", err)
	}
	return &models.Object{
		Key:         key,
		Body:        f,
		Size:        stat.Size(),
		ContentType: utils.ContentTypeByName(key),
		ModTime:     stat.ModTime(),
	}, nil
}

func (s *fsStorage) FetchToFile(ctx context.Context, key string) (string, func(), error) {
	path, err := s.path(key)
	if err != nil {
		return "", func() {}, err
	}
	if _, err = os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", func() {}, fmt.Errorf("object %s: %w", key, httpErrors.ErrNotFound)
		}
		return "", func() {}, fmt.Errorf("failed to stat file : %w", err)
	}
	return path, func() {}, nil
}

func (s *fsStorage) RemoveObject(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file : %w", err)
	}
	return nil
}
