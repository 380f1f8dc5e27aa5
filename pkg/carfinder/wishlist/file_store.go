package wishlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// FileStore keeps the slot as <dir>/carWishlist.json.
type FileStore struct {
	path string
}

// NewFileStore creates dir when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create wishlist dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, Key+".json")}, nil
}

func (s *FileStore) Load(_ context.Context) ([]dal.Car, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Save writes to a temp file and renames it over the slot.
func (s *FileStore) Save(_ context.Context, cars []dal.Car) error {
	data, err := encode(cars)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Close() error { return nil }
