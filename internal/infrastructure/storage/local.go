package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes images below a directory that the HTTP server exposes
// under PublicBaseURL.
type LocalStore struct {
	Dir           string
	PublicBaseURL string
}

func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{Dir: dir, PublicBaseURL: publicBaseURL}, nil
}

func (s *LocalStore) Save(ctx context.Context, img *Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := newObjectKey(img.ContentType)
	if err := os.WriteFile(filepath.Join(s.Dir, filepath.FromSlash(key)), img.Data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return joinURL(s.PublicBaseURL, key), nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	key := keyFromRef(s.PublicBaseURL, ref)
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(filepath.Clean("/"+key))))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
