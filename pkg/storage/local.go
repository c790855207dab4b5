package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/groove-lab/backend/config"
)

type localStorage struct {
	cfg config.LocalStorageConfigs
}

func NewLocalStorage(cfg config.LocalStorageConfigs) *localStorage {
	return &localStorage{cfg: cfg}
}

func (s *localStorage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	key := object.newKey()
	dst := filepath.Join(s.cfg.RootDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, err
	}

	if err := os.WriteFile(dst, object.Data, 0644); err != nil {
		return nil, err
	}

	return &UploadResponse{
		Url:      strings.TrimRight(s.cfg.URLPrefix, "/") + "/" + key,
		FileName: key,
	}, nil
}

func (s *localStorage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, strings.TrimRight(s.cfg.URLPrefix, "/")+"/")
	if !ok || key == "" {
		return nil
	}

	// Reject keys escaping the root directory.
	clean := path.Clean("/" + key)
	if clean != "/"+key {
		return fmt.Errorf("invalid file key %s", key)
	}

	err := os.Remove(filepath.Join(s.cfg.RootDir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
