// storage.go
//
// Family photo sharing backend for kids' memories.

package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/NgocTV11/kids-memories-backend/internal/config"
)

// Folders used by the services. Renditions add their own sub-folder under
// FolderPhotos.
const (
	FolderAvatars = "avatars"
	FolderPhotos  = "photos"
	FolderAlbums  = "albums"
)

// Storage is the object storage adapter contract: write-once uploads under
// randomly generated keys, best-effort deletes.
type Storage interface {
	Upload(ctx context.Context, data []byte, folder, filename string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// New selects the backend from configuration: MinIO/S3 when fully configured,
// local disk otherwise.
func New(cfg *config.Config) (Storage, error) {
	if cfg.UseS3() {
		return NewMinioStorage(cfg)
	}
	log.Printf("S3 credentials not configured, using local storage under %s", cfg.UploadDir)
	return NewLocalStorage(cfg.UploadDir), nil
}

// LocalStorage writes files under a base directory and serves them as
// /uploads/... static paths.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a local disk storage rooted at baseDir.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// Upload writes data to {baseDir}/{folder}/{filename} and returns the public
// /uploads URL for it.
func (s *LocalStorage) Upload(ctx context.Context, data []byte, folder, filename string) (string, error) {
	dir := filepath.Join(s.baseDir, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "/uploads/" + path.Join(folder, filename), nil
}

// Delete removes a previously uploaded file. Unknown URLs are ignored.
func (s *LocalStorage) Delete(ctx context.Context, fileURL string) error {
	rel, ok := strings.CutPrefix(fileURL, "/uploads/")
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
