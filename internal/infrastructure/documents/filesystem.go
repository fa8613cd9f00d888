package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore persists report artifacts under a local directory
// and serves them by URL. It implements usecase.DocumentStore.
type FilesystemStore struct {
	dir     string
	baseURL string
}

// NewFilesystemStore creates a FilesystemStore rooted at dir.
func NewFilesystemStore(dir, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	return &FilesystemStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Store writes the artifact and returns its retrieval URL. Names are
// flattened to their base to keep writes inside the store directory.
func (s *FilesystemStore) Store(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(name)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", name, err)
	}

	return s.baseURL + "/" + name, nil
}

// Dir returns the directory documents are stored in.
func (s *FilesystemStore) Dir() string {
	return s.dir
}
