package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"timetrack/internal/modules/exporter/domain"
	exporterout "timetrack/internal/modules/exporter/port/out"
)

// FileManifestStore reads exporter manifests from the configured manifest
// file. Relative binary paths resolve against basePath.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath, manifestPath string) exporterout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: manifestPath}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read exporter manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode exporter manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, manifests[i].Binary))
		}
	}
	return manifests, nil
}
