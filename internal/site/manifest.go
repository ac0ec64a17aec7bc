// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// ManifestFile is the default manifest name.
const ManifestFile = "manifest.yaml"

// Manifest records the last successful publish.
type Manifest struct {
	LastPublished time.Time `yaml:"last_published"`
}

// HasPublished reports whether a publish has ever completed.
func (m Manifest) HasPublished() bool {
	return !m.LastPublished.IsZero()
}

// ChangedSince reports whether a note modified at modified must be
// re-rendered. Everything changed when nothing was published yet.
func (m Manifest) ChangedSince(modified time.Time) bool {
	if !m.HasPublished() {
		return true
	}
	return modified.After(m.LastPublished)
}

// LoadManifest reads the manifest at path. A missing file yields the
// zero Manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// SaveManifest writes m to path, creating its directory.
func SaveManifest(path string, m Manifest) error {
	m.LastPublished = m.LastPublished.UTC()
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
