// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notepub/internal/notestore"
	"github.com/pdiddy/notepub/pkg/types"
)

func TestOpenSource(t *testing.T) {
	_, _, err := openSource(types.SourceConfig{Kind: "ftp"})
	assert.ErrorContains(t, err, `unknown note source "ftp"`)

	src, closeSource, err := openSource(types.SourceConfig{Kind: types.SourceBridge})
	require.NoError(t, err)
	assert.NotNil(t, src)
	assert.NoError(t, closeSource())

	_, _, err = openSource(types.SourceConfig{
		Kind:         types.SourceDatabase,
		DatabasePath: filepath.Join(t.TempDir(), "missing.sqlite"),
	})
	assert.ErrorIs(t, err, notestore.ErrDatabaseNotFound)
}

func TestPublishConfigDefaults(t *testing.T) {
	cfg := publishConfig()
	assert.Equal(t, "./templates", cfg.TemplateDir)
	assert.Equal(t, 30, cfg.MaxPosts)
	assert.Equal(t, "github", cfg.Highlight.Style)
	assert.Equal(t, types.SourceDatabase, cfg.Source.Kind)

	viper.Set("manifest_path", "/tmp/state.yaml")
	t.Cleanup(func() { viper.Set("manifest_path", "") })
	assert.Equal(t, "/tmp/state.yaml", publishConfig().ManifestPath)
}
