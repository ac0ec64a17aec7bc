// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed(t *testing.T, home string) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)
	l.home = home
	return l, logs
}

func TestLoggerShortensHomePaths(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "Users", "ada")
	l, logs := observed(t, home)

	l.Info("opened", "database_path", filepath.Join(home, "notes.sqlite"), "folder", filepath.Join(home, "x"))
	l.With("output_dir", home).Warn("done")

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, filepath.Join("~", "notes.sqlite"), fields["database_path"])
	assert.Equal(t, filepath.Join(home, "x"), fields["folder"], "non-path keys are untouched")
	assert.Equal(t, "~", entries[1].ContextMap()["output_dir"])
}

func TestLoggerOddKeyValues(t *testing.T) {
	l, logs := observed(t, "/home/u")
	l.Debug("odd", "a", 1, "dangling")
	assert.Equal(t, 1, logs.FilterMessage("odd").Len())
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "silent"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		l.Info("hello")
	}
	Nop().Error("discarded")
}
