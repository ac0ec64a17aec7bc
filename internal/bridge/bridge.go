// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bridge fetches notes through the Notes app's scripting
// interface. Notes arrive as pre-rendered markup rather than compressed
// records and are rendered with render.Renderer.RenderMarkup.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/pdiddy/notepub/internal/logging"
	"github.com/pdiddy/notepub/pkg/types"
)

const binOsascript = "osascript"

// ErrUnavailable means the scripting host is not installed.
var ErrUnavailable = errors.New("notes scripting bridge unavailable")

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Source reads a folder's notes through the scripting bridge.
type Source struct {
	exec       executor
	log        *logging.Logger
	maxRetries int
}

// New returns a Source using the system scripting host.
func New(log *logging.Logger) *Source {
	return newSource(&osExecutor{}, log)
}

func newSource(exec executor, log *logging.Logger) *Source {
	if log == nil {
		log = logging.Nop()
	}
	return &Source{exec: exec, log: log, maxRetries: defaultMaxRetries}
}

// Available reports whether the scripting host exists on PATH.
func (s *Source) Available() bool {
	_, err := s.exec.LookPath(binOsascript)
	return err == nil
}

// bridgeNote is one element of the script's JSON output.
type bridgeNote struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Body             string    `json:"body"`
	CreationDate     time.Time `json:"creationDate"`
	ModificationDate time.Time `json:"modificationDate"`
}

// Notes returns every note in folders called folder, across accounts.
func (s *Source) Notes(ctx context.Context, folder string) ([]types.Note, error) {
	if !s.Available() {
		return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, binOsascript)
	}

	script, err := folderScript(folder)
	if err != nil {
		return nil, err
	}
	out, err := s.outputWithRetry(ctx, "-l", "JavaScript", "-e", script)
	if err != nil {
		return nil, fmt.Errorf("fetching notes from folder %q: %w", folder, err)
	}

	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}
	var raw []bridgeNote
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parsing notes data: %w", err)
	}

	notes := make([]types.Note, 0, len(raw))
	for _, n := range raw {
		notes = append(notes, types.Note{
			Identifier: n.ID,
			Title:      n.Name,
			Created:    n.CreationDate.UTC(),
			Modified:   n.ModificationDate.UTC(),
			Markup:     n.Body,
		})
	}
	s.log.Debug("loaded notes", "folder", folder, "count", len(notes))
	return notes, nil
}

// folderScript builds the automation script listing a folder. The folder
// name is embedded as a JSON string literal.
func folderScript(folder string) (string, error) {
	name, err := json.Marshal(folder)
	if err != nil {
		return "", fmt.Errorf("encoding folder name: %w", err)
	}
	return fmt.Sprintf(`const app = Application("Notes");
const wanted = %s;
const notes = [];
for (const account of app.accounts()) {
	for (const folder of account.folders()) {
		if (folder.name() !== wanted) continue;
		for (const note of folder.notes()) {
			notes.push({
				id: note.id(),
				name: note.name(),
				body: note.body(),
				creationDate: note.creationDate().toISOString(),
				modificationDate: note.modificationDate().toISOString()
			});
		}
	}
}
JSON.stringify(notes);`, name), nil
}
