// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records calls and returns canned output.
type fakeExecutor struct {
	missing bool
	output  string
	err     error

	gotName string
	gotArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.missing {
		return "", errors.New("not found")
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return []byte(f.output), f.err
}

func TestNotesParsesOutput(t *testing.T) {
	fe := &fakeExecutor{output: `[
		{"id": "x-coredata://A/ICNote/p1", "name": "Hello", "body": "<div><h1>Hello</h1></div>",
		 "creationDate": "2024-03-05T10:20:30.000Z", "modificationDate": "2024-03-06T00:00:00.000Z"}
	]` + "\n"}
	src := newSource(fe, nil)

	notes, err := src.Notes(context.Background(), "blog")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	n := notes[0]
	assert.Equal(t, "x-coredata://A/ICNote/p1", n.Identifier)
	assert.Equal(t, "Hello", n.Title)
	assert.Equal(t, "<div><h1>Hello</h1></div>", n.Markup)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC), n.Created)
	assert.Nil(t, n.Content)

	assert.Equal(t, "osascript", fe.gotName)
	require.Len(t, fe.gotArgs, 4)
	assert.Equal(t, []string{"-l", "JavaScript", "-e"}, fe.gotArgs[:3])
	assert.Contains(t, fe.gotArgs[3], `const wanted = "blog";`)
}

func TestNotesEmptyOutput(t *testing.T) {
	notes, err := newSource(&fakeExecutor{output: "\n"}, nil).Notes(context.Background(), "blog")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNotesErrors(t *testing.T) {
	tests := []struct {
		name string
		exec *fakeExecutor
		want error
	}{
		{name: "no scripting host", exec: &fakeExecutor{missing: true}, want: ErrUnavailable},
		{name: "script failure", exec: &fakeExecutor{err: errors.New("exit status 1")}},
		{name: "bad json", exec: &fakeExecutor{output: "{not json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSource(tt.exec, nil).Notes(context.Background(), "blog")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestFolderScriptQuotesName(t *testing.T) {
	script, err := folderScript(`My "quoted" folder`)
	require.NoError(t, err)
	assert.Contains(t, script, `const wanted = "My \"quoted\" folder";`)
}
