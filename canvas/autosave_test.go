// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/canvas/scene"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutosaveFilename(t *testing.T) {
	ed := NewEditor()
	assert.Equal(t, "#new_document#", ed.AutosaveFilename())
	ed.Filename = filepath.Join("some", "dir", "doc.json")
	assert.Equal(t, filepath.Join("some", "dir", "#doc.json#"), ed.AutosaveFilename())
}

func TestAutosave(t *testing.T) {
	ed := NewEditor()
	ed.Filename = filepath.Join(t.TempDir(), "doc.json")
	id := addRect(t, ed, 0, 0, 10, 10)

	require.True(t, ed.Dirty())
	require.NoError(t, ed.Autosave())
	assert.False(t, ed.Dirty())
	assert.True(t, ed.AutosaveCheck())

	// the autosave file is an ordinary document
	sc := scene.NewScene()
	require.NoError(t, sc.OpenJSON(ed.AutosaveFilename()))
	assert.True(t, sc.Has(id))

	// a clean session does not write
	require.NoError(t, os.Remove(ed.AutosaveFilename()))
	require.NoError(t, ed.Autosave())
	assert.False(t, ed.AutosaveCheck())
}

func TestAutosaveSkipsOpenTransaction(t *testing.T) {
	ed := NewEditor()
	ed.Filename = filepath.Join(t.TempDir(), "doc.json")
	addRect(t, ed, 0, 0, 10, 10)

	require.NoError(t, ed.Begin("drag"))
	require.NoError(t, ed.Autosave())
	assert.False(t, ed.AutosaveCheck(), "no autosave while a transaction is open")
	assert.True(t, ed.Dirty())

	require.NoError(t, ed.Abort())
	require.NoError(t, ed.Autosave())
	assert.True(t, ed.AutosaveCheck())
}

func TestSaveFileDeletesAutosave(t *testing.T) {
	ed := NewEditor()
	fn := filepath.Join(t.TempDir(), "doc.json")
	ed.Filename = fn
	addRect(t, ed, 0, 0, 10, 10)

	require.NoError(t, ed.Autosave())
	require.True(t, ed.AutosaveCheck())

	addRect(t, ed, 20, 0, 10, 10)
	require.NoError(t, ed.SaveFile(fn))
	assert.False(t, ed.AutosaveCheck(), "a real save removes the autosave file")
	assert.False(t, ed.Dirty())
}

func TestAutosaveDelete(t *testing.T) {
	ed := NewEditor()
	ed.Filename = filepath.Join(t.TempDir(), "doc.json")
	ed.AutosaveDelete() // nothing to delete is fine

	addRect(t, ed, 0, 0, 10, 10)
	require.NoError(t, ed.Autosave())
	ed.AutosaveDelete()
	assert.False(t, ed.AutosaveCheck())
}

func TestStartStopAutosave(t *testing.T) {
	ed := NewEditor()
	ed.Filename = filepath.Join(t.TempDir(), "doc.json")
	ed.Settings.AutosaveInterval = time.Hour

	ed.StartAutosave()
	ed.StartAutosave() // restarting replaces the previous ticker
	ed.StopAutosave()
	ed.StopAutosave() // stopping again is a no-op
}

func TestWatchFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(fn, []byte("{}"), 0666))

	ed := NewEditor()
	events := make(chan fsnotify.Event, 10)
	require.NoError(t, ed.WatchFile(fn, func(event fsnotify.Event) {
		events <- event
	}))
	defer ed.UnwatchFile()

	require.NoError(t, os.WriteFile(fn, []byte(`{"vsn":1}`), 0666))

	select {
	case event := <-events:
		assert.Equal(t, fn, event.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for a watched file write")
	}
}

func TestWatchFileMissing(t *testing.T) {
	ed := NewEditor()
	err := ed.WatchFile(filepath.Join(t.TempDir(), "missing.json"), func(fsnotify.Event) {})
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(fn, []byte("{}"), 0666))

	ed := NewEditor()
	ed.Filename = fn
	ed.Settings.AutosaveInterval = time.Hour
	ed.StartAutosave()
	require.NoError(t, ed.WatchFile(fn, func(fsnotify.Event) {}))

	ed.Close()
	ed.Close() // idempotent
}
