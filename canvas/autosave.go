// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"github.com/fsnotify/fsnotify"
)

// AutosaveFilename returns the file autosave writes to: an emacs-style
// #name# next to the session file, or #new_document# in the working
// directory when the session has no file yet.
func (ed *Editor) AutosaveFilename() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.autosaveFilename()
}

func (ed *Editor) autosaveFilename() string {
	path, fn := filepath.Split(ed.Filename)
	if fn == "" {
		fn = "new_document"
	}
	return filepath.Join(path, "#"+fn+"#")
}

// StartAutosave begins background autosave: every
// [Settings.AutosaveInterval] the document is written to
// [Editor.AutosaveFilename] if it has unsaved changes. Stop it with
// [Editor.StopAutosave] or [Editor.Close].
func (ed *Editor) StartAutosave() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.stopAutosave()
	ed.autosaveTicker = time.NewTicker(ed.Settings.AutosaveInterval)
	ed.doneAutosave = make(chan bool, 1)
	tick := ed.autosaveTicker
	done := ed.doneAutosave
	go func() {
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				errors.Log(ed.Autosave())
			}
		}
	}()
}

// StopAutosave stops background autosave, if running.
func (ed *Editor) StopAutosave() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.stopAutosave()
}

// stopAutosave implements [Editor.StopAutosave]; the lock must be held.
func (ed *Editor) stopAutosave() {
	if ed.autosaveTicker == nil {
		return
	}
	ed.autosaveTicker.Stop()
	ed.doneAutosave <- true
	close(ed.doneAutosave)
	ed.autosaveTicker = nil
	ed.doneAutosave = nil
}

// Autosave performs one autosave check now: if the document has unsaved
// changes and no transaction is open, it is written atomically (temp
// file and rename) to [Editor.AutosaveFilename]. Ticks that land inside
// a transaction are picked up by the next one. Safe to call from any
// goroutine.
func (ed *Editor) Autosave() error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if !ed.dirty || ed.History.InTransaction() {
		return nil
	}
	asfn := ed.autosaveFilename()
	tmp := asfn + ".tmp"
	if err := ed.Scene.SaveJSON(tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, asfn); err != nil {
		return err
	}
	ed.dirty = false
	return nil
}

// AutosaveDelete deletes the autosave file, if any. [Editor.SaveFile]
// calls this after a successful save.
func (ed *Editor) AutosaveDelete() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.autosaveDelete()
}

func (ed *Editor) autosaveDelete() {
	err := os.Remove(ed.autosaveFilename())
	// the file may not exist, which is fine
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		errors.Log(err)
	}
}

// AutosaveCheck reports whether an autosave file exists for the session
// file; recovering from it is up to the host (see [Editor.OpenFile]).
func (ed *Editor) AutosaveCheck() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return errors.Log1(fsx.FileExists(ed.autosaveFilename()))
}

//////// File watching

// WatchFile starts watching the given file, calling the given function
// when it is written, created, renamed, or removed, so hosts can offer
// to reload documents modified outside the session. The function runs
// on the watch goroutine. Any previous watch is replaced; watching
// stops at [Editor.UnwatchFile] or [Editor.Close].
func (ed *Editor) WatchFile(filename string, onChange func(event fsnotify.Event)) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.unwatchFile()
	var err error
	ed.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := ed.watcher.Add(filename); err != nil {
		ed.watcher.Close()
		ed.watcher = nil
		return err
	}
	ed.doneWatcher = make(chan bool, 1)
	watch := ed.watcher
	done := ed.doneWatcher
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-watch.Events:
				if !ok {
					return
				}
				switch {
				case event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create ||
					event.Op&fsnotify.Remove == fsnotify.Remove ||
					event.Op&fsnotify.Rename == fsnotify.Rename:
					onChange(event)
				}
			case err, ok := <-watch.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return nil
}

// UnwatchFile stops the file watch, if any.
func (ed *Editor) UnwatchFile() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.unwatchFile()
}

// unwatchFile implements [Editor.UnwatchFile]; the lock must be held.
func (ed *Editor) unwatchFile() {
	if ed.doneWatcher != nil {
		ed.doneWatcher <- true
		close(ed.doneWatcher)
		ed.doneWatcher = nil
	}
	if ed.watcher != nil {
		ed.watcher.Close()
		ed.watcher = nil
	}
}
