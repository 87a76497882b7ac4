// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package canvas implements the editing session of the vector editor.
// An [Editor] ties one document ([scene.Scene]) to its command history,
// selection, and viewport, and adds the session services: one-shot
// undoable operations, grouping, file persistence, autosave, and
// settings.
//
// The document packages are single-goroutine; the Editor serializes
// its exported methods with one mutex so that background work (the
// autosave ticker, file watching) cannot interleave with a host's
// transaction. Hosts that only ever call from one goroutine can also
// use the exported fields directly.
package canvas

import (
	"sync"
	"time"

	"cogentcore.org/canvas/history"
	"cogentcore.org/canvas/scene"
	"cogentcore.org/canvas/selection"
	"cogentcore.org/canvas/viewport"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/fsnotify/fsnotify"
)

// Editor is one editing session on one document. Create it with
// [NewEditor], drive edits through its one-shot operations or through
// Begin/Commit transactions, and call [Editor.Close] when done.
type Editor struct {

	// Settings are the session parameters.
	Settings Settings

	// Scene is the open document. It is replaced wholesale by
	// [Editor.OpenFile] and [Editor.LoadSnapshot].
	Scene *scene.Scene

	// History is the command manager of the open document.
	History *history.History

	// Selection is the selected set of nodes.
	Selection *selection.Selection

	// Viewport is the pan and zoom state of the session.
	Viewport *viewport.Viewport

	// Filename is the file the document was loaded from or last saved
	// to. The autosave filename derives from it.
	Filename string

	mu        sync.Mutex
	dirty     bool
	observers []func(ch scene.Change)

	autosaveTicker *time.Ticker
	doneAutosave   chan bool
	watcher        *fsnotify.Watcher
	doneWatcher    chan bool
}

// NewEditor returns a new editing session on an empty document, with
// default settings.
func NewEditor() *Editor {
	ed := &Editor{}
	ed.Settings.Defaults()
	ed.init(scene.NewScene())
	return ed
}

// init wires the session components around the given document,
// preserving the viewport size and registered observers across loads.
func (ed *Editor) init(sc *scene.Scene) {
	size := math32.Vector2{}
	if ed.Viewport != nil {
		size = ed.Viewport.Size
	}
	ed.Scene = sc
	ed.History = history.New(sc)
	if ed.Settings.HistoryDepth > 0 {
		ed.History.MaxDepth = ed.Settings.HistoryDepth
	}
	ed.Selection = selection.New(sc)
	ed.Viewport = viewport.New()
	ed.Viewport.Size = size
	ed.dirty = false
	sc.OnChange(ed.sceneChanged)
	for _, fun := range ed.observers {
		sc.OnChange(fun)
	}
}

// sceneChanged is the session's own scene observer: it marks the
// document dirty for autosave and drops selected ids that the change
// removed.
func (ed *Editor) sceneChanged(ch scene.Change) {
	ed.dirty = true
	ed.Selection.PruneInvalid()
	ed.Selection.Invalidate()
}

// OnChange registers a function called after every committed document
// change. Unlike registering on [Editor.Scene] directly, registrations
// here survive [Editor.OpenFile] and [Editor.LoadSnapshot].
func (ed *Editor) OnChange(fun func(ch scene.Change)) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.observers = append(ed.observers, fun)
	ed.Scene.OnChange(fun)
}

// Close stops the session's background work (autosave ticker, file
// watcher). The session remains usable for synchronous calls.
func (ed *Editor) Close() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.stopAutosave()
	ed.unwatchFile()
}

//////// Transactions

// Begin opens a named transaction on the document; until [Editor.Commit]
// every applied command becomes part of one undoable step. See
// [history.History.Begin].
func (ed *Editor) Begin(name string) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Begin(name)
}

// Apply applies the given command inside the open transaction.
func (ed *Editor) Apply(c *history.Command) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Apply(c)
}

// Commit commits the open transaction as one undoable step.
func (ed *Editor) Commit() error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Commit()
}

// Abort rolls back and discards the open transaction.
func (ed *Editor) Abort() error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Abort()
}

// InTransaction reports whether a transaction is open.
func (ed *Editor) InTransaction() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.InTransaction()
}

// Undo reverses the most recent transaction, returning its name, or ""
// with nothing to undo. The selection drops any nodes the undo removed.
func (ed *Editor) Undo() (string, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Undo()
}

// Redo reapplies the most recently undone transaction, returning its
// name, or "" with nothing to redo.
func (ed *Editor) Redo() (string, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Redo()
}

// UndoName returns the name of the action [Editor.Undo] would reverse,
// or "" if there is none, for menu labels.
func (ed *Editor) UndoName() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.UndoName()
}

// RedoName returns the name of the action [Editor.Redo] would reapply,
// or "" if there is none, for menu labels.
func (ed *Editor) RedoName() string {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.RedoName()
}

// Transact runs the given function inside its own transaction when none
// is open, committing on success and aborting if it returns an error.
// If a transaction is already open the function joins it, which lets
// interactive gestures compose the one-shot operations below. The
// function runs without the editor lock held, so it can freely call the
// editor's operations.
func (ed *Editor) Transact(name string, fun func() error) error {
	ed.mu.Lock()
	if ed.History.InTransaction() {
		ed.mu.Unlock()
		return fun()
	}
	if err := ed.History.Begin(name); err != nil {
		ed.mu.Unlock()
		return err
	}
	ed.mu.Unlock()
	if err := fun(); err != nil {
		ed.mu.Lock()
		defer ed.mu.Unlock()
		errors.Log(ed.History.Abort())
		return err
	}
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.History.Commit()
}

// transact is [Editor.Transact] for internal use: the lock must be
// held, and fun must use the non-locking internals.
func (ed *Editor) transact(name string, fun func() error) error {
	if ed.History.InTransaction() {
		return fun()
	}
	if err := ed.History.Begin(name); err != nil {
		return err
	}
	if err := fun(); err != nil {
		errors.Log(ed.History.Abort())
		return err
	}
	return ed.History.Commit()
}

// applyNew applies a freshly constructed command, collapsing the
// construct-then-apply error handling of the one-shot operations.
func (ed *Editor) applyNew(c *history.Command, err error) error {
	if err != nil {
		return err
	}
	return ed.History.Apply(c)
}

//////// One-shot operations

// AddNode inserts the given childless node under the given parent at
// the given sibling index (negative appends; parent 0 inserts at the
// root level) as one undoable action, returning its assigned id.
func (ed *Editor) AddNode(n *scene.Node, parent scene.NodeID, index int) (scene.NodeID, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	err := ed.transact("add", func() error {
		return ed.applyNew(history.NewAdd(ed.Scene, []*scene.Node{n}, parent, index))
	})
	if err != nil {
		return 0, err
	}
	return n.ID, nil
}

// RemoveNodes removes the nodes with the given ids and their subtrees
// as one undoable action. Ids that are gone by the time they come up,
// for example inside the subtree of an earlier id, are skipped.
func (ed *Editor) RemoveNodes(ids ...scene.NodeID) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("remove", func() error {
		for _, id := range ids {
			if !ed.Scene.Has(id) {
				continue
			}
			if err := ed.applyNew(history.NewRemove(ed.Scene, id)); err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveBy translates the nodes with the given ids by the given offset,
// in their respective parent coordinates, as one undoable action.
func (ed *Editor) MoveBy(delta math32.Vector2, ids ...scene.NodeID) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("move", func() error {
		return ed.applyNew(history.NewMove(ed.Scene, delta, ids...))
	})
}

// Resize sets the size of the node with the given id as one undoable
// action.
func (ed *Editor) Resize(id scene.NodeID, size math32.Vector2) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("resize", func() error {
		return ed.applyNew(history.NewResize(ed.Scene, id, size))
	})
}

// Rotate sets the rotation of the node with the given id, in radians
// about its center, as one undoable action.
func (ed *Editor) Rotate(id scene.NodeID, rotation float32) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("rotate", func() error {
		return ed.applyNew(history.NewRotate(ed.Scene, id, rotation))
	})
}

// SetProperty sets the given property of the node with the given id as
// one undoable action. A nil value deletes the property.
func (ed *Editor) SetProperty(id scene.NodeID, key string, value any) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("set-property", func() error {
		return ed.applyNew(history.NewSetProperty(ed.Scene, id, key, value))
	})
}

// Reparent moves the node with the given id under a new parent at the
// given sibling index (negative appends; parent 0 moves it to the root
// level), preserving its position in the scene, as one undoable action.
func (ed *Editor) Reparent(id, parent scene.NodeID, index int) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("reparent", func() error {
		return ed.applyNew(history.NewReparent(ed.Scene, id, parent, index))
	})
}

// Restack moves the node with the given id to the given index within
// its sibling list, changing its z-order, as one undoable action.
func (ed *Editor) Restack(id scene.NodeID, index int) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.transact("restack", func() error {
		return ed.applyNew(history.NewRestack(ed.Scene, id, index))
	})
}

//////// Selection

// Select updates the selection with the given ids using the given mode.
func (ed *Editor) Select(mode selection.Modes, ids ...scene.NodeID) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.Selection.Select(mode, ids...)
}

// SelectedIDs returns the selected ids, in selection order.
func (ed *Editor) SelectedIDs() []scene.NodeID {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.Selection.IDs()
}

// SelectionBBox returns the scene-space bounding box of the selection;
// ok is false when nothing with extent is selected.
func (ed *Editor) SelectionBBox() (math32.Box2, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.Selection.BBox()
}

// ClearSelection empties the selection.
func (ed *Editor) ClearSelection() {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.Selection.Clear()
}

//////// Viewport

// SetViewportGeom sets the viewport scroll position and size in one
// call, for hosts tracking window geometry.
func (ed *Editor) SetViewportGeom(x, y, w, h float32) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.Viewport.SetGeom(x, y, w, h)
}

// SetZoom sets the zoom factor, clamped to the settings range.
// Non-positive and non-finite factors fail with
// [viewport.ErrInvalidZoom] and change nothing.
func (ed *Editor) SetZoom(zoom float32) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if err := viewport.CheckZoom(zoom); err != nil {
		return err
	}
	return ed.Viewport.SetZoom(ed.clampZoom(zoom))
}

// ZoomBy multiplies the zoom factor by the given multiplier, clamped to
// the settings range.
func (ed *Editor) ZoomBy(factor float32) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	nz := ed.Viewport.Zoom * factor
	if err := viewport.CheckZoom(nz); err != nil {
		return err
	}
	return ed.Viewport.SetZoom(ed.clampZoom(nz))
}

// ZoomAt multiplies the zoom factor by the given multiplier while
// keeping the scene point under the given viewport point stationary,
// clamped to the settings range.
func (ed *Editor) ZoomAt(p math32.Vector2, factor float32) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	nz := ed.Viewport.Zoom * factor
	if err := viewport.CheckZoom(nz); err != nil {
		return err
	}
	nz = ed.clampZoom(nz)
	return ed.Viewport.ZoomAt(p, nz/ed.Viewport.Zoom)
}

// clampZoom bounds a valid zoom factor to the settings range.
func (ed *Editor) clampZoom(zoom float32) float32 {
	return math32.Clamp(zoom, ed.Settings.ZoomMin, ed.Settings.ZoomMax)
}

// ScrollTo sets the scene point at the viewport origin.
func (ed *Editor) ScrollTo(p math32.Vector2) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.Viewport.SetScroll(p)
}

// ScrollBy shifts the scroll position by the given scene-space delta.
func (ed *Editor) ScrollBy(d math32.Vector2) {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	ed.Viewport.ScrollBy(d)
}

// SceneToViewport transforms a point from scene space to viewport
// space, for placing overlays.
func (ed *Editor) SceneToViewport(p math32.Vector2) math32.Vector2 {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.Viewport.SceneToViewport(p)
}

// ViewportToScene transforms a point from viewport space to scene
// space, for hit testing pointer events.
func (ed *Editor) ViewportToScene(p math32.Vector2) math32.Vector2 {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.Viewport.ViewportToScene(p)
}

//////// Persistence

// Snapshot returns a complete copy of the current document state; a
// pure read.
func (ed *Editor) Snapshot() *scene.Snapshot {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.Scene.Snapshot()
}

// LoadSnapshot replaces the document with the given snapshot. History
// and selection are cleared and the viewport pan and zoom are reset;
// on error the current document is untouched.
func (ed *Editor) LoadSnapshot(sn *scene.Snapshot) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	sc := scene.NewScene()
	if err := sc.Restore(sn); err != nil {
		return err
	}
	ed.init(sc)
	return nil
}

// SaveFile saves the document to the given JSON file, records it as the
// session file, clears the dirty state, and deletes any autosave file.
func (ed *Editor) SaveFile(filename string) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	if err := ed.Scene.SaveJSON(filename); err != nil {
		return err
	}
	ed.Filename = filename
	ed.dirty = false
	ed.autosaveDelete()
	return nil
}

// OpenFile loads the document from the given JSON file. History and
// selection are cleared and the viewport pan and zoom are reset; on
// error the current document is untouched.
func (ed *Editor) OpenFile(filename string) error {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	sc := scene.NewScene()
	if err := sc.OpenJSON(filename); err != nil {
		return err
	}
	ed.init(sc)
	ed.Filename = filename
	return nil
}

// Dirty reports whether the document has changes not yet written by
// [Editor.SaveFile] or autosave.
func (ed *Editor) Dirty() bool {
	ed.mu.Lock()
	defer ed.mu.Unlock()
	return ed.dirty
}
