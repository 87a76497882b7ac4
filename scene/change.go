// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Change describes one committed document mutation, delivered to
// observers after the transaction that made it is committed, undone,
// redone, or aborted, never in the middle of one.
type Change struct {

	// Action is the user-visible name of the transaction.
	Action string

	// Undo is true when the change is the result of undoing a
	// transaction rather than applying one.
	Undo bool

	// IDs are the ids of the nodes the transaction touched. Some may
	// no longer be in the scene (removals).
	IDs []NodeID
}

// OnChange registers a function to be called after every committed
// change to the document. Observers are called synchronously in
// registration order and must not mutate the document.
func (sc *Scene) OnChange(fun func(ch Change)) {
	sc.observers = append(sc.observers, fun)
}

// SendChange notifies all registered observers of the given change.
// It is called by the command manager after commit, undo, redo, and
// abort; scene primitives never send changes themselves.
func (sc *Scene) SendChange(ch Change) {
	for _, fun := range sc.observers {
		fun(ch)
	}
}
