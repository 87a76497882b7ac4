// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package history implements the undoable command system of the vector
// editor. Every document edit is a [Command]; commands are grouped into
// named [Transaction]s, which are the atomic unit of undo and redo, so
// that a multi-step gesture (drag, group, paste) reverses in one step.
// The [History] owns the undo and redo stacks and enforces that edits
// happen only inside an open transaction.
package history

import (
	"fmt"
	"slices"

	"cogentcore.org/canvas/scene"
	"cogentcore.org/core/base/errors"
)

var (
	// ErrTransactionOpen indicates a call that requires no open
	// transaction (Begin, Undo, Redo) while one is open.
	ErrTransactionOpen = errors.New("history: transaction already open")

	// ErrNoTransaction indicates a call that requires an open
	// transaction (Apply, Commit, Abort) while there is none.
	ErrNoTransaction = errors.New("history: no open transaction")
)

// DefaultMaxDepth is the default limit on the number of transactions
// kept on the undo stack.
const DefaultMaxDepth = 500

// Transaction is an ordered group of commands applied and undone as a
// unit, with a user-visible name ("move", "group", ...).
type Transaction struct {

	// Name is the user-visible name of the transaction, used for undo
	// and redo labels.
	Name string

	// Commands are the applied commands, in application order.
	Commands []*Command
}

// Targets returns the ids of all nodes the transaction touched,
// without duplicates, in first-touched order.
func (tx *Transaction) Targets() []scene.NodeID {
	var ids []scene.NodeID
	seen := map[scene.NodeID]bool{}
	for _, c := range tx.Commands {
		for _, id := range c.Targets() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// History is the command manager for one [scene.Scene]: it runs
// commands inside transactions and keeps the undo and redo stacks.
// It is not safe for concurrent use; sessions synchronize around it.
type History struct {

	// Scene is the document all commands operate on.
	Scene *scene.Scene

	// MaxDepth is the maximum number of transactions kept on the undo
	// stack; beyond it the oldest are dropped. Zero or negative means
	// unlimited.
	MaxDepth int

	undos []*Transaction
	redos []*Transaction
	open  *Transaction
}

// New returns a new command manager for the given scene.
func New(sc *scene.Scene) *History {
	return &History{Scene: sc, MaxDepth: DefaultMaxDepth}
}

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool {
	return h.open != nil
}

// Begin opens a transaction with the given user-visible name. It fails
// with [ErrTransactionOpen] if one is already open; transactions do
// not nest.
func (h *History) Begin(name string) error {
	if h.open != nil {
		return fmt.Errorf("%w: %q", ErrTransactionOpen, h.open.Name)
	}
	h.open = &Transaction{Name: name}
	return nil
}

// Apply applies the given command to the scene and records it in the
// open transaction. It fails with [ErrNoTransaction] if no transaction
// is open. If the command itself fails it is not recorded, the scene is
// unchanged, and the transaction stays open.
func (h *History) Apply(c *Command) error {
	if h.open == nil {
		return ErrNoTransaction
	}
	if err := c.Apply(h.Scene); err != nil {
		return err
	}
	h.open.Commands = append(h.open.Commands, c)
	return nil
}

// Commit closes the open transaction, pushes it onto the undo stack,
// clears the redo stack, and notifies scene observers. A transaction
// with no commands is discarded with no effect. It fails with
// [ErrNoTransaction] if no transaction is open.
func (h *History) Commit() error {
	if h.open == nil {
		return ErrNoTransaction
	}
	tx := h.open
	h.open = nil
	if len(tx.Commands) == 0 {
		return nil
	}
	h.undos = append(h.undos, tx)
	if h.MaxDepth > 0 && len(h.undos) > h.MaxDepth {
		h.undos = slices.Delete(h.undos, 0, len(h.undos)-h.MaxDepth)
	}
	h.redos = nil
	h.Scene.SendChange(scene.Change{Action: tx.Name, IDs: tx.Targets()})
	return nil
}

// Abort closes the open transaction and reverses the commands it
// already applied, in reverse order, leaving the scene as it was at
// Begin. The transaction is discarded, not recorded. It fails with
// [ErrNoTransaction] if no transaction is open.
func (h *History) Abort() error {
	if h.open == nil {
		return ErrNoTransaction
	}
	tx := h.open
	h.open = nil
	if len(tx.Commands) == 0 {
		return nil
	}
	var errs []error
	for i := len(tx.Commands) - 1; i >= 0; i-- {
		errs = append(errs, tx.Commands[i].Undo(h.Scene))
	}
	h.Scene.SendChange(scene.Change{Action: tx.Name, Undo: true, IDs: tx.Targets()})
	return errors.Join(errs...)
}

// Undo reverses the most recent committed transaction and moves it to
// the redo stack, returning its name. With nothing to undo it does
// nothing and returns "". It fails with [ErrTransactionOpen] while a
// transaction is open.
func (h *History) Undo() (string, error) {
	if h.open != nil {
		return "", fmt.Errorf("%w: %q", ErrTransactionOpen, h.open.Name)
	}
	if len(h.undos) == 0 {
		return "", nil
	}
	tx := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]
	for i := len(tx.Commands) - 1; i >= 0; i-- {
		if err := tx.Commands[i].Undo(h.Scene); err != nil {
			return tx.Name, err
		}
	}
	h.redos = append(h.redos, tx)
	h.Scene.SendChange(scene.Change{Action: tx.Name, Undo: true, IDs: tx.Targets()})
	return tx.Name, nil
}

// Redo reapplies the most recently undone transaction and moves it back
// to the undo stack, returning its name. With nothing to redo it does
// nothing and returns "". It fails with [ErrTransactionOpen] while a
// transaction is open.
func (h *History) Redo() (string, error) {
	if h.open != nil {
		return "", fmt.Errorf("%w: %q", ErrTransactionOpen, h.open.Name)
	}
	if len(h.redos) == 0 {
		return "", nil
	}
	tx := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	for _, c := range tx.Commands {
		if err := c.Apply(h.Scene); err != nil {
			return tx.Name, err
		}
	}
	h.undos = append(h.undos, tx)
	h.Scene.SendChange(scene.Change{Action: tx.Name, IDs: tx.Targets()})
	return tx.Name, nil
}

// UndoAvailable reports whether there is a transaction to undo.
func (h *History) UndoAvailable() bool {
	return len(h.undos) > 0
}

// RedoAvailable reports whether there is a transaction to redo.
func (h *History) RedoAvailable() bool {
	return len(h.redos) > 0
}

// UndoName returns the name of the transaction [History.Undo] would
// reverse, or "" if there is none.
func (h *History) UndoName() string {
	if len(h.undos) == 0 {
		return ""
	}
	return h.undos[len(h.undos)-1].Name
}

// RedoName returns the name of the transaction [History.Redo] would
// reapply, or "" if there is none.
func (h *History) RedoName() string {
	if len(h.redos) == 0 {
		return ""
	}
	return h.redos[len(h.redos)-1].Name
}

// Reset drops all undo and redo state, including any open transaction,
// without touching the scene. It is for wholesale document replacement
// (open, revert); commands from a dropped transaction are not rolled
// back.
func (h *History) Reset() {
	h.undos = nil
	h.redos = nil
	h.open = nil
}
