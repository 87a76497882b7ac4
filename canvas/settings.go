// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"time"

	"cogentcore.org/canvas/history"
	"cogentcore.org/core/base/iox/tomlx"
)

// Settings are the tunable parameters of an editing session. Set them
// on the [Editor] before loading documents; they are loaded from and
// saved to TOML files.
type Settings struct {

	// ZoomMin is the lowest zoom factor the session allows.
	ZoomMin float32 `default:"0.01"`

	// ZoomMax is the highest zoom factor the session allows.
	ZoomMax float32 `default:"64"`

	// AutosaveInterval is the time between autosave checks.
	AutosaveInterval time.Duration `default:"30s"`

	// HistoryDepth is the maximum number of transactions kept on the
	// undo stack; 0 uses [history.DefaultMaxDepth].
	HistoryDepth int `default:"500"`
}

// Defaults sets standard settings values.
func (st *Settings) Defaults() {
	st.ZoomMin = 0.01
	st.ZoomMax = 64
	st.AutosaveInterval = 30 * time.Second
	st.HistoryDepth = history.DefaultMaxDepth
}

// Open loads the settings from the given TOML file.
func (st *Settings) Open(filename string) error {
	return tomlx.Open(st, filename)
}

// Save saves the settings to the given TOML file.
func (st *Settings) Save(filename string) error {
	return tomlx.Save(st, filename)
}
