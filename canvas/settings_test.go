// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/canvas/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	se := &Settings{}
	se.Defaults()
	assert.Equal(t, float32(0.01), se.ZoomMin)
	assert.Equal(t, float32(64), se.ZoomMax)
	assert.Equal(t, 30*time.Second, se.AutosaveInterval)
	assert.Equal(t, history.DefaultMaxDepth, se.HistoryDepth)
}

func TestSettingsSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.toml")
	se := &Settings{}
	se.Defaults()
	se.ZoomMax = 32
	se.AutosaveInterval = time.Minute
	se.HistoryDepth = 100
	require.NoError(t, se.Save(fn))

	got := &Settings{}
	require.NoError(t, got.Open(fn))
	assert.Equal(t, se, got)
}
