// Zaparoo Stages
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Stages.
//
// Zaparoo Stages is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Stages is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Stages.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsZip(t *testing.T) {
	t.Parallel()

	assert.True(t, IsZip("/mods/stage.zip"))
	assert.True(t, IsZip("STAGE.ZIP"))
	assert.False(t, IsZip("stage.zip.bak"))
	assert.False(t, IsZip("stage.7z"))
}

func TestGetMd5Hash(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/hello.txt", []byte("hello"), 0o644))

	hash, err := GetMd5Hash(fs, "/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", hash)

	_, err = GetMd5Hash(fs, "/missing.txt")
	require.Error(t, err)
}

func TestArchiveName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cool Battlefield", ArchiveName(filepath.Join("/mods", "Cool Battlefield.zip")))
	assert.Equal(t, "fd.v2", ArchiveName("fd.v2.zip"))
	assert.Equal(t, "noext", ArchiveName("noext"))
}

func TestDefaultAppDirs(t *testing.T) {
	t.Parallel()

	dirs := DefaultAppDirs()
	assert.Equal(t, "zaparoo-stages", filepath.Base(dirs.ConfigDir))
	assert.Equal(t, "zaparoo-stages", filepath.Base(dirs.DataDir))
	assert.Equal(t, "zaparoo-stages", filepath.Base(dirs.TempDir))
}
