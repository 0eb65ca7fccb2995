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

package config

import (
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyResolveAbsoluteUnchanged verifies absolute paths are used
// as given.
func TestPropertyResolveAbsoluteUnchanged(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		dataDir := "/" + rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8}){0,2}`).Draw(t, "dataDir")
		path := "/" + rapid.StringMatching(`[a-z0-9_]{1,8}(/[a-z0-9_.]{1,8}){0,3}`).Draw(t, "path")

		got := resolve(dataDir, path, DbFile)
		if got != path {
			t.Fatalf("resolve(%q, %q) = %q, want unchanged", dataDir, path, got)
		}
	})
}

// TestPropertyResolveRelativeInsideDataDir verifies relative and empty
// paths always land under the data dir.
func TestPropertyResolveRelativeInsideDataDir(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		dataDir := "/" + rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8}){0,2}`).Draw(t, "dataDir")
		path := rapid.StringMatching(`([a-z0-9_]{1,8}(/[a-z0-9_]{1,8}){0,3})?`).Draw(t, "path")

		got := resolve(dataDir, path, LibraryDir)
		if !strings.HasPrefix(got, dataDir+string(filepath.Separator)) {
			t.Fatalf("resolve(%q, %q) = %q, not inside data dir", dataDir, path, got)
		}
		if path == "" && got != filepath.Join(dataDir, LibraryDir) {
			t.Fatalf("empty path should fall back to %s, got %q", LibraryDir, got)
		}
	})
}
