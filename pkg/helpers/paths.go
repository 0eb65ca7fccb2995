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
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-stages/pkg/config"
	"github.com/adrg/xdg"
)

// AppDirs are the per-user directories the app reads and writes.
type AppDirs struct {
	ConfigDir string
	DataDir   string
	TempDir   string
}

// DefaultAppDirs returns the XDG based directories for the app.
func DefaultAppDirs() AppDirs {
	return AppDirs{
		ConfigDir: filepath.Join(xdg.ConfigHome, config.AppName),
		DataDir:   filepath.Join(xdg.DataHome, config.AppName),
		TempDir:   filepath.Join(os.TempDir(), config.AppName),
	}
}

// ArchiveName returns the file name of an archive path without its
// extension, e.g. "Cool Battlefield" for "/mods/Cool Battlefield.zip".
func ArchiveName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
