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
	"archive/zip"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// ZipEntry is one member of a test archive. Names ending in a slash are
// written as directory entries.
type ZipEntry struct {
	Name string
	Data []byte
}

// Entry is shorthand for a ZipEntry with string content.
func Entry(name, data string) ZipEntry {
	return ZipEntry{Name: name, Data: []byte(data)}
}

// WriteZip writes a zip archive with the given members, in order.
func (h *FSHelper) WriteZip(path string, entries ...ZipEntry) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for zip %s: %w", path, err)
	}

	f, err := h.Fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create zip %s: %w", path, err)
	}

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.Name)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to add %s to zip: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s to zip: %w", e.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finish zip %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close zip %s: %w", path, err)
	}
	return nil
}

// CreateDirectoryStructure creates a directory structure for testing. String
// and byte values are files, maps are directories and nil is an empty
// directory.
func (h *FSHelper) CreateDirectoryStructure(structure map[string]any) error {
	return h.createStructureRecursive("", structure)
}

func (h *FSHelper) createStructureRecursive(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.createStructureRecursive(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// FileExists checks if a file exists
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// ReadFile reads a file and returns its content
func (h *FSHelper) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes content to a file, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// ListFiles lists the names in a directory, sorted.
func (h *FSHelper) ListFiles(path string) ([]string, error) {
	files, err := afero.ReadDir(h.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	fileNames := make([]string, len(files))
	for i, file := range files {
		fileNames[i] = file.Name()
	}
	sort.Strings(fileNames)

	return fileNames, nil
}
