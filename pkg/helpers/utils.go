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
	"crypto/md5" //nolint:gosec // Used to identify archives, not for security
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// IsZip reports whether a path has a .zip extension.
func IsZip(filePath string) bool {
	return filepath.Ext(strings.ToLower(filePath)) == ".zip"
}

// GetMd5Hash returns the hex MD5 of a file.
func GetMd5Hash(fs afero.Fs, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for MD5 hash: %w", err)
	}
	defer func(file afero.File) {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Msg("close file failed")
		}
	}(file)

	//nolint:gosec // Used to identify archives, not for security
	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to read file for MD5 hash: %w", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
