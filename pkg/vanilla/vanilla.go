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

// Package vanilla copies the game's stock costume files from a build
// directory into the asset tree, one folder per character and costume.
package vanilla

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrMissingDir is returned when the build or asset directory doesn't exist.
var ErrMissingDir = errors.New("directory not found")

// costumeRe matches "Pl<Char><Costume>.dat", e.g. "PlFxGr.dat".
var costumeRe = regexp.MustCompile(`^Pl([A-Z][a-z])([A-Z][a-z])\.dat$`)

// Copy is one file copied into the asset tree.
type Copy struct {
	File      string `json:"file"`
	Character string `json:"character"`
	Costume   string `json:"costume"`
	Dest      string `json:"dest"`
}

// Report summarises a Prepare run. Errors holds files that were skipped
// because their character code is unknown.
type Report struct {
	Copied  []Copy   `json:"copied"`
	Errors  []string `json:"errors,omitempty"`
	Skipped int      `json:"skipped"`
}

// Costume is a parsed costume file name.
type Costume struct {
	CharCode    string
	CostumeCode string
}

// Folder returns the per-costume folder name, e.g. "PlFxGr".
func (c Costume) Folder() string {
	return "Pl" + c.CharCode + c.CostumeCode
}

// ParseCostumeFile parses a costume file name. Animation files (containing
// "AJ") and names not in the "Pl<Char><Costume>.dat" form are rejected.
func ParseCostumeFile(filename string) (Costume, bool) {
	if strings.Contains(filename, "AJ") {
		return Costume{}, false
	}
	m := costumeRe.FindStringSubmatch(filename)
	if m == nil {
		return Costume{}, false
	}
	return Costume{CharCode: m[1], CostumeCode: m[2]}, true
}

type Copier struct {
	fs afero.Fs
}

// NewCopier returns a Copier backed by fs. A nil fs uses the OS filesystem.
func NewCopier(fs afero.Fs) *Copier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Copier{fs: fs}
}

func (c *Copier) requireDir(path string) error {
	ok, err := afero.DirExists(c.fs, path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingDir, path)
	}
	return nil
}

// Prepare copies every costume file in buildDir to
// assetDir/<Character>/Pl<Char><Costume>/<file>. Files already present at
// the destination are left alone and counted as skipped.
func (c *Copier) Prepare(buildDir, assetDir string) (*Report, error) {
	if err := c.requireDir(buildDir); err != nil {
		return nil, err
	}
	if err := c.requireDir(assetDir); err != nil {
		return nil, err
	}

	matches, err := afero.Glob(c.fs, filepath.Join(buildDir, "Pl*.dat"))
	if err != nil {
		return nil, fmt.Errorf("failed to list build files: %w", err)
	}

	report := &Report{Copied: make([]Copy, 0)}
	for _, src := range matches {
		filename := filepath.Base(src)
		if isDir, _ := afero.IsDir(c.fs, src); isDir {
			continue
		}

		costume, ok := ParseCostumeFile(filename)
		if !ok {
			continue
		}

		charName, ok := CharacterName(costume.CharCode)
		if !ok {
			msg := fmt.Sprintf("Unknown character code: %s (%s)", costume.CharCode, filename)
			log.Warn().Msg(msg)
			report.Errors = append(report.Errors, msg)
			continue
		}

		destDir := filepath.Join(assetDir, charName, costume.Folder())
		dest := filepath.Join(destDir, filename)

		if err := c.fs.MkdirAll(destDir, 0o750); err != nil {
			return report, fmt.Errorf("failed to create %s: %w", destDir, err)
		}

		exists, err := afero.Exists(c.fs, dest)
		if err != nil {
			return report, fmt.Errorf("failed to stat %s: %w", dest, err)
		}
		if exists {
			report.Skipped++
			continue
		}

		if err := c.copyFile(src, dest); err != nil {
			return report, err
		}
		log.Info().Msgf("copied: %s -> %s/%s/", filename, charName, costume.Folder())
		report.Copied = append(report.Copied, Copy{
			File:      filename,
			Character: charName,
			Costume:   costume.Folder(),
			Dest:      dest,
		})
	}

	return report, nil
}

// copyFile copies src to dest and carries over the modification time.
func (c *Copier) copyFile(src, dest string) error {
	in, err := c.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer func(in afero.File) {
		if closeErr := in.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("file", src).Msg("failed to close source file")
		}
	}(in)

	stat, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file %s: %w", src, err)
	}

	out, err := c.fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}

	if err := c.fs.Chtimes(dest, stat.ModTime(), stat.ModTime()); err != nil {
		log.Warn().Err(err).Str("file", dest).Msg("failed to preserve modification time")
	}
	return nil
}
