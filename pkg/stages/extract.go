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

package stages

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Extracted holds the paths written by Extract. ScreenshotPath is empty
// when the detection had no screenshot.
type Extracted struct {
	StagePath      string `json:"stagePath"`
	ScreenshotPath string `json:"screenshotPath,omitempty"`
}

// ScreenshotFilename returns the name a screenshot member is saved as: the
// fixed base name with the member's original extension.
func ScreenshotFilename(member string) string {
	_, ext := splitExt(member)
	return ScreenshotName + ext
}

// Extract writes the stage file and screenshot from det into outDir. The
// stage file keeps its original base name. Existing files are overwritten.
func (d *Detector) Extract(path string, det *Detection, outDir string) (*Extracted, error) {
	if det == nil {
		return nil, errors.New("nil detection")
	}

	err := d.fs.MkdirAll(outDir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create output dir: %w", ErrExtraction, err)
	}

	a, err := d.open(path)
	if err != nil {
		return nil, err
	}
	defer a.close()

	res := &Extracted{
		StagePath: filepath.Join(outDir, memberBase(det.StageFile)),
	}
	err = d.extractMember(a.zip, det.StageFile, res.StagePath)
	if err != nil {
		return nil, err
	}

	if det.HasScreenshot() {
		res.ScreenshotPath = filepath.Join(outDir, ScreenshotFilename(det.Screenshot))
		err = d.extractMember(a.zip, det.Screenshot, res.ScreenshotPath)
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("archive", path).
		Str("stage", det.StageID).
		Str("dest", outDir).
		Msg("extracted stage")
	return res, nil
}

func findMember(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (d *Detector) extractMember(zr *zip.Reader, name, dest string) error {
	zf := findMember(zr, name)
	if zf == nil {
		return fmt.Errorf("%w: %w: %s", ErrExtraction, ErrMemberNotFound, name)
	}

	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("%w: failed to open %s in archive: %w", ErrExtraction, name, err)
	}
	defer func(rc io.ReadCloser) {
		if closeErr := rc.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("close archive member failed")
		}
	}(rc)

	out, err := d.fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrExtraction, dest, err)
	}

	_, err = io.Copy(out, rc)
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: failed to write %s: %w", ErrExtraction, dest, err)
	}

	err = out.Close()
	if err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrExtraction, dest, err)
	}
	return nil
}
