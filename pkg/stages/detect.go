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
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Detection is the result of scanning one archive.
type Detection struct {
	StageID    string `json:"stageId"`
	StageName  string `json:"stageName"`
	Folder     string `json:"folder"`
	StageFile  string `json:"stageFile"`
	Screenshot string `json:"screenshot,omitempty"`
	Extension  string `json:"extension"`
}

// HasScreenshot reports whether a preview image was found.
func (d *Detection) HasScreenshot() bool {
	return d.Screenshot != ""
}

// Detector reads mod archives from a filesystem.
type Detector struct {
	fs afero.Fs
}

// NewDetector returns a Detector backed by fs. A nil fs uses the OS
// filesystem.
func NewDetector(fs afero.Fs) *Detector {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Detector{fs: fs}
}

// archive is an open zip and the file backing it.
type archive struct {
	file afero.File
	zip  *zip.Reader
}

func (a *archive) close() {
	if err := a.file.Close(); err != nil {
		log.Warn().Err(err).Msg("close archive failed")
	}
}

func (d *Detector) open(path string) (*archive, error) {
	f, err := d.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrArchiveUnreadable, path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrArchiveUnreadable, path, err)
	}

	zr, err := zip.NewReader(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: failed to read zip %s: %w", ErrArchiveUnreadable, path, err)
	}

	return &archive{file: f, zip: zr}, nil
}

// Members returns every member name in the archive, in archive order.
func (d *Detector) Members(path string) ([]string, error) {
	a, err := d.open(path)
	if err != nil {
		return nil, err
	}
	defer a.close()

	return memberNames(a.zip), nil
}

func memberNames(zr *zip.Reader) []string {
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Detect scans the archive at path for a stage file. It returns nil with
// no error when the archive was read but holds no stage.
func (d *Detector) Detect(path string) (*Detection, error) {
	members, err := d.Members(path)
	if err != nil {
		return nil, err
	}

	det := Match(members)
	if det == nil {
		log.Debug().Str("archive", path).Int("members", len(members)).Msg("no stage found")
		return nil, nil //nolint:nilnil // no stage is a normal result
	}

	log.Debug().
		Str("archive", path).
		Str("stage", det.StageID).
		Str("file", det.StageFile).
		Str("screenshot", det.Screenshot).
		Msg("detected stage")
	return det, nil
}

// Match finds the stage file in a list of member names. The first member
// whose name contains a stage code with a valid extension for that code
// wins. Codes are tried in registry order, and a member that fails the
// extension check for one code is still tried against the rest.
func Match(members []string) *Detection {
	for _, name := range members {
		base := memberBase(name)
		upper := strings.ToUpper(base)
		_, ext := splitExt(base)
		ext = strings.ToLower(ext)

		for _, desc := range registry {
			if !strings.Contains(upper, strings.ToUpper(desc.ID)) {
				continue
			}
			if !AcceptsExtension(desc.ID, ext) {
				log.Debug().
					Str("member", name).
					Str("stage", desc.ID).
					Str("ext", ext).
					Msg("skipping stage candidate with invalid extension")
				continue
			}

			det := &Detection{
				StageID:   desc.ID,
				StageName: desc.Name,
				Folder:    desc.Folder,
				StageFile: name,
				Extension: ext,
			}
			if shot, ok := FindScreenshot(members); ok {
				det.Screenshot = shot
			}
			return det
		}
	}
	return nil
}
