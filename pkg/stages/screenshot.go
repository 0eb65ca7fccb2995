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

import "strings"

// ScreenshotName is the base name extracted screenshots are saved under.
const ScreenshotName = "screenshot"

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".bmp":  {},
}

var priorityNames = map[string]struct{}{
	"screenshot": {},
	"preview":    {},
	"stage":      {},
	"icon":       {},
	"banner":     {},
}

// IsImage reports whether a member name has a supported image extension.
func IsImage(name string) bool {
	_, ext := splitExt(name)
	_, ok := imageExtensions[strings.ToLower(ext)]
	return ok
}

// FindScreenshot picks the preview image from a list of archive members.
// An image named like "preview.png" or "Icon.JPG" wins over any other
// image, otherwise the first image is used. Ties go to the member that
// comes first in the archive.
func FindScreenshot(members []string) (string, bool) {
	for _, name := range members {
		stem, ext := splitExt(strings.ToLower(memberBase(name)))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		if _, ok := priorityNames[stem]; ok {
			return name, true
		}
	}

	for _, name := range members {
		if IsImage(name) {
			return name, true
		}
	}

	return "", false
}
