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

package library

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultSlug is used when a name has no usable characters.
const DefaultSlug = "mod"

var nonAlphanumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns an archive name into a folder name in the same style as
// the stage folders, e.g. "Pokémon Stadium (HD) v2" becomes
// "pokemon_stadium_hd_v2". Fullwidth characters are folded and diacritics
// are dropped. The result is never empty.
func Slugify(name string) string {
	t := transform.Chain(
		width.Fold,
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if folded, _, err := transform.String(t, name); err == nil {
		name = folded
	}

	name = strings.ReplaceAll(name, "&", " and ")
	name = strings.ReplaceAll(name, "'", "")
	slug := nonAlphanumRegex.ReplaceAllString(strings.ToLower(name), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return DefaultSlug
	}
	return slug
}
