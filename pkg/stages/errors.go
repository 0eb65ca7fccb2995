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

import "errors"

var (
	// ErrArchiveUnreadable is returned when an archive can't be opened or
	// its directory can't be read.
	ErrArchiveUnreadable = errors.New("archive unreadable")
	// ErrExtraction is returned when a detected member can't be read from
	// the archive or written to disk. Files written before the failure are
	// left in place.
	ErrExtraction = errors.New("extraction failed")
	// ErrMemberNotFound is returned when a detection refers to a member the
	// archive doesn't contain.
	ErrMemberNotFound = errors.New("member not found in archive")
)
