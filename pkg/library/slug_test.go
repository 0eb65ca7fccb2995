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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "Cool Battlefield", expected: "cool_battlefield"},
		{input: "Pokémon Stadium (HD) v2", expected: "pokemon_stadium_hd_v2"},
		{input: "Yoshi's Story", expected: "yoshis_story"},
		{input: "FD & Friends", expected: "fd_and_friends"},
		{input: "  --Dreamland--  ", expected: "dreamland"},
		{input: "ＦＯＤ", expected: "fod"},
		{input: "GrNBa_final", expected: "grnba_final"},
		{input: "!!!", expected: DefaultSlug},
		{input: "", expected: DefaultSlug},
		{input: "ステージ", expected: DefaultSlug},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Cool Battlefield", "Pokémon Stadium (HD) v2", "a__b"} {
		once := Slugify(s)
		assert.Equal(t, once, Slugify(once), s)
	}
}
