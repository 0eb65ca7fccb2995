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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDs_Order(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"GrNBa", "GrNLa", "GrSt", "GrOp", "GrPs", "GrIz"}, IDs())
}

func TestAll_ReturnsCopy(t *testing.T) {
	t.Parallel()

	all := All()
	require.Len(t, all, 6)
	all[0].Name = "changed"

	d, ok := Lookup(Battlefield)
	require.True(t, ok)
	assert.Equal(t, "Battlefield", d.Name)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id     string
		name   string
		folder string
	}{
		{id: "GrNBa", name: "Battlefield", folder: "battlefield"},
		{id: "GrNLa", name: "Final Destination", folder: "final_destination"},
		{id: "GrSt", name: "Yoshi's Story", folder: "yoshis_story"},
		{id: "GrOp", name: "Dreamland", folder: "dreamland"},
		{id: "GrPs", name: "Pokemon Stadium", folder: "pokemon_stadium"},
		{id: "GrIz", name: "Fountain of Dreams", folder: "fountain_of_dreams"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			d, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.id, d.ID)
			assert.Equal(t, tt.name, d.Name)
			assert.Equal(t, tt.folder, d.Folder)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, ok := Lookup("GrXx")
	assert.False(t, ok)

	// codes are case sensitive
	_, ok = Lookup("grnba")
	assert.False(t, ok)
}

func TestIDFromDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "Battlefield", want: "GrNBa", wantOK: true},
		{name: "battlefield", want: "GrNBa", wantOK: true},
		{name: "FINAL DESTINATION", want: "GrNLa", wantOK: true},
		{name: "yoshi's story", want: "GrSt", wantOK: true},
		{name: "Pokemon Stadium", want: "GrPs", wantOK: true},
		{name: "fountain of dreams", want: "GrIz", wantOK: true},
		{name: "Yoshis Story", wantOK: false},
		{name: "Battlefield ", wantOK: false},
		{name: "", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := IDFromDisplayName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAcceptsExtension(t *testing.T) {
	t.Parallel()

	for _, id := range IDs() {
		assert.True(t, AcceptsExtension(id, ".dat"), id)
		assert.False(t, AcceptsExtension(id, ".png"), id)
		assert.False(t, AcceptsExtension(id, ""), id)
		assert.Equal(t, id == PokemonStadium, AcceptsExtension(id, ".usd"), id)
	}
}

func TestLooksLikeStageFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     bool
	}{
		{filename: "GrPs.usd", want: true},
		{filename: "GrPs.png", want: false},
		{filename: "random.dat", want: false},
		{filename: "GrNBa.dat", want: true},
		{filename: "grnba.DAT", want: true},
		{filename: "MyCoolGrIzMod.dat", want: true},
		// looser than detection, .usd is accepted for any code
		{filename: "GrNBa.usd", want: true},
		{filename: "GrNBa", want: false},
		{filename: "GrOp.dat.zip", want: false},
		// a leading dot base name has no extension
		{filename: "GrPs/.usd", want: false},
		{filename: ".GrPs.dat", want: true},
		{filename: "mods/GrPs.usd", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LooksLikeStageFile(tt.filename))
		})
	}
}
