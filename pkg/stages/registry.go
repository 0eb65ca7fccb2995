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

// Package stages detects which Melee stage a mod archive replaces and
// extracts the stage file and its preview image.
package stages

import "strings"

// Stage file codes as they appear in the game's file system.
const (
	Battlefield      = "GrNBa"
	FinalDestination = "GrNLa"
	YoshisStory      = "GrSt"
	Dreamland        = "GrOp"
	PokemonStadium   = "GrPs"
	FountainOfDreams = "GrIz"
)

const (
	ExtDat = ".dat"
	ExtUsd = ".usd"
)

// Descriptor describes a known stage.
type Descriptor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Folder string `json:"folder"`
}

// registry is in match order. Detection tries codes in this order, so it
// must not be reordered.
var registry = [...]Descriptor{
	{ID: Battlefield, Name: "Battlefield", Folder: "battlefield"},
	{ID: FinalDestination, Name: "Final Destination", Folder: "final_destination"},
	{ID: YoshisStory, Name: "Yoshi's Story", Folder: "yoshis_story"},
	{ID: Dreamland, Name: "Dreamland", Folder: "dreamland"},
	{ID: PokemonStadium, Name: "Pokemon Stadium", Folder: "pokemon_stadium"},
	{ID: FountainOfDreams, Name: "Fountain of Dreams", Folder: "fountain_of_dreams"},
}

// IDs returns every stage code in registry order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for _, d := range registry {
		ids = append(ids, d.ID)
	}
	return ids
}

// All returns a copy of every descriptor in registry order.
func All() []Descriptor {
	all := make([]Descriptor, len(registry))
	copy(all, registry[:])
	return all
}

// Lookup returns the descriptor for a stage code.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range registry {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IDFromDisplayName returns the stage code for a display name such as
// "Battlefield". Comparison ignores case.
func IDFromDisplayName(name string) (string, bool) {
	for _, d := range registry {
		if strings.EqualFold(d.Name, name) {
			return d.ID, true
		}
	}
	return "", false
}

// AcceptsExtension reports whether a stage file with the given lower case
// extension is valid for the stage code. Only Pokemon Stadium ships as .usd.
func AcceptsExtension(id, ext string) bool {
	switch ext {
	case ExtDat:
		return true
	case ExtUsd:
		return id == PokemonStadium
	default:
		return false
	}
}

// matchID returns the first stage code, in registry order, contained in the
// upper cased file name.
func matchID(filename string) (Descriptor, bool) {
	upper := strings.ToUpper(filename)
	for _, d := range registry {
		if strings.Contains(upper, strings.ToUpper(d.ID)) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// LooksLikeStageFile is a cheap filter for file names: it needs a .dat or
// .usd extension and any known stage code in the name. It does not apply
// the per-stage extension rule, so "GrNBa.usd" passes here but is never
// detected.
func LooksLikeStageFile(filename string) bool {
	_, ext := splitExt(filename)
	ext = strings.ToLower(ext)
	if ext != ExtDat && ext != ExtUsd {
		return false
	}
	_, ok := matchID(filename)
	return ok
}
