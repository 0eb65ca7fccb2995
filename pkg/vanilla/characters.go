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

package vanilla

// characterNames maps the two letter code in "Pl<Code><Costume>.dat" to
// the folder name used in the asset tree.
var characterNames = map[string]string{
	// original cast
	"Ca": "C. Falcon",
	"Fc": "Falco",
	"Fx": "Fox",
	"Ms": "Marth",
	"Fe": "Roy",
	"Kp": "Bowser",
	"Dk": "DK",
	"Gn": "Ganondorf",
	"Pr": "Jigglypuff",
	"Kb": "Kirby",
	"Lk": "Link",
	"Lg": "Luigi",
	"Mr": "Mario",
	"Mt": "Mewtwo",
	"Ns": "Ness",
	"Pe": "Peach",
	"Pc": "Pichu",
	"Pk": "Pikachu",
	"Pp": "Ice Climbers",
	"Ss": "Samus",
	"Sk": "Sheik",
	"Ys": "Yoshi",
	"Cl": "Young Link",
	"Zd": "Zelda",
	"Dr": "Dr. Mario",
	"Gw": "G&W",

	// m-ex additions
	"Bo": "Giga Bowser",
	"Ch": "Charizard",
	"Db": "Diddy Kong",
	"Dd": "King Dedede",
	"Gk": "Giga Bowser",
	"Lc": "Lucas",
	"Mh": "Master Hand",
	"Sb": "Sandbag",
	"Sn": "Sonic",
	"Ts": "Tails",
	"Wf": "Wolf",
}

// CharacterName returns the asset folder name for a character code.
func CharacterName(code string) (string, bool) {
	name, ok := characterNames[code]
	return name, ok
}
