// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brand holds the user's brand guidelines: the colors, typography,
// logo, and voice applied uniformly across generated content. Guidelines are
// owned by a single Store with copy-on-write semantics and survive restarts
// through a pluggable Persistence backend.
package brand

// Voice is the brand's tone of voice. It influences letter spacing and font
// fallbacks during style resolution.
type Voice string

const (
	VoiceProfessional Voice = "professional"
	VoiceCasual       Voice = "casual"
	VoiceEnergetic    Voice = "energetic"
	VoiceLuxurious    Voice = "luxurious"
)

// Colors is the brand color palette. Values are 6-hex-digit color strings as
// entered by the user; no defensive validation is applied beyond the form.
type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

// Typography holds the brand font choices.
type Typography struct {
	HeadingFont   string `json:"headingFont"`
	BodyFont      string `json:"bodyFont"`
	HeadingWeight string `json:"headingWeight"`
	BodyWeight    string `json:"bodyWeight"`
}

// Guidelines is the full brand guidelines document. It is treated as a value:
// every mutation replaces the whole structure.
type Guidelines struct {
	Colors     Colors     `json:"colors"`
	Typography Typography `json:"typography"`
	Logo       string     `json:"logo,omitempty"`
	Voice      Voice      `json:"voice"`
}

// Default returns the built-in guidelines used until the user saves their own.
func Default() Guidelines {
	return Guidelines{
		Colors: Colors{
			Primary:    "#138a72",
			Secondary:  "#FFA500",
			Accent:     "#FF5733",
			Text:       "#333333",
			Background: "#ffffff",
		},
		Typography: Typography{
			HeadingFont:   "Arial, sans-serif",
			BodyFont:      "Arial, sans-serif",
			HeadingWeight: "bold",
			BodyWeight:    "normal",
		},
		Voice: VoiceProfessional,
	}
}
