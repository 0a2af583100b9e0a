// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package styler resolves per-layer style overrides for a render request.
// Given a template's layer map, the user's form input, and the brand
// guidelines, Resolve produces the property bag submitted to the render API
// for every layer. Resolution is pure and deterministic: identical inputs
// always yield identical outputs, and nothing is mutated.
package styler

import (
	"sort"
	"strings"

	"omukit/internal/brand"
	"omukit/internal/templated"
)

// Input is the transient form state for one render: the campaign parameters
// plus any per-layer text the user typed over the template defaults.
type Input struct {
	BusinessType string            `json:"businessType"`
	ContentType  string            `json:"contentType"`
	CustomText   string            `json:"customText"`
	LayerText    map[string]string `json:"layerText,omitempty"`
}

// palette is a (main, accent) color pair for one business type. An empty
// Main means "use the brand primary color".
type palette struct {
	Main   string
	Accent string
}

// businessPalettes maps business types to their signature color pairs.
// Business types missing from the table fall back to the brand primary and
// accent colors.
var businessPalettes = map[string]palette{
	"coffee-shop":    {Main: "", Accent: "#6F4E37"},
	"salon":          {Main: "#D8BFD8", Accent: "#FF69B4"},
	"gym":            {Main: "#1E90FF", Accent: "#32CD32"},
	"restaurant":     {Main: "#FF6347", Accent: "#FFA07A"},
	"clothing-store": {Main: "#4B0082", Accent: "#DA70D6"},
}

// contentStyle is the typography treatment for one content tone.
type contentStyle struct {
	FontSize      string
	FontWeight    string
	LetterSpacing string
	Uppercase     bool
	Italic        bool
}

// contentStyles maps content types to their typography treatment. Unknown
// content types get no treatment at all, matching the permissive behavior
// of the form this data arrives from.
var contentStyles = map[string]contentStyle{
	"casual":       {FontSize: "16px", FontWeight: "normal", LetterSpacing: "0px"},
	"energetic":    {FontSize: "18px", FontWeight: "bold", LetterSpacing: "1px", Uppercase: true},
	"professional": {FontSize: "16px", FontWeight: "500", LetterSpacing: "0.5px"},
	"friendly":     {FontSize: "17px", FontWeight: "normal", LetterSpacing: "0px", Italic: true},
}

// customTextTargets are the layer-name substrings that receive the free-form
// custom text when it is provided.
var customTextTargets = []string{"content", "description", "main-text"}

// Resolve maps every layer of a template to its style override. Layers the
// resolver has no opinion about receive an empty override. assetURL is the
// URL of a library asset selected for background image layers, or "".
func Resolve(layers map[string]templated.Layer, input Input, g brand.Guidelines, assetURL string) map[string]templated.LayerOverride {
	out := make(map[string]templated.LayerOverride, len(layers))
	if len(layers) == 0 {
		return out
	}

	main, accent := resolvePalette(input.BusinessType, g)
	tone := contentStyles[input.ContentType]

	// Shape color cycling needs a stable layer ordering; Go map iteration
	// is randomized, so index by sorted name.
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		layer := layers[name]
		switch layer.Type {
		case templated.LayerText:
			out[name] = resolveText(name, layer, input, g, accent, tone)
		case templated.LayerImage:
			out[name] = resolveImage(name, g, assetURL)
		case templated.LayerShape:
			out[name] = resolveShape(name, i, g, main, accent)
		default:
			out[name] = templated.LayerOverride{}
		}
	}
	return out
}

// resolvePalette picks the (main, accent) pair for a business type, falling
// back to the brand colors for types outside the table.
func resolvePalette(businessType string, g brand.Guidelines) (main, accent string) {
	p, ok := businessPalettes[businessType]
	if !ok {
		return g.Colors.Primary, g.Colors.Accent
	}
	main = p.Main
	if main == "" {
		main = g.Colors.Primary
	}
	return main, p.Accent
}

// textRule styles a text layer whose name matches one of its substrings.
// Rules are evaluated in order; the first match wins.
type textRule struct {
	substrings []string
	apply      func(o *templated.LayerOverride, g brand.Guidelines, accent string, tone contentStyle)
}

var textRules = []textRule{
	{
		// Headings carry the brand's primary color and heading font.
		substrings: []string{"title", "heading", "header"},
		apply: func(o *templated.LayerOverride, g brand.Guidelines, accent string, tone contentStyle) {
			o.Color = g.Colors.Primary
			o.FontFamily = g.Typography.HeadingFont
			o.FontWeight = g.Typography.HeadingWeight
			o.FontSize = tone.FontSize
		},
	},
	{
		// Call-to-action buttons: white text on the accent color.
		substrings: []string{"button", "cta"},
		apply: func(o *templated.LayerOverride, g brand.Guidelines, accent string, tone contentStyle) {
			o.Color = "#FFFFFF"
			o.Background = accent
			o.FontFamily = g.Typography.BodyFont
			o.FontWeight = "bold"
			o.FontSize = tone.FontSize
		},
	},
	{
		// Price callouts: large, bold, accent-colored.
		substrings: []string{"price", "value", "offer"},
		apply: func(o *templated.LayerOverride, g brand.Guidelines, accent string, tone contentStyle) {
			o.Color = accent
			o.FontFamily = g.Typography.BodyFont
			o.FontWeight = "bold"
			o.FontSize = "24px"
		},
	},
	{
		// Subtitles: secondary color, medium weight.
		substrings: []string{"subtitle", "subheading"},
		apply: func(o *templated.LayerOverride, g brand.Guidelines, accent string, tone contentStyle) {
			o.Color = g.Colors.Secondary
			o.FontFamily = g.Typography.BodyFont
			o.FontWeight = "500"
			o.FontSize = tone.FontSize
		},
	},
	{
		// Default body style. Empty substring matches every name. The
		// content tone's weight wins over the brand body weight here;
		// body copy is where the tone is meant to show.
		substrings: []string{""},
		apply: func(o *templated.LayerOverride, g brand.Guidelines, accent string, tone contentStyle) {
			o.Color = g.Colors.Text
			o.FontFamily = g.Typography.BodyFont
			o.FontWeight = g.Typography.BodyWeight
			if tone.FontWeight != "" {
				o.FontWeight = tone.FontWeight
			}
			o.FontSize = tone.FontSize
		},
	},
}

func resolveText(name string, layer templated.Layer, input Input, g brand.Guidelines, accent string, tone contentStyle) templated.LayerOverride {
	var o templated.LayerOverride

	// Base text: the user's per-layer value, else the template default.
	text := input.LayerText[name]
	if text == "" {
		text = layer.DefaultText
	}
	if input.CustomText != "" && containsAny(name, customTextTargets) {
		text = input.CustomText
	}

	for _, rule := range textRules {
		if containsAny(name, rule.substrings) {
			rule.apply(&o, g, accent, tone)
			break
		}
	}

	if tone.LetterSpacing != "" && tone.LetterSpacing != "0px" {
		o.LetterSpacing = tone.LetterSpacing
	}
	if tone.Uppercase && !strings.Contains(name, "small") {
		text = strings.ToUpper(text)
	}
	if tone.Italic && !strings.Contains(name, "label") {
		o.FontStyle = "italic"
	}

	// A luxurious brand voice widens tracking and prefers serif faces.
	if g.Voice == brand.VoiceLuxurious {
		o.LetterSpacing = "2px"
		if o.FontFamily != "" && !strings.Contains(o.FontFamily, "serif") {
			o.FontFamily = "Georgia, serif"
		}
	}

	o.Text = text
	return o
}

func resolveImage(name string, g brand.Guidelines, assetURL string) templated.LayerOverride {
	var o templated.LayerOverride
	switch {
	case g.Logo != "" && containsAny(name, []string{"logo", "brand"}):
		o.ImageURL = g.Logo
	case assetURL != "" && strings.Contains(name, "background"):
		o.ImageURL = assetURL
	}
	return o
}

// shapeRule fills a shape layer whose name matches one of its substrings.
type shapeRule struct {
	substrings []string
	fill       func(g brand.Guidelines, main, accent string) string
}

var shapeRules = []shapeRule{
	{[]string{"background"}, func(g brand.Guidelines, main, accent string) string { return g.Colors.Background }},
	{[]string{"accent", "highlight"}, func(g brand.Guidelines, main, accent string) string { return accent }},
	{[]string{"primary", "main", "base"}, func(g brand.Guidelines, main, accent string) string { return main }},
	{[]string{"secondary", "alt"}, func(g brand.Guidelines, main, accent string) string { return g.Colors.Secondary }},
	{[]string{"border", "divider"}, func(g brand.Guidelines, main, accent string) string {
		if g.Colors.Text == "" {
			return ""
		}
		// 50% alpha suffix keeps dividers subtle against any background.
		return g.Colors.Text + "80"
	}},
}

func resolveShape(name string, position int, g brand.Guidelines, main, accent string) templated.LayerOverride {
	var o templated.LayerOverride
	for _, rule := range shapeRules {
		if containsAny(name, rule.substrings) {
			o.Fill = rule.fill(g, main, accent)
			return o
		}
	}

	// Unclassified shapes cycle through the brand palette by position so
	// adjacent shapes get distinct colors.
	cycle := []string{g.Colors.Primary, g.Colors.Secondary, g.Colors.Accent}
	o.Fill = cycle[position%len(cycle)]
	return o
}

func containsAny(name string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}
