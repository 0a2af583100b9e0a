// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styler

import (
	"reflect"
	"testing"

	"omukit/internal/brand"
	"omukit/internal/templated"
)

func textLayer(defaultText string) templated.Layer {
	return templated.Layer{Type: templated.LayerText, DefaultText: defaultText}
}

func TestResolveEmptyLayers(t *testing.T) {
	out := Resolve(nil, Input{}, brand.Default(), "")
	if len(out) != 0 {
		t.Fatalf("expected empty overrides for empty layers, got %d", len(out))
	}

	out = Resolve(map[string]templated.Layer{}, Input{}, brand.Default(), "")
	if len(out) != 0 {
		t.Fatalf("expected empty overrides for empty layer map, got %d", len(out))
	}
}

func TestResolveHeadingUsesBrandPrimary(t *testing.T) {
	layers := map[string]templated.Layer{
		"title-1": textLayer("RESORT"),
	}
	out := Resolve(layers, Input{}, brand.Default(), "")

	o, ok := out["title-1"]
	if !ok {
		t.Fatal("title-1 missing from overrides")
	}
	if o.Color != "#138a72" {
		t.Errorf("heading color = %q, want #138a72", o.Color)
	}
	if o.FontFamily != "Arial, sans-serif" {
		t.Errorf("heading font = %q, want Arial, sans-serif", o.FontFamily)
	}
	if o.FontWeight != "bold" {
		t.Errorf("heading weight = %q, want bold", o.FontWeight)
	}
	if o.Text != "RESORT" {
		t.Errorf("heading text = %q, want RESORT", o.Text)
	}
}

func TestResolveEveryLayerGetsAnOverride(t *testing.T) {
	layers := map[string]templated.Layer{
		"title-1":    textLayer("Hello"),
		"photo-main": {Type: templated.LayerImage},
		"shape-1":    {Type: templated.LayerShape},
		"mystery":    {Type: "video"},
	}
	out := Resolve(layers, Input{BusinessType: "gym", ContentType: "casual"}, brand.Default(), "")

	if len(out) != len(layers) {
		t.Fatalf("got %d overrides, want %d", len(out), len(layers))
	}
	for name := range layers {
		if _, ok := out[name]; !ok {
			t.Errorf("layer %q missing from overrides", name)
		}
	}
	// Unknown layer types pass through untouched.
	if !out["mystery"].IsZero() {
		t.Errorf("unknown layer type got a non-empty override: %+v", out["mystery"])
	}
}

func TestResolveBusinessPalette(t *testing.T) {
	g := brand.Default()

	tests := []struct {
		businessType string
		wantAccent   string
	}{
		{"salon", "#FF69B4"},
		{"gym", "#32CD32"},
		{"restaurant", "#FFA07A"},
		{"clothing-store", "#DA70D6"},
		{"coffee-shop", "#6F4E37"},
	}
	for _, tc := range tests {
		layers := map[string]templated.Layer{
			"button-cta": textLayer("Book"),
		}
		out := Resolve(layers, Input{BusinessType: tc.businessType}, g, "")
		if got := out["button-cta"].Background; got != tc.wantAccent {
			t.Errorf("%s: button background = %q, want %q", tc.businessType, got, tc.wantAccent)
		}
		if got := out["button-cta"].Color; got != "#FFFFFF" {
			t.Errorf("%s: button color = %q, want #FFFFFF", tc.businessType, got)
		}
	}
}

func TestResolveUnknownBusinessFallsBackToBrand(t *testing.T) {
	g := brand.Default()
	layers := map[string]templated.Layer{
		"price": textLayer("$89"),
	}
	out := Resolve(layers, Input{BusinessType: "space-agency"}, g, "")

	if got := out["price"].Color; got != g.Colors.Accent {
		t.Errorf("price color = %q, want brand accent %q", got, g.Colors.Accent)
	}
	if got := out["price"].FontSize; got != "24px" {
		t.Errorf("price size = %q, want 24px", got)
	}
}

func TestResolveCoffeeShopMainUsesBrandPrimary(t *testing.T) {
	g := brand.Default()
	layers := map[string]templated.Layer{
		"shape-main": {Type: templated.LayerShape},
	}
	out := Resolve(layers, Input{BusinessType: "coffee-shop"}, g, "")
	if got := out["shape-main"].Fill; got != g.Colors.Primary {
		t.Errorf("coffee-shop main shape fill = %q, want brand primary %q", got, g.Colors.Primary)
	}
}

func TestResolveContentTone(t *testing.T) {
	layers := map[string]templated.Layer{
		"infos": textLayer("All rooms with sea view"),
	}

	out := Resolve(layers, Input{ContentType: "professional"}, brand.Default(), "")
	if got := out["infos"].FontWeight; got != "500" {
		t.Errorf("body weight = %q, want professional tone weight 500", got)
	}
	if got := out["infos"].FontSize; got != "16px" {
		t.Errorf("professional size = %q, want 16px", got)
	}
	if got := out["infos"].LetterSpacing; got != "0.5px" {
		t.Errorf("professional spacing = %q, want 0.5px", got)
	}

	out = Resolve(layers, Input{ContentType: "friendly"}, brand.Default(), "")
	if got := out["infos"].FontStyle; got != "italic" {
		t.Errorf("friendly style = %q, want italic", got)
	}
}

func TestResolveEnergeticUppercasesText(t *testing.T) {
	layers := map[string]templated.Layer{
		"title-2":     textLayer("All Inclusive"),
		"small-print": textLayer("Terms apply"),
	}
	out := Resolve(layers, Input{ContentType: "energetic"}, brand.Default(), "")

	if got := out["title-2"].Text; got != "ALL INCLUSIVE" {
		t.Errorf("energetic text = %q, want ALL INCLUSIVE", got)
	}
	// Layers named "small" keep their casing.
	if got := out["small-print"].Text; got != "Terms apply" {
		t.Errorf("small-print text = %q, want Terms apply", got)
	}
	if got := out["title-2"].LetterSpacing; got != "1px" {
		t.Errorf("energetic spacing = %q, want 1px", got)
	}
}

func TestResolveFriendlySkipsLabels(t *testing.T) {
	layers := map[string]templated.Layer{
		"label-price": textLayer("START PRICE"),
	}
	out := Resolve(layers, Input{ContentType: "friendly"}, brand.Default(), "")
	if got := out["label-price"].FontStyle; got != "" {
		t.Errorf("label style = %q, want no italics on labels", got)
	}
}

func TestResolveLuxuriousVoice(t *testing.T) {
	g := brand.Default()
	g.Voice = brand.VoiceLuxurious

	layers := map[string]templated.Layer{
		"title-1": textLayer("RESORT"),
	}
	out := Resolve(layers, Input{}, g, "")

	if got := out["title-1"].LetterSpacing; got != "2px" {
		t.Errorf("luxurious spacing = %q, want 2px", got)
	}
	// "Arial, sans-serif" already contains "serif", so the face is kept.
	if got := out["title-1"].FontFamily; got != "Arial, sans-serif" {
		t.Errorf("luxurious font = %q, want Arial, sans-serif kept", got)
	}

	g.Typography.HeadingFont = "Helvetica"
	out = Resolve(layers, Input{}, g, "")
	if got := out["title-1"].FontFamily; got != "Georgia, serif" {
		t.Errorf("luxurious font = %q, want Georgia, serif substitution", got)
	}
}

func TestResolveCustomTextTargets(t *testing.T) {
	layers := map[string]templated.Layer{
		"main-text": textLayer("Default copy"),
		"title-1":   textLayer("RESORT"),
	}
	out := Resolve(layers, Input{CustomText: "Summer sale"}, brand.Default(), "")

	if got := out["main-text"].Text; got != "Summer sale" {
		t.Errorf("main-text = %q, want custom text applied", got)
	}
	if got := out["title-1"].Text; got != "RESORT" {
		t.Errorf("title-1 = %q, custom text must not leak into titles", got)
	}
}

func TestResolvePerLayerTextBeatsDefault(t *testing.T) {
	layers := map[string]templated.Layer{
		"infos": textLayer("Default copy"),
	}
	in := Input{LayerText: map[string]string{"infos": "Typed copy"}}
	out := Resolve(layers, in, brand.Default(), "")
	if got := out["infos"].Text; got != "Typed copy" {
		t.Errorf("infos = %q, want per-layer text to win", got)
	}
}

func TestResolveImageLayers(t *testing.T) {
	g := brand.Default()
	g.Logo = "https://cdn.example.com/logo.png"
	layers := map[string]templated.Layer{
		"logo-mark":        {Type: templated.LayerImage},
		"background-photo": {Type: templated.LayerImage},
		"photo-1":          {Type: templated.LayerImage},
	}
	out := Resolve(layers, Input{}, g, "https://cdn.example.com/beach.jpg")

	if got := out["logo-mark"].ImageURL; got != g.Logo {
		t.Errorf("logo layer = %q, want brand logo", got)
	}
	if got := out["background-photo"].ImageURL; got != "https://cdn.example.com/beach.jpg" {
		t.Errorf("background layer = %q, want selected asset", got)
	}
	if got := out["photo-1"].ImageURL; got != "" {
		t.Errorf("plain photo layer = %q, want untouched", got)
	}
}

func TestResolveShapeRules(t *testing.T) {
	g := brand.Default()
	layers := map[string]templated.Layer{
		"shape-background": {Type: templated.LayerShape},
		"shape-accent":     {Type: templated.LayerShape},
		"shape-divider":    {Type: templated.LayerShape},
	}
	out := Resolve(layers, Input{BusinessType: "gym"}, g, "")

	if got := out["shape-background"].Fill; got != g.Colors.Background {
		t.Errorf("background fill = %q, want %q", got, g.Colors.Background)
	}
	if got := out["shape-accent"].Fill; got != "#32CD32" {
		t.Errorf("accent fill = %q, want gym accent", got)
	}
	if got := out["shape-divider"].Fill; got != "#33333380" {
		t.Errorf("divider fill = %q, want text color with alpha", got)
	}
}

func TestResolveShapeCyclingIsDeterministic(t *testing.T) {
	g := brand.Default()
	layers := map[string]templated.Layer{
		"blob-a": {Type: templated.LayerShape},
		"blob-b": {Type: templated.LayerShape},
		"blob-c": {Type: templated.LayerShape},
	}

	// Sorted order: blob-a, blob-b, blob-c at positions 0, 1, 2.
	out := Resolve(layers, Input{}, g, "")
	if got := out["blob-a"].Fill; got != g.Colors.Primary {
		t.Errorf("blob-a fill = %q, want primary", got)
	}
	if got := out["blob-b"].Fill; got != g.Colors.Secondary {
		t.Errorf("blob-b fill = %q, want secondary", got)
	}
	if got := out["blob-c"].Fill; got != g.Colors.Accent {
		t.Errorf("blob-c fill = %q, want accent", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	layers := map[string]templated.Layer{
		"title-1":      textLayer("RESORT"),
		"button-cta":   textLayer("BOOK A ROOM"),
		"shape-1":      {Type: templated.LayerShape},
		"shape-2":      {Type: templated.LayerShape},
		"photo-1-top":  {Type: templated.LayerImage},
		"label-price":  textLayer("START PRICE"),
		"price":        textLayer("$89/night"),
		"subtitle-tag": textLayer("All inclusive"),
	}
	in := Input{BusinessType: "restaurant", ContentType: "energetic", CustomText: "Dinner deal"}
	g := brand.Default()

	first := Resolve(layers, in, g, "https://cdn.example.com/a.jpg")
	second := Resolve(layers, in, g, "https://cdn.example.com/a.jpg")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
