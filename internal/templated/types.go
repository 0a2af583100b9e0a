// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package templated

import (
	"encoding/json"
	"time"
)

// LayerType categorizes the editable surface of one visual element.
type LayerType string

const (
	LayerText  LayerType = "text"
	LayerImage LayerType = "image"
	LayerShape LayerType = "shape"
)

// Layer describes a single editable element within a template. The layer's
// name is the key under which it appears in Template.Layers.
type Layer struct {
	Type        LayerType `json:"type"`
	DefaultText string    `json:"text,omitempty"`
}

// Template is a remote, pre-designed visual composition. Immutable once
// fetched; a newly selected template replaces the previous one wholesale.
type Template struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Thumbnail string           `json:"thumbnail,omitempty"`
	Width     int              `json:"width,omitempty"`
	Height    int              `json:"height,omitempty"`
	Layers    map[string]Layer `json:"layers,omitempty"`
}

// thumbnailFallbackURL is the S3 location Templated publishes thumbnails to
// when the listing response omits the thumbnail field.
const thumbnailFallbackURL = "https://templated-assets.s3.amazonaws.com/thumbnails/"

// UnmarshalJSON tolerates the id/thumbnail field aliases the API uses
// inconsistently across endpoints (template_id vs id, thumbnail_url vs
// thumbnail) and fills the standard thumbnail location when both are absent.
func (t *Template) UnmarshalJSON(data []byte) error {
	type wire struct {
		ID           string           `json:"id"`
		TemplateID   string           `json:"template_id"`
		Name         string           `json:"name"`
		Thumbnail    string           `json:"thumbnail"`
		ThumbnailURL string           `json:"thumbnail_url"`
		Width        int              `json:"width"`
		Height       int              `json:"height"`
		Layers       map[string]Layer `json:"layers"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	t.ID = w.ID
	if t.ID == "" {
		t.ID = w.TemplateID
	}
	t.Name = w.Name
	t.Width = w.Width
	t.Height = w.Height
	t.Layers = w.Layers

	t.Thumbnail = w.Thumbnail
	if t.Thumbnail == "" {
		t.Thumbnail = w.ThumbnailURL
	}
	if t.Thumbnail == "" && t.ID != "" {
		t.Thumbnail = thumbnailFallbackURL + t.ID + ".webp"
	}
	return nil
}

// Folder groups templates on the remote side.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Upload is a file stored in the remote asset library.
type Upload struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Size      int64     `json:"size,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// LayerOverride is the per-layer property bag sent with a render request.
// Zero-valued fields are omitted from the wire payload, so an empty override
// marshals to {} and leaves the layer untouched.
type LayerOverride struct {
	Text          string `json:"text,omitempty"`
	Color         string `json:"color,omitempty"`
	Background    string `json:"background,omitempty"`
	FontFamily    string `json:"font_family,omitempty"`
	FontSize      string `json:"font_size,omitempty"`
	FontWeight    string `json:"font_weight,omitempty"`
	FontStyle     string `json:"font_style,omitempty"`
	LetterSpacing string `json:"letter_spacing,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Fill          string `json:"fill,omitempty"`
	Stroke        string `json:"stroke,omitempty"`
	BorderRadius  string `json:"border_radius,omitempty"`
}

// IsZero reports whether no property is set on the override.
func (o LayerOverride) IsZero() bool {
	return o == LayerOverride{}
}

// Render is a remote render job. Status is reported verbatim as the API
// returned it; the lifecycle controller normalizes casing before exposing
// it to callers.
type Render struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ListParams carries pagination and search parameters for listing endpoints.
// Zero values mean "not set" and are omitted from the query string.
type ListParams struct {
	Page  int
	Limit int
	Query string
}
