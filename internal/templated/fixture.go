// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package templated

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// resortTemplateID is the id of the canonical demo template. Its layer set
// mirrors a real Templated.io "Resort" Instagram template.
const resortTemplateID = "fcd7113c-b2cf-4684-b126-9d3467e0dd80"

// fixturePollsToComplete is how many status checks a fixture render stays
// pending before reporting completed.
const fixturePollsToComplete = 2

// Fixture is an in-memory API implementation serving a small static dataset.
// It backs development without an API key and keeps handler tests off the
// network. Render jobs progress pending -> completed over successive status
// checks. Safe for concurrent use.
type Fixture struct {
	mu      sync.Mutex
	renders map[string]*fixtureRender
	uploads []Upload
}

type fixtureRender struct {
	render     Render
	templateID string
	polls      int
}

// NewFixture creates a fixture data source with the built-in demo dataset.
func NewFixture() *Fixture {
	return &Fixture{
		renders: make(map[string]*fixtureRender),
		uploads: []Upload{
			{
				ID:        "upload-1",
				URL:       "https://assets.example.com/uploads/beach.jpg",
				Name:      "beach.jpg",
				Size:      245760,
				CreatedAt: time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC),
			},
		},
	}
}

var fixtureTemplates = []Template{
	{
		ID:        resortTemplateID,
		Name:      "Resort Promotion",
		Thumbnail: thumbnailFallbackURL + resortTemplateID + ".webp",
		Width:     1080,
		Height:    1080,
	},
	{
		ID:        "a91f3d62-5c08-4f11-9a77-31c24a90be55",
		Name:      "Minimal Announcement",
		Thumbnail: thumbnailFallbackURL + "a91f3d62-5c08-4f11-9a77-31c24a90be55.webp",
		Width:     1080,
		Height:    1350,
	},
}

var fixtureFolders = []Folder{
	{ID: "folder-instagram", Name: "Instagram Posts"},
	{ID: "folder-stories", Name: "Stories"},
}

// fixtureLayers returns the layer map for a template id. The resort template
// carries the full realistic layer set; everything else gets the generic one.
func fixtureLayers(templateID string) map[string]Layer {
	if templateID == resortTemplateID {
		return map[string]Layer{
			"photo-1":     {Type: LayerImage},
			"photo-2":     {Type: LayerImage},
			"photo-3-top": {Type: LayerImage},
			"shape-blue":  {Type: LayerShape},
			"shape-dark-blue": {Type: LayerShape},
			"title-1":     {Type: LayerText, DefaultText: "RESORT"},
			"title-2":     {Type: LayerText, DefaultText: "ALL INCLUSIVE"},
			"infos":       {Type: LayerText},
			"label-price": {Type: LayerText, DefaultText: "START PRICE"},
			"price":       {Type: LayerText, DefaultText: "$89/night"},
			"title-info":  {Type: LayerText, DefaultText: "MORE INFORMATION"},
			"button-cta":  {Type: LayerText, DefaultText: "BOOK A ROOM"},
		}
	}
	return map[string]Layer{
		"text-main":        {Type: LayerText, DefaultText: "Main Text"},
		"text-subtitle":    {Type: LayerText, DefaultText: "Subtitle Text"},
		"image-main":       {Type: LayerImage},
		"background-shape": {Type: LayerShape},
	}
}

func (f *Fixture) ListTemplates(ctx context.Context, params ListParams) ([]Template, error) {
	out := make([]Template, len(fixtureTemplates))
	copy(out, fixtureTemplates)
	return out, nil
}

func (f *Fixture) ListFolderTemplates(ctx context.Context, folderID string, params ListParams) ([]Template, error) {
	// The demo dataset keeps every template in the Instagram folder.
	if folderID == "folder-instagram" {
		return f.ListTemplates(ctx, params)
	}
	return []Template{}, nil
}

func (f *Fixture) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	for _, t := range fixtureTemplates {
		if t.ID == templateID {
			found := t
			found.Layers = fixtureLayers(templateID)
			return &found, nil
		}
	}
	return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("template %s not found", templateID)}
}

func (f *Fixture) CloneTemplate(ctx context.Context, templateID, name string) (*Template, error) {
	src, err := f.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	clone := *src
	clone.ID = uuid.NewString()
	clone.Name = name
	return &clone, nil
}

func (f *Fixture) AddTemplateTags(ctx context.Context, templateID string, tags []string) error {
	if _, err := f.GetTemplate(ctx, templateID); err != nil {
		return err
	}
	return nil
}

func (f *Fixture) ListFolders(ctx context.Context, params ListParams) ([]Folder, error) {
	out := make([]Folder, len(fixtureFolders))
	copy(out, fixtureFolders)
	return out, nil
}

func (f *Fixture) Upload(ctx context.Context, filename string, file io.Reader) (*Upload, error) {
	size, err := io.Copy(io.Discard, file)
	if err != nil {
		return nil, fmt.Errorf("fixture upload: %w", err)
	}

	up := Upload{
		ID:        uuid.NewString(),
		URL:       "https://assets.example.com/uploads/" + filename,
		Name:      filename,
		Size:      size,
		CreatedAt: time.Now().UTC(),
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, up)
	f.mu.Unlock()
	return &up, nil
}

func (f *Fixture) ListUploads(ctx context.Context, params ListParams) ([]Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Upload, len(f.uploads))
	copy(out, f.uploads)
	return out, nil
}

func (f *Fixture) CreateRender(ctx context.Context, templateID string, layers map[string]LayerOverride) (*Render, error) {
	if _, err := f.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	r := Render{
		ID:        uuid.NewString(),
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}

	f.mu.Lock()
	f.renders[r.ID] = &fixtureRender{render: r, templateID: templateID}
	f.mu.Unlock()
	return &r, nil
}

func (f *Fixture) GetRender(ctx context.Context, renderID string) (*Render, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fr, ok := f.renders[renderID]
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("render %s not found", renderID)}
	}

	fr.polls++
	if fr.polls >= fixturePollsToComplete {
		// Uppercase on purpose: the live API reports terminal states in
		// caps, and the lifecycle controller must normalize them.
		fr.render.Status = "COMPLETED"
		fr.render.URL = "https://renders.example.com/" + renderID + ".jpg"
	}

	out := fr.render
	return &out, nil
}

func (f *Fixture) ListTemplateRenders(ctx context.Context, templateID string, params ListParams) ([]Render, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Render
	for _, fr := range f.renders {
		if fr.templateID == templateID {
			out = append(out, fr.render)
		}
	}
	return out, nil
}
