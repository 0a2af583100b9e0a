// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package templated provides the client for the Templated.io v1 rendering
// API: template and folder listing, the asset library, and render creation
// and status checks. The API interface has two implementations: the live
// HTTP Client and the offline Fixture used for development and tests.
package templated

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API is the surface of the Templated.io service the application consumes.
type API interface {
	ListTemplates(ctx context.Context, params ListParams) ([]Template, error)
	ListFolderTemplates(ctx context.Context, folderID string, params ListParams) ([]Template, error)
	GetTemplate(ctx context.Context, templateID string) (*Template, error)
	CloneTemplate(ctx context.Context, templateID, name string) (*Template, error)
	AddTemplateTags(ctx context.Context, templateID string, tags []string) error
	ListFolders(ctx context.Context, params ListParams) ([]Folder, error)
	Upload(ctx context.Context, filename string, file io.Reader) (*Upload, error)
	ListUploads(ctx context.Context, params ListParams) ([]Upload, error)
	CreateRender(ctx context.Context, templateID string, layers map[string]LayerOverride) (*Render, error)
	GetRender(ctx context.Context, renderID string) (*Render, error)
	ListTemplateRenders(ctx context.Context, templateID string, params ListParams) ([]Render, error)
}

// APIError is a non-2xx response from the remote API, carrying the remote
// message when the error body was parseable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("templated api: %s (status %d)", e.Message, e.StatusCode)
}

// Client is the live HTTP implementation of API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Templated.io client. The API key must be present;
// config.Load rejects placeholders before this point, but the check is
// repeated here so no miswired caller can emit unauthenticated requests.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" || apiKey == "YOUR_API_KEY" {
		return nil, fmt.Errorf("templated: missing API key")
	}
	if baseURL == "" {
		baseURL = "https://api.templated.io/v1"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// ListTemplates fetches all templates visible to the API key.
func (c *Client) ListTemplates(ctx context.Context, params ListParams) ([]Template, error) {
	body, err := c.get(ctx, "/templates"+params.encode())
	if err != nil {
		return nil, err
	}
	return decodeTemplateList(body)
}

// ListFolderTemplates fetches the templates contained in one folder.
func (c *Client) ListFolderTemplates(ctx context.Context, folderID string, params ListParams) ([]Template, error) {
	body, err := c.get(ctx, "/folders/"+url.PathEscape(folderID)+"/templates"+params.encode())
	if err != nil {
		return nil, err
	}
	return decodeTemplateList(body)
}

// GetTemplate fetches one template with its full layer map. A response
// without layers yields an empty, non-nil map rather than an error.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	body, err := c.get(ctx, "/template/"+url.PathEscape(templateID)+"?includeLayers=true")
	if err != nil {
		return nil, err
	}
	var t Template
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("templated decode template: %w", err)
	}
	if t.Layers == nil {
		t.Layers = map[string]Layer{}
	}
	return &t, nil
}

// CloneTemplate creates a copy of a template under a new name.
func (c *Client) CloneTemplate(ctx context.Context, templateID, name string) (*Template, error) {
	body, err := c.post(ctx, "/template/"+url.PathEscape(templateID)+"/clone", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	var t Template
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("templated decode clone: %w", err)
	}
	return &t, nil
}

// AddTemplateTags attaches tags to a template.
func (c *Client) AddTemplateTags(ctx context.Context, templateID string, tags []string) error {
	_, err := c.post(ctx, "/template/"+url.PathEscape(templateID)+"/tags", tags)
	return err
}

// ListFolders fetches the folder list.
func (c *Client) ListFolders(ctx context.Context, params ListParams) ([]Folder, error) {
	body, err := c.get(ctx, "/folders"+params.encode())
	if err != nil {
		return nil, err
	}
	var folders []Folder
	if err := json.Unmarshal(body, &folders); err != nil {
		return nil, fmt.Errorf("templated decode folders: %w", err)
	}
	return folders, nil
}

// Upload sends a file to the remote asset library as multipart form data.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("templated upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("templated upload copy: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("templated upload close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("templated upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var up Upload
	if err := json.Unmarshal(body, &up); err != nil {
		return nil, fmt.Errorf("templated decode upload: %w", err)
	}
	return &up, nil
}

// ListUploads fetches the asset library contents.
func (c *Client) ListUploads(ctx context.Context, params ListParams) ([]Upload, error) {
	body, err := c.get(ctx, "/uploads"+params.encode())
	if err != nil {
		return nil, err
	}
	var uploads []Upload
	if err := json.Unmarshal(body, &uploads); err != nil {
		return nil, fmt.Errorf("templated decode uploads: %w", err)
	}
	return uploads, nil
}

// CreateRender submits a render job for the template with the given
// per-layer overrides.
func (c *Client) CreateRender(ctx context.Context, templateID string, layers map[string]LayerOverride) (*Render, error) {
	payload := struct {
		Template string                   `json:"template"`
		Layers   map[string]LayerOverride `json:"layers"`
	}{Template: templateID, Layers: layers}

	body, err := c.post(ctx, "/render", payload)
	if err != nil {
		return nil, err
	}
	var r Render
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("templated decode render: %w", err)
	}
	return &r, nil
}

// GetRender fetches the current state of a render job.
func (c *Client) GetRender(ctx context.Context, renderID string) (*Render, error) {
	body, err := c.get(ctx, "/render/"+url.PathEscape(renderID))
	if err != nil {
		return nil, err
	}
	var r Render
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("templated decode render status: %w", err)
	}
	return &r, nil
}

// ListTemplateRenders fetches the remote render history for a template.
func (c *Client) ListTemplateRenders(ctx context.Context, templateID string, params ListParams) ([]Render, error) {
	body, err := c.get(ctx, "/template/"+url.PathEscape(templateID)+"/renders"+params.encode())
	if err != nil {
		return nil, err
	}
	var renders []Render
	if err := json.Unmarshal(body, &renders); err != nil {
		return nil, fmt.Errorf("templated decode renders: %w", err)
	}
	return renders, nil
}

// get performs an authorized GET and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("templated request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return c.do(req)
}

// post performs an authorized POST with a JSON body and returns the
// response body.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("templated marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("templated request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return c.do(req)
}

// do executes the request and normalizes non-2xx responses into *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("templated http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("templated read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var remote struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &remote) == nil && remote.Message != "" {
			apiErr.Message = remote.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return body, nil
}

// decodeTemplateList handles both response shapes the API uses for template
// listings: a bare array or an object with a "templates" property.
func decodeTemplateList(body []byte) ([]Template, error) {
	var direct []Template
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}
	var wrapped struct {
		Templates []Template `json:"templates"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("templated decode templates: %w", err)
	}
	return wrapped.Templates, nil
}

// encode builds the query string for list endpoints. Returns "" when no
// parameter is set.
func (p ListParams) encode() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
