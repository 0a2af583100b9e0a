// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"omukit/internal/templated"
)

func listParamsFromRequest(r *http.Request) templated.ListParams {
	q := r.URL.Query()
	p := templated.ListParams{Query: q.Get("query")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		p.Limit = limit
	}
	return p
}

// ListTemplates serves GET /api/templates. An optional folder query
// parameter narrows the listing to one folder.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromRequest(r)
	folder := r.URL.Query().Get("folder")

	cacheKey := folder + "?" + r.URL.RawQuery
	if a.tmplCache != nil {
		if cached, ok := a.tmplCache.GetList(r.Context(), cacheKey); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	var (
		templates []templated.Template
		err       error
	)
	if folder != "" {
		templates, err = a.remote.ListFolderTemplates(r.Context(), folder, params)
	} else {
		templates, err = a.remote.ListTemplates(r.Context(), params)
	}
	if err != nil {
		writeRemoteError(w, err)
		return
	}

	if a.tmplCache != nil {
		a.tmplCache.SetList(r.Context(), cacheKey, templates)
	}
	writeJSON(w, http.StatusOK, templates)
}

// GetTemplate serves GET /api/templates/{id} with the template's layers.
func (a *API) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "template id is required")
		return
	}

	if a.tmplCache != nil {
		if cached, ok := a.tmplCache.GetDetail(r.Context(), id); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	tmpl, err := a.remote.GetTemplate(r.Context(), id)
	if err != nil {
		writeRemoteError(w, err)
		return
	}

	if a.tmplCache != nil {
		a.tmplCache.SetDetail(r.Context(), tmpl)
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// CloneTemplate serves POST /api/templates/{id}/clone. The clone becomes
// an independent editable copy owned by the account.
func (a *API) CloneTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "template id is required")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	clone, err := a.remote.CloneTemplate(r.Context(), id, body.Name)
	if err != nil {
		writeRemoteError(w, err)
		return
	}

	if a.tmplCache != nil {
		a.tmplCache.InvalidateDetail(r.Context(), id)
	}
	writeJSON(w, http.StatusCreated, clone)
}

// AddTemplateTags serves POST /api/templates/{id}/tags.
func (a *API) AddTemplateTags(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "template id is required")
		return
	}

	var body struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Tags) == 0 {
		writeError(w, http.StatusBadRequest, "at least one tag is required")
		return
	}

	if err := a.remote.AddTemplateTags(r.Context(), id, body.Tags); err != nil {
		writeRemoteError(w, err)
		return
	}
	if a.tmplCache != nil {
		a.tmplCache.InvalidateDetail(r.Context(), id)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tags": body.Tags})
}

// ListTemplateRenders serves GET /api/templates/{id}/renders with the
// remote render history of one template.
func (a *API) ListTemplateRenders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "template id is required")
		return
	}

	renders, err := a.remote.ListTemplateRenders(r.Context(), id, listParamsFromRequest(r))
	if err != nil {
		writeRemoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renders)
}
