// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"omukit/internal/models"
	"omukit/internal/renderjob"
	"omukit/internal/styler"
)

// renderRequest is the body of POST /api/render.
type renderRequest struct {
	TemplateID string       `json:"templateId"`
	Style      styler.Input `json:"style"`
	AssetURL   string       `json:"assetUrl,omitempty"`
}

// SubmitRender serves POST /api/render. It fetches the template, resolves
// per-layer style overrides from the current brand guidelines and the
// requested style input, and submits the render. Only one render is
// tracked at a time; submitting replaces any render still in flight.
func (a *API) SubmitRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "templateId is required")
		return
	}

	tmpl, err := a.remote.GetTemplate(r.Context(), req.TemplateID)
	if err != nil {
		writeRemoteError(w, err)
		return
	}

	overrides := styler.Resolve(tmpl.Layers, req.Style, a.brandStore.Get(), req.AssetURL)

	job, err := a.renders.Submit(r.Context(), renderjob.Target{
		TemplateID:   tmpl.ID,
		TemplateName: tmpl.Name,
	}, overrides)
	if err != nil {
		writeRemoteError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

// CurrentRender serves GET /api/render with the tracked render's state.
func (a *API) CurrentRender(w http.ResponseWriter, r *http.Request) {
	job, ok := a.renders.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no render in progress")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// CancelRender serves DELETE /api/render. Cancelling stops the local
// status polling; the remote job itself may still complete.
func (a *API) CancelRender(w http.ResponseWriter, r *http.Request) {
	a.renders.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

// RenderHistory serves GET /api/history from the local render journal.
// Without a database the journal is absent and history is empty.
func (a *API) RenderHistory(w http.ResponseWriter, r *http.Request) {
	if a.journal == nil {
		writeJSON(w, http.StatusOK, []models.RenderRecord{})
		return
	}

	limit := 50
	offset := 0
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	var (
		records []models.RenderRecord
		err     error
	)
	if templateID := q.Get("template"); templateID != "" {
		records, err = a.journal.ListByTemplate(templateID, limit, offset)
	} else {
		records, err = a.journal.List(limit, offset)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load render history: "+err.Error())
		return
	}
	if records == nil {
		records = []models.RenderRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
