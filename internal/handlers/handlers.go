// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON API handlers of the Omu Media Kit
// service. Handlers are grouped by concern (templates, assets, brand,
// render) and receive their dependencies through the API struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"omukit/internal/brand"
	"omukit/internal/cache"
	"omukit/internal/renderjob"
	"omukit/internal/store"
	"omukit/internal/templated"
)

// API is the handler group serving the JSON API. The template cache is
// optional; a nil cache means every request goes to the remote API.
type API struct {
	remote     templated.API
	tmplCache  *cache.TemplateCache
	brandStore *brand.Store
	renders    *renderjob.Controller
	journal    *store.RenderRecordStore
}

// New creates the API handler group with its dependencies.
func New(remote templated.API, tmplCache *cache.TemplateCache, brandStore *brand.Store, renders *renderjob.Controller, journal *store.RenderRecordStore) *API {
	return &API{
		remote:     remote,
		tmplCache:  tmplCache,
		brandStore: brandStore,
		renders:    renders,
		journal:    journal,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeError writes a normalized JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRemoteError maps a remote API failure onto our response. Remote 4xx
// statuses pass through (the caller's request was at fault); everything else
// becomes a 502 so clients can tell our failures from the remote's.
func writeRemoteError(w http.ResponseWriter, err error) {
	var apiErr *templated.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		writeError(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}
