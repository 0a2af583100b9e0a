// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"omukit/internal/brand"
)

// GetBrand serves GET /api/brand with the current brand guidelines.
func (a *API) GetBrand(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.brandStore.Get())
}

// UpdateBrand serves PUT /api/brand. The body is a full replacement of
// the guidelines document; partial updates are done by reading first.
func (a *API) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var g brand.Guidelines
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid brand guidelines: "+err.Error())
		return
	}

	if err := a.brandStore.Set(g); err != nil {
		writeError(w, http.StatusInternalServerError, "save brand guidelines: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a.brandStore.Get())
}
