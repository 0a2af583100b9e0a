// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
)

const maxUploadSize = 50 << 20 // 50MB

// ListFolders serves GET /api/folders.
func (a *API) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := a.remote.ListFolders(r.Context(), listParamsFromRequest(r))
	if err != nil {
		writeRemoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// ListUploads serves GET /api/uploads with the asset library contents.
func (a *API) ListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := a.remote.ListUploads(r.Context(), listParamsFromRequest(r))
	if err != nil {
		writeRemoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploads)
}

// CreateUpload serves POST /api/uploads. The file arrives as multipart
// form data under the "file" field and is forwarded to the remote
// asset library.
func (a *API) CreateUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	up, err := a.remote.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeRemoteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, up)
}
