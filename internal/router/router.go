// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes of the Omu Media Kit service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"omukit/internal/handlers"
	"omukit/internal/middleware"
)

// New builds the chi router with the full API surface. The render submit
// route carries a rate limit so a misbehaving client cannot burn through
// the remote Templated render quota.
func New(api *handlers.API, renderLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", api.ListTemplates)
			r.Get("/{id}", api.GetTemplate)
			r.Post("/{id}/clone", api.CloneTemplate)
			r.Post("/{id}/tags", api.AddTemplateTags)
			r.Get("/{id}/renders", api.ListTemplateRenders)
		})

		r.Get("/folders", api.ListFolders)

		r.Route("/uploads", func(r chi.Router) {
			r.Get("/", api.ListUploads)
			r.Post("/", api.CreateUpload)
		})

		r.Route("/brand", func(r chi.Router) {
			r.Get("/", api.GetBrand)
			r.Put("/", api.UpdateBrand)
		})

		r.Route("/render", func(r chi.Router) {
			r.With(renderLimiter.Middleware).Post("/", api.SubmitRender)
			r.Get("/", api.CurrentRender)
			r.Delete("/", api.CancelRender)
		})

		r.Get("/history", api.RenderHistory)
	})

	return r
}
