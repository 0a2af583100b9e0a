// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the database entities of the service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// RenderRecord is one entry in the local render journal: a render submitted
// through this service, with its last observed status. The remote API keeps
// its own history; this journal survives remote retention limits and records
// failures the remote side never stored.
type RenderRecord struct {
	ID           uuid.UUID `json:"id"`
	RenderID     string    `json:"render_id"`
	TemplateID   string    `json:"template_id"`
	TemplateName string    `json:"template_name,omitempty"`
	Status       string    `json:"status"`
	URL          *string   `json:"url,omitempty"`
	ErrorDetail  *string   `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Finished reports whether the record reached a terminal status.
func (r *RenderRecord) Finished() bool {
	return r.Status == "completed" || r.Status == "failed"
}
