// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"omukit/internal/models"
)

// RenderRecordStore handles all render journal database operations.
type RenderRecordStore struct {
	db *sql.DB
}

// NewRenderRecordStore creates a new RenderRecordStore.
func NewRenderRecordStore(db *sql.DB) *RenderRecordStore {
	return &RenderRecordStore{db: db}
}

// recordColumns lists the columns selected in render journal queries.
const recordColumns = `id, render_id, template_id, template_name, status, url, error_detail, created_at, updated_at`

// scanRecord scans a render journal row from the result set.
func scanRecord(scanner interface{ Scan(...any) error }) (*models.RenderRecord, error) {
	var r models.RenderRecord
	err := scanner.Scan(
		&r.ID, &r.RenderID, &r.TemplateID, &r.TemplateName,
		&r.Status, &r.URL, &r.ErrorDetail, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new journal entry for a freshly submitted render.
func (s *RenderRecordStore) Create(r *models.RenderRecord) (*models.RenderRecord, error) {
	err := s.db.QueryRow(`
		INSERT INTO render_journal (render_id, template_id, template_name, status, url, error_detail)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+recordColumns,
		r.RenderID, r.TemplateID, r.TemplateName, r.Status, r.URL, r.ErrorDetail,
	).Scan(
		&r.ID, &r.RenderID, &r.TemplateID, &r.TemplateName,
		&r.Status, &r.URL, &r.ErrorDetail, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create render record: %w", err)
	}
	return r, nil
}

// UpdateStatus records a status transition observed by the poll loop.
// URL and error detail are only overwritten when non-nil.
func (s *RenderRecordStore) UpdateStatus(renderID, status string, url, errorDetail *string) error {
	result, err := s.db.Exec(`
		UPDATE render_journal
		SET status = $1,
		    url = COALESCE($2, url),
		    error_detail = COALESCE($3, error_detail),
		    updated_at = NOW()
		WHERE render_id = $4
	`, status, url, errorDetail, renderID)
	if err != nil {
		return fmt.Errorf("update render record: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("render record not found")
	}
	return nil
}

// FindByRenderID retrieves a journal entry by the remote render id.
// Returns nil if not found.
func (s *RenderRecordStore) FindByRenderID(renderID string) (*models.RenderRecord, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM render_journal WHERE render_id = $1`, renderID)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find render record: %w", err)
	}
	return r, nil
}

// List returns journal entries ordered by creation date descending,
// with pagination.
func (s *RenderRecordStore) List(limit, offset int) ([]models.RenderRecord, error) {
	rows, err := s.db.Query(`
		SELECT `+recordColumns+`
		FROM render_journal
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list render records: %w", err)
	}
	defer rows.Close()

	var items []models.RenderRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan render record: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// ListByTemplate returns journal entries for one template, newest first.
func (s *RenderRecordStore) ListByTemplate(templateID string, limit, offset int) ([]models.RenderRecord, error) {
	rows, err := s.db.Query(`
		SELECT `+recordColumns+`
		FROM render_journal
		WHERE template_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, templateID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list render records by template: %w", err)
	}
	defer rows.Close()

	var items []models.RenderRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan render record: %w", err)
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}
