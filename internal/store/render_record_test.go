// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"omukit/internal/models"
)

func TestRenderRecordCRUD(t *testing.T) {
	db := testDB(t)
	s := NewRenderRecordStore(db)

	renderID := "test-render-crud"
	t.Cleanup(func() { cleanRecords(t, db, renderID) })

	created, err := s.Create(&models.RenderRecord{
		RenderID:     renderID,
		TemplateID:   "tmpl-1",
		TemplateName: "Resort Promotion",
		Status:       "pending",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("create must assign an id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("create must fill timestamps")
	}

	found, err := s.FindByRenderID(renderID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.TemplateName != "Resort Promotion" {
		t.Fatalf("found = %+v", found)
	}
	if found.Finished() {
		t.Error("pending record must not report finished")
	}

	url := "https://renders.example.com/out.jpg"
	if err := s.UpdateStatus(renderID, "completed", &url, nil); err != nil {
		t.Fatalf("update: %v", err)
	}

	found, err = s.FindByRenderID(renderID)
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if found.Status != "completed" || found.URL == nil || *found.URL != url {
		t.Errorf("updated record = %+v", found)
	}
	if !found.Finished() {
		t.Error("completed record must report finished")
	}

	// COALESCE keeps the URL when the next update passes nil.
	if err := s.UpdateStatus(renderID, "completed", nil, nil); err != nil {
		t.Fatalf("second update: %v", err)
	}
	found, _ = s.FindByRenderID(renderID)
	if found.URL == nil || *found.URL != url {
		t.Error("nil url in update must not clear the stored url")
	}
}

func TestRenderRecordFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewRenderRecordStore(db)

	found, err := s.FindByRenderID("never-created")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Errorf("found = %+v, want nil for missing record", found)
	}
}

func TestRenderRecordUpdateMissing(t *testing.T) {
	db := testDB(t)
	s := NewRenderRecordStore(db)

	if err := s.UpdateStatus("never-created", "completed", nil, nil); err == nil {
		t.Error("expected error updating a missing record")
	}
}

func TestRenderRecordListByTemplate(t *testing.T) {
	db := testDB(t)
	s := NewRenderRecordStore(db)

	ids := []string{"test-list-1", "test-list-2", "test-list-other"}
	t.Cleanup(func() { cleanRecords(t, db, ids...) })

	for _, id := range ids[:2] {
		if _, err := s.Create(&models.RenderRecord{RenderID: id, TemplateID: "tmpl-list", Status: "pending"}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if _, err := s.Create(&models.RenderRecord{RenderID: ids[2], TemplateID: "tmpl-other", Status: "pending"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	records, err := s.ListByTemplate("tmpl-list", 10, 0)
	if err != nil {
		t.Fatalf("list by template: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
	for _, r := range records {
		if r.TemplateID != "tmpl-list" {
			t.Errorf("record %s has template %q", r.RenderID, r.TemplateID)
		}
	}
}
