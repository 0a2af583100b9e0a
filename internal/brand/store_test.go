// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import (
	"errors"
	"path/filepath"
	"testing"
)

// memPersistence is an in-memory Persistence for tests.
type memPersistence struct {
	data    []byte
	loadErr error
	saveErr error
}

func (p *memPersistence) Load() ([]byte, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	if p.data == nil {
		return nil, ErrNotFound
	}
	return p.data, nil
}

func (p *memPersistence) Save(data []byte) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.data = data
	return nil
}

func TestNewStoreUsesDefaultsWhenEmpty(t *testing.T) {
	s, err := NewStore(&memPersistence{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	g := s.Get()
	if g.Colors.Primary != "#138a72" {
		t.Errorf("primary = %q, want #138a72", g.Colors.Primary)
	}
	if g.Colors.Secondary != "#FFA500" {
		t.Errorf("secondary = %q, want #FFA500", g.Colors.Secondary)
	}
	if g.Typography.HeadingFont != "Arial, sans-serif" {
		t.Errorf("heading font = %q, want Arial, sans-serif", g.Typography.HeadingFont)
	}
	if g.Voice != VoiceProfessional {
		t.Errorf("voice = %q, want professional", g.Voice)
	}
}

func TestNewStoreRejectsCorruptDocument(t *testing.T) {
	p := &memPersistence{data: []byte("{not json")}
	if _, err := NewStore(p); err == nil {
		t.Fatal("expected error for corrupt persisted document")
	}
}

func TestSetPersistsAndGetReturnsCopy(t *testing.T) {
	p := &memPersistence{}
	s, err := NewStore(p)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	next := Default()
	next.Colors.Primary = "#000000"
	next.Voice = VoiceLuxurious
	if err := s.Set(next); err != nil {
		t.Fatalf("set: %v", err)
	}

	if p.data == nil {
		t.Fatal("set must persist the document")
	}

	// Reload from the same backend: the saved document round-trips.
	s2, err := NewStore(p)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	if got := s2.Get(); got.Colors.Primary != "#000000" || got.Voice != VoiceLuxurious {
		t.Errorf("reloaded guidelines = %+v, want the saved values", got)
	}

	// Mutating a returned value must not leak into the store.
	g := s.Get()
	g.Colors.Primary = "#FFFFFF"
	if s.Get().Colors.Primary != "#000000" {
		t.Error("Get must return a copy, not shared state")
	}
}

func TestSetFailedSaveKeepsOldValue(t *testing.T) {
	p := &memPersistence{saveErr: errors.New("disk full")}
	s, err := NewStore(p)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	next := Default()
	next.Colors.Primary = "#000000"
	if err := s.Set(next); err == nil {
		t.Fatal("expected save error")
	}
	if s.Get().Colors.Primary != "#138a72" {
		t.Error("failed save must leave the in-memory value unchanged")
	}
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.json")
	p := NewFilePersistence(path)

	if _, err := p.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("load before save = %v, want ErrNotFound", err)
	}

	if err := p.Save([]byte(`{"voice":"casual"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"voice":"casual"}` {
		t.Errorf("loaded = %s", data)
	}
}
