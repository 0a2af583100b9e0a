// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "testing"

func TestSettingGetFallback(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)

	val, err := s.Get("test-missing-key", "fallback-value")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "fallback-value" {
		t.Errorf("value = %q, want fallback", val)
	}
}

func TestSettingSetAndUpdate(t *testing.T) {
	db := testDB(t)
	s := NewSettingStore(db)

	key := "test-brand-doc"
	t.Cleanup(func() { cleanSettings(t, db, key) })

	if err := s.Set(key, `{"voice":"casual"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, err := s.Get(key, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != `{"voice":"casual"}` {
		t.Errorf("value = %q", val)
	}

	// Upsert replaces the value.
	if err := s.Set(key, `{"voice":"luxurious"}`); err != nil {
		t.Fatalf("set again: %v", err)
	}
	val, _ = s.Get(key, "")
	if val != `{"voice":"luxurious"}` {
		t.Errorf("updated value = %q", val)
	}
}
